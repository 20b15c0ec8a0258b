package tlv

import (
	"bytes"
	"testing"
)

func TestEmptyFrame(t *testing.T) {
	start(t)
	b := OpenFrame(nil)
	b.Close()
	want := []byte{0x01, 0, 0, 0, 0}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("expected %v, got %v", want, b.Bytes())
	}
}

func TestEmptyPacketFrame(t *testing.T) {
	start(t)
	b := OpenPacketFrame(nil)
	b.Close()
	want := []byte{0, 0, 0, 5, 0x01, 0, 0, 0, 0}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("expected %v, got %v", want, b.Bytes())
	}
}

func TestFrameWithOneField(t *testing.T) {
	start(t)
	b := OpenFrame(make([]byte, 0, 64))
	b.AddData(1022, []byte{9, 255})
	b.Close()
	want := []byte{0x01, 0, 0, 0, 1, 0x03, 0xFE, 0, 0, 0, 2, 9, 255}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("expected %v, got %v", want, b.Bytes())
	}
}

func TestOpenAppendsAfterExistingBytes(t *testing.T) {
	start(t)
	prefix := []byte{0xAA, 0xBB}
	b := OpenPacketFrame(prefix)
	b.AddU8(7, 1)
	b.Close()
	out := b.Bytes()
	if !bytes.Equal(out[:2], prefix) {
		t.Fatalf("prefix clobbered: %v", out[:2])
	}
	if _, err := ParsePacket(out[2:]); err != nil {
		t.Fatalf("parse packet after prefix: %v", err)
	}
}

func TestTypedEncodersUseExactWidths(t *testing.T) {
	start(t)
	b := OpenFrame(nil)
	b.AddBool(1, false)
	b.AddBool(2, true)
	b.AddU8(3, 0x12)
	b.AddU16(4, 0x1234)
	b.AddU32(5, 0x12345678)
	b.AddU64(6, 0x0102030405060708)
	b.AddStr(7, "héllo")
	b.AddData(8, nil)
	b.Close()

	p := mustParse(t, b.Bytes())
	cases := []struct {
		tag  uint16
		want []byte
	}{
		{1, []byte{0x00}},
		{2, []byte{0xFF}},
		{3, []byte{0x12}},
		{4, []byte{0x12, 0x34}},
		{5, []byte{0x12, 0x34, 0x56, 0x78}},
		{6, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{7, []byte("héllo")},
		{8, []byte{}},
	}
	for _, tc := range cases {
		got, ok := p.GetData(tc.tag)
		if !ok {
			t.Fatalf("tag %d missing", tc.tag)
		}
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("tag %d: expected %v, got %v", tc.tag, tc.want, got)
		}
	}
}

func TestCompactEncodingWidths(t *testing.T) {
	start(t)
	cases := []struct {
		name  string
		add   func(b *Builder)
		width int
	}{
		{"u16 small", func(b *Builder) { b.AddCompactU16(1, 0xFF) }, 1},
		{"u16 large", func(b *Builder) { b.AddCompactU16(1, 0x100) }, 2},
		{"u32 byte", func(b *Builder) { b.AddCompactU32(1, 3) }, 1},
		{"u32 max u16", func(b *Builder) { b.AddCompactU32(1, 0xFFFF) }, 2},
		{"u32 above u16", func(b *Builder) { b.AddCompactU32(1, 0x10000) }, 4},
		{"u64 zero", func(b *Builder) { b.AddCompactU64(1, 0) }, 1},
		{"u64 u16", func(b *Builder) { b.AddCompactU64(1, 0x1234) }, 2},
		{"u64 max u32", func(b *Builder) { b.AddCompactU64(1, 0xFFFFFFFF) }, 4},
		{"u64 above u32", func(b *Builder) { b.AddCompactU64(1, 0x100000000) }, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := OpenFrame(nil)
			tc.add(b)
			b.Close()
			value, ok := mustParse(t, b.Bytes()).GetData(1)
			if !ok {
				t.Fatalf("field missing")
			}
			if len(value) != tc.width {
				t.Fatalf("expected %d-byte field, got %d", tc.width, len(value))
			}
		})
	}
}

func TestCompactValuesReadBack(t *testing.T) {
	start(t)
	values := []uint64{0, 1, 0xFF, 0x100, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000, ^uint64(0)}
	b := OpenFrame(nil)
	for _, v := range values {
		b.AddCompactU64(9, v)
	}
	b.Close()

	i := 0
	for got, err := range mustParse(t, b.Bytes()).GetU64s(9) {
		if err != nil {
			t.Fatalf("value %d: %v", i, err)
		}
		if got != values[i] {
			t.Fatalf("value %d: expected %#x, got %#x", i, values[i], got)
		}
		i++
	}
	if i != len(values) {
		t.Fatalf("expected %d values, got %d", len(values), i)
	}
}

func TestChildFrameLayout(t *testing.T) {
	start(t)
	b := OpenFrame(nil)
	child := b.AddChild(200)
	child.AddU8(300, 3)
	child.Close()
	b.Close()

	want := []byte{
		// root: format, count=1
		0x01, 0, 0, 0, 1,
		// tag 200, length 16
		0x00, 0xC8, 0, 0, 0, 16,
		// child size
		0, 0, 0, 12,
		// child: format, count=1
		0x01, 0, 0, 0, 1,
		// tag 300, length 1, value 3
		0x01, 0x2C, 0, 0, 0, 1, 3,
	}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("expected %v, got %v", want, b.Bytes())
	}
}

func TestCountMatchesAdds(t *testing.T) {
	start(t)
	b := OpenPacketFrame(nil)
	for i := range 10 {
		b.AddU16(uint16(i%3), uint16(i))
	}
	c := b.AddChild(50)
	c.AddStr(1, "x")
	c.Close()
	if b.Count() != 11 {
		t.Fatalf("expected 11 fields, got %d", b.Count())
	}
	b.Close()
	p, err := ParsePacket(b.Bytes())
	if err != nil {
		t.Fatalf("parse packet: %v", err)
	}
	if p.Len() != 11 {
		t.Fatalf("expected 11 parsed fields, got %d", p.Len())
	}
}

func TestParentCloseClosesOpenChildren(t *testing.T) {
	start(t)
	b := OpenFrame(nil)
	c1 := b.AddChild(1)
	c1.AddU8(1, 1)
	c2 := c1.AddChild(2)
	c2.AddU8(2, 2)
	b.Close()
	if !c1.Closed() || !c2.Closed() {
		t.Fatalf("expected children closed with parent")
	}

	p := mustParse(t, b.Bytes())
	inner, ok, err := p.GetChild(1)
	if err != nil || !ok {
		t.Fatalf("child 1: ok=%v err=%v", ok, err)
	}
	innermost, ok, err := inner.GetChild(2)
	if err != nil || !ok {
		t.Fatalf("child 2: ok=%v err=%v", ok, err)
	}
	if v, _, _ := innermost.GetU8(2); v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	start(t)
	b := OpenFrame(nil)
	b.AddU8(1, 1)
	b.Close()
	before := bytes.Clone(b.Bytes())
	b.Close()
	if !bytes.Equal(before, b.Bytes()) {
		t.Fatalf("second close changed output")
	}
}

func TestDeferredCloseOnEarlyReturn(t *testing.T) {
	start(t)
	build := func(fail bool) []byte {
		b := OpenPacketFrame(nil)
		defer b.Close()
		c := b.AddChild(1)
		defer c.Close()
		c.AddU8(1, 1)
		if fail {
			return b.Bytes()
		}
		c.AddU8(2, 2)
		return b.Bytes()
	}
	// The returned slice header is taken before the deferred closes run, but
	// it shares the backing array they patch.
	out := build(true)
	if _, err := ParsePacket(out); err != nil {
		t.Fatalf("parse after early return: %v", err)
	}
}

func TestWriteAfterClosePanics(t *testing.T) {
	start(t)
	b := OpenFrame(nil)
	b.Close()
	expectPanic(t, func() { b.AddU8(1, 1) })
}

func TestWriteToParentWithOpenChildPanics(t *testing.T) {
	start(t)
	b := OpenFrame(nil)
	c := b.AddChild(1)
	expectPanic(t, func() { b.AddU8(2, 2) })
	c.Close()
	b.AddU8(2, 2)
	b.Close()
	if mustParse(t, b.Bytes()).Len() != 2 {
		t.Fatalf("expected 2 fields after child closed")
	}
}

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}
