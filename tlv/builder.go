package tlv

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// FieldWriter is the capability shared by frame and packet-frame builders.
// The typed and compact encoders in this package are written against it.
type FieldWriter interface {
	// AddData appends one field carrying value verbatim.
	AddData(tag uint16, value []byte)
	// AddChild appends one field whose value is a nested packet-frame and
	// returns the builder for that frame. The child must be closed before
	// the receiver is written to again.
	AddChild(tag uint16) *Builder
}

// buffer is the output shared by a root builder and all of its children.
type buffer struct {
	data []byte
}

// Builder appends a frame (or packet-frame) to a byte buffer.
//
// Opening a builder writes the frame header with zeroed placeholders; Close
// patches in the field count and, for packet-frames, the size prefix. Only the
// innermost open builder may be written to. Close is idempotent, so
//
//	b := tlv.OpenPacketFrame(nil)
//	defer b.Close()
//
// is the usual shape. Misuse (writing after Close, writing to a parent while
// a child is open) panics.
type Builder struct {
	buf    *buffer
	parent *Builder
	child  *Builder

	sizeAt   int // offset of the size prefix; -1 for a plain frame
	countAt  int
	lengthAt int // offset of the parent's field length; -1 at the root

	count  uint32
	closed bool
}

var _ FieldWriter = (*Builder)(nil)

// OpenFrame starts a root frame appended to dst. The frame carries no size
// prefix, so it must be the last thing in whatever holds it.
func OpenFrame(dst []byte) *Builder {
	return open(&buffer{data: dst}, nil, -1, false)
}

// OpenPacketFrame starts a self-delimiting packet-frame appended to dst.
func OpenPacketFrame(dst []byte) *Builder {
	return open(&buffer{data: dst}, nil, -1, true)
}

func open(buf *buffer, parent *Builder, lengthAt int, sized bool) *Builder {
	b := &Builder{
		buf:      buf,
		parent:   parent,
		sizeAt:   -1,
		lengthAt: lengthAt,
	}
	buf.data = slices.Grow(buf.data, SizeLen+FrameHeaderLen)
	if sized {
		b.sizeAt = len(buf.data)
		buf.data = append(buf.data, 0, 0, 0, 0)
	}
	buf.data = append(buf.data, FormatV1)
	b.countAt = len(buf.data)
	buf.data = append(buf.data, 0, 0, 0, 0)
	return b
}

// Bytes returns the shared output buffer, including whatever dst held when
// the root builder was opened. It is only a valid encoding once the root has
// been closed.
func (b *Builder) Bytes() []byte {
	return b.buf.data
}

// Count reports how many fields have been added to this frame so far.
func (b *Builder) Count() uint32 {
	return b.count
}

// Closed reports whether Close has run.
func (b *Builder) Closed() bool {
	return b.closed
}

func (b *Builder) AddData(tag uint16, value []byte) {
	b.mustWritable()
	if uint64(len(value)) > MaxValueLen {
		panic(fmt.Sprintf("tlv: field %d value too large: %d bytes", tag, len(value)))
	}
	data := slices.Grow(b.buf.data, FieldHeaderLen+len(value))
	at := len(data)
	data = data[:at+FieldHeaderLen]
	putFieldHeader(data[at:], tag, uint32(len(value)))
	b.buf.data = append(data, value...)
	b.count++
}

func (b *Builder) AddChild(tag uint16) *Builder {
	b.mustWritable()
	data := slices.Grow(b.buf.data, FieldHeaderLen+SizeLen+FrameHeaderLen)
	at := len(data)
	b.buf.data = data[:at+FieldHeaderLen]
	putFieldHeader(b.buf.data[at:], tag, 0)
	b.count++
	b.child = open(b.buf, b, at+TagLen, true)
	return b.child
}

// Close patches the placeholders reserved by this builder. An open child is
// closed first. Calling Close more than once is a no-op.
func (b *Builder) Close() {
	if b.closed {
		return
	}
	if b.child != nil {
		b.child.Close()
	}
	data := b.buf.data
	end := len(data)
	binary.BigEndian.PutUint32(data[b.countAt:], b.count)
	if b.sizeAt >= 0 {
		binary.BigEndian.PutUint32(data[b.sizeAt:], patchLen(end-(b.sizeAt+SizeLen)))
	}
	if b.lengthAt >= 0 {
		binary.BigEndian.PutUint32(data[b.lengthAt:], patchLen(end-(b.lengthAt+LengthLen)))
	}
	b.closed = true
	if b.parent != nil {
		b.parent.child = nil
	}
}

func (b *Builder) mustWritable() {
	if b.closed {
		panic("tlv: write to closed builder")
	}
	if b.child != nil {
		panic("tlv: write to builder while a child frame is open")
	}
	if b.count == MaxValueLen {
		panic("tlv: frame field count overflow")
	}
}

func patchLen(n int) uint32 {
	if uint64(n) > MaxValueLen {
		panic(fmt.Sprintf("tlv: frame too large: %d bytes", n))
	}
	return uint32(n)
}

func (b *Builder) AddBool(tag uint16, v bool) {
	PutBool(b, tag, v)
}

func (b *Builder) AddU8(tag uint16, v uint8) {
	PutU8(b, tag, v)
}

func (b *Builder) AddU16(tag uint16, v uint16) {
	PutU16(b, tag, v)
}

func (b *Builder) AddU32(tag uint16, v uint32) {
	PutU32(b, tag, v)
}

func (b *Builder) AddU64(tag uint16, v uint64) {
	PutU64(b, tag, v)
}

func (b *Builder) AddStr(tag uint16, v string) {
	PutStr(b, tag, v)
}

func (b *Builder) AddCompactU16(tag uint16, v uint16) {
	PutCompactU16(b, tag, v)
}

func (b *Builder) AddCompactU32(tag uint16, v uint32) {
	PutCompactU32(b, tag, v)
}

func (b *Builder) AddCompactU64(tag uint16, v uint64) {
	PutCompactU64(b, tag, v)
}
