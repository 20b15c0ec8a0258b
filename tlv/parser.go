package tlv

import (
	"encoding/binary"
	"iter"
)

// Field is one indexed field. Value aliases the parsed buffer.
type Field struct {
	Tag   uint16
	Value []byte
}

// Parser is a read-only index over a validated frame.
type Parser struct {
	fields []Field
}

// Parse validates data as exactly one frame and indexes its fields. Nothing
// is copied: every value the Parser hands out is a sub-slice of data.
func Parse(data []byte) (*Parser, error) {
	p, err := parseFrame(data)
	if err != nil {
		logger.Trace().Err(err).Int("len", len(data)).Msg("tlv.Parse rejected frame")
		return nil, err
	}
	return p, nil
}

// ParsePacket validates data as exactly one packet-frame: a size prefix
// followed by a frame of that many bytes.
func ParsePacket(data []byte) (*Parser, error) {
	p, err := parsePacket(data)
	if err != nil {
		logger.Trace().Err(err).Int("len", len(data)).Msg("tlv.ParsePacket rejected packet-frame")
		return nil, err
	}
	return p, nil
}

func parsePacket(data []byte) (*Parser, error) {
	if len(data) < SizeLen {
		return nil, ErrIncompletePacketSize
	}
	size := binary.BigEndian.Uint32(data[:SizeLen])
	rest := data[SizeLen:]
	if uint64(size) > uint64(len(rest)) {
		return nil, &PacketSizeError{Expected: size, Actual: len(rest)}
	}
	if int(size) < len(rest) {
		return nil, ErrUnexpectedData
	}
	return parseFrame(rest)
}

func parseFrame(data []byte) (*Parser, error) {
	if len(data) < FormatLen {
		return nil, ErrIncompleteFrameFormat
	}
	if !knownFormat(data[0]) {
		return nil, &FormatError{Format: data[0]}
	}
	rest := data[FormatLen:]

	if len(rest) < FieldCountLen {
		return nil, ErrIncompleteFrameFieldCount
	}
	count := binary.BigEndian.Uint32(rest[:FieldCountLen])
	rest = rest[FieldCountLen:]

	// A hostile count must not drive the allocation.
	capacity := min(uint64(count), uint64(len(rest)/FieldHeaderLen))
	fields := make([]Field, 0, capacity)
	for range count {
		if len(rest) < FieldHeaderLen {
			return nil, ErrIncompleteFieldTagOrLength
		}
		tag := binary.BigEndian.Uint16(rest[:TagLen])
		length := binary.BigEndian.Uint32(rest[TagLen:FieldHeaderLen])
		rest = rest[FieldHeaderLen:]
		if uint64(length) > uint64(len(rest)) {
			return nil, &ValueLengthError{Expected: length, Actual: len(rest)}
		}
		fields = append(fields, Field{Tag: tag, Value: rest[:length:length]})
		rest = rest[length:]
	}

	if len(rest) != 0 {
		return nil, ErrUnexpectedData
	}
	return &Parser{fields: fields}, nil
}

// Len reports the number of fields in the frame.
func (p *Parser) Len() int {
	return len(p.fields)
}

// Fields yields every field in insertion order.
func (p *Parser) Fields() iter.Seq2[uint16, []byte] {
	return func(yield func(uint16, []byte) bool) {
		for _, f := range p.fields {
			if !yield(f.Tag, f.Value) {
				return
			}
		}
	}
}

// Tags yields each distinct tag once, in order of first appearance.
func (p *Parser) Tags() iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		seen := make(map[uint16]struct{}, len(p.fields))
		for _, f := range p.fields {
			if _, ok := seen[f.Tag]; ok {
				continue
			}
			seen[f.Tag] = struct{}{}
			if !yield(f.Tag) {
				return
			}
		}
	}
}

func (p *Parser) Has(tag uint16) bool {
	_, ok := p.GetData(tag)
	return ok
}

// GetData returns the value of the first field with tag.
func (p *Parser) GetData(tag uint16) ([]byte, bool) {
	for _, f := range p.fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return nil, false
}

// GetDatas yields the value of every field with tag, in insertion order.
// The sequence may be ranged over any number of times.
func (p *Parser) GetDatas(tag uint16) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, f := range p.fields {
			if f.Tag == tag && !yield(f.Value) {
				return
			}
		}
	}
}

// GetChild parses the first field with tag as a nested packet-frame. The
// nested bytes are validated exactly as a top-level packet-frame would be.
func (p *Parser) GetChild(tag uint16) (*Parser, bool, error) {
	return get(p, tag, ParsePacket)
}

// GetChildren yields a nested parser, or the error from parsing it, for every
// field with tag.
func (p *Parser) GetChildren(tag uint16) iter.Seq2[*Parser, error] {
	return getAll(p, tag, ParsePacket)
}

func (p *Parser) GetBool(tag uint16) (bool, bool, error) {
	return get(p, tag, DecodeBool)
}

func (p *Parser) GetU8(tag uint16) (uint8, bool, error) {
	return get(p, tag, DecodeU8)
}

func (p *Parser) GetU16(tag uint16) (uint16, bool, error) {
	return get(p, tag, DecodeU16)
}

func (p *Parser) GetU32(tag uint16) (uint32, bool, error) {
	return get(p, tag, DecodeU32)
}

func (p *Parser) GetU64(tag uint16) (uint64, bool, error) {
	return get(p, tag, DecodeU64)
}

func (p *Parser) GetStr(tag uint16) (string, bool, error) {
	return get(p, tag, DecodeStr)
}

func (p *Parser) GetBools(tag uint16) iter.Seq2[bool, error] {
	return getAll(p, tag, DecodeBool)
}

func (p *Parser) GetU8s(tag uint16) iter.Seq2[uint8, error] {
	return getAll(p, tag, DecodeU8)
}

func (p *Parser) GetU16s(tag uint16) iter.Seq2[uint16, error] {
	return getAll(p, tag, DecodeU16)
}

func (p *Parser) GetU32s(tag uint16) iter.Seq2[uint32, error] {
	return getAll(p, tag, DecodeU32)
}

func (p *Parser) GetU64s(tag uint16) iter.Seq2[uint64, error] {
	return getAll(p, tag, DecodeU64)
}

func (p *Parser) GetStrs(tag uint16) iter.Seq2[string, error] {
	return getAll(p, tag, DecodeStr)
}

// get reports found=false with a nil error when tag is absent.
func get[T any](p *Parser, tag uint16, decode func([]byte) (T, error)) (T, bool, error) {
	var zero T
	value, ok := p.GetData(tag)
	if !ok {
		return zero, false, nil
	}
	v, err := decode(value)
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}

func getAll[T any](p *Parser, tag uint16, decode func([]byte) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for value := range p.GetDatas(tag) {
			if !yield(decode(value)) {
				return
			}
		}
	}
}
