package tlv

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// decodeUint reads value as a big-endian unsigned integer of 1, 2, 4 or 8
// bytes.
func decodeUint(value []byte) (uint64, error) {
	switch len(value) {
	case 1:
		return uint64(value[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(value)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(value)), nil
	case 8:
		return binary.BigEndian.Uint64(value), nil
	default:
		return 0, &FieldLengthError{Length: len(value)}
	}
}

func decodeBounded(value []byte, limit uint64) (uint64, error) {
	v, err := decodeUint(value)
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, ErrIncompatibleFieldValue
	}
	return v, nil
}

// DecodeU8 reads an unsigned value of any encoded width that fits in a uint8.
func DecodeU8(value []byte) (uint8, error) {
	v, err := decodeBounded(value, math.MaxUint8)
	return uint8(v), err
}

// DecodeU16 reads an unsigned value of any encoded width that fits in a uint16.
func DecodeU16(value []byte) (uint16, error) {
	v, err := decodeBounded(value, math.MaxUint16)
	return uint16(v), err
}

// DecodeU32 reads an unsigned value of any encoded width that fits in a uint32.
func DecodeU32(value []byte) (uint32, error) {
	v, err := decodeBounded(value, math.MaxUint32)
	return uint32(v), err
}

// DecodeU64 reads an unsigned value of any encoded width.
func DecodeU64(value []byte) (uint64, error) {
	return decodeUint(value)
}

// DecodeBool accepts exactly one byte, 0x00 or 0xFF.
func DecodeBool(value []byte) (bool, error) {
	if len(value) != 1 {
		return false, &FieldLengthError{Length: len(value)}
	}
	switch value[0] {
	case boolFalse:
		return false, nil
	case boolTrue:
		return true, nil
	default:
		return false, ErrIncompatibleFieldValue
	}
}

// DecodeStr accepts valid UTF-8. The result is a copy.
func DecodeStr(value []byte) (string, error) {
	if !utf8.Valid(value) {
		return "", ErrIncompatibleFieldValue
	}
	return string(value), nil
}
