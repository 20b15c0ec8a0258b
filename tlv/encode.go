package tlv

import (
	"encoding/binary"
	"math"
)

const (
	boolFalse byte = 0x00
	boolTrue  byte = 0xFF
)

// PutBool writes v as a single byte, 0x00 or 0xFF.
func PutBool(w FieldWriter, tag uint16, v bool) {
	b := boolFalse
	if v {
		b = boolTrue
	}
	w.AddData(tag, []byte{b})
}

func PutU8(w FieldWriter, tag uint16, v uint8) {
	w.AddData(tag, []byte{v})
}

func PutU16(w FieldWriter, tag uint16, v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.AddData(tag, buf[:])
}

func PutU32(w FieldWriter, tag uint16, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.AddData(tag, buf[:])
}

func PutU64(w FieldWriter, tag uint16, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	w.AddData(tag, buf[:])
}

// PutStr writes the UTF-8 bytes of v.
func PutStr(w FieldWriter, tag uint16, v string) {
	w.AddData(tag, []byte(v))
}

// PutCompactU16 writes v in one byte when it fits, otherwise two.
func PutCompactU16(w FieldWriter, tag uint16, v uint16) {
	if v <= math.MaxUint8 {
		PutU8(w, tag, uint8(v))
		return
	}
	PutU16(w, tag, v)
}

// PutCompactU32 writes v in the narrowest of 1, 2 or 4 bytes that holds it.
func PutCompactU32(w FieldWriter, tag uint16, v uint32) {
	if v <= math.MaxUint16 {
		PutCompactU16(w, tag, uint16(v))
		return
	}
	PutU32(w, tag, v)
}

// PutCompactU64 writes v in the narrowest of 1, 2, 4 or 8 bytes that holds it.
func PutCompactU64(w FieldWriter, tag uint16, v uint64) {
	if v <= math.MaxUint32 {
		PutCompactU32(w, tag, uint32(v))
		return
	}
	PutU64(w, tag, v)
}
