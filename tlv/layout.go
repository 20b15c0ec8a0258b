package tlv

import "encoding/binary"

// FormatV1 is the only recognized frame format discriminator.
const FormatV1 byte = 0x01

const (
	SizeLen        = 4
	FormatLen      = 1
	FieldCountLen  = 4
	TagLen         = 2
	LengthLen      = 4
	FrameHeaderLen = FormatLen + FieldCountLen
	FieldHeaderLen = TagLen + LengthLen

	// MaxValueLen is the largest value a single field can carry.
	MaxValueLen = 1<<32 - 1
)

func knownFormat(b byte) bool {
	return b == FormatV1
}

func putFieldHeader(dst []byte, tag uint16, length uint32) {
	binary.BigEndian.PutUint16(dst[0:TagLen], tag)
	binary.BigEndian.PutUint32(dst[TagLen:FieldHeaderLen], length)
}
