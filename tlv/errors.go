package tlv

import (
	"errors"
	"fmt"
)

// Structural errors abort Parse. Compatibility errors come from typed
// accessors on a field that parsed fine.
var (
	ErrIncompleteFrameFormat      = errors.New("tlv: incomplete frame format")
	ErrInvalidFrameFormat         = errors.New("tlv: invalid frame format")
	ErrIncompleteFrameFieldCount  = errors.New("tlv: incomplete frame field count")
	ErrIncompleteFieldTagOrLength = errors.New("tlv: incomplete field tag or length")
	ErrIncompleteFieldValue       = errors.New("tlv: incomplete field value")
	ErrUnexpectedData             = errors.New("tlv: unexpected data after last field")
	ErrIncompletePacketSize       = errors.New("tlv: incomplete packet-frame size")

	ErrIncompatibleFieldLength = errors.New("tlv: incompatible field length")
	ErrIncompatibleFieldValue  = errors.New("tlv: incompatible field value")
)

// FormatError reports an unrecognized format discriminator.
type FormatError struct {
	Format byte
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("tlv: invalid frame format 0x%02x", e.Format)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFrameFormat }

// ValueLengthError reports a field whose declared length runs past the end
// of the buffer.
type ValueLengthError struct {
	Expected uint32
	Actual   int
}

func (e *ValueLengthError) Error() string {
	return fmt.Sprintf("tlv: incomplete field value: expected %d bytes, %d remain", e.Expected, e.Actual)
}

func (e *ValueLengthError) Unwrap() error { return ErrIncompleteFieldValue }

// PacketSizeError reports a packet-frame whose size prefix runs past the end
// of the buffer.
type PacketSizeError struct {
	Expected uint32
	Actual   int
}

func (e *PacketSizeError) Error() string {
	return fmt.Sprintf("tlv: incomplete packet-frame: expected %d bytes, %d remain", e.Expected, e.Actual)
}

func (e *PacketSizeError) Unwrap() error { return ErrIncompletePacketSize }

// FieldLengthError reports a value whose length is not a width the typed
// accessor understands.
type FieldLengthError struct {
	Length int
}

func (e *FieldLengthError) Error() string {
	return fmt.Sprintf("tlv: incompatible field length %d", e.Length)
}

func (e *FieldLengthError) Unwrap() error { return ErrIncompatibleFieldLength }
