// Package tlv implements a schema-less tag-length-value frame codec.
//
// Wire format, big-endian throughout:
//
//	packet-frame = size:u32 frame
//	frame        = format:u8 field-count:u32 field*
//	field        = tag:u16 length:u32 value:u8[length]
//	format       = 0x01
//
// A Builder appends fields to a caller-supplied buffer and patches the field
// count (and, for packet-frames, the size prefix) when it is closed. Nested
// frames are always written as packet-frames inside a field value so the
// parent can record their length.
//
// A Parser validates a buffer once and indexes its fields without copying.
// Slices returned by a Parser, and child Parsers, alias the parsed buffer;
// mutating that buffer afterwards changes what they observe.
//
// Numeric fields may be read at any width: a value written as u8 reads back
// as u16, u32 or u64, and a value written wide reads back narrow when it fits.
// Readers skip tags they do not know.
package tlv
