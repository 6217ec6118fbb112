package wire

// Type represents a protobuf wire-format type — the low 3 bits of a tag.
type Type int8

const (
	Varint     Type = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	Fixed64    Type = 1 // fixed64, sfixed64, double
	Bytes      Type = 2 // string, bytes, embedded messages, packed repeated fields
	StartGroup Type = 3 // legacy groups / message-set extensions
	EndGroup   Type = 4
	Fixed32    Type = 5 // fixed32, sfixed32, float
)

// Number is a protobuf field number.
type Number int32

// Tag is a composed (field number, wire type) pair as it appears on the wire.
type Tag uint64

// MakeTag composes a tag from a field number and wire type.
func MakeTag(n Number, t Type) Tag {
	return Tag(uint64(n)<<3 | uint64(t))
}

// Parse decomposes a tag into its field number and wire type.
func (t Tag) Parse() (Number, Type) {
	return Number(t >> 3), Type(t & 0x7)
}

// SizeTag returns the number of bytes MakeTag(n, t) occupies on the wire.
func SizeTag(n Number) int {
	return SizeVarint(uint64(n) << 3)
}
