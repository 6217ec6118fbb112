// Package descriptor holds the read-only schema metadata that the field-set
// core is keyed on: FieldDescriptor, MessageDescriptor, EnumDescriptor, and
// EnumValueDescriptor. Every value in this package is immutable once built
// and safe to share across goroutines — this is the "descriptor interface
// consumed from the compiler collaborator" boundary (spec §6); nothing here
// parses `.proto` source.
package descriptor

import "github.com/modulexcite/protofield/wire"

// FieldType is one of the eighteen protobuf wire-visible field types.
type FieldType int8

const (
	Int32 FieldType = iota
	Int64
	Uint32
	Uint64
	Sint32
	Sint64
	Fixed32
	Fixed64
	Sfixed32
	Sfixed64
	FloatType
	DoubleType
	BoolType
	StringType
	BytesType
	EnumType
	MessageFieldType
	GroupType
)

func (t FieldType) String() string {
	switch t {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Sint32:
		return "sint32"
	case Sint64:
		return "sint64"
	case Fixed32:
		return "fixed32"
	case Fixed64:
		return "fixed64"
	case Sfixed32:
		return "sfixed32"
	case Sfixed64:
		return "sfixed64"
	case FloatType:
		return "float"
	case DoubleType:
		return "double"
	case BoolType:
		return "bool"
	case StringType:
		return "string"
	case BytesType:
		return "bytes"
	case EnumType:
		return "enum"
	case MessageFieldType:
		return "message"
	case GroupType:
		return "group"
	default:
		return "unknown"
	}
}

// MappedType collapses FieldType down to the storage category FieldSet
// actually holds (spec §3's table): several wire-distinct FieldTypes share
// one Go representation.
type MappedType int8

const (
	MappedInt32 MappedType = iota
	MappedInt64
	MappedUint32
	MappedUint64
	MappedFloat
	MappedDouble
	MappedBool
	MappedString
	MappedBytes
	MappedEnum
	MappedMessage
)

func (t FieldType) MappedType() MappedType {
	switch t {
	case Int32, Sint32, Sfixed32:
		return MappedInt32
	case Int64, Sint64, Sfixed64:
		return MappedInt64
	case Uint32, Fixed32:
		return MappedUint32
	case Uint64, Fixed64:
		return MappedUint64
	case FloatType:
		return MappedFloat
	case DoubleType:
		return MappedDouble
	case BoolType:
		return MappedBool
	case StringType:
		return MappedString
	case BytesType:
		return MappedBytes
	case EnumType:
		return MappedEnum
	case MessageFieldType, GroupType:
		return MappedMessage
	default:
		return MappedMessage
	}
}

// WireType reports the wire.Type this FieldType is encoded with — the
// canonical protobuf mapping from spec §4.1.
func (t FieldType) WireType() wire.Type {
	switch t {
	case Int32, Int64, Uint32, Uint64, Sint32, Sint64, BoolType, EnumType:
		return wire.Varint
	case Fixed64, Sfixed64, DoubleType:
		return wire.Fixed64
	case StringType, BytesType, MessageFieldType:
		return wire.Bytes
	case GroupType:
		return wire.StartGroup
	case Fixed32, Sfixed32, FloatType:
		return wire.Fixed32
	default:
		return wire.Varint
	}
}

// IsZigZag reports whether t is wire-encoded with zigzag varints.
func (t FieldType) IsZigZag() bool {
	return t == Sint32 || t == Sint64
}

// Cardinality is a field's repetition rule.
type Cardinality int8

const (
	Singular Cardinality = iota
	CardinalityRepeated
)
