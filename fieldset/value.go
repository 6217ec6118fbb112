// Package fieldset holds FieldSet, the descriptor-keyed, type-verified
// value store that backs both DynamicMessage and every GeneratedAdapter.
// It has two Go types, not one: Builder is the mutable phase and FieldSet
// is the frozen, read-only phase Builder.Build() produces — there is no
// shared type with a runtime "is it frozen" flag to check on every call.
package fieldset

import (
	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/wire"
)

// SubMessage is the minimal handle a message-typed field value needs.
// DynamicMessage and every GeneratedAdapter satisfy it; FieldSet never
// imports those packages directly, which is what keeps the dependency
// graph acyclic.
type SubMessage interface {
	Descriptor() *descriptor.MessageDescriptor
	IsInitialized() bool
	Equal(other SubMessage) bool
	WriteTo(buf *wire.Buffer) error
	SerializedSize() int
}

// Value is one scalar, enum, or message value. It is a tagged union rather
// than interface{}: reading it back never requires a type switch over a
// boxed empty interface, and there is exactly one zero value per
// descriptor.MappedType rather than one per concrete Go type.
type Value struct {
	mapped descriptor.MappedType
	i32    int32
	i64    int64
	u32    uint32
	u64    uint64
	f32    float32
	f64    float64
	b      bool
	s      string
	bytes  []byte
	enum   *descriptor.EnumValueDescriptor
	msg    SubMessage
}

func (v Value) MappedType() descriptor.MappedType { return v.mapped }

func (v Value) Int32() int32   { return v.i32 }
func (v Value) Int64() int64   { return v.i64 }
func (v Value) Uint32() uint32 { return v.u32 }
func (v Value) Uint64() uint64 { return v.u64 }
func (v Value) Float32() float32 { return v.f32 }
func (v Value) Float64() float64 { return v.f64 }
func (v Value) Bool() bool     { return v.b }
func (v Value) String() string { return v.s }
func (v Value) Bytes() []byte  { return v.bytes }
func (v Value) Enum() *descriptor.EnumValueDescriptor { return v.enum }
func (v Value) Message() SubMessage                   { return v.msg }

func Int32Value(x int32) Value     { return Value{mapped: descriptor.MappedInt32, i32: x} }
func Int64Value(x int64) Value     { return Value{mapped: descriptor.MappedInt64, i64: x} }
func Uint32Value(x uint32) Value   { return Value{mapped: descriptor.MappedUint32, u32: x} }
func Uint64Value(x uint64) Value   { return Value{mapped: descriptor.MappedUint64, u64: x} }
func Float32Value(x float32) Value { return Value{mapped: descriptor.MappedFloat, f32: x} }
func Float64Value(x float64) Value { return Value{mapped: descriptor.MappedDouble, f64: x} }
func BoolValue(x bool) Value       { return Value{mapped: descriptor.MappedBool, b: x} }
func StringValue(x string) Value   { return Value{mapped: descriptor.MappedString, s: x} }
func BytesValue(x []byte) Value    { return Value{mapped: descriptor.MappedBytes, bytes: x} }
func EnumValue(x *descriptor.EnumValueDescriptor) Value {
	return Value{mapped: descriptor.MappedEnum, enum: x}
}
func MessageValue(x SubMessage) Value { return Value{mapped: descriptor.MappedMessage, msg: x} }

// fromDefault lifts a descriptor.DefaultValue into a Value of the same
// MappedType, used when Get falls back to a field's declared default.
func fromDefault(d descriptor.DefaultValue) Value {
	switch d.MappedType() {
	case descriptor.MappedInt32:
		return Int32Value(d.Int32())
	case descriptor.MappedInt64:
		return Int64Value(d.Int64())
	case descriptor.MappedUint32:
		return Uint32Value(d.Uint32())
	case descriptor.MappedUint64:
		return Uint64Value(d.Uint64())
	case descriptor.MappedFloat:
		return Float32Value(d.Float32())
	case descriptor.MappedDouble:
		return Float64Value(d.Float64())
	case descriptor.MappedBool:
		return BoolValue(d.Bool())
	case descriptor.MappedString:
		return StringValue(d.String())
	case descriptor.MappedBytes:
		return BytesValue(d.Bytes())
	case descriptor.MappedEnum:
		return EnumValue(d.Enum())
	default:
		return Value{mapped: d.MappedType()}
	}
}

// equalValues reports whether a and b carry the same mapped value. It does not
// compare SubMessage identity beyond its own Equal method.
func equalValues(a, b Value) bool {
	if a.mapped != b.mapped {
		return false
	}
	switch a.mapped {
	case descriptor.MappedInt32:
		return a.i32 == b.i32
	case descriptor.MappedInt64:
		return a.i64 == b.i64
	case descriptor.MappedUint32:
		return a.u32 == b.u32
	case descriptor.MappedUint64:
		return a.u64 == b.u64
	case descriptor.MappedFloat:
		return a.f32 == b.f32
	case descriptor.MappedDouble:
		return a.f64 == b.f64
	case descriptor.MappedBool:
		return a.b == b.b
	case descriptor.MappedString:
		return a.s == b.s
	case descriptor.MappedBytes:
		return string(a.bytes) == string(b.bytes)
	case descriptor.MappedEnum:
		return a.enum != nil && b.enum != nil && a.enum.Number() == b.enum.Number()
	case descriptor.MappedMessage:
		if a.msg == nil || b.msg == nil {
			return a.msg == b.msg
		}
		return a.msg.Equal(b.msg)
	default:
		return false
	}
}
