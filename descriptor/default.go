package descriptor

// DefaultValue is the proto2-style declared default for a scalar or enum
// field — the value FieldSet.Get returns for a field that is absent from
// both the FieldSet and any merged-from instance. Message-typed fields have
// no DefaultValue: an absent singular MESSAGE reads as "none", not as some
// default instance.
//
// Shaped as a small tagged union rather than interface{} so a caller can
// read it back without a type switch over boxed empty interfaces.
type DefaultValue struct {
	mapped MappedType
	i32    int32
	i64    int64
	u32    uint32
	u64    uint64
	f32    float32
	f64    float64
	b      bool
	s      string
	bytes  []byte
	enum   *EnumValueDescriptor
}

func (d DefaultValue) MappedType() MappedType { return d.mapped }

func (d DefaultValue) Int32() int32     { return d.i32 }
func (d DefaultValue) Int64() int64     { return d.i64 }
func (d DefaultValue) Uint32() uint32   { return d.u32 }
func (d DefaultValue) Uint64() uint64   { return d.u64 }
func (d DefaultValue) Float32() float32 { return d.f32 }
func (d DefaultValue) Float64() float64 { return d.f64 }
func (d DefaultValue) Bool() bool       { return d.b }
func (d DefaultValue) String() string   { return d.s }
func (d DefaultValue) Bytes() []byte    { return d.bytes }
func (d DefaultValue) Enum() *EnumValueDescriptor { return d.enum }

func DefaultInt32(v int32) DefaultValue     { return DefaultValue{mapped: MappedInt32, i32: v} }
func DefaultInt64(v int64) DefaultValue     { return DefaultValue{mapped: MappedInt64, i64: v} }
func DefaultUint32(v uint32) DefaultValue   { return DefaultValue{mapped: MappedUint32, u32: v} }
func DefaultUint64(v uint64) DefaultValue   { return DefaultValue{mapped: MappedUint64, u64: v} }
func DefaultFloat32(v float32) DefaultValue { return DefaultValue{mapped: MappedFloat, f32: v} }
func DefaultFloat64(v float64) DefaultValue { return DefaultValue{mapped: MappedDouble, f64: v} }
func DefaultBool(v bool) DefaultValue       { return DefaultValue{mapped: MappedBool, b: v} }
func DefaultString(v string) DefaultValue   { return DefaultValue{mapped: MappedString, s: v} }
func DefaultBytes(v []byte) DefaultValue    { return DefaultValue{mapped: MappedBytes, bytes: v} }
func DefaultEnum(v *EnumValueDescriptor) DefaultValue {
	return DefaultValue{mapped: MappedEnum, enum: v}
}

// zeroDefault returns proto2's implicit zero-value default for mapped,
// used when a scalar field declares no explicit default.
func zeroDefault(mapped MappedType) DefaultValue {
	switch mapped {
	case MappedInt32:
		return DefaultInt32(0)
	case MappedInt64:
		return DefaultInt64(0)
	case MappedUint32:
		return DefaultUint32(0)
	case MappedUint64:
		return DefaultUint64(0)
	case MappedFloat:
		return DefaultFloat32(0)
	case MappedDouble:
		return DefaultFloat64(0)
	case MappedBool:
		return DefaultBool(false)
	case MappedString:
		return DefaultString("")
	case MappedBytes:
		return DefaultBytes(nil)
	default:
		return DefaultValue{mapped: mapped}
	}
}
