package descriptor

// Well-known wrapper types (google.protobuf.{Int32,Int64,...}Value) are
// ordinary single-field messages — field number 1, name "value" — so the
// field-set core needs no special case for them; only a descriptor.
//
// The descriptor table is deliberately private: callers ask for a wrapper
// descriptor by the FieldType of the value it wraps.
var wrapperDescriptors = map[FieldType]*MessageDescriptor{}

func init() {
	for _, t := range []FieldType{
		DoubleType, FloatType, Int64, Uint64, Int32, Uint32, BoolType, StringType, BytesType,
	} {
		name := wrapperFullName(t)
		wrapperDescriptors[t] = NewMessageDescriptor(name, []*FieldDescriptor{
			NewScalarField(1, "value", t),
		}, MessageOptions{})
	}
}

func wrapperFullName(t FieldType) string {
	switch t {
	case DoubleType:
		return "google.protobuf.DoubleValue"
	case FloatType:
		return "google.protobuf.FloatValue"
	case Int64:
		return "google.protobuf.Int64Value"
	case Uint64:
		return "google.protobuf.UInt64Value"
	case Int32:
		return "google.protobuf.Int32Value"
	case Uint32:
		return "google.protobuf.UInt32Value"
	case BoolType:
		return "google.protobuf.BoolValue"
	case StringType:
		return "google.protobuf.StringValue"
	case BytesType:
		return "google.protobuf.BytesValue"
	default:
		return "google.protobuf.Value"
	}
}

// WellKnownWrapperDescriptor returns the synthetic MessageDescriptor for the
// google.protobuf wrapper type that holds a value of FieldType t, or nil if
// t has no wrapper type.
func WellKnownWrapperDescriptor(t FieldType) *MessageDescriptor {
	return wrapperDescriptors[t]
}
