package fieldset

import (
	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/wire"
)

// isPackable reports whether t is one of the scalar/enum FieldTypes eligible
// for the packed representation (proto disallows packing STRING, BYTES, and
// MESSAGE/GROUP).
func isPackable(t descriptor.FieldType) bool {
	switch t {
	case descriptor.StringType, descriptor.BytesType, descriptor.MessageFieldType, descriptor.GroupType:
		return false
	default:
		return true
	}
}

// decodeScalarBody reads one value of f's declared FieldType, using
// whichever wire representation that type canonically has. It is never
// called for MESSAGE/GROUP fields — those are decoded one level up, by
// whatever owns constructing the nested message builder.
func decodeScalarBody(f *descriptor.FieldDescriptor, buf *wire.Buffer) (Value, error) {
	switch f.FieldType() {
	case descriptor.Int32:
		v, err := buf.ReadVarint()
		return Int32Value(int32(v)), err
	case descriptor.Uint32:
		v, err := buf.ReadVarint()
		return Uint32Value(uint32(v)), err
	case descriptor.Sint32:
		v, err := buf.ReadVarint()
		return Int32Value(wire.DecodeZigZag32(v)), err
	case descriptor.Int64:
		v, err := buf.ReadVarint()
		return Int64Value(int64(v)), err
	case descriptor.Uint64:
		v, err := buf.ReadVarint()
		return Uint64Value(v), err
	case descriptor.Sint64:
		v, err := buf.ReadVarint()
		return Int64Value(wire.DecodeZigZag64(v)), err
	case descriptor.BoolType:
		v, err := buf.ReadBool()
		return BoolValue(v), err
	case descriptor.Fixed32:
		v, err := buf.ReadFixed32()
		return Uint32Value(v), err
	case descriptor.Sfixed32:
		v, err := buf.ReadFixed32()
		return Int32Value(int32(v)), err
	case descriptor.FloatType:
		v, err := buf.ReadFloat()
		return Float32Value(v), err
	case descriptor.Fixed64:
		v, err := buf.ReadFixed64()
		return Uint64Value(v), err
	case descriptor.Sfixed64:
		v, err := buf.ReadFixed64()
		return Int64Value(int64(v)), err
	case descriptor.DoubleType:
		v, err := buf.ReadDouble()
		return Float64Value(v), err
	case descriptor.StringType:
		v, err := buf.ReadString()
		return StringValue(v), err
	case descriptor.BytesType:
		v, err := buf.ReadBytes()
		return BytesValue(v), err
	default:
		return Value{}, illegalArgument(f, "not a scalar field type")
	}
}

// MergeScalarOrEnum decodes one wire-format occurrence of f — scalar, or
// ENUM — off buf and records it on b. wt is the wire type the tag actually
// carried. For a repeated packable non-enum field it tolerates both the
// packed (length-delimited run of back-to-back values) and unpacked (one tag
// per value) wire representations, regardless of what f.IsPacked() declares.
// An ENUM field is always read as one varint, whatever wt is; a packed run
// of enum values is not decoded here.
//
// If f is an ENUM field and the decoded number has no matching
// EnumValueDescriptor, MergeScalarOrEnum returns ok=false so the caller can
// divert the raw varint to an UnknownFieldSet instead.
func MergeScalarOrEnum(b *Builder, f *descriptor.FieldDescriptor, wt wire.Type, buf *wire.Buffer) (ok bool, rawValue uint64, err error) {
	if f.MappedType() == descriptor.MappedEnum {
		v, rerr := buf.ReadVarint()
		if rerr != nil {
			return false, 0, rerr
		}
		ev := f.EnumType().FindValueByNumber(int32(v))
		if ev == nil {
			return false, v, nil
		}
		if f.IsRepeated() {
			return true, 0, b.AddRepeated(f, EnumValue(ev))
		}
		return true, 0, b.Set(f, EnumValue(ev))
	}

	if wt == wire.Bytes && f.IsRepeated() && isPackable(f.FieldType()) {
		data, rerr := buf.ReadBytes()
		if rerr != nil {
			return false, 0, rerr
		}
		sub := wire.NewBuffer(data)
		for !sub.EOF() {
			v, derr := decodeScalarBody(f, sub)
			if derr != nil {
				return false, 0, derr
			}
			if err := b.AddRepeated(f, v); err != nil {
				return false, 0, err
			}
		}
		return true, 0, nil
	}

	v, derr := decodeScalarBody(f, buf)
	if derr != nil {
		return false, 0, derr
	}
	if f.IsRepeated() {
		return true, 0, b.AddRepeated(f, v)
	}
	return true, 0, b.Set(f, v)
}
