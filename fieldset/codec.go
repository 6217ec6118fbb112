package fieldset

import (
	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/wire"
)

// WriteTo serializes every populated field of fs in ascending field-number
// order. Message-typed fields delegate to their own SubMessage.WriteTo;
// everything else is encoded directly against desc's declared FieldType.
func (fs *FieldSet) WriteTo(buf *wire.Buffer) error {
	messageSet := fs.desc.Options().MessageSetWireFormat
	for _, f := range orderedFields(fs.entries) {
		e := fs.entries[f.Number()]
		if messageSet && f.IsExtension() && f.MappedType() == descriptor.MappedMessage && !f.IsRepeated() {
			if err := writeMessageSetEntry(buf, f, e.single); err != nil {
				return err
			}
			continue
		}
		if f.IsRepeated() {
			if len(e.list) == 0 {
				continue
			}
			if f.IsPacked() && isPackable(f.FieldType()) {
				if err := writePacked(buf, f, e.list); err != nil {
					return err
				}
				continue
			}
			for _, v := range e.list {
				if err := writeSingle(buf, f, v); err != nil {
					return err
				}
			}
			continue
		}
		if e.hasSingle {
			if err := writeSingle(buf, f, e.single); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMessageSetEntry(buf *wire.Buffer, f *descriptor.FieldDescriptor, v Value) error {
	payload := &wire.Buffer{}
	if err := v.msg.WriteTo(payload); err != nil {
		return err
	}
	buf.WriteMessageSetExtension(f.Number(), payload.Bytes())
	return nil
}

func writeSingle(buf *wire.Buffer, f *descriptor.FieldDescriptor, v Value) error {
	wt := f.FieldType().WireType()
	num := wire.Number(f.Number())
	switch f.MappedType() {
	case descriptor.MappedMessage:
		if f.FieldType() == descriptor.GroupType {
			buf.WriteTag(num, wire.StartGroup)
			if err := v.msg.WriteTo(buf); err != nil {
				return err
			}
			buf.WriteTag(num, wire.EndGroup)
			return nil
		}
		buf.WriteTag(num, wire.Bytes)
		buf.WriteVarint(uint64(v.msg.SerializedSize()))
		return v.msg.WriteTo(buf)
	case descriptor.MappedEnum:
		buf.WriteTag(num, wire.Varint)
		buf.WriteVarint(uint64(int64(v.enum.Number())))
		return nil
	case descriptor.MappedString:
		buf.WriteTag(num, wire.Bytes)
		buf.WriteString(v.s)
		return nil
	case descriptor.MappedBytes:
		buf.WriteTag(num, wire.Bytes)
		buf.WriteBytes(v.bytes)
		return nil
	default:
		buf.WriteTag(num, wt)
		writeScalarBody(buf, f, v)
		return nil
	}
}

func writeScalarBody(buf *wire.Buffer, f *descriptor.FieldDescriptor, v Value) {
	switch f.FieldType() {
	case descriptor.Int32:
		buf.WriteVarint(uint64(int64(v.i32)))
	case descriptor.Uint32:
		buf.WriteVarint(uint64(v.u32))
	case descriptor.Sint32:
		buf.WriteVarint(uint64(wire.EncodeZigZag32(v.i32)))
	case descriptor.Int64:
		buf.WriteVarint(uint64(v.i64))
	case descriptor.Uint64:
		buf.WriteVarint(v.u64)
	case descriptor.Sint64:
		buf.WriteVarint(wire.EncodeZigZag64(v.i64))
	case descriptor.BoolType:
		buf.WriteBool(v.b)
	case descriptor.Fixed32:
		buf.WriteFixed32(v.u32)
	case descriptor.Sfixed32:
		buf.WriteFixed32(uint32(v.i32))
	case descriptor.FloatType:
		buf.WriteFloat(v.f32)
	case descriptor.Fixed64:
		buf.WriteFixed64(v.u64)
	case descriptor.Sfixed64:
		buf.WriteFixed64(uint64(v.i64))
	case descriptor.DoubleType:
		buf.WriteDouble(v.f64)
	case descriptor.EnumType:
		buf.WriteVarint(uint64(int64(v.enum.Number())))
	}
}

func scalarBodySize(f *descriptor.FieldDescriptor, v Value) int {
	switch f.FieldType() {
	case descriptor.Int32:
		return wire.SizeVarint(uint64(int64(v.i32)))
	case descriptor.Uint32:
		return wire.SizeVarint(uint64(v.u32))
	case descriptor.Sint32:
		return wire.SizeVarint(uint64(wire.EncodeZigZag32(v.i32)))
	case descriptor.Int64:
		return wire.SizeVarint(uint64(v.i64))
	case descriptor.Uint64:
		return wire.SizeVarint(v.u64)
	case descriptor.Sint64:
		return wire.SizeVarint(wire.EncodeZigZag64(v.i64))
	case descriptor.BoolType:
		return 1
	case descriptor.Fixed32, descriptor.Sfixed32, descriptor.FloatType:
		return 4
	case descriptor.Fixed64, descriptor.Sfixed64, descriptor.DoubleType:
		return 8
	case descriptor.EnumType:
		return wire.SizeVarint(uint64(int64(v.enum.Number())))
	default:
		return 0
	}
}

// writePacked emits one tag + length-delimited run holding every element's
// encoded body back to back, per spec's packed-repeated rule.
func writePacked(buf *wire.Buffer, f *descriptor.FieldDescriptor, list []Value) error {
	num := wire.Number(f.Number())
	size := 0
	for _, v := range list {
		size += scalarBodySize(f, v)
	}
	buf.WriteTag(num, wire.Bytes)
	buf.WriteVarint(uint64(size))
	for _, v := range list {
		writeScalarBody(buf, f, v)
	}
	return nil
}

// SerializedSize returns the number of bytes WriteTo would emit.
func (fs *FieldSet) SerializedSize() int {
	total := 0
	messageSet := fs.desc.Options().MessageSetWireFormat
	for _, f := range orderedFields(fs.entries) {
		e := fs.entries[f.Number()]
		if messageSet && f.IsExtension() && f.MappedType() == descriptor.MappedMessage && !f.IsRepeated() {
			total += wire.SizeMessageSetExtension(f.Number(), mustBytes(e.single.msg))
			continue
		}
		if f.IsRepeated() {
			if len(e.list) == 0 {
				continue
			}
			if f.IsPacked() && isPackable(f.FieldType()) {
				size := 0
				for _, v := range e.list {
					size += scalarBodySize(f, v)
				}
				total += wire.SizeTag(wire.Number(f.Number())) + wire.SizeVarint(uint64(size)) + size
				continue
			}
			for _, v := range e.list {
				total += singleSize(f, v)
			}
			continue
		}
		if e.hasSingle {
			total += singleSize(f, e.single)
		}
	}
	return total
}

func mustBytes(m SubMessage) []byte {
	buf := &wire.Buffer{}
	_ = m.WriteTo(buf)
	return buf.Bytes()
}

func singleSize(f *descriptor.FieldDescriptor, v Value) int {
	num := wire.Number(f.Number())
	switch f.MappedType() {
	case descriptor.MappedMessage:
		if f.FieldType() == descriptor.GroupType {
			return 2*wire.SizeTag(num) + v.msg.SerializedSize()
		}
		size := v.msg.SerializedSize()
		return wire.SizeTag(num) + wire.SizeVarint(uint64(size)) + size
	case descriptor.MappedEnum:
		return wire.SizeTag(num) + wire.SizeVarint(uint64(int64(v.enum.Number())))
	case descriptor.MappedString:
		return wire.SizeTag(num) + wire.SizeString(v.s)
	case descriptor.MappedBytes:
		return wire.SizeTag(num) + wire.SizeBytes(v.bytes)
	default:
		return wire.SizeTag(num) + scalarBodySize(f, v)
	}
}
