package dynamic

import (
	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/fieldset"
	"github.com/modulexcite/protofield/protomessage"
	"github.com/modulexcite/protofield/unknown"
	"github.com/modulexcite/protofield/wire"
)

// DefaultMaxDepth bounds how many nested MESSAGE/GROUP levels MergeFromBytes
// will descend before giving up, so a crafted or corrupt input with
// thousands of nested length-delimited wrappers cannot exhaust the stack.
const DefaultMaxDepth = 100

// Builder accumulates field values and unrecognized wire data for one
// message under construction.
type Builder struct {
	desc          *descriptor.MessageDescriptor
	fields        *fieldset.Builder
	unknownFields *unknown.Set
	maxDepth      int
}

// NewBuilder returns an empty Builder for messages shaped like desc.
func NewBuilder(desc *descriptor.MessageDescriptor) *Builder {
	return &Builder{
		desc:          desc,
		fields:        fieldset.NewBuilder(desc),
		unknownFields: unknown.New(),
		maxDepth:      DefaultMaxDepth,
	}
}

func (b *Builder) Descriptor() *descriptor.MessageDescriptor { return b.desc }

// SetField sets a singular field's value. A repeated field is rejected with
// an IllegalArgumentError; use AddRepeatedField for repeated fields instead.
func (b *Builder) SetField(f *descriptor.FieldDescriptor, v fieldset.Value) error {
	return b.fields.Set(f, v)
}

// AddRepeatedField appends one value to a repeated field.
func (b *Builder) AddRepeatedField(f *descriptor.FieldDescriptor, v fieldset.Value) error {
	return b.fields.AddRepeated(f, v)
}

// Fields exposes the underlying fieldset.Builder for callers that need the
// full accessor surface (GetRepeated, ClearField, and so on).
func (b *Builder) Fields() *fieldset.Builder { return b.fields }

// SetMaxDepth overrides DefaultMaxDepth for this Builder (and, transitively,
// every nested sub-builder it constructs while merging).
func (b *Builder) SetMaxDepth(depth int) { b.maxDepth = depth }

// MergeFromBytes parses data as this message's wire format, merging into
// whatever fields this Builder already has.
func (b *Builder) MergeFromBytes(data []byte, registry descriptor.ExtensionRegistry) error {
	return b.mergeFrom(wire.NewBuffer(data), registry, 0)
}

func (b *Builder) mergeFrom(buf *wire.Buffer, registry descriptor.ExtensionRegistry, depth int) error {
	if depth > b.maxDepth {
		return protomessage.WrapMalformed(wire.ErrMalformed)
	}
	for !buf.EOF() && !buf.ReachedLimit() {
		n, wt, err := buf.ReadTag()
		if err != nil {
			return protomessage.WrapMalformed(err)
		}
		if wt == wire.EndGroup {
			return nil
		}
		if err := b.mergeOneField(n, wt, buf, registry, depth); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) mergeOneField(n wire.Number, wt wire.Type, buf *wire.Buffer, registry descriptor.ExtensionRegistry, depth int) error {
	f := b.desc.FindFieldByNumber(int32(n))
	if f == nil && b.desc.IsExtensionNumber(int32(n)) && registry != nil {
		f = registry.FindExtensionByNumber(b.desc, int32(n))
	}
	if f != nil && wt != f.FieldType().WireType() {
		// Only a packed run of a repeated non-enum scalar may arrive with a
		// wire type other than the declared one; anything else is unknown.
		packedRun := wt == wire.Bytes && f.IsRepeated() &&
			f.MappedType() != descriptor.MappedEnum && f.MappedType() != descriptor.MappedMessage
		if !packedRun {
			f = nil
		}
	}
	if f == nil {
		if err := b.unknownFields.MergeField(n, wt, buf); err != nil {
			return protomessage.WrapMalformed(err)
		}
		return nil
	}
	if f.MappedType() == descriptor.MappedMessage {
		return b.mergeMessageField(f, wt, buf, registry, depth)
	}
	ok, raw, err := fieldset.MergeScalarOrEnum(b.fields, f, wt, buf)
	if err != nil {
		return protomessage.WrapMalformed(err)
	}
	if !ok {
		b.unknownFields.MergeVarint(int32(n), raw)
	}
	return nil
}

// mergeMessageField decodes one nested MESSAGE or GROUP occurrence of f,
// merging it into whatever value f already has (merge, not replace, for
// singular fields; append for repeated ones).
func (b *Builder) mergeMessageField(f *descriptor.FieldDescriptor, wt wire.Type, buf *wire.Buffer, registry descriptor.ExtensionRegistry, depth int) error {
	sub := NewBuilder(f.MessageType())
	sub.maxDepth = b.maxDepth

	if existing := b.existingSubMessage(f); existing != nil {
		if pm, ok := existing.(protomessage.Message); ok {
			if err := sub.MergeFromMessage(pm); err != nil {
				return err
			}
		}
	}

	if f.FieldType() == descriptor.GroupType {
		if err := sub.mergeFrom(buf, registry, depth+1); err != nil {
			return err
		}
	} else {
		data, err := buf.ReadBytes()
		if err != nil {
			return protomessage.WrapMalformed(err)
		}
		if err := sub.mergeFrom(wire.NewBuffer(data), registry, depth+1); err != nil {
			return err
		}
	}

	merged, err := sub.Build()
	if err != nil {
		return err
	}
	if f.IsRepeated() {
		return b.fields.AddRepeated(f, fieldset.MessageValue(merged))
	}
	return b.fields.Set(f, fieldset.MessageValue(merged))
}

func (b *Builder) existingSubMessage(f *descriptor.FieldDescriptor) fieldset.SubMessage {
	if f.IsRepeated() {
		return nil
	}
	v, err := b.fields.Get(f)
	if err != nil {
		return nil
	}
	return v.Message()
}

// MergeFromMessage merges another Message of the same descriptor into b,
// field by field, plus its unknown data.
func (b *Builder) MergeFromMessage(other protomessage.Message) error {
	if other == nil {
		return nil
	}
	if err := b.fields.MergeFrom(other.AllFields()); err != nil {
		return err
	}
	b.unknownFields.MergeFrom(other.UnknownFields())
	return nil
}

// Build freezes b into a Message. It fails with an UninitializedError if a
// required field, recursively, is still absent; b then keeps its contents
// and stays usable.
func (b *Builder) Build() (protomessage.Message, error) {
	m := b.BuildPartial().(*Message)
	if !m.IsInitialized() {
		b.fields = m.fields.ToBuilder()
		b.unknownFields = cloneUnknown(m.unknownFields)
		return nil, &protomessage.UninitializedError{MessageType: b.desc.FullName()}
	}
	return m, nil
}

// BuildPartial freezes b into a Message without checking required fields.
func (b *Builder) BuildPartial() protomessage.Message {
	unk := b.unknownFields
	b.unknownFields = nil
	unk.MakeImmutable()
	return &Message{desc: b.desc, fields: b.fields.Build(), unknownFields: unk}
}

var _ protomessage.Builder = (*Builder)(nil)
