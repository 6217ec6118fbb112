// Package dynamic implements Message and Builder entirely in terms of a
// MessageDescriptor plus FieldSet and UnknownFieldSet — no generated Go
// struct is involved. It is the reference implementation of the
// protomessage contract, and the type the rest of this module's tests use
// to exercise both it and the GeneratedAdapter contract side by side.
package dynamic

import (
	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/fieldset"
	"github.com/modulexcite/protofield/protomessage"
	"github.com/modulexcite/protofield/unknown"
	"github.com/modulexcite/protofield/wire"
)

// Message is a frozen, descriptor-shaped value backed entirely by a
// FieldSet and an UnknownFieldSet. It is safe to share across goroutines.
type Message struct {
	desc          *descriptor.MessageDescriptor
	fields        *fieldset.FieldSet
	unknownFields *unknown.Set
}

// NewEmptyMessage returns a Message for desc with no fields set, useful as
// a DefaultInstanceForType.
func NewEmptyMessage(desc *descriptor.MessageDescriptor) *Message {
	return &Message{desc: desc, fields: fieldset.Empty(desc), unknownFields: unknown.New().MakeImmutable()}
}

func (m *Message) Descriptor() *descriptor.MessageDescriptor { return m.desc }
func (m *Message) AllFields() *fieldset.FieldSet             { return m.fields }
func (m *Message) UnknownFields() *unknown.Set                { return m.unknownFields }
func (m *Message) IsInitialized() bool                        { return m.fields.IsInitialized() }

// Equal implements fieldset.SubMessage. other must itself expose
// AllFields/UnknownFields (i.e. be a protomessage.Message) to compare equal
// to anything — a bare fieldset.SubMessage with no such access can only
// ever be unequal here, since there is nothing to compare it against.
func (m *Message) Equal(other fieldset.SubMessage) bool {
	o, ok := other.(protomessage.Message)
	if !ok {
		return false
	}
	return protomessage.Equal(m, o)
}

func (m *Message) WriteTo(buf *wire.Buffer) error {
	if err := m.fields.WriteTo(buf); err != nil {
		return err
	}
	m.unknownFields.WriteTo(buf)
	return nil
}

func (m *Message) SerializedSize() int {
	return m.fields.SerializedSize() + m.unknownFields.SerializedSize()
}

func (m *Message) ToByteArray() ([]byte, error) {
	if !m.IsInitialized() {
		return nil, &protomessage.UninitializedError{MessageType: m.desc.FullName()}
	}
	buf := &wire.Buffer{}
	if err := m.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Message) NewBuilderForType() protomessage.Builder { return NewBuilder(m.desc) }

// ToBuilder returns a Builder seeded with m's current contents, for
// copy-on-write-style modification of an otherwise-frozen Message.
func (m *Message) ToBuilder() *Builder {
	return &Builder{
		desc:          m.desc,
		fields:        m.fields.ToBuilder(),
		unknownFields: cloneUnknown(m.unknownFields),
		maxDepth:      DefaultMaxDepth,
	}
}

func cloneUnknown(s *unknown.Set) *unknown.Set {
	fresh := unknown.New()
	fresh.MergeFrom(s)
	return fresh
}

// MergeFromMessage implements fieldset.Mergeable, letting
// fieldset.Builder.MergeFrom merge a singular MESSAGE field's existing
// dynamic value with an incoming one instead of replacing it outright.
func (m *Message) MergeFromMessage(other fieldset.SubMessage) fieldset.SubMessage {
	b := m.ToBuilder()
	if pm, ok := other.(protomessage.Message); ok {
		_ = b.MergeFromMessage(pm)
	}
	return b.BuildPartial()
}

var _ protomessage.Message = (*Message)(nil)
var _ fieldset.Mergeable = (*Message)(nil)
