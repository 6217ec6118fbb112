// Package protomessage defines the contract every message implementation —
// dynamic.Message or a hand-written GeneratedAdapter alike — presents to
// the rest of this module: a frozen view over a FieldSet plus an
// UnknownFieldSet, serializable to and parseable from the wire, equal to
// any other implementation that carries the same fields.
package protomessage

import (
	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/fieldset"
	"github.com/modulexcite/protofield/unknown"
	"github.com/modulexcite/protofield/wire"
)

// Message is the read side of the contract. Any two Messages with the same
// MessageDescriptor, AllFields content, and UnknownFields content are
// Equal, regardless of which Go type produced them — a DynamicMessage and
// a GeneratedAdapter for the same proto type are interchangeable here.
type Message interface {
	fieldset.SubMessage

	AllFields() *fieldset.FieldSet
	UnknownFields() *unknown.Set

	ToByteArray() ([]byte, error)
	NewBuilderForType() Builder
}

// Builder is the write side: accumulate field values and wire data, then
// freeze into a Message.
type Builder interface {
	Descriptor() *descriptor.MessageDescriptor

	MergeFromBytes(data []byte, registry descriptor.ExtensionRegistry) error
	MergeFromMessage(other Message) error

	Build() (Message, error)
	BuildPartial() Message
}

// Equal reports whether a and b carry the same populated fields (including
// nested message equality, which their respective AllFields already
// recurses into) and the same unknown data.
func Equal(a, b Message) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Descriptor() != b.Descriptor() {
		return false
	}
	return a.AllFields().Equal(b.AllFields()) && a.UnknownFields().Equal(b.UnknownFields())
}

// WriteDelimitedTo writes m's size as a varint followed by m's own encoding
// — the framing scheme used to pack multiple messages back to back.
func WriteDelimitedTo(m Message, buf *wire.Buffer) error {
	buf.WriteVarint(uint64(m.SerializedSize()))
	return m.WriteTo(buf)
}
