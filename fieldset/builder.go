package fieldset

import "github.com/modulexcite/protofield/descriptor"

// entry is the storage for one field number: either a single Value (for a
// singular field) or a Value slice (for a repeated one). A field never
// switches shape mid-lifetime; the singular and repeated accessors each
// reject a field of the other shape.
type entry struct {
	field     *descriptor.FieldDescriptor
	single    Value
	hasSingle bool
	list      []Value
}

// Mergeable is implemented by message values that know how to merge another
// instance of themselves into a copy of themselves. Builder.MergeFrom uses
// it to give singular MESSAGE fields "merge into the existing value" rather
// than "replace" semantics, without fieldset needing to know what concrete
// message type it is holding.
type Mergeable interface {
	SubMessage
	MergeFromMessage(other SubMessage) SubMessage
}

// Builder is the mutable phase of a FieldSet. It is built up field by field
// and then frozen with Build(), after which the Builder itself becomes
// unusable — Build() discards the Builder's internal map so any further
// call panics instead of silently mutating a FieldSet someone else already
// observed as immutable.
type Builder struct {
	desc    *descriptor.MessageDescriptor
	entries map[int32]*entry
}

// NewBuilder returns an empty Builder for messages shaped like desc.
func NewBuilder(desc *descriptor.MessageDescriptor) *Builder {
	return &Builder{desc: desc, entries: make(map[int32]*entry)}
}

func (b *Builder) checkLive() {
	if b.entries == nil {
		panic("fieldset: use of Builder after Build()")
	}
}

func (b *Builder) entryFor(f *descriptor.FieldDescriptor) *entry {
	e, ok := b.entries[f.Number()]
	if !ok {
		e = &entry{field: f}
		b.entries[f.Number()] = e
	}
	return e
}

func verifyMapped(f *descriptor.FieldDescriptor, v Value) error {
	if f.MappedType() != v.MappedType() {
		return typeMismatch(f, v.MappedType())
	}
	switch f.MappedType() {
	case descriptor.MappedEnum:
		if v.Enum() == nil || v.Enum().Enum() != f.EnumType() {
			return typeMismatch(f, v.MappedType())
		}
	case descriptor.MappedMessage:
		if v.Message() != nil && v.Message().Descriptor() != f.MessageType() {
			return typeMismatch(f, v.MappedType())
		}
	}
	return nil
}

// Has reports whether f, a singular field, is present. It returns an error
// if f is repeated — Has is not meaningful there.
func (b *Builder) Has(f *descriptor.FieldDescriptor) (bool, error) {
	b.checkLive()
	if f.IsRepeated() {
		return false, illegalArgument(f, "Has is not valid on a repeated field")
	}
	e, ok := b.entries[f.Number()]
	return ok && e.hasSingle, nil
}

// Get returns f's current value, or its declared default if f is absent.
// f must be singular.
func (b *Builder) Get(f *descriptor.FieldDescriptor) (Value, error) {
	b.checkLive()
	if f.IsRepeated() {
		return Value{}, illegalArgument(f, "Get is not valid on a repeated field; use GetRepeated")
	}
	if e, ok := b.entries[f.Number()]; ok && e.hasSingle {
		return e.single, nil
	}
	return fromDefault(f.DefaultValue()), nil
}

// Set assigns f's singular value, replacing whatever was there before.
func (b *Builder) Set(f *descriptor.FieldDescriptor, v Value) error {
	b.checkLive()
	if f.IsRepeated() {
		return illegalArgument(f, "Set is not valid on a repeated field; use AddRepeated")
	}
	if f.MappedType() == descriptor.MappedMessage && v.MappedType() == descriptor.MappedMessage && v.Message() == nil {
		b.ClearField(f)
		return nil
	}
	if err := verifyMapped(f, v); err != nil {
		return err
	}
	e := b.entryFor(f)
	e.single = v
	e.hasSingle = true
	return nil
}

// ClearField removes f entirely, singular or repeated.
func (b *Builder) ClearField(f *descriptor.FieldDescriptor) {
	b.checkLive()
	delete(b.entries, f.Number())
}

// GetRepeatedCount reports how many elements f currently holds. f must be
// repeated.
func (b *Builder) GetRepeatedCount(f *descriptor.FieldDescriptor) (int, error) {
	b.checkLive()
	if !f.IsRepeated() {
		return 0, illegalArgument(f, "GetRepeatedCount is not valid on a singular field")
	}
	if e, ok := b.entries[f.Number()]; ok {
		return len(e.list), nil
	}
	return 0, nil
}

// GetRepeated returns element i of repeated field f.
func (b *Builder) GetRepeated(f *descriptor.FieldDescriptor, i int) (Value, error) {
	b.checkLive()
	if !f.IsRepeated() {
		return Value{}, illegalArgument(f, "GetRepeated is not valid on a singular field")
	}
	e, ok := b.entries[f.Number()]
	if !ok || i < 0 || i >= len(e.list) {
		n := 0
		if ok {
			n = len(e.list)
		}
		return Value{}, outOfRange(f, i, n)
	}
	return e.list[i], nil
}

// SetRepeated overwrites element i of repeated field f.
func (b *Builder) SetRepeated(f *descriptor.FieldDescriptor, i int, v Value) error {
	b.checkLive()
	if !f.IsRepeated() {
		return illegalArgument(f, "SetRepeated is not valid on a singular field")
	}
	if err := verifyMapped(f, v); err != nil {
		return err
	}
	e, ok := b.entries[f.Number()]
	if !ok || i < 0 || i >= len(e.list) {
		n := 0
		if ok {
			n = len(e.list)
		}
		return outOfRange(f, i, n)
	}
	e.list[i] = v
	return nil
}

// AddRepeated appends v to repeated field f.
func (b *Builder) AddRepeated(f *descriptor.FieldDescriptor, v Value) error {
	b.checkLive()
	if !f.IsRepeated() {
		return illegalArgument(f, "AddRepeated is not valid on a singular field")
	}
	if err := verifyMapped(f, v); err != nil {
		return err
	}
	e := b.entryFor(f)
	e.list = append(e.list, v)
	return nil
}

// MergeFrom copies every present field of other into b. Scalar and enum
// singular fields are overwritten; singular MESSAGE fields are merged via
// Mergeable if the existing value supports it, otherwise overwritten;
// repeated fields, maps included, have other's elements appended after b's.
func (b *Builder) MergeFrom(other *FieldSet) error {
	b.checkLive()
	if other == nil {
		return nil
	}
	for _, srcField := range orderedFields(other.entries) {
		se, ok := other.entries[srcField.Number()]
		if !ok {
			continue
		}
		if srcField.IsRepeated() {
			dst := b.entryFor(srcField)
			dst.list = append(dst.list, se.list...)
			continue
		}
		if !se.hasSingle {
			continue
		}
		if srcField.MappedType() == descriptor.MappedMessage {
			if existing, err := b.Get(srcField); err == nil && existing.msg != nil {
				if m, ok := existing.msg.(Mergeable); ok {
					merged := m.MergeFromMessage(se.single.msg)
					if err := b.Set(srcField, MessageValue(merged)); err != nil {
						return err
					}
					continue
				}
			}
		}
		if err := b.Set(srcField, se.single); err != nil {
			return err
		}
	}
	return nil
}

// Build freezes b into a FieldSet and invalidates b for further use.
func (b *Builder) Build() *FieldSet {
	b.checkLive()
	fs := &FieldSet{desc: b.desc, entries: b.entries}
	b.entries = nil
	return fs
}
