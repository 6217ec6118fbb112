package fieldset

import "github.com/modulexcite/protofield/descriptor"

// FieldSet is the frozen phase of a field-set core: built once by a
// Builder and safe afterward for unlimited concurrent readers. There is no
// mutation method on this type at all — not a guarded one, an absent one —
// so "does freezing actually prevent writes" is a question the compiler
// answers, not a test.
type FieldSet struct {
	desc    *descriptor.MessageDescriptor
	entries map[int32]*entry
}

// Empty returns a frozen, field-less FieldSet for desc.
func Empty(desc *descriptor.MessageDescriptor) *FieldSet {
	return &FieldSet{desc: desc, entries: map[int32]*entry{}}
}

func (fs *FieldSet) Descriptor() *descriptor.MessageDescriptor { return fs.desc }

// ToBuilder returns a new Builder pre-populated with fs's entries, for
// copy-on-write-style modification of an otherwise-frozen value.
func (fs *FieldSet) ToBuilder() *Builder {
	b := NewBuilder(fs.desc)
	for num, e := range fs.entries {
		clone := &entry{field: e.field, single: e.single, hasSingle: e.hasSingle}
		clone.list = append(clone.list, e.list...)
		b.entries[num] = clone
	}
	return b
}

func (fs *FieldSet) Has(f *descriptor.FieldDescriptor) (bool, error) {
	if f.IsRepeated() {
		return false, illegalArgument(f, "Has is not valid on a repeated field")
	}
	e, ok := fs.entries[f.Number()]
	return ok && e.hasSingle, nil
}

func (fs *FieldSet) Get(f *descriptor.FieldDescriptor) (Value, error) {
	if f.IsRepeated() {
		return Value{}, illegalArgument(f, "Get is not valid on a repeated field; use GetRepeated")
	}
	if e, ok := fs.entries[f.Number()]; ok && e.hasSingle {
		return e.single, nil
	}
	return fromDefault(f.DefaultValue()), nil
}

func (fs *FieldSet) GetRepeatedCount(f *descriptor.FieldDescriptor) (int, error) {
	if !f.IsRepeated() {
		return 0, illegalArgument(f, "GetRepeatedCount is not valid on a singular field")
	}
	if e, ok := fs.entries[f.Number()]; ok {
		return len(e.list), nil
	}
	return 0, nil
}

func (fs *FieldSet) GetRepeated(f *descriptor.FieldDescriptor, i int) (Value, error) {
	if !f.IsRepeated() {
		return Value{}, illegalArgument(f, "GetRepeated is not valid on a singular field")
	}
	e, ok := fs.entries[f.Number()]
	if !ok || i < 0 || i >= len(e.list) {
		n := 0
		if ok {
			n = len(e.list)
		}
		return Value{}, outOfRange(f, i, n)
	}
	return e.list[i], nil
}

// Range visits every populated field, in ascending field-number order — the
// canonical order the wire codec also serializes in.
func (fs *FieldSet) Range(visit func(f *descriptor.FieldDescriptor, v Value, repeated []Value)) {
	for _, f := range orderedFields(fs.entries) {
		e := fs.entries[f.Number()]
		if f.IsRepeated() {
			if len(e.list) > 0 {
				visit(f, Value{}, e.list)
			}
			continue
		}
		if e.hasSingle {
			visit(f, e.single, nil)
		}
	}
}

func orderedFields(entries map[int32]*entry) []*descriptor.FieldDescriptor {
	fields := make([]*descriptor.FieldDescriptor, 0, len(entries))
	for _, e := range entries {
		fields = append(fields, e.field)
	}
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1].Number() > fields[j].Number(); j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
	return fields
}

// IsInitialized reports whether every required field, recursively through
// any message-typed fields, is present.
func (fs *FieldSet) IsInitialized() bool {
	for _, f := range fs.desc.Fields() {
		e, ok := fs.entries[f.Number()]
		if f.IsRequired() && (!ok || !e.hasSingle) {
			return false
		}
		if !ok {
			continue
		}
		if f.MappedType() != descriptor.MappedMessage {
			continue
		}
		if f.IsRepeated() {
			for _, v := range e.list {
				if v.msg != nil && !v.msg.IsInitialized() {
					return false
				}
			}
		} else if e.hasSingle && e.single.msg != nil && !e.single.msg.IsInitialized() {
			return false
		}
	}
	return true
}

// Equal reports whether fs and other carry the same values for the same
// descriptor.
func (fs *FieldSet) Equal(other *FieldSet) bool {
	if fs == nil || other == nil {
		return fs == other
	}
	if fs.desc != other.desc {
		return false
	}
	if len(fs.entries) != len(other.entries) {
		return false
	}
	for num, a := range fs.entries {
		b, ok := other.entries[num]
		if !ok {
			return false
		}
		if a.hasSingle != b.hasSingle {
			return false
		}
		if a.hasSingle && !equalValues(a.single, b.single) {
			return false
		}
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !equalValues(a.list[i], b.list[i]) {
				return false
			}
		}
	}
	return true
}
