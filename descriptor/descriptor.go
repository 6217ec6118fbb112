package descriptor

import "fmt"

// EnumValueDescriptor names one member of an EnumDescriptor.
type EnumValueDescriptor struct {
	enum   *EnumDescriptor
	name   string
	number int32
}

func (v *EnumValueDescriptor) Enum() *EnumDescriptor { return v.enum }
func (v *EnumValueDescriptor) Name() string          { return v.name }
func (v *EnumValueDescriptor) Number() int32         { return v.number }

// EnumDescriptor describes an enum type: its ordered values, indexed for
// lookup by both number and name.
type EnumDescriptor struct {
	fullName string
	values   []*EnumValueDescriptor
	byNumber map[int32]*EnumValueDescriptor
	byName   map[string]*EnumValueDescriptor
}

// NewEnumDescriptor builds an EnumDescriptor named fullName with the given
// (name, number) members, in declaration order.
func NewEnumDescriptor(fullName string, members []struct {
	Name   string
	Number int32
}) *EnumDescriptor {
	e := &EnumDescriptor{
		fullName: fullName,
		byNumber: make(map[int32]*EnumValueDescriptor, len(members)),
		byName:   make(map[string]*EnumValueDescriptor, len(members)),
	}
	for _, m := range members {
		v := &EnumValueDescriptor{enum: e, name: m.Name, number: m.Number}
		e.values = append(e.values, v)
		if _, dup := e.byNumber[m.Number]; !dup {
			e.byNumber[m.Number] = v
		}
		e.byName[m.Name] = v
	}
	return e
}

func (e *EnumDescriptor) FullName() string                { return e.fullName }
func (e *EnumDescriptor) Values() []*EnumValueDescriptor   { return e.values }
func (e *EnumDescriptor) FindValueByNumber(n int32) *EnumValueDescriptor {
	return e.byNumber[n]
}
func (e *EnumDescriptor) FindValueByName(s string) *EnumValueDescriptor {
	return e.byName[s]
}

// ExtensionRange is a [start, end) range of field numbers reserved for
// extensions of a message.
type ExtensionRange struct {
	Start, End int32
}

func (r ExtensionRange) Contains(n int32) bool { return n >= r.Start && n < r.End }

// MessageOptions holds the message-level options this core cares about.
type MessageOptions struct {
	MessageSetWireFormat bool
}

// MessageDescriptor describes a message type: its fields (ordered by tag),
// extension ranges, and options. Nested message/enum descriptors are
// reachable only through the FieldDescriptors that reference them, mirroring
// spec §6's descriptor interface.
type MessageDescriptor struct {
	fullName   string
	fields     []*FieldDescriptor
	byNumber   map[int32]*FieldDescriptor
	byName     map[string]*FieldDescriptor
	extRanges  []ExtensionRange
	options    MessageOptions
	mapEntry   bool
}

// NewMessageDescriptor builds a MessageDescriptor. Fields must already be
// constructed (via NewField*) but not yet attached to any other message;
// NewMessageDescriptor stamps their ContainingType back-reference.
func NewMessageDescriptor(fullName string, fields []*FieldDescriptor, opts MessageOptions, extRanges ...ExtensionRange) *MessageDescriptor {
	m := &MessageDescriptor{
		fullName:  fullName,
		byNumber:  make(map[int32]*FieldDescriptor, len(fields)),
		byName:    make(map[string]*FieldDescriptor, len(fields)),
		extRanges: extRanges,
		options:   opts,
	}
	sorted := append([]*FieldDescriptor(nil), fields...)
	sortFieldsByNumber(sorted)
	for _, f := range sorted {
		f.containingType = m
		m.fields = append(m.fields, f)
		m.byNumber[f.number] = f
		m.byName[f.name] = f
	}
	return m
}

// NewIncompleteMessageDescriptor returns a named MessageDescriptor with no
// fields yet. It exists for callers that must register a type's name before
// they can resolve other fields that reference it by name — a `.proto`
// loader walking forward references, for instance. Finalize must be called
// exactly once before the descriptor is used for anything else.
func NewIncompleteMessageDescriptor(fullName string) *MessageDescriptor {
	return &MessageDescriptor{
		fullName: fullName,
		byNumber: make(map[int32]*FieldDescriptor),
		byName:   make(map[string]*FieldDescriptor),
	}
}

// Finalize attaches fields and options to a MessageDescriptor created by
// NewIncompleteMessageDescriptor. It panics if called more than once.
func (m *MessageDescriptor) Finalize(fields []*FieldDescriptor, opts MessageOptions, extRanges ...ExtensionRange) {
	if m.fields != nil {
		panic("descriptor: Finalize called twice for " + m.fullName)
	}
	m.fields = make([]*FieldDescriptor, 0, len(fields))
	sorted := append([]*FieldDescriptor(nil), fields...)
	sortFieldsByNumber(sorted)
	for _, f := range sorted {
		f.containingType = m
		m.fields = append(m.fields, f)
		m.byNumber[f.number] = f
		m.byName[f.name] = f
	}
	m.options = opts
	m.extRanges = extRanges
}

func sortFieldsByNumber(fields []*FieldDescriptor) {
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1].number > fields[j].number; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
}

func (m *MessageDescriptor) FullName() string                 { return m.fullName }
func (m *MessageDescriptor) Fields() []*FieldDescriptor        { return m.fields }
func (m *MessageDescriptor) Options() MessageOptions           { return m.options }
func (m *MessageDescriptor) ExtensionRanges() []ExtensionRange { return m.extRanges }
func (m *MessageDescriptor) IsMapEntry() bool                  { return m.mapEntry }

func (m *MessageDescriptor) FindFieldByNumber(n int32) *FieldDescriptor { return m.byNumber[n] }
func (m *MessageDescriptor) FindFieldByName(s string) *FieldDescriptor  { return m.byName[s] }

// IsExtensionNumber reports whether n falls within a declared extension
// range of m.
func (m *MessageDescriptor) IsExtensionNumber(n int32) bool {
	for _, r := range m.extRanges {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// FieldDescriptor is the immutable description of one field, as spec §3
// enumerates it: tag, name, field type, mapped type, cardinality, packed
// flag, required/optional flag, extension flag, containing message,
// optional nested message/enum type, default value.
type FieldDescriptor struct {
	number         int32
	name           string
	fieldType      FieldType
	cardinality    Cardinality
	packed         bool
	required       bool
	extension      bool
	containingType *MessageDescriptor
	messageType    *MessageDescriptor
	enumType       *EnumDescriptor
	mapKey         *FieldDescriptor
	mapValue       *FieldDescriptor
	defaultValue   DefaultValue
}

// FieldOption configures a FieldDescriptor at construction time.
type FieldOption func(*FieldDescriptor)

func Repeated() FieldOption   { return func(f *FieldDescriptor) { f.cardinality = CardinalityRepeated } }
func Packed() FieldOption     { return func(f *FieldDescriptor) { f.packed = true } }
func Required() FieldOption   { return func(f *FieldDescriptor) { f.required = true } }
func Extension() FieldOption  { return func(f *FieldDescriptor) { f.extension = true } }
func Default(v DefaultValue) FieldOption {
	return func(f *FieldDescriptor) { f.defaultValue = v }
}

// NewScalarField builds a scalar (non-message, non-enum) field descriptor.
func NewScalarField(number int32, name string, t FieldType, opts ...FieldOption) *FieldDescriptor {
	if t == EnumType || t == MessageFieldType || t == GroupType {
		panic(fmt.Sprintf("descriptor: %s is not a scalar field type", t))
	}
	f := &FieldDescriptor{number: number, name: name, fieldType: t, defaultValue: zeroDefault(t.MappedType())}
	for _, o := range opts {
		o(f)
	}
	return f
}

// NewEnumField builds an ENUM field descriptor referencing enumType.
func NewEnumField(number int32, name string, enumType *EnumDescriptor, opts ...FieldOption) *FieldDescriptor {
	f := &FieldDescriptor{number: number, name: name, fieldType: EnumType, enumType: enumType}
	if len(enumType.values) > 0 {
		f.defaultValue = DefaultEnum(enumType.values[0])
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// NewMessageField builds a MESSAGE field descriptor referencing
// messageType. Its FieldType is always MessageFieldType; this constructor
// does not produce legacy GroupType fields.
func NewMessageField(number int32, name string, messageType *MessageDescriptor, opts ...FieldOption) *FieldDescriptor {
	f := &FieldDescriptor{number: number, name: name, fieldType: MessageFieldType, messageType: messageType}
	for _, o := range opts {
		o(f)
	}
	return f
}

// NewMapField builds a repeated-message field whose implicit entry type has
// a "key" (field 1) and "value" (field 2) sub-field, per the map
// representation described in SPEC_FULL.md.
func NewMapField(number int32, name string, key, value *FieldDescriptor) *FieldDescriptor {
	entryFields := []*FieldDescriptor{
		cloneAsEntryField(key, 1, "key"),
		cloneAsEntryField(value, 2, "value"),
	}
	entry := NewMessageDescriptor(name+".Entry", entryFields, MessageOptions{})
	entry.mapEntry = true
	f := NewMessageField(number, name, entry, Repeated())
	f.mapKey = entry.fields[0]
	f.mapValue = entry.fields[1]
	return f
}

func cloneAsEntryField(src *FieldDescriptor, number int32, name string) *FieldDescriptor {
	clone := *src
	clone.number = number
	clone.name = name
	clone.cardinality = Singular
	clone.containingType = nil
	return &clone
}

func (f *FieldDescriptor) Number() int32                      { return f.number }
func (f *FieldDescriptor) Name() string                       { return f.name }
func (f *FieldDescriptor) FieldType() FieldType                { return f.fieldType }
func (f *FieldDescriptor) MappedType() MappedType              { return f.fieldType.MappedType() }
func (f *FieldDescriptor) Cardinality() Cardinality            { return f.cardinality }
func (f *FieldDescriptor) IsRepeated() bool                    { return f.cardinality == CardinalityRepeated }
func (f *FieldDescriptor) IsPacked() bool                      { return f.packed }
func (f *FieldDescriptor) IsRequired() bool                    { return f.required }
func (f *FieldDescriptor) IsExtension() bool                   { return f.extension }
func (f *FieldDescriptor) ContainingType() *MessageDescriptor  { return f.containingType }
func (f *FieldDescriptor) MessageType() *MessageDescriptor     { return f.messageType }
func (f *FieldDescriptor) EnumType() *EnumDescriptor           { return f.enumType }
func (f *FieldDescriptor) DefaultValue() DefaultValue          { return f.defaultValue }
func (f *FieldDescriptor) IsMap() bool                         { return f.mapKey != nil }
func (f *FieldDescriptor) MapKey() *FieldDescriptor            { return f.mapKey }
func (f *FieldDescriptor) MapValue() *FieldDescriptor          { return f.mapValue }

// BindExtension sets f's containing type to owner. It exists for extension
// fields, which are declared inside an `extend` block rather than the
// message they extend, so NewMessageDescriptor never sees them.
func (f *FieldDescriptor) BindExtension(owner *MessageDescriptor) {
	f.containingType = owner
}

// FullName is the field's containing-type-qualified name, used in
// TypeMismatch diagnostics (spec §4.3): "Type.name" for an ordinary field,
// "Type.[name]" for an extension, and the plain name when the field has no
// containing type.
func (f *FieldDescriptor) FullName() string {
	if f.containingType == nil {
		return f.name
	}
	if f.extension {
		return f.containingType.fullName + ".[" + f.name + "]"
	}
	return f.containingType.fullName + "." + f.name
}
