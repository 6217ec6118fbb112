package descriptor

// ExtensionRegistry resolves an unrecognized field number on a message into
// the FieldDescriptor of the extension that declared it, if any is known.
// It is deliberately a one-method interface: a lookup, not a registration
// API — registration is a detail of whatever concrete registry a caller
// chooses to keep (e.g. one built from parsed `.proto` files).
type ExtensionRegistry interface {
	FindExtensionByNumber(messageType *MessageDescriptor, fieldNumber int32) *FieldDescriptor
}

// EmptyRegistry always misses. It is the default used when a caller has no
// extension descriptors available — every extension field number then
// falls through to the UnknownFieldSet, which is always safe.
type EmptyRegistry struct{}

func (EmptyRegistry) FindExtensionByNumber(*MessageDescriptor, int32) *FieldDescriptor {
	return nil
}
