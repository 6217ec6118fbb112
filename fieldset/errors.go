package fieldset

import (
	"fmt"

	"github.com/modulexcite/protofield/descriptor"
)

// TypeMismatchError reports an access against a field with the wrong Value
// kind — e.g. Set with an Int32Value on a STRING field.
type TypeMismatchError struct {
	Field    *descriptor.FieldDescriptor
	Expected descriptor.MappedType
	Got      descriptor.MappedType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("fieldset: field %s expects %v, got %v", e.Field.FullName(), e.Expected, e.Got)
}

// IllegalArgumentError reports a structurally wrong call, such as an
// indexed accessor used against a singular field, or Add used against a
// field that is not repeated.
type IllegalArgumentError struct {
	Field   *descriptor.FieldDescriptor
	Message string
}

func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf("fieldset: illegal argument for field %s: %s", e.Field.FullName(), e.Message)
}

// OutOfRangeError reports an indexed access past the end of a repeated
// field's current length.
type OutOfRangeError struct {
	Field *descriptor.FieldDescriptor
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("fieldset: index %d out of range for field %s (len %d)", e.Index, e.Field.FullName(), e.Len)
}

func typeMismatch(f *descriptor.FieldDescriptor, got descriptor.MappedType) error {
	return &TypeMismatchError{Field: f, Expected: f.MappedType(), Got: got}
}

func illegalArgument(f *descriptor.FieldDescriptor, msg string) error {
	return &IllegalArgumentError{Field: f, Message: msg}
}

func outOfRange(f *descriptor.FieldDescriptor, index, length int) error {
	return &OutOfRangeError{Field: f, Index: index, Len: length}
}
