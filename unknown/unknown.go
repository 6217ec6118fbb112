// Package unknown holds wire data for fields a MessageDescriptor did not
// recognize at parse time — tag numbers with no matching FieldDescriptor,
// preserved verbatim so a decode-then-encode round trip reproduces bytes
// the current schema cannot itself interpret.
package unknown

import (
	"github.com/modulexcite/protofield/wire"
)

// field collects every wire-type bucket one tag number can have contributed
// across repeated appearances, mirroring how a message literally presents
// on the wire: nothing stops a malformed or forward-compatible stream from
// mixing wire types under one field number.
type field struct {
	varint          []uint64
	fixed32         []uint32
	fixed64         []uint64
	lengthDelimited [][]byte
	group           []*Set
}

func (f *field) empty() bool {
	return len(f.varint) == 0 && len(f.fixed32) == 0 && len(f.fixed64) == 0 &&
		len(f.lengthDelimited) == 0 && len(f.group) == 0
}

// Set is an UnknownFieldSet: the tag-indexed collection of wire data a
// DynamicMessage or generated message kept aside during parsing. Like
// FieldSet, it has a mutable phase (Merge*) and a frozen phase (MakeImmutable);
// unlike FieldSet there is no separate builder type, since every mutation
// here is an append with no type-verification step to hoist out.
type Set struct {
	fields map[int32]*field
	order  []int32
	frozen bool
}

// New returns an empty, mutable Set.
func New() *Set {
	return &Set{fields: make(map[int32]*field)}
}

func (s *Set) checkMutable() {
	if s.frozen {
		panic("unknown: mutation of a frozen Set")
	}
}

func (s *Set) fieldFor(number int32) *field {
	f, ok := s.fields[number]
	if !ok {
		f = &field{}
		s.fields[number] = f
		s.order = append(s.order, number)
	}
	return f
}

// MergeVarint records a varint-typed unknown value under number.
func (s *Set) MergeVarint(number int32, v uint64) {
	s.checkMutable()
	f := s.fieldFor(number)
	f.varint = append(f.varint, v)
}

// MergeFixed32 records a fixed32-typed unknown value under number.
func (s *Set) MergeFixed32(number int32, v uint32) {
	s.checkMutable()
	f := s.fieldFor(number)
	f.fixed32 = append(f.fixed32, v)
}

// MergeFixed64 records a fixed64-typed unknown value under number.
func (s *Set) MergeFixed64(number int32, v uint64) {
	s.checkMutable()
	f := s.fieldFor(number)
	f.fixed64 = append(f.fixed64, v)
}

// MergeLengthDelimited records a length-delimited unknown value under
// number. The slice is retained, not copied; callers must pass data that
// will not be mutated afterward.
func (s *Set) MergeLengthDelimited(number int32, data []byte) {
	s.checkMutable()
	f := s.fieldFor(number)
	f.lengthDelimited = append(f.lengthDelimited, data)
}

// MergeGroup records an unknown legacy group's already-parsed contents
// under number.
func (s *Set) MergeGroup(number int32, group *Set) {
	s.checkMutable()
	f := s.fieldFor(number)
	f.group = append(f.group, group)
}

// MergeField dispatches one tag read off buf into the right bucket. It
// handles StartGroup by recursively collecting the group's own unknown
// fields up to the matching EndGroup. EndGroup itself is not consumed here;
// a caller driving a top-level parse loop should stop calling MergeField and
// return control to whatever is matching the enclosing group once it reads
// EndGroup directly.
func (s *Set) MergeField(number wire.Number, wt wire.Type, buf *wire.Buffer) error {
	s.checkMutable()
	switch wt {
	case wire.Varint:
		v, err := buf.ReadVarint()
		if err != nil {
			return err
		}
		s.MergeVarint(int32(number), v)
	case wire.Fixed32:
		v, err := buf.ReadFixed32()
		if err != nil {
			return err
		}
		s.MergeFixed32(int32(number), v)
	case wire.Fixed64:
		v, err := buf.ReadFixed64()
		if err != nil {
			return err
		}
		s.MergeFixed64(int32(number), v)
	case wire.Bytes:
		v, err := buf.ReadBytes()
		if err != nil {
			return err
		}
		s.MergeLengthDelimited(int32(number), v)
	case wire.StartGroup:
		group := New()
		if err := group.mergeGroupBody(buf); err != nil {
			return err
		}
		s.MergeGroup(int32(number), group)
	default:
		return buf.SkipField(wt)
	}
	return nil
}

// mergeGroupBody consumes fields until it sees the matching EndGroup tag,
// which it consumes and does not store.
func (s *Set) mergeGroupBody(buf *wire.Buffer) error {
	for {
		n, wt, err := buf.ReadTag()
		if err != nil {
			return err
		}
		if wt == wire.EndGroup {
			return nil
		}
		if err := s.MergeField(n, wt, buf); err != nil {
			return err
		}
	}
}

// MergeFrom copies every field in other into s, preserving other's
// per-number append order relative to s's own existing entries.
func (s *Set) MergeFrom(other *Set) {
	s.checkMutable()
	if other == nil {
		return
	}
	for _, number := range other.order {
		src := other.fields[number]
		dst := s.fieldFor(number)
		dst.varint = append(dst.varint, src.varint...)
		dst.fixed32 = append(dst.fixed32, src.fixed32...)
		dst.fixed64 = append(dst.fixed64, src.fixed64...)
		dst.lengthDelimited = append(dst.lengthDelimited, src.lengthDelimited...)
		dst.group = append(dst.group, src.group...)
	}
}

// MakeImmutable freezes s; subsequent Merge* calls panic. Returns s for
// chaining.
func (s *Set) MakeImmutable() *Set {
	s.frozen = true
	for _, f := range s.fields {
		for _, g := range f.group {
			g.MakeImmutable()
		}
	}
	return s
}

// IsEmpty reports whether s has no fields at all.
func (s *Set) IsEmpty() bool { return len(s.order) == 0 }

// FieldNumbers returns the distinct field numbers present, in first-seen
// order. WriteTo sorts them into ascending order before emitting.
func (s *Set) FieldNumbers() []int32 {
	return append([]int32(nil), s.order...)
}

// Varints, Fixed32s, Fixed64s, LengthDelimited, and Groups expose the raw
// buckets for one field number, for tests and for generic inspection.
func (s *Set) Varints(number int32) []uint64 {
	if f, ok := s.fields[number]; ok {
		return f.varint
	}
	return nil
}

func (s *Set) Fixed32s(number int32) []uint32 {
	if f, ok := s.fields[number]; ok {
		return f.fixed32
	}
	return nil
}

func (s *Set) Fixed64s(number int32) []uint64 {
	if f, ok := s.fields[number]; ok {
		return f.fixed64
	}
	return nil
}

func (s *Set) LengthDelimited(number int32) [][]byte {
	if f, ok := s.fields[number]; ok {
		return f.lengthDelimited
	}
	return nil
}

func (s *Set) Groups(number int32) []*Set {
	if f, ok := s.fields[number]; ok {
		return f.group
	}
	return nil
}
