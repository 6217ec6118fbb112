package unknown

import (
	"sort"

	"github.com/modulexcite/protofield/wire"
)

// WriteTo serializes s in ascending field-number order, matching FieldSet's
// own canonical ordering rule, re-emitting each bucket's entries in append
// order.
func (s *Set) WriteTo(buf *wire.Buffer) {
	numbers := s.FieldNumbers()
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for _, number := range numbers {
		n := wire.Number(number)
		f := s.fields[number]
		for _, v := range f.varint {
			buf.WriteTag(n, wire.Varint)
			buf.WriteVarint(v)
		}
		for _, v := range f.fixed32 {
			buf.WriteTag(n, wire.Fixed32)
			buf.WriteFixed32(v)
		}
		for _, v := range f.fixed64 {
			buf.WriteTag(n, wire.Fixed64)
			buf.WriteFixed64(v)
		}
		for _, v := range f.lengthDelimited {
			buf.WriteTag(n, wire.Bytes)
			buf.WriteBytes(v)
		}
		for _, g := range f.group {
			buf.WriteTag(n, wire.StartGroup)
			g.WriteTo(buf)
			buf.WriteTag(n, wire.EndGroup)
		}
	}
}

// SerializedSize returns the number of bytes WriteTo would emit.
func (s *Set) SerializedSize() int {
	total := 0
	for _, number := range s.order {
		n := wire.Number(number)
		f := s.fields[number]
		tagSize := wire.SizeTag(n)
		total += tagSize * len(f.varint)
		for _, v := range f.varint {
			total += wire.SizeVarint(v)
		}
		for range f.fixed32 {
			total += tagSize + 4
		}
		for range f.fixed64 {
			total += tagSize + 8
		}
		for _, v := range f.lengthDelimited {
			total += tagSize + wire.SizeBytes(v)
		}
		for _, g := range f.group {
			total += 2*tagSize + g.SerializedSize()
		}
	}
	return total
}

// Equal reports whether s and other serialize identically, field by field.
func (s *Set) Equal(other *Set) bool {
	if s == nil || other == nil {
		return (s == nil || s.IsEmpty()) && (other == nil || other.IsEmpty())
	}
	if len(s.order) != len(other.order) {
		return false
	}
	for _, number := range s.order {
		a, ok := s.fields[number]
		if !ok {
			return false
		}
		b, ok := other.fields[number]
		if !ok {
			return false
		}
		if !equalUint64s(a.varint, b.varint) || !equalUint32s(a.fixed32, b.fixed32) ||
			!equalUint64s(a.fixed64, b.fixed64) || !equalBytesSlices(a.lengthDelimited, b.lengthDelimited) {
			return false
		}
		if len(a.group) != len(b.group) {
			return false
		}
		for i := range a.group {
			if !a.group[i].Equal(b.group[i]) {
				return false
			}
		}
	}
	return true
}

func equalUint64s(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalUint32s(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalBytesSlices(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
