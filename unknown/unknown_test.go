package unknown

import (
	"testing"

	"github.com/modulexcite/protofield/wire"
	"github.com/stretchr/testify/require"
)

func TestMergeFieldDispatchesByWireType(t *testing.T) {
	buf := &wire.Buffer{}
	buf.WriteTag(5, wire.Varint)
	buf.WriteVarint(42)
	buf.WriteTag(6, wire.Fixed32)
	buf.WriteFixed32(7)
	buf.WriteTag(7, wire.Bytes)
	buf.WriteString("hi")

	r := wire.NewBuffer(buf.Bytes())
	s := New()
	for !r.EOF() {
		n, wt, err := r.ReadTag()
		require.NoError(t, err)
		require.NoError(t, s.MergeField(n, wt, r))
	}

	require.Equal(t, []uint64{42}, s.Varints(5))
	require.Equal(t, []uint32{7}, s.Fixed32s(6))
	require.Equal(t, [][]byte{[]byte("hi")}, s.LengthDelimited(7))
	require.Equal(t, []int32{5, 6, 7}, s.FieldNumbers())
}

func TestMergeFieldCollectsGroupRecursively(t *testing.T) {
	buf := &wire.Buffer{}
	buf.WriteTag(3, wire.StartGroup)
	buf.WriteTag(9, wire.Varint)
	buf.WriteVarint(1)
	buf.WriteTag(3, wire.EndGroup)

	r := wire.NewBuffer(buf.Bytes())
	s := New()
	n, wt, err := r.ReadTag()
	require.NoError(t, err)
	require.NoError(t, s.MergeField(n, wt, r))

	require.Equal(t, []uint64{1}, s.Groups(3)[0].Varints(9))
}

func TestWriteToRoundTripsThroughSerializedSize(t *testing.T) {
	s := New()
	s.MergeVarint(1, 150)
	s.MergeFixed32(2, 0xdeadbeef)
	s.MergeFixed64(3, 0x0102030405060708)
	s.MergeLengthDelimited(4, []byte("payload"))

	buf := &wire.Buffer{}
	s.WriteTo(buf)
	require.Equal(t, s.SerializedSize(), len(buf.Bytes()))

	r := wire.NewBuffer(buf.Bytes())
	got := New()
	for !r.EOF() {
		n, wt, err := r.ReadTag()
		require.NoError(t, err)
		require.NoError(t, got.MergeField(n, wt, r))
	}
	require.True(t, s.Equal(got))
}

func TestMakeImmutablePanicsOnFurtherMutation(t *testing.T) {
	s := New()
	s.MergeVarint(1, 1)
	s.MakeImmutable()
	require.Panics(t, func() { s.MergeVarint(1, 2) })
}

func TestMergeFromPreservesOrder(t *testing.T) {
	a := New()
	a.MergeVarint(1, 1)
	b := New()
	b.MergeVarint(2, 2)
	b.MergeVarint(1, 10)

	a.MergeFrom(b)
	require.Equal(t, []uint64{1, 10}, a.Varints(1))
	require.Equal(t, []int32{1, 2}, a.FieldNumbers())
}

func TestEqualIgnoresNilVsEmpty(t *testing.T) {
	require.True(t, New().Equal(New()))
	var nilSet *Set
	require.True(t, nilSet.Equal(New()))
}
