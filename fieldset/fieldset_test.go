package fieldset

import (
	"testing"

	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/wire"
	"github.com/stretchr/testify/require"
)

func testMessage() *descriptor.MessageDescriptor {
	return descriptor.NewMessageDescriptor("test.Scalars", []*descriptor.FieldDescriptor{
		descriptor.NewScalarField(1, "id", descriptor.Int32),
		descriptor.NewScalarField(2, "tags", descriptor.StringType, descriptor.Repeated()),
		descriptor.NewScalarField(3, "flags", descriptor.Int32, descriptor.Repeated(), descriptor.Packed()),
	}, descriptor.MessageOptions{})
}

func TestSetAndGetRoundTrip(t *testing.T) {
	m := testMessage()
	b := NewBuilder(m)
	require.NoError(t, b.Set(m.FindFieldByNumber(1), Int32Value(42)))

	v, err := b.Get(m.FindFieldByNumber(1))
	require.NoError(t, err)
	require.Equal(t, int32(42), v.Int32())
}

func TestGetAbsentReturnsDefault(t *testing.T) {
	m := testMessage()
	b := NewBuilder(m)
	v, err := b.Get(m.FindFieldByNumber(1))
	require.NoError(t, err)
	require.Equal(t, int32(0), v.Int32())
	has, err := b.Has(m.FindFieldByNumber(1))
	require.NoError(t, err)
	require.False(t, has)
}

func TestSetTypeMismatchIsRejected(t *testing.T) {
	m := testMessage()
	b := NewBuilder(m)
	err := b.Set(m.FindFieldByNumber(1), StringValue("nope"))
	require.Error(t, err)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestRepeatedFieldAccessors(t *testing.T) {
	m := testMessage()
	b := NewBuilder(m)
	tags := m.FindFieldByNumber(2)
	require.NoError(t, b.AddRepeated(tags, StringValue("a")))
	require.NoError(t, b.AddRepeated(tags, StringValue("b")))

	n, err := b.GetRepeatedCount(tags)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	v, err := b.GetRepeated(tags, 1)
	require.NoError(t, err)
	require.Equal(t, "b", v.String())

	_, err = b.GetRepeated(tags, 5)
	require.Error(t, err)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
}

func TestSingularAccessorRejectsRepeatedField(t *testing.T) {
	m := testMessage()
	b := NewBuilder(m)
	_, err := b.Get(m.FindFieldByNumber(2))
	require.Error(t, err)
	var bad *IllegalArgumentError
	require.ErrorAs(t, err, &bad)
}

func TestBuildInvalidatesBuilder(t *testing.T) {
	m := testMessage()
	b := NewBuilder(m)
	require.NoError(t, b.Set(m.FindFieldByNumber(1), Int32Value(1)))
	fs := b.Build()
	require.Equal(t, int32(1), mustGet(t, fs, m.FindFieldByNumber(1)).Int32())
	require.Panics(t, func() { _ = b.Set(m.FindFieldByNumber(1), Int32Value(2)) })
}

func mustGet(t *testing.T, fs *FieldSet, f *descriptor.FieldDescriptor) Value {
	v, err := fs.Get(f)
	require.NoError(t, err)
	return v
}

func TestMergeFromAppendsRepeatedAndOverwritesSingular(t *testing.T) {
	m := testMessage()
	a := NewBuilder(m)
	require.NoError(t, a.Set(m.FindFieldByNumber(1), Int32Value(1)))
	require.NoError(t, a.AddRepeated(m.FindFieldByNumber(2), StringValue("x")))
	fsA := a.Build()

	b := NewBuilder(m)
	require.NoError(t, b.Set(m.FindFieldByNumber(1), Int32Value(99)))
	require.NoError(t, b.AddRepeated(m.FindFieldByNumber(2), StringValue("y")))
	require.NoError(t, b.MergeFrom(fsA))
	merged := b.Build()

	require.Equal(t, int32(1), mustGet(t, merged, m.FindFieldByNumber(1)).Int32())
	n, _ := merged.GetRepeatedCount(m.FindFieldByNumber(2))
	require.Equal(t, 2, n)
	v0, _ := merged.GetRepeated(m.FindFieldByNumber(2), 0)
	v1, _ := merged.GetRepeated(m.FindFieldByNumber(2), 1)
	require.Equal(t, "y", v0.String())
	require.Equal(t, "x", v1.String())
}

func TestWriteToThenDecodeScalarRoundTrips(t *testing.T) {
	m := testMessage()
	b := NewBuilder(m)
	idField := m.FindFieldByNumber(1)
	flagsField := m.FindFieldByNumber(3)
	require.NoError(t, b.Set(idField, Int32Value(-7)))
	require.NoError(t, b.AddRepeated(flagsField, Int32Value(1)))
	require.NoError(t, b.AddRepeated(flagsField, Int32Value(2)))
	fs := b.Build()

	buf := &wire.Buffer{}
	require.NoError(t, fs.WriteTo(buf))
	require.Equal(t, fs.SerializedSize(), len(buf.Bytes()))

	r := wire.NewBuffer(buf.Bytes())
	got := NewBuilder(m)
	for !r.EOF() {
		n, wt, err := r.ReadTag()
		require.NoError(t, err)
		f := m.FindFieldByNumber(int32(n))
		require.NotNil(t, f)
		ok, _, err := MergeScalarOrEnum(got, f, wt, r)
		require.NoError(t, err)
		require.True(t, ok)
	}
	gotFS := got.Build()
	require.True(t, fs.Equal(gotFS))
}

func TestPackedFieldToleratesUnpackedWireBytes(t *testing.T) {
	m := testMessage()
	flagsField := m.FindFieldByNumber(3)

	buf := &wire.Buffer{}
	buf.WriteTag(3, wire.Varint)
	buf.WriteVarint(10)
	buf.WriteTag(3, wire.Varint)
	buf.WriteVarint(20)

	r := wire.NewBuffer(buf.Bytes())
	b := NewBuilder(m)
	for !r.EOF() {
		_, wt, err := r.ReadTag()
		require.NoError(t, err)
		ok, _, err := MergeScalarOrEnum(b, flagsField, wt, r)
		require.NoError(t, err)
		require.True(t, ok)
	}
	n, _ := b.GetRepeatedCount(flagsField)
	require.Equal(t, 2, n)
}

func TestIsInitializedRequiresRequiredFields(t *testing.T) {
	m := descriptor.NewMessageDescriptor("test.Required", []*descriptor.FieldDescriptor{
		descriptor.NewScalarField(1, "must", descriptor.Int32, descriptor.Required()),
	}, descriptor.MessageOptions{})
	b := NewBuilder(m)
	require.False(t, b.Build().IsInitialized())

	b2 := NewBuilder(m)
	require.NoError(t, b2.Set(m.FindFieldByNumber(1), Int32Value(1)))
	require.True(t, b2.Build().IsInitialized())
}
