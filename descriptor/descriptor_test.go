package descriptor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldTypeMappedTypeSplitsSignedFromUnsignedFixed(t *testing.T) {
	require.Equal(t, MappedUint32, Fixed32.MappedType())
	require.Equal(t, MappedInt32, Sfixed32.MappedType())
	require.Equal(t, MappedUint64, Fixed64.MappedType())
	require.Equal(t, MappedInt64, Sfixed64.MappedType())
}

func TestMessageDescriptorOrdersFieldsByNumber(t *testing.T) {
	m := NewMessageDescriptor("test.Shuffled", []*FieldDescriptor{
		NewScalarField(3, "c", StringType),
		NewScalarField(1, "a", Int32),
		NewScalarField(2, "b", BoolType),
	}, MessageOptions{})

	got := make([]int32, len(m.Fields()))
	for i, f := range m.Fields() {
		got[i] = f.Number()
		require.Same(t, m, f.ContainingType())
	}
	require.Equal(t, []int32{1, 2, 3}, got)
	require.Equal(t, "b", m.FindFieldByNumber(2).Name())
	require.Equal(t, int32(3), m.FindFieldByName("c").Number())
	require.Nil(t, m.FindFieldByNumber(99))
}

func TestExtensionRangeContains(t *testing.T) {
	m := NewMessageDescriptor("test.WithExt", []*FieldDescriptor{
		NewScalarField(1, "a", Int32),
	}, MessageOptions{}, ExtensionRange{Start: 100, End: 200})

	require.True(t, m.IsExtensionNumber(150))
	require.False(t, m.IsExtensionNumber(99))
	require.False(t, m.IsExtensionNumber(200))
}

func TestEnumDescriptorLookup(t *testing.T) {
	e := NewEnumDescriptor("test.Color", []struct {
		Name   string
		Number int32
	}{
		{"RED", 0}, {"GREEN", 1}, {"BLUE", 2},
	})
	require.Equal(t, "GREEN", e.FindValueByNumber(1).Name())
	require.Equal(t, int32(2), e.FindValueByName("BLUE").Number())
	require.Nil(t, e.FindValueByNumber(99))
}

func TestNewEnumFieldDefaultsToFirstValue(t *testing.T) {
	e := NewEnumDescriptor("test.Color", []struct {
		Name   string
		Number int32
	}{
		{"RED", 0}, {"GREEN", 1},
	})
	f := NewEnumField(5, "color", e)
	require.Equal(t, "RED", f.DefaultValue().Enum().Name())
}

func TestNewMapFieldSynthesizesEntryMessage(t *testing.T) {
	keyField := NewScalarField(0, "", StringType)
	valField := NewScalarField(0, "", Int32)
	f := NewMapField(7, "counts", keyField, valField)

	require.True(t, f.IsMap())
	require.True(t, f.IsRepeated())
	require.Equal(t, "counts.Entry", f.MessageType().FullName())
	require.True(t, f.MessageType().IsMapEntry())
	require.Equal(t, int32(1), f.MapKey().Number())
	require.Equal(t, int32(2), f.MapValue().Number())
	require.Equal(t, MappedString, f.MapKey().MappedType())
}

func TestWellKnownWrapperDescriptor(t *testing.T) {
	d := WellKnownWrapperDescriptor(Int32)
	require.NotNil(t, d)
	require.Equal(t, "google.protobuf.Int32Value", d.FullName())
	require.Equal(t, "value", d.FindFieldByNumber(1).Name())
	require.Nil(t, WellKnownWrapperDescriptor(MessageFieldType))
}

func TestFieldFullNameMarksExtensions(t *testing.T) {
	m := NewMessageDescriptor("test.Host", []*FieldDescriptor{
		NewScalarField(1, "plain", Int32),
		NewScalarField(100, "ext", Int32, Extension()),
	}, MessageOptions{})
	require.Equal(t, "test.Host.plain", m.FindFieldByName("plain").FullName())
	require.Equal(t, "test.Host.[ext]", m.FindFieldByName("ext").FullName())
}
