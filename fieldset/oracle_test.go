package fieldset

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/wire"
)

// TestWrapperEncodingMatchesGeneratedCode checks the wire bytes this package
// produces for google.protobuf's well-known wrapper types against
// google.golang.org/protobuf's own generated code, the canonical oracle for
// what "correct" wire output looks like.
func TestWrapperEncodingMatchesGeneratedCode(t *testing.T) {
	cases := []struct {
		name string
		t    descriptor.FieldType
		v    Value
		want proto.Message
	}{
		{"int32", descriptor.Int32, Int32Value(42), wrapperspb.Int32(42)},
		{"int64", descriptor.Int64, Int64Value(-7), wrapperspb.Int64(-7)},
		{"uint32", descriptor.Uint32, Uint32Value(9001), wrapperspb.UInt32(9001)},
		{"bool_true", descriptor.BoolType, BoolValue(true), wrapperspb.Bool(true)},
		{"string", descriptor.StringType, StringValue("hello"), wrapperspb.String("hello")},
		{"bytes", descriptor.BytesType, BytesValue([]byte{1, 2, 3}), wrapperspb.Bytes([]byte{1, 2, 3})},
		{"double", descriptor.DoubleType, Float64Value(3.5), wrapperspb.Double(3.5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := descriptor.WellKnownWrapperDescriptor(tc.t)
			require.NotNil(t, desc)

			b := NewBuilder(desc)
			require.NoError(t, b.Set(desc.FindFieldByNumber(1), tc.v))
			fs := b.Build()

			wb := wire.NewBuffer(nil)
			require.NoError(t, fs.WriteTo(wb))
			got := wb.Bytes()

			want, err := proto.Marshal(tc.want)
			require.NoError(t, err)

			require.True(t, bytes.Equal(got, want),
				"wire bytes differ from generated-code oracle: got %x want %x", got, want)
		})
	}
}

// TestRangeOrderMatchesFieldNumberOrder uses go-cmp for a deep structural
// diff instead of a manual field-by-field comparison, verifying Range visits
// fields in ascending field-number order regardless of Set() order.
func TestRangeOrderMatchesFieldNumberOrder(t *testing.T) {
	desc := testMessage()
	b := NewBuilder(desc)
	require.NoError(t, b.AddRepeated(desc.FindFieldByNumber(2), StringValue("a")))
	require.NoError(t, b.AddRepeated(desc.FindFieldByNumber(3), Int32Value(1)))
	require.NoError(t, b.Set(desc.FindFieldByNumber(1), Int32Value(9)))
	fs := b.Build()

	var gotNumbers []int32
	fs.Range(func(f *descriptor.FieldDescriptor, v Value, repeated []Value) {
		gotNumbers = append(gotNumbers, f.Number())
	})

	wantNumbers := []int32{1, 2, 3}
	if diff := cmp.Diff(wantNumbers, gotNumbers); diff != "" {
		t.Errorf("Range order mismatch (-want +got):\n%s", diff)
	}
}
