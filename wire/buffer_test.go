package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 150, 300, 1 << 20, 1<<63 - 1, 1 << 63}
	for _, v := range cases {
		b := &Buffer{}
		b.WriteVarint(v)
		require.Equal(t, SizeVarint(v), len(b.Bytes()))

		r := NewBuffer(b.Bytes())
		got, err := r.ReadVarint()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.True(t, r.EOF())
	}
}

func TestVarint150IsTwoBytes(t *testing.T) {
	b := &Buffer{}
	b.WriteVarint(150)
	require.Equal(t, []byte{0x96, 0x01}, b.Bytes())
}

func TestVarintOverlongIsMalformed(t *testing.T) {
	// 11 continuation bytes: one past the maximum a 64-bit varint occupies.
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0x80
	}
	r := NewBuffer(data)
	_, err := r.ReadVarint()
	require.Error(t, err)
	require.True(t, IsMalformed(err))
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 2, -2, 1<<30 - 1, -(1 << 30)} {
		require.Equal(t, v, DecodeZigZag32(EncodeZigZag32(v)))
	}
	for _, v := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		require.Equal(t, v, DecodeZigZag64(EncodeZigZag64(v)))
	}
}

func TestFixed32And64RoundTrip(t *testing.T) {
	b := &Buffer{}
	b.WriteFixed32(0xdeadbeef)
	b.WriteFixed64(0x0102030405060708)

	r := NewBuffer(b.Bytes())
	f32, err := r.ReadFixed32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), f32)

	f64, err := r.ReadFixed64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), f64)
}

func TestFloatDoubleRoundTrip(t *testing.T) {
	b := &Buffer{}
	b.WriteFloat(3.5)
	b.WriteDouble(-2.25)

	r := NewBuffer(b.Bytes())
	f, err := r.ReadFloat()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f)

	d, err := r.ReadDouble()
	require.NoError(t, err)
	require.Equal(t, -2.25, d)
}

func TestBytesAndStringRoundTrip(t *testing.T) {
	b := &Buffer{}
	b.WriteBytes([]byte{0x01, 0xff})
	b.WriteString("hi")

	r := NewBuffer(b.Bytes())
	raw, err := r.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xff}, raw)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hi", s)
}

func TestReadStringRejectsInvalidUTF8(t *testing.T) {
	b := &Buffer{}
	b.WriteBytes([]byte{0xff, 0xfe})
	r := NewBuffer(b.Bytes())
	_, err := r.ReadString()
	require.Error(t, err)
	require.True(t, IsMalformed(err))
}

func TestTruncatedBytesIsMalformed(t *testing.T) {
	b := &Buffer{}
	b.WriteVarint(10) // claims 10 bytes but none follow
	r := NewBuffer(b.Bytes())
	_, err := r.ReadBytes()
	require.Error(t, err)
	require.True(t, IsMalformed(err))
}

func TestTagRoundTrip(t *testing.T) {
	b := &Buffer{}
	b.WriteTag(5, Bytes)
	require.Equal(t, SizeTag(5), len(b.Bytes()))

	r := NewBuffer(b.Bytes())
	n, wt, err := r.ReadTag()
	require.NoError(t, err)
	require.Equal(t, Number(5), n)
	require.Equal(t, Bytes, wt)
}

func TestPushPopLimitNesting(t *testing.T) {
	b := &Buffer{}
	b.WriteString("hello")
	b.WriteString("world")

	r := NewBuffer(b.Bytes())
	outer, err := r.PushLimit(r.Len())
	require.NoError(t, err)

	s1, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s1)
	require.False(t, r.ReachedLimit())

	s2, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "world", s2)
	require.True(t, r.ReachedLimit())

	r.PopLimit(outer)
	require.True(t, r.EOF())
}

func TestPushLimitRejectsOverrun(t *testing.T) {
	r := NewBuffer([]byte{0x01, 0x02})
	_, err := r.PushLimit(5)
	require.Error(t, err)
	require.True(t, IsMalformed(err))
}

func TestMessageSetExtensionRoundTrip(t *testing.T) {
	b := &Buffer{}
	payload := []byte{0x08, 0x7b} // field 1 varint 123
	b.WriteMessageSetExtension(4, payload)
	require.Equal(t, SizeMessageSetExtension(4, payload), len(b.Bytes()))

	r := NewBuffer(b.Bytes())
	n, wt, err := r.ReadTag()
	require.NoError(t, err)
	require.Equal(t, Number(1), n)
	require.Equal(t, StartGroup, wt)

	typeID, got, err := r.ReadMessageSetExtension()
	require.NoError(t, err)
	require.Equal(t, int32(4), typeID)
	require.Equal(t, payload, got)
}

func TestSkipFieldVariants(t *testing.T) {
	b := &Buffer{}
	b.WriteVarint(42)
	b.WriteFixed32(1)
	b.WriteFixed64(1)
	b.WriteBytes([]byte("xyz"))

	r := NewBuffer(b.Bytes())
	require.NoError(t, r.SkipField(Varint))
	require.NoError(t, r.SkipField(Fixed32))
	require.NoError(t, r.SkipField(Fixed64))
	require.NoError(t, r.SkipField(Bytes))
	require.True(t, r.EOF())
}
