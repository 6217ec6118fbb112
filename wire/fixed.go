package wire

import (
	"encoding/binary"
	"math"
)

// ReadFixed32 reads a little-endian 32-bit value (fixed32, sfixed32, float).
func (b *Buffer) ReadFixed32() (uint32, error) {
	raw, err := b.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

// ReadFixed64 reads a little-endian 64-bit value (fixed64, sfixed64, double).
func (b *Buffer) ReadFixed64() (uint64, error) {
	raw, err := b.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(raw), nil
}

// WriteFixed32 appends v little-endian.
func (b *Buffer) WriteFixed32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// WriteFixed64 appends v little-endian.
func (b *Buffer) WriteFixed64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// ReadFloat reads a 32-bit IEEE 754 float.
func (b *Buffer) ReadFloat() (float32, error) {
	v, err := b.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// WriteFloat appends v as fixed32 bits.
func (b *Buffer) WriteFloat(v float32) {
	b.WriteFixed32(math.Float32bits(v))
}

// ReadDouble reads a 64-bit IEEE 754 float.
func (b *Buffer) ReadDouble() (float64, error) {
	v, err := b.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// WriteDouble appends v as fixed64 bits.
func (b *Buffer) WriteDouble(v float64) {
	b.WriteFixed64(math.Float64bits(v))
}

// ReadBool reads a varint and interprets it as a boolean (nonzero = true).
func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.ReadVarint()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// WriteBool appends v as a 0/1 varint.
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteVarint(1)
	} else {
		b.WriteVarint(0)
	}
}

const (
	sizeFixed32 = 4
	sizeFixed64 = 8
)
