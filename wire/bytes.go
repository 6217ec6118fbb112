package wire

import (
	"math"
	"unicode/utf8"
)

// ReadBytes reads a length-delimited run and returns a copy of it, so the
// result does not alias the input buffer.
func (b *Buffer) ReadBytes() ([]byte, error) {
	raw, err := b.readRawBytes()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// readRawBytes reads a length-delimited run and returns a slice that
// aliases the input buffer; callers must not retain it past further reads.
func (b *Buffer) readRawBytes() ([]byte, error) {
	n, err := b.ReadVarint()
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt32 {
		return nil, errNegativeLength
	}
	return b.readN(int(n))
}

// ReadString reads a length-delimited UTF-8 string. A non-UTF-8 payload is
// Malformed.
func (b *Buffer) ReadString() (string, error) {
	raw, err := b.readRawBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", invalidUTF8Error()
	}
	return string(raw), nil
}

// WriteBytes appends data as a length-prefixed run.
func (b *Buffer) WriteBytes(data []byte) {
	b.WriteVarint(uint64(len(data)))
	b.buf = append(b.buf, data...)
}

// WriteString appends s as a length-prefixed UTF-8 run.
func (b *Buffer) WriteString(s string) {
	b.WriteVarint(uint64(len(s)))
	b.buf = append(b.buf, s...)
}

// SkipBytes advances past a length-delimited run without copying it.
func (b *Buffer) SkipBytes() error {
	_, err := b.readRawBytes()
	return err
}

// SizeBytes returns the number of bytes WriteBytes(data) would emit.
func SizeBytes(data []byte) int {
	return SizeVarint(uint64(len(data))) + len(data)
}

// SizeString returns the number of bytes WriteString(s) would emit.
func SizeString(s string) int {
	return SizeVarint(uint64(len(s))) + len(s)
}
