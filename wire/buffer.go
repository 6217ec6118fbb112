// Package wire implements the low-level protobuf binary codec: varints,
// fixed-width scalars, length-delimited runs, zigzag coding, tag
// composition, and exact size computation. It has no notion of a
// descriptor or a message — those are built on top of it.
package wire

// Buffer is a cursor over a byte slice used for reading, or an
// accumulating byte slice used for writing. A zero-value Buffer is ready
// to use as a writer; use NewBuffer to read existing bytes.
type Buffer struct {
	buf    []byte
	pos    int
	limits []int // stack of absolute end-offsets, innermost last
}

// NewBuffer returns a reader positioned at the start of data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// Bytes returns the bytes written so far (writer mode) or the unread
// remainder (reader mode).
func (b *Buffer) Bytes() []byte {
	return b.buf[b.pos:]
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.pos
}

// EOF reports whether every byte (up to the innermost limit, if any) has
// been consumed.
func (b *Buffer) EOF() bool {
	if n := b.limit(); n >= 0 {
		return b.pos >= n
	}
	return b.pos >= len(b.buf)
}

func (b *Buffer) limit() int {
	if len(b.limits) == 0 {
		return -1
	}
	return b.limits[len(b.limits)-1]
}

// PushLimit restricts subsequent reads to at most n further bytes,
// returning an opaque token for PopLimit. Limits nest: a pushed limit may
// not exceed the bytes remaining under the current innermost limit.
func (b *Buffer) PushLimit(n int) (int, error) {
	if n < 0 {
		return 0, errNegativeLength
	}
	end := b.pos + n
	if end < b.pos || end > len(b.buf) {
		return 0, truncatedError(n, b.Len())
	}
	if cur := b.limit(); cur >= 0 && end > cur {
		return 0, malformed("nested limit of %d bytes exceeds enclosing limit", n)
	}
	token := len(b.limits)
	b.limits = append(b.limits, end)
	return token, nil
}

// PopLimit restores the limit stack to the state it was in before the
// PushLimit call that returned token.
func (b *Buffer) PopLimit(token int) {
	b.limits = b.limits[:token]
}

// ReachedLimit reports whether the cursor has reached the innermost
// pushed limit. With no limit pushed, it reports EOF instead.
func (b *Buffer) ReachedLimit() bool {
	if n := b.limit(); n >= 0 {
		return b.pos >= n
	}
	return b.pos >= len(b.buf)
}

func (b *Buffer) readByte() (byte, error) {
	n := len(b.buf)
	if lim := b.limit(); lim >= 0 && lim < n {
		n = lim
	}
	if b.pos >= n {
		return 0, errUnexpectedEOF
	}
	c := b.buf[b.pos]
	b.pos++
	return c, nil
}

func (b *Buffer) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, errNegativeLength
	}
	end := b.pos + n
	limEnd := len(b.buf)
	if lim := b.limit(); lim >= 0 {
		limEnd = lim
	}
	if end < b.pos || end > limEnd {
		have := limEnd - b.pos
		if have < 0 {
			have = 0
		}
		return nil, truncatedError(n, have)
	}
	out := b.buf[b.pos:end]
	b.pos = end
	return out, nil
}

// Reset clears a writer Buffer back to empty.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.pos = 0
	b.limits = nil
}
