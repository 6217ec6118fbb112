package wire

import (
	"github.com/pkg/errors"
)

// ErrMalformed is the sentinel every malformed-wire-data error wraps.
// Truncated input, overlong varints, invalid UTF-8 in a STRING field,
// negative lengths, and read-limit violations all surface as this.
var ErrMalformed = errors.New("protofield: malformed wire data")

// malformed wraps ErrMalformed with a formatted cause, preserving a stack
// trace at the point the malformation was detected.
func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, format, args...)
}

// IsMalformed reports whether err (or anything it wraps) is ErrMalformed.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

var (
	errUnexpectedEOF  = malformed("unexpected EOF")
	errVarintTooLong  = malformed("varint exceeds 10 bytes")
	errNegativeLength = malformed("negative length")
)

func truncatedError(need, have int) error {
	return malformed("truncated input: need %d bytes, have %d", need, have)
}

func invalidUTF8Error() error {
	return malformed("invalid UTF-8 in string field")
}
