package wire

import "errors"

// Decode failures are sentinel errors so callers can split "bad protocol
// data" from transport errors with errors.Is.
var (
	// ErrMissingData means the input ended before the value did.
	ErrMissingData = errors.New("wire: missing data")
	// ErrIntTooLong means a varint/varlong used more groups than allowed.
	ErrIntTooLong = errors.New("wire: integer too long")
	// ErrInvalidBool means a boolean byte was neither 0x00 nor 0x01.
	ErrInvalidBool = errors.New("wire: invalid bool")
	// ErrInvalidString means string bytes were not valid UTF-8.
	ErrInvalidString = errors.New("wire: invalid utf-8 string")
	// ErrInvalidIdentifier means an identifier had more than one ':'.
	ErrInvalidIdentifier = errors.New("wire: invalid identifier")
	// ErrEnumOutOfBound means an enumerated ordinal was outside its range.
	ErrEnumOutOfBound = errors.New("wire: enum out of bound")
)
