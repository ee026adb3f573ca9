package secp256k1

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidPointCompression is returned when an x coordinate passed for
	// decompression does not belong to any point on the curve, that is,
	// x^3 + ax + b is not a quadratic residue.
	ErrInvalidPointCompression = ErrorKind("ErrInvalidPointCompression")

	// ErrPointNotOnCurve is returned when a pair of coordinates does not
	// satisfy the curve equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrCoordinateOutOfRange is returned when an integer coordinate is
	// negative or not less than the field prime.
	ErrCoordinateOutOfRange = ErrorKind("ErrCoordinateOutOfRange")

	// ErrFieldOverflow is returned when a 32-byte encoding holds a value that
	// is not less than the field prime.
	ErrFieldOverflow = ErrorKind("ErrFieldOverflow")

	// ErrInvalidFieldLength is returned when a field element encoding is not
	// exactly 32 bytes.
	ErrInvalidFieldLength = ErrorKind("ErrInvalidFieldLength")

	// ErrCurveMismatch is returned when a point is imported from a curve with
	// different parameters.
	ErrCurveMismatch = ErrorKind("ErrCurveMismatch")

	// ErrPointAtInfinity is returned when an operation needs affine
	// coordinates and is given the point at infinity.
	ErrPointAtInfinity = ErrorKind("ErrPointAtInfinity")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to curve points or field elements. It has
// full support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
