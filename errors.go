package textformat

import "fmt"

// FormatError is an error type for the textformat module.
type FormatError string

func (e FormatError) Error() string {
	return string(e)
}

// ErrDisposed is flagged whenever a client accesses a breakpoint (or another
// holder of backend resources) after its resources have been released.
const ErrDisposed = FormatError("object has already been disposed")

// ErrNotSupported is flagged by fixed-size containers for operations which
// would change their size.
const ErrNotSupported = FormatError("collection is of a fixed size")

// ErrUnsupported is flagged for operations a text source does not offer.
const ErrUnsupported = FormatError("operation not supported")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = FormatError("illegal arguments")

// ArgumentError is returned for an invalid argument, including malformed text
// runs delivered by a text source. Param names the offending argument or
// property.
//
// ArgumentError matches ErrIllegalArguments with errors.Is.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Reason)
}

// Is lets errors.Is(err, ErrIllegalArguments) succeed for argument errors.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrIllegalArguments
}

// BackendError reports a non-success result code of a line-breaking backend.
// Op names the backend operation which failed.
type BackendError struct {
	Op   string
	Code int
	Name string // symbolic name of Code, may be empty
}

func (e *BackendError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s failed: backend error %d (%s)", e.Op, e.Code, e.Name)
	}
	return fmt.Sprintf("%s failed: backend error %d", e.Op, e.Code)
}

// ErrIndexOutOfBounds is flagged whenever a text position lies outside of a text.
const ErrIndexOutOfBounds = FormatError("index out of bounds")

// ErrTextCompleted is flagged when a builder is asked to add fragments after
// its text has been handed out.
const ErrTextCompleted = FormatError("forbidden to add fragments; text has been completed")
