package interp

import "fmt"

// Error is an interpreter failure. Pos is 0 when no source position
// applies (most interpreter errors are runtime, not lexical).
type Error struct {
	Pos     int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(pos int, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
