package command

import (
	"fmt"
)

// AddressingError is raised while building a path: unknown category, selecting twice, etc.
// It never crosses the transport.
type AddressingError struct {
	Path Path
	Msg  string
}

func (e *AddressingError) Error() string {
	if len(e.Path) == 0 {
		return "addressing error: " + e.Msg
	}
	return fmt.Sprintf("addressing error at %s: %s", e.Path, e.Msg)
}

func addressingErrorf(p Path, format string, args ...interface{}) *AddressingError {
	return &AddressingError{Path: p, Msg: fmt.Sprintf(format, args...)}
}

// CommandError is a usage error: the object or command does not exist, or the operation rejected its
// arguments or preconditions. Operations return it to report an Error status with their own message;
// clients get it back from an Error response.
type CommandError struct {
	Msg string
}

func (e *CommandError) Error() string {
	return e.Msg
}

// Errorf builds a CommandError.
func Errorf(format string, args ...interface{}) error {
	return &CommandError{Msg: fmt.Sprintf(format, args...)}
}

// CommandException is an unexpected failure on the remote side, it carries the remote trace.
type CommandException struct {
	Trace string
}

func (e *CommandException) Error() string {
	return "command exception: " + e.Trace
}
