package command

import "fmt"

// Status classifies the outcome of a dispatched request.
type Status int

const (
	Success Status = iota
	Error
	Exception
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	case Exception:
		return "exception"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// messages for addressing failures detected at dispatch time
const (
	NoSuchObject  = "No such object."
	NoSuchCommand = "No such command."
)

// Request is a single command invocation: where, what, and with which arguments.
//easyjson:json
type Request struct {
	Path   Path
	Name   string
	Args   []interface{}
	Kwargs map[string]interface{}
}

// NewRequest copies path, args and kwargs so that the request doesn't alias caller state.
func NewRequest(path Path, name string, args []interface{}, kwargs map[string]interface{}) Request {
	req := Request{
		Path:   append(Path(nil), path...),
		Name:   name,
		Args:   make([]interface{}, len(args)),
		Kwargs: make(map[string]interface{}, len(kwargs)),
	}
	copy(req.Args, args)
	for k, v := range kwargs {
		req.Kwargs[k] = v
	}
	return req
}

// Response is the classified outcome of a Request.
// Payload is the return value on Success, a message on Error and a trace on Exception.
//easyjson:json
type Response struct {
	Status  Status
	Payload interface{}
}

func success(v interface{}) Response {
	return Response{Status: Success, Payload: v}
}

func failure(msg string) Response {
	return Response{Status: Error, Payload: msg}
}

func exception(trace string) Response {
	return Response{Status: Exception, Payload: trace}
}

// Result converts a response back into a value or an error,
// Error becomes a *CommandError and Exception a *CommandException.
func (r Response) Result() (interface{}, error) {
	switch r.Status {
	case Success:
		return r.Payload, nil
	case Error:
		return nil, &CommandError{Msg: fmt.Sprint(r.Payload)}
	default:
		return nil, &CommandException{Trace: fmt.Sprint(r.Payload)}
	}
}
