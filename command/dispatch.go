package command

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime/debug"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// Resolve walks path from root. It fails if any step doesn't resolve, or if a step isn't reachable from the
// previous one.
func Resolve(root Object, path Path) (Object, bool) {
	obj, category := root, ""
	for _, step := range path {
		if !Reachable(category, step.Category) {
			return nil, false
		}
		next, ok := obj.Select(step.Category, step.Selector)
		if !ok || next == nil {
			return nil, false
		}
		obj, category = next, step.Category
	}
	return obj, true
}

func lookup(root Object, req Request) (Handler, *Response) {
	obj, ok := Resolve(root, req.Path)
	if !ok {
		resp := failure(NoSuchObject)
		return nil, &resp
	}
	h, ok := obj.Commands().Lookup(req.Name)
	if !ok {
		resp := failure(NoSuchCommand)
		return nil, &resp
	}
	return h, nil
}

// Execute resolves and runs req against root, without locking or logging.
// It is meant for calls made from inside an operation that is already being dispatched, eg. key bindings
// fired by a simulated key press.
func Execute(root Object, req Request) Response {
	h, resp := lookup(root, req)
	if resp != nil {
		return *resp
	}
	return invoke(h, req)
}

func invoke(h Handler, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = exception(fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack()))
		}
	}()
	return classify(h(NewArgs(req.Args, req.Kwargs)))
}

func classify(v interface{}, err error) Response {
	if err == nil {
		return success(v)
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return failure(cmdErr.Msg)
	}
	// %+v prints the stack of errors created or wrapped with pkg/errors
	return exception(fmt.Sprintf("%T: %+v", err, err))
}

// Dispatcher turns requests into responses against a session root.
// At most one request is dispatched at a time.
type Dispatcher struct {
	root   Object
	logger *log.Logger
	mu     sync.Mutex
}

// NewDispatcher takes the session root. A nil logger discards the audit trail.
func NewDispatcher(root Object, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Dispatcher{root: root, logger: logger}
}

// Dispatch resolves the path, looks up the command, logs it and invokes it.
// It never panics: every outcome is a classified Response.
func (d *Dispatcher) Dispatch(req Request) Response {
	d.mu.Lock()
	defer d.mu.Unlock()

	h, resp := lookup(d.root, req)
	if resp != nil {
		return *resp
	}
	d.logger.Print(spew.Sprintf("Command: %s(%v, %v)", req.Name, req.Args, req.Kwargs))
	return invoke(h, req)
}

// Call is a CallFunc for in process calls.
func (d *Dispatcher) Call(req Request) (interface{}, error) {
	return d.Dispatch(req).Result()
}

// Root returns a command tree whose references dispatch in process.
func (d *Dispatcher) Root() Tree[interface{}] {
	return NewRoot(d.Call)
}
