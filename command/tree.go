package command

// CallFunc receives the request packaged by a Reference. It is where local, remote and deferred calls diverge.
type CallFunc[T any] func(req Request) (T, error)

// Tree is a node of a command tree. Trees are values, every method returns a new node.
//
// Addressing errors are sticky: a node derived from a failed one carries the same error, and so does any
// Reference built from it, so that chained expressions only need to check the final result.
type Tree[T any] struct {
	call     CallFunc[T]
	path     Path
	category string
	err      error
}

// NewRoot returns the root of a command tree, with an empty path.
func NewRoot[T any](call CallFunc[T]) Tree[T] {
	return Tree[T]{call: call, path: Path{}}
}

// Path is the path accumulated so far.
func (t Tree[T]) Path() Path {
	return t.path
}

// Category is the category this node narrowed into, "" at the root.
func (t Tree[T]) Category() string {
	return t.category
}

// Err is the addressing error of this node, if any.
func (t Tree[T]) Err() error {
	return t.err
}

// Contains lists the categories reachable from this node.
func (t Tree[T]) Contains() []string {
	return Contains(t.category)
}

// Selected reports whether this node already carries a selector.
func (t Tree[T]) Selected() bool {
	last, ok := t.path.Last()
	return ok && last.Selector != nil
}

// Into narrows into a category reachable from this node.
func (t Tree[T]) Into(category string) Tree[T] {
	if t.err != nil {
		return t
	}
	if !Reachable(t.category, category) {
		t.err = addressingErrorf(t.path, "no category %q here", category)
		return t
	}
	return Tree[T]{call: t.call, path: t.path.Append(category), category: category}
}

// Select picks an instance of the current category. A node can be selected only once.
func (t Tree[T]) Select(selector interface{}) Tree[T] {
	if t.err != nil {
		return t
	}
	switch {
	case t.category == "":
		t.err = addressingErrorf(t.path, "the root can't be selected")
	case t.Selected():
		t.err = addressingErrorf(t.path, "%s is already selected", t.category)
	case selector == nil:
		t.err = addressingErrorf(t.path, "empty selector for %s", t.category)
	default:
		return Tree[T]{call: t.call, path: t.path.WithSelector(selector), category: t.category}
	}
	return t
}

// Walk follows p from t, nil selectors meaning the current object.
func (t Tree[T]) Walk(p Path) Tree[T] {
	for _, step := range p {
		t = t.Into(step.Category)
		if step.Selector != nil {
			t = t.Select(step.Selector)
		}
	}
	return t
}

// Command terminates the path into a callable reference. Category names reachable from here narrow instead of
// terminating, so they are rejected.
func (t Tree[T]) Command(name string) Reference[T] {
	ref := Reference[T]{call: t.call, path: t.path, name: name, err: t.err}
	if ref.err != nil {
		return ref
	}
	if name == "" {
		ref.err = addressingErrorf(t.path, "empty command name")
	} else if Reachable(t.category, name) {
		ref.err = addressingErrorf(t.path, "%q is a category, not a command", name)
	}
	return ref
}

// Reference is a path bound to a command name.
type Reference[T any] struct {
	call CallFunc[T]
	path Path
	name string
	err  error
}

func (r Reference[T]) Path() Path {
	return r.path
}

func (r Reference[T]) Name() string {
	return r.name
}

func (r Reference[T]) Err() error {
	return r.err
}

// Request packages the reference with arguments, without calling.
func (r Reference[T]) Request(kwargs map[string]interface{}, args ...interface{}) (Request, error) {
	if r.err != nil {
		return Request{}, r.err
	}
	return NewRequest(r.path, r.name, args, kwargs), nil
}

// Call invokes the command with positional arguments.
func (r Reference[T]) Call(args ...interface{}) (T, error) {
	return r.CallKw(nil, args...)
}

// CallKw invokes the command with keyword and positional arguments.
func (r Reference[T]) CallKw(kwargs map[string]interface{}, args ...interface{}) (T, error) {
	req, err := r.Request(kwargs, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.call(req)
}
