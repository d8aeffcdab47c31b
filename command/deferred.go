package command

import (
	"strings"
)

// State is the part of the session state guards are evaluated against.
type State interface {
	CurrentLayoutName() string
	CurrentGroupName() string
}

// Condition is a guard evaluated against session state when a deferred call is about to run.
type Condition func(s State) bool

// LayoutIs holds when the current layout is called name.
func LayoutIs(name string) Condition {
	return func(s State) bool {
		return s.CurrentLayoutName() == name
	}
}

// GroupIs holds when the current group is called name.
func GroupIs(name string) Condition {
	return func(s State) bool {
		return s.CurrentGroupName() == name
	}
}

// Call is a request built now and run later, possibly only under some conditions.
// Key bindings hold calls, so that the same key can do different things depending on the live session.
type Call struct {
	Request
	guards []Condition
	desc   []string
}

// When adds guards, all of them must hold for the call to be eligible.
func (c *Call) When(conds ...Condition) *Call {
	c.guards = append(c.guards, conds...)
	return c
}

// WhenLayout is When(LayoutIs(name)), it is what most key bindings need.
func (c *Call) WhenLayout(name string) *Call {
	c.desc = append(c.desc, "layout="+name)
	return c.When(LayoutIs(name))
}

// WhenGroup is When(GroupIs(name)).
func (c *Call) WhenGroup(name string) *Call {
	c.desc = append(c.desc, "group="+name)
	return c.When(GroupIs(name))
}

// Eligible evaluates the guards against the current state.
func (c *Call) Eligible(s State) bool {
	for _, g := range c.guards {
		if !g(s) {
			return false
		}
	}
	return true
}

// Run executes the call against root, skipping the guards.
func (c *Call) Run(root Object) Response {
	return Execute(root, c.Request)
}

func (c *Call) String() string {
	ret := c.Path.String()
	if ret != "" {
		ret += "."
	}
	ret += c.Name
	if len(c.desc) > 0 {
		ret += " when " + strings.Join(c.desc, ",")
	}
	return ret
}

func deferred(req Request) (*Call, error) {
	return &Call{Request: req}, nil
}

// Commander returns a command tree whose references build deferred calls instead of running anything.
func Commander() Tree[*Call] {
	return NewRoot(deferred)
}

// Lazy builds a deferred call from an address expression, eg. Lazy("group[b].toscreen", 0).
func Lazy(expr string, args ...interface{}) (*Call, error) {
	return Build(Commander(), expr).Call(args...)
}
