package command

import (
	"fmt"
	"strings"
)

// Categories of addressable objects.
const (
	Layout = "layout"
	Widget = "widget"
	Bar    = "bar"
	Window = "window"
	Screen = "screen"
	Group  = "group"
)

// navigation graph, keyed by category; "" is the session root
var adjacency = map[string][]string{
	"":     {Layout, Widget, Screen, Bar, Window, Group},
	Layout: {Group, Window, Screen},
	Widget: {Bar, Screen, Group},
	Bar:    {Screen, Group, Widget},
	Window: {Group, Screen, Layout},
	Screen: {Layout, Window, Bar},
	Group:  {Layout, Window, Screen},
}

// Contains returns the categories reachable from `category`, or from the root if `category` is empty.
func Contains(category string) []string {
	return append([]string(nil), adjacency[category]...)
}

// Reachable reports whether `next` can be narrowed into from `category`.
func Reachable(category, next string) bool {
	for _, c := range adjacency[category] {
		if c == next {
			return true
		}
	}
	return false
}

// IsCategory reports whether name is a category at all.
func IsCategory(name string) bool {
	_, ok := adjacency[name]
	return ok && name != ""
}

// Step is one (category, selector) pair of a selector path.
// A nil Selector addresses the current instance of the category.
type Step struct {
	Category string
	Selector interface{}
}

func (s Step) String() string {
	if s.Selector == nil {
		return s.Category
	}
	return fmt.Sprintf("%s[%v]", s.Category, s.Selector)
}

// Path is an ordered list of steps from the session root.
// Paths are never modified in place, Append and WithSelector return copies.
type Path []Step

// Append returns a copy of p extended with an unselected step into category.
func (p Path) Append(category string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, Step{Category: category})
}

// WithSelector returns a copy of p with the selector of the last step set.
func (p Path) WithSelector(selector interface{}) Path {
	next := make(Path, len(p))
	copy(next, p)
	next[len(next)-1].Selector = selector
	return next
}

// Last returns the last step, if any.
func (p Path) Last() (Step, bool) {
	if len(p) == 0 {
		return Step{}, false
	}
	return p[len(p)-1], true
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}
