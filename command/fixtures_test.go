package command

import (
	"strings"

	"github.com/pkg/errors"
)

// a minimal object graph: every node can hold children per category and selector,
// the nil selector being the "current" child
type node struct {
	name     string
	children map[string]map[interface{}]*node
}

func newNode(name string) *node {
	return &node{name: name, children: make(map[string]map[interface{}]*node)}
}

func (n *node) add(category string, selector interface{}, child *node) *node {
	if n.children[category] == nil {
		n.children[category] = make(map[interface{}]*node)
	}
	n.children[category][selector] = child
	return n
}

func (n *node) Select(category string, selector interface{}) (Object, bool) {
	child, ok := n.children[category][selector]
	if !ok {
		return nil, false
	}
	return child, true
}

func (n *node) Commands() Commands {
	return nodeCommands.Bind(n)
}

var nodeCommands = NewTable(
	Op[*node]{
		Name: "name",
		Doc:  "Returns the node name.",
		Fn: func(n *node, _ Args) (interface{}, error) {
			return n.name, nil
		},
	},
	Op[*node]{
		Name:   "echo",
		Params: []string{"text", "times=1"},
		Doc: `
			Repeats text.

			times defaults to 1.
		`,
		Fn: func(n *node, args Args) (interface{}, error) {
			text, err := args.String(0)
			if err != nil {
				return nil, err
			}
			times, err := args.IntOr(1, 1)
			if err != nil {
				return nil, err
			}
			return strings.Repeat(text, times), nil
		},
	},
	Op[*node]{
		Name:   "reject",
		Params: []string{"msg"},
		Fn: func(n *node, args Args) (interface{}, error) {
			msg, err := args.String(0)
			if err != nil {
				return nil, err
			}
			return nil, errors.Wrap(Errorf("%s", msg), "rejected")
		},
	},
	Op[*node]{
		Name: "fail",
		Fn: func(n *node, _ Args) (interface{}, error) {
			return nil, errors.New("boom")
		},
	},
	Op[*node]{
		Name: "explode",
		Fn: func(n *node, _ Args) (interface{}, error) {
			panic("kaboom")
		},
	},
)

// root -> group a (current), group b -> layout 0 (current) -> window 7
func fixture() *node {
	win := newNode("win7")
	layout := newNode("max").add(Window, 7, win).add(Window, nil, win)
	a := newNode("a")
	b := newNode("b").add(Layout, 0, layout).add(Layout, nil, layout)
	return newNode("root").
		add(Group, "a", a).
		add(Group, nil, a).
		add(Group, "b", b)
}
