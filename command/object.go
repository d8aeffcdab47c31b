package command

import (
	"strings"
)

// Object is anything addressable that exposes operations: windows, groups, layouts, screens, bars, widgets
// and the session root.
type Object interface {
	// Select resolves a child object of the given category, nil selector meaning the current one.
	// It returns false when there is no such object.
	Select(category string, selector interface{}) (Object, bool)
	// Commands returns the operations of this object.
	Commands() Commands
}

// Handler runs a bound operation.
type Handler func(args Args) (interface{}, error)

// Commands is the operation table of one object.
type Commands interface {
	// Names lists operation names in declaration order, built-ins last.
	Names() []string
	Lookup(name string) (Handler, bool)
	// Signature is eg. `place(x, y, width, height)`.
	Signature(name string) (string, bool)
	DocText(name string) (string, bool)
}

// Op declares one operation of objects of type O.
// Params are parameter names, `name=default` marks an optional one.
type Op[O any] struct {
	Name   string
	Params []string
	Doc    string
	Fn     func(o O, args Args) (interface{}, error)
}

func (op Op[O]) signature() string {
	return op.Name + "(" + strings.Join(op.Params, ", ") + ")"
}

// Table is a static, ordered set of operations for objects of type O.
// It is meant to be declared once per type as a package variable.
type Table[O any] struct {
	ops    []Op[O]
	byName map[string]int
}

// NewTable panics on duplicated or reserved names, tables are static so that's a programming error.
func NewTable[O any](ops ...Op[O]) *Table[O] {
	t := &Table[O]{ops: ops, byName: make(map[string]int, len(ops))}
	for i, op := range ops {
		if _, dup := t.byName[op.Name]; dup {
			panic("duplicated operation " + op.Name)
		}
		if isBuiltin(op.Name) {
			panic("reserved operation name " + op.Name)
		}
		t.byName[op.Name] = i
	}
	return t
}

// Bind returns the operations of the object o.
func (t *Table[O]) Bind(o O) Commands {
	return bound[O]{table: t, obj: o}
}

type bound[O any] struct {
	table *Table[O]
	obj   O
}

func (b bound[O]) Names() []string {
	names := make([]string, 0, len(b.table.ops)+len(builtins))
	for _, op := range b.table.ops {
		names = append(names, op.Name)
	}
	return append(names, builtins...)
}

func (b bound[O]) Lookup(name string) (Handler, bool) {
	if i, ok := b.table.byName[name]; ok {
		op := b.table.ops[i]
		return func(args Args) (interface{}, error) {
			if err := args.check(op.Params); err != nil {
				return nil, err
			}
			args.params = op.Params
			return op.Fn(b.obj, args)
		}, true
	}
	switch name {
	case builtinCommands:
		return func(args Args) (interface{}, error) {
			if err := args.check(nil); err != nil {
				return nil, err
			}
			return b.Names(), nil
		}, true
	case builtinDoc:
		return func(args Args) (interface{}, error) {
			params := []string{"name"}
			if err := args.check(params); err != nil {
				return nil, err
			}
			args.params = params
			target, err := args.String(0)
			if err != nil {
				return nil, err
			}
			doc, ok := Doc(b, target)
			if !ok {
				return nil, Errorf("No such command: %s", target)
			}
			return doc, nil
		}, true
	}
	return nil, false
}

func (b bound[O]) Signature(name string) (string, bool) {
	if i, ok := b.table.byName[name]; ok {
		return b.table.ops[i].signature(), true
	}
	switch name {
	case builtinCommands:
		return "commands()", true
	case builtinDoc:
		return "doc(name)", true
	}
	return "", false
}

func (b bound[O]) DocText(name string) (string, bool) {
	if i, ok := b.table.byName[name]; ok {
		return dedent(b.table.ops[i].Doc), true
	}
	switch name {
	case builtinCommands:
		return "Returns a list of possible commands for this object.", true
	case builtinDoc:
		return "Returns the documentation for a specified command name.", true
	}
	return "", false
}

const (
	builtinCommands = "commands"
	builtinDoc      = "doc"
)

var builtins = []string{builtinCommands, builtinDoc}

func isBuiltin(name string) bool {
	return name == builtinCommands || name == builtinDoc
}

// Doc renders the signature of an operation followed by its tab indented documentation.
func Doc(cmds Commands, name string) (string, bool) {
	sig, ok := cmds.Signature(name)
	if !ok {
		return "", false
	}
	text, _ := cmds.DocText(name)
	if text == "" {
		return sig, true
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "\t" + l
	}
	return sig + "\n" + strings.Join(lines, "\n"), true
}

// removes the common leading whitespace of all non blank lines
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	prefix := ""
	first := true
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lead := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if first || strings.HasPrefix(prefix, lead) {
			prefix = lead
			first = false
			continue
		}
		for !strings.HasPrefix(lead, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, prefix)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t\n")
}

// Describe is a convenience for listings: every operation of cmds with its signature.
func Describe(cmds Commands) []string {
	names := cmds.Names()
	ret := make([]string, 0, len(names))
	for _, n := range names {
		sig, _ := cmds.Signature(n)
		ret = append(ret, sig)
	}
	return ret
}
