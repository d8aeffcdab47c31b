package shell

import (
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/server/strcoll"
	sio "github.com/tilewm/tilewm/shell/io"
)

// words the shell handles itself, they can't be defined as names
var reserved = []string{"help", "quit", "exit", "define", "ls", "doc"}

// Shell evaluates lines typed by the user against a command tree, usually a remote one.
type Shell struct {
	root     command.Tree[interface{}]
	defsPath string
	writer   sio.FileWriter
	// user name definitions for grouping commands, aliases, etc
	nameDefs map[string][]string
}

// New loads the definitions saved at defsPath, if any.
func New(root command.Tree[interface{}], defsPath string, writer sio.FileWriter) (*Shell, error) {
	defs, err := sio.LoadDefs(defsPath)
	if err != nil {
		return nil, err
	}
	return &Shell{root: root, defsPath: defsPath, writer: writer, nameDefs: defs}, nil
}

func (sh *Shell) names() map[string][]string {
	m := make(map[string][]string, len(sh.nameDefs))
	for k, v := range sh.nameDefs {
		m[k] = v
	}
	return m
}

// Run reads lines until the user quits, or hits ^C or ^D on an empty line.
func (sh *Shell) Run(historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sio.Prompt,
		HistoryFile:     historyFile,
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return errors.Wrap(err, "initializing readline")
	}
	defer rl.Close()

	w := rl.Stdout()
	sio.ReplyNL(w, sio.Grey+"type 'help' for help")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		if sh.Eval(w, line) {
			return nil
		}
	}
}

// Eval evaluates one line, that might hold several commands separated by semicolons.
// It returns true when the user asked to leave.
func (sh *Shell) Eval(w io.Writer, line string) bool {
	cmds, err := sio.Read(sh.names())(line, nil)
	if err != nil {
		sio.ReplyEitherNL(w, err)
		return false
	}
	for _, cmd := range cmds {
		fn := strcoll.Nth(0, cmd)
		if fn == "quit" || fn == "exit" {
			sio.ReplyNL(w, sio.Grey+"bye!")
			return true
		}
		sio.Reply(w, sh.eval(cmd))
	}
	return false
}

func (sh *Shell) eval(cmd []string) string {
	bw := sio.NewBufferWriter()
	fn := strcoll.Nth(0, cmd)

	switch {
	case fn == "help":
		return help()

	case fn == "define" && strcoll.Nth(2, cmd) == "":
		return nameDefinitions(sh.nameDefs, strcoll.Nth(1, cmd))

	case fn == "define":
		defs, err := define(sh.defsPath, sh.writer, strcoll.Rest(1, cmd), sh.names())
		if defs != nil {
			sh.nameDefs = defs
		}
		sio.ReplyEitherNL(bw, err, sio.Grey+"ok")

	case fn == "ls":
		categories, names, err := List(sh.root, strcoll.Nth(1, cmd))
		if err != nil {
			sio.ReplyEitherNL(bw, err)
			break
		}
		for _, c := range categories {
			sio.ReplyNL(bw, sio.Magenta+c+".")
		}
		for _, name := range names {
			sio.ReplyNL(bw, sio.Grey+name)
		}

	case fn == "doc":
		if strcoll.Nth(1, cmd) == "" {
			sio.ReplyNL(bw, sio.Yellow+"usage: doc <expression>, eg. doc group.pull")
			break
		}
		doc, err := Doc(sh.root, strcoll.Nth(1, cmd))
		sio.ReplyEitherNL(bw, err, sio.Grey+doc)

	default:
		v, err := Call(sh.root, fn, strcoll.Rest(1, cmd))
		sio.ReplyEitherNL(bw, err, sio.Grey+Format(v))
	}
	return bw.String()
}

// Call calls the command named by expr with arguments parsed from tokens, see io.ParseArgs.
func Call(root command.Tree[interface{}], expr string, tokens []string) (interface{}, error) {
	args, kwargs, err := sio.ParseArgs(tokens)
	if err != nil {
		return nil, err
	}
	return command.Build(root, expr).CallKw(kwargs, args...)
}

// List returns what can follow expr: the categories to narrow into, and the commands of the object expr
// resolves to.
func List(root command.Tree[interface{}], expr string) ([]string, []string, error) {
	node := command.Node(root, expr)
	if node.Err() != nil {
		return nil, nil, node.Err()
	}
	v, err := node.Command("commands").Call()
	if err != nil {
		return nil, nil, err
	}
	var names []string
	switch xs := v.(type) {
	case []string:
		names = xs
	case []interface{}:
		for _, x := range xs {
			names = append(names, strcoll.StringOf(x))
		}
	default:
		return nil, nil, errors.Errorf("unexpected commands listing: %T", v)
	}
	return node.Contains(), names, nil
}

// Doc returns the signature and documentation of the command named by expr.
func Doc(root command.Tree[interface{}], expr string) (string, error) {
	ref := command.Build(root, expr)
	if ref.Err() != nil {
		return "", ref.Err()
	}
	v, err := root.Walk(ref.Path()).Command("doc").Call(ref.Name())
	if err != nil {
		return "", err
	}
	return strcoll.StringOf(v), nil
}

// Format renders a payload for humans: maps as dotted key/value tuples, lists one element per line.
func Format(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "ok"
	case string:
		return x
	case map[string]interface{}:
		padding := 0
		for k := range x {
			if len(k) > padding {
				padding = len(k)
			}
		}
		return strcoll.FromMap(x).Format(padding + 3)
	case []interface{}:
		if len(x) == 0 {
			return "-"
		}
		parts := make([]string, len(x))
		sep := "\n"
		for i, e := range x {
			if _, ok := e.(map[string]interface{}); ok {
				sep = "\n\n"
			}
			parts[i] = Format(e)
		}
		return strings.Join(parts, sep)
	}
	return strcoll.StringOf(v)
}

func nameDefinitions(nameDefs map[string][]string, match string) string {
	w := sio.NewBufferWriter()
	if len(nameDefs) == 0 {
		sio.ReplyNL(w, sio.Grey+"nothing to show")
		return w.String()
	}
	keys := make([]string, 0, len(nameDefs))
	for k := range nameDefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd := strings.Join(nameDefs[k], " ")
		if match == "" || strings.Contains(k, match) || strings.Contains(cmd, match) {
			sio.ReplyNL(w, sio.Magenta+k+sio.Grey+" "+cmd)
		}
	}
	return w.String()
}

// defines a name and returns the new name definitions, persisted at path
// a name definition maps 1 word to several words:
// `pb group[b].pull` maps `pb` to `group[b].pull`
// `tb textbox_update text $` maps `tb` to a command taking the text as a variable, `tb hello`
// `rm pb` removes the `pb` definition, possibly leaving dangling names
func define(path string, writer sio.FileWriter, cmd []string, nameDefs map[string][]string) (map[string][]string, error) {
	left, right := strcoll.Nth(0, cmd), strcoll.Rest(1, cmd)
	if left == "rm" {
		delete(nameDefs, strcoll.Nth(0, right))
		return nameDefs, sio.StoreDefs(path, writer, nameDefs)
	}
	if strcoll.Contains(left, reserved) {
		return nil, errors.Errorf("%s is a reserved word", left)
	}
	if strcoll.Contains(left, right) {
		return nil, errors.Errorf("%s can't appear in the right side", left)
	}
	nameDefs[left] = right
	return nameDefs, sio.StoreDefs(path, writer, nameDefs)
}

func help() string {
	w := sio.NewBufferWriter()
	sio.ReplyNL(w, sio.Yellow+"commands might be entered separated by semicolons, (eg: \"group[b].pull ; groups\")")
	sio.ReplyNL(w, sio.Magenta+"<expression> [<args>...]")
	sio.ReplyNL(w, sio.Grey+"    calls a command on the session, eg. \"screen[0].bar[bottom].info\" or \"textbox_update text hi\"")
	sio.ReplyNL(w, sio.Grey+"    arguments are JSON literals or plain words, name=value passes a keyword argument")
	sio.ReplyNL(w, sio.Magenta+"ls [<expression>]")
	sio.ReplyNL(w, sio.Grey+"    lists the categories and commands reachable from an object, eg. \"ls group[b]\"")
	sio.ReplyNL(w, sio.Magenta+"doc <expression>")
	sio.ReplyNL(w, sio.Grey+"    shows the signature and documentation of a command, eg. \"doc group.toscreen\"")
	sio.ReplyNL(w, sio.Magenta+"define [<match>]")
	sio.ReplyNL(w, sio.Grey+"    shows the names defined by the user, optionally only those containing <match>")
	sio.ReplyNL(w, sio.Magenta+"define <name> <words>...")
	sio.ReplyNL(w, sio.Grey+"    makes <name> stand for <words>, \"$\" in <words> takes the value of a trailing word")
	sio.ReplyNL(w, sio.Magenta+"define rm <name>")
	sio.ReplyNL(w, sio.Grey+"    removes a name definition")
	sio.ReplyNL(w, sio.Magenta+"quit / exit")
	sio.ReplyNL(w, sio.Grey+"    leaves the shell")
	return w.String()
}
