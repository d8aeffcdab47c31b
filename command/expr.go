package command

import (
	"strconv"
	"strings"
)

// Build walks a textual address expression from root and returns the reference it names.
//
// Expressions are dot separated segments, every segment but the last one being a category optionally followed
// by a selector in brackets, and the last one being the command name:
//
//	status
//	group[b].pull
//	screen[0].bar[bottom].info
//	group["my group"].layout.next
//
// Unquoted selectors that parse as integers are integers, everything else is a string.
func Build[T any](root Tree[T], expr string) Reference[T] {
	segments, err := splitExpr(expr)
	if err != nil {
		return Reference[T]{call: root.call, path: root.path, err: err}
	}
	node := root
	for _, seg := range segments[:len(segments)-1] {
		node = node.Into(seg.name)
		if seg.hasSelector {
			node = node.Select(seg.selector)
		}
	}
	last := segments[len(segments)-1]
	if last.hasSelector {
		return node.Command(last.name).withErr(addressingErrorf(node.path, "command %s can't be selected", last.name))
	}
	return node.Command(last.name)
}

// Node walks an expression naming an object rather than a command, eg. `group[b].layout`.
// An empty expression is root itself.
func Node[T any](root Tree[T], expr string) Tree[T] {
	if strings.TrimSpace(expr) == "" {
		return root
	}
	segments, err := splitExpr(expr)
	if err != nil {
		if root.err == nil {
			root.err = err
		}
		return root
	}
	node := root
	for _, seg := range segments {
		node = node.Into(seg.name)
		if seg.hasSelector {
			node = node.Select(seg.selector)
		}
	}
	return node
}

// keeps the first error
func (r Reference[T]) withErr(err error) Reference[T] {
	if r.err == nil {
		r.err = err
	}
	return r
}

type segment struct {
	name        string
	selector    interface{}
	hasSelector bool
}

func splitExpr(expr string) ([]segment, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, addressingErrorf(nil, "empty expression")
	}
	ret := make([]segment, 0)
	for len(expr) > 0 {
		end := strings.IndexAny(expr, ".[")
		if end < 0 {
			end = len(expr)
		}
		seg := segment{name: expr[:end]}
		if seg.name == "" {
			return nil, addressingErrorf(nil, "empty name in %q", expr)
		}
		expr = expr[end:]
		if strings.HasPrefix(expr, "[") {
			sel, rest, err := splitSelector(expr)
			if err != nil {
				return nil, err
			}
			seg.selector, seg.hasSelector, expr = sel, true, rest
		}
		ret = append(ret, seg)
		if strings.HasPrefix(expr, ".") {
			expr = expr[1:]
			if expr == "" {
				return nil, addressingErrorf(nil, "trailing dot after %s", seg.name)
			}
		} else if expr != "" {
			return nil, addressingErrorf(nil, "unexpected %q after %s", expr, seg.name)
		}
	}
	return ret, nil
}

// splits `[selector]rest`, honouring quotes inside the brackets
func splitSelector(expr string) (interface{}, string, error) {
	body := expr[1:]
	if len(body) > 0 && (body[0] == '"' || body[0] == '\'') {
		quote := body[0]
		end := strings.IndexByte(body[1:], quote)
		if end < 0 || !strings.HasPrefix(body[end+2:], "]") {
			return nil, "", addressingErrorf(nil, "unterminated selector in %q", expr)
		}
		return body[1 : end+1], body[end+3:], nil
	}
	end := strings.IndexByte(body, ']')
	if end < 0 {
		return nil, "", addressingErrorf(nil, "unterminated selector in %q", expr)
	}
	raw := strings.TrimSpace(body[:end])
	if raw == "" {
		return nil, "", addressingErrorf(nil, "empty selector in %q", expr)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, body[end+1:], nil
	}
	return raw, body[end+1:], nil
}
