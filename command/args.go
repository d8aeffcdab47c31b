package command

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Args are the positional and keyword arguments of one invocation.
// Accessors take the parameter position; a value is looked up positionally first and then by the parameter
// name declared in the operation table. Conversion failures are CommandErrors.
type Args struct {
	Pos    []interface{}
	Kw     map[string]interface{}
	params []string
}

// NewArgs is mostly useful to call handlers directly.
func NewArgs(pos []interface{}, kw map[string]interface{}) Args {
	return Args{Pos: pos, Kw: kw}
}

func paramName(p string) (name string, optional bool) {
	if i := strings.IndexByte(p, '='); i >= 0 {
		return p[:i], true
	}
	return p, false
}

// validates arity and keywords against params
func (a Args) check(params []string) error {
	if len(a.Pos) > len(params) {
		return Errorf("expected at most %d arguments, got %d", len(params), len(a.Pos))
	}
	names := make(map[string]int, len(params))
	for i, p := range params {
		name, _ := paramName(p)
		names[name] = i
	}
	for k := range a.Kw {
		i, ok := names[k]
		if !ok {
			return Errorf("unexpected keyword argument: %s", k)
		}
		if i < len(a.Pos) {
			return Errorf("got multiple values for argument: %s", k)
		}
	}
	for i, p := range params {
		name, optional := paramName(p)
		if optional || i < len(a.Pos) {
			continue
		}
		if _, ok := a.Kw[name]; !ok {
			return Errorf("missing argument: %s", name)
		}
	}
	return nil
}

func (a Args) name(i int) string {
	if i < len(a.params) {
		n, _ := paramName(a.params[i])
		return n
	}
	return ""
}

// Value returns the raw argument at position i, and whether it was given at all.
func (a Args) Value(i int) (interface{}, bool) {
	if i < len(a.Pos) {
		return a.Pos[i], true
	}
	if n := a.name(i); n != "" {
		v, ok := a.Kw[n]
		return v, ok
	}
	return nil, false
}

func (a Args) label(i int) string {
	if n := a.name(i); n != "" {
		return n
	}
	return "#" + strconv.Itoa(i)
}

// String returns argument i as a string.
func (a Args) String(i int) (string, error) {
	v, ok := a.Value(i)
	if !ok {
		return "", Errorf("missing argument: %s", a.label(i))
	}
	s, ok := v.(string)
	if !ok {
		return "", Errorf("argument %s must be a string", a.label(i))
	}
	return s, nil
}

// Int returns argument i as an int, accepting integral JSON numbers.
func (a Args) Int(i int) (int, error) {
	v, ok := a.Value(i)
	if !ok {
		return 0, Errorf("missing argument: %s", a.label(i))
	}
	n, ok := ToInt(v)
	if !ok {
		return 0, Errorf("argument %s must be an integer", a.label(i))
	}
	return n, nil
}

// IntOr is Int with a default for absent arguments.
func (a Args) IntOr(i int, dfault int) (int, error) {
	if _, ok := a.Value(i); !ok {
		return dfault, nil
	}
	return a.Int(i)
}

// Bool returns argument i as a bool.
func (a Args) Bool(i int) (bool, error) {
	v, ok := a.Value(i)
	if !ok {
		return false, Errorf("missing argument: %s", a.label(i))
	}
	b, ok := v.(bool)
	if !ok {
		return false, Errorf("argument %s must be a boolean", a.label(i))
	}
	return b, nil
}

// Strings returns argument i as a list of strings.
func (a Args) Strings(i int) ([]string, error) {
	v, ok := a.Value(i)
	if !ok {
		return nil, Errorf("missing argument: %s", a.label(i))
	}
	switch xs := v.(type) {
	case []string:
		return xs, nil
	case []interface{}:
		ret := make([]string, len(xs))
		for j, x := range xs {
			s, ok := x.(string)
			if !ok {
				return nil, Errorf("argument %s must be a list of strings", a.label(i))
			}
			ret[j] = s
		}
		return ret, nil
	}
	return nil, Errorf("argument %s must be a list of strings", a.label(i))
}

// ToInt converts integral numbers of any representation to int.
// Numbers decoded from the wire are float64.
func ToInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return int(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		return int(n), err == nil
	}
	return 0, false
}
