package strcoll

import (
	"fmt"
	"strings"
)

type Tuple struct {
	First, Second string
}

type Tuples struct {
	data []Tuple
}

func NewTuples() Tuples {
	return Tuples{data: make([]Tuple, 0)}
}

func (ts *Tuples) Add(first string, second interface{}) {
	ts.data = append(ts.data, Tuple{first, StringOf(second)})
}

// FromMap adds every entry of m, sorted by key.
func FromMap(m map[string]interface{}) Tuples {
	ts := NewTuples()
	for _, k := range Keys(m) {
		ts.Add(k, m[k])
	}
	return ts
}

func (ts Tuples) Len() int {
	return len(ts.data)
}

// Format aligns values, padding keys with dots up to padding characters.
func (ts Tuples) Format(padding int) string {
	lines := make([]string, 0)
	for _, t := range ts.data {
		first, second := t.First, t.Second
		dots := padding - len(first)
		if dots < 1 {
			dots = 1
		}
		first += " " + strings.Repeat(".", dots) + " "
		lines = append(lines, first+second)
	}
	return strings.Join(lines, "\n")
}

// StringOf formats payload values the way the shell shows them: integral numbers without decimals, lists
// comma separated, nil as "-".
func StringOf(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.2f", x)
	case []string:
		return strings.Join(x, ",")
	case []interface{}:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = StringOf(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
