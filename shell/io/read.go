package io

import (
	"errors"
	"regexp"
	s "strings"

	"github.com/mailru/easyjson/jlexer"
)

// returns a function that takes an string and an error, and returns an slice of slices of strings and an error
// the input string is entered by the user, each output slice is a command
// commands are separated by `;`, and names defined by the user are substituted before splitting
func Read(nameDefs map[string][]string) func(string, error) ([][]string, error) {
	return func(input string, err error) ([][]string, error) {
		ret := make([][]string, 0)
		if err != nil {
			return ret, err
		}
		fields, err := Fields(input)
		if err != nil {
			return ret, err
		}
		if len(fields) > 0 && fields[0] == "define" {
			// do not resolve user-defines names
			return append(ret, fields), nil
		}
		for _, f := range fields {
			if f == "define" {
				// do not allow recursive definitions
				return ret, errors.New("define can only be the first word in a line")
			}
		}
		expr, err := interpolateVars(substituteN(nameDefs, fields))
		cmd := make([]string, 0)
		for _, token := range expr {
			if token == ";" {
				if len(cmd) > 0 {
					ret = append(ret, cmd)
				}
				cmd = make([]string, 0)
				continue
			}
			cmd = append(cmd, token)
		}
		if len(cmd) > 0 {
			ret = append(ret, cmd)
		}
		return ret, err
	}
}

// Fields splits input on whitespace, except inside single or double quotes which are kept in the tokens.
// A `;` outside quotes is a token on its own.
func Fields(input string) ([]string, error) {
	ret := make([]string, 0)
	var token s.Builder
	var quote rune
	escaped := false
	flush := func() {
		if token.Len() > 0 {
			ret = append(ret, token.String())
			token.Reset()
		}
	}
	for _, r := range input {
		switch {
		case quote != 0:
			token.WriteRune(r)
			if escaped {
				escaped = false
			} else if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			token.WriteRune(r)
		case r == ';':
			flush()
			ret = append(ret, ";")
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			token.WriteRune(r)
		}
	}
	if quote != 0 {
		return ret, errors.New("unterminated quote")
	}
	flush()
	return ret, nil
}

// interpolates strings in positions indicated by $ placeholders
// eg [a b $ d $ f C E] becomes [a b C d E f]
func interpolateVars(expr []string, err error) ([]string, error) {
	if err != nil {
		return expr, err
	}
	ret := make([]string, len(expr))
	for idx, token := range expr {
		ret[idx] = token
	}
	vars := make([]int, 0)
	for idx, token := range ret {
		if token == "$" {
			vars = append(vars, idx)
		}
	}
	if len(vars) > 0 && len(vars) > len(expr[vars[len(vars)-1]+1:]) {
		return ret, errors.New("too many variables")
	}

	for idx, v := range vars {
		ret[v] = ret[len(ret)-len(vars)+idx]
	}
	return ret[:len(ret)-len(vars)], nil
}

// substitutes on `expression` strings found in `nameDefs` keys with their respective values
// doesn't do cycle detection, but aborts after 99 substitutions
func substituteN(nameDefs map[string][]string, expression []string) ([]string, error) {
	var err error
	var loop int
	for b := true; b && loop < 100; {
		expression, b = substitute1(nameDefs, expression)
		loop++
	}
	if loop == 100 {
		err = errors.New("too many substitutions (recursive definition?)")
	}
	return expression, err
}

func substitute1(nameDefs map[string][]string, expression []string) ([]string, bool) {
	for idx, word := range expression {
		if v, ok := nameDefs[word]; ok {
			ret := make([]string, 0, len(expression)+len(v))
			ret = append(ret, expression[:idx]...)
			ret = append(ret, v...)
			return append(ret, expression[idx+1:]...), true
		}
	}
	return expression, false
}

var keyword = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// ParseArgs turns command tokens into arguments: `name=value` tokens are keyword arguments, the others are
// positional. Values are JSON literals (`1`, `true`, `"a b"`, `["mod4"]`), a single quoted or bare word that
// isn't JSON is a string.
func ParseArgs(tokens []string) ([]interface{}, map[string]interface{}, error) {
	args := make([]interface{}, 0, len(tokens))
	kwargs := make(map[string]interface{})
	for _, token := range tokens {
		if loc := keyword.FindStringIndex(token); loc != nil {
			name := token[:loc[1]-1]
			if _, dup := kwargs[name]; dup {
				return nil, nil, errors.New("keyword argument repeated: " + name)
			}
			kwargs[name] = ParseValue(token[loc[1]:])
			continue
		}
		if len(kwargs) > 0 {
			return nil, nil, errors.New("positional argument follows keyword argument: " + token)
		}
		args = append(args, ParseValue(token))
	}
	return args, kwargs, nil
}

// ParseValue reads a JSON literal, falling back to the token itself as a string.
func ParseValue(token string) interface{} {
	if len(token) >= 2 && token[0] == '\'' && token[len(token)-1] == '\'' {
		return token[1 : len(token)-1]
	}
	l := jlexer.Lexer{Data: []byte(token)}
	v := l.Interface()
	l.Consumed()
	if l.Error() != nil {
		return token
	}
	return v
}
