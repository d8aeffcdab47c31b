package session

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
)

// Key binds a key with modifiers to deferred calls.
type Key struct {
	Modifiers []string
	Name      string
	Calls     []*command.Call
}

// NewKey takes modifiers in any order.
func NewKey(modifiers []string, name string, calls ...*command.Call) *Key {
	return &Key{Modifiers: normalize(modifiers), Name: name, Calls: calls}
}

func normalize(modifiers []string) []string {
	ret := make([]string, 0, len(modifiers))
	for _, m := range modifiers {
		ret = append(ret, strings.ToLower(m))
	}
	sort.Strings(ret)
	return ret
}

func keyName(modifiers []string, name string) string {
	return strings.Join(append(normalize(modifiers), name), "+")
}

func (k *Key) String() string {
	return keyName(k.Modifiers, k.Name)
}

func (k *Key) matches(modifiers []string, name string) bool {
	return k.String() == keyName(modifiers, name)
}

// builds key bindings, entries for the same key accumulate calls in configuration order
func bindings(cfgs []config.KeyConfig) ([]*Key, error) {
	var keys []*Key
	byName := make(map[string]*Key)
	for _, kc := range cfgs {
		name := keyName(kc.Modifiers, kc.Key)
		call, err := command.Lazy(kc.Command, kc.Args...)
		if err != nil {
			return nil, errors.Wrapf(err, "binding %s", name)
		}
		if kc.WhenLayout != "" {
			call.WhenLayout(kc.WhenLayout)
		}
		if kc.WhenGroup != "" {
			call.WhenGroup(kc.WhenGroup)
		}
		if k, ok := byName[name]; ok {
			k.Calls = append(k.Calls, call)
			continue
		}
		k := NewKey(kc.Modifiers, kc.Key, call)
		byName[name] = k
		keys = append(keys, k)
	}
	return keys, nil
}

// Bind adds a key binding, replacing any other binding of the same key.
func (s *Session) Bind(k *Key) {
	for i, other := range s.keys {
		if other.matches(k.Modifiers, k.Name) {
			s.keys[i] = k
			return
		}
	}
	s.keys = append(s.keys, k)
}

// Keys returns the key bindings.
func (s *Session) Keys() []*Key {
	return s.keys
}

// PressKey runs, in order, the calls bound to a key whose conditions hold at the time each is reached.
// It stops at the first call that fails. A key whose calls end up pressing it again is a loop and fails.
func (s *Session) PressKey(modifiers []string, name string) error {
	for _, k := range s.keys {
		if !k.matches(modifiers, name) {
			continue
		}
		if s.pressing[k.String()] {
			return command.Errorf("key binding loop: %s", k)
		}
		s.pressing[k.String()] = true
		defer delete(s.pressing, k.String())
		for _, call := range k.Calls {
			if !call.Eligible(s) {
				continue
			}
			if _, err := call.Run(s).Result(); err != nil {
				return err
			}
		}
		return nil
	}
	return command.Errorf("No such key binding: %s", keyName(modifiers, name))
}
