package config

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	LayoutMax   = "max"
	LayoutStack = "stack"

	Top    = "top"
	Bottom = "bottom"
	Left   = "left"
	Right  = "right"

	WidgetTextBox    = "textbox"
	WidgetWindowName = "windowname"
	WidgetGroupBox   = "groupbox"
)

// Positions lists bar positions in the order they are laid out.
var Positions = []string{Top, Bottom, Left, Right}

var layouts = map[string]bool{LayoutMax: true, LayoutStack: true}

func fmtSocketBase(display string) string {
	return fmt.Sprintf(SocketBase, display)
}

// WidgetName is the name a widget is registered with: its configured name or its type.
func (w WidgetConfig) WidgetName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.Type
}

// Validate checks everything that can be checked without building a session.
func (c Config) Validate() error {
	switch {
	case len(c.Groups) == 0:
		return errors.New("at least one group is needed")
	case len(c.Screens) == 0:
		return errors.New("at least one screen is needed")
	case len(c.Layouts) == 0:
		return errors.New("at least one layout is needed")
	}
	seen := make(map[string]bool)
	for _, g := range c.Groups {
		if g == "" {
			return errors.New("groups must have a name")
		}
		if seen[g] {
			return errors.Errorf("duplicated group %s", g)
		}
		seen[g] = true
	}
	if len(c.Groups) < len(c.Screens) {
		return errors.Errorf("%d screens need at least as many groups, got %d", len(c.Screens), len(c.Groups))
	}
	for _, l := range c.Layouts {
		if !layouts[l] {
			return errors.Errorf("unknown layout %s", l)
		}
	}

	widgets := make(map[string]bool)
	for i, s := range c.Screens {
		if s.Width <= 0 || s.Height <= 0 {
			return errors.Errorf("screen %d has no area", i)
		}
		for pos, b := range s.Bars {
			if !isPosition(pos) {
				return errors.Errorf("screen %d: unknown bar position %s", i, pos)
			}
			if b.Size <= 0 {
				return errors.Errorf("screen %d: bar %s must have a size", i, pos)
			}
			if len(b.Widgets) > 0 && pos != Top && pos != Bottom {
				return errors.Errorf("screen %d: bars with widgets can only be at the top or the bottom of the screen", i)
			}
			for _, w := range b.Widgets {
				switch w.Type {
				case WidgetTextBox, WidgetWindowName, WidgetGroupBox:
				default:
					return errors.Errorf("screen %d: unknown widget type %s", i, w.Type)
				}
				name := w.WidgetName()
				if widgets[name] {
					return errors.Errorf("duplicated widget %s", name)
				}
				widgets[name] = true
			}
		}
	}

	for _, k := range c.Keys {
		if k.Key == "" || k.Command == "" {
			return errors.Errorf("key bindings need a key and a command: %+v", k)
		}
		if k.WhenGroup != "" && !seen[k.WhenGroup] {
			return errors.Errorf("key %s is bound for unknown group %s", k.Key, k.WhenGroup)
		}
	}
	for _, w := range c.Windows {
		if w.Group != "" && !seen[w.Group] {
			return errors.Errorf("window %s is placed in unknown group %s", w.Name, w.Group)
		}
	}
	return nil
}

func isPosition(pos string) bool {
	for _, p := range Positions {
		if p == pos {
			return true
		}
	}
	return false
}
