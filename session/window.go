package session

import (
	"github.com/tilewm/tilewm/command"
)

// Window is a managed client window. Geometry is set by the layout of its group, or by place.
type Window struct {
	s                   *Session
	id                  int
	name                string
	group               *Group
	x, y, width, height int
	hidden              bool
	// shown on a screen by its layout
	mapped bool
}

func (w *Window) ID() int {
	return w.id
}

func (w *Window) Name() string {
	return w.name
}

// Group is nil once the window has been killed.
func (w *Window) Group() *Group {
	return w.group
}

func (w *Window) configure(x, y, width, height int) {
	w.x, w.y, w.width, w.height = x, y, width, height
	w.mapped = true
}

func (w *Window) info() map[string]interface{} {
	var group interface{}
	if w.group != nil {
		group = w.group.name
	}
	return map[string]interface{}{
		"id":     w.id,
		"name":   w.name,
		"group":  group,
		"x":      w.x,
		"y":      w.y,
		"width":  w.width,
		"height": w.height,
		"hidden": w.hidden,
		"mapped": w.mapped,
	}
}

func (w *Window) focus() {
	g := w.group
	g.focus = w
	if g.screen != nil {
		w.s.current = g.screen
	}
	g.arrange()
}

func (w *Window) Select(category string, selector interface{}) (command.Object, bool) {
	g := w.group
	if g == nil {
		return nil, false
	}
	switch category {
	case command.Group:
		if selector == nil {
			return g, true
		}
	case command.Screen:
		return g.Select(command.Screen, selector)
	case command.Layout:
		return g.selectLayout(selector)
	}
	return nil, false
}

func (w *Window) Commands() command.Commands {
	return windowOps.Bind(w)
}

var windowOps *command.Table[*Window]

func init() {
	windowOps = command.NewTable(
		command.Op[*Window]{
			Name: "info",
			Doc:  "Returns a dictionary of info for this window.",
			Fn: func(w *Window, _ command.Args) (interface{}, error) {
				return w.info(), nil
			},
		},
		command.Op[*Window]{
			Name: "kill",
			Doc:  "Kill this window, it is no longer managed.",
			Fn: func(w *Window, _ command.Args) (interface{}, error) {
				w.s.unmanage(w)
				return nil, nil
			},
		},
		command.Op[*Window]{
			Name: "hide",
			Doc:  "Hide this window, layouts skip it.",
			Fn: func(w *Window, _ command.Args) (interface{}, error) {
				w.hidden = true
				w.group.arrange()
				return nil, nil
			},
		},
		command.Op[*Window]{
			Name: "unhide",
			Doc:  "Show this window again after hide.",
			Fn: func(w *Window, _ command.Args) (interface{}, error) {
				w.hidden = false
				w.group.arrange()
				return nil, nil
			},
		},
		command.Op[*Window]{
			Name:   "place",
			Params: []string{"x", "y", "width", "height"},
			Doc: `
				Place the window at the given position and size.
				The next arrangement of its group overrides it.`,
			Fn: func(w *Window, args command.Args) (interface{}, error) {
				var geom [4]int
				for i := range geom {
					n, err := args.Int(i)
					if err != nil {
						return nil, err
					}
					geom[i] = n
				}
				if geom[2] <= 0 || geom[3] <= 0 {
					return nil, command.Errorf("invalid geometry: %dx%d", geom[2], geom[3])
				}
				w.x, w.y, w.width, w.height = geom[0], geom[1], geom[2], geom[3]
				return nil, nil
			},
		},
		command.Op[*Window]{
			Name: "focus",
			Doc:  "Focus this window, and the screen showing it.",
			Fn: func(w *Window, _ command.Args) (interface{}, error) {
				w.focus()
				return nil, nil
			},
		},
		command.Op[*Window]{
			Name:   "togroup",
			Params: []string{"name"},
			Doc:    "Move the window to the named group.",
			Fn: func(w *Window, args command.Args) (interface{}, error) {
				name, err := args.String(0)
				if err != nil {
					return nil, err
				}
				g, ok := w.s.Group(name)
				if !ok {
					return nil, command.Errorf("No such group: %s", name)
				}
				if g != w.group {
					w.group.remove(w)
					g.add(w)
				}
				return nil, nil
			},
		},
	)
}
