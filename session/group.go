package session

import (
	"github.com/tilewm/tilewm/command"
)

// Group is a named set of windows arranged by one of its layouts. It is visible when shown on a screen.
type Group struct {
	s       *Session
	name    string
	layouts []*Layout
	layout  int
	windows []*Window
	focus   *Window
	screen  *Screen
}

func newGroup(s *Session, name string, layouts []string) *Group {
	g := &Group{s: s, name: name}
	for i, l := range layouts {
		g.layouts = append(g.layouts, &Layout{group: g, name: l, index: i})
	}
	return g
}

func (g *Group) Name() string {
	return g.name
}

// Layout is the current layout.
func (g *Group) Layout() *Layout {
	return g.layouts[g.layout]
}

// Screen is where the group is shown, nil if hidden.
func (g *Group) Screen() *Screen {
	return g.screen
}

func (g *Group) add(w *Window) {
	w.group = g
	g.windows = append(g.windows, w)
	g.focus = w
	g.arrange()
}

func (g *Group) remove(w *Window) {
	for i, other := range g.windows {
		if other != w {
			continue
		}
		g.windows = append(g.windows[:i], g.windows[i+1:]...)
		if g.focus == w {
			g.focus = nil
			if len(g.windows) > 0 {
				g.focus = g.windows[i%len(g.windows)]
			}
		}
		break
	}
	w.group = nil
	w.mapped = false
	g.arrange()
}

// cycles the focus by step windows
func (g *Group) cycle(step int) {
	if len(g.windows) == 0 {
		return
	}
	i := g.indexOf(g.focus)
	n := len(g.windows)
	g.focus = g.windows[((i+step)%n+n)%n]
	g.arrange()
}

func (g *Group) indexOf(w *Window) int {
	for i, other := range g.windows {
		if other == w {
			return i
		}
	}
	return 0
}

func (g *Group) nextLayout() {
	g.layout = (g.layout + 1) % len(g.layouts)
	g.arrange()
}

func (g *Group) setLayout(name string) bool {
	for i, l := range g.layouts {
		if l.name == name {
			g.layout = i
			g.arrange()
			return true
		}
	}
	return false
}

func (g *Group) arrange() {
	if g.screen == nil {
		for _, w := range g.windows {
			w.mapped = false
		}
		return
	}
	x, y, width, height := g.screen.area()
	g.Layout().arrange(x, y, width, height)
}

func (g *Group) info() map[string]interface{} {
	var screen, focus interface{}
	if g.screen != nil {
		screen = g.screen.index
	}
	if g.focus != nil {
		focus = g.focus.name
	}
	windows := make([]string, 0, len(g.windows))
	for _, w := range g.windows {
		windows = append(windows, w.name)
	}
	return map[string]interface{}{
		"name":    g.name,
		"screen":  screen,
		"layout":  g.Layout().name,
		"windows": windows,
		"focus":   focus,
	}
}

func (g *Group) selectLayout(selector interface{}) (command.Object, bool) {
	if selector == nil {
		return g.Layout(), true
	}
	i, ok := command.ToInt(selector)
	if !ok || i < 0 || i >= len(g.layouts) {
		return nil, false
	}
	return g.layouts[i], true
}

func (g *Group) Select(category string, selector interface{}) (command.Object, bool) {
	switch category {
	case command.Layout:
		return g.selectLayout(selector)
	case command.Window:
		if selector == nil {
			return g.s.selectWindow(g, nil)
		}
		// only windows of this group
		obj, ok := g.s.selectWindow(g, selector)
		if !ok || obj.(*Window).group != g {
			return nil, false
		}
		return obj, true
	case command.Screen:
		if selector == nil && g.screen != nil {
			return g.screen, true
		}
	}
	return nil, false
}

func (g *Group) Commands() command.Commands {
	return groupOps.Bind(g)
}

var groupOps *command.Table[*Group]

func init() {
	groupOps = command.NewTable(
		command.Op[*Group]{
			Name: "info",
			Doc:  "Returns a dictionary of info for this group.",
			Fn: func(g *Group, _ command.Args) (interface{}, error) {
				return g.info(), nil
			},
		},
		command.Op[*Group]{
			Name: "pull",
			Doc:  "Pull this group to the current screen.",
			Fn: func(g *Group, _ command.Args) (interface{}, error) {
				g.s.show(g.s.current, g)
				return nil, nil
			},
		},
		command.Op[*Group]{
			Name:   "toscreen",
			Params: []string{"index"},
			Doc: `
				Pull this group to the screen with the given index.
				A group shown elsewhere swaps places with the group on that screen.`,
			Fn: func(g *Group, args command.Args) (interface{}, error) {
				i, err := args.Int(0)
				if err != nil {
					return nil, err
				}
				scr, ok := g.s.screen(i)
				if !ok {
					return nil, command.Errorf("No such screen: %d", i)
				}
				g.s.show(scr, g)
				return nil, nil
			},
		},
		command.Op[*Group]{
			Name:   "setlayout",
			Params: []string{"name"},
			Doc:    "Switch to the layout with the given name.",
			Fn: func(g *Group, args command.Args) (interface{}, error) {
				name, err := args.String(0)
				if err != nil {
					return nil, err
				}
				if !g.setLayout(name) {
					return nil, command.Errorf("No such layout: %s", name)
				}
				return nil, nil
			},
		},
		command.Op[*Group]{
			Name: "nextlayout",
			Doc:  "Switch to the next layout.",
			Fn: func(g *Group, _ command.Args) (interface{}, error) {
				g.nextLayout()
				return nil, nil
			},
		},
		command.Op[*Group]{
			Name: "focusnext",
			Doc:  "Focus the next window in the group.",
			Fn: func(g *Group, _ command.Args) (interface{}, error) {
				g.cycle(1)
				return nil, nil
			},
		},
	)
}
