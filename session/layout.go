package session

import (
	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
)

// Layout arranges the windows of its group in the area of the screen the group is shown on.
//
// `max` shows only the focused window, taking the whole area.
// `stack` splits the area into rows, one per window.
type Layout struct {
	group *Group
	name  string
	index int
}

func (l *Layout) Name() string {
	return l.name
}

// hidden windows are skipped
func (l *Layout) arrange(x, y, width, height int) {
	var visible []*Window
	for _, w := range l.group.windows {
		w.mapped = false
		if !w.hidden {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		return
	}
	switch l.name {
	case config.LayoutMax:
		target := visible[0]
		if f := l.group.focus; f != nil && !f.hidden {
			target = f
		}
		target.configure(x, y, width, height)
	case config.LayoutStack:
		row := height / len(visible)
		for i, w := range visible {
			h := row
			if i == len(visible)-1 {
				h = height - row*i
			}
			w.configure(x, y+row*i, width, h)
		}
	}
}

func (l *Layout) info() map[string]interface{} {
	return map[string]interface{}{
		"name":    l.name,
		"group":   l.group.name,
		"index":   l.index,
		"current": l.group.Layout() == l,
	}
}

func (l *Layout) Select(category string, selector interface{}) (command.Object, bool) {
	g := l.group
	switch category {
	case command.Group:
		if selector == nil {
			return g, true
		}
	case command.Window:
		return g.Select(command.Window, selector)
	case command.Screen:
		return g.Select(command.Screen, selector)
	}
	return nil, false
}

func (l *Layout) Commands() command.Commands {
	return layoutOps.Bind(l)
}

var layoutOps *command.Table[*Layout]

func init() {
	layoutOps = command.NewTable(
		command.Op[*Layout]{
			Name: "info",
			Doc:  "Returns a dictionary of info for this layout.",
			Fn: func(l *Layout, _ command.Args) (interface{}, error) {
				return l.info(), nil
			},
		},
		command.Op[*Layout]{
			Name: "next",
			Doc:  "Focus the next window.",
			Fn: func(l *Layout, _ command.Args) (interface{}, error) {
				l.group.cycle(1)
				return nil, nil
			},
		},
		command.Op[*Layout]{
			Name: "previous",
			Doc:  "Focus the previous window.",
			Fn: func(l *Layout, _ command.Args) (interface{}, error) {
				l.group.cycle(-1)
				return nil, nil
			},
		},
	)
}
