package session

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
)

// Session is the root of the object graph: every group, screen, window and widget is reachable from it.
// It is not safe for concurrent use, callers go through a command.Dispatcher.
type Session struct {
	groups  []*Group
	screens []*Screen
	current *Screen
	windows map[int]*Window
	lastID  int
	widgets []Widget
	keys    []*Key
	log     *Log

	// keys whose calls are running
	pressing map[string]bool
}

// New builds a session from a validated configuration, showing the first groups on the screens.
func New(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		windows:  make(map[int]*Window),
		log:      NewLog(cfg.LogSize),
		pressing: make(map[string]bool),
	}
	for _, name := range cfg.Groups {
		s.groups = append(s.groups, newGroup(s, name, cfg.Layouts))
	}
	for i, sc := range cfg.Screens {
		scr := newScreen(s, i, sc)
		s.screens = append(s.screens, scr)
		for _, pos := range config.Positions {
			if b, ok := scr.bars[pos]; ok {
				s.widgets = append(s.widgets, b.widgets...)
			}
		}
	}
	s.current = s.screens[0]
	for i, scr := range s.screens {
		s.show(scr, s.groups[i])
	}
	keys, err := bindings(cfg.Keys)
	if err != nil {
		return nil, err
	}
	s.keys = keys
	for _, w := range cfg.Windows {
		if _, err := s.Manage(w.Name, w.Group); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Log is the session log, usually written to by the dispatcher logger.
func (s *Session) Log() *Log {
	return s.log
}

// CurrentScreen is the screen with the focus.
func (s *Session) CurrentScreen() *Screen {
	return s.current
}

// CurrentGroup is the group shown on the current screen.
func (s *Session) CurrentGroup() *Group {
	return s.current.group
}

// CurrentWindow is the focused window of the current group, nil if the group is empty.
func (s *Session) CurrentWindow() *Window {
	return s.CurrentGroup().focus
}

func (s *Session) CurrentLayoutName() string {
	return s.CurrentGroup().Layout().name
}

func (s *Session) CurrentGroupName() string {
	return s.CurrentGroup().name
}

// Group looks a group up by name.
func (s *Session) Group(name string) (*Group, bool) {
	for _, g := range s.groups {
		if g.name == name {
			return g, true
		}
	}
	return nil, false
}

// Window looks a managed window up by id.
func (s *Session) Window(id int) (*Window, bool) {
	w, ok := s.windows[id]
	return w, ok
}

func (s *Session) widget(name string) (Widget, bool) {
	for _, w := range s.widgets {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

// Manage starts managing a new window in the named group, or in the current group if empty.
// The new window takes the focus of its group.
func (s *Session) Manage(name, group string) (*Window, error) {
	g := s.CurrentGroup()
	if group != "" {
		var ok bool
		if g, ok = s.Group(group); !ok {
			return nil, errors.Errorf("no such group %s", group)
		}
	}
	s.lastID++
	w := &Window{s: s, id: s.lastID, name: name}
	s.windows[w.id] = w
	g.add(w)
	return w, nil
}

func (s *Session) unmanage(w *Window) {
	if w.group != nil {
		w.group.remove(w)
	}
	delete(s.windows, w.id)
}

// show puts g on scr. A group already visible on another screen swaps places with the one on scr.
func (s *Session) show(scr *Screen, g *Group) {
	if scr.group == g {
		return
	}
	old := scr.group
	if other := g.screen; other != nil {
		other.group = old
		if old != nil {
			old.screen = other
		}
	} else if old != nil {
		old.screen = nil
	}
	scr.group = g
	g.screen = scr
	g.arrange()
	if old != nil {
		old.arrange()
	}
}

func (s *Session) screen(selector interface{}) (*Screen, bool) {
	if selector == nil {
		return s.current, true
	}
	i, ok := command.ToInt(selector)
	if !ok || i < 0 || i >= len(s.screens) {
		return nil, false
	}
	return s.screens[i], true
}

func (s *Session) Select(category string, selector interface{}) (command.Object, bool) {
	switch category {
	case command.Group:
		if selector == nil {
			return s.CurrentGroup(), true
		}
		name, ok := selector.(string)
		if !ok {
			return nil, false
		}
		if g, ok := s.Group(name); ok {
			return g, true
		}
	case command.Screen:
		if scr, ok := s.screen(selector); ok {
			return scr, true
		}
	case command.Layout:
		return s.CurrentGroup().selectLayout(selector)
	case command.Window:
		return s.selectWindow(s.CurrentGroup(), selector)
	case command.Bar:
		return s.current.selectBar(selector)
	case command.Widget:
		name, ok := selector.(string)
		if !ok {
			return nil, false
		}
		if w, ok := s.widget(name); ok {
			return w, true
		}
	}
	return nil, false
}

// nil is the focused window of g, an id is any managed window
func (s *Session) selectWindow(g *Group, selector interface{}) (command.Object, bool) {
	if selector == nil {
		if g == nil || g.focus == nil {
			return nil, false
		}
		return g.focus, true
	}
	id, ok := command.ToInt(selector)
	if !ok {
		return nil, false
	}
	if w, ok := s.windows[id]; ok {
		return w, true
	}
	return nil, false
}

func (s *Session) Commands() command.Commands {
	return rootOps.Bind(s)
}

func (s *Session) groupsInfo() map[string]interface{} {
	ret := make(map[string]interface{}, len(s.groups))
	for _, g := range s.groups {
		ret[g.name] = g.info()
	}
	return ret
}

func (s *Session) screensInfo() []interface{} {
	ret := make([]interface{}, 0, len(s.screens))
	for _, scr := range s.screens {
		ret = append(ret, scr.info())
	}
	return ret
}

func (s *Session) windowsInfo() []interface{} {
	ids := make([]int, 0, len(s.windows))
	for id := range s.windows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ret := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, s.windows[id].info())
	}
	return ret
}

func (s *Session) widgetNames() []string {
	ret := make([]string, 0, len(s.widgets))
	for _, w := range s.widgets {
		ret = append(ret, w.Name())
	}
	return ret
}

func (s *Session) barInfo() map[string]interface{} {
	ret := make(map[string]interface{}, len(s.current.bars))
	for pos, b := range s.current.bars {
		widgets := make([]interface{}, 0, len(b.widgets))
		for _, w := range b.widgets {
			widgets = append(widgets, w.Info())
		}
		ret[pos] = widgets
	}
	return ret
}

func (s *Session) textBox(name string) (*TextBox, error) {
	w, ok := s.widget(name)
	if tb, isText := w.(*TextBox); ok && isText {
		return tb, nil
	}
	return nil, command.Errorf("No such widget: %s", name)
}

var rootOps *command.Table[*Session]

func init() {
	rootOps = command.NewTable(
		command.Op[*Session]{
			Name: "groups",
			Doc:  "Return a dictionary containing information for all groups.",
			Fn: func(s *Session, _ command.Args) (interface{}, error) {
				return s.groupsInfo(), nil
			},
		},
		command.Op[*Session]{
			Name: "screens",
			Doc:  "Return a list of dictionaries providing information on all screens.",
			Fn: func(s *Session, _ command.Args) (interface{}, error) {
				return s.screensInfo(), nil
			},
		},
		command.Op[*Session]{
			Name: "windows",
			Doc:  "Return info for each managed window.",
			Fn: func(s *Session, _ command.Args) (interface{}, error) {
				return s.windowsInfo(), nil
			},
		},
		command.Op[*Session]{
			Name: "list_widgets",
			Doc:  "List of all addressable widget names.",
			Fn: func(s *Session, _ command.Args) (interface{}, error) {
				return s.widgetNames(), nil
			},
		},
		command.Op[*Session]{
			Name: "barinfo",
			Doc:  "Widget information for every bar of the current screen, by position.",
			Fn: func(s *Session, _ command.Args) (interface{}, error) {
				return s.barInfo(), nil
			},
		},
		command.Op[*Session]{
			Name:   "pullgroup",
			Params: []string{"name"},
			Doc:    "Pull a group to the current screen.",
			Fn: func(s *Session, args command.Args) (interface{}, error) {
				name, err := args.String(0)
				if err != nil {
					return nil, err
				}
				g, ok := s.Group(name)
				if !ok {
					return nil, command.Errorf("No such group: %s", name)
				}
				s.show(s.current, g)
				return nil, nil
			},
		},
		command.Op[*Session]{
			Name:   "to_screen",
			Params: []string{"index"},
			Doc:    "Warp focus to screen index.",
			Fn: func(s *Session, args command.Args) (interface{}, error) {
				i, err := args.Int(0)
				if err != nil {
					return nil, err
				}
				scr, ok := s.screen(i)
				if !ok {
					return nil, command.Errorf("No such screen: %d", i)
				}
				s.current = scr
				return nil, nil
			},
		},
		command.Op[*Session]{
			Name: "nextlayout",
			Doc:  "Switch the current group to its next layout.",
			Fn: func(s *Session, _ command.Args) (interface{}, error) {
				s.CurrentGroup().nextLayout()
				return nil, nil
			},
		},
		command.Op[*Session]{
			Name:   "textbox_update",
			Params: []string{"name", "text"},
			Doc:    "Update the text of a TextBox widget.",
			Fn: func(s *Session, args command.Args) (interface{}, error) {
				name, err := args.String(0)
				if err != nil {
					return nil, err
				}
				text, err := args.String(1)
				if err != nil {
					return nil, err
				}
				tb, err := s.textBox(name)
				if err != nil {
					return nil, err
				}
				tb.text = text
				return nil, nil
			},
		},
		command.Op[*Session]{
			Name:   "textbox_get",
			Params: []string{"name"},
			Doc:    "Retrieve the text of a TextBox widget.",
			Fn: func(s *Session, args command.Args) (interface{}, error) {
				name, err := args.String(0)
				if err != nil {
					return nil, err
				}
				tb, err := s.textBox(name)
				if err != nil {
					return nil, err
				}
				return tb.text, nil
			},
		},
		command.Op[*Session]{
			Name:   "log",
			Params: []string{"n=20"},
			Doc: `
				Return the last n lines of the session log.
				The log holds every dispatched command.`,
			Fn: func(s *Session, args command.Args) (interface{}, error) {
				n, err := args.IntOr(0, 20)
				if err != nil {
					return nil, err
				}
				return s.log.Tail(n, ""), nil
			},
		},
		command.Op[*Session]{
			Name: "status",
			Doc:  "Return OK if the session is running.",
			Fn: func(s *Session, _ command.Args) (interface{}, error) {
				return "OK", nil
			},
		},
		command.Op[*Session]{
			Name:   "simulate_keypress",
			Params: []string{"modifiers", "key"},
			Doc: `
				Simulates a keypress on the focused window.
				Every call bound to the key whose conditions hold is run, in order.`,
			Fn: func(s *Session, args command.Args) (interface{}, error) {
				mods, err := args.Strings(0)
				if err != nil {
					return nil, err
				}
				key, err := args.String(1)
				if err != nil {
					return nil, err
				}
				return nil, s.PressKey(mods, key)
			},
		},
	)
}
