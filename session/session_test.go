package session

import (
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
)

func newSession(t *testing.T, mutate ...func(c *config.Config)) (*Session, command.Tree[interface{}]) {
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	d := command.NewDispatcher(s, log.New(s.Log(), "", 0))
	return s, d.Root()
}

func call(t *testing.T, root command.Tree[interface{}], expr string, args ...interface{}) interface{} {
	ret, err := command.Build(root, expr).Call(args...)
	require.NoError(t, err, expr)
	return ret
}

func callErr(root command.Tree[interface{}], expr string, args ...interface{}) error {
	_, err := command.Build(root, expr).Call(args...)
	return err
}

func TestNewRejectsEmptyConfig(t *testing.T) {
	for _, mutate := range []func(c *config.Config){
		func(c *config.Config) { c.Screens = nil },
		func(c *config.Config) { c.Layouts = nil },
		func(c *config.Config) { c.Groups = nil },
	} {
		cfg := config.Default()
		mutate(&cfg)
		_, err := New(cfg)
		assert.Error(t, err)
	}
}

func TestGroups(t *testing.T) {
	_, root := newSession(t)
	groups := call(t, root, "groups").(map[string]interface{})
	assert.Len(t, groups, 4)
	for _, name := range []string{"a", "b", "c", "d"} {
		assert.Contains(t, groups, name)
	}
	a := groups["a"].(map[string]interface{})
	assert.Equal(t, 0, a["screen"])
	assert.Equal(t, config.LayoutStack, a["layout"])
	assert.Nil(t, groups["b"].(map[string]interface{})["screen"])
}

func TestPullGroup(t *testing.T) {
	s, root := newSession(t)
	call(t, root, "pullgroup", "b")
	assert.Equal(t, "b", s.CurrentGroupName())

	call(t, root, "group[c].pull")
	assert.Equal(t, "c", s.CurrentGroupName())
	groups := call(t, root, "groups").(map[string]interface{})
	assert.Nil(t, groups["b"].(map[string]interface{})["screen"])

	assert.Equal(t, &command.CommandError{Msg: "No such group: z"}, callErr(root, "pullgroup", "z"))
}

func TestToScreenSwapsGroups(t *testing.T) {
	s, root := newSession(t, func(c *config.Config) {
		c.Screens = append(c.Screens, config.ScreenConfig{X: 800, Width: 640, Height: 480})
	})
	assert.Equal(t, "b", s.screens[1].group.name)

	call(t, root, "group[b].toscreen", 0)
	assert.Equal(t, "b", s.screens[0].group.name)
	assert.Equal(t, "a", s.screens[1].group.name)

	call(t, root, "to_screen", 1)
	assert.Equal(t, "a", s.CurrentGroupName())
	assert.Equal(t, &command.CommandError{Msg: "No such screen: 5"}, callErr(root, "to_screen", 5))

	call(t, root, "screen[0].nextgroup")
	assert.Equal(t, "c", s.screens[0].group.name)
	call(t, root, "screen[0].prevgroup")
	call(t, root, "screen[0].prevgroup")
	// a is on screen 1, they swap
	assert.Equal(t, "a", s.screens[0].group.name)
	assert.Equal(t, "b", s.screens[1].group.name)
}

func TestScreenInfo(t *testing.T) {
	_, root := newSession(t)
	info := call(t, root, "screen.info").(map[string]interface{})
	assert.Equal(t, 0, info["index"])
	assert.Equal(t, []int{0, 0, 800, 580}, info["area"])
	assert.Equal(t, map[string]interface{}{config.Bottom: []int{0, 580, 800, 20}}, info["gaps"])
	assert.Equal(t, "a", info["group"])
}

func TestBarGeometry(t *testing.T) {
	_, root := newSession(t, func(c *config.Config) {
		c.Screens[0].Bars = map[string]config.BarConfig{
			config.Top:    {Size: 10},
			config.Bottom: {Size: 10},
			config.Left:   {Size: 10},
			config.Right:  {Size: 10},
		}
	})
	for _, test := range []struct {
		pos  string
		geom []int
	}{
		{config.Top, []int{0, 0, 800, 10}},
		{config.Bottom, []int{0, 590, 800, 10}},
		{config.Left, []int{0, 10, 10, 580}},
		{config.Right, []int{790, 10, 10, 580}},
	} {
		info := call(t, root, "bar["+test.pos+"].info").(map[string]interface{})
		assert.Equal(t, test.geom, []int{info["x"].(int), info["y"].(int), info["width"].(int), info["height"].(int)}, test.pos)
	}
	info := call(t, root, "screen.info").(map[string]interface{})
	assert.Equal(t, []int{10, 10, 780, 580}, info["area"])
}

func TestTextBox(t *testing.T) {
	_, root := newSession(t)
	assert.Equal(t, "default", call(t, root, "textbox_get", "text"))

	call(t, root, "textbox_update", "text", "testing")
	assert.Equal(t, "testing", call(t, root, "textbox_get", "text"))
	assert.Equal(t, "testing", call(t, root, "widget[text].get"))

	call(t, root, "bar[bottom].widget[text].update", "again")
	assert.Equal(t, "again", call(t, root, "textbox_get", "text"))

	for _, name := range []string{"unknown", "windowname"} {
		err := callErr(root, "textbox_get", name)
		assert.Equal(t, &command.CommandError{Msg: "No such widget: " + name}, err)
		err = callErr(root, "textbox_update", name, "x")
		assert.Equal(t, &command.CommandError{Msg: "No such widget: " + name}, err)
	}
}

func TestWidgets(t *testing.T) {
	s, root := newSession(t)
	assert.Equal(t, []string{"groupbox", "windowname", "text"}, call(t, root, "list_widgets"))

	assert.Equal(t, " ", call(t, root, "widget[windowname].get"))
	_, err := s.Manage("one", "")
	require.NoError(t, err)
	assert.Equal(t, "one", call(t, root, "widget[windowname].get"))

	assert.Equal(t, []string{"[a]", "b", "c", "d"}, call(t, root, "widget[groupbox].get"))
	call(t, root, "pullgroup", "c")
	assert.Equal(t, []string{"a", "b", "[c]", "d"}, call(t, root, "widget[groupbox].get"))
	assert.Equal(t, " ", call(t, root, "widget[windowname].get"))

	bars := call(t, root, "barinfo").(map[string]interface{})
	widgets := bars[config.Bottom].([]interface{})
	require.Len(t, widgets, 3)
	text := widgets[2].(map[string]interface{})
	assert.Equal(t, "text", text["name"])
	assert.Equal(t, 100, text["width"])
	assert.Equal(t, 700, text["offset"])
	// the others stretch
	assert.Equal(t, 350, widgets[1].(map[string]interface{})["offset"])

	// widgets resolve their bar, screen and group
	assert.Equal(t, config.Bottom, call(t, root, "widget[text].bar.info").(map[string]interface{})["position"])
	assert.Equal(t, "c", call(t, root, "widget[text].group.info").(map[string]interface{})["name"])
}

func TestStackAndMaxLayouts(t *testing.T) {
	s, root := newSession(t)
	one, err := s.Manage("one", "a")
	require.NoError(t, err)
	two, err := s.Manage("two", "a")
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 800, 290}, []int{one.x, one.y, one.width, one.height})
	assert.Equal(t, []int{0, 290, 800, 290}, []int{two.x, two.y, two.width, two.height})

	call(t, root, "nextlayout")
	assert.Equal(t, config.LayoutMax, s.CurrentLayoutName())
	assert.True(t, two.mapped)
	assert.False(t, one.mapped)
	assert.Equal(t, []int{0, 0, 800, 580}, []int{two.x, two.y, two.width, two.height})

	call(t, root, "layout.next")
	assert.True(t, one.mapped)
	assert.False(t, two.mapped)
	call(t, root, "layout.previous")
	assert.Equal(t, two, s.CurrentWindow())

	call(t, root, "group.setlayout", config.LayoutStack)
	assert.True(t, one.mapped && two.mapped)
	assert.Equal(t, &command.CommandError{Msg: "No such layout: tile"}, callErr(root, "group.setlayout", "tile"))

	info := call(t, root, "layout[1].info").(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"name": config.LayoutMax, "group": "a", "index": 1, "current": false}, info)
}

func TestHiddenGroupsAreUnmapped(t *testing.T) {
	s, root := newSession(t)
	w, err := s.Manage("w", "a")
	require.NoError(t, err)
	assert.True(t, w.mapped)
	call(t, root, "pullgroup", "b")
	assert.False(t, w.mapped)
}

func TestWindowOperations(t *testing.T) {
	s, root := newSession(t)
	one, _ := s.Manage("one", "a")
	two, _ := s.Manage("two", "a")
	three, _ := s.Manage("three", "b")

	info := call(t, root, "window.info").(map[string]interface{})
	assert.Equal(t, two.id, info["id"])

	call(t, root, "window[1].focus")
	assert.Equal(t, one, s.CurrentWindow())

	call(t, root, "window[1].hide")
	assert.False(t, one.mapped)
	assert.Equal(t, []int{0, 0, 800, 580}, []int{two.x, two.y, two.width, two.height})
	call(t, root, "window[1].unhide")
	assert.True(t, one.mapped)

	call(t, root, "window[2].place", 10, 20, 300, 200)
	assert.Equal(t, []int{10, 20, 300, 200}, []int{two.x, two.y, two.width, two.height})
	assert.Error(t, callErr(root, "window[2].place", 10, 20, 0, 200))

	// a window in another group is addressable by id from the root, not from a different group
	assert.Equal(t, "three", call(t, root, "window[3].info").(map[string]interface{})["name"])
	assert.Equal(t, &command.CommandError{Msg: command.NoSuchObject}, callErr(root, "group[a].window[3].info"))
	assert.Equal(t, "b", call(t, root, "window[3].group.info").(map[string]interface{})["name"])
	// b isn't shown anywhere
	assert.Equal(t, &command.CommandError{Msg: command.NoSuchObject}, callErr(root, "window[3].screen.info"))

	call(t, root, "window[3].togroup", "a")
	assert.Equal(t, s.groups[0], three.group)
	assert.Equal(t, three, s.CurrentWindow())
	assert.Equal(t, &command.CommandError{Msg: "No such group: z"}, callErr(root, "window[3].togroup", "z"))

	call(t, root, "window.kill")
	_, ok := s.Window(three.id)
	assert.False(t, ok)
	assert.Nil(t, three.group)
	assert.Equal(t, one, s.CurrentWindow())
	assert.Len(t, call(t, root, "windows"), 2)
	assert.Equal(t, &command.CommandError{Msg: command.NoSuchObject}, callErr(root, "window[3].info"))
}

func TestFocusNext(t *testing.T) {
	s, root := newSession(t)
	one, _ := s.Manage("one", "")
	two, _ := s.Manage("two", "")
	call(t, root, "group.focusnext")
	assert.Equal(t, one, s.CurrentWindow())
	call(t, root, "group.focusnext")
	assert.Equal(t, two, s.CurrentWindow())
}

func TestSelectionRules(t *testing.T) {
	s, _ := newSession(t)
	for _, test := range []struct {
		path command.Path
		ok   bool
	}{
		{command.Path{{Category: command.Window, Selector: nil}}, false},
		{command.Path{{Category: command.Bar, Selector: nil}}, false},
		{command.Path{{Category: command.Bar, Selector: "top"}}, false},
		{command.Path{{Category: command.Bar, Selector: "bottom"}}, true},
		{command.Path{{Category: command.Widget, Selector: nil}}, false},
		{command.Path{{Category: command.Widget, Selector: "text"}}, true},
		{command.Path{{Category: command.Screen, Selector: 0}, {Category: command.Bar, Selector: "bottom"}, {Category: command.Widget, Selector: "text"}}, true},
		{command.Path{{Category: command.Screen, Selector: 1}}, false},
		{command.Path{{Category: command.Screen, Selector: 0.0}}, true},
		{command.Path{{Category: command.Group, Selector: "b"}, {Category: command.Screen, Selector: nil}}, false},
		{command.Path{{Category: command.Group, Selector: "a"}, {Category: command.Screen, Selector: nil}}, true},
		{command.Path{{Category: command.Group, Selector: "a"}, {Category: command.Layout, Selector: 1}}, true},
		{command.Path{{Category: command.Group, Selector: "a"}, {Category: command.Layout, Selector: 2}}, false},
		{command.Path{{Category: command.Layout, Selector: nil}, {Category: command.Group, Selector: nil}, {Category: command.Screen, Selector: nil}, {Category: command.Bar, Selector: "bottom"}}, true},
		{command.Path{{Category: command.Group, Selector: 1}}, false},
	} {
		_, ok := command.Resolve(s, test.path)
		assert.Equal(t, test.ok, ok, test.path.String())
	}
}

func TestIntrospection(t *testing.T) {
	s, root := newSession(t)
	_, err := s.Manage("one", "")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"info", "pull", "toscreen", "setlayout", "nextlayout", "focusnext", "commands", "doc"},
		call(t, root, "group[b].commands"))
	assert.Equal(t, "toscreen(index)\n\tPull this group to the screen with the given index.\n\tA group shown elsewhere swaps places with the group on that screen.",
		call(t, root, "group.doc", "toscreen"))
	assert.Equal(t, "unhide()\n\tShow this window again after hide.", call(t, root, "window[1].doc", "unhide"))
	assert.Equal(t, []string{"info", "update", "get", "commands", "doc"}, call(t, root, "widget[text].commands"))
	assert.Equal(t, []string{"info", "get", "commands", "doc"}, call(t, root, "widget[windowname].commands"))
}

func TestLogCommand(t *testing.T) {
	_, root := newSession(t)
	call(t, root, "status")
	call(t, root, "pullgroup", "b")
	lines := call(t, root, "log", 2).([]string)
	assert.Equal(t, []string{"Command: pullgroup([b], map[])", "Command: log([2], map[])"}, lines)
	assert.Len(t, call(t, root, "log"), 4)
}
