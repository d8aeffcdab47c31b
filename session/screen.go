package session

import (
	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
)

// Screen is a physical output. Bars take space on its edges, the rest is for the group shown on it.
type Screen struct {
	s                   *Session
	index               int
	x, y, width, height int
	bars                map[string]*Bar
	group               *Group
}

func newScreen(s *Session, index int, cfg config.ScreenConfig) *Screen {
	scr := &Screen{
		s:      s,
		index:  index,
		x:      cfg.X,
		y:      cfg.Y,
		width:  cfg.Width,
		height: cfg.Height,
		bars:   make(map[string]*Bar),
	}
	for pos, bc := range cfg.Bars {
		scr.bars[pos] = newBar(scr, pos, bc)
	}
	return scr
}

func (scr *Screen) Index() int {
	return scr.index
}

// Group is the group shown on this screen.
func (scr *Screen) Group() *Group {
	return scr.group
}

func (scr *Screen) barSize(pos string) int {
	if b, ok := scr.bars[pos]; ok {
		return b.size
	}
	return 0
}

// area is what is left for windows
func (scr *Screen) area() (x, y, width, height int) {
	top, bottom := scr.barSize(config.Top), scr.barSize(config.Bottom)
	left, right := scr.barSize(config.Left), scr.barSize(config.Right)
	return scr.x + left, scr.y + top, scr.width - left - right, scr.height - top - bottom
}

func (scr *Screen) cycle(step int) {
	groups := scr.s.groups
	n := len(groups)
	i := 0
	for j, g := range groups {
		if g == scr.group {
			i = j
		}
	}
	scr.s.show(scr, groups[((i+step)%n+n)%n])
}

func (scr *Screen) info() map[string]interface{} {
	x, y, w, h := scr.area()
	gaps := make(map[string]interface{}, len(scr.bars))
	for pos, b := range scr.bars {
		gaps[pos] = b.geometry()
	}
	var group interface{}
	if scr.group != nil {
		group = scr.group.name
	}
	return map[string]interface{}{
		"index":  scr.index,
		"x":      scr.x,
		"y":      scr.y,
		"width":  scr.width,
		"height": scr.height,
		"area":   []int{x, y, w, h},
		"gaps":   gaps,
		"group":  group,
	}
}

func (scr *Screen) selectBar(selector interface{}) (command.Object, bool) {
	pos, ok := selector.(string)
	if !ok {
		return nil, false
	}
	if b, ok := scr.bars[pos]; ok {
		return b, true
	}
	return nil, false
}

func (scr *Screen) Select(category string, selector interface{}) (command.Object, bool) {
	switch category {
	case command.Bar:
		return scr.selectBar(selector)
	case command.Layout, command.Window:
		if scr.group == nil {
			return nil, false
		}
		return scr.group.Select(category, selector)
	}
	return nil, false
}

func (scr *Screen) Commands() command.Commands {
	return screenOps.Bind(scr)
}

var screenOps *command.Table[*Screen]

func init() {
	screenOps = command.NewTable(
		command.Op[*Screen]{
			Name: "info",
			Doc:  "Returns a dictionary of info for this screen.",
			Fn: func(scr *Screen, _ command.Args) (interface{}, error) {
				return scr.info(), nil
			},
		},
		command.Op[*Screen]{
			Name: "nextgroup",
			Doc:  "Switch to the next group.",
			Fn: func(scr *Screen, _ command.Args) (interface{}, error) {
				scr.cycle(1)
				return nil, nil
			},
		},
		command.Op[*Screen]{
			Name: "prevgroup",
			Doc:  "Switch to the previous group.",
			Fn: func(scr *Screen, _ command.Args) (interface{}, error) {
				scr.cycle(-1)
				return nil, nil
			},
		},
	)
}
