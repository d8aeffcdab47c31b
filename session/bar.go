package session

import (
	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
)

// Bar is a strip on one edge of a screen holding widgets. A bar without widgets is just a gap.
type Bar struct {
	screen   *Screen
	position string
	size     int
	widgets  []Widget
}

func newBar(scr *Screen, pos string, cfg config.BarConfig) *Bar {
	b := &Bar{screen: scr, position: pos, size: cfg.Size}
	for _, wc := range cfg.Widgets {
		b.widgets = append(b.widgets, newWidget(b, wc))
	}
	return b
}

func (b *Bar) Position() string {
	return b.position
}

func (b *Bar) horizontal() bool {
	return b.position == config.Top || b.position == config.Bottom
}

// geometry is [x, y, width, height]
func (b *Bar) geometry() []int {
	scr := b.screen
	top, bottom := scr.barSize(config.Top), scr.barSize(config.Bottom)
	switch b.position {
	case config.Top:
		return []int{scr.x, scr.y, scr.width, b.size}
	case config.Bottom:
		return []int{scr.x, scr.y + scr.height - b.size, scr.width, b.size}
	case config.Left:
		return []int{scr.x, scr.y + top, b.size, scr.height - top - bottom}
	default:
		return []int{scr.x + scr.width - b.size, scr.y + top, b.size, scr.height - top - bottom}
	}
}

func (b *Bar) length() int {
	g := b.geometry()
	if b.horizontal() {
		return g[2]
	}
	return g[3]
}

// offsets and widths of every widget, widgets without a width share what is left
func (b *Bar) place() (offsets, widths []int) {
	fixed, stretch := 0, 0
	for _, w := range b.widgets {
		if w.width() > 0 {
			fixed += w.width()
		} else {
			stretch++
		}
	}
	share := 0
	if stretch > 0 && b.length() > fixed {
		share = (b.length() - fixed) / stretch
	}
	offset := 0
	for _, w := range b.widgets {
		width := w.width()
		if width <= 0 {
			width = share
		}
		offsets = append(offsets, offset)
		widths = append(widths, width)
		offset += width
	}
	return offsets, widths
}

func (b *Bar) info() map[string]interface{} {
	g := b.geometry()
	names := make([]string, 0, len(b.widgets))
	for _, w := range b.widgets {
		names = append(names, w.Name())
	}
	return map[string]interface{}{
		"position": b.position,
		"size":     b.size,
		"x":        g[0],
		"y":        g[1],
		"width":    g[2],
		"height":   g[3],
		"widgets":  names,
	}
}

func (b *Bar) Select(category string, selector interface{}) (command.Object, bool) {
	switch category {
	case command.Screen:
		if selector == nil {
			return b.screen, true
		}
	case command.Group:
		if selector == nil && b.screen.group != nil {
			return b.screen.group, true
		}
	case command.Widget:
		name, ok := selector.(string)
		if !ok {
			return nil, false
		}
		for _, w := range b.widgets {
			if w.Name() == name {
				return w, true
			}
		}
	}
	return nil, false
}

func (b *Bar) Commands() command.Commands {
	return barOps.Bind(b)
}

var barOps *command.Table[*Bar]

func init() {
	barOps = command.NewTable(
		command.Op[*Bar]{
			Name: "info",
			Doc:  "Info for this object.",
			Fn: func(b *Bar, _ command.Args) (interface{}, error) {
				return b.info(), nil
			},
		},
	)
}
