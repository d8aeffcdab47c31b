package session

import (
	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
)

// Widget is an addressable item on a bar. Names are unique across the session.
type Widget interface {
	command.Object
	Name() string
	Info() map[string]interface{}
	width() int
}

func newWidget(b *Bar, cfg config.WidgetConfig) Widget {
	base := widget{bar: b, name: cfg.WidgetName(), kind: cfg.Type, size: cfg.Width}
	switch cfg.Type {
	case config.WidgetTextBox:
		return &TextBox{widget: base, text: cfg.Text}
	case config.WidgetWindowName:
		return &WindowName{widget: base}
	default:
		return &GroupBox{widget: base}
	}
}

type widget struct {
	bar  *Bar
	name string
	kind string
	// zero stretches
	size int
}

func (w *widget) Name() string {
	return w.name
}

func (w *widget) width() int {
	return w.size
}

func (w *widget) info() map[string]interface{} {
	offsets, widths := w.bar.place()
	ret := map[string]interface{}{
		"name": w.name,
		"type": w.kind,
	}
	for i, other := range w.bar.widgets {
		if other.Name() == w.name {
			ret["offset"] = offsets[i]
			ret["width"] = widths[i]
		}
	}
	return ret
}

func (w *widget) Select(category string, selector interface{}) (command.Object, bool) {
	if selector != nil {
		return nil, false
	}
	switch category {
	case command.Bar:
		return w.bar, true
	case command.Screen:
		return w.bar.screen, true
	case command.Group:
		if g := w.bar.screen.group; g != nil {
			return g, true
		}
	}
	return nil, false
}

// TextBox shows a text that can be updated remotely.
type TextBox struct {
	widget
	text string
}

func (tb *TextBox) Text() string {
	return tb.text
}

func (tb *TextBox) Info() map[string]interface{} {
	ret := tb.info()
	ret["text"] = tb.text
	return ret
}

func (tb *TextBox) Commands() command.Commands {
	return textBoxOps.Bind(tb)
}

// WindowName shows the name of the focused window of the group on its screen.
type WindowName struct {
	widget
}

func (wn *WindowName) text() string {
	if g := wn.bar.screen.group; g != nil && g.focus != nil {
		return g.focus.name
	}
	return " "
}

func (wn *WindowName) Info() map[string]interface{} {
	ret := wn.info()
	ret["text"] = wn.text()
	return ret
}

func (wn *WindowName) Commands() command.Commands {
	return windowNameOps.Bind(wn)
}

// GroupBox lists the groups, the one shown on its screen between brackets.
type GroupBox struct {
	widget
}

func (gb *GroupBox) labels() []string {
	ret := make([]string, 0, len(gb.bar.screen.s.groups))
	for _, g := range gb.bar.screen.s.groups {
		if g.screen == gb.bar.screen {
			ret = append(ret, "["+g.name+"]")
		} else {
			ret = append(ret, g.name)
		}
	}
	return ret
}

func (gb *GroupBox) Info() map[string]interface{} {
	ret := gb.info()
	ret["groups"] = gb.labels()
	return ret
}

func (gb *GroupBox) Commands() command.Commands {
	return groupBoxOps.Bind(gb)
}

var (
	textBoxOps    *command.Table[*TextBox]
	windowNameOps *command.Table[*WindowName]
	groupBoxOps   *command.Table[*GroupBox]
)

func init() {
	textBoxOps = command.NewTable(
		command.Op[*TextBox]{
			Name: "info",
			Doc:  "Info for this object.",
			Fn: func(tb *TextBox, _ command.Args) (interface{}, error) {
				return tb.Info(), nil
			},
		},
		command.Op[*TextBox]{
			Name:   "update",
			Params: []string{"text"},
			Doc:    "Update the text in a TextBox widget.",
			Fn: func(tb *TextBox, args command.Args) (interface{}, error) {
				text, err := args.String(0)
				if err != nil {
					return nil, err
				}
				tb.text = text
				return nil, nil
			},
		},
		command.Op[*TextBox]{
			Name: "get",
			Doc:  "Retrieve the text in a TextBox widget.",
			Fn: func(tb *TextBox, _ command.Args) (interface{}, error) {
				return tb.text, nil
			},
		},
	)
	windowNameOps = command.NewTable(
		command.Op[*WindowName]{
			Name: "info",
			Doc:  "Info for this object.",
			Fn: func(wn *WindowName, _ command.Args) (interface{}, error) {
				return wn.Info(), nil
			},
		},
		command.Op[*WindowName]{
			Name: "get",
			Doc:  "Retrieve the text in a WindowName widget.",
			Fn: func(wn *WindowName, _ command.Args) (interface{}, error) {
				return wn.text(), nil
			},
		},
	)
	groupBoxOps = command.NewTable(
		command.Op[*GroupBox]{
			Name: "info",
			Doc:  "Info for this object.",
			Fn: func(gb *GroupBox, _ command.Args) (interface{}, error) {
				return gb.Info(), nil
			},
		},
		command.Op[*GroupBox]{
			Name: "get",
			Doc:  "Group names, the one on this screen between brackets.",
			Fn: func(gb *GroupBox, _ command.Args) (interface{}, error) {
				return gb.labels(), nil
			},
		},
	)
}
