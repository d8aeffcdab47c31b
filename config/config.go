package config

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDisplay is used when $DISPLAY is not set.
	DefaultDisplay = ":0.0"
	// SocketBase is the socket file name in the home directory, formatted with the display.
	SocketBase = ".tilewmsocket.%s"
)

// Config describes a session: groups, layouts, screens with their bars and widgets, and key bindings.
// Environment variables override the file where tagged.
type Config struct {
	Display string `yaml:"display" env:"DISPLAY"`
	Socket  string `yaml:"socket" env:"TILEWM_SOCKET"`
	LogSize int    `yaml:"log_size" env:"TILEWM_LOG_SIZE"`

	Groups  []string       `yaml:"groups"`
	Layouts []string       `yaml:"layouts"`
	Screens []ScreenConfig `yaml:"screens"`
	Keys    []KeyConfig    `yaml:"keys"`
	// windows to manage at startup, mostly useful for demos and tests
	Windows []WindowConfig `yaml:"windows"`
}

type ScreenConfig struct {
	X      int                  `yaml:"x"`
	Y      int                  `yaml:"y"`
	Width  int                  `yaml:"width"`
	Height int                  `yaml:"height"`
	Bars   map[string]BarConfig `yaml:"bars"`
}

// BarConfig is a bar, or a plain gap when it has no widgets.
type BarConfig struct {
	Size    int            `yaml:"size"`
	Widgets []WidgetConfig `yaml:"widgets"`
}

type WidgetConfig struct {
	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	Text  string `yaml:"text"`
	Width int    `yaml:"width"`
}

// KeyConfig binds a key to a command expression, eg. `layout.next` or `group[b].pull`.
type KeyConfig struct {
	Modifiers  []string      `yaml:"modifiers"`
	Key        string        `yaml:"key"`
	Command    string        `yaml:"command"`
	Args       []interface{} `yaml:"args"`
	WhenLayout string        `yaml:"when_layout"`
	WhenGroup  string        `yaml:"when_group"`
}

type WindowConfig struct {
	Name  string `yaml:"name"`
	Group string `yaml:"group"`
}

// Env is read from the environment before anything else, it locates the config file.
type Env struct {
	ConfigPath string `env:"TILEWM_CONFIG"`
}

func FromEnv() (Env, error) {
	var e Env
	err := env.Parse(&e)
	return e, errors.Wrap(err, "reading environment")
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Display: DefaultDisplay,
		LogSize: 1000,
		Groups:  []string{"a", "b", "c", "d"},
		Layouts: []string{LayoutStack, LayoutMax},
		Screens: []ScreenConfig{
			{
				Width:  800,
				Height: 600,
				Bars: map[string]BarConfig{
					Bottom: {
						Size: 20,
						Widgets: []WidgetConfig{
							{Type: WidgetGroupBox},
							{Type: WidgetWindowName},
							{Type: WidgetTextBox, Name: "text", Text: "default", Width: 100},
						},
					},
				},
			},
		},
		Keys: []KeyConfig{
			{Modifiers: []string{"mod4"}, Key: "k", Command: "layout.previous"},
			{Modifiers: []string{"mod4"}, Key: "j", Command: "layout.next"},
			{Modifiers: []string{"mod4"}, Key: "space", Command: "nextlayout"},
		},
	}
}

// Load reads a YAML config file, an empty path meaning the defaults, then applies environment overrides
// and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := ioutil.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config")
		}
		cfg, err = Parse(raw)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", path)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "reading environment")
	}
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

// Parse decodes YAML, rejecting unknown fields. Missing top level fields keep their zero value.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.WithStack(err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Display == "" {
		c.Display = d.Display
	}
	if c.LogSize <= 0 {
		c.LogSize = d.LogSize
	}
	if len(c.Groups) == 0 {
		c.Groups = d.Groups
	}
	if len(c.Layouts) == 0 {
		c.Layouts = d.Layouts
	}
	if len(c.Screens) == 0 {
		c.Screens = []ScreenConfig{{Width: 800, Height: 600}}
	}
}

// SocketPath is where the session listens: $TILEWM_SOCKET if set, otherwise a per display file in the home
// directory.
func (c Config) SocketPath() (string, error) {
	if c.Socket != "" {
		return c.Socket, nil
	}
	return SocketPath(c.Display)
}

// SocketPath derives the socket path of the session running on display.
func SocketPath(display string) (string, error) {
	if display == "" {
		display = DefaultDisplay
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locating home directory")
	}
	return filepath.Join(home, fmtSocketBase(display)), nil
}
