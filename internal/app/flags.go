package app

import (
	"github.com/spf13/pflag"
)

// Config represents the command-line parameters of the viewer.
type Config struct {
	Automaton string
	Template  string
	Scale     int
	Rate      int
	HUDWidth  int
	Watch     bool
	Overrides map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Automaton: "diamond", Scale: 12, Rate: 8, HUDWidth: 240, Overrides: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Automaton, "automaton", c.Automaton, "registered automaton to open")
	fs.StringVar(&c.Template, "template", c.Template, "template file to open instead of a registered automaton")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generations per second while playing")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the side panel in pixels, 0 hides it")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload the rules whenever the template file changes")
	fs.StringToStringVar(&c.Overrides, "set", c.Overrides, "template overrides such as rows=64,cols=64,random=true")
}
