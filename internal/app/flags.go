package app

import (
	"flag"
	"strconv"

	"voxel-ca/internal/camera"
	"voxel-ca/internal/rule"
)

// Config represents the command-line parameters for the sandbox window.
type Config struct {
	Preset string
	Rule   string
	N      int
	Seed   int64
	TPS    int
	Width  int
	Height int
	Mouse  float64
	Speed  float64
	Fast   float64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	s := camera.DefaultSpeeds()
	return &Config{
		Preset: "445",
		N:      50,
		Seed:   42,
		TPS:    4,
		Width:  1280,
		Height: 800,
		Mouse:  0.0003,
		Speed:  s.Normal,
		Fast:   s.Fast,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "named rule preset")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule text S/B/states, overrides -preset")
	fs.IntVar(&c.N, "n", c.N, "grid side length (even, at least 6)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomize")
	fs.IntVar(&c.TPS, "tps", c.TPS, "automaton steps per second while running")
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.Float64Var(&c.Mouse, "mouse", c.Mouse, "mouse sensitivity in radians per pixel")
	fs.Float64Var(&c.Speed, "speed", c.Speed, "camera speed per reference frame")
	fs.Float64Var(&c.Fast, "fast", c.Fast, "camera speed with shift held")
}

// ToMap renders the automaton part of the configuration for a preset
// factory.
func (c *Config) ToMap() map[string]string {
	m := map[string]string{
		"n":    strconv.Itoa(c.N),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
	if c.Rule != "" {
		m["rule"] = c.Rule
	}
	return m
}

// PresetName returns the registered preset to build, falling back to the
// default rule's preset when none is named.
func (c *Config) PresetName() string {
	if c.Preset == "" {
		return "445"
	}
	return c.Preset
}

// Speeds returns the camera speeds configured by -speed and -fast.
func (c *Config) Speeds() camera.Speeds {
	s := camera.DefaultSpeeds()
	if c.Speed > 0 {
		s.Normal = c.Speed
	}
	if c.Fast > 0 {
		s.Fast = c.Fast
	}
	return s
}

// ValidRule reports whether an explicit -rule parses.
func (c *Config) ValidRule() error {
	if c.Rule == "" {
		return nil
	}
	_, err := rule.Parse(c.Rule)
	return err
}
