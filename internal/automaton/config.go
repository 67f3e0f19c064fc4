package automaton

import (
	"strconv"

	"voxel-ca/internal/rule"
)

// Config controls the grid dimensions, the initial rule and random seeding.
type Config struct {
	N    int
	Rule string
	Seed int64

	// Density is the probability that a cell inside the seed region starts
	// fully alive; Radius is the half extent of that region around the centre.
	Density float64
	Radius  int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		N:       50,
		Rule:    rule.Default,
		Seed:    42,
		Density: 0.2,
		Radius:  3,
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Invalid values are ignored and the default is kept.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && validSize(parsed) {
			c.N = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if _, err := rule.Parse(v); err == nil {
			c.Rule = v
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Radius = parsed
		}
	}
	return c
}

func validSize(n int) bool { return n >= MinSize && n%2 == 0 }
