package automaton

import (
	"strconv"

	"voxel-ca/internal/core"
)

// Parameters reports the rule and world state for the HUD.
func (g *Grid) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Rule",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeText, Value: g.rule.String()},
				intParam("states", "States", g.rule.States()),
			},
		},
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("n", "Size", g.cur.N),
				intParam("generation", "Generation", g.generation),
				intParam("population", "Population", g.Population()),
				{Key: "fingerprint", Label: "Hash", Type: core.ParamTypeText, Value: strconv.FormatUint(g.Fingerprint(), 16)},
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				intParam("radius", "Seed radius", g.cfg.Radius),
				floatParam("density", "Seed density", g.cfg.Density),
			},
		},
	}}
}

// ParameterControls exposes the seeding knobs as HUD controls.
func (g *Grid) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "radius", Label: "Seed radius", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: float64(g.cur.N / 2), HasMax: true},
		{Key: "density", Label: "Seed density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

// SetIntParameter updates integer seeding parameters.
func (g *Grid) SetIntParameter(key string, value int) bool {
	switch key {
	case "radius":
		if value < 1 || value > g.cur.N/2 {
			return false
		}
		g.cfg.Radius = value
		return true
	}
	return false
}

// SetFloatParameter updates floating point seeding parameters.
func (g *Grid) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "density":
		if value < 0 || value > 1 {
			return false
		}
		g.cfg.Density = value
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', 2, 64)}
}
