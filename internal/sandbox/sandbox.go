// Package sandbox ties the automaton, the camera and the picker into one
// editing session driven by a frame loop.
package sandbox

import (
	"fmt"
	"log/slog"

	"voxel-ca/internal/automaton"
	"voxel-ca/internal/camera"
	"voxel-ca/internal/picker"
	"voxel-ca/internal/rule"
)

// Button selects the edit a click performs.
type Button uint8

const (
	// Add places a fully-alive cell next to the face under the crosshair, or
	// on the ground.
	Add Button = iota
	// Remove clears the cube under the crosshair.
	Remove
)

func (b Button) String() string {
	if b == Remove {
		return "remove"
	}
	return "add"
}

// Option customises a Session.
type Option func(*Session)

// WithLogger routes session events to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session owns the grid and the active rule. The rule text is "last known
// good": malformed text is remembered for display but never replaces the
// active rule.
type Session struct {
	grid   *automaton.Grid
	frame  picker.Frame
	camera camera.Pose
	log    *slog.Logger

	ruleText string
	ruleErr  error
	revision uint64
}

// New creates a session with a grid of side n seeded with the start-up
// pattern.
func New(n int, initial rule.Rule, opts ...Option) (*Session, error) {
	cfg := automaton.DefaultConfig()
	cfg.N = n
	cfg.Rule = initial.String()
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig creates a session from an automaton configuration.
func NewWithConfig(cfg automaton.Config, opts ...Option) (*Session, error) {
	grid, err := automaton.NewWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}
	return FromGrid(grid, opts...), nil
}

// FromGrid wraps an existing grid, such as one built by a registered preset
// factory.
func FromGrid(grid *automaton.Grid, opts ...Option) *Session {
	s := &Session{
		grid:     grid,
		frame:    picker.Centered(grid.Size().N),
		camera:   camera.Default(),
		log:      slog.Default(),
		ruleText: grid.Rule().String(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grid exposes the automaton for read access by renderers.
func (s *Session) Grid() *automaton.Grid { return s.grid }

// Rule returns the active rule.
func (s *Session) Rule() rule.Rule { return s.grid.Rule() }

// RuleText returns the most recently submitted rule text, valid or not.
func (s *Session) RuleText() string { return s.ruleText }

// RuleError returns why the most recent rule text was rejected, or nil.
func (s *Session) RuleError() error { return s.ruleErr }

// Camera returns the mutable camera pose.
func (s *Session) Camera() *camera.Pose { return &s.camera }

// Frame returns the grid's placement in world space.
func (s *Session) Frame() picker.Frame { return s.frame }

// Revision increases on every grid mutation so renderers can skip rebuilding
// unchanged instance data.
func (s *Session) Revision() uint64 { return s.revision }

// Occupied lists the occupied cells for rendering.
func (s *Session) Occupied() []automaton.Cell { return s.grid.OccupiedCells() }

// SetRuleText parses text and, if valid, installs it as the active rule.
// On error neither the rule nor the grid changes.
func (s *Session) SetRuleText(text string) error {
	s.ruleText = text
	r, err := rule.Parse(text)
	if err != nil {
		s.ruleErr = err
		s.log.Debug("rule rejected", "text", text, "err", err)
		return err
	}
	if err := s.grid.SetRule(r); err != nil {
		s.ruleErr = err
		return err
	}
	s.ruleErr = nil
	s.revision++
	s.log.Info("rule changed", "rule", r.String(), "states", r.States())
	return nil
}

// Step runs one generation.
func (s *Session) Step() {
	s.grid.Step()
	s.revision++
	s.log.Debug("step", "generation", s.grid.Generation(), "population", s.grid.Population())
}

// Randomize clears the grid and fills the seed region at random.
func (s *Session) Randomize(seed int64) {
	s.grid.Randomize(seed)
	s.revision++
	s.log.Debug("randomized", "seed", seed, "population", s.grid.Population())
}

// Clear zeroes the grid.
func (s *Session) Clear() {
	s.grid.Clear()
	s.revision++
	s.log.Debug("cleared")
}

// Pick casts the camera's centre ray into the scene.
func (s *Session) Pick() picker.Hit {
	origin, dir := s.camera.Ray()
	return picker.Pick(picker.Ray{Origin: origin, Dir: dir}, s.grid, s.frame)
}

// Click picks along the camera's centre ray and applies the edit.
func (s *Session) Click(b Button) (picker.Hit, bool) {
	hit := s.Pick()
	return hit, s.Apply(hit, b)
}

// Apply performs an edit for a pick result and reports whether a cell
// changed. Add fills the cell across the hit face (or the ground cell) when
// it is inside the grid and empty; Remove clears a hit cube.
func (s *Session) Apply(hit picker.Hit, b Button) bool {
	var target [3]int
	var state uint8
	switch {
	case b == Remove && hit.Kind == picker.Cube:
		target = hit.Cell
	case b == Add && hit.Kind == picker.Cube:
		target, state = hit.Adjacent(), s.grid.Rule().Alive()
	case b == Add && hit.Kind == picker.Ground:
		target, state = hit.Cell, s.grid.Rule().Alive()
	default:
		return false
	}
	x, y, z := target[0], target[1], target[2]
	if !s.grid.InBounds(x, y, z) {
		return false
	}
	if b == Add && (state == 0 || s.grid.Cell(x, y, z) != 0) {
		return false
	}
	s.grid.SetCell(x, y, z, state)
	s.revision++
	s.log.Debug("edit", "button", b.String(), "hit", hit.Kind.String(), "x", x, "y", y, "z", z)
	return true
}
