//go:build !ebiten

package ui

import "voxel-ca/internal/sandbox"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(*sandbox.Session, int) *HUD { return nil }

// Editing always reports false in the headless build.
func (h *HUD) Editing() bool { return false }

// SetStatus is a no-op in the headless build.
func (h *HUD) SetStatus(bool, float64, string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
