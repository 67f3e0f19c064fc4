//go:build ebiten

package app

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"voxel-ca/internal/camera"
	"voxel-ca/internal/core"
	"voxel-ca/internal/picker"
	"voxel-ca/internal/render"
	"voxel-ca/internal/sandbox"
	"voxel-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the panel right of the 3D view.
const HUDWidth = 260

// maxFrameDelta caps camera movement after a stall.
const maxFrameDelta = 100 * time.Millisecond

// Game adapts a sandbox session to the ebiten.Game interface.
type Game struct {
	session *sandbox.Session
	cfg     *Config
	painter *render.VoxelPainter
	hud     *ui.HUD
	timer   *core.FixedStep
	speeds  camera.Speeds

	width, height int

	running  bool
	captured bool
	cursorX  int
	cursorY  int
	last     time.Time
	bg       color.Color
}

// New constructs a Game for the provided session.
func New(s *sandbox.Session, cfg *Config) *Game {
	return &Game{
		session: s,
		cfg:     cfg,
		painter: render.NewVoxelPainter(),
		hud:     ui.NewHUD(s, HUDWidth),
		timer:   core.NewFixedStep(cfg.TPS),
		speeds:  cfg.Speeds(),
		width:   cfg.Width,
		height:  cfg.Height,
		bg:      color.RGBA{R: 24, G: 26, B: 32, A: 255},
	}
}

// Update handles per-frame input and advances the automaton when running.
func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last)
	if g.last.IsZero() || dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	g.last = now

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.hud.Update(g.viewWidth())
	if !g.hud.Editing() {
		g.handleKeys(dt)
	}
	g.handleMouse()

	if g.running && g.timer.ShouldStep() {
		g.session.Step()
	}
	target := "--"
	if g.captured {
		target = describe(g.session.Pick())
	}
	g.hud.SetStatus(g.running, ebiten.ActualFPS(), target)
	return nil
}

func (g *Game) handleKeys(dt time.Duration) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.release()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.session.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.running = !g.running
		g.timer.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Randomize(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.session.Clear()
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	m := camera.Movement{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Up:      ebiten.IsKeyPressed(ebiten.KeyE),
		Down:    ebiten.IsKeyPressed(ebiten.KeyQ) && !ctrl,
		Fast:    ebiten.IsKeyPressed(ebiten.KeyShift),
	}
	g.session.Camera().Move(m, g.speeds, dt)
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	if !g.captured {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && x < g.viewWidth() {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			g.captured = true
			g.cursorX, g.cursorY = x, y
		}
		return
	}
	if ebiten.CursorMode() != ebiten.CursorModeCaptured {
		// The window lost the pointer lock, e.g. after a focus change.
		g.captured = false
		return
	}
	g.session.Camera().Look(float64(x-g.cursorX), float64(y-g.cursorY), g.cfg.Mouse)
	g.cursorX, g.cursorY = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.session.Click(sandbox.Add)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.session.Click(sandbox.Remove)
	}
}

func (g *Game) release() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	g.captured = false
}

func (g *Game) viewWidth() int {
	w := g.width - HUDWidth
	if w < 1 {
		w = 1
	}
	return w
}

// Draw renders the voxels and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	view := screen.SubImage(screen.Bounds().Intersect(image.Rect(0, 0, g.viewWidth(), g.height))).(*ebiten.Image)
	grid := g.session.Grid()
	g.painter.Draw(view, g.session.Occupied(), grid.Rule().States(), g.session.Frame(), g.session.Revision(), *g.session.Camera())
	g.hud.Draw(screen, g.viewWidth(), g.height)
}

// Layout tracks the window size so the view and HUD follow resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func describe(h picker.Hit) string {
	switch h.Kind {
	case picker.Cube:
		return fmt.Sprintf("cube %v", h.Cell)
	case picker.Ground:
		return fmt.Sprintf("ground %v", h.Cell)
	}
	return "none"
}
