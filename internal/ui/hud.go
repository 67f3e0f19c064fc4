//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"voxel-ca/internal/core"
	"voxel-ca/internal/render"
	"voxel-ca/internal/sandbox"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the rule editor, readouts, seeding controls and a layer map
// in a panel to the right of the 3D view.
type HUD struct {
	session  *sandbox.Session
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot

	field RuleField

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string

	layer        *render.LayerPainter
	palette      []color.RGBA
	paletteFor   int
	running      bool
	fps          float64
	lastPickText string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the session with the given panel width.
func NewHUD(s *sandbox.Session, width int) *HUD {
	if width < 0 {
		width = 0
	}
	grid := s.Grid()
	h := &HUD{session: s, width: width, title: buildTitle(grid.Name())}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
		h.layer = render.NewLayerPainter(grid.Size().N)
	}
	controls := grid.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	h.layoutControls()
	h.intSetter = grid
	h.floatSetter = grid
	return h
}

// Editing reports whether the rule field has keyboard focus.
func (h *HUD) Editing() bool { return h != nil && h.field.Focused() }

// SetStatus records values owned by the game loop for the next Draw.
func (h *HUD) SetStatus(running bool, fps float64, pick string) {
	if h == nil {
		return
	}
	h.running = running
	h.fps = fps
	h.lastPickText = pick
}

// Update refreshes the snapshot and handles rule editing and button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.session.Grid().Parameters()
	h.refreshControlValues()
	h.handleRuleInput()
	h.handleInput()
}

func (h *HUD) handleRuleInput() {
	if !h.field.Focused() {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			h.field.Focus(h.session.RuleText())
		}
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		h.field.Blur()
		_ = h.session.SetRuleText(h.field.Text())
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		h.field.Blur()
		return
	}
	h.field.Insert(ebiten.AppendInputChars(nil))
	if repeating(ebiten.KeyBackspace) {
		h.field.Backspace()
	}
}

func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%4 == 0)
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, headerColor)
	h.drawRuleField()
	h.drawReadouts()
	h.drawControls()
	bottom := h.drawLayer()
	h.drawHelp(bottom, height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(name string) string {
	if name == "" {
		return "Voxel CA"
	}
	return fmt.Sprintf("Voxel CA: %s", name)
}

func (h *HUD) drawRuleField() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Rule (Tab to edit)", face, panelPadding, ruleTop, labelColor)

	box := image.Rect(panelPadding, ruleTop+6, h.width-panelPadding, ruleTop+6+buttonSize)
	bg := color.RGBA{R: 32, G: 34, B: 40, A: 255}
	if h.field.Focused() {
		bg = color.RGBA{R: 48, G: 52, B: 70, A: 255}
	}
	h.fillRect(box, bg)

	draft := h.session.RuleText()
	if h.field.Focused() {
		draft = h.field.Text() + "_"
	}
	text.Draw(h.panel, clipText(draft, box.Dx()-8), face, box.Min.X+4, box.Min.Y+17, valueColor)

	var err error
	if h.field.Focused() {
		err = h.field.Check()
	} else {
		err = h.session.RuleError()
	}
	active := h.session.Rule()
	status, col := "active: "+active.String(), okColor
	switch {
	case err != nil:
		status, col = err.Error(), errColor
	case h.field.Pending(active):
		status, col = "pending, Enter applies", pendingColor
	}
	text.Draw(h.panel, clipText(status, h.width-2*panelPadding), face, panelPadding, box.Max.Y+16, col)
}

func (h *HUD) drawReadouts() {
	face := basicfont.Face7x13
	state := "paused"
	if h.running {
		state = "running"
	}
	lines := []string{
		"Generation  " + h.lookup("generation"),
		"Population  " + h.lookup("population"),
		"Hash        " + h.lookup("fingerprint"),
		fmt.Sprintf("FPS         %.0f (%s)", h.fps, state),
		"Target      " + h.lastPickText,
	}
	for i, line := range lines {
		text.Draw(h.panel, clipText(line, h.width-2*panelPadding), face, panelPadding, readoutTop+i*readoutSpacing, valueColor)
	}
}

func (h *HUD) lookup(key string) string {
	if p, ok := h.snapshot.Lookup(key); ok {
		return p.Value
	}
	return "--"
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		state.hasValue = false
		state.value = "--"
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			continue
		}
		state.floatValue = parsed
		state.hasValue = true
		if state.control.Type == core.ParamTypeInt {
			state.intValue = int(math.Round(parsed))
			state.value = strconv.Itoa(state.intValue)
		} else {
			state.value = formatFloat(state.control, parsed)
		}
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

// target returns the value one step in direction, clamped to the control's
// bounds, and whether it differs from the current value.
func (h *HUD) target(state *hudControlState, direction int) (float64, bool) {
	step := state.control.Step
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
		if step < 1 {
			step = 1
		}
		t := math.Round(state.control.Clamp(float64(state.intValue) + float64(direction)*step))
		return t, int(t) != state.intValue
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
		t := state.control.Clamp(state.floatValue + float64(direction)*step)
		return t, math.Abs(t-state.floatValue) >= 1e-9
	}
	return 0, false
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	t, ok := h.target(state, direction)
	if !ok {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter.SetIntParameter(state.control.Key, int(t)) {
			state.intValue = int(t)
			state.floatValue = t
			state.value = strconv.Itoa(int(t))
		}
	case core.ParamTypeFloat:
		if h.floatSetter.SetFloatParameter(state.control.Key, t) {
			state.floatValue = t
			state.value = formatFloat(state.control, t)
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)
		col := valueColor
		if !state.hasValue {
			col = dimColor
		}
		valueWidth := text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-valueWidth, labelY, col)

		_, minus := h.target(state, -1)
		_, plus := h.target(state, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && minus)
		h.drawButton(state.plusRect, "+", state.hasValue && plus)
	}
}

// drawLayer shows the ground layer from above and returns the y below it.
func (h *HUD) drawLayer() int {
	grid := h.session.Grid()
	n := grid.Size().N
	top := controlsTop + len(h.controls)*lineHeight + 8
	if h.layer == nil {
		return top
	}
	if states := grid.Rule().States(); states != h.paletteFor || h.palette == nil {
		h.palette = render.Palette(states)
		h.paletteFor = states
	}
	y := n / 2
	text.Draw(h.panel, fmt.Sprintf("Layer y=%d", y-n/2), basicfont.Face7x13, panelPadding, top+labelBaseline-8, labelColor)
	scale := (h.width - 2*panelPadding) / n
	if scale < 1 {
		scale = 1
	}
	imgTop := top + labelBaseline
	h.fillRect(image.Rect(panelPadding, imgTop, panelPadding+n*scale, imgTop+n*scale), color.RGBA{R: 8, G: 8, B: 10, A: 255})
	h.layer.Blit(h.panel, grid.Cells(), y, h.palette, panelPadding, float64(imgTop), scale)
	return imgTop + n*scale
}

var helpLines = []string{
	"Click: capture mouse, Esc: release",
	"L/R click: add/remove",
	"WASD fly, E/Q up/down, Shift fast",
	"N step, P run, R random, C clear",
	"Ctrl+Q quit",
}

func (h *HUD) drawHelp(top, height int) {
	for i, line := range helpLines {
		y := top + 20 + i*readoutSpacing
		if y > height-4 {
			return
		}
		text.Draw(h.panel, line, basicfont.Face7x13, panelPadding, y, dimColor)
	}
}

func (h *HUD) fillRect(rect image.Rectangle, c color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// clipText trims s from the left so it fits width pixels of the 7px font.
func clipText(s string, width int) string {
	limit := width / 7
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	return string(r[len(r)-limit:])
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	headerColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	valueColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor     = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	okColor      = color.RGBA{R: 120, G: 200, B: 130, A: 255}
	errColor     = color.RGBA{R: 235, G: 110, B: 100, A: 255}
	pendingColor = color.RGBA{R: 230, G: 200, B: 90, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	readoutSpacing = 16

	ruleTop     = panelPadding + headerBaseline + 24
	readoutTop  = ruleTop + 6 + buttonSize + 40
	controlsTop = readoutTop + 5*readoutSpacing
)
