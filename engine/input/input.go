// Package input translates pointer, wheel and keyboard events into camera controls actions.
package input

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/rs/zerolog"
)

// MouseButton identifies a pointer button. Values match GLFW button numbers.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// DragMode is what a pointer drag does to the camera.
type DragMode int

const (
	DragNone DragMode = iota
	DragRotate
	DragTruck
	DragDolly
)

func (m DragMode) String() string {
	switch m {
	case DragRotate:
		return "rotate"
	case DragTruck:
		return "truck"
	case DragDolly:
		return "dolly"
	default:
		return "none"
	}
}

// dragDollyScale converts vertical drag pixels into wheel steps.
const dragDollyScale = 0.1

// Handler routes window events to a CameraControls instance.
// Like the controls it drives, a Handler must be used from a single goroutine.
type Handler interface {
	// MouseDown starts a drag. The left button rotates (trucks while shift is held),
	// the right button trucks and the middle button dollies.
	//
	// Parameters:
	//   - button: the pressed button
	//   - x, y: pointer position in pixels, y growing downward
	MouseDown(button MouseButton, x, y float64)

	// MouseUp ends the drag started by button.
	MouseUp(button MouseButton, x, y float64)

	// MouseMove tracks the pointer and feeds the active drag.
	MouseMove(x, y float64)

	// Scroll dollies toward the pointer. Positive delta moves in.
	Scroll(delta float64)

	// KeyDown handles a key press using the common key codes.
	//
	// Bindings:
	//   - W/S, A/D, Q/E: move forward/back, left/right, down/up while held
	//   - 1..6: front, back, right, left, top and bottom views
	//   - F: frame the focus box (or the target when none is set)
	//   - B: save the current pose; Space returns to it
	//   - X: normalize rotations
	//   - Shift: left drag trucks instead of rotating
	KeyDown(keyCode uint32)

	// KeyUp handles a key release.
	KeyUp(keyCode uint32)

	// Resize updates the camera lens and controls viewport for a new framebuffer size.
	Resize(width, height int)

	// Tick applies held movement keys and advances the controls by dt seconds.
	//
	// Returns:
	//   - bool: true if the camera changed this tick
	Tick(dt float64) bool

	// DragMode returns the active drag, or DragNone.
	DragMode() DragMode

	// SetFocusBox sets the box framed by the F key. Nil frames a unit sphere around the target.
	SetFocusBox(box *common.Box3)
}

// handlerImpl is the implementation of the Handler interface.
type handlerImpl struct {
	controls controls.CameraControls
	logger   zerolog.Logger

	// moveSpeed is the fraction of the orbit distance covered per second by a held movement key.
	moveSpeed float64

	width, height int
	cursorX       float64
	cursorY       float64

	drag       DragMode
	dragButton MouseButton
	dragStartX float64
	dragStartY float64

	held     map[uint32]bool
	focusBox *common.Box3
}

var _ Handler = &handlerImpl{}

// NewHandler creates a Handler driving cc.
//
// Parameters:
//   - cc: the controls to drive
//   - options: functional options to configure the handler
//
// Returns:
//   - Handler: the newly created handler
func NewHandler(cc controls.CameraControls, options ...HandlerBuilderOption) Handler {
	h := &handlerImpl{
		controls:  cc,
		logger:    zerolog.Nop(),
		moveSpeed: 1,
		width:     1280,
		height:    720,
		held:      make(map[uint32]bool),
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// --- pointer ---

func (h *handlerImpl) MouseDown(button MouseButton, x, y float64) {
	h.cursorX, h.cursorY = x, y
	if h.drag != DragNone {
		return
	}

	switch button {
	case MouseButtonLeft:
		h.drag = DragRotate
		if h.shiftHeld() {
			h.drag = DragTruck
		}
	case MouseButtonRight:
		h.drag = DragTruck
	case MouseButtonMiddle:
		h.drag = DragDolly
	default:
		return
	}
	h.dragButton = button
	h.dragStartX, h.dragStartY = x, y
	h.controls.BeginDrag()
}

func (h *handlerImpl) MouseUp(button MouseButton, x, y float64) {
	h.cursorX, h.cursorY = x, y
	if h.drag == DragNone || button != h.dragButton {
		return
	}
	h.drag = DragNone
	h.controls.EndDrag()
}

func (h *handlerImpl) MouseMove(x, y float64) {
	dx, dy := x-h.cursorX, y-h.cursorY
	h.cursorX, h.cursorY = x, y
	if dx == 0 && dy == 0 {
		return
	}

	var err error
	switch h.drag {
	case DragRotate:
		err = h.controls.RotateInput(dx, dy)
	case DragTruck:
		err = h.controls.TruckInput(dx, dy)
	case DragDolly:
		ndcX, ndcY := h.ndc(h.dragStartX, h.dragStartY)
		err = h.controls.DollyInput(-dy*dragDollyScale, ndcX, ndcY)
	}
	h.report(err, h.drag.String())
}

func (h *handlerImpl) Scroll(delta float64) {
	ndcX, ndcY := h.ndc(h.cursorX, h.cursorY)
	h.report(h.controls.DollyInput(delta, ndcX, ndcY), "scroll")
}

func (h *handlerImpl) DragMode() DragMode {
	return h.drag
}

// ndc maps a pixel position to normalized device coordinates.
func (h *handlerImpl) ndc(x, y float64) (float64, float64) {
	return 2*x/float64(h.width) - 1, 1 - 2*y/float64(h.height)
}

// --- keyboard ---

func (h *handlerImpl) KeyDown(keyCode uint32) {
	repeat := h.held[keyCode]
	h.held[keyCode] = true
	if repeat {
		return
	}

	var err error
	switch keyCode {
	case common.Key1:
		err = h.controls.RotateTo(0, math.Pi/2, true)
	case common.Key2:
		err = h.controls.RotateTo(math.Pi, math.Pi/2, true)
	case common.Key3:
		err = h.controls.RotateTo(math.Pi/2, math.Pi/2, true)
	case common.Key4:
		err = h.controls.RotateTo(-math.Pi/2, math.Pi/2, true)
	case common.Key5:
		err = h.controls.RotateTo(0, 0, true)
	case common.Key6:
		err = h.controls.RotateTo(0, math.Pi, true)
	case common.KeyF:
		err = h.frame()
	case common.KeyB:
		h.controls.SaveState()
	case common.KeySpace:
		err = h.controls.Reset(true)
	case common.KeyX:
		h.controls.NormalizeRotations()
	}
	h.report(err, "key")
}

func (h *handlerImpl) KeyUp(keyCode uint32) {
	delete(h.held, keyCode)
}

func (h *handlerImpl) shiftHeld() bool {
	return h.held[common.KeyLeftShift] || h.held[common.KeyRightShift]
}

func (h *handlerImpl) frame() error {
	if h.focusBox != nil {
		return h.controls.FitToBox(*h.focusBox, true, controls.FitOptions{})
	}
	return h.controls.FitToSphere(common.Sphere{Center: h.controls.GoalPose().Target, Radius: 1}, true)
}

func (h *handlerImpl) SetFocusBox(box *common.Box3) {
	if box == nil {
		h.focusBox = nil
		return
	}
	b := *box
	h.focusBox = &b
}

// --- frame ---

func (h *handlerImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		// minimized
		return
	}
	h.width, h.height = width, height
	aspect := float64(width) / float64(height)

	cam := h.controls.Camera()
	switch lens := cam.(type) {
	case camera.PerspectiveLens:
		lens.SetAspect(aspect)
	case camera.OrthographicLens:
		left, right, top, bottom := lens.Bounds()
		centerX := (left + right) / 2
		halfWidth := (top - bottom) / 2 * aspect
		lens.SetBounds(centerX-halfWidth, centerX+halfWidth, top, bottom)
		lens.UpdateProjectionMatrix()
	}
	h.report(h.controls.SetViewport(float64(width), float64(height)), "resize")
}

func (h *handlerImpl) Tick(dt float64) bool {
	if dt > 0 {
		h.applyHeldKeys(dt)
	}
	return h.controls.Update(dt)
}

// applyHeldKeys moves the camera for every held movement key, scaled by the orbit distance
// so the apparent speed stays constant.
func (h *handlerImpl) applyHeldKeys(dt float64) {
	step := h.moveSpeed * dt * h.controls.Distance()
	axis := func(positive, negative uint32) float64 {
		v := 0.0
		if h.held[positive] {
			v += step
		}
		if h.held[negative] {
			v -= step
		}
		return v
	}

	if forward := axis(common.KeyW, common.KeyS); forward != 0 {
		h.report(h.controls.Forward(forward, true), "forward")
	}
	if right := axis(common.KeyD, common.KeyA); right != 0 {
		h.report(h.controls.Truck(right, 0, true), "truck")
	}
	if up := axis(common.KeyE, common.KeyQ); up != 0 {
		h.report(h.controls.Elevate(up, true), "elevate")
	}
}

func (h *handlerImpl) report(err error, source string) {
	if err != nil {
		h.logger.Debug().Err(err).Str("input", source).Msg("input ignored")
	}
}
