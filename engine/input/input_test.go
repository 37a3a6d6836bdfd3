package input

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, options ...HandlerBuilderOption) (Handler, controls.CameraControls, camera.PerspectiveLens) {
	t.Helper()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 5))
	cc, err := controls.NewCameraControls(cam)
	require.NoError(t, err)
	return NewHandler(cc, options...), cc, cam
}

func TestLeftDragRotates(t *testing.T) {
	h, cc, _ := newTestHandler(t)

	h.MouseDown(MouseButtonLeft, 100, 100)
	assert.Equal(t, DragRotate, h.DragMode())
	assert.True(t, cc.Dragging())

	h.MouseMove(150, 100)
	assert.InDelta(t, -2*math.Pi*50/720, cc.GoalPose().Spherical.Theta, 1e-12)

	h.MouseUp(MouseButtonLeft, 150, 100)
	assert.Equal(t, DragNone, h.DragMode())
	assert.False(t, cc.Dragging())
}

func TestDragModes(t *testing.T) {
	tests := []struct {
		name   string
		button MouseButton
		shift  bool
		want   DragMode
	}{
		{"left", MouseButtonLeft, false, DragRotate},
		{"shift left", MouseButtonLeft, true, DragTruck},
		{"right", MouseButtonRight, false, DragTruck},
		{"middle", MouseButtonMiddle, false, DragDolly},
		{"unknown", MouseButton(7), false, DragNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newTestHandler(t)
			if tt.shift {
				h.KeyDown(common.KeyLeftShift)
			}
			h.MouseDown(tt.button, 10, 10)
			assert.Equal(t, tt.want, h.DragMode())
		})
	}
}

func TestSecondButtonDoesNotStealDrag(t *testing.T) {
	h, cc, _ := newTestHandler(t)
	h.MouseDown(MouseButtonLeft, 0, 0)
	h.MouseDown(MouseButtonRight, 0, 0)
	assert.Equal(t, DragRotate, h.DragMode())

	h.MouseUp(MouseButtonRight, 0, 0)
	assert.Equal(t, DragRotate, h.DragMode())
	assert.True(t, cc.Dragging())

	h.MouseUp(MouseButtonLeft, 0, 0)
	assert.Equal(t, DragNone, h.DragMode())
}

func TestRightDragTrucks(t *testing.T) {
	h, cc, _ := newTestHandler(t)
	h.MouseDown(MouseButtonRight, 100, 100)
	h.MouseMove(120, 100)

	target := cc.GoalPose().Target
	assert.Less(t, target.X(), 0.0, "dragging right moves the target left")
	assert.InDelta(t, 0, target.Y(), 1e-12)
}

func TestMiddleDragDollies(t *testing.T) {
	h, cc, _ := newTestHandler(t)
	h.MouseDown(MouseButtonMiddle, 100, 100)
	h.MouseMove(100, 90)
	assert.InDelta(t, 5*0.95, cc.GoalPose().Spherical.Radius, 1e-9)
}

func TestScrollDollies(t *testing.T) {
	h, cc, _ := newTestHandler(t)
	h.MouseMove(640, 360)
	h.Scroll(2)
	assert.InDelta(t, 5*0.95*0.95, cc.GoalPose().Spherical.Radius, 1e-9)
	h.Scroll(-2)
	assert.InDelta(t, 5, cc.GoalPose().Spherical.Radius, 1e-9)
}

func TestPresetViewKeys(t *testing.T) {
	h, cc, _ := newTestHandler(t)

	h.KeyDown(common.Key3)
	assert.InDelta(t, math.Pi/2, cc.GoalPose().Spherical.Theta, 1e-12)
	h.KeyUp(common.Key3)

	h.KeyDown(common.Key5)
	assert.InDelta(t, 0, cc.GoalPose().Spherical.Phi, 1e-5)
}

func TestHeldKeysMove(t *testing.T) {
	h, cc, _ := newTestHandler(t)

	h.KeyDown(common.KeyW)
	h.Tick(0.1)
	assertVec3InDelta(t, mgl64.Vec3{0, 0, -0.5}, cc.GoalPose().Target, 1e-9)

	h.KeyUp(common.KeyW)
	before := cc.GoalPose().Target
	h.Tick(0.1)
	assertVec3InDelta(t, before, cc.GoalPose().Target, 1e-12)

	h.KeyDown(common.KeyE)
	h.KeyDown(common.KeyQ)
	h.Tick(0.1)
	assertVec3InDelta(t, before, cc.GoalPose().Target, 1e-12)
}

func TestSaveAndResetKeys(t *testing.T) {
	h, cc, _ := newTestHandler(t)
	h.KeyDown(common.KeyB)
	h.KeyUp(common.KeyB)

	require.NoError(t, cc.Rotate(1, 0.3, false))
	h.KeyDown(common.KeySpace)
	assert.InDelta(t, 0, cc.GoalPose().Spherical.Theta, 1e-12)
	assert.InDelta(t, math.Pi/2, cc.GoalPose().Spherical.Phi, 1e-12)
}

func TestKeyRepeatFiresOnce(t *testing.T) {
	h, cc, _ := newTestHandler(t)
	h.KeyDown(common.Key3)
	require.NoError(t, cc.RotateTo(0, math.Pi/2, false))
	h.KeyDown(common.Key3)
	assert.InDelta(t, 0, cc.GoalPose().Spherical.Theta, 1e-12)
}

func TestFrameKeyFitsFocusBox(t *testing.T) {
	box := common.NewBox3(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{3, 3, 3})
	h, cc, _ := newTestHandler(t, WithFocusBox(box))
	h.KeyDown(common.KeyF)
	assertVec3InDelta(t, mgl64.Vec3{2, 2, 2}, cc.GoalPose().Target, 1e-9)

	h.SetFocusBox(nil)
	h.KeyUp(common.KeyF)
	h.KeyDown(common.KeyF)
	assertVec3InDelta(t, mgl64.Vec3{2, 2, 2}, cc.GoalPose().Target, 1e-9)
}

func TestResizePerspective(t *testing.T) {
	h, _, cam := newTestHandler(t)
	h.Resize(800, 400)
	assert.InDelta(t, 2.0, cam.Aspect(), 1e-12)

	h.Resize(0, 0)
	assert.InDelta(t, 2.0, cam.Aspect(), 1e-12)
}

func TestResizeOrthographic(t *testing.T) {
	cam := camera.NewOrthographicCamera(camera.WithPosition(0, 0, 5), camera.WithBounds(-2, 2, 1, -1))
	cc, err := controls.NewCameraControls(cam)
	require.NoError(t, err)
	h := NewHandler(cc)

	h.Resize(300, 100)
	l, r, top, b := cam.Bounds()
	assert.Equal(t, []float64{-3, 3, 1, -1}, []float64{l, r, top, b})
}

func TestTickAdvancesControls(t *testing.T) {
	h, cc, cam := newTestHandler(t)
	require.NoError(t, cc.DollyTo(3, true))
	assert.True(t, h.Tick(1.0/60))
	assert.Less(t, cam.Position().Len(), 5.0)
	assert.False(t, h.Tick(0))
}

func assertVec3InDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta)
	}
}
