package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateZeroDeltaIsNoop(t *testing.T) {
	cc, cam := newTestControls(t)
	require.True(t, cc.Update(frame))
	require.NoError(t, cc.Rotate(1, 0, true))

	position := cam.Position()
	snapshot := cc.Snapshot()
	assert.False(t, cc.Update(0))
	assert.Equal(t, position, cam.Position())
	assert.Equal(t, snapshot, cc.Snapshot())
}

func TestUpdateIgnoresInvalidDelta(t *testing.T) {
	cc, cam := newTestControls(t)
	require.NoError(t, cc.Rotate(1, 0, true))
	position := cam.Position()

	for _, dt := range []float64{-frame, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.False(t, cc.Update(dt), "dt %v", dt)
	}
	assert.Equal(t, position, cam.Position())
	assert.Equal(t, Transitioning, cc.State())
}

func TestUpdateWritesPendingNonAnimatedChange(t *testing.T) {
	cc, cam := newTestControls(t)
	require.True(t, cc.Update(frame))
	assert.False(t, cc.Update(frame), "nothing to write")

	require.NoError(t, cc.DollyTo(2, false))
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 5}, cam.Position(), 1e-12, "camera is written by Update, not by the action")
	require.True(t, cc.Update(frame))
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 2}, cam.Position(), 1e-12)
}

func TestZeroSmoothTimeReachesGoalInOneUpdate(t *testing.T) {
	cc, cam := newTestControls(t, WithSmoothing(Smoothing{}))
	require.NoError(t, cc.SetLookAt(mgl64.Vec3{0, 3, 0.001}, mgl64.Vec3{1, 0, 0}, true))

	require.True(t, cc.Update(frame))
	assert.Equal(t, Settled, cc.State())
	assert.Equal(t, cc.GoalPose(), cc.Pose())
	assertVec3InDelta(t, cc.GoalPose().Position, cam.Position(), 1e-12)
}

func TestUpdateConvergesMonotonically(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.RotateTo(1, 1, true))
	require.NoError(t, cc.DollyTo(9, true))

	goal := cc.GoalPose().Spherical
	gap := func() (float64, float64, float64) {
		s := cc.Pose().Spherical
		return math.Abs(goal.Theta - s.Theta), math.Abs(goal.Phi - s.Phi), math.Abs(goal.Radius - s.Radius)
	}
	prevTheta, prevPhi, prevRadius := gap()
	for i := 0; i < 2000 && cc.State() == Transitioning; i++ {
		cc.Update(frame)
		theta, phi, radius := gap()
		require.LessOrEqual(t, theta, prevTheta)
		require.LessOrEqual(t, phi, prevPhi)
		require.LessOrEqual(t, radius, prevRadius)
		prevTheta, prevPhi, prevRadius = theta, phi, radius
	}
	assert.Equal(t, Settled, cc.State())
	assert.Equal(t, goal, cc.Pose().Spherical)
}

func TestUpdateConvergesAfterGoalReversal(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.Rotate(2, 0, true))
	for range 10 {
		cc.Update(frame)
	}
	require.Equal(t, Transitioning, cc.State())

	require.NoError(t, cc.Rotate(-3, 0, true))
	goal := cc.GoalPose().Spherical.Theta
	prevGap := math.Abs(goal - cc.Pose().Spherical.Theta)
	for i := 0; i < 2000 && cc.State() == Transitioning; i++ {
		cc.Update(frame)
		gap := math.Abs(goal - cc.Pose().Spherical.Theta)
		require.LessOrEqual(t, gap, prevGap, "frame %d", i)
		prevGap = gap
	}
	assert.Equal(t, Settled, cc.State())
	assert.InDelta(t, goal, cc.Pose().Spherical.Theta, 1e-9)
}

func TestUpdateIsFrameRateIndependent(t *testing.T) {
	run := func(fps int) float64 {
		cc, _ := newTestControls(t)
		require.NoError(t, cc.Rotate(1, 0, true))
		for i := 0; i < fps/4; i++ {
			cc.Update(1 / float64(fps))
		}
		return cc.AzimuthAngle()
	}
	slow, fast := run(40), run(240)
	assert.Greater(t, slow, 0.1)
	assert.Less(t, slow, 1.0)
	assert.InDelta(t, fast, slow, 0.01)
}

func TestDisabledControlsDoNotAdvanceOrWrite(t *testing.T) {
	cc, cam := newTestControls(t)
	require.True(t, cc.Update(frame))

	cc.SetEnabled(false)
	assert.False(t, cc.Enabled())
	require.NoError(t, cc.Rotate(1, 0, true))
	position := cam.Position()

	assert.False(t, cc.Update(frame))
	assert.False(t, cc.Apply())
	assert.Equal(t, position, cam.Position())
	assert.InDelta(t, 0, cc.AzimuthAngle(), 1e-12)

	cc.SetEnabled(true)
	assert.True(t, cc.Update(frame))
	assert.Greater(t, cc.AzimuthAngle(), 0.0)
}

func TestCallbacks(t *testing.T) {
	cc, _ := newTestControls(t)
	var starts, rests, updates int
	cc.SetTransitionStartCallback(func() { starts++ })
	cc.SetRestCallback(func() { rests++ })
	cc.SetUpdateCallback(func() { updates++ })

	require.NoError(t, cc.Rotate(1, 0, true))
	require.NoError(t, cc.Dolly(1, true))
	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, rests)

	settle(t, cc)
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, rests)
	assert.Greater(t, updates, 1)

	require.NoError(t, cc.Rotate(0.1, 0, false))
	assert.Equal(t, 1, starts, "non-animated actions do not start transitions")
	before := updates
	require.True(t, cc.Update(frame))
	assert.Equal(t, before+1, updates)
}

func TestDraggingUsesDraggingSmoothTime(t *testing.T) {
	cc, _ := newTestControls(t, WithSmoothing(Smoothing{SmoothTime: 10, DraggingSmoothTime: 0}))

	cc.BeginDrag()
	assert.True(t, cc.Dragging())
	require.NoError(t, cc.Rotate(0.5, 0, true))
	require.True(t, cc.Update(frame))
	assert.Equal(t, Settled, cc.State())
	assert.InDelta(t, 0.5, cc.AzimuthAngle(), 1e-12)

	cc.EndDrag()
	assert.False(t, cc.Dragging())
	require.NoError(t, cc.Rotate(0.5, 0, true))
	require.True(t, cc.Update(frame))
	assert.Equal(t, Transitioning, cc.State())
}

func TestApplyWritesOrthographicZoom(t *testing.T) {
	cam := camera.NewOrthographicCamera(camera.WithPosition(0, 0, 5), camera.WithBounds(-2, 2, 1, -1))
	cc, err := NewCameraControls(cam)
	require.NoError(t, err)

	require.NoError(t, cc.ZoomTo(4, false))
	require.True(t, cc.Apply())
	assert.Equal(t, 4.0, cam.Zoom())
	// x scale is 2 / (visible width) = 2 / (4 / zoom)
	assert.InDelta(t, 2.0, cam.ProjectionMatrix()[0], 1e-12)
}
