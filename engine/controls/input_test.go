package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateInputScalesByViewportHeight(t *testing.T) {
	cc, _ := newTestControls(t, WithSmoothing(Smoothing{}), WithViewport(800, 400))

	require.NoError(t, cc.RotateInput(100, 0))
	assert.InDelta(t, -2*math.Pi*100/400, cc.GoalPose().Spherical.Theta, 1e-12)

	require.NoError(t, cc.SetRotateSpeed(1, 0.5))
	require.NoError(t, cc.RotateInput(0, 40))
	assert.InDelta(t, math.Pi/2-math.Pi*40/400, cc.GoalPose().Spherical.Phi, 1e-12)
}

func TestTruckInputFollowsPointerAtTargetDepth(t *testing.T) {
	cc, cam := newTestControls(t, WithSmoothing(Smoothing{}), WithViewport(600, 600))
	require.True(t, cc.Update(frame))

	// a point on the target plane that sits under the pointer before the drag
	ndcBefore := mgl64.Vec2{0.2, -0.1}
	ray, ok := common.RayFromNDC(ndcBefore.X(), ndcBefore.Y(), cam.ViewMatrix(), cam.ProjectionMatrix())
	require.True(t, ok)
	point, ok := ray.IntersectPlane(common.Plane{Normal: mgl64.Vec3{0, 0, 1}})
	require.True(t, ok)

	// drag right by 60px and down by 30px
	require.NoError(t, cc.TruckInput(60, 30))
	require.True(t, cc.Update(frame))

	got := projectToNDC(cam.ViewProjectionMatrix(), point)
	assert.InDelta(t, ndcBefore.X()+60.0/300, got.X(), 1e-9)
	assert.InDelta(t, ndcBefore.Y()-30.0/300, got.Y(), 1e-9)
}

func TestTruckInputOrthographic(t *testing.T) {
	cc, cam := newOrthoTestControls(t, WithSmoothing(Smoothing{}), WithViewport(200, 200))
	require.True(t, cc.Update(frame))
	point := mgl64.Vec3{0.3, 0.2, 0}
	before := projectToNDC(cam.ViewProjectionMatrix(), point)

	require.NoError(t, cc.TruckInput(50, 0))
	require.True(t, cc.Update(frame))

	got := projectToNDC(cam.ViewProjectionMatrix(), point)
	assert.InDelta(t, before.X()+50.0/100, got.X(), 1e-9)
	assert.InDelta(t, before.Y(), got.Y(), 1e-9)
}

func TestDollyInputScalesRadius(t *testing.T) {
	cc, _ := newTestControls(t)

	require.NoError(t, cc.DollyInput(1, 0, 0))
	assert.InDelta(t, 5*0.95, cc.GoalPose().Spherical.Radius, 1e-12)

	require.NoError(t, cc.SetDollySpeed(2))
	require.NoError(t, cc.DollyInput(-1, 0, 0))
	assert.InDelta(t, 5*0.95/(0.95*0.95), cc.GoalPose().Spherical.Radius, 1e-12)
}

func TestDollyInputOrthographicZooms(t *testing.T) {
	cc, _ := newOrthoTestControls(t)
	require.NoError(t, cc.DollyInput(2, 0, 0))
	assert.InDelta(t, 1/(0.95*0.95), cc.GoalPose().Zoom, 1e-12)
	assert.InDelta(t, 5, cc.GoalPose().Spherical.Radius, 1e-12)
}

func TestDollyToCursorKeepsPointUnderCursor(t *testing.T) {
	cc, cam := newTestControls(t, WithSmoothing(Smoothing{}), WithDollyToCursor(true))
	require.True(t, cc.Update(frame))

	ndc := mgl64.Vec2{0.5, 0.5}
	ray, ok := common.RayFromNDC(ndc.X(), ndc.Y(), cam.ViewMatrix(), cam.ProjectionMatrix())
	require.True(t, ok)
	point, ok := ray.IntersectPlane(common.Plane{Normal: mgl64.Vec3{0, 0, 1}})
	require.True(t, ok)

	for _, delta := range []float64{3, -2, 5} {
		require.NoError(t, cc.DollyInput(delta, ndc.X(), ndc.Y()))
		require.True(t, cc.Update(frame))

		got := projectToNDC(cam.ViewProjectionMatrix(), point)
		assert.InDelta(t, ndc.X(), got.X(), 1e-9)
		assert.InDelta(t, ndc.Y(), got.Y(), 1e-9)
	}
	assert.Less(t, cc.Distance(), 5.0)
	assert.NotEqual(t, mgl64.Vec3{}, cc.Pose().FocalOffset)
}

func TestDollyToCursorOrthographic(t *testing.T) {
	cc, cam := newOrthoTestControls(t, WithSmoothing(Smoothing{}), WithDollyToCursor(true))
	require.True(t, cc.Update(frame))

	ndc := mgl64.Vec2{-0.4, 0.6}
	ray, ok := common.RayFromNDC(ndc.X(), ndc.Y(), cam.ViewMatrix(), cam.ProjectionMatrix())
	require.True(t, ok)
	point, ok := ray.IntersectPlane(common.Plane{Normal: mgl64.Vec3{0, 0, 1}})
	require.True(t, ok)

	require.NoError(t, cc.DollyInput(4, ndc.X(), ndc.Y()))
	require.True(t, cc.Update(frame))

	assert.Greater(t, cam.Zoom(), 1.0)
	got := projectToNDC(cam.ViewProjectionMatrix(), point)
	assert.InDelta(t, ndc.X(), got.X(), 1e-9)
	assert.InDelta(t, ndc.Y(), got.Y(), 1e-9)
}

func TestDollyToCursorAtClampedRadiusLeavesFocalOffset(t *testing.T) {
	cc, _ := newTestControls(t, WithDollyToCursor(true))
	require.NoError(t, cc.SetDistanceRange(5, 5))

	require.NoError(t, cc.DollyInput(3, 0.5, 0.5))
	assert.Equal(t, mgl64.Vec3{}, cc.GoalPose().FocalOffset)
}

func TestPointerInputErrorsNameTheAction(t *testing.T) {
	cc, _ := newTestControls(t)

	err := cc.RotateInput(math.NaN(), 0)
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "rotate input: pointer delta")

	err = cc.TruckInput(0, math.Inf(1))
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "truck input: pointer delta")

	err = cc.DollyInput(math.NaN(), 0, 0)
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "dolly input")
}
