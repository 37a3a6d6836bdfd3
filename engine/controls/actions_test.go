package controls

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLookAtDerivesSpherical(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.SetLookAt(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 0}, false))

	pose := cc.Pose()
	assert.InDelta(t, 1, pose.Spherical.Radius, 1e-12)
	assert.InDelta(t, math.Pi/2, pose.Spherical.Phi, 1e-12)
	assert.InDelta(t, 0, pose.Spherical.Theta, 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 1}, pose.Position, 1e-12)
	assert.Equal(t, Settled, cc.State())
}

func TestSetLookAtAnimatedLeavesCurrentUntilUpdate(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.SetLookAt(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{}, true))

	assert.Equal(t, Transitioning, cc.State())
	assert.InDelta(t, 5, cc.Distance(), 1e-12)
	assert.InDelta(t, math.Pi/2, cc.GoalPose().Spherical.Theta, 1e-12)
	assert.InDelta(t, 3, cc.GoalPose().Spherical.Radius, 1e-12)

	settle(t, cc)
	assertVec3InDelta(t, mgl64.Vec3{3, 0, 0}, cc.Pose().Position, 1e-4)
}

func TestSetLookAtRejectsNaN(t *testing.T) {
	cc, _ := newTestControls(t)
	before := cc.Snapshot()
	err := cc.SetLookAt(mgl64.Vec3{math.NaN(), 0, 0}, mgl64.Vec3{}, false)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, before, cc.Snapshot())
}

func TestDollyToClampsToMaxDistance(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.SetDistanceRange(1, 100))

	require.NoError(t, cc.DollyTo(500, false))
	assert.Equal(t, 100.0, cc.Distance())

	require.NoError(t, cc.DollyTo(0.01, false))
	assert.Equal(t, 1.0, cc.Distance())
}

func TestDollyPerspectiveChangesRadius(t *testing.T) {
	cc, cam := newTestControls(t)
	require.NoError(t, cc.Dolly(1, false))
	assert.InDelta(t, 4, cc.Distance(), 1e-12)
	assert.Equal(t, 1.0, cam.Zoom())
}

func TestDollyOrthographicChangesZoom(t *testing.T) {
	cc, cam := newOrthoTestControls(t)
	require.NoError(t, cc.Dolly(1, false))

	assert.InDelta(t, 5, cc.Distance(), 1e-12)
	assert.InDelta(t, 1.25, cc.Pose().Zoom, 1e-12)

	require.True(t, cc.Update(frame))
	assert.InDelta(t, 1.25, cam.Zoom(), 1e-12)
}

func TestZoomAndZoomTo(t *testing.T) {
	cc, cam := newTestControls(t)
	require.NoError(t, cc.SetZoomRange(0.5, 3))

	require.NoError(t, cc.ZoomTo(2, false))
	assert.Equal(t, 2.0, cc.Pose().Zoom)
	require.NoError(t, cc.Zoom(5, false))
	assert.Equal(t, 3.0, cc.Pose().Zoom)

	fovBefore := cam.EffectiveFov()
	require.True(t, cc.Update(frame))
	assert.Less(t, cam.EffectiveFov(), fovBefore)
}

func TestRotateToRespectsPolarAndAzimuthRange(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.SetAzimuthRange(-math.Pi/4, math.Pi/4))
	require.NoError(t, cc.SetPolarRange(math.Pi/4, math.Pi/2))

	require.NoError(t, cc.RotateTo(1, 3, false))
	assert.InDelta(t, math.Pi/4, cc.AzimuthAngle(), 1e-12)
	assert.InDelta(t, math.Pi/2, cc.PolarAngle(), 1e-12)

	require.NoError(t, cc.RotatePolarTo(0, false))
	assert.InDelta(t, math.Pi/4, cc.PolarAngle(), 1e-12)

	require.NoError(t, cc.RotateAzimuthTo(-2, false))
	assert.InDelta(t, -math.Pi/4, cc.AzimuthAngle(), 1e-12)
}

func TestRotatePolarStaysOffPoles(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.Rotate(0, -10, false))
	assert.Greater(t, cc.PolarAngle(), 0.0)
	require.NoError(t, cc.Rotate(0, 20, false))
	assert.Less(t, cc.PolarAngle(), math.Pi)
}

func TestTruckMovesTargetAlongCameraAxes(t *testing.T) {
	cc, _ := newTestControls(t)

	require.NoError(t, cc.Truck(1, 0, false))
	assertVec3InDelta(t, mgl64.Vec3{1, 0, 0}, cc.Pose().Target, 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{1, 0, 5}, cc.Pose().Position, 1e-12)

	require.NoError(t, cc.Truck(0, 2, false))
	assertVec3InDelta(t, mgl64.Vec3{1, 2, 0}, cc.Pose().Target, 1e-12)
	assert.InDelta(t, 5, cc.Distance(), 1e-12)
}

func TestForwardAndElevate(t *testing.T) {
	cc, _ := newTestControls(t)

	require.NoError(t, cc.Forward(2, false))
	assertVec3InDelta(t, mgl64.Vec3{0, 0, -2}, cc.Pose().Target, 1e-12)

	require.NoError(t, cc.Elevate(3, false))
	assertVec3InDelta(t, mgl64.Vec3{0, 3, -2}, cc.Pose().Target, 1e-12)
	assert.InDelta(t, 5, cc.Distance(), 1e-12)
}

func TestMoveToKeepsSpherical(t *testing.T) {
	cc, _ := newTestControls(t)
	before := cc.Pose().Spherical

	require.NoError(t, cc.MoveTo(mgl64.Vec3{1, 2, 3}, false))
	assert.Equal(t, before, cc.Pose().Spherical)
	assertVec3InDelta(t, mgl64.Vec3{1, 2, 8}, cc.Pose().Position, 1e-12)
}

func TestSetTargetKeepsCameraPosition(t *testing.T) {
	cc, _ := newTestControls(t)

	require.NoError(t, cc.SetTarget(mgl64.Vec3{1, 0, 0}, false))
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, cc.Pose().Target)
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 5}, cc.Pose().Position, 1e-12)
}

func TestSetPositionKeepsTarget(t *testing.T) {
	cc, _ := newTestControls(t, WithTarget(1, 1, 1))

	require.NoError(t, cc.SetPosition(mgl64.Vec3{1, 4, 1}, false))
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, cc.Pose().Target)
	assert.InDelta(t, 3, cc.Distance(), 1e-12)
	assert.InDelta(t, 0, cc.PolarAngle(), 1e-5)
}

func TestLerpLookAt(t *testing.T) {
	cc, _ := newTestControls(t)
	a := mgl64.Vec3{0, 0, 2}
	b := mgl64.Vec3{4, 0, 0}

	require.NoError(t, cc.LerpLookAt(a, mgl64.Vec3{}, b, mgl64.Vec3{}, 0.5, false))
	pose := cc.Pose()
	assert.InDelta(t, 3, pose.Spherical.Radius, 1e-12)
	assert.InDelta(t, math.Pi/4, pose.Spherical.Theta, 1e-12)

	require.NoError(t, cc.LerpLookAt(a, mgl64.Vec3{}, b, mgl64.Vec3{2, 0, 0}, 1, false))
	assertVec3InDelta(t, mgl64.Vec3{4, 0, 0}, cc.Pose().Position, 1e-12)
}

func TestLerpLookAtNamesFirstInvalidArgument(t *testing.T) {
	cc, _ := newTestControls(t)
	nan := math.NaN()
	bad := mgl64.Vec3{nan, 0, 0}

	for range 20 {
		err := cc.LerpLookAt(bad, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, bad, 0.5, true)
		require.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "lerp look at: positionA")
	}
}

func TestSetFocalOffsetShiftsCameraOnly(t *testing.T) {
	cc, cam := newTestControls(t)
	require.NoError(t, cc.SetFocalOffset(mgl64.Vec3{1, 0.5, 0}, false))
	require.True(t, cc.Update(frame))

	assertVec3InDelta(t, mgl64.Vec3{1, 0.5, 5}, cam.Position(), 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 5}, cc.Pose().Position, 1e-12)
	assert.Equal(t, mgl64.Vec3{}, cc.Pose().Target)

	// the shifted camera still looks straight down -Z
	forward := cam.Orientation().Rotate(mgl64.Vec3{0, 0, -1})
	assertVec3InDelta(t, mgl64.Vec3{0, 0, -1}, forward, 1e-12)
}

func TestSetOrbitPointKeepsCameraInPlace(t *testing.T) {
	cc, cam := newTestControls(t)
	require.NoError(t, cc.RotateTo(0.4, 1.1, false))
	require.True(t, cc.Apply())
	position := cam.Position()
	forward := cam.Orientation().Rotate(mgl64.Vec3{0, 0, -1})

	point := mgl64.Vec3{1, 0.5, -2}
	require.NoError(t, cc.SetOrbitPoint(point))
	require.True(t, cc.Update(frame))

	assert.Equal(t, point, cc.Pose().Target)
	assert.InDelta(t, point.Sub(position).Len(), cc.Distance(), 1e-9)
	assertVec3InDelta(t, position, cam.Position(), 1e-9)
	assertVec3InDelta(t, forward, cam.Orientation().Rotate(mgl64.Vec3{0, 0, -1}), 1e-9)
}

func TestNormalizeRotations(t *testing.T) {
	cc, _ := newTestControls(t)
	require.NoError(t, cc.Rotate(4*math.Pi+0.5, 0, false))
	require.NoError(t, cc.Rotate(0.25, 0, true))

	cc.NormalizeRotations()
	rec := cc.Snapshot()
	assert.InDelta(t, 0.5, rec.Spherical[2], 1e-9, "committed azimuth moved by whole turns")
	assert.InDelta(t, 0.75, cc.GoalPose().Spherical.Theta, 1e-9)
	assert.Equal(t, Transitioning, cc.State())
}

func TestSaveStateAndReset(t *testing.T) {
	cc, _ := newTestControls(t)
	initial := cc.Pose()

	require.NoError(t, cc.Rotate(1, 0.3, false))
	require.NoError(t, cc.MoveTo(mgl64.Vec3{3, 2, 1}, false))
	require.NoError(t, cc.ZoomTo(2, false))
	require.NoError(t, cc.Reset(false))

	pose := cc.Pose()
	assert.InDelta(t, initial.Spherical.Radius, pose.Spherical.Radius, 1e-12)
	assert.InDelta(t, initial.Spherical.Phi, pose.Spherical.Phi, 1e-12)
	assert.InDelta(t, initial.Spherical.Theta, pose.Spherical.Theta, 1e-12)
	assert.Equal(t, initial.Target, pose.Target)
	assert.Equal(t, 1.0, pose.Zoom)

	require.NoError(t, cc.DollyTo(2, false))
	cc.SaveState()
	require.NoError(t, cc.DollyTo(8, false))
	require.NoError(t, cc.Reset(true))
	settle(t, cc)
	assert.InDelta(t, 2, cc.Distance(), 1e-4)
}

func TestActionsRejectNonFiniteArguments(t *testing.T) {
	cc, _ := newTestControls(t)
	nan := math.NaN()
	inf := math.Inf(1)
	before := cc.Snapshot()

	errs := []error{
		cc.Rotate(nan, 0, true),
		cc.RotateTo(0, inf, true),
		cc.Dolly(nan, true),
		cc.DollyTo(inf, true),
		cc.Zoom(nan, true),
		cc.ZoomTo(inf, true),
		cc.Truck(nan, 0, true),
		cc.Forward(inf, true),
		cc.Elevate(nan, true),
		cc.MoveTo(mgl64.Vec3{nan, 0, 0}, true),
		cc.SetFocalOffset(mgl64.Vec3{0, inf, 0}, true),
		cc.SetOrbitPoint(mgl64.Vec3{0, 0, nan}),
		cc.LerpLookAt(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, nan, true),
		cc.RotateInput(nan, 0),
		cc.TruckInput(0, inf),
		cc.DollyInput(nan, 0, 0),
	}
	for i, err := range errs {
		assert.ErrorIs(t, err, ErrInvalidValue, "call %d", i)
	}
	assert.Equal(t, before, cc.Snapshot())
	assert.Equal(t, Settled, cc.State())
}

func TestConstraintsHoldAfterRandomActions(t *testing.T) {
	cc, _ := newTestControls(t)
	c := DefaultConstraints()
	c.MinDistance, c.MaxDistance = 2, 20
	c.MinZoom, c.MaxZoom = 0.5, 3
	c.MinPolarAngle, c.MaxPolarAngle = 0.3, 2.5
	c.MinAzimuthAngle, c.MaxAzimuthAngle = -1, 1
	require.NoError(t, cc.SetConstraints(c))

	rng := rand.New(rand.NewPCG(1, 2))
	r := func() float64 { return rng.Float64()*40 - 20 }
	for i := 0; i < 500; i++ {
		animated := rng.IntN(2) == 0
		switch rng.IntN(6) {
		case 0:
			require.NoError(t, cc.Rotate(r(), r(), animated))
		case 1:
			require.NoError(t, cc.Dolly(r(), animated))
		case 2:
			require.NoError(t, cc.ZoomTo(r(), animated))
		case 3:
			require.NoError(t, cc.SetLookAt(mgl64.Vec3{r(), r(), r()}, mgl64.Vec3{r(), r(), r()}, animated))
		case 4:
			require.NoError(t, cc.DollyInput(r(), 0, 0))
		case 5:
			cc.Update(rng.Float64() * 0.1)
		}

		for _, pose := range []Pose{cc.Pose(), cc.GoalPose()} {
			s := pose.Spherical
			assert.GreaterOrEqual(t, s.Radius, c.MinDistance)
			assert.LessOrEqual(t, s.Radius, c.MaxDistance)
			assert.GreaterOrEqual(t, s.Phi, c.MinPolarAngle)
			assert.LessOrEqual(t, s.Phi, c.MaxPolarAngle)
			assert.GreaterOrEqual(t, s.Theta, c.MinAzimuthAngle-1e-9)
			assert.LessOrEqual(t, s.Theta, c.MaxAzimuthAngle+1e-9)
			assert.GreaterOrEqual(t, pose.Zoom, c.MinZoom)
			assert.LessOrEqual(t, pose.Zoom, c.MaxZoom)
		}
	}
}
