package controls

import (
	"testing"

	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func newTestControls(t *testing.T, options ...ControlsBuilderOption) (CameraControls, camera.PerspectiveLens) {
	t.Helper()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 5))
	cc, err := NewCameraControls(cam, options...)
	require.NoError(t, err)
	return cc, cam
}

func newOrthoTestControls(t *testing.T, options ...ControlsBuilderOption) (CameraControls, camera.OrthographicLens) {
	t.Helper()
	cam := camera.NewOrthographicCamera(camera.WithPosition(0, 0, 5))
	cc, err := NewCameraControls(cam, options...)
	require.NoError(t, err)
	return cc, cam
}

// settle steps the controls at 60 fps until every transition is done.
func settle(t *testing.T, cc CameraControls) {
	t.Helper()
	for i := 0; i < 10000 && cc.State() == Transitioning; i++ {
		cc.Update(frame)
	}
	require.Equal(t, Settled, cc.State(), "controls did not settle")
	cc.Update(frame)
}

func assertVec3InDelta(t *testing.T, want, got mgl64.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

// projectToNDC maps a world point through a view-projection matrix to normalized device coordinates.
func projectToNDC(viewProj mgl64.Mat4, p mgl64.Vec3) mgl64.Vec2 {
	clip := viewProj.Mul4x1(p.Vec4(1))
	return mgl64.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
}
