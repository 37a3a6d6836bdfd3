package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func project(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	clip := m.Mul4x1(p.Vec4(1))
	return clip.Vec3().Mul(1 / clip.W())
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(math.Pi/3, 1.5, 0.5, 50)
	assert.InDelta(t, 0, project(proj, mgl64.Vec3{0, 0, -0.5}).Z(), 1e-12)
	assert.InDelta(t, 1, project(proj, mgl64.Vec3{0, 0, -50}).Z(), 1e-12)

	// top edge of the view at distance 1
	top := math.Tan(math.Pi / 6)
	assert.InDelta(t, 1, project(proj, mgl64.Vec3{0, top, -1}).Y(), 1e-12)
	assert.InDelta(t, 1, project(proj, mgl64.Vec3{top * 1.5, 0, -1}).X(), 1e-12)
}

func TestOrthographicDepthRange(t *testing.T) {
	proj := Orthographic(-4, 2, -1, 3, 0.1, 10)
	assert.InDelta(t, 0, project(proj, mgl64.Vec3{0, 0, -0.1}).Z(), 1e-12)
	assert.InDelta(t, 1, project(proj, mgl64.Vec3{0, 0, -10}).Z(), 1e-12)
	assert.True(t, project(proj, mgl64.Vec3{-4, -1, -5}).Vec2().ApproxEqualThreshold(mgl64.Vec2{-1, -1}, 1e-12))
	assert.True(t, project(proj, mgl64.Vec3{2, 3, -5}).Vec2().ApproxEqualThreshold(mgl64.Vec2{1, 1}, 1e-12))
}

func TestLookAt(t *testing.T) {
	view := LookAt(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	got := view.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{0, 0, -5}, 1e-12))

	view = LookAt(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	got = view.Mul4x1(mgl64.Vec4{0, 1, 0, 1}).Vec3()
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{0, 1, -5}, 1e-12))
}

func TestLookAtBasisDegenerate(t *testing.T) {
	for _, eye := range []mgl64.Vec3{{0, 5, 0}, {0, -5, 0}, {}} {
		right, up, back := LookAtBasis(eye, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
		assert.InDelta(t, 1, right.Len(), 1e-12)
		assert.InDelta(t, 1, up.Len(), 1e-12)
		assert.InDelta(t, 1, back.Len(), 1e-12)
		assert.InDelta(t, 0, right.Dot(back), 1e-12)
		assert.InDelta(t, 0, up.Dot(back), 1e-12)
		assert.InDelta(t, 0, right.Dot(up), 1e-12)
	}
}

func TestViewFromPoseMatchesLookAt(t *testing.T) {
	eye := mgl64.Vec3{3, 4, -2}
	center := mgl64.Vec3{1, 0, 1}
	up := mgl64.Vec3{0, 1, 0}

	rotation := LookAtRotation(eye, center, up)
	got := ViewFromPose(eye, rotation)
	assert.True(t, got.ApproxEqualThreshold(LookAt(eye, center, up), 1e-9))

	// the camera looks down its local -Z
	forward := rotation.Rotate(mgl64.Vec3{0, 0, -1})
	assert.True(t, forward.ApproxEqualThreshold(center.Sub(eye).Normalize(), 1e-9))
}
