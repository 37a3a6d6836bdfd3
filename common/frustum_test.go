package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestFrustumContainsPoint(t *testing.T) {
	view := LookAt(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	f := ExtractFrustumFromMatrix(Perspective(math.Pi/2, 1, 1, 10).Mul4(view))

	for _, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Len(), 1e-12)
	}

	assert.True(t, f.ContainsPoint(mgl64.Vec3{}, 0))
	assert.True(t, f.ContainsPoint(mgl64.Vec3{3, 3, 0}, 0))
	assert.False(t, f.ContainsPoint(mgl64.Vec3{6, 0, 0}, 0))
	assert.False(t, f.ContainsPoint(mgl64.Vec3{0, 0, 4.5}, 0), "before near")
	assert.False(t, f.ContainsPoint(mgl64.Vec3{0, 0, -6}, 0), "past far")
	assert.True(t, f.ContainsPoint(mgl64.Vec3{0, 0, -5.5}, 1), "within tolerance")
}

func TestFrustumOrthographic(t *testing.T) {
	view := LookAt(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	f := ExtractFrustumFromMatrix(Orthographic(-2, 2, -1, 1, 0.1, 100).Mul4(view))

	assert.InDelta(t, 2, f.Planes[FrustumRight].DistanceToPoint(mgl64.Vec3{}), 1e-12)
	assert.InDelta(t, 1, f.Planes[FrustumTop].DistanceToPoint(mgl64.Vec3{}), 1e-12)
	assert.True(t, f.ContainsPoint(mgl64.Vec3{1.9, 0.9, -50}, 0))
	assert.False(t, f.ContainsPoint(mgl64.Vec3{2.1, 0, 0}, 0))
}
