package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Constraints)
		want   error
	}{
		{name: "defaults", modify: func(c *Constraints) {}},
		{name: "inverted distance", modify: func(c *Constraints) { c.MinDistance, c.MaxDistance = 10, 1 }, want: ErrInvalidRange},
		{name: "negative distance", modify: func(c *Constraints) { c.MinDistance = -1 }, want: ErrInvalidValue},
		{name: "nan zoom", modify: func(c *Constraints) { c.MaxZoom = math.NaN() }, want: ErrInvalidValue},
		{name: "inverted zoom", modify: func(c *Constraints) { c.MinZoom, c.MaxZoom = 2, 1 }, want: ErrInvalidRange},
		{name: "polar beyond pi", modify: func(c *Constraints) { c.MaxPolarAngle = 4 }, want: ErrInvalidValue},
		{name: "inverted azimuth", modify: func(c *Constraints) { c.MinAzimuthAngle, c.MaxAzimuthAngle = 1, -1 }, want: ErrInvalidRange},
		{name: "finite azimuth", modify: func(c *Constraints) { c.MinAzimuthAngle, c.MaxAzimuthAngle = -1, 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConstraints()
			tt.modify(&c)
			err := c.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConstraintsClampSpherical(t *testing.T) {
	c := DefaultConstraints()
	c.MinDistance, c.MaxDistance = 1, 100
	c.MinPolarAngle, c.MaxPolarAngle = 0.5, 2
	c.MinAzimuthAngle, c.MaxAzimuthAngle = -math.Pi/4, math.Pi/4

	got := c.ClampSpherical(common.NewSpherical(500, 3, 2*math.Pi+0.1))
	assert.Equal(t, 100.0, got.Radius)
	assert.Equal(t, 2.0, got.Phi)
	assert.InDelta(t, 0.1, got.Theta, 1e-12, "azimuth is wrapped before clamping")

	got = c.ClampSpherical(common.NewSpherical(0.1, 0.1, -1))
	assert.Equal(t, 1.0, got.Radius)
	assert.Equal(t, 0.5, got.Phi)
	assert.Equal(t, -math.Pi/4, got.Theta)
}

func TestConstraintsClampSphericalUnboundedAzimuthStaysUnwrapped(t *testing.T) {
	got := DefaultConstraints().ClampSpherical(common.NewSpherical(1, math.Pi/2, 7*math.Pi))
	assert.Equal(t, 7*math.Pi, got.Theta)
}

func TestConstraintsClampSphericalKeepsOffPoles(t *testing.T) {
	c := DefaultConstraints()
	got := c.ClampSpherical(common.NewSpherical(0, 0, 0))
	assert.Equal(t, common.SphericalEpsilon, got.Phi)
	assert.Greater(t, got.Radius, 0.0)

	got = c.ClampSpherical(common.NewSpherical(1, math.Pi, 0))
	assert.Equal(t, math.Pi-common.SphericalEpsilon, got.Phi)
}

func TestConstraintsClampZoom(t *testing.T) {
	c := DefaultConstraints()
	c.MinZoom, c.MaxZoom = 0.5, 4
	assert.Equal(t, 0.5, c.ClampZoom(0.1))
	assert.Equal(t, 4.0, c.ClampZoom(10))
	assert.Equal(t, 2.0, c.ClampZoom(2))

	c.MinZoom = 0
	assert.Greater(t, c.ClampZoom(0), 0.0)
}

func TestSmoothingValidate(t *testing.T) {
	require.NoError(t, DefaultSmoothing().Validate())
	require.NoError(t, Smoothing{}.Validate())
	assert.ErrorIs(t, Smoothing{SmoothTime: -1}.Validate(), ErrInvalidValue)
	assert.ErrorIs(t, Smoothing{DraggingSmoothTime: math.Inf(1)}.Validate(), ErrInvalidValue)
}
