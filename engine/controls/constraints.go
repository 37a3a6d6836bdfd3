package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// minimumRadius keeps the orbit radius strictly positive even when MinDistance is 0.
const minimumRadius = 1e-6

// minimumZoom keeps the zoom factor strictly positive even when MinZoom is 0.
const minimumZoom = 1e-6

// Constraints bounds the goal pose. Infinite bounds mean unconstrained.
// Use Validate before handing a hand-built value to the controls.
type Constraints struct {
	MinDistance     float64
	MaxDistance     float64
	MinZoom         float64
	MaxZoom         float64
	MinPolarAngle   float64
	MaxPolarAngle   float64
	MinAzimuthAngle float64
	MaxAzimuthAngle float64
}

// DefaultConstraints returns the unconstrained defaults: any distance, zoom in [0.01, +Inf),
// the full polar range and unbounded azimuth.
func DefaultConstraints() Constraints {
	return Constraints{
		MinDistance:     0,
		MaxDistance:     math.Inf(1),
		MinZoom:         0.01,
		MaxZoom:         math.Inf(1),
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		MinAzimuthAngle: math.Inf(-1),
		MaxAzimuthAngle: math.Inf(1),
	}
}

// Validate checks every range for NaN, inverted bounds and out-of-domain values.
//
// Returns:
//   - error: ErrInvalidValue or ErrInvalidRange wrapped with the offending field, or nil
func (c Constraints) Validate() error {
	if err := validateRange("distance", c.MinDistance, c.MaxDistance); err != nil {
		return err
	}
	if c.MinDistance < 0 || math.IsInf(c.MinDistance, 0) {
		return errors.Wrapf(ErrInvalidValue, "minDistance %v must be finite and >= 0", c.MinDistance)
	}
	if err := validateRange("zoom", c.MinZoom, c.MaxZoom); err != nil {
		return err
	}
	if c.MinZoom < 0 || math.IsInf(c.MinZoom, 0) {
		return errors.Wrapf(ErrInvalidValue, "minZoom %v must be finite and >= 0", c.MinZoom)
	}
	if err := validateRange("polar angle", c.MinPolarAngle, c.MaxPolarAngle); err != nil {
		return err
	}
	if c.MinPolarAngle < 0 || c.MaxPolarAngle > math.Pi {
		return errors.Wrapf(ErrInvalidValue, "polar range [%v, %v] must lie within [0, π]", c.MinPolarAngle, c.MaxPolarAngle)
	}
	return validateRange("azimuth angle", c.MinAzimuthAngle, c.MaxAzimuthAngle)
}

func validateRange(name string, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return errors.Wrapf(ErrInvalidValue, "%s range contains NaN", name)
	}
	if lo > hi {
		return errors.Wrapf(ErrInvalidRange, "%s min %v exceeds max %v", name, lo, hi)
	}
	return nil
}

// azimuthBounded reports whether both azimuth bounds are finite.
func (c Constraints) azimuthBounded() bool {
	return !math.IsInf(c.MinAzimuthAngle, 0) && !math.IsInf(c.MaxAzimuthAngle, 0)
}

// ClampSpherical clamps radius and polar angle to their ranges, then keeps the polar angle
// off the poles. Azimuth is wrapped into (-π, π] and clamped only when both bounds are finite;
// otherwise it is left unwrapped.
//
// Parameters:
//   - s: the proposed goal
//
// Returns:
//   - common.Spherical: the constrained goal
func (c Constraints) ClampSpherical(s common.Spherical) common.Spherical {
	s.Radius = math.Max(mgl64.Clamp(s.Radius, c.MinDistance, c.MaxDistance), minimumRadius)
	s.Phi = mgl64.Clamp(s.Phi, c.MinPolarAngle, c.MaxPolarAngle)
	if c.azimuthBounded() {
		s.Theta = mgl64.Clamp(common.NormalizeAngle(s.Theta), c.MinAzimuthAngle, c.MaxAzimuthAngle)
	}
	return s.MakeSafe()
}

// ClampZoom clamps a zoom factor to the zoom range.
func (c Constraints) ClampZoom(zoom float64) float64 {
	return math.Max(mgl64.Clamp(zoom, c.MinZoom, c.MaxZoom), minimumZoom)
}

// Smoothing holds the damping times in seconds. 0 means instant.
type Smoothing struct {
	SmoothTime         float64
	DraggingSmoothTime float64
}

// DefaultSmoothing returns 0.25s for programmatic moves and 0.125s while dragging.
func DefaultSmoothing() Smoothing {
	return Smoothing{SmoothTime: 0.25, DraggingSmoothTime: 0.125}
}

// Validate rejects negative or non-finite smoothing times.
func (s Smoothing) Validate() error {
	if err := validateNonNegative("smoothTime", s.SmoothTime); err != nil {
		return err
	}
	return validateNonNegative("draggingSmoothTime", s.DraggingSmoothTime)
}

func validateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errors.Wrapf(ErrInvalidValue, "%s %v must be finite and >= 0", name, v)
	}
	return nil
}

func validateFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidValue, "%s %v must be finite", name, v)
		}
	}
	return nil
}

func validateVec3(name string, v mgl64.Vec3) error {
	return validateFinite(name, v[0], v[1], v[2])
}
