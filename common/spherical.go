package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphericalEpsilon is the margin kept between the polar angle and either pole.
// A polar angle of exactly 0 or π makes the look-at basis degenerate.
const SphericalEpsilon = 1e-6

// Spherical describes a point relative to an origin using radius, polar angle and azimuthal angle.
// Phi is measured from the +Y axis (0 = straight up, π = straight down).
// Theta is measured around +Y starting at +Z, and is not wrapped, so multi-revolution
// rotations stay representable.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// NewSpherical creates a Spherical from its three components.
//
// Parameters:
//   - radius: distance from the origin
//   - phi: polar angle in radians
//   - theta: azimuthal angle in radians
//
// Returns:
//   - Spherical: the spherical coordinate
func NewSpherical(radius, phi, theta float64) Spherical {
	return Spherical{Radius: radius, Phi: phi, Theta: theta}
}

// SphericalFromVec3 converts a Cartesian offset into spherical coordinates.
// A zero-length offset yields the zero Spherical instead of NaN angles.
//
// Parameters:
//   - v: Cartesian offset from the origin
//
// Returns:
//   - Spherical: the equivalent spherical coordinate
func SphericalFromVec3(v mgl64.Vec3) Spherical {
	radius := v.Len()
	if radius == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: radius,
		Phi:    math.Acos(mgl64.Clamp(v.Y()/radius, -1, 1)),
		Theta:  math.Atan2(v.X(), v.Z()),
	}
}

// Vec3 converts the spherical coordinate back into a Cartesian offset.
//
// Returns:
//   - mgl64.Vec3: the Cartesian offset from the origin
func (s Spherical) Vec3() mgl64.Vec3 {
	sinPhiRadius := math.Sin(s.Phi) * s.Radius
	return mgl64.Vec3{
		sinPhiRadius * math.Sin(s.Theta),
		math.Cos(s.Phi) * s.Radius,
		sinPhiRadius * math.Cos(s.Theta),
	}
}

// MakeSafe restricts Phi to [SphericalEpsilon, π-SphericalEpsilon].
//
// Returns:
//   - Spherical: a copy with a safe polar angle
func (s Spherical) MakeSafe() Spherical {
	s.Phi = mgl64.Clamp(s.Phi, SphericalEpsilon, math.Pi-SphericalEpsilon)
	return s
}

// Normalized returns a copy with Theta wrapped into (-π, π].
func (s Spherical) Normalized() Spherical {
	s.Theta = NormalizeAngle(s.Theta)
	return s
}

// ApproxEqual reports whether each component of s and o differ by less than threshold.
func (s Spherical) ApproxEqual(o Spherical, threshold float64) bool {
	return math.Abs(s.Radius-o.Radius) < threshold &&
		math.Abs(s.Phi-o.Phi) < threshold &&
		math.Abs(s.Theta-o.Theta) < threshold
}

// NormalizeAngle wraps an angle into (-π, π].
//
// Parameters:
//   - angle: any angle in radians
//
// Returns:
//   - float64: the equivalent angle in (-π, π]
func NormalizeAngle(angle float64) float64 {
	if math.IsInf(angle, 0) || math.IsNaN(angle) {
		return angle
	}
	a := math.Mod(angle, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// NearestEquivalentAngle shifts angle by whole turns so it lies within π of reference.
// Used to keep an unwrapped accumulator continuous after the goal is normalized.
func NearestEquivalentAngle(angle, reference float64) float64 {
	return angle + 2*math.Pi*math.Round((reference-angle)/(2*math.Pi))
}

// RoundToStep rounds value to the nearest multiple of step.
func RoundToStep(value, step float64) float64 {
	return math.Round(value/step) * step
}
