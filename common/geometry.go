package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line starting at Origin and extending along the unit vector Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Box3 is an axis-aligned bounding box. A box with Min > Max on any axis is empty.
type Box3 struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewRay creates a ray and normalizes its direction.
// A zero direction is kept as zero; intersection tests then report no hit.
//
// Parameters:
//   - origin: ray start point
//   - direction: ray direction (need not be unit length)
//
// Returns:
//   - Ray: the ray
func NewRay(origin, direction mgl64.Vec3) Ray {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayFromNDC builds a picking ray from normalized device coordinates.
// ndcX and ndcY are in [-1, 1] with +Y up. The matrices follow the WebGPU depth
// convention used by Perspective and Orthographic (clip z in [0, 1]).
// For perspective projections the ray starts at the eye; for orthographic ones it
// starts on the near plane and runs parallel to the view axis.
//
// Parameters:
//   - ndcX, ndcY: the screen position in normalized device coordinates
//   - view: the camera view matrix
//   - projection: the camera projection matrix
//
// Returns:
//   - Ray: the world-space ray
//   - bool: false if the view-projection matrix is singular
func RayFromNDC(ndcX, ndcY float64, view, projection mgl64.Mat4) (Ray, bool) {
	viewProj := projection.Mul4(view)
	if viewProj.Det() == 0 {
		return Ray{}, false
	}
	inv := viewProj.Inv()

	near, okNear := unprojectNDC(inv, mgl64.Vec3{ndcX, ndcY, 0})
	far, okFar := unprojectNDC(inv, mgl64.Vec3{ndcX, ndcY, 1})
	if !okNear || !okFar {
		return Ray{}, false
	}
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return Ray{}, false
	}
	return NewRay(near, dir), true
}

// unprojectNDC maps a point in clip space back to world space.
func unprojectNDC(invViewProj mgl64.Mat4, ndc mgl64.Vec3) (mgl64.Vec3, bool) {
	p := invViewProj.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), ndc.Z(), 1})
	if p.W() == 0 {
		return mgl64.Vec3{}, false
	}
	return p.Vec3().Mul(1 / p.W()), true
}

// IntersectPlane returns the point where the ray meets the plane.
// Rays parallel to the plane, or whose hit lies behind the origin, report false.
//
// Parameters:
//   - p: the plane (Normal must be unit length)
//
// Returns:
//   - mgl64.Vec3: the intersection point
//   - bool: true if the ray hits the plane
func (r Ray) IntersectPlane(p Plane) (mgl64.Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < 1e-12 {
		return mgl64.Vec3{}, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Distance) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectSphere returns the nearest point where the ray enters the sphere.
// If the origin is inside the sphere the exit point is returned.
//
// Parameters:
//   - s: the sphere
//
// Returns:
//   - mgl64.Vec3: the intersection point
//   - bool: true if the ray hits the sphere
func (r Ray) IntersectSphere(s Sphere) (mgl64.Vec3, bool) {
	toCenter := s.Center.Sub(r.Origin)
	tca := toCenter.Dot(r.Direction)
	d2 := toCenter.Dot(toCenter) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return mgl64.Vec3{}, false
	}
	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t1 < 0 {
		return mgl64.Vec3{}, false
	}
	if t0 < 0 {
		return r.At(t1), true
	}
	return r.At(t0), true
}

// NewPlaneFromNormalAndPoint creates the plane with the given normal passing through point.
// The normal is normalized; a zero normal produces the zero plane.
func NewPlaneFromNormalAndPoint(normal, point mgl64.Vec3) Plane {
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	return Plane{Normal: normal, Distance: -point.Dot(normal)}
}

// DistanceToPoint returns the signed distance from the plane to point.
func (p Plane) DistanceToPoint(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// NewBox3 creates a box from two corners in any order.
func NewBox3(a, b mgl64.Vec3) Box3 {
	return Box3{
		Min: mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// EmptyBox3 returns a box that contains nothing and grows to fit the first point added.
func EmptyBox3() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box has Min > Max on any axis.
func (b Box3) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandByPoint returns the smallest box containing b and point.
func (b Box3) ExpandByPoint(point mgl64.Vec3) Box3 {
	for i := range 3 {
		b.Min[i] = math.Min(b.Min[i], point[i])
		b.Max[i] = math.Max(b.Max[i], point[i])
	}
	return b
}

// Center returns the center of the box.
func (b Box3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box3) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box.
func (b Box3) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// ClampPoint returns point clamped to lie inside the box.
func (b Box3) ClampPoint(point mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(point[0], b.Min[0], b.Max[0]),
		mgl64.Clamp(point[1], b.Min[1], b.Max[1]),
		mgl64.Clamp(point[2], b.Min[2], b.Max[2]),
	}
}

// ContainsPoint reports whether point lies inside or on the box.
func (b Box3) ContainsPoint(point mgl64.Vec3) bool {
	for i := range 3 {
		if point[i] < b.Min[i] || point[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// BoundingSphere returns the sphere centered on the box that touches its corners.
func (b Box3) BoundingSphere() Sphere {
	if b.IsEmpty() {
		return Sphere{}
	}
	return Sphere{Center: b.Center(), Radius: b.Size().Len() * 0.5}
}
