package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Perspective creates a right-handed perspective projection matrix.
// Uses the WebGPU clip space depth range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl64.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float64) mgl64.Mat4 {
	f := 1.0 / math.Tan(fovY/2.0)
	var out mgl64.Mat4

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
	return out
}

// Orthographic creates a right-handed orthographic projection matrix.
// Uses the WebGPU clip space depth range [0, 1].
//
// Parameters:
//   - left, right, bottom, top: view volume extents in view space
//   - near, far: clipping plane distances
//
// Returns:
//   - mgl64.Mat4: the projection matrix (column-major)
func Orthographic(left, right, bottom, top, near, far float64) mgl64.Mat4 {
	out := mgl64.Ident4()
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
	return out
}

// LookAtBasis computes the camera's world-space right, up and backward unit axes
// for a camera at eye looking at center.
// Falls back to the world axes when eye and center coincide, and picks a
// perpendicular right axis when the view direction is parallel to up.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - right, trueUp, back: orthonormal camera axes
func LookAtBasis(eye, center, up mgl64.Vec3) (right, trueUp, back mgl64.Vec3) {
	back = eye.Sub(center)
	if back.Len() == 0 {
		back = mgl64.Vec3{0, 0, 1}
	}
	back = back.Normalize()

	right = up.Cross(back)
	if right.Len() < 1e-12 {
		// view axis parallel to up: nudge with any perpendicular axis
		right = mgl64.Vec3{1, 0, 0}.Cross(back)
		if right.Len() < 1e-12 {
			right = mgl64.Vec3{0, 0, 1}.Cross(back)
		}
	}
	right = right.Normalize()
	trueUp = back.Cross(right)
	return right, trueUp, back
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl64.Mat4: the view matrix (column-major)
func LookAt(eye, center, up mgl64.Vec3) mgl64.Mat4 {
	x, y, z := LookAtBasis(eye, center, up)

	var out mgl64.Mat4
	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
	return out
}

// LookAtRotation returns the world-space orientation of a camera at eye looking at center.
// The camera looks down its local -Z axis with +Y up.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation
//
// Returns:
//   - mgl64.Quat: the camera orientation
func LookAtRotation(eye, center, up mgl64.Vec3) mgl64.Quat {
	x, y, z := LookAtBasis(eye, center, up)
	basis := mgl64.Mat3FromCols(x, y, z)
	return mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
}

// ViewFromPose builds a view matrix from a camera position and orientation.
func ViewFromPose(position mgl64.Vec3, orientation mgl64.Quat) mgl64.Mat4 {
	world := mgl64.Translate3D(position.X(), position.Y(), position.Z()).Mul4(orientation.Mat4())
	return world.Inv()
}
