package controls

import (
	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/Carmen-Shannon/oxycam/engine/state"
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a snapshot of the orbit pose, either the committed (current) values or the goal.
type Pose struct {
	Target      mgl64.Vec3
	Position    mgl64.Vec3
	Spherical   common.Spherical
	Zoom        float64
	FocalOffset mgl64.Vec3
}

// FitOptions tunes FitToBox.
type FitOptions struct {
	// Cover fills the view with the box instead of fitting the whole box inside it.
	Cover bool

	PaddingLeft   float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingTop    float64
}

// CameraControls drives a camera around a target point with damped transitions.
// Actions write goal values; Update advances the committed values toward the goals and
// writes the result to the camera. Every action takes an animated flag: false commits the
// goal immediately, and the change reaches the camera on the next Update or Apply.
//
// CameraControls is not safe for concurrent use. Drive each instance from one goroutine.
type CameraControls interface {
	// --- lifecycle and configuration ---

	// Camera returns the controlled camera, or nil after Dispose.
	Camera() camera.Camera

	// Enabled reports whether Update advances transitions and writes the camera.
	Enabled() bool

	// SetEnabled turns the controls on or off. Goals set while disabled are kept and
	// applied once the controls are enabled again.
	SetEnabled(enabled bool)

	// Constraints returns a copy of the active constraints.
	Constraints() Constraints

	// SetConstraints validates and replaces all constraints, then re-clamps the pose.
	//
	// Parameters:
	//   - constraints: the new constraints
	//
	// Returns:
	//   - error: ErrInvalidRange or ErrInvalidValue if the constraints are rejected
	SetConstraints(constraints Constraints) error

	// SetDistanceRange sets the orbit radius range.
	SetDistanceRange(min, max float64) error

	// SetZoomRange sets the zoom factor range.
	SetZoomRange(min, max float64) error

	// SetPolarRange sets the polar angle range, within [0, π].
	SetPolarRange(min, max float64) error

	// SetAzimuthRange sets the azimuth range. Use ±Inf for unbounded.
	SetAzimuthRange(min, max float64) error

	// Smoothing returns the damping times.
	Smoothing() Smoothing

	// SetSmoothing validates and replaces the damping times.
	SetSmoothing(smoothing Smoothing) error

	// DollySpeed returns the dolly input multiplier.
	DollySpeed() float64

	// SetDollySpeed sets the dolly input multiplier. Must be finite.
	SetDollySpeed(speed float64) error

	// TruckSpeed returns the truck input multiplier.
	TruckSpeed() float64

	// SetTruckSpeed sets the truck input multiplier. Must be finite.
	SetTruckSpeed(speed float64) error

	// DollyToCursor reports whether DollyInput keeps the point under the cursor fixed.
	DollyToCursor() bool

	// SetDollyToCursor toggles dolly-to-cursor.
	SetDollyToCursor(enabled bool)

	// SetRotateSpeed sets the azimuth and polar input multipliers used by RotateInput.
	SetRotateSpeed(azimuth, polar float64) error

	// SetViewport sets the viewport size in pixels used to scale pointer input.
	SetViewport(width, height float64) error

	// Boundary returns the target boundary, or nil when the target is unbounded.
	Boundary() *common.Box3

	// SetBoundary restricts the target goal to box. A nil box removes the restriction.
	SetBoundary(box *common.Box3)

	// UpdateCameraUp re-reads the camera's up vector and rebuilds the orbit space.
	// Call after changing the camera's up vector.
	UpdateCameraUp()

	// SetUpdateCallback registers a function called every time the camera is written.
	SetUpdateCallback(callback func())

	// SetRestCallback registers a function called when every transition has settled.
	SetRestCallback(callback func())

	// SetTransitionStartCallback registers a function called when an action starts a
	// transition while the controls were at rest.
	SetTransitionStartCallback(callback func())

	// Dispose detaches the camera and drops callbacks. Later actions return ErrDisposed.
	Dispose()

	// --- readers ---

	// Pose returns the committed pose. The azimuth is wrapped into (-π, π].
	Pose() Pose

	// GoalPose returns the goal pose. The azimuth is wrapped into (-π, π].
	GoalPose() Pose

	// AzimuthAngle returns the committed azimuth in (-π, π].
	AzimuthAngle() float64

	// PolarAngle returns the committed polar angle.
	PolarAngle() float64

	// Distance returns the committed orbit radius.
	Distance() float64

	// State reports Transitioning while any quantity is still moving.
	State() TransitionState

	// Dragging reports whether a drag gesture is active.
	Dragging() bool

	// --- actions ---

	// Rotate adds to the azimuth and polar goals.
	Rotate(azimuth, polar float64, animated bool) error

	// RotateTo sets the azimuth and polar goals.
	RotateTo(azimuth, polar float64, animated bool) error

	// RotateAzimuthTo sets the azimuth goal.
	RotateAzimuthTo(azimuth float64, animated bool) error

	// RotatePolarTo sets the polar goal.
	RotatePolarTo(polar float64, animated bool) error

	// Dolly moves the camera toward (positive) or away from the target.
	// Orthographic cameras zoom by the equivalent factor instead.
	Dolly(distance float64, animated bool) error

	// DollyTo sets the orbit radius goal.
	DollyTo(distance float64, animated bool) error

	// Zoom adds to the zoom goal.
	Zoom(delta float64, animated bool) error

	// ZoomTo sets the zoom goal.
	ZoomTo(zoom float64, animated bool) error

	// Truck slides target and camera along the camera's right (x) and up (y) axes.
	Truck(x, y float64, animated bool) error

	// Forward slides target and camera along the view direction projected onto the ground plane.
	Forward(distance float64, animated bool) error

	// Elevate slides target and camera along the camera up vector.
	Elevate(height float64, animated bool) error

	// SetLookAt places the camera at position looking at target.
	SetLookAt(position, target mgl64.Vec3, animated bool) error

	// LerpLookAt interpolates between two look-at poses in spherical space.
	LerpLookAt(positionA, targetA, positionB, targetB mgl64.Vec3, t float64, animated bool) error

	// SetPosition moves the camera, keeping the target goal.
	SetPosition(position mgl64.Vec3, animated bool) error

	// SetTarget moves the target, keeping the camera position.
	SetTarget(target mgl64.Vec3, animated bool) error

	// MoveTo moves the target, keeping the spherical offset so the camera follows.
	MoveTo(target mgl64.Vec3, animated bool) error

	// SetFocalOffset shifts the camera in its own right/up/back axes without changing the orbit.
	SetFocalOffset(offset mgl64.Vec3, animated bool) error

	// SetOrbitPoint makes point the new orbit center without moving the camera on screen.
	SetOrbitPoint(point mgl64.Vec3) error

	// FitToBox frames box, snapping the view to the nearest axis-aligned angle.
	FitToBox(box common.Box3, animated bool, options FitOptions) error

	// FitToSphere frames sphere.
	FitToSphere(sphere common.Sphere, animated bool) error

	// GetDistanceToFitBox returns the radius that frames a box of the given view-aligned size.
	// Requires a perspective camera.
	GetDistanceToFitBox(width, height, depth float64, cover bool) (float64, error)

	// GetDistanceToFitSphere returns the radius that frames a sphere. Requires a perspective camera.
	GetDistanceToFitSphere(radius float64) (float64, error)

	// NormalizeRotations wraps the azimuth goal into (-π, π] and shifts the committed
	// azimuth by the same number of turns.
	NormalizeRotations()

	// SaveState remembers the goal pose for Reset.
	SaveState()

	// Reset returns to the pose remembered by SaveState, or the initial pose.
	Reset(animated bool) error

	// --- input adapters ---

	// RotateInput rotates from a pointer drag delta in pixels.
	RotateInput(dx, dy float64) error

	// DollyInput dollies (or zooms orthographic cameras) from a wheel delta.
	// Positive delta moves in. ndcX and ndcY locate the cursor in [-1, 1] for dolly-to-cursor.
	DollyInput(delta, ndcX, ndcY float64) error

	// TruckInput trucks from a pointer drag delta in pixels so the scene follows the cursor.
	TruckInput(dx, dy float64) error

	// BeginDrag switches damping to the dragging smooth time.
	BeginDrag()

	// EndDrag switches damping back to the regular smooth time.
	EndDrag()

	// --- frame loop ---

	// Update advances every transition by dt seconds and writes the camera if anything changed.
	// dt == 0 is a no-op. A negative or non-finite dt is ignored and logged.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - bool: true if the camera was written
	Update(dt float64) bool

	// Apply writes the committed pose to the camera without advancing transitions.
	//
	// Returns:
	//   - bool: false if the controls are disabled or disposed
	Apply() bool

	// --- serialization ---

	// Snapshot captures configuration and committed pose as a state record.
	Snapshot() state.Record

	// Restore validates rec and applies it atomically. On error nothing changes.
	Restore(rec state.Record, animated bool) error

	// Serialize encodes Snapshot in the given format.
	Serialize(format state.Format) ([]byte, error)

	// Deserialize decodes data and applies it like Restore.
	Deserialize(data []byte, format state.Format, animated bool) error
}
