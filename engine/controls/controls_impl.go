package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// controlsImpl is the single implementation of CameraControls.
// Every quantity of the pose has its own tracker holding current, goal and velocity.
// Actions only write goals (and, when not animated, commit them); Update moves the
// trackers and writes the committed pose to the camera.
type controlsImpl struct {
	camera camera.Camera
	logger zerolog.Logger

	enabled       bool
	dollyToCursor bool
	dollySpeed    float64
	truckSpeed    float64

	// input scaling, not persisted
	azimuthRotateSpeed float64
	polarRotateSpeed   float64
	viewportWidth      float64
	viewportHeight     float64

	constraints Constraints
	smoothing   Smoothing
	boundary    *common.Box3

	// orbit pose
	radius      scalarTracker
	phi         scalarTracker
	theta       scalarTracker
	target      vec3Tracker
	focalOffset vec3Tracker
	zoom        scalarTracker

	// rotation from camera-up space into +Y-up orbit space, and back
	upSpace        mgl64.Quat
	upSpaceInverse mgl64.Quat

	dragging   bool
	needsApply bool
	disposed   bool
	// active is the transition state last reported through the callbacks
	active bool

	saved savedPose

	onUpdate          func()
	onRest            func()
	onTransitionStart func()

	// initial values captured by the builder options, consumed by the constructor
	initialTarget mgl64.Vec3
}

// savedPose is the goal pose remembered by SaveState.
type savedPose struct {
	target      mgl64.Vec3
	spherical   common.Spherical
	zoom        float64
	focalOffset mgl64.Vec3
}

// Compile-time interface compliance check
var _ CameraControls = &controlsImpl{}

// NewCameraControls creates controls for cam. The initial orbit is derived from the camera's
// current position around the target (the origin unless WithTarget is given), clamped to the
// constraints and committed immediately.
//
// Parameters:
//   - cam: the camera to drive; it is referenced, not owned
//   - options: functional options to configure the controls
//
// Returns:
//   - CameraControls: the newly created controls
//   - error: ErrNilCamera, or a validation error from the options
func NewCameraControls(cam camera.Camera, options ...ControlsBuilderOption) (CameraControls, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}

	cc := &controlsImpl{
		camera:             cam,
		logger:             zerolog.Nop(),
		enabled:            true,
		dollySpeed:         1,
		truckSpeed:         2,
		azimuthRotateSpeed: 1,
		polarRotateSpeed:   1,
		viewportWidth:      1280,
		viewportHeight:     720,
		constraints:        DefaultConstraints(),
		smoothing:          DefaultSmoothing(),
	}

	for _, option := range options {
		option(cc)
	}

	if err := cc.constraints.Validate(); err != nil {
		return nil, err
	}
	if err := cc.smoothing.Validate(); err != nil {
		return nil, err
	}
	if err := validateFinite("dollySpeed", cc.dollySpeed); err != nil {
		return nil, err
	}
	if err := validateFinite("truckSpeed", cc.truckSpeed); err != nil {
		return nil, err
	}
	if err := validateFinite("rotateSpeed", cc.azimuthRotateSpeed, cc.polarRotateSpeed); err != nil {
		return nil, err
	}
	if err := validateViewport(cc.viewportWidth, cc.viewportHeight); err != nil {
		return nil, err
	}
	if err := validateVec3("target", cc.initialTarget); err != nil {
		return nil, err
	}

	cc.updateUpSpace()

	target := cc.clampTarget(cc.initialTarget)
	offset := cc.upSpace.Rotate(cam.Position().Sub(target))
	spherical := cc.constraints.ClampSpherical(common.SphericalFromVec3(offset))

	cc.target = newVec3Tracker(target)
	cc.radius = newScalarTracker(spherical.Radius)
	cc.phi = newScalarTracker(spherical.Phi)
	cc.theta = newScalarTracker(spherical.Theta)
	cc.zoom = newScalarTracker(cc.constraints.ClampZoom(cam.Zoom()))
	cc.focalOffset = newVec3Tracker(mgl64.Vec3{})
	cc.needsApply = true
	cc.SaveState()

	cc.logger.Debug().
		Str("projection", cam.Projection().String()).
		Float64("radius", spherical.Radius).
		Float64("phi", spherical.Phi).
		Float64("theta", spherical.Theta).
		Msg("camera controls created")

	return cc, nil
}

func validateViewport(width, height float64) error {
	if err := validateFinite("viewport", width, height); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidValue, "viewport %vx%v must be positive", width, height)
	}
	return nil
}

// --- lifecycle and configuration ---

func (cc *controlsImpl) Camera() camera.Camera {
	return cc.camera
}

func (cc *controlsImpl) Enabled() bool {
	return cc.enabled
}

func (cc *controlsImpl) SetEnabled(enabled bool) {
	if cc.enabled == enabled {
		return
	}
	cc.enabled = enabled
	if enabled {
		cc.needsApply = true
	} else {
		cc.dragging = false
	}
	cc.logger.Debug().Bool("enabled", enabled).Msg("camera controls toggled")
}

func (cc *controlsImpl) Constraints() Constraints {
	return cc.constraints
}

func (cc *controlsImpl) SetConstraints(constraints Constraints) error {
	if err := constraints.Validate(); err != nil {
		return err
	}
	cc.constraints = constraints
	cc.reclamp()
	return nil
}

func (cc *controlsImpl) SetDistanceRange(min, max float64) error {
	c := cc.constraints
	c.MinDistance, c.MaxDistance = min, max
	return cc.SetConstraints(c)
}

func (cc *controlsImpl) SetZoomRange(min, max float64) error {
	c := cc.constraints
	c.MinZoom, c.MaxZoom = min, max
	return cc.SetConstraints(c)
}

func (cc *controlsImpl) SetPolarRange(min, max float64) error {
	c := cc.constraints
	c.MinPolarAngle, c.MaxPolarAngle = min, max
	return cc.SetConstraints(c)
}

func (cc *controlsImpl) SetAzimuthRange(min, max float64) error {
	c := cc.constraints
	c.MinAzimuthAngle, c.MaxAzimuthAngle = min, max
	return cc.SetConstraints(c)
}

// reclamp forces current and goal back inside the constraints after they change.
func (cc *controlsImpl) reclamp() {
	goal := cc.constraints.ClampSpherical(cc.goalSpherical())
	current := cc.constraints.ClampSpherical(cc.currentSpherical())
	cc.commitSpherical(current)
	cc.setSphericalGoal(goal, true)

	cc.zoom.current = cc.constraints.ClampZoom(cc.zoom.current)
	cc.zoom.setGoal(cc.constraints.ClampZoom(cc.zoom.goal), true)
	cc.needsApply = true
}

func (cc *controlsImpl) Smoothing() Smoothing {
	return cc.smoothing
}

func (cc *controlsImpl) SetSmoothing(smoothing Smoothing) error {
	if err := smoothing.Validate(); err != nil {
		return err
	}
	cc.smoothing = smoothing
	return nil
}

func (cc *controlsImpl) DollySpeed() float64 {
	return cc.dollySpeed
}

func (cc *controlsImpl) SetDollySpeed(speed float64) error {
	if err := validateFinite("dollySpeed", speed); err != nil {
		return err
	}
	cc.dollySpeed = speed
	return nil
}

func (cc *controlsImpl) TruckSpeed() float64 {
	return cc.truckSpeed
}

func (cc *controlsImpl) SetTruckSpeed(speed float64) error {
	if err := validateFinite("truckSpeed", speed); err != nil {
		return err
	}
	cc.truckSpeed = speed
	return nil
}

func (cc *controlsImpl) DollyToCursor() bool {
	return cc.dollyToCursor
}

func (cc *controlsImpl) SetDollyToCursor(enabled bool) {
	cc.dollyToCursor = enabled
}

func (cc *controlsImpl) SetRotateSpeed(azimuth, polar float64) error {
	if err := validateFinite("rotateSpeed", azimuth, polar); err != nil {
		return err
	}
	cc.azimuthRotateSpeed, cc.polarRotateSpeed = azimuth, polar
	return nil
}

func (cc *controlsImpl) SetViewport(width, height float64) error {
	if err := validateViewport(width, height); err != nil {
		return err
	}
	cc.viewportWidth, cc.viewportHeight = width, height
	return nil
}

func (cc *controlsImpl) Boundary() *common.Box3 {
	if cc.boundary == nil {
		return nil
	}
	b := *cc.boundary
	return &b
}

func (cc *controlsImpl) SetBoundary(box *common.Box3) {
	if box == nil {
		cc.boundary = nil
		return
	}
	b := *box
	cc.boundary = &b
	cc.target.current = b.ClampPoint(cc.target.current)
	cc.target.setGoal(b.ClampPoint(cc.target.goal), true)
	cc.needsApply = true
}

func (cc *controlsImpl) UpdateCameraUp() {
	if cc.camera == nil {
		return
	}
	position := cc.currentPosition()
	goalPosition := cc.goalPosition()
	cc.updateUpSpace()

	// keep the camera where it is under the new orbit space
	cc.commitSpherical(cc.constraints.ClampSpherical(cc.sphericalFor(position, cc.target.current)))
	cc.setSphericalGoal(cc.constraints.ClampSpherical(cc.sphericalFor(goalPosition, cc.target.goal)), true)
	cc.needsApply = true
}

func (cc *controlsImpl) updateUpSpace() {
	up := cc.camera.Up()
	if up.Len() < 1e-12 {
		cc.logger.Debug().Msg("camera up vector is zero; using +Y")
		up = mgl64.Vec3{0, 1, 0}
	}
	cc.upSpace = mgl64.QuatBetweenVectors(up.Normalize(), mgl64.Vec3{0, 1, 0})
	cc.upSpaceInverse = cc.upSpace.Inverse()
}

func (cc *controlsImpl) SetUpdateCallback(callback func()) {
	cc.onUpdate = callback
}

func (cc *controlsImpl) SetRestCallback(callback func()) {
	cc.onRest = callback
}

func (cc *controlsImpl) SetTransitionStartCallback(callback func()) {
	cc.onTransitionStart = callback
}

func (cc *controlsImpl) Dispose() {
	if cc.disposed {
		return
	}
	cc.disposed = true
	cc.camera = nil
	cc.onUpdate = nil
	cc.onRest = nil
	cc.onTransitionStart = nil
	cc.logger.Debug().Msg("camera controls disposed")
}

// --- readers ---

func (cc *controlsImpl) Pose() Pose {
	return Pose{
		Target:      cc.target.current,
		Position:    cc.currentPosition(),
		Spherical:   cc.currentSpherical().Normalized(),
		Zoom:        cc.zoom.current,
		FocalOffset: cc.focalOffset.current,
	}
}

func (cc *controlsImpl) GoalPose() Pose {
	return Pose{
		Target:      cc.target.goal,
		Position:    cc.goalPosition(),
		Spherical:   cc.goalSpherical().Normalized(),
		Zoom:        cc.zoom.goal,
		FocalOffset: cc.focalOffset.goal,
	}
}

func (cc *controlsImpl) AzimuthAngle() float64 {
	return common.NormalizeAngle(cc.theta.current)
}

func (cc *controlsImpl) PolarAngle() float64 {
	return cc.phi.current
}

func (cc *controlsImpl) Distance() float64 {
	return cc.radius.current
}

func (cc *controlsImpl) State() TransitionState {
	if cc.transitioning() {
		return Transitioning
	}
	return Settled
}

func (cc *controlsImpl) Dragging() bool {
	return cc.dragging
}

// --- internal helpers ---

func (cc *controlsImpl) transitioning() bool {
	return cc.radius.state == Transitioning ||
		cc.phi.state == Transitioning ||
		cc.theta.state == Transitioning ||
		cc.target.state == Transitioning ||
		cc.focalOffset.state == Transitioning ||
		cc.zoom.state == Transitioning
}

func (cc *controlsImpl) currentSpherical() common.Spherical {
	return common.NewSpherical(cc.radius.current, cc.phi.current, cc.theta.current)
}

func (cc *controlsImpl) goalSpherical() common.Spherical {
	return common.NewSpherical(cc.radius.goal, cc.phi.goal, cc.theta.goal)
}

// positionFor converts an orbit-space spherical offset around target into a world position.
func (cc *controlsImpl) positionFor(s common.Spherical, target mgl64.Vec3) mgl64.Vec3 {
	return target.Add(cc.upSpaceInverse.Rotate(s.Vec3()))
}

// sphericalFor converts a world position around target into orbit-space spherical coordinates.
func (cc *controlsImpl) sphericalFor(position, target mgl64.Vec3) common.Spherical {
	return common.SphericalFromVec3(cc.upSpace.Rotate(position.Sub(target)))
}

func (cc *controlsImpl) currentPosition() mgl64.Vec3 {
	return cc.positionFor(cc.currentSpherical(), cc.target.current)
}

func (cc *controlsImpl) goalPosition() mgl64.Vec3 {
	return cc.positionFor(cc.goalSpherical(), cc.target.goal)
}

// cameraUp returns the camera's up vector, or +Y once the camera is detached.
func (cc *controlsImpl) cameraUp() mgl64.Vec3 {
	if cc.camera == nil {
		return mgl64.Vec3{0, 1, 0}
	}
	return cc.camera.Up()
}

// currentAxes returns the right, up and back axes of the committed orbit pose.
func (cc *controlsImpl) currentAxes() (right, up, back mgl64.Vec3) {
	return common.LookAtBasis(cc.currentPosition(), cc.target.current, cc.cameraUp())
}

// goalAxes returns the right, up and back axes of the goal orbit pose.
func (cc *controlsImpl) goalAxes() (right, up, back mgl64.Vec3) {
	return common.LookAtBasis(cc.goalPosition(), cc.target.goal, cc.cameraUp())
}

func (cc *controlsImpl) clampTarget(target mgl64.Vec3) mgl64.Vec3 {
	if cc.boundary == nil {
		return target
	}
	return cc.boundary.ClampPoint(target)
}

// commitSpherical overwrites current and goal, ending any orbit transition.
func (cc *controlsImpl) commitSpherical(s common.Spherical) {
	cc.radius.goal, cc.phi.goal, cc.theta.goal = s.Radius, s.Phi, s.Theta
	cc.radius.snap()
	cc.phi.snap()
	cc.theta.snap()
}

// setSphericalGoal assigns an already clamped spherical goal.
// With finite azimuth bounds the goal azimuth is wrapped, so the committed azimuth is moved by
// whole turns to stay next to it and the camera takes the short way round.
func (cc *controlsImpl) setSphericalGoal(s common.Spherical, animated bool) bool {
	if cc.constraints.azimuthBounded() {
		cc.theta.current = common.NearestEquivalentAngle(cc.theta.current, s.Theta)
	}
	started := cc.radius.setGoal(s.Radius, animated)
	started = cc.phi.setGoal(s.Phi, animated) || started
	started = cc.theta.setGoal(s.Theta, animated) || started
	return started
}

func (cc *controlsImpl) isPerspective() (camera.PerspectiveLens, bool) {
	lens, ok := cc.camera.(camera.PerspectiveLens)
	return lens, ok && cc.camera.Projection() == camera.ProjectionPerspective
}

func (cc *controlsImpl) isOrthographic() (camera.OrthographicLens, bool) {
	lens, ok := cc.camera.(camera.OrthographicLens)
	return lens, ok && cc.camera.Projection() == camera.ProjectionOrthographic
}

// radiusFloor is the smallest radius the constraints allow.
func (cc *controlsImpl) radiusFloor() float64 {
	return math.Max(cc.constraints.MinDistance, minimumRadius)
}
