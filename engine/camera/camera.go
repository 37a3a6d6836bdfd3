package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
)

// ProjectionType identifies how a camera projects the scene.
type ProjectionType int

const (
	// ProjectionPerspective is a pinhole projection; apparent size shrinks with distance.
	ProjectionPerspective ProjectionType = iota
	// ProjectionOrthographic is a parallel projection; apparent size depends only on zoom.
	ProjectionOrthographic
)

func (p ProjectionType) String() string {
	switch p {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

// Camera defines the capability set the camera controls depend on.
// A camera owns its pose (position, orientation) and projection parameters,
// and computes view/projection matrices from them.
// Concrete cameras also implement either PerspectiveLens or OrthographicLens.
type Camera interface {
	// Projection returns the projection kind of the camera.
	//
	// Returns:
	//   - ProjectionType: perspective or orthographic
	Projection() ProjectionType

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space camera position
	Position() mgl64.Vec3

	// SetPosition sets the camera's world-space position and recomputes the view matrix.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position mgl64.Vec3)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl64.Vec3: up vector
	Up() mgl64.Vec3

	// SetUp sets the camera's up vector used by LookAt.
	//
	// Parameters:
	//   - up: up vector (need not be unit length)
	SetUp(up mgl64.Vec3)

	// Orientation returns the camera's world-space rotation. The camera looks down its local -Z.
	//
	// Returns:
	//   - mgl64.Quat: world-space orientation
	Orientation() mgl64.Quat

	// SetOrientation sets the camera's world-space rotation and recomputes the view matrix.
	//
	// Parameters:
	//   - orientation: world-space orientation
	SetOrientation(orientation mgl64.Quat)

	// LookAt rotates the camera so it faces target, keeping its up vector.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl64.Vec3)

	// Zoom returns the zoom factor. 1 means no zoom.
	//
	// Returns:
	//   - float64: zoom factor
	Zoom() float64

	// SetZoom sets the zoom factor. The projection matrix is refreshed by UpdateProjectionMatrix.
	//
	// Parameters:
	//   - zoom: zoom factor (> 0)
	SetZoom(zoom float64)

	// Near returns the near clipping plane distance.
	Near() float64

	// Far returns the far clipping plane distance.
	Far() float64

	// UpdateProjectionMatrix recomputes the projection matrix from the lens parameters and zoom.
	UpdateProjectionMatrix()

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl64.Mat4
}

// PerspectiveLens is implemented by perspective cameras.
type PerspectiveLens interface {
	Camera

	// Fov returns the vertical field of view in radians, before zoom.
	Fov() float64

	// EffectiveFov returns the vertical field of view in radians after zoom is applied.
	EffectiveFov() float64

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float64)

	// Aspect returns the aspect ratio (width / height).
	Aspect() float64

	// SetAspect sets the aspect ratio (width / height).
	SetAspect(aspect float64)
}

// OrthographicLens is implemented by orthographic cameras.
type OrthographicLens interface {
	Camera

	// Bounds returns the view volume extents in view space, before zoom.
	//
	// Returns:
	//   - left, right, top, bottom: view volume extents
	Bounds() (left, right, top, bottom float64)

	// SetBounds sets the view volume extents in view space.
	//
	// Parameters:
	//   - left, right, top, bottom: view volume extents
	SetBounds(left, right, top, bottom float64)
}

// cameraImpl holds the state shared by both projection kinds.
type cameraImpl struct {
	mu *sync.Mutex

	projection ProjectionType

	position    mgl64.Vec3
	orientation mgl64.Quat
	up          mgl64.Vec3
	zoom        float64

	// perspective lens
	fov    float64
	aspect float64

	// orthographic lens
	left, right, top, bottom float64

	near float64
	far  float64

	viewMatrix       mgl64.Mat4
	projectionMatrix mgl64.Mat4
}

func newCameraImpl(projection ProjectionType) *cameraImpl {
	return &cameraImpl{
		mu:          &sync.Mutex{},
		projection:  projection,
		position:    mgl64.Vec3{0, 0, 0},
		orientation: mgl64.QuatIdent(),
		up:          mgl64.Vec3{0, 1, 0},
		zoom:        1,
		fov:         45.0 * (math.Pi / 180.0), // radians
		aspect:      1.0,
		left:        -1,
		right:       1,
		top:         1,
		bottom:      -1,
		near:        0.1,
		far:         2000.0,
		viewMatrix:  mgl64.Ident4(),
	}
}

func (c *cameraImpl) Projection() ProjectionType {
	return c.projection
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateViewMatrix()
}

func (c *cameraImpl) Up() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) Orientation() mgl64.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) SetOrientation(orientation mgl64.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = orientation.Normalize()
	c.updateViewMatrix()
}

func (c *cameraImpl) LookAt(target mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = common.LookAtRotation(c.position, target, c.up)
	c.updateViewMatrix()
}

func (c *cameraImpl) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
}

func (c *cameraImpl) Near() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjectionMatrix()
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.viewMatrix)
}

// updateViewMatrix recalculates the view matrix from position and orientation.
// Caller must hold the mutex.
func (c *cameraImpl) updateViewMatrix() {
	c.viewMatrix = common.ViewFromPose(c.position, c.orientation)
}

// updateProjectionMatrix recalculates the projection matrix for the camera's lens and zoom.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjectionMatrix() {
	switch c.projection {
	case ProjectionOrthographic:
		dx := (c.right - c.left) / (2 * c.zoom)
		dy := (c.top - c.bottom) / (2 * c.zoom)
		cx := (c.right + c.left) / 2
		cy := (c.top + c.bottom) / 2
		c.projectionMatrix = common.Orthographic(cx-dx, cx+dx, cy-dy, cy+dy, c.near, c.far)
	default:
		c.projectionMatrix = common.Perspective(c.effectiveFov(), c.aspect, c.near, c.far)
	}
}

// effectiveFov returns the zoom-adjusted vertical field of view.
// Caller must hold the mutex.
func (c *cameraImpl) effectiveFov() float64 {
	return 2 * math.Atan(math.Tan(c.fov*0.5)/c.zoom)
}
