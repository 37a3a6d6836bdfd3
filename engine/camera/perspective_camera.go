package camera

// perspectiveCamera is a Camera with a pinhole lens.
type perspectiveCamera struct {
	*cameraImpl
}

var _ PerspectiveLens = &perspectiveCamera{}

// NewPerspectiveCamera creates a new perspective camera at the origin looking down -Z.
// Defaults: 45° vertical fov, aspect 1, near 0.1, far 2000, zoom 1.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - PerspectiveLens: the newly created camera
func NewPerspectiveCamera(options ...CameraBuilderOption) PerspectiveLens {
	c := newCameraImpl(ProjectionPerspective)
	for _, option := range options {
		option(c)
	}
	c.updateViewMatrix()
	c.updateProjectionMatrix()
	return &perspectiveCamera{cameraImpl: c}
}

func (c *perspectiveCamera) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *perspectiveCamera) EffectiveFov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveFov()
}

func (c *perspectiveCamera) SetFov(fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjectionMatrix()
}

func (c *perspectiveCamera) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *perspectiveCamera) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjectionMatrix()
}
