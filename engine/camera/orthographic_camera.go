package camera

// orthographicCamera is a Camera with a parallel projection.
type orthographicCamera struct {
	*cameraImpl
}

var _ OrthographicLens = &orthographicCamera{}

// NewOrthographicCamera creates a new orthographic camera at the origin looking down -Z.
// Defaults: bounds [-1, 1] on both axes, near 0.1, far 2000, zoom 1.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - OrthographicLens: the newly created camera
func NewOrthographicCamera(options ...CameraBuilderOption) OrthographicLens {
	c := newCameraImpl(ProjectionOrthographic)
	for _, option := range options {
		option(c)
	}
	c.updateViewMatrix()
	c.updateProjectionMatrix()
	return &orthographicCamera{cameraImpl: c}
}

func (c *orthographicCamera) Bounds() (left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.top, c.bottom
}

func (c *orthographicCamera) SetBounds(left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.top, c.bottom = left, right, top, bottom
	c.updateProjectionMatrix()
}
