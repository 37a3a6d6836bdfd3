package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

func (cc *controlsImpl) FitToBox(box common.Box3, animated bool, options FitOptions) error {
	return cc.act("fit to box", func() error {
		if err := validateBox(box); err != nil {
			return err
		}
		if err := validateFinite("padding", options.PaddingLeft, options.PaddingRight, options.PaddingBottom, options.PaddingTop); err != nil {
			return err
		}

		// look along the nearest axis-aligned direction
		goal := cc.goalSpherical()
		goal.Theta = common.RoundToStep(goal.Theta, math.Pi/2)
		goal.Phi = common.RoundToStep(goal.Phi, math.Pi/2)
		goal = cc.constraints.ClampSpherical(goal)
		cc.setSphericalGoal(goal, animated)

		// box bounds in the goal view's right/up/back frame
		right, up, back := common.LookAtBasis(cc.positionFor(goal, mgl64.Vec3{}), mgl64.Vec3{}, cc.cameraUp())
		view := common.EmptyBox3()
		for _, corner := range box.Corners() {
			view = view.ExpandByPoint(mgl64.Vec3{corner.Dot(right), corner.Dot(up), corner.Dot(back)})
		}
		view.Min[0] -= options.PaddingLeft
		view.Min[1] -= options.PaddingBottom
		view.Max[0] += options.PaddingRight
		view.Max[1] += options.PaddingTop

		size := view.Size()
		c := view.Center()
		center := right.Mul(c[0]).Add(up.Mul(c[1])).Add(back.Mul(c[2]))

		if lens, ok := cc.isOrthographic(); ok {
			left, r, top, bottom := lens.Bounds()
			cc.moveTo(center, animated)
			if zoom, ok := fitZoom(r-left, top-bottom, size[0], size[1], options.Cover); ok {
				cc.zoomTo(zoom, animated)
			}
		} else {
			distance, err := cc.distanceToFitBox(size[0], size[1], size[2], options.Cover)
			if err != nil {
				return err
			}
			cc.moveTo(center, animated)
			cc.dollyTo(distance, animated)
		}
		cc.focalOffset.setGoal(mgl64.Vec3{}, animated)
		return nil
	})
}

func (cc *controlsImpl) FitToSphere(sphere common.Sphere, animated bool) error {
	return cc.act("fit to sphere", func() error {
		if err := validateVec3("sphere center", sphere.Center); err != nil {
			return err
		}
		if err := validateNonNegative("sphere radius", sphere.Radius); err != nil {
			return err
		}

		if lens, ok := cc.isOrthographic(); ok {
			left, right, top, bottom := lens.Bounds()
			diameter := 2 * sphere.Radius
			cc.moveTo(sphere.Center, animated)
			if zoom, ok := fitZoom(right-left, top-bottom, diameter, diameter, false); ok {
				cc.zoomTo(zoom, animated)
			}
		} else {
			distance, err := cc.distanceToFitSphere(sphere.Radius)
			if err != nil {
				return err
			}
			cc.moveTo(sphere.Center, animated)
			cc.dollyTo(distance, animated)
		}
		cc.focalOffset.setGoal(mgl64.Vec3{}, animated)
		return nil
	})
}

func (cc *controlsImpl) GetDistanceToFitBox(width, height, depth float64, cover bool) (float64, error) {
	if cc.disposed {
		return 0, ErrDisposed
	}
	if err := validateFinite("box size", width, height, depth); err != nil {
		return 0, err
	}
	return cc.distanceToFitBox(width, height, depth, cover)
}

func (cc *controlsImpl) GetDistanceToFitSphere(radius float64) (float64, error) {
	if cc.disposed {
		return 0, ErrDisposed
	}
	if err := validateNonNegative("sphere radius", radius); err != nil {
		return 0, err
	}
	return cc.distanceToFitSphere(radius)
}

// distanceToFitBox returns the radius at which a view-aligned box of the given size fills the
// view: its front face touches the frustum on the limiting axis.
func (cc *controlsImpl) distanceToFitBox(width, height, depth float64, cover bool) (float64, error) {
	lens, ok := cc.isPerspective()
	if !ok {
		return 0, ErrNotPerspective
	}
	boxAspect := width / height
	aspect := lens.Aspect()
	fov := lens.EffectiveFov()

	heightToFit := width / aspect
	if (cover && boxAspect > aspect) || (!cover && boxAspect < aspect) {
		heightToFit = height
	}
	return heightToFit*0.5/math.Tan(fov*0.5) + depth*0.5, nil
}

// distanceToFitSphere returns the radius at which a sphere touches the narrower pair of
// frustum planes.
func (cc *controlsImpl) distanceToFitSphere(radius float64) (float64, error) {
	lens, ok := cc.isPerspective()
	if !ok {
		return 0, ErrNotPerspective
	}
	aspect := lens.Aspect()
	vFov := lens.EffectiveFov()
	fov := vFov
	if aspect < 1 {
		fov = 2 * math.Atan(math.Tan(vFov*0.5)*aspect)
	}
	return radius / math.Sin(fov*0.5), nil
}

// fitZoom returns the orthographic zoom that fits (or covers) a sizeX by sizeY area into a
// viewWidth by viewHeight view volume. Zero-sized axes do not constrain the result.
func fitZoom(viewWidth, viewHeight, sizeX, sizeY float64, cover bool) (float64, bool) {
	var zooms []float64
	if sizeX > 0 {
		zooms = append(zooms, viewWidth/sizeX)
	}
	if sizeY > 0 {
		zooms = append(zooms, viewHeight/sizeY)
	}
	if len(zooms) == 0 {
		return 0, false
	}
	zoom := zooms[0]
	for _, z := range zooms[1:] {
		if cover {
			zoom = math.Max(zoom, z)
		} else {
			zoom = math.Min(zoom, z)
		}
	}
	return zoom, true
}

func validateBox(box common.Box3) error {
	if err := validateVec3("box min", box.Min); err != nil {
		return err
	}
	if err := validateVec3("box max", box.Max); err != nil {
		return err
	}
	if box.IsEmpty() {
		return errors.Wrap(ErrInvalidValue, "box is empty")
	}
	return nil
}
