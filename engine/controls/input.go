package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// dollyStep is the radius (or inverse zoom) factor applied per unit of wheel delta.
const dollyStep = 0.95

func (cc *controlsImpl) BeginDrag() {
	if cc.disposed || !cc.enabled {
		return
	}
	cc.dragging = true
}

func (cc *controlsImpl) EndDrag() {
	cc.dragging = false
}

// RotateInput orbits so the scene follows the pointer: a drag across the full viewport
// height turns the camera by one revolution times the rotate speed.
func (cc *controlsImpl) RotateInput(dx, dy float64) error {
	if err := validateFinite("pointer delta", dx, dy); err != nil {
		return errors.Wrap(err, "rotate input")
	}
	azimuth := 2 * math.Pi * cc.azimuthRotateSpeed * dx / cc.viewportHeight
	polar := 2 * math.Pi * cc.polarRotateSpeed * dy / cc.viewportHeight
	return cc.Rotate(-azimuth, -polar, true)
}

// TruckInput pans so the point under the pointer moves with it. A truck speed of 2 tracks the
// pointer one to one at the target's depth.
func (cc *controlsImpl) TruckInput(dx, dy float64) error {
	if err := validateFinite("pointer delta", dx, dy); err != nil {
		return errors.Wrap(err, "truck input")
	}
	var x, y float64
	if lens, ok := cc.isOrthographic(); ok {
		left, right, top, bottom := lens.Bounds()
		zoom := cc.zoom.current
		x = 0.5 * cc.truckSpeed * dx * (right - left) / zoom / cc.viewportWidth
		y = 0.5 * cc.truckSpeed * dy * (top - bottom) / zoom / cc.viewportHeight
	} else {
		halfHeight := cc.radius.current * math.Tan(cc.effectiveFov()*0.5)
		x = cc.truckSpeed * dx * halfHeight / cc.viewportHeight
		y = cc.truckSpeed * dy * halfHeight / cc.viewportHeight
	}
	// pointer y grows downward
	return cc.Truck(-x, y, true)
}

// DollyInput moves in for positive delta. Perspective cameras scale the radius by 0.95^delta;
// orthographic cameras scale the zoom by 0.95^-delta. With dolly-to-cursor enabled the focal
// offset is shifted so the point under (ndcX, ndcY) stays put.
func (cc *controlsImpl) DollyInput(delta, ndcX, ndcY float64) error {
	return cc.act("dolly input", func() error {
		if err := validateFinite("dolly delta", delta, ndcX, ndcY); err != nil {
			return err
		}

		if _, ok := cc.isOrthographic(); ok {
			from := cc.zoom.goal
			to := cc.constraints.ClampZoom(from * math.Pow(dollyStep, -delta*cc.dollySpeed))
			if cc.dollyToCursor && to != from {
				cc.keepCursorPoint(ndcX, ndcY, from/to)
			}
			cc.zoomTo(to, true)
			return nil
		}

		from := cc.radius.goal
		goal := cc.goalSpherical()
		goal.Radius = from * math.Pow(dollyStep, delta*cc.dollySpeed)
		goal = cc.constraints.ClampSpherical(goal)
		if cc.dollyToCursor && goal.Radius != from {
			depth := from + cc.focalOffset.goal[2]
			if depth > 0 {
				cc.keepCursorPoint(ndcX, ndcY, (goal.Radius+cc.focalOffset.goal[2])/depth)
			}
		}
		cc.setSphericalGoal(goal, true)
		return nil
	})
}

// keepCursorPoint shifts the focal offset so the point under the cursor keeps its screen
// position after the apparent scale changes by ratio (new depth over old depth for perspective,
// old zoom over new zoom for orthographic).
// The cursor point is found on the plane through the look-at point facing the camera; when the
// ray misses it the focal offset is left alone.
func (cc *controlsImpl) keepCursorPoint(ndcX, ndcY, ratio float64) {
	right, up, back := cc.currentAxes()
	f := cc.focalOffset.current
	shift := right.Mul(f[0]).Add(up.Mul(f[1])).Add(back.Mul(f[2]))
	eye := cc.currentPosition().Add(shift)
	lookAt := cc.target.current.Add(shift)

	view := common.LookAt(eye, lookAt, cc.cameraUp())
	ray, ok := common.RayFromNDC(ndcX, ndcY, view, cc.camera.ProjectionMatrix())
	if !ok {
		cc.logger.Debug().Msg("dolly-to-cursor: cannot build cursor ray")
		return
	}
	hit, ok := ray.IntersectPlane(common.NewPlaneFromNormalAndPoint(back, lookAt))
	if !ok {
		cc.logger.Debug().Msg("dolly-to-cursor: cursor ray misses the target plane")
		return
	}

	rel := hit.Sub(cc.target.current)
	cx, cy := rel.Dot(right), rel.Dot(up)
	goal := cc.focalOffset.goal
	cc.focalOffset.setGoal(mgl64.Vec3{
		cx - (cx-goal[0])*ratio,
		cy - (cy-goal[1])*ratio,
		goal[2],
	}, true)
}

// effectiveFov returns the zoom-adjusted vertical field of view, or 0 for non-perspective cameras.
// Lens parameters are read on every call so external changes apply immediately.
func (cc *controlsImpl) effectiveFov() float64 {
	lens, ok := cc.isPerspective()
	if !ok {
		return 0
	}
	return lens.EffectiveFov()
}
