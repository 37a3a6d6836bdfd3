package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// act runs an action and handles what every action shares: the disposed check,
// the pending camera write and the transition-start callback.
func (cc *controlsImpl) act(name string, fn func() error) error {
	if cc.disposed {
		return errors.Wrap(ErrDisposed, name)
	}
	if err := fn(); err != nil {
		return errors.Wrap(err, name)
	}
	cc.needsApply = true
	if !cc.active && cc.transitioning() {
		cc.active = true
		cc.logger.Debug().Str("action", name).Msg("transition started")
		if cc.onTransitionStart != nil {
			cc.onTransitionStart()
		}
	}
	return nil
}

// --- rotation ---

func (cc *controlsImpl) Rotate(azimuth, polar float64, animated bool) error {
	return cc.act("rotate", func() error {
		if err := validateFinite("angle", azimuth, polar); err != nil {
			return err
		}
		goal := cc.goalSpherical()
		goal.Theta += azimuth
		goal.Phi += polar
		cc.setSphericalGoal(cc.constraints.ClampSpherical(goal), animated)
		return nil
	})
}

func (cc *controlsImpl) RotateTo(azimuth, polar float64, animated bool) error {
	return cc.act("rotate to", func() error {
		if err := validateFinite("angle", azimuth, polar); err != nil {
			return err
		}
		goal := cc.goalSpherical()
		goal.Theta = azimuth
		goal.Phi = polar
		cc.setSphericalGoal(cc.constraints.ClampSpherical(goal), animated)
		return nil
	})
}

func (cc *controlsImpl) RotateAzimuthTo(azimuth float64, animated bool) error {
	return cc.RotateTo(azimuth, cc.phi.goal, animated)
}

func (cc *controlsImpl) RotatePolarTo(polar float64, animated bool) error {
	return cc.RotateTo(cc.theta.goal, polar, animated)
}

func (cc *controlsImpl) NormalizeRotations() {
	wrapped := common.NormalizeAngle(cc.theta.goal)
	cc.theta.shift(wrapped - cc.theta.goal)
	cc.theta.goal = wrapped
}

// --- dolly and zoom ---

func (cc *controlsImpl) Dolly(distance float64, animated bool) error {
	return cc.act("dolly", func() error {
		if err := validateFinite("distance", distance); err != nil {
			return err
		}
		if _, ok := cc.isOrthographic(); ok {
			// same apparent scale change a perspective camera would see
			r := cc.radius.goal
			remaining := math.Max(r-distance, minimumRadius)
			cc.zoomTo(cc.zoom.goal*r/remaining, animated)
			return nil
		}
		cc.dollyTo(cc.radius.goal-distance, animated)
		return nil
	})
}

func (cc *controlsImpl) DollyTo(distance float64, animated bool) error {
	return cc.act("dolly to", func() error {
		if err := validateFinite("distance", distance); err != nil {
			return err
		}
		cc.dollyTo(distance, animated)
		return nil
	})
}

func (cc *controlsImpl) dollyTo(distance float64, animated bool) {
	goal := cc.goalSpherical()
	goal.Radius = distance
	cc.setSphericalGoal(cc.constraints.ClampSpherical(goal), animated)
}

func (cc *controlsImpl) Zoom(delta float64, animated bool) error {
	return cc.act("zoom", func() error {
		if err := validateFinite("zoom delta", delta); err != nil {
			return err
		}
		cc.zoomTo(cc.zoom.goal+delta, animated)
		return nil
	})
}

func (cc *controlsImpl) ZoomTo(zoom float64, animated bool) error {
	return cc.act("zoom to", func() error {
		if err := validateFinite("zoom", zoom); err != nil {
			return err
		}
		cc.zoomTo(zoom, animated)
		return nil
	})
}

func (cc *controlsImpl) zoomTo(zoom float64, animated bool) {
	cc.zoom.setGoal(cc.constraints.ClampZoom(zoom), animated)
}

// --- translation ---

func (cc *controlsImpl) Truck(x, y float64, animated bool) error {
	return cc.act("truck", func() error {
		if err := validateFinite("truck", x, y); err != nil {
			return err
		}
		right, up, _ := cc.currentAxes()
		cc.moveTo(cc.target.goal.Add(right.Mul(x)).Add(up.Mul(y)), animated)
		return nil
	})
}

func (cc *controlsImpl) Forward(distance float64, animated bool) error {
	return cc.act("forward", func() error {
		if err := validateFinite("distance", distance); err != nil {
			return err
		}
		right, _, _ := cc.currentAxes()
		forward := cc.cameraUp().Cross(right)
		if forward.Len() < 1e-12 {
			cc.logger.Debug().Msg("forward direction is degenerate; skipping")
			return nil
		}
		cc.moveTo(cc.target.goal.Add(forward.Normalize().Mul(distance)), animated)
		return nil
	})
}

func (cc *controlsImpl) Elevate(height float64, animated bool) error {
	return cc.act("elevate", func() error {
		if err := validateFinite("height", height); err != nil {
			return err
		}
		up := cc.cameraUp()
		if up.Len() < 1e-12 {
			return nil
		}
		cc.moveTo(cc.target.goal.Add(up.Normalize().Mul(height)), animated)
		return nil
	})
}

func (cc *controlsImpl) MoveTo(target mgl64.Vec3, animated bool) error {
	return cc.act("move to", func() error {
		if err := validateVec3("target", target); err != nil {
			return err
		}
		cc.moveTo(target, animated)
		return nil
	})
}

func (cc *controlsImpl) moveTo(target mgl64.Vec3, animated bool) {
	cc.target.setGoal(cc.clampTarget(target), animated)
}

// --- look-at ---

func (cc *controlsImpl) SetLookAt(position, target mgl64.Vec3, animated bool) error {
	return cc.act("set look at", func() error {
		if err := validateVec3("position", position); err != nil {
			return err
		}
		if err := validateVec3("target", target); err != nil {
			return err
		}
		cc.setLookAt(position, target, animated)
		return nil
	})
}

func (cc *controlsImpl) setLookAt(position, target mgl64.Vec3, animated bool) {
	target = cc.clampTarget(target)
	s := cc.sphericalFor(position, target)
	if s.Radius == 0 {
		cc.logger.Debug().Msg("look-at position equals target; keeping orientation")
		s = cc.goalSpherical()
		s.Radius = 0
	}
	cc.target.setGoal(target, animated)
	cc.setSphericalGoalShortest(cc.constraints.ClampSpherical(s), animated)
}

// setSphericalGoalShortest assigns a goal whose azimuth came from a direction rather than an
// accumulated rotation, moving the committed azimuth by whole turns so the transition is short.
func (cc *controlsImpl) setSphericalGoalShortest(s common.Spherical, animated bool) {
	cc.theta.current = common.NearestEquivalentAngle(cc.theta.current, s.Theta)
	cc.setSphericalGoal(s, animated)
}

func (cc *controlsImpl) LerpLookAt(positionA, targetA, positionB, targetB mgl64.Vec3, t float64, animated bool) error {
	return cc.act("lerp look at", func() error {
		for _, arg := range []struct {
			name string
			v    mgl64.Vec3
		}{
			{"positionA", positionA},
			{"targetA", targetA},
			{"positionB", positionB},
			{"targetB", targetB},
		} {
			if err := validateVec3(arg.name, arg.v); err != nil {
				return err
			}
		}
		if err := validateFinite("t", t); err != nil {
			return err
		}

		a := cc.sphericalFor(positionA, targetA)
		b := cc.sphericalFor(positionB, targetB)
		dTheta := common.NormalizeAngle(b.Theta - a.Theta)
		s := common.NewSpherical(
			a.Radius+(b.Radius-a.Radius)*t,
			a.Phi+(b.Phi-a.Phi)*t,
			a.Theta+dTheta*t,
		)
		target := targetA.Add(targetB.Sub(targetA).Mul(t))

		cc.moveTo(target, animated)
		cc.setSphericalGoalShortest(cc.constraints.ClampSpherical(s), animated)
		return nil
	})
}

func (cc *controlsImpl) SetPosition(position mgl64.Vec3, animated bool) error {
	return cc.act("set position", func() error {
		if err := validateVec3("position", position); err != nil {
			return err
		}
		cc.setLookAt(position, cc.target.goal, animated)
		return nil
	})
}

func (cc *controlsImpl) SetTarget(target mgl64.Vec3, animated bool) error {
	return cc.act("set target", func() error {
		if err := validateVec3("target", target); err != nil {
			return err
		}
		cc.setLookAt(cc.goalPosition(), target, animated)
		return nil
	})
}

func (cc *controlsImpl) SetFocalOffset(offset mgl64.Vec3, animated bool) error {
	return cc.act("set focal offset", func() error {
		if err := validateVec3("focal offset", offset); err != nil {
			return err
		}
		cc.focalOffset.setGoal(offset, animated)
		return nil
	})
}

func (cc *controlsImpl) SetOrbitPoint(point mgl64.Vec3) error {
	return cc.act("set orbit point", func() error {
		if err := validateVec3("orbit point", point); err != nil {
			return err
		}

		// world position of the camera as last applied, focal offset included
		right, up, back := cc.currentAxes()
		f := cc.focalOffset.current
		eye := cc.currentPosition().
			Add(right.Mul(f[0])).
			Add(up.Mul(f[1])).
			Add(back.Mul(f[2]))

		target := cc.clampTarget(point)
		s := cc.currentSpherical()
		s.Radius = target.Sub(eye).Len()
		s = cc.constraints.ClampSpherical(s)

		// the view direction depends only on the angles, so the axes are unchanged
		shift := eye.Sub(cc.positionFor(s, target))
		cc.target.goal = target
		cc.target.snap()
		cc.commitSpherical(s)
		cc.focalOffset.goal = mgl64.Vec3{shift.Dot(right), shift.Dot(up), shift.Dot(back)}
		cc.focalOffset.snap()
		return nil
	})
}

// --- saved state ---

func (cc *controlsImpl) SaveState() {
	cc.saved = savedPose{
		target:      cc.target.goal,
		spherical:   cc.goalSpherical(),
		zoom:        cc.zoom.goal,
		focalOffset: cc.focalOffset.goal,
	}
}

func (cc *controlsImpl) Reset(animated bool) error {
	return cc.act("reset", func() error {
		cc.moveTo(cc.saved.target, animated)
		cc.setSphericalGoalShortest(cc.constraints.ClampSpherical(cc.saved.spherical), animated)
		cc.zoomTo(cc.saved.zoom, animated)
		cc.focalOffset.setGoal(cc.saved.focalOffset, animated)
		return nil
	})
}
