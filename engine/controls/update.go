package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
)

func (cc *controlsImpl) Update(dt float64) bool {
	if cc.disposed || !cc.enabled || dt == 0 {
		return false
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		cc.logger.Warn().Float64("dt", dt).Msg("ignoring invalid update delta")
		return false
	}

	smoothTime := cc.smoothing.SmoothTime
	if cc.dragging {
		smoothTime = cc.smoothing.DraggingSmoothTime
	}

	moved := cc.radius.step(smoothTime, dt)
	moved = cc.phi.step(smoothTime, dt) || moved
	moved = cc.theta.step(smoothTime, dt) || moved
	moved = cc.target.step(smoothTime, dt) || moved
	moved = cc.focalOffset.step(smoothTime, dt) || moved
	moved = cc.zoom.step(smoothTime, dt) || moved
	if moved {
		cc.clampCurrent()
	}

	changed := moved || cc.needsApply
	if changed {
		cc.applyPose()
	}

	if cc.active && !cc.transitioning() {
		cc.active = false
		cc.logger.Debug().Msg("camera at rest")
		if cc.onRest != nil {
			cc.onRest()
		}
	}
	return changed
}

func (cc *controlsImpl) Apply() bool {
	if cc.disposed || !cc.enabled {
		return false
	}
	cc.applyPose()
	return true
}

// clampCurrent keeps committed values inside the constraints. A goal that changes direction
// mid-transition can otherwise carry the committed value briefly past a limit.
func (cc *controlsImpl) clampCurrent() {
	s := cc.constraints.ClampSpherical(cc.currentSpherical())
	cc.radius.current, cc.phi.current, cc.theta.current = s.Radius, s.Phi, s.Theta
	cc.zoom.current = cc.constraints.ClampZoom(cc.zoom.current)
}

// applyPose writes the committed pose to the camera: the orbit position around the target,
// shifted along the camera's own axes by the focal offset, facing the shifted target.
func (cc *controlsImpl) applyPose() {
	s := cc.currentSpherical().MakeSafe()
	target := cc.target.current
	position := cc.positionFor(s, target)
	lookAt := target

	if f := cc.focalOffset.current; f != (mgl64.Vec3{}) {
		right, up, back := common.LookAtBasis(position, target, cc.camera.Up())
		shift := right.Mul(f[0]).Add(up.Mul(f[1])).Add(back.Mul(f[2]))
		position = position.Add(shift)
		lookAt = lookAt.Add(shift)
	}

	cc.camera.SetPosition(position)
	cc.camera.LookAt(lookAt)
	if cc.camera.Zoom() != cc.zoom.current {
		cc.camera.SetZoom(cc.zoom.current)
		cc.camera.UpdateProjectionMatrix()
	}
	cc.needsApply = false

	if cc.onUpdate != nil {
		cc.onUpdate()
	}
}
