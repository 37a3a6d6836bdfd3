package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
)

// settleThreshold is the distance below which a transitioning quantity snaps to its goal.
const settleThreshold = 1e-5

// TransitionState reports whether a quantity is still approaching its goal.
type TransitionState int

const (
	// Settled means current equals goal and velocity is zero.
	Settled TransitionState = iota
	// Transitioning means current is still approaching goal.
	Transitioning
)

func (s TransitionState) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "settled"
}

// scalarTracker damps one float64 quantity toward its goal.
type scalarTracker struct {
	current  float64
	goal     float64
	velocity float64
	state    TransitionState
}

func newScalarTracker(v float64) scalarTracker {
	return scalarTracker{current: v, goal: v}
}

// setGoal assigns a new goal. Without animation current jumps to goal in the same call.
// Velocity left over from an earlier goal is dropped when it points away from the new one,
// so the distance to the goal never grows.
// Returns true if the quantity went from Settled to Transitioning.
func (t *scalarTracker) setGoal(goal float64, animated bool) bool {
	t.goal = goal
	if !animated || math.Abs(goal-t.current) < settleThreshold {
		t.snap()
		return false
	}
	if t.velocity*(goal-t.current) < 0 {
		t.velocity = 0
	}
	started := t.state == Settled
	t.state = Transitioning
	return started
}

// snap commits the goal immediately.
func (t *scalarTracker) snap() {
	t.current = t.goal
	t.velocity = 0
	t.state = Settled
}

// step advances current toward goal and reports whether current changed.
func (t *scalarTracker) step(smoothTime, dt float64) bool {
	if t.state == Settled {
		return false
	}
	prev := t.current
	t.current = common.SmoothDamp(t.current, t.goal, &t.velocity, smoothTime, math.Inf(1), dt)
	if math.Abs(t.goal-t.current) < settleThreshold {
		t.snap()
	}
	return t.current != prev
}

// shift moves current and goal by the same amount, leaving the transition untouched.
func (t *scalarTracker) shift(delta float64) {
	t.current += delta
	t.goal += delta
}

// vec3Tracker damps one mgl64.Vec3 quantity toward its goal.
type vec3Tracker struct {
	current  mgl64.Vec3
	goal     mgl64.Vec3
	velocity mgl64.Vec3
	state    TransitionState
}

func newVec3Tracker(v mgl64.Vec3) vec3Tracker {
	return vec3Tracker{current: v, goal: v}
}

// setGoal keeps only the part of the velocity heading toward the new goal. A sideways
// component would carry current off the line to the goal and lengthen the gap.
func (t *vec3Tracker) setGoal(goal mgl64.Vec3, animated bool) bool {
	t.goal = goal
	delta := goal.Sub(t.current)
	if !animated || delta.Len() < settleThreshold {
		t.snap()
		return false
	}
	dir := delta.Normalize()
	t.velocity = dir.Mul(math.Max(0, t.velocity.Dot(dir)))
	started := t.state == Settled
	t.state = Transitioning
	return started
}

func (t *vec3Tracker) snap() {
	t.current = t.goal
	t.velocity = mgl64.Vec3{}
	t.state = Settled
}

func (t *vec3Tracker) step(smoothTime, dt float64) bool {
	if t.state == Settled {
		return false
	}
	prev := t.current
	t.current = common.SmoothDampVec3(t.current, t.goal, &t.velocity, smoothTime, math.Inf(1), dt)
	if t.goal.Sub(t.current).Len() < settleThreshold {
		t.snap()
	}
	return t.current != prev
}
