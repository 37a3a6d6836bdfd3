package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minSmoothTime keeps omega finite when a caller passes a tiny positive smooth time.
const minSmoothTime = 1e-4

// SmoothDamp moves current toward target using a critically damped spring.
// The exponential decay term uses the Game Programming Gems 4 polynomial approximation,
// which stays stable for any positive deltaTime and never overshoots target.
// velocity is read and updated in place. A smoothTime of 0 returns target immediately.
//
// Parameters:
//   - current: the current value
//   - target: the value to approach
//   - velocity: the running velocity, updated in place
//   - smoothTime: approximate time in seconds to reach target
//   - maxSpeed: maximum speed (use math.Inf(1) for unbounded)
//   - deltaTime: elapsed time in seconds since the last call
//
// Returns:
//   - float64: the new current value
func SmoothDamp(current, target float64, velocity *float64, smoothTime, maxSpeed, deltaTime float64) float64 {
	if deltaTime <= 0 {
		return current
	}
	if smoothTime <= 0 {
		*velocity = 0
		return target
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime

	x := omega * deltaTime
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	originalTo := target

	maxChange := maxSpeed * smoothTime
	change = mgl64.Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * deltaTime
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// prevent overshooting
	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		*velocity = 0
	}
	return output
}

// SmoothDampVec3 is the vector form of SmoothDamp. The overshoot guard is applied to the
// whole vector so the path stays on the line between current and target.
//
// Parameters:
//   - current: the current vector
//   - target: the vector to approach
//   - velocity: the running velocity, updated in place
//   - smoothTime: approximate time in seconds to reach target
//   - maxSpeed: maximum speed (use math.Inf(1) for unbounded)
//   - deltaTime: elapsed time in seconds since the last call
//
// Returns:
//   - mgl64.Vec3: the new current vector
func SmoothDampVec3(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, maxSpeed, deltaTime float64) mgl64.Vec3 {
	if deltaTime <= 0 {
		return current
	}
	if smoothTime <= 0 {
		*velocity = mgl64.Vec3{}
		return target
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime

	x := omega * deltaTime
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current.Sub(target)
	originalTo := target

	maxChange := maxSpeed * smoothTime
	if lenSq := change.Dot(change); lenSq > maxChange*maxChange {
		change = change.Mul(maxChange / math.Sqrt(lenSq))
	}
	target = current.Sub(change)

	temp := velocity.Add(change.Mul(omega)).Mul(deltaTime)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(exp)
	output := target.Add(change.Add(temp).Mul(exp))

	// prevent overshooting
	origMinusCurrent := originalTo.Sub(current)
	outMinusOrig := output.Sub(originalTo)
	if origMinusCurrent.Dot(outMinusOrig) > 0 {
		output = originalTo
		*velocity = mgl64.Vec3{}
	}
	return output
}
