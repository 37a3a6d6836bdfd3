package state

import (
	"math"

	"github.com/pkg/errors"
)

// Record is the flat, versionless snapshot of a controller's configuration and committed pose.
// Infinite limits are held as ±Inf here and written as ±math.MaxFloat64 on the wire.
type Record struct {
	Enabled bool

	MinDistance     float64
	MaxDistance     float64
	MinZoom         float64
	MaxZoom         float64
	MinPolarAngle   float64
	MaxPolarAngle   float64
	MinAzimuthAngle float64
	MaxAzimuthAngle float64

	SmoothTime         float64
	DraggingSmoothTime float64
	DollySpeed         float64
	TruckSpeed         float64
	DollyToCursor      bool

	Target [3]float64
	// Position is informational. Restoring a record rebuilds the position from Target and Spherical.
	Position [3]float64
	// Spherical holds radius, polar angle and unwrapped azimuth, in that order.
	Spherical   [3]float64
	Zoom        float64
	FocalOffset [3]float64
}

// Validate checks the structural rules every decoded record must satisfy:
// finite pose values, ordered limit pairs, non-negative smoothing, a positive radius and zoom.
//
// Returns:
//   - error: ErrMalformedState wrapped with the offending field, or nil
func (r Record) Validate() error {
	pairs := []struct {
		name     string
		min, max float64
	}{
		{"distance", r.MinDistance, r.MaxDistance},
		{"zoom", r.MinZoom, r.MaxZoom},
		{"polarAngle", r.MinPolarAngle, r.MaxPolarAngle},
		{"azimuthAngle", r.MinAzimuthAngle, r.MaxAzimuthAngle},
	}
	for _, p := range pairs {
		if math.IsNaN(p.min) || math.IsNaN(p.max) {
			return errors.Wrapf(ErrMalformedState, "%s limits contain NaN", p.name)
		}
		if p.min > p.max {
			return errors.Wrapf(ErrMalformedState, "%s min %v exceeds max %v", p.name, p.min, p.max)
		}
	}

	finite := map[string]float64{
		"smoothTime":         r.SmoothTime,
		"draggingSmoothTime": r.DraggingSmoothTime,
		"dollySpeed":         r.DollySpeed,
		"truckSpeed":         r.TruckSpeed,
		"zoom":               r.Zoom,
	}
	for name, v := range finite {
		if !isFinite(v) {
			return errors.Wrapf(ErrMalformedState, "%s %v is not finite", name, v)
		}
	}
	vectors := map[string][3]float64{
		"target":      r.Target,
		"position":    r.Position,
		"spherical":   r.Spherical,
		"focalOffset": r.FocalOffset,
	}
	for name, v := range vectors {
		for i, c := range v {
			if !isFinite(c) {
				return errors.Wrapf(ErrMalformedState, "%s[%d] %v is not finite", name, i, c)
			}
		}
	}

	if r.SmoothTime < 0 || r.DraggingSmoothTime < 0 {
		return errors.Wrap(ErrMalformedState, "smoothing times must be >= 0")
	}
	if r.Spherical[0] <= 0 {
		return errors.Wrapf(ErrMalformedState, "spherical radius %v must be > 0", r.Spherical[0])
	}
	if r.Zoom <= 0 {
		return errors.Wrapf(ErrMalformedState, "zoom %v must be > 0", r.Zoom)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
