package controls

import (
	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/state"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

func (cc *controlsImpl) Snapshot() state.Record {
	c := cc.constraints
	return state.Record{
		Enabled:            cc.enabled,
		MinDistance:        c.MinDistance,
		MaxDistance:        c.MaxDistance,
		MinZoom:            c.MinZoom,
		MaxZoom:            c.MaxZoom,
		MinPolarAngle:      c.MinPolarAngle,
		MaxPolarAngle:      c.MaxPolarAngle,
		MinAzimuthAngle:    c.MinAzimuthAngle,
		MaxAzimuthAngle:    c.MaxAzimuthAngle,
		SmoothTime:         cc.smoothing.SmoothTime,
		DraggingSmoothTime: cc.smoothing.DraggingSmoothTime,
		DollySpeed:         cc.dollySpeed,
		TruckSpeed:         cc.truckSpeed,
		DollyToCursor:      cc.dollyToCursor,
		Target:             cc.target.current,
		Position:           cc.currentPosition(),
		Spherical:          [3]float64{cc.radius.current, cc.phi.current, cc.theta.current},
		Zoom:               cc.zoom.current,
		FocalOffset:        cc.focalOffset.current,
	}
}

func (cc *controlsImpl) Restore(rec state.Record, animated bool) error {
	return cc.act("restore", func() error {
		if err := rec.Validate(); err != nil {
			return err
		}
		constraints := Constraints{
			MinDistance:     rec.MinDistance,
			MaxDistance:     rec.MaxDistance,
			MinZoom:         rec.MinZoom,
			MaxZoom:         rec.MaxZoom,
			MinPolarAngle:   rec.MinPolarAngle,
			MaxPolarAngle:   rec.MaxPolarAngle,
			MinAzimuthAngle: rec.MinAzimuthAngle,
			MaxAzimuthAngle: rec.MaxAzimuthAngle,
		}
		if err := constraints.Validate(); err != nil {
			return errors.Wrapf(state.ErrMalformedState, "constraints: %v", err)
		}
		smoothing := Smoothing{SmoothTime: rec.SmoothTime, DraggingSmoothTime: rec.DraggingSmoothTime}
		if err := smoothing.Validate(); err != nil {
			return errors.Wrapf(state.ErrMalformedState, "smoothing: %v", err)
		}

		// validated; nothing below can fail
		cc.enabled = rec.Enabled
		cc.dollySpeed = rec.DollySpeed
		cc.truckSpeed = rec.TruckSpeed
		cc.dollyToCursor = rec.DollyToCursor
		cc.smoothing = smoothing
		cc.constraints = constraints
		cc.reclamp()

		spherical := common.NewSpherical(rec.Spherical[0], rec.Spherical[1], rec.Spherical[2])
		cc.moveTo(mgl64.Vec3(rec.Target), animated)
		cc.setSphericalGoal(constraints.ClampSpherical(spherical), animated)
		cc.zoomTo(rec.Zoom, animated)
		cc.focalOffset.setGoal(mgl64.Vec3(rec.FocalOffset), animated)

		cc.logger.Debug().Bool("animated", animated).Msg("camera state restored")
		return nil
	})
}

func (cc *controlsImpl) Serialize(format state.Format) ([]byte, error) {
	return state.Encode(cc.Snapshot(), format)
}

func (cc *controlsImpl) Deserialize(data []byte, format state.Format, animated bool) error {
	if cc.disposed {
		return errors.Wrap(ErrDisposed, "deserialize")
	}
	rec, err := state.Decode(data, format)
	if err != nil {
		return err
	}
	return cc.Restore(rec, animated)
}
