package state

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// wireRecord is the on-disk shape of a Record. Pointers and slices distinguish a missing
// field from a zero value.
type wireRecord struct {
	Enabled *bool `json:"enabled" yaml:"enabled" toml:"enabled"`

	MinDistance     *float64 `json:"minDistance" yaml:"minDistance" toml:"minDistance"`
	MaxDistance     *float64 `json:"maxDistance" yaml:"maxDistance" toml:"maxDistance"`
	MinZoom         *float64 `json:"minZoom" yaml:"minZoom" toml:"minZoom"`
	MaxZoom         *float64 `json:"maxZoom" yaml:"maxZoom" toml:"maxZoom"`
	MinPolarAngle   *float64 `json:"minPolarAngle" yaml:"minPolarAngle" toml:"minPolarAngle"`
	MaxPolarAngle   *float64 `json:"maxPolarAngle" yaml:"maxPolarAngle" toml:"maxPolarAngle"`
	MinAzimuthAngle *float64 `json:"minAzimuthAngle" yaml:"minAzimuthAngle" toml:"minAzimuthAngle"`
	MaxAzimuthAngle *float64 `json:"maxAzimuthAngle" yaml:"maxAzimuthAngle" toml:"maxAzimuthAngle"`

	SmoothTime         *float64 `json:"smoothTime" yaml:"smoothTime" toml:"smoothTime"`
	DraggingSmoothTime *float64 `json:"draggingSmoothTime" yaml:"draggingSmoothTime" toml:"draggingSmoothTime"`
	DollySpeed         *float64 `json:"dollySpeed" yaml:"dollySpeed" toml:"dollySpeed"`
	TruckSpeed         *float64 `json:"truckSpeed" yaml:"truckSpeed" toml:"truckSpeed"`
	DollyToCursor      *bool    `json:"dollyToCursor" yaml:"dollyToCursor" toml:"dollyToCursor"`

	Target      []float64 `json:"target" yaml:"target,flow" toml:"target"`
	Position    []float64 `json:"position" yaml:"position,flow" toml:"position"`
	Spherical   []float64 `json:"spherical" yaml:"spherical,flow" toml:"spherical"`
	Zoom        *float64  `json:"zoom" yaml:"zoom" toml:"zoom"`
	FocalOffset []float64 `json:"focalOffset" yaml:"focalOffset,flow" toml:"focalOffset"`
}

// Encode writes rec in the given format. Infinite limits are written as ±math.MaxFloat64.
//
// Parameters:
//   - rec: the record to encode
//   - format: the output format
//
// Returns:
//   - []byte: the encoded record
//   - error: ErrUnknownFormat, or an encoder error
func Encode(rec Record, format Format) ([]byte, error) {
	w := newWireRecord(rec)
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode json")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(w); err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(w)
		if err != nil {
			return nil, errors.Wrap(err, "encode toml")
		}
		return data, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "format %d", int(format))
	}
}

// Decode parses data in the given format and validates every field.
// Missing fields, wrong types, vectors without exactly three components and
// non-finite numbers are all rejected with ErrMalformedState.
// ±math.MaxFloat64 limits are read back as ±Inf.
//
// Parameters:
//   - data: the encoded record
//   - format: the input format
//
// Returns:
//   - Record: the decoded record
//   - error: ErrMalformedState or ErrUnknownFormat on failure
func Decode(data []byte, format Format) (Record, error) {
	var w wireRecord
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &w)
	case FormatYAML:
		err = yaml.Unmarshal(data, &w)
	case FormatTOML:
		err = toml.Unmarshal(data, &w)
	default:
		return Record{}, errors.Wrapf(ErrUnknownFormat, "format %d", int(format))
	}
	if err != nil {
		return Record{}, errors.Wrapf(ErrMalformedState, "decode %s: %v", format, err)
	}

	rec, err := w.record()
	if err != nil {
		return Record{}, err
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func newWireRecord(rec Record) wireRecord {
	f := func(v float64) *float64 { return &v }
	b := func(v bool) *bool { return &v }
	return wireRecord{
		Enabled:            b(rec.Enabled),
		MinDistance:        f(encodeLimit(rec.MinDistance)),
		MaxDistance:        f(encodeLimit(rec.MaxDistance)),
		MinZoom:            f(encodeLimit(rec.MinZoom)),
		MaxZoom:            f(encodeLimit(rec.MaxZoom)),
		MinPolarAngle:      f(encodeLimit(rec.MinPolarAngle)),
		MaxPolarAngle:      f(encodeLimit(rec.MaxPolarAngle)),
		MinAzimuthAngle:    f(encodeLimit(rec.MinAzimuthAngle)),
		MaxAzimuthAngle:    f(encodeLimit(rec.MaxAzimuthAngle)),
		SmoothTime:         f(rec.SmoothTime),
		DraggingSmoothTime: f(rec.DraggingSmoothTime),
		DollySpeed:         f(rec.DollySpeed),
		TruckSpeed:         f(rec.TruckSpeed),
		DollyToCursor:      b(rec.DollyToCursor),
		Target:             rec.Target[:],
		Position:           rec.Position[:],
		Spherical:          rec.Spherical[:],
		Zoom:               f(rec.Zoom),
		FocalOffset:        rec.FocalOffset[:],
	}
}

func (w wireRecord) record() (Record, error) {
	var fr fieldReader
	rec := Record{
		Enabled:            fr.flag("enabled", w.Enabled),
		MinDistance:        fr.limit("minDistance", w.MinDistance),
		MaxDistance:        fr.limit("maxDistance", w.MaxDistance),
		MinZoom:            fr.limit("minZoom", w.MinZoom),
		MaxZoom:            fr.limit("maxZoom", w.MaxZoom),
		MinPolarAngle:      fr.limit("minPolarAngle", w.MinPolarAngle),
		MaxPolarAngle:      fr.limit("maxPolarAngle", w.MaxPolarAngle),
		MinAzimuthAngle:    fr.limit("minAzimuthAngle", w.MinAzimuthAngle),
		MaxAzimuthAngle:    fr.limit("maxAzimuthAngle", w.MaxAzimuthAngle),
		SmoothTime:         fr.number("smoothTime", w.SmoothTime),
		DraggingSmoothTime: fr.number("draggingSmoothTime", w.DraggingSmoothTime),
		DollySpeed:         fr.number("dollySpeed", w.DollySpeed),
		TruckSpeed:         fr.number("truckSpeed", w.TruckSpeed),
		DollyToCursor:      fr.flag("dollyToCursor", w.DollyToCursor),
		Target:             fr.vec3("target", w.Target),
		Position:           fr.vec3("position", w.Position),
		Spherical:          fr.vec3("spherical", w.Spherical),
		Zoom:               fr.number("zoom", w.Zoom),
		FocalOffset:        fr.vec3("focalOffset", w.FocalOffset),
	}
	return rec, fr.err
}

// fieldReader converts wire fields and keeps the first error.
type fieldReader struct {
	err error
}

func (fr *fieldReader) fail(format string, args ...any) {
	if fr.err == nil {
		fr.err = errors.Wrapf(ErrMalformedState, format, args...)
	}
}

func (fr *fieldReader) flag(name string, v *bool) bool {
	if v == nil {
		fr.fail("missing field %q", name)
		return false
	}
	return *v
}

func (fr *fieldReader) number(name string, v *float64) float64 {
	if v == nil {
		fr.fail("missing field %q", name)
		return 0
	}
	if !isFinite(*v) {
		fr.fail("field %q is not finite", name)
		return 0
	}
	return *v
}

func (fr *fieldReader) limit(name string, v *float64) float64 {
	return decodeLimit(fr.number(name, v))
}

func (fr *fieldReader) vec3(name string, v []float64) [3]float64 {
	var out [3]float64
	if v == nil {
		fr.fail("missing field %q", name)
		return out
	}
	if len(v) != 3 {
		fr.fail("field %q has %d components, want 3", name, len(v))
		return out
	}
	for i, c := range v {
		if !isFinite(c) {
			fr.fail("field %q[%d] is not finite", name, i)
			return out
		}
		out[i] = c
	}
	return out
}

func encodeLimit(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	default:
		return v
	}
}

func decodeLimit(v float64) float64 {
	switch {
	case v >= math.MaxFloat64:
		return math.Inf(1)
	case v <= -math.MaxFloat64:
		return math.Inf(-1)
	default:
		return v
	}
}
