package replay

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// defaultTolerance is used by expect_* steps that leave out the tolerance argument.
const defaultTolerance = 1e-6

// action is one entry of the replay action table.
type action struct {
	arity []int
	run   func(r *runner, step Step) error
}

func (a action) accepts(n int) bool {
	return slices.Contains(a.arity, n)
}

func (a action) arityString() string {
	counts := make([]string, len(a.arity))
	for i, n := range a.arity {
		counts[i] = strconv.Itoa(n)
	}
	return strings.Join(counts, " or ") + " args"
}

// Actions returns the sorted names of every action a script may use.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var actions map[string]action

func init() {
	actions = map[string]action{
		// --- frame stepping ---
		"update": {arity: []int{0}, run: func(r *runner, s Step) error {
			frames := s.Frames
			if frames == 0 {
				frames = 1
			}
			r.step(frames, s.frameTime())
			return nil
		}},
		"settle": {arity: []int{0}, run: func(r *runner, s Step) error {
			limit := s.Frames
			if limit == 0 {
				limit = DefaultSettleFrames
			}
			for range limit {
				if r.cc.State() == controls.Settled {
					break
				}
				r.step(1, s.frameTime())
			}
			if r.cc.State() != controls.Settled {
				return errors.Wrapf(ErrNotSettled, "after %d frames", limit)
			}
			r.cc.Apply()
			return nil
		}},
		"apply": {arity: []int{0}, run: func(r *runner, s Step) error {
			r.cc.Apply()
			return nil
		}},

		// --- rotation ---
		"rotate": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.Rotate(s.Args[0], s.Args[1], s.Animated)
		}},
		"rotate_to": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.RotateTo(s.Args[0], s.Args[1], s.Animated)
		}},
		"rotate_azimuth_to": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.RotateAzimuthTo(s.Args[0], s.Animated)
		}},
		"rotate_polar_to": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.RotatePolarTo(s.Args[0], s.Animated)
		}},
		"normalize_rotations": {arity: []int{0}, run: func(r *runner, s Step) error {
			r.cc.NormalizeRotations()
			return nil
		}},

		// --- distance and zoom ---
		"dolly": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.Dolly(s.Args[0], s.Animated)
		}},
		"dolly_to": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.DollyTo(s.Args[0], s.Animated)
		}},
		"zoom": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.Zoom(s.Args[0], s.Animated)
		}},
		"zoom_to": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.ZoomTo(s.Args[0], s.Animated)
		}},

		// --- translation ---
		"truck": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.Truck(s.Args[0], s.Args[1], s.Animated)
		}},
		"forward": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.Forward(s.Args[0], s.Animated)
		}},
		"elevate": {arity: []int{1}, run: func(r *runner, s Step) error {
			return r.cc.Elevate(s.Args[0], s.Animated)
		}},
		"set_position": {arity: []int{3}, run: func(r *runner, s Step) error {
			return r.cc.SetPosition(vec3(s.Args), s.Animated)
		}},
		"set_target": {arity: []int{3}, run: func(r *runner, s Step) error {
			return r.cc.SetTarget(vec3(s.Args), s.Animated)
		}},
		"move_to": {arity: []int{3}, run: func(r *runner, s Step) error {
			return r.cc.MoveTo(vec3(s.Args), s.Animated)
		}},
		"set_look_at": {arity: []int{6}, run: func(r *runner, s Step) error {
			return r.cc.SetLookAt(vec3(s.Args), vec3(s.Args[3:]), s.Animated)
		}},
		"lerp_look_at": {arity: []int{13}, run: func(r *runner, s Step) error {
			a := s.Args
			return r.cc.LerpLookAt(vec3(a), vec3(a[3:]), vec3(a[6:]), vec3(a[9:]), a[12], s.Animated)
		}},
		"set_focal_offset": {arity: []int{3}, run: func(r *runner, s Step) error {
			return r.cc.SetFocalOffset(vec3(s.Args), s.Animated)
		}},
		"set_orbit_point": {arity: []int{3}, run: func(r *runner, s Step) error {
			return r.cc.SetOrbitPoint(vec3(s.Args))
		}},

		// --- framing ---
		"fit_to_box": {arity: []int{6, 10}, run: func(r *runner, s Step) error {
			return r.cc.FitToBox(box(s.Args), s.Animated, fitOptions(s.Args, false))
		}},
		"cover_box": {arity: []int{6, 10}, run: func(r *runner, s Step) error {
			return r.cc.FitToBox(box(s.Args), s.Animated, fitOptions(s.Args, true))
		}},
		"fit_to_sphere": {arity: []int{4}, run: func(r *runner, s Step) error {
			return r.cc.FitToSphere(common.Sphere{Center: vec3(s.Args), Radius: s.Args[3]}, s.Animated)
		}},

		// --- constraints ---
		"set_distance_range": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.SetDistanceRange(s.Args[0], s.Args[1])
		}},
		"set_zoom_range": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.SetZoomRange(s.Args[0], s.Args[1])
		}},
		"set_polar_range": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.SetPolarRange(s.Args[0], s.Args[1])
		}},
		"set_azimuth_range": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.SetAzimuthRange(s.Args[0], s.Args[1])
		}},
		"set_boundary": {arity: []int{6}, run: func(r *runner, s Step) error {
			b := box(s.Args)
			r.cc.SetBoundary(&b)
			return nil
		}},
		"clear_boundary": {arity: []int{0}, run: func(r *runner, s Step) error {
			r.cc.SetBoundary(nil)
			return nil
		}},

		// --- saved state ---
		"save_state": {arity: []int{0}, run: func(r *runner, s Step) error {
			r.cc.SaveState()
			return nil
		}},
		"reset": {arity: []int{0}, run: func(r *runner, s Step) error {
			return r.cc.Reset(s.Animated)
		}},

		// --- pointer input ---
		"set_viewport": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.SetViewport(s.Args[0], s.Args[1])
		}},
		"begin_drag": {arity: []int{0}, run: func(r *runner, s Step) error {
			r.cc.BeginDrag()
			return nil
		}},
		"end_drag": {arity: []int{0}, run: func(r *runner, s Step) error {
			r.cc.EndDrag()
			return nil
		}},
		"rotate_input": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.RotateInput(s.Args[0], s.Args[1])
		}},
		"truck_input": {arity: []int{2}, run: func(r *runner, s Step) error {
			return r.cc.TruckInput(s.Args[0], s.Args[1])
		}},
		"dolly_input": {arity: []int{1, 3}, run: func(r *runner, s Step) error {
			var ndcX, ndcY float64
			if len(s.Args) == 3 {
				ndcX, ndcY = s.Args[1], s.Args[2]
			}
			return r.cc.DollyInput(s.Args[0], ndcX, ndcY)
		}},

		// --- expectations ---
		"expect_position": {arity: []int{3, 4}, run: func(r *runner, s Step) error {
			return expectVec3("position", vec3(s.Args), r.cc.Pose().Position, tolerance(s.Args, 3))
		}},
		"expect_target": {arity: []int{3, 4}, run: func(r *runner, s Step) error {
			return expectVec3("target", vec3(s.Args), r.cc.Pose().Target, tolerance(s.Args, 3))
		}},
		"expect_distance": {arity: []int{1, 2}, run: func(r *runner, s Step) error {
			return expectScalar("distance", s.Args[0], r.cc.Distance(), tolerance(s.Args, 1))
		}},
		"expect_zoom": {arity: []int{1, 2}, run: func(r *runner, s Step) error {
			return expectScalar("zoom", s.Args[0], r.cc.Pose().Zoom, tolerance(s.Args, 1))
		}},
		"expect_settled": {arity: []int{0}, run: func(r *runner, s Step) error {
			if state := r.cc.State(); state != controls.Settled {
				return errors.Wrapf(ErrExpectation, "state is %s", state)
			}
			return nil
		}},
	}
}

func vec3(args []float64) mgl64.Vec3 {
	return mgl64.Vec3{args[0], args[1], args[2]}
}

func box(args []float64) common.Box3 {
	return common.NewBox3(vec3(args), vec3(args[3:]))
}

func fitOptions(args []float64, cover bool) controls.FitOptions {
	options := controls.FitOptions{Cover: cover}
	if len(args) == 10 {
		options.PaddingLeft = args[6]
		options.PaddingRight = args[7]
		options.PaddingBottom = args[8]
		options.PaddingTop = args[9]
	}
	return options
}

// tolerance returns args[index] when present.
func tolerance(args []float64, index int) float64 {
	if len(args) > index {
		return args[index]
	}
	return defaultTolerance
}

func expectScalar(name string, want, got, tol float64) error {
	if math.Abs(want-got) > tol || math.IsNaN(got) {
		return errors.Wrapf(ErrExpectation, "%s is %v, want %v ± %v", name, got, want, tol)
	}
	return nil
}

func expectVec3(name string, want, got mgl64.Vec3, tol float64) error {
	for i := range 3 {
		if math.Abs(want[i]-got[i]) > tol || math.IsNaN(got[i]) {
			return errors.Wrapf(ErrExpectation, "%s is %v, want %v ± %v", name, got, want, tol)
		}
	}
	return nil
}
