package replay

import (
	"context"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/Carmen-Shannon/oxycam/engine/state"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Result is the outcome of running one script.
type Result struct {
	Name string
	// Frames is the number of Update calls made.
	Frames int
	// Elapsed is the simulated time covered by those updates, in seconds.
	Elapsed float64
	Settled bool
	// Record is the controls snapshot after the last step that ran.
	Record state.Record
	Err    error
}

// runner carries the controls through one script.
type runner struct {
	cc     controls.CameraControls
	result *Result
}

func (r *runner) step(frames int, dt float64) {
	for range frames {
		r.cc.Update(dt)
		r.result.Frames++
		r.result.Elapsed += dt
	}
}

// Run builds the script's camera and controls and executes every step in order.
// It stops at the first failing step or when ctx is done. The returned Result holds the
// snapshot taken at that point, whether or not an error is returned.
//
// Parameters:
//   - ctx: cancels the run between steps
//   - script: the script to run
//   - logger: receives a debug line per step
//
// Returns:
//   - Result: frame count, final state and snapshot
//   - error: the first error, wrapped with the step index and action
func Run(ctx context.Context, script Script, logger zerolog.Logger) (Result, error) {
	result := Result{Name: script.Name}
	if err := script.Validate(); err != nil {
		return result, err
	}

	cam, err := script.Camera.NewCamera()
	if err != nil {
		return result, err
	}
	cc, err := controls.NewCameraControls(cam, script.Controls.Options(logger)...)
	if err != nil {
		return result, errors.Wrap(err, "create controls")
	}
	defer cc.Dispose()

	log := logger.With().Str("script", script.Name).Logger()
	r := &runner{cc: cc, result: &result}
	finish := func() {
		result.Settled = cc.State() == controls.Settled
		result.Record = cc.Snapshot()
	}

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			finish()
			return result, errors.Wrapf(err, "step %d (%s)", i, step.Action)
		}
		log.Debug().Int("step", i).Str("action", step.Action).Floats64("args", step.Args).Msg("replay step")
		if err := actions[step.Action].run(r, step); err != nil {
			finish()
			return result, errors.Wrapf(err, "step %d (%s)", i, step.Action)
		}
	}

	finish()
	log.Debug().Int("frames", result.Frames).Bool("settled", result.Settled).Msg("replay finished")
	return result, nil
}

// RunBatch runs scripts in parallel on a worker pool and returns one Result per script, in
// input order. Failures are reported through Result.Err.
//
// Parameters:
//   - ctx: cancels every run between steps
//   - scripts: the scripts to run
//   - workers: maximum number of scripts running at once (values < 1 mean 1)
//   - logger: shared by all runs
//
// Returns:
//   - []Result: the results, indexed like scripts
func RunBatch(ctx context.Context, scripts []Script, workers int, logger zerolog.Logger) []Result {
	results := make([]Result, len(scripts))
	if len(scripts) == 0 {
		return results
	}

	pool := worker.NewDynamicWorkerPool(max(workers, 1), 256, 1*time.Second)
	defer pool.Stop()

	var wg sync.WaitGroup
	for i, script := range scripts {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				result, err := Run(ctx, script, logger)
				result.Err = err
				results[i] = result
				return result, err
			},
		})
	}
	wg.Wait()

	return results
}
