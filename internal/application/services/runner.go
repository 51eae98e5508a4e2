package services

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
	"github.com/Marketen/rewards-simulator/internal/logger"
)

// Runner executes independent Monte Carlo runs of a Simulation. Runs share no
// mutable state: each owns its state record and its random stream, seeded
// from (Seed, run).
type Runner struct {
	Simulation  *Simulation
	Seed        uint64
	Parallelism int
}

// NewRunner constructs a Runner. A non-positive parallelism means GOMAXPROCS.
func NewRunner(sim *Simulation, seed uint64, parallelism int) *Runner {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	return &Runner{
		Simulation:  sim,
		Seed:        seed,
		Parallelism: parallelism,
	}
}

// Run executes runs 0..runs-1 and returns their results indexed by run. The
// first failing run cancels the others and its error is returned.
func (r *Runner) Run(ctx context.Context, runs int) ([]*domain.RunResult, error) {
	if runs <= 0 {
		return nil, domain.NewConfigError("runs", "must be positive, got %d", runs)
	}
	if err := r.Simulation.Params.Validate(); err != nil {
		return nil, err
	}

	if dt := r.Simulation.Params.Dt; dt > 1 {
		logger.Warn("dt=%d: no epoch of the form t*%d satisfies (epoch-1) %% %d == 0, the sync committee will stay empty",
			dt, dt, r.Simulation.Params.Chain.EpochsPerSyncCommitteePeriod)
	}

	results := make([]*domain.RunResult, runs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.Parallelism)

	for run := 0; run < runs; run++ {
		eg.Go(func() error {
			logger.Debug("Starting run %d", run)
			result, err := r.Simulation.Run(ctx, run, r.Seed)
			if err != nil {
				r.Simulation.metrics().IncRunsFailed()
				return fmt.Errorf("simulation run %d: %w", run, err)
			}
			r.Simulation.metrics().IncRunsCompleted()
			logger.Debug("Finished run %d (%d timesteps, %d rotations)", run, result.Timesteps, result.Rotations)
			results[run] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
