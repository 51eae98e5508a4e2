package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
	"github.com/Marketen/rewards-simulator/internal/application/ports"
	"github.com/Marketen/rewards-simulator/internal/logger"
)

// DefaultPolicies is the per-timestep pipeline: reward pools, then committee
// rotation, then accrual. Accrual reads the committee written by rotation in
// the same timestep, so the order is fixed.
func DefaultPolicies() []Policy {
	return []Policy{UpdateRewardPools, UpdateSyncCommittee, RewardValidators}
}

// Simulation drives one run's timestep loop and merges policy updates into the
// state.
type Simulation struct {
	Params             domain.Params
	NumberOfValidators int
	Timesteps          uint64
	Policies           []Policy
	Metrics            ports.MetricsRecorder

	// ProgressInterval is the number of timesteps between progress logs;
	// zero disables them.
	ProgressInterval uint64
}

// NewSimulation constructs a Simulation with the default pipeline and
// dependencies injected.
func NewSimulation(
	params domain.Params,
	numberOfValidators int,
	timesteps uint64,
	metrics ports.MetricsRecorder,
) *Simulation {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Simulation{
		Params:             params,
		NumberOfValidators: numberOfValidators,
		Timesteps:          timesteps,
		Policies:           DefaultPolicies(),
		Metrics:            metrics,
		ProgressInterval:   timesteps / 10,
	}
}

// Horizon returns the number of timesteps covering years of epochs at dt
// epochs per timestep, never less than one. Each timestep advances dt epochs,
// so the count is years*EpochsPerYear/dt rather than years*EpochsPerYear; the
// two agree at dt = 1.
func Horizon(years float64, spec domain.ChainSpec, dt uint64) uint64 {
	if dt == 0 {
		return 1
	}
	steps := uint64(years*float64(spec.EpochsPerYear)) / dt
	if steps == 0 {
		return 1
	}
	return steps
}

// NewRunRNG returns the random stream owned by one run.
func NewRunRNG(seed uint64, run int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(run)))
}

// Run executes timesteps 1..Timesteps for one run. Any policy error aborts the
// whole run and no result is returned.
func (s *Simulation) Run(ctx context.Context, run int, seed uint64) (*domain.RunResult, error) {
	if err := s.Params.Validate(); err != nil {
		return nil, err
	}
	if s.NumberOfValidators <= 0 {
		return nil, domain.NewConfigError("number_of_validators", "must be positive, got %d", s.NumberOfValidators)
	}
	metrics := s.metrics()

	state := domain.NewState(run, s.NumberOfValidators)
	rng := NewRunRNG(seed, run)
	result := &domain.RunResult{
		Run:        run,
		Seed:       seed,
		Trajectory: make([]domain.TimestepRecord, 0, s.Timesteps),
	}

	for t := uint64(1); t <= s.Timesteps; t++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %d interrupted at timestep %d: %w", run, t, err)
		}
		start := time.Now()
		rotated, err := s.step(state, t, rng)
		if err != nil {
			return nil, fmt.Errorf("run %d timestep %d: %w", run, t, err)
		}

		result.Trajectory = append(result.Trajectory, domain.TimestepRecord{
			Timestep: t,
			Epoch:    state.Epoch(s.Params.Dt),
			Rotated:  rotated,
			Pools:    state.RewardPools,
		})
		if rotated {
			result.Rotations++
			metrics.IncRotations(run)
		}
		metrics.ObserveTimestep(run, time.Since(start))

		if s.ProgressInterval > 0 && t%s.ProgressInterval == 0 {
			logger.Debug("Run %d: timestep %d/%d (epoch %d), %d rotations",
				run, t, s.Timesteps, state.Epoch(s.Params.Dt), result.Rotations)
		}
	}

	result.Timesteps = s.Timesteps
	result.Final = state
	result.Summary = Summarize(state.IndividualValidatorRewards)
	return result, nil
}

func (s *Simulation) metrics() ports.MetricsRecorder {
	if s.Metrics == nil {
		return ports.NopMetrics{}
	}
	return s.Metrics
}

// step applies every policy in order, each seeing the state left by the
// previous one.
func (s *Simulation) step(state *domain.State, timestep uint64, rng *rand.Rand) (bool, error) {
	state.Timestep = timestep
	rotated := false
	for _, policy := range s.Policies {
		update, err := policy(s.Params, state, rng)
		if err != nil {
			return false, err
		}
		rotated = rotated || update.Rotated
		update.Apply(state)
	}
	return rotated, nil
}
