package services

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

type countingMetrics struct {
	mu        sync.Mutex
	timesteps int
	rotations int
	completed int
	failed    int
}

func (m *countingMetrics) ObserveTimestep(int, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timesteps++
}

func (m *countingMetrics) IncRotations(int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotations++
}

func (m *countingMetrics) IncRunsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed++
}

func (m *countingMetrics) IncRunsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

func smallParams() domain.Params {
	return domain.DefaultParams().WithSyncCommitteeSize(16)
}

func TestHorizon(t *testing.T) {
	spec := domain.MainnetChainSpec()
	assert.Equal(t, uint64(domain.EpochsPerYear), Horizon(1, spec, 1))
	assert.Equal(t, uint64(domain.EpochsPerYear/2), Horizon(1, spec, 2))
	assert.Equal(t, uint64(1), Horizon(0, spec, 1))
}

func TestSimulationRun_RotationsAndInvariants(t *testing.T) {
	metrics := &countingMetrics{}
	sim := NewSimulation(smallParams(), 200, 600, metrics)

	result, err := sim.Run(context.Background(), 0, 123)
	require.NoError(t, err)

	assert.Equal(t, uint64(600), result.Timesteps)
	assert.Equal(t, 3, result.Rotations)
	require.Len(t, result.Trajectory, 600)

	var rotatedAt []domain.Epoch
	for _, rec := range result.Trajectory {
		if rec.Rotated {
			rotatedAt = append(rotatedAt, rec.Epoch)
		}
	}
	assert.Equal(t, []domain.Epoch{1, 257, 513}, rotatedAt)

	assert.Len(t, result.Final.IndividualValidatorRewards, 200)
	assert.Len(t, result.Final.SyncCommittee, 16)
	assert.Equal(t, 600, metrics.timesteps)
	assert.Equal(t, 3, metrics.rotations)
}

func TestSimulationRun_RotationsReportedByPolicy(t *testing.T) {
	pinned := domain.SyncCommittee{0, 1, 2, 3}
	keepCommittee := func(_ domain.Params, _ *domain.State, _ *rand.Rand) (domain.Update, error) {
		return domain.Update{Variable: domain.VariableSyncCommittee, SyncCommittee: pinned}, nil
	}

	metrics := &countingMetrics{}
	sim := NewSimulation(domain.DefaultParams().WithSyncCommitteeSize(4), 20, 300, metrics)
	sim.Policies = []Policy{UpdateRewardPools, keepCommittee, RewardValidators}

	result, err := sim.Run(context.Background(), 0, 5)
	require.NoError(t, err)
	assert.Zero(t, result.Rotations)
	assert.Zero(t, metrics.rotations)
	for _, rec := range result.Trajectory {
		assert.False(t, rec.Rotated, "epoch %d", rec.Epoch)
	}
	assert.Equal(t, pinned, result.Final.SyncCommittee)
}

func TestSimulationRun_ConservesRewards(t *testing.T) {
	const tip, gas, mev = 2e-9, 15e6, 0.05
	params := smallParams().
		WithTipProcess(domain.ConstantProcess(tip)).
		WithGasTargetProcess(domain.ConstantProcess(gas)).
		WithMEVProcess(domain.ConstantProcess(mev))

	sim := NewSimulation(params, 300, 50, nil)
	result, err := sim.Run(context.Background(), 0, 1)
	require.NoError(t, err)

	want := 0.0
	for _, rec := range result.Trajectory {
		want += rec.Pools.Total() + float64(params.SlotsPerTimestep())*(tip*gas+mev)
	}
	assert.InDelta(t, want, result.Summary.Total, 1e-9)
}

func TestSimulationRun_Deterministic(t *testing.T) {
	sim := NewSimulation(smallParams(), 100, 300, nil)

	a, err := sim.Run(context.Background(), 2, 99)
	require.NoError(t, err)
	b, err := sim.Run(context.Background(), 2, 99)
	require.NoError(t, err)
	assert.Equal(t, a.Final.SyncCommittee, b.Final.SyncCommittee)
	assert.Equal(t, a.Final.IndividualValidatorRewards, b.Final.IndividualValidatorRewards)

	c, err := sim.Run(context.Background(), 2, 100)
	require.NoError(t, err)
	assert.NotEqual(t, a.Final.IndividualValidatorRewards, c.Final.IndividualValidatorRewards)
}

func TestSimulationRun_ConfigErrorBeforeAnyTimestep(t *testing.T) {
	metrics := &countingMetrics{}
	sim := NewSimulation(smallParams().WithDt(3), 100, 10, metrics)

	_, err := sim.Run(context.Background(), 0, 1)
	require.ErrorIs(t, err, domain.ErrConfig)
	assert.Zero(t, metrics.timesteps)

	sim = NewSimulation(smallParams(), 0, 10, metrics)
	_, err = sim.Run(context.Background(), 0, 1)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestSimulationRun_InvalidExogenousValuesAbortRun(t *testing.T) {
	tests := []struct {
		name   string
		params domain.Params
	}{
		{name: "negative tip", params: smallParams().WithTipProcess(domain.ConstantProcess(-2e-9))},
		{name: "infinite tip", params: smallParams().WithTipProcess(domain.ConstantProcess(math.Inf(1)))},
		{name: "NaN uptime", params: smallParams().WithUptimeProcess(domain.ConstantProcess(math.NaN()))},
		{name: "negative uptime", params: smallParams().WithUptimeProcess(domain.ConstantProcess(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewSimulation(tt.params, 50, 3, nil).Run(context.Background(), 0, 123)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrDomain)
			assert.Contains(t, err.Error(), "timestep 1")
		})
	}
}

func TestSimulationRun_PolicyErrorAbortsRun(t *testing.T) {
	failAt := uint64(4)
	sim := NewSimulation(smallParams(), 10, 10, nil)
	sim.Policies = append(sim.Policies, func(_ domain.Params, prev *domain.State, _ *rand.Rand) (domain.Update, error) {
		if prev.Timestep == failAt {
			return domain.Update{}, domain.NewDomainError("test", "boom")
		}
		return domain.Update{}, nil
	})

	result, err := sim.Run(context.Background(), 0, 1)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Contains(t, err.Error(), "timestep 4")
}

func TestSimulationRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulation(smallParams(), 10, 10, nil).Run(ctx, 0, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
