package services

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

func TestRunner_ParallelMatchesSequential(t *testing.T) {
	metrics := &countingMetrics{}
	sim := NewSimulation(smallParams(), 64, 40, metrics)

	parallel, err := NewRunner(sim, 7, 4).Run(context.Background(), 4)
	require.NoError(t, err)
	sequential, err := NewRunner(sim, 7, 1).Run(context.Background(), 4)
	require.NoError(t, err)

	require.Len(t, parallel, 4)
	for run := range parallel {
		assert.Equal(t, run, parallel[run].Run)
		assert.Equal(t, sequential[run].Final.IndividualValidatorRewards, parallel[run].Final.IndividualValidatorRewards)
		assert.Equal(t, sequential[run].Final.SyncCommittee, parallel[run].Final.SyncCommittee)
	}
	// runs draw from distinct streams
	assert.NotEqual(t, parallel[0].Final.IndividualValidatorRewards, parallel[1].Final.IndividualValidatorRewards)
	assert.Equal(t, 8, metrics.completed)
}

func TestRunner_FirstErrorWins(t *testing.T) {
	metrics := &countingMetrics{}
	sim := NewSimulation(smallParams(), 8, 5, metrics)
	sim.Policies = append(sim.Policies, func(_ domain.Params, prev *domain.State, _ *rand.Rand) (domain.Update, error) {
		if prev.Run == 2 {
			return domain.Update{}, domain.NewDomainError("test", "run %d fails", prev.Run)
		}
		return domain.Update{}, nil
	})

	results, err := NewRunner(sim, 1, 2).Run(context.Background(), 4)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.GreaterOrEqual(t, metrics.failed, 1)
}

func TestRunner_InvalidRuns(t *testing.T) {
	_, err := NewRunner(NewSimulation(smallParams(), 8, 5, nil), 1, 0).Run(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrConfig)
}
