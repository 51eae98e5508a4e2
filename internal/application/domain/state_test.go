package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	s := NewState(3, 5)
	assert.Equal(t, 3, s.Run)
	assert.Len(t, s.IndividualValidatorRewards, 5)
	assert.Empty(t, s.SyncCommittee)
	assert.Equal(t, Epoch(0), s.Epoch(1))

	s.Timestep = 7
	assert.Equal(t, Epoch(28), s.Epoch(4))
}

func TestUpdateApply(t *testing.T) {
	s := NewState(0, 3)

	Update{Variable: VariableSyncCommittee, SyncCommittee: SyncCommittee{2, 2}}.Apply(s)
	assert.Equal(t, SyncCommittee{2, 2}, s.SyncCommittee)

	Update{Variable: VariableRewardPools, RewardPools: RewardPools{Sync: 1, Head: 2}}.Apply(s)
	assert.Equal(t, 1.0, s.Sync)
	assert.Equal(t, 3.0, s.Total())

	Update{Variable: VariableIndividualValidatorRewards, IndividualValidatorRewards: []float64{1, 2, 3}}.Apply(s)
	assert.Equal(t, []float64{1, 2, 3}, s.IndividualValidatorRewards)
	// committee is untouched by an unrelated update
	assert.Equal(t, SyncCommittee{2, 2}, s.SyncCommittee)
}

func TestVariableString(t *testing.T) {
	assert.Equal(t, "reward_pools", VariableRewardPools.String())
	assert.Equal(t, "sync_committee", VariableSyncCommittee.String())
	assert.Equal(t, "individual_validator_rewards", VariableIndividualValidatorRewards.String())
	assert.Equal(t, "variable(9)", Variable(9).String())
}

func TestEpochsPerYear(t *testing.T) {
	assert.Equal(t, 82181, EpochsPerYear)
}
