package domain

import "fmt"

// State is the per-timestep record of one run. The reward accumulator and
// committee are owned by the run and updated in place between timesteps.
type State struct {
	Run                        int
	Timestep                   uint64
	NumberOfValidators         int
	SyncCommittee              SyncCommittee
	IndividualValidatorRewards []float64
	RewardPools
}

// NewState returns the initial state of a run: zero rewards for every
// validator and an empty sync committee.
func NewState(run, numberOfValidators int) *State {
	if numberOfValidators < 0 {
		numberOfValidators = 0
	}
	return &State{
		Run:                        run,
		NumberOfValidators:         numberOfValidators,
		SyncCommittee:              SyncCommittee{},
		IndividualValidatorRewards: make([]float64, numberOfValidators),
	}
}

// Epoch is the protocol epoch reached at the state's timestep.
func (s *State) Epoch(dt uint64) Epoch {
	return Epoch(s.Timestep * dt)
}

// Variable names a field of State that a policy may replace.
type Variable int

const (
	VariableRewardPools Variable = iota + 1
	VariableSyncCommittee
	VariableIndividualValidatorRewards
)

func (v Variable) String() string {
	switch v {
	case VariableRewardPools:
		return "reward_pools"
	case VariableSyncCommittee:
		return "sync_committee"
	case VariableIndividualValidatorRewards:
		return "individual_validator_rewards"
	default:
		return fmt.Sprintf("variable(%d)", int(v))
	}
}

// Update is the partial state returned by a policy: the replaced variable and
// its new value. Only the field matching Variable is meaningful. Rotated is set
// by a policy that drew a fresh sync committee.
type Update struct {
	Variable                   Variable
	RewardPools                RewardPools
	SyncCommittee              SyncCommittee
	IndividualValidatorRewards []float64
	Rotated                    bool
}

// Apply merges the update into s.
func (u Update) Apply(s *State) {
	switch u.Variable {
	case VariableRewardPools:
		s.RewardPools = u.RewardPools
	case VariableSyncCommittee:
		s.SyncCommittee = u.SyncCommittee
	case VariableIndividualValidatorRewards:
		s.IndividualValidatorRewards = u.IndividualValidatorRewards
	}
}
