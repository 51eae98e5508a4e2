package domain

// Basic consensus types
type Epoch uint64
type ValidatorIndex uint64

// SyncCommittee is the ordered list of validator indices currently serving on
// the sync committee. Indices are sampled with replacement, so an index may
// appear more than once and earns one reward share per occurrence.
type SyncCommittee []ValidatorIndex

// RewardPools are the aggregate consensus rewards (ETH) available for
// apportionment in a single timestep.
type RewardPools struct {
	Source        float64
	Target        float64
	Head          float64
	Sync          float64
	BlockProposer float64
}

// Attestation returns the combined source, target and head pools.
func (p RewardPools) Attestation() float64 {
	return p.Source + p.Target + p.Head
}

// Total returns the sum of every pool.
func (p RewardPools) Total() float64 {
	return p.Attestation() + p.Sync + p.BlockProposer
}

// RewardSummary describes the distribution of cumulative rewards across the
// validator set at the end of a run.
type RewardSummary struct {
	Validators int
	Total      float64
	Mean       float64
	Min        float64
	Max        float64
	Median     float64
	P10        float64
	P90        float64
}

// TimestepRecord is the per-timestep entry kept in a run's trajectory.
type TimestepRecord struct {
	Timestep uint64
	Epoch    Epoch
	Rotated  bool
	Pools    RewardPools
}

// RunResult is the outcome of one Monte Carlo run.
type RunResult struct {
	Run        int
	Seed       uint64
	Timesteps  uint64
	Rotations  int
	Final      *State
	Trajectory []TimestepRecord
	Summary    RewardSummary
}
