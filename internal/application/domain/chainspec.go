package domain

// Ethereum consensus constants used by the simulation.
const (
	SlotsPerEpoch                = 32
	SyncCommitteeSize            = 512
	EpochsPerSyncCommitteePeriod = 256
	EpochsPerDay                 = 225
	// 365.25 days, truncated to 82181.
	EpochsPerYear = EpochsPerDay * 36525 / 100

	MaxEffectiveBalanceGwei   = 32_000_000_000
	EffectiveBalanceIncrement = 1_000_000_000
	BaseRewardFactor          = 64

	TimelySourceWeight = 14
	TimelyTargetWeight = 26
	TimelyHeadWeight   = 14
	SyncRewardWeight   = 2
	ProposerWeight     = 8
	WeightDenominator  = 64

	Gwei = 1e-9 // ETH
)

// ChainSpec holds the protocol constants that size committee draws and the
// simulation horizon. It can be seeded from a beacon node.
type ChainSpec struct {
	SlotsPerEpoch                uint64 `yaml:"slots_per_epoch"`
	SyncCommitteeSize            uint64 `yaml:"sync_committee_size"`
	EpochsPerSyncCommitteePeriod uint64 `yaml:"epochs_per_sync_committee_period"`
	EpochsPerYear                uint64 `yaml:"epochs_per_year"`
}

// MainnetChainSpec returns the mainnet values.
func MainnetChainSpec() ChainSpec {
	return ChainSpec{
		SlotsPerEpoch:                SlotsPerEpoch,
		SyncCommitteeSize:            SyncCommitteeSize,
		EpochsPerSyncCommitteePeriod: EpochsPerSyncCommitteePeriod,
		EpochsPerYear:                EpochsPerYear,
	}
}
