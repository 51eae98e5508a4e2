package services

import (
	"math/rand/v2"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
	"github.com/Marketen/rewards-simulator/internal/logger"
)

// IsSyncCommitteeRotation reports whether the committee is replaced at epoch.
// Rotation happens on the first epoch of each period: 1, 1+P, 1+2P, ...
func IsSyncCommitteeRotation(epoch domain.Epoch, period uint64) bool {
	if epoch == 0 || period == 0 {
		return false
	}
	return (uint64(epoch)-1)%period == 0
}

// UpdateSyncCommittee replaces the whole committee with a fresh sample at
// period boundaries and returns it unchanged otherwise. Only a rotation
// consumes randomness.
func UpdateSyncCommittee(params domain.Params, prev *domain.State, rng *rand.Rand) (domain.Update, error) {
	update := domain.Update{
		Variable:      domain.VariableSyncCommittee,
		SyncCommittee: prev.SyncCommittee,
	}

	epoch := prev.Epoch(params.Dt)
	if !IsSyncCommitteeRotation(epoch, params.Chain.EpochsPerSyncCommitteePeriod) {
		return update, nil
	}
	if prev.NumberOfValidators <= 0 {
		return domain.Update{}, domain.NewDomainError("sync committee rotation", "no validators to sample at epoch %d", epoch)
	}

	update.SyncCommittee = sampleValidators(rng, prev.NumberOfValidators, params.Chain.SyncCommitteeSize)
	update.Rotated = true
	logger.Debug("Run %d: sync committee rotated at epoch %d (%d members)", prev.Run, epoch, len(update.SyncCommittee))
	return update, nil
}
