package services

import (
	"math"
	"math/rand/v2"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

// UpdateRewardPools fills the timestep's consensus reward pools. It is a
// simplified Altair model: every validator holds the maximum effective
// balance and each pool is its weight's share of total base rewards, scaled
// by uptime and by the number of epochs in the timestep.
func UpdateRewardPools(params domain.Params, prev *domain.State, rng *rand.Rand) (domain.Update, error) {
	n := prev.NumberOfValidators
	if n <= 0 {
		return domain.Update{}, domain.NewDomainError("reward pools", "number of validators is %d", n)
	}

	epoch := prev.Epoch(params.Dt)
	uptime := params.UptimeProcess(prev.Run, epoch, rng)
	if err := domain.CheckExogenous("validator uptime", uptime); err != nil {
		return domain.Update{}, err
	}
	total := TotalBaseRewardGwei(n) * uptime * float64(params.Dt) * domain.Gwei

	share := func(weight float64) float64 {
		return total * weight / domain.WeightDenominator
	}

	return domain.Update{
		Variable: domain.VariableRewardPools,
		RewardPools: domain.RewardPools{
			Source:        share(domain.TimelySourceWeight),
			Target:        share(domain.TimelyTargetWeight),
			Head:          share(domain.TimelyHeadWeight),
			Sync:          share(domain.SyncRewardWeight),
			BlockProposer: share(domain.ProposerWeight),
		},
	}, nil
}

// TotalBaseRewardGwei is the sum of base rewards for one epoch when n
// validators each hold the maximum effective balance.
func TotalBaseRewardGwei(n int) float64 {
	if n <= 0 {
		return 0
	}
	totalActiveBalance := float64(n) * domain.MaxEffectiveBalanceGwei
	perIncrement := math.Floor(domain.EffectiveBalanceIncrement * domain.BaseRewardFactor / math.Floor(math.Sqrt(totalActiveBalance)))
	increments := float64(domain.MaxEffectiveBalanceGwei / domain.EffectiveBalanceIncrement)
	return float64(n) * increments * perIncrement
}
