package services

import (
	"math/rand/v2"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

// RewardValidators apportions the timestep's sync, attestation and proposal
// pools into the per-validator accumulator. Draws on rng happen in a fixed
// order: proposer sample first, then the exogenous processes.
//
// Every draw and every precondition comes before the accumulator is touched,
// so a DomainError leaves the rewards exactly as they were.
func RewardValidators(params domain.Params, prev *domain.State, rng *rand.Rand) (domain.Update, error) {
	const op = "reward validators"

	n := prev.NumberOfValidators
	committeeSize := params.Chain.SyncCommitteeSize
	slots := params.SlotsPerTimestep()
	rewards := prev.IndividualValidatorRewards

	switch {
	case n <= 0:
		return domain.Update{}, domain.NewDomainError(op, "number of validators is %d", n)
	case committeeSize == 0:
		return domain.Update{}, domain.NewDomainError(op, "sync committee size is zero")
	case slots == 0:
		return domain.Update{}, domain.NewDomainError(op, "no proposer slots in timestep (slots per epoch %d, dt %d)", params.Chain.SlotsPerEpoch, params.Dt)
	case len(rewards) != n:
		return domain.Update{}, domain.NewDomainError(op, "reward accumulator has %d entries for %d validators", len(rewards), n)
	}
	for _, vi := range prev.SyncCommittee {
		if uint64(vi) >= uint64(n) {
			return domain.Update{}, domain.NewDomainError(op, "sync committee member %d out of range [0, %d)", vi, n)
		}
	}
	if err := checkPools(prev.RewardPools); err != nil {
		return domain.Update{}, err
	}

	epoch := prev.Epoch(params.Dt)
	proposers := sampleValidators(rng, n, slots)
	execution, err := ExecutionReward(params, prev.Run, epoch, rng)
	if err != nil {
		return domain.Update{}, err
	}

	// sync
	perMember := prev.Sync / float64(committeeSize)
	for _, vi := range prev.SyncCommittee {
		rewards[vi] += perMember
	}

	// attestations
	perValidator := prev.Attestation() / float64(n)
	for vi := range rewards {
		rewards[vi] += perValidator
	}

	// proposals
	perProposer := prev.BlockProposer/float64(slots) + execution
	for _, vi := range proposers {
		rewards[vi] += perProposer
	}

	return domain.Update{
		Variable:                   domain.VariableIndividualValidatorRewards,
		IndividualValidatorRewards: rewards,
	}, nil
}

func checkPools(p domain.RewardPools) error {
	pools := []struct {
		name string
		v    float64
	}{
		{"source pool", p.Source},
		{"target pool", p.Target},
		{"head pool", p.Head},
		{"sync pool", p.Sync},
		{"block proposer pool", p.BlockProposer},
	}
	for _, pool := range pools {
		if err := domain.CheckExogenous(pool.name, pool.v); err != nil {
			return err
		}
	}
	return nil
}

// ExecutionReward is the execution-layer revenue of one proposed block: the
// priority tip times the gas target plus MEV. It is evaluated once per
// timestep and paid in full to every sampled proposer. Each process value must
// be finite and non-negative.
func ExecutionReward(params domain.Params, run int, epoch domain.Epoch, rng *rand.Rand) (float64, error) {
	tip := params.EIP1559TipProcess(run, epoch, rng)
	gas := params.GasTargetProcess(run, epoch, rng)
	mev := params.MEVProcess(run, epoch, rng)

	values := []struct {
		name string
		v    float64
	}{
		{"eip1559 tip", tip},
		{"gas target", gas},
		{"mev", mev},
	}
	for _, value := range values {
		if err := domain.CheckExogenous(value.name, value.v); err != nil {
			return 0, err
		}
	}
	reward := tip*gas + mev
	if err := domain.CheckExogenous("execution reward", reward); err != nil {
		return 0, err
	}
	return reward, nil
}
