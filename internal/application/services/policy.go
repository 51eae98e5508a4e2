package services

import (
	"math/rand/v2"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

// Policy computes one partial state update from the state left by the
// previous substep. Policies draw randomness only from rng, which is owned by
// the run.
type Policy func(params domain.Params, prev *domain.State, rng *rand.Rand) (domain.Update, error)

// sampleValidators draws k indices uniformly from [0, n) with replacement.
func sampleValidators(rng *rand.Rand, n int, k uint64) []domain.ValidatorIndex {
	out := make([]domain.ValidatorIndex, k)
	for i := range out {
		out[i] = domain.ValidatorIndex(rng.IntN(n))
	}
	return out
}
