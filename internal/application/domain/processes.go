package domain

import (
	"math"
	"math/rand/v2"
)

// Process is an exogenous time series evaluated once per timestep. rng is the
// stream owned by the run; deterministic processes ignore it.
type Process func(run int, epoch Epoch, rng *rand.Rand) float64

// ConstantProcess returns v for every run and epoch.
func ConstantProcess(v float64) Process {
	return func(int, Epoch, *rand.Rand) float64 {
		return v
	}
}

// ExponentialProcess draws an independent exponential sample with the given
// rate (mean 1/rate) on every call.
func ExponentialProcess(rate float64) (Process, error) {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return nil, NewDomainError("exponential process", "rate must be positive and finite, got %v", rate)
	}
	return func(_ int, _ Epoch, rng *rand.Rand) float64 {
		return rng.ExpFloat64() / rate
	}, nil
}

// CheckExogenous rejects a process value that cannot be credited to a
// validator: negative, NaN or infinite.
func CheckExogenous(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return NewDomainError(name, "must be finite and non-negative, got %v", v)
	}
	return nil
}
