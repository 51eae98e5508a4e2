package services

import (
	"slices"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

// Summarize computes distribution statistics of a reward accumulator.
// Percentiles use the nearest-rank method.
func Summarize(rewards []float64) domain.RewardSummary {
	if len(rewards) == 0 {
		return domain.RewardSummary{}
	}

	sorted := slices.Clone(rewards)
	slices.Sort(sorted)

	total := 0.0
	for _, r := range sorted {
		total += r
	}

	n := len(sorted)
	return domain.RewardSummary{
		Validators: n,
		Total:      total,
		Mean:       total / float64(n),
		Min:        sorted[0],
		Max:        sorted[n-1],
		Median:     percentile(sorted, 50),
		P10:        percentile(sorted, 10),
		P90:        percentile(sorted, 90),
	}
}

func percentile(sorted []float64, p int) float64 {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
