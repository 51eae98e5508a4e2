package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantProcess(t *testing.T) {
	p := ConstantProcess(2.5)
	assert.Equal(t, 2.5, p(0, 1, nil))
	assert.Equal(t, 2.5, p(7, 1000, nil))
}

func TestExponentialProcess_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []float64{0, -1, -0.05} {
		_, err := ExponentialProcess(rate)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDomain)
	}
}

func TestExponentialProcess_MeanAndDeterminism(t *testing.T) {
	p, err := ExponentialProcess(DefaultMEVRate)
	require.NoError(t, err)

	draw := func() []float64 {
		rng := rand.New(rand.NewPCG(42, 0))
		out := make([]float64, 20000)
		for i := range out {
			out[i] = p(0, Epoch(i), rng)
		}
		return out
	}

	a, b := draw(), draw()
	require.Equal(t, a, b)

	sum := 0.0
	for _, v := range a {
		require.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1/DefaultMEVRate, sum/float64(len(a)), 0.005)
}
