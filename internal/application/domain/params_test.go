package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate_DtMustDividePeriod(t *testing.T) {
	tests := []struct {
		name    string
		dt      uint64
		wantErr bool
	}{
		{name: "dt 1", dt: 1},
		{name: "dt 2", dt: 2},
		{name: "dt 256", dt: 256},
		{name: "dt 3", dt: 3, wantErr: true},
		{name: "dt 512", dt: 512, wantErr: true},
		{name: "dt 0", dt: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultParams().WithDt(tt.dt).Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "dt", cfgErr.Field)
			assert.ErrorIs(t, err, ErrConfig)
			assert.NotErrorIs(t, err, ErrDomain)
		})
	}
}

func TestParamsValidate_MissingProcess(t *testing.T) {
	err := DefaultParams().WithMEVProcess(nil).Validate()
	require.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "mev_process")
}

func TestParamsBuilderDoesNotMutateReceiver(t *testing.T) {
	base := DefaultParams()
	derived := base.WithDt(4).WithSyncCommitteeSize(2).WithSlotsPerEpoch(8)

	assert.Equal(t, uint64(1), base.Dt)
	assert.Equal(t, uint64(SyncCommitteeSize), base.Chain.SyncCommitteeSize)
	assert.Equal(t, uint64(SlotsPerEpoch), base.Chain.SlotsPerEpoch)

	assert.Equal(t, uint64(4), derived.Dt)
	assert.Equal(t, uint64(2), derived.Chain.SyncCommitteeSize)
	assert.Equal(t, uint64(32), derived.SlotsPerTimestep())
}
