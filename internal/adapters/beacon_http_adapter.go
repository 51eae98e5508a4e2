package adapters

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
	"github.com/Marketen/rewards-simulator/internal/application/ports"

	"github.com/attestantio/go-eth2-client/api"
	apiv1 "github.com/attestantio/go-eth2-client/api/v1"
	eth2http "github.com/attestantio/go-eth2-client/http"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/rs/zerolog"
)

// beaconHTTPClient implements ports.BeaconChainAdapter using go-eth2-client.
type beaconHTTPClient struct {
	client *eth2http.Service
}

// NewBeaconHTTPAdapter is the constructor used from main.go.
func NewBeaconHTTPAdapter(ctx context.Context, endpoint string) (ports.BeaconChainAdapter, error) {
	customHTTPClient := &nethttp.Client{
		Timeout: 5 * time.Minute, // fetching the full validator set is slow on mainnet
	}

	client, err := eth2http.New(
		ctx,
		eth2http.WithAddress(endpoint),
		eth2http.WithHTTPClient(customHTTPClient),
		eth2http.WithTimeout(2*time.Minute),
		eth2http.WithLogLevel(zerolog.WarnLevel), // client logs only, never the global level
	)
	if err != nil {
		return nil, err
	}

	return &beaconHTTPClient{client: client.(*eth2http.Service)}, nil
}

// GetActiveValidatorCount returns the number of active validators at head.
func (b *beaconHTTPClient) GetActiveValidatorCount(ctx context.Context) (int, error) {
	validators, err := b.client.Validators(ctx, &api.ValidatorsOpts{
		State: "head",
		ValidatorStates: []apiv1.ValidatorState{
			apiv1.ValidatorStateActiveOngoing,
			apiv1.ValidatorStateActiveExiting,
			apiv1.ValidatorStateActiveSlashed,
		},
	})
	if err != nil {
		return 0, err
	}
	return countActive(validators.Data), nil
}

// GetChainSpec overlays the protocol constants the node is configured with on
// base.
func (b *beaconHTTPClient) GetChainSpec(ctx context.Context, base domain.ChainSpec) (domain.ChainSpec, error) {
	resp, err := b.client.Spec(ctx, &api.SpecOpts{})
	if err != nil {
		return domain.ChainSpec{}, err
	}
	return chainSpecFromMap(resp.Data, base)
}

func countActive(validators map[phase0.ValidatorIndex]*apiv1.Validator) int {
	count := 0
	for _, v := range validators {
		if v != nil && v.Status.IsActive() {
			count++
		}
	}
	return count
}

// chainSpecFromMap reads the constants the simulation needs from a parsed
// /eth/v1/config/spec response. Missing keys keep their values from base.
func chainSpecFromMap(data map[string]any, base domain.ChainSpec) (domain.ChainSpec, error) {
	spec := base

	fields := []struct {
		key string
		dst *uint64
	}{
		{key: "SLOTS_PER_EPOCH", dst: &spec.SlotsPerEpoch},
		{key: "SYNC_COMMITTEE_SIZE", dst: &spec.SyncCommitteeSize},
		{key: "EPOCHS_PER_SYNC_COMMITTEE_PERIOD", dst: &spec.EpochsPerSyncCommitteePeriod},
	}
	for _, f := range fields {
		raw, ok := data[f.key]
		if !ok {
			continue
		}
		v, err := specUint(raw)
		if err != nil {
			return domain.ChainSpec{}, fmt.Errorf("spec value %s: %w", f.key, err)
		}
		*f.dst = v
	}

	if seconds, ok := data["SECONDS_PER_SLOT"]; ok && spec.SlotsPerEpoch > 0 {
		if d, ok := seconds.(time.Duration); ok && d > 0 {
			epoch := d * time.Duration(spec.SlotsPerEpoch)
			spec.EpochsPerYear = uint64(365.25 * 24 * float64(time.Hour) / float64(epoch))
		}
	}
	return spec, nil
}

func specUint(raw any) (uint64, error) {
	switch v := raw.(type) {
	case uint64:
		return v, nil
	case phase0.Epoch:
		return uint64(v), nil
	case phase0.Slot:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative value %d", v)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", raw)
	}
}
