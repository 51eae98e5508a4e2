package ports

import (
	"context"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

// BeaconChainAdapter is the hexagonal port for seeding a simulation from a
// live beacon node. The simulation depends only on this interface, not on any
// concrete client.
type BeaconChainAdapter interface {
	// GetActiveValidatorCount returns the number of active validators at head.
	GetActiveValidatorCount(ctx context.Context) (int, error)

	// GetChainSpec returns base with the protocol constants advertised by
	// the node written over it.
	GetChainSpec(ctx context.Context, base domain.ChainSpec) (domain.ChainSpec, error)
}
