package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Marketen/rewards-simulator/internal/application/domain"
)

// Config holds runtime configuration for a simulation experiment.
type Config struct {
	Validators  int     `yaml:"validators"`
	Dt          uint64  `yaml:"dt"`
	Years       float64 `yaml:"years"`
	Runs        int     `yaml:"runs"`
	Seed        uint64  `yaml:"seed"`
	Parallelism int     `yaml:"parallelism"`

	TipGwei   float64 `yaml:"tip_gwei"`   // Gwei per gas
	GasTarget float64 `yaml:"gas_target"` // gas per block
	MEVRate   float64 `yaml:"mev_rate"`   // 1/ETH
	Uptime    float64 `yaml:"uptime"`

	Chain domain.ChainSpec `yaml:"chain"`

	BeaconNodeURL    string `yaml:"beacon_node_url"`
	MetricsAddr      string `yaml:"metrics_addr"`
	ProgressInterval uint64 `yaml:"progress_interval"`
}

// Default returns the values of the reference experiment: 100k validators,
// one year at one epoch per timestep.
func Default() *Config {
	return &Config{
		Validators:  100_000,
		Dt:          1,
		Years:       1,
		Runs:        1,
		Seed:        123,
		Parallelism: 0,
		TipGwei:     domain.DefaultTipGwei,
		GasTarget:   domain.DefaultGasTarget,
		MEVRate:     domain.DefaultMEVRate,
		Uptime:      domain.DefaultUptime,
		Chain:       domain.MainnetChainSpec(),
	}
}

// Load builds the configuration from defaults, then the YAML experiment file
// at path (if non-empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := loadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("read experiment file %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse experiment file %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	if v, ok := env("BEACON_NODE_URL"); ok {
		cfg.BeaconNodeURL = v
	}
	if v, ok := env("REWARDSIM_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"REWARDSIM_VALIDATORS", &cfg.Validators},
		{"REWARDSIM_RUNS", &cfg.Runs},
		{"REWARDSIM_PARALLELISM", &cfg.Parallelism},
	}
	for _, f := range ints {
		if v, ok := env(f.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %q: %w", f.key, v, err)
			}
			*f.dst = n
		}
	}

	uints := []struct {
		key string
		dst *uint64
	}{
		{"REWARDSIM_DT", &cfg.Dt},
		{"REWARDSIM_SEED", &cfg.Seed},
		{"REWARDSIM_PROGRESS_INTERVAL", &cfg.ProgressInterval},
		{"REWARDSIM_SLOTS_PER_EPOCH", &cfg.Chain.SlotsPerEpoch},
		{"REWARDSIM_SYNC_COMMITTEE_SIZE", &cfg.Chain.SyncCommitteeSize},
		{"REWARDSIM_EPOCHS_PER_SYNC_COMMITTEE_PERIOD", &cfg.Chain.EpochsPerSyncCommitteePeriod},
	}
	for _, f := range uints {
		if v, ok := env(f.key); ok {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %q: %w", f.key, v, err)
			}
			*f.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"REWARDSIM_YEARS", &cfg.Years},
		{"REWARDSIM_TIP_GWEI", &cfg.TipGwei},
		{"REWARDSIM_GAS_TARGET", &cfg.GasTarget},
		{"REWARDSIM_MEV_RATE", &cfg.MEVRate},
		{"REWARDSIM_UPTIME", &cfg.Uptime},
	}
	for _, f := range floats {
		if v, ok := env(f.key); ok {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %q: %w", f.key, v, err)
			}
			*f.dst = x
		}
	}
	return nil
}

func env(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// Validate rejects values no experiment can run with. Structural problems are
// ConfigErrors; exogenous values that are negative, NaN or infinite are
// DomainErrors.
func (c *Config) Validate() error {
	switch {
	case c.Validators <= 0:
		return domain.NewConfigError("validators", "must be positive, got %d", c.Validators)
	case c.Runs <= 0:
		return domain.NewConfigError("runs", "must be positive, got %d", c.Runs)
	case !(c.Years > 0):
		return domain.NewConfigError("years", "must be positive, got %v", c.Years)
	case c.Chain.EpochsPerYear == 0:
		return domain.NewConfigError("chain.epochs_per_year", "must be positive")
	}

	exogenous := []struct {
		name string
		v    float64
	}{
		{"tip_gwei", c.TipGwei},
		{"gas_target", c.GasTarget},
		{"uptime", c.Uptime},
	}
	for _, e := range exogenous {
		if err := domain.CheckExogenous(e.name, e.v); err != nil {
			return err
		}
	}
	return nil
}

// Params converts the configuration into the immutable parameter record and
// validates it.
func (c *Config) Params() (domain.Params, error) {
	if err := c.Validate(); err != nil {
		return domain.Params{}, err
	}
	mev, err := domain.ExponentialProcess(c.MEVRate)
	if err != nil {
		return domain.Params{}, fmt.Errorf("mev process: %w", err)
	}

	params := domain.DefaultParams().
		WithDt(c.Dt).
		WithChainSpec(c.Chain).
		WithTipProcess(domain.ConstantProcess(c.TipGwei * domain.Gwei)).
		WithGasTargetProcess(domain.ConstantProcess(c.GasTarget)).
		WithMEVProcess(mev).
		WithUptimeProcess(domain.ConstantProcess(c.Uptime))
	if err := params.Validate(); err != nil {
		return domain.Params{}, err
	}
	return params, nil
}
