package domain

// Params is the immutable parameter record shared by every run of an
// experiment. Use DefaultParams and the With* methods to derive variants; each
// method returns a modified copy and never touches the receiver.
type Params struct {
	Dt    uint64
	Chain ChainSpec

	GasTargetProcess  Process
	EIP1559TipProcess Process
	MEVProcess        Process
	UptimeProcess     Process
}

// Default exogenous assumptions.
const (
	DefaultTipGwei   = 2.0        // Gwei per gas
	DefaultGasTarget = 15_000_000 // gas per block
	DefaultMEVRate   = 20.0       // 1/ETH, mean 0.05 ETH per block
	DefaultUptime    = 1.0
)

// DefaultParams returns mainnet constants, dt = 1 and the default exogenous
// processes.
func DefaultParams() Params {
	mev, err := ExponentialProcess(DefaultMEVRate)
	if err != nil {
		panic(err)
	}
	return Params{
		Dt:                1,
		Chain:             MainnetChainSpec(),
		GasTargetProcess:  ConstantProcess(DefaultGasTarget),
		EIP1559TipProcess: ConstantProcess(DefaultTipGwei * Gwei),
		MEVProcess:        mev,
		UptimeProcess:     ConstantProcess(DefaultUptime),
	}
}

func (p Params) WithDt(dt uint64) Params {
	p.Dt = dt
	return p
}

func (p Params) WithChainSpec(spec ChainSpec) Params {
	p.Chain = spec
	return p
}

func (p Params) WithSyncCommitteeSize(size uint64) Params {
	p.Chain.SyncCommitteeSize = size
	return p
}

func (p Params) WithSlotsPerEpoch(slots uint64) Params {
	p.Chain.SlotsPerEpoch = slots
	return p
}

func (p Params) WithGasTargetProcess(fn Process) Params {
	p.GasTargetProcess = fn
	return p
}

func (p Params) WithTipProcess(fn Process) Params {
	p.EIP1559TipProcess = fn
	return p
}

func (p Params) WithMEVProcess(fn Process) Params {
	p.MEVProcess = fn
	return p
}

func (p Params) WithUptimeProcess(fn Process) Params {
	p.UptimeProcess = fn
	return p
}

// SlotsPerTimestep is the number of proposer slots covered by one timestep.
func (p Params) SlotsPerTimestep() uint64 {
	return p.Chain.SlotsPerEpoch * p.Dt
}

// Validate checks the parameter record once, before any timestep executes.
func (p Params) Validate() error {
	if p.Dt == 0 {
		return NewConfigError("dt", "must be positive")
	}
	period := p.Chain.EpochsPerSyncCommitteePeriod
	if period == 0 {
		return NewConfigError("epochs_per_sync_committee_period", "must be positive")
	}
	if period%p.Dt != 0 {
		return NewConfigError("dt", "step duration %d must divide sync committee period %d", p.Dt, period)
	}
	switch {
	case p.GasTargetProcess == nil:
		return NewConfigError("gas_target_process", "not set")
	case p.EIP1559TipProcess == nil:
		return NewConfigError("eip1559_tip_process", "not set")
	case p.MEVProcess == nil:
		return NewConfigError("mev_process", "not set")
	case p.UptimeProcess == nil:
		return NewConfigError("validator_uptime_process", "not set")
	}
	return nil
}
