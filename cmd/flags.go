package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Marketen/rewards-simulator/internal/config"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "YAML experiment file",
		EnvVars: []string{"REWARDSIM_CONFIG"},
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)",
	}
	validatorsFlag = &cli.IntFlag{
		Name:  "validators",
		Usage: "number of validators",
	}
	dtFlag = &cli.Uint64Flag{
		Name:  "dt",
		Usage: "epochs per timestep; must divide the sync committee period",
	}
	yearsFlag = &cli.Float64Flag{
		Name:  "years",
		Usage: "simulated horizon in years",
	}
	runsFlag = &cli.IntFlag{
		Name:  "runs",
		Usage: "number of Monte Carlo runs",
	}
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "experiment seed; run r draws from stream (seed, r)",
	}
	parallelismFlag = &cli.IntFlag{
		Name:  "parallelism",
		Usage: "runs executed concurrently (0 = GOMAXPROCS)",
	}
	tipFlag = &cli.Float64Flag{
		Name:  "tip-gwei",
		Usage: "EIP-1559 priority fee in Gwei per gas",
	}
	gasTargetFlag = &cli.Float64Flag{
		Name:  "gas-target",
		Usage: "gas used per block",
	}
	mevRateFlag = &cli.Float64Flag{
		Name:  "mev-rate",
		Usage: "rate of the exponential MEV distribution in 1/ETH (mean = 1/rate)",
	}
	uptimeFlag = &cli.Float64Flag{
		Name:  "uptime",
		Usage: "validator uptime fraction",
	}
	beaconNodeFlag = &cli.StringFlag{
		Name:  "beacon-node-url",
		Usage: "seed validator count and chain constants from this beacon node",
	}
	metricsAddrFlag = &cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "serve Prometheus metrics on this address, e.g. :9090",
	}
)

var appFlags = []cli.Flag{
	configFlag,
	logLevelFlag,
	validatorsFlag,
	dtFlag,
	yearsFlag,
	runsFlag,
	seedFlag,
	parallelismFlag,
	tipFlag,
	gasTargetFlag,
	mevRateFlag,
	uptimeFlag,
	beaconNodeFlag,
	metricsAddrFlag,
}

// applyFlagOverrides copies every flag the user set onto cfg.
func applyFlagOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet(validatorsFlag.Name) {
		cfg.Validators = c.Int(validatorsFlag.Name)
	}
	if c.IsSet(dtFlag.Name) {
		cfg.Dt = c.Uint64(dtFlag.Name)
	}
	if c.IsSet(yearsFlag.Name) {
		cfg.Years = c.Float64(yearsFlag.Name)
	}
	if c.IsSet(runsFlag.Name) {
		cfg.Runs = c.Int(runsFlag.Name)
	}
	if c.IsSet(seedFlag.Name) {
		cfg.Seed = c.Uint64(seedFlag.Name)
	}
	if c.IsSet(parallelismFlag.Name) {
		cfg.Parallelism = c.Int(parallelismFlag.Name)
	}
	if c.IsSet(tipFlag.Name) {
		cfg.TipGwei = c.Float64(tipFlag.Name)
	}
	if c.IsSet(gasTargetFlag.Name) {
		cfg.GasTarget = c.Float64(gasTargetFlag.Name)
	}
	if c.IsSet(mevRateFlag.Name) {
		cfg.MEVRate = c.Float64(mevRateFlag.Name)
	}
	if c.IsSet(uptimeFlag.Name) {
		cfg.Uptime = c.Float64(uptimeFlag.Name)
	}
	if c.IsSet(beaconNodeFlag.Name) {
		cfg.BeaconNodeURL = c.String(beaconNodeFlag.Name)
	}
	if c.IsSet(metricsAddrFlag.Name) {
		cfg.MetricsAddr = c.String(metricsAddrFlag.Name)
	}
}
