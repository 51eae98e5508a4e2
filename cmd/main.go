package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/Marketen/rewards-simulator/internal/adapters"
	"github.com/Marketen/rewards-simulator/internal/application/domain"
	"github.com/Marketen/rewards-simulator/internal/application/ports"
	"github.com/Marketen/rewards-simulator/internal/application/services"
	"github.com/Marketen/rewards-simulator/internal/config"
	"github.com/Marketen/rewards-simulator/internal/logger"
)

func main() {
	app := &cli.App{
		Name:   "rewardsim",
		Usage:  "project per-validator sync, attestation, proposal and MEV rewards",
		Flags:  appFlags,
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.IsSet(logLevelFlag.Name) {
		logger.SetLevel(logger.ParseLevel(c.String(logLevelFlag.Name)))
	}

	cfg, err := config.Load(c.String(configFlag.Name))
	if err != nil {
		return err
	}
	applyFlagOverrides(c, cfg)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle SIGINT / SIGTERM: the current runs are abandoned, nothing is kept.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Warn("Received signal %s, shutting down...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.BeaconNodeURL != "" {
		if err := seedFromBeacon(ctx, c, cfg); err != nil {
			return err
		}
	}

	params, err := cfg.Params()
	if err != nil {
		return err
	}

	var metrics ports.MetricsRecorder = ports.NopMetrics{}
	if cfg.MetricsAddr != "" {
		metrics, err = serveMetrics(ctx, cfg.MetricsAddr)
		if err != nil {
			return err
		}
	}

	timesteps := services.Horizon(cfg.Years, params.Chain, params.Dt)
	logger.Info("Starting rewardsim")
	logger.Info("Validators: %d, dt: %d, timesteps: %d, runs: %d, seed: %d",
		cfg.Validators, params.Dt, timesteps, cfg.Runs, cfg.Seed)
	logger.Info("Tip: %v Gwei/gas, gas target: %v, MEV rate: %v/ETH, uptime: %v",
		cfg.TipGwei, cfg.GasTarget, cfg.MEVRate, cfg.Uptime)

	sim := services.NewSimulation(params, cfg.Validators, timesteps, metrics)
	if cfg.ProgressInterval > 0 {
		sim.ProgressInterval = cfg.ProgressInterval
	}

	start := time.Now()
	results, err := services.NewRunner(sim, cfg.Seed, cfg.Parallelism).Run(ctx, cfg.Runs)
	if err != nil {
		return err
	}

	for _, r := range results {
		logSummary(r)
	}
	logger.Info("Finished %d runs in %s", len(results), time.Since(start).Round(time.Millisecond))
	return nil
}

func seedFromBeacon(ctx context.Context, c *cli.Context, cfg *config.Config) error {
	logger.Info("Beacon node URL: %s", cfg.BeaconNodeURL)
	beaconAdapter, err := adapters.NewBeaconHTTPAdapter(ctx, cfg.BeaconNodeURL)
	if err != nil {
		return err
	}

	spec, err := beaconAdapter.GetChainSpec(ctx, cfg.Chain)
	if err != nil {
		return err
	}
	cfg.Chain = spec

	// An explicit --validators still wins over the live count.
	if !c.IsSet(validatorsFlag.Name) {
		logger.Info("Fetching active validators from beacon node")
		count, err := beaconAdapter.GetActiveValidatorCount(ctx)
		if err != nil {
			return err
		}
		cfg.Validators = count
	}
	logger.Info("Seeded from beacon node: %d validators, %d slots/epoch, sync committee %d every %d epochs",
		cfg.Validators, spec.SlotsPerEpoch, spec.SyncCommitteeSize, spec.EpochsPerSyncCommitteePeriod)
	return nil
}

func serveMetrics(ctx context.Context, addr string) (ports.MetricsRecorder, error) {
	reg := prometheus.NewRegistry()
	metrics, err := adapters.NewPrometheusMetrics(reg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", adapters.MetricsHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	return metrics, nil
}

func logSummary(r *domain.RunResult) {
	s := r.Summary
	logger.Info("Run %d: %d rotations, total %.4f ETH over %d validators", r.Run, r.Rotations, s.Total, s.Validators)
	logger.Info("Run %d: per-validator ETH min %.6f p10 %.6f median %.6f mean %.6f p90 %.6f max %.6f",
		r.Run, s.Min, s.P10, s.Median, s.Mean, s.P90, s.Max)
}
