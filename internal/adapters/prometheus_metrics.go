package adapters

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Marketen/rewards-simulator/internal/application/ports"
)

const metricsNamespace = "rewardsim"

// PrometheusMetrics implements ports.MetricsRecorder with client_golang
// collectors.
type PrometheusMetrics struct {
	timesteps        *prometheus.CounterVec
	timestepDuration prometheus.Histogram
	rotations        *prometheus.CounterVec
	runsCompleted    prometheus.Counter
	runsFailed       prometheus.Counter
}

var _ ports.MetricsRecorder = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates the collectors and registers them on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		timesteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "timesteps_total",
			Help:      "Timesteps executed, by run.",
		}, []string{"run"}),
		timestepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "timestep_duration_seconds",
			Help:      "Wall time of one timestep update.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		rotations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sync_committee_rotations_total",
			Help:      "Sync committee rotations, by run.",
		}, []string{"run"}),
		runsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_completed_total",
			Help:      "Monte Carlo runs that finished.",
		}),
		runsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_failed_total",
			Help:      "Monte Carlo runs that aborted with an error.",
		}),
	}

	for _, c := range []prometheus.Collector{m.timesteps, m.timestepDuration, m.rotations, m.runsCompleted, m.runsFailed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) ObserveTimestep(run int, elapsed time.Duration) {
	m.timesteps.WithLabelValues(strconv.Itoa(run)).Inc()
	m.timestepDuration.Observe(elapsed.Seconds())
}

func (m *PrometheusMetrics) IncRotations(run int) {
	m.rotations.WithLabelValues(strconv.Itoa(run)).Inc()
}

func (m *PrometheusMetrics) IncRunsCompleted() {
	m.runsCompleted.Inc()
}

func (m *PrometheusMetrics) IncRunsFailed() {
	m.runsFailed.Inc()
}

// MetricsHandler serves the collectors gathered by g.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
