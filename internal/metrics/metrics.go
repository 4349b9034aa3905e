package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "riskmodel_simulations_total",
		Help: "Simulation runs by outcome.",
	}, []string{"outcome"})

	SimulatedTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "riskmodel_simulated_trials_total",
		Help: "Trials simulated across all runs.",
	})

	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskmodel_simulation_duration_seconds",
		Help:    "Wall time of a single simulation run.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
	})

	LastVaR95 = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "riskmodel_last_var_95",
		Help: "VaR(95%) of the most recent successful run.",
	})

	ScoredRisksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "riskmodel_scored_risks_total",
		Help: "Risks scored, by level.",
	}, []string{"level"})
)

const (
	OutcomeSuccess       = "success"
	OutcomeInvalidConfig = "invalid_config"
	OutcomeError         = "error"
)

var registerOnce sync.Once

// InitMetrics registers the collectors with the default registry. Safe to
// call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SimulationsTotal)
		prometheus.MustRegister(SimulatedTrialsTotal)
		prometheus.MustRegister(SimulationDuration)
		prometheus.MustRegister(LastVaR95)
		prometheus.MustRegister(ScoredRisksTotal)
	})
}
