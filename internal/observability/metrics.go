package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signalsfoundry/constellation-validator/model"
)

// ValidationCollector bundles Prometheus metrics for validation runs and
// provides a ready-made /metrics handler.
type ValidationCollector struct {
	gatherer prometheus.Gatherer

	Runs     *prometheus.CounterVec
	Findings *prometheus.CounterVec
	Duration prometheus.Histogram

	CoverageRate    prometheus.Gauge
	UtilizationRate prometheus.Gauge
}

// NewValidationCollector registers validation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewValidationCollector(reg prometheus.Registerer) (*ValidationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "validation_runs_total",
		Help: "Total number of completed validation runs, labeled by verdict.",
	}, []string{"verdict"})
	runs, err := registerCounterVec(reg, runs, "validation_runs_total")
	if err != nil {
		return nil, err
	}

	findings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "validation_findings_total",
		Help: "Total number of validation findings, labeled by severity.",
	}, []string{"severity"})
	findings, err = registerCounterVec(reg, findings, "validation_findings_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "validation_duration_seconds",
		Help:    "Wall-clock duration of a single validation run in seconds.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})
	duration, err = registerHistogram(reg, duration, "validation_duration_seconds")
	if err != nil {
		return nil, err
	}

	coverage, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "validation_coverage_rate",
		Help: "Target coverage rate reported by the most recent validation run.",
	}), "validation_coverage_rate")
	if err != nil {
		return nil, err
	}
	utilization, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "validation_utilization_rate",
		Help: "Satellite utilization rate reported by the most recent validation run.",
	}), "validation_utilization_rate")
	if err != nil {
		return nil, err
	}

	return &ValidationCollector{
		gatherer:        gatherer,
		Runs:            runs,
		Findings:        findings,
		Duration:        duration,
		CoverageRate:    coverage,
		UtilizationRate: utilization,
	}, nil
}

// ObserveValidation records one completed validation run: its verdict, the
// number of findings by severity, its duration, and the coverage and
// utilization rates when the run computed them.
func (c *ValidationCollector) ObserveValidation(res model.ValidationResult, d time.Duration) {
	if c == nil {
		return
	}

	verdict := "invalid"
	if res.IsValid {
		verdict = "valid"
	}
	if c.Runs != nil {
		c.Runs.WithLabelValues(verdict).Inc()
	}
	if c.Findings != nil {
		if n := len(res.Errors); n > 0 {
			c.Findings.WithLabelValues("error").Add(float64(n))
		}
		if n := len(res.Warnings); n > 0 {
			c.Findings.WithLabelValues("warning").Add(float64(n))
		}
	}
	if c.Duration != nil {
		c.Duration.Observe(d.Seconds())
	}
	if c.CoverageRate != nil && res.Details.TargetCoverage != nil {
		c.CoverageRate.Set(res.Details.TargetCoverage.CoverageRate)
	}
	if c.UtilizationRate != nil && res.Details.SatelliteAssignment != nil {
		c.UtilizationRate.Set(res.Details.SatelliteAssignment.UtilizationRate)
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ValidationCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
