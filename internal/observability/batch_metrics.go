package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BatchCollector exposes batch-runner-specific Prometheus metrics.
type BatchCollector struct {
	gatherer prometheus.Gatherer

	RecordDuration  prometheus.Histogram
	RecordsInflight prometheus.Gauge
	MalformedTotal  prometheus.Counter
	ValidRatio      prometheus.Gauge
}

// NewBatchCollector registers batch metrics against the provided registerer.
func NewBatchCollector(reg prometheus.Registerer) (*BatchCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	recordHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "batch_record_duration_seconds",
		Help:    "Duration of a single record's parse-and-validate step within a batch run.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})
	recordHistogram, err := registerHistogram(reg, recordHistogram, "batch_record_duration_seconds")
	if err != nil {
		return nil, err
	}

	inflightGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "batch_records_inflight",
		Help: "Number of records currently being validated by batch workers.",
	})
	inflightGauge, err = registerGauge(reg, inflightGauge, "batch_records_inflight")
	if err != nil {
		return nil, err
	}

	malformed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "batch_malformed_records_total",
		Help: "Cumulative number of batch records that could not be parsed.",
	})
	malformed, err = registerCounter(reg, malformed, "batch_malformed_records_total")
	if err != nil {
		return nil, err
	}

	validRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "batch_valid_ratio",
		Help: "Fraction of records judged valid in the most recent completed batch.",
	})
	validRatio, err = registerGauge(reg, validRatio, "batch_valid_ratio")
	if err != nil {
		return nil, err
	}

	return &BatchCollector{
		gatherer:        gatherer,
		RecordDuration:  recordHistogram,
		RecordsInflight: inflightGauge,
		MalformedTotal:  malformed,
		ValidRatio:      validRatio,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *BatchCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveRecord records how long one record took to parse and validate.
func (c *BatchCollector) ObserveRecord(d time.Duration) {
	if c == nil || c.RecordDuration == nil {
		return
	}
	c.RecordDuration.Observe(d.Seconds())
}

// IncInflight marks one record as entering validation.
func (c *BatchCollector) IncInflight() {
	if c == nil || c.RecordsInflight == nil {
		return
	}
	c.RecordsInflight.Inc()
}

// DecInflight marks one record as done.
func (c *BatchCollector) DecInflight() {
	if c == nil || c.RecordsInflight == nil {
		return
	}
	c.RecordsInflight.Dec()
}

// IncMalformed counts a record that could not be parsed.
func (c *BatchCollector) IncMalformed() {
	if c == nil || c.MalformedTotal == nil {
		return
	}
	c.MalformedTotal.Inc()
}

// SetValidRatio sets the valid fraction for the last completed batch.
func (c *BatchCollector) SetValidRatio(ratio float64) {
	if c == nil || c.ValidRatio == nil {
		return
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	c.ValidRatio.Set(ratio)
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
