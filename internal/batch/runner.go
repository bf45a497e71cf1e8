package batch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/signalsfoundry/constellation-validator/core"
	"github.com/signalsfoundry/constellation-validator/internal/logging"
	"github.com/signalsfoundry/constellation-validator/internal/observability"
	"github.com/signalsfoundry/constellation-validator/model"
	"golang.org/x/sync/errgroup"
)

// ErrRecordInvalid is the error a fail-fast run stops with when a record
// fails validation.
var ErrRecordInvalid = errors.New("record failed validation")

// maxRecordBytes bounds a single JSONL line. Model outputs carry reasoning
// text, so lines run far past bufio's default token size.
const maxRecordBytes = 16 << 20

// DefaultMaxReportFailures caps how many per-record failures a summary
// retains.
const DefaultMaxReportFailures = 20

// Runner validates a JSONL corpus concurrently against one engine.
type Runner struct {
	engine  *core.Engine
	log     logging.Logger
	metrics *observability.BatchCollector
	runs    *observability.ValidationCollector

	workers           int
	failFast          bool
	maxReportFailures int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets the number of concurrent validation workers.
// Non-positive values keep the default of one worker per CPU.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithFailFast makes the run stop scheduling new records after the first
// malformed or invalid one.
func WithFailFast(enabled bool) RunnerOption {
	return func(r *Runner) { r.failFast = enabled }
}

// WithMaxReportFailures caps the per-record failures retained in the
// summary. Zero keeps counts only.
func WithMaxReportFailures(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 0 {
			r.maxReportFailures = n
		}
	}
}

// WithRunnerLogger sets the runner's logger. A nil logger is ignored.
func WithRunnerLogger(log logging.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithCollectors attaches Prometheus collectors for per-record and
// per-run metrics. Either collector may be nil.
func WithCollectors(batch *observability.BatchCollector, runs *observability.ValidationCollector) RunnerOption {
	return func(r *Runner) {
		r.metrics = batch
		r.runs = runs
	}
}

// NewRunner builds a runner around the given engine. A nil engine gets a
// default one.
func NewRunner(engine *core.Engine, opts ...RunnerOption) *Runner {
	if engine == nil {
		engine = core.NewEngine()
	}
	r := &Runner{
		engine:            engine,
		log:               logging.Noop(),
		workers:           runtime.NumCPU(),
		maxReportFailures: DefaultMaxReportFailures,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordFailure describes one failed record for the summary.
type RecordFailure struct {
	Line     int
	Messages []string
}

// Summary aggregates a batch run. Records = Valid + Invalid + Malformed;
// Errors and Warnings count individual findings across validated records.
type Summary struct {
	Records   int
	Valid     int
	Invalid   int
	Malformed int
	Errors    int
	Warnings  int
	Duration  time.Duration
	Failures  []RecordFailure
}

// ValidRatio is the fraction of records judged valid, zero for an empty run.
func (s Summary) ValidRatio() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Valid) / float64(s.Records)
}

func (s Summary) String() string {
	return fmt.Sprintf("records=%d valid=%d invalid=%d malformed=%d errors=%d warnings=%d valid_ratio=%.1f%% duration=%s",
		s.Records, s.Valid, s.Invalid, s.Malformed, s.Errors, s.Warnings, 100*s.ValidRatio(), s.Duration.Round(time.Millisecond))
}

// outcome is one record's result slot. Slots left at their zero value were
// never scheduled (fail-fast cancellation) and are skipped in the reduce.
type outcome struct {
	line      int
	malformed error
	res       model.ValidationResult
}

// RunFile validates the JSONL file at path.
func (r *Runner) RunFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open batch input: %w", err)
	}
	defer f.Close()
	return r.Run(ctx, f)
}

// Run validates every record read from input. Records are processed
// concurrently but reduced in input order, so the summary is deterministic
// for a given corpus. Unless fail-fast is on, per-record problems are
// reported through the summary rather than as an error.
func (r *Runner) Run(ctx context.Context, input io.Reader) (Summary, error) {
	start := time.Now()

	// One run_id tags the whole pass; workers read the annotated logger
	// back off the context.
	ctx, log := logging.WithRunLogger(ctx, r.log)
	ctx = logging.ContextWithLogger(ctx, log)

	type job struct {
		line int
		data []byte
	}
	var jobs []job
	sc := bufio.NewScanner(input)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		jobs = append(jobs, job{line: lineNo, data: append([]byte(nil), data...)})
	}
	if err := sc.Err(); err != nil {
		return Summary{}, fmt.Errorf("read batch input: %w", err)
	}

	outcomes := make([]outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return r.process(gctx, j.line, j.data, &outcomes[i])
		})
	}
	runErr := g.Wait()

	summary := r.reduce(outcomes, time.Since(start))
	log.Info(ctx, "batch run finished",
		logging.Int("records", summary.Records),
		logging.Int("valid", summary.Valid),
		logging.Int("invalid", summary.Invalid),
		logging.Int("malformed", summary.Malformed),
		logging.Float64("valid_ratio", summary.ValidRatio()),
		logging.String("duration", summary.Duration.Round(time.Millisecond).String()),
	)
	return summary, runErr
}

func (r *Runner) process(ctx context.Context, line int, data []byte, out *outcome) error {
	ctx, span := startRecordSpan(ctx, line)
	defer span.End()

	log := logging.LoggerFromContext(ctx)
	if log == nil {
		log = r.log
	}

	r.metrics.IncInflight()
	defer r.metrics.DecInflight()

	start := time.Now()
	out.line = line

	rec, err := ParseRecord(data)
	if err != nil {
		out.malformed = err
		r.metrics.IncMalformed()
		span.RecordError(err)
		log.Warn(ctx, "record unparseable",
			logging.Int("line", line),
			logging.String("error", err.Error()),
		)
		if r.failFast {
			return fmt.Errorf("line %d: %w", line, err)
		}
		return nil
	}

	res := r.engine.ValidateDocument(ctx, rec.Scenario, rec.Candidate)
	elapsed := time.Since(start)
	out.res = res

	r.metrics.ObserveRecord(elapsed)
	r.runs.ObserveValidation(res, elapsed)
	annotateVerdict(span, res)

	if r.failFast && !res.IsValid {
		return fmt.Errorf("line %d: %w", line, ErrRecordInvalid)
	}
	return nil
}

func (r *Runner) reduce(outcomes []outcome, elapsed time.Duration) Summary {
	s := Summary{Duration: elapsed}
	for _, o := range outcomes {
		if o.line == 0 {
			continue
		}
		s.Records++
		switch {
		case o.malformed != nil:
			s.Malformed++
			s.addFailure(r.maxReportFailures, RecordFailure{
				Line:     o.line,
				Messages: []string{o.malformed.Error()},
			})
		case o.res.IsValid:
			s.Valid++
			s.Warnings += len(o.res.Warnings)
		default:
			s.Invalid++
			s.Errors += len(o.res.Errors)
			s.Warnings += len(o.res.Warnings)
			s.addFailure(r.maxReportFailures, RecordFailure{
				Line:     o.line,
				Messages: o.res.Errors,
			})
		}
	}
	if s.Records > 0 {
		r.metrics.SetValidRatio(s.ValidRatio())
	}
	return s
}

func (s *Summary) addFailure(limit int, f RecordFailure) {
	if len(s.Failures) >= limit {
		return
	}
	s.Failures = append(s.Failures, f)
}
