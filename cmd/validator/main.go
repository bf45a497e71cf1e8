package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/constellation-validator/core"
	"github.com/signalsfoundry/constellation-validator/internal/batch"
	"github.com/signalsfoundry/constellation-validator/internal/logging"
	"github.com/signalsfoundry/constellation-validator/internal/observability"
	"github.com/signalsfoundry/constellation-validator/model"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("validator", flag.ExitOnError)
	scenarioPath := fs.String("input", "", "path to the scenario JSON the clustering is validated against")
	candidatePath := fs.String("output", "", "path to the clustering to validate (JSON document or raw model text)")
	batchPath := fs.String("batch", "", "path to a JSONL corpus; validates every record instead of a single pair")
	policyPath := fs.String("policy", "", "optional YAML file overriding the default validation policy")
	workers := fs.Int("workers", 0, "batch worker count (default: one per CPU)")
	failFast := fs.Bool("fail-fast", false, "stop a batch run at the first failing record")
	maxFailures := fs.Int("max-failures", batch.DefaultMaxReportFailures, "per-record failures to list in the batch summary")
	metricsAddr := fs.String("metrics-addr", "", "optional HTTP address for Prometheus /metrics, e.g. :9090")
	fs.Parse(args)

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		return 1
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	policy, err := loadPolicy(*policyPath)
	if err != nil {
		log.Error(ctx, "failed to load policy", logging.String("path", *policyPath), logging.String("error", err.Error()))
		return 1
	}
	eng := core.NewEngine(core.WithPolicy(policy), core.WithLogger(log))

	var runsCollector *observability.ValidationCollector
	var batchCollector *observability.BatchCollector
	var metricsSrv *http.Server
	if *metricsAddr != "" {
		runsCollector, err = observability.NewValidationCollector(nil)
		if err == nil {
			batchCollector, err = observability.NewBatchCollector(nil)
		}
		if err != nil {
			log.Error(ctx, "failed to initialise metrics collectors", logging.String("error", err.Error()))
			return 1
		}
		metricsSrv = serveMetrics(*metricsAddr, runsCollector, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}()
	}

	switch {
	case *batchPath != "":
		return runBatch(ctx, eng, *batchPath, *workers, *failFast, *maxFailures, batchCollector, runsCollector, log)
	case *scenarioPath != "" && *candidatePath != "":
		return runSingle(ctx, eng, *scenarioPath, *candidatePath, runsCollector, log)
	default:
		fmt.Fprintln(os.Stderr, "usage: validator -input scenario.json -output clusters.json")
		fmt.Fprintln(os.Stderr, "       validator -batch corpus.jsonl")
		fs.PrintDefaults()
		return 2
	}
}

// runSingle validates one scenario/clustering pair and prints the report.
// Output text with no recoverable candidate JSON is validated as an empty
// output, so the verdict still comes back as a report.
func runSingle(ctx context.Context, eng *core.Engine, scenarioPath, candidatePath string, collector *observability.ValidationCollector, log logging.Logger) int {
	scenario, err := loadScenario(scenarioPath)
	if err != nil {
		log.Error(ctx, "failed to load scenario", logging.String("path", scenarioPath), logging.String("error", err.Error()))
		return 1
	}

	raw, err := os.ReadFile(candidatePath)
	if err != nil {
		log.Error(ctx, "failed to read clustering output", logging.String("path", candidatePath), logging.String("error", err.Error()))
		return 1
	}
	doc, err := core.ExtractCandidateDocument(string(raw))
	if err != nil {
		log.Warn(ctx, "no candidate JSON in output", logging.String("path", candidatePath))
		doc = nil
	}

	start := time.Now()
	res := eng.ValidateDocument(ctx, scenario, doc)
	collector.ObserveValidation(res, time.Since(start))

	fmt.Println(core.RenderReport(res))
	if !res.IsValid {
		return 1
	}
	return 0
}

// runBatch validates a JSONL corpus and prints the summary plus the
// retained per-record failures.
func runBatch(ctx context.Context, eng *core.Engine, path string, workers int, failFast bool, maxFailures int, batchCollector *observability.BatchCollector, runsCollector *observability.ValidationCollector, log logging.Logger) int {
	runner := batch.NewRunner(eng,
		batch.WithWorkers(workers),
		batch.WithFailFast(failFast),
		batch.WithMaxReportFailures(maxFailures),
		batch.WithRunnerLogger(log),
		batch.WithCollectors(batchCollector, runsCollector),
	)

	summary, err := runner.RunFile(ctx, path)
	if err != nil && summary.Records == 0 {
		log.Error(ctx, "batch run failed", logging.String("path", path), logging.String("error", err.Error()))
		return 1
	}

	fmt.Println(summary)
	for _, f := range summary.Failures {
		fmt.Printf("line %d:\n", f.Line)
		for _, msg := range f.Messages {
			fmt.Printf("  - %s\n", msg)
		}
	}
	if err != nil || summary.Invalid > 0 || summary.Malformed > 0 {
		return 1
	}
	return 0
}

func loadScenario(path string) (*model.ScenarioInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return core.LoadScenario(f)
}

func loadPolicy(path string) (core.Policy, error) {
	if path == "" {
		return core.DefaultPolicy(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return core.Policy{}, err
	}
	defer f.Close()
	return core.LoadPolicy(f)
}

func serveMetrics(addr string, collector *observability.ValidationCollector, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
