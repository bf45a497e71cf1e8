//go:build perf || perf_large

package perf

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/signalsfoundry/constellation-validator/core"
	"github.com/signalsfoundry/constellation-validator/internal/batch"
	"github.com/signalsfoundry/constellation-validator/internal/scenariogen"
	"github.com/signalsfoundry/constellation-validator/model"
)

type perfConfig struct {
	Scenarios   int
	GridRows    int
	GridCols    int
	TargetCount int
	SatEdges    int
	TargetEdges int
	Workers     int
}

func benchmarkValidate(b *testing.B, cfg perfConfig) {
	ctx := context.Background()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		scenarios, candidates := buildWorkload(b, cfg, int64(i+1))
		eng := core.NewEngine()

		b.ResetTimer()
		for j := range scenarios {
			res := eng.Validate(ctx, &scenarios[j], candidates[j])
			if !res.IsValid {
				b.Fatalf("workload clustering %d judged invalid: %v", j, res.Errors)
			}
		}
		b.StopTimer()
	}
}

func benchmarkValidateDocument(b *testing.B, cfg perfConfig) {
	ctx := context.Background()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		scenarios, candidates := buildWorkload(b, cfg, int64(i+1))
		docs := make([][]byte, len(candidates))
		for j, c := range candidates {
			doc, err := json.Marshal(c)
			if err != nil {
				b.Fatalf("marshal candidate %d: %v", j, err)
			}
			docs[j] = doc
		}
		eng := core.NewEngine()

		b.ResetTimer()
		for j := range scenarios {
			res := eng.ValidateDocument(ctx, &scenarios[j], docs[j])
			if !res.IsValid {
				b.Fatalf("workload document %d judged invalid: %v", j, res.Errors)
			}
		}
		b.StopTimer()
	}
}

func benchmarkExtract(b *testing.B, cfg perfConfig) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, candidates := buildWorkload(b, cfg, int64(i+1))
		texts := make([]string, len(candidates))
		for j, c := range candidates {
			doc, err := json.Marshal(c)
			if err != nil {
				b.Fatalf("marshal candidate %d: %v", j, err)
			}
			texts[j] = "Grouping the constellation.\n```json\n" + string(doc) + "\n```"
		}

		b.ResetTimer()
		for j, text := range texts {
			if _, err := core.ExtractCandidateDocument(text); err != nil {
				b.Fatalf("extract candidate %d: %v", j, err)
			}
		}
		b.StopTimer()
	}
}

func benchmarkBatchRun(b *testing.B, cfg perfConfig) {
	ctx := context.Background()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		corpus := buildCorpus(b, cfg, int64(i+1))
		runner := batch.NewRunner(core.NewEngine(), batch.WithWorkers(cfg.Workers))

		b.ResetTimer()
		summary, err := runner.Run(ctx, bytes.NewReader(corpus))
		if err != nil {
			b.Fatalf("batch run: %v", err)
		}
		if summary.Valid != cfg.Scenarios {
			b.Fatalf("batch run judged %d records valid, want %d", summary.Valid, cfg.Scenarios)
		}
		b.StopTimer()
	}
}

func buildWorkload(b *testing.B, cfg perfConfig, seed int64) ([]model.ScenarioInput, []*model.CandidateOutput) {
	b.Helper()

	gen, err := scenariogen.New(genConfig(cfg, seed))
	if err != nil {
		b.Fatalf("scenariogen.New: %v", err)
	}
	scenarios := gen.Generate()
	candidates := make([]*model.CandidateOutput, len(scenarios))
	for i := range scenarios {
		candidates[i] = splitClustering(scenarios[i])
	}
	return scenarios, candidates
}

func buildCorpus(b *testing.B, cfg perfConfig, seed int64) []byte {
	b.Helper()

	scenarios, candidates := buildWorkload(b, cfg, seed)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range scenarios {
		if err := enc.Encode(map[string]any{
			"input":  scenarios[i],
			"output": candidates[i],
		}); err != nil {
			b.Fatalf("encode record %d: %v", i, err)
		}
	}
	return buf.Bytes()
}

func genConfig(cfg perfConfig, seed int64) scenariogen.Config {
	gc := scenariogen.DefaultConfig()
	gc.Seed = seed
	gc.Count = cfg.Scenarios
	gc.Start = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	gc.GridRows = cfg.GridRows
	gc.GridCols = cfg.GridCols
	gc.TargetCount = cfg.TargetCount
	gc.MinSatEdges = cfg.SatEdges
	gc.MaxSatEdges = cfg.SatEdges
	gc.MinTargetEdges = cfg.TargetEdges
	gc.MaxTargetEdges = cfg.TargetEdges
	return gc
}

// splitClustering partitions the scenario's satellites into two clusters
// carrying the full target universe, which is error-free by construction.
func splitClustering(in model.ScenarioInput) *model.CandidateOutput {
	ids := make([]int, 0, len(in.Satellites))
	for _, sat := range in.Satellites {
		ids = append(ids, sat.ID)
	}
	sort.Ints(ids)

	targetSet := make(map[int]struct{})
	for _, e := range in.TargetLinks {
		targetSet[e.Target] = struct{}{}
	}
	targets := make([]int, 0, len(targetSet))
	for id := range targetSet {
		targets = append(targets, id)
	}
	sort.Ints(targets)

	half := len(ids) / 2
	return &model.CandidateOutput{
		Clusters: []model.Cluster{
			{ClusterID: 1, Master: ids[0], Sats: ids[:half], Targets: targets},
			{ClusterID: 2, Master: ids[half], Sats: ids[half:], Targets: targets},
		},
	}
}
