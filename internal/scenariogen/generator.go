// Package scenariogen produces randomized constellation scenarios for
// exercising the validation engine and for building training corpora.
// Generation is deterministic for a fixed seed and start time, which keeps
// regression fixtures and batch corpora reproducible across runs.
package scenariogen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/signalsfoundry/constellation-validator/internal/logging"
	"github.com/signalsfoundry/constellation-validator/model"
	"github.com/signalsfoundry/constellation-validator/timectrl"
)

// Generator emits scenarios from a seeded random source. It is not safe
// for concurrent use; construct one generator per goroutine.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	satIDs []int
	log    logging.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the generator's logger. A nil logger is ignored.
func WithLogger(log logging.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// New validates cfg and builds a generator. A zero seed is replaced with
// a time-based one, and a zero start time with the current time.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now().UTC().Truncate(time.Second)
	}

	g := &Generator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		satIDs: gridIDs(cfg.GridRows, cfg.GridCols),
		log:    logging.Noop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log.Debug(context.Background(), "scenario generator ready",
		logging.Int("count", cfg.Count),
		logging.Int("satellites", len(g.satIDs)),
		logging.Any("seed", cfg.Seed),
	)
	return g, nil
}

// gridIDs enumerates satellite ids for a rows x cols grid. The scheme is
// 111 + 10*row + col, matching the constellation naming used throughout
// the mock corpus.
func gridIDs(rows, cols int) []int {
	ids := make([]int, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			ids = append(ids, 111+10*r+c)
		}
	}
	return ids
}

// Generate produces cfg.Count scenarios with timestamps advancing by
// cfg.Step from cfg.Start.
func (g *Generator) Generate() []model.ScenarioInput {
	seq := timectrl.NewSequence(g.cfg.Start, g.cfg.Step)
	out := make([]model.ScenarioInput, 0, g.cfg.Count)
	for i := 0; i < g.cfg.Count; i++ {
		out = append(out, g.scenario(seq.Next()))
	}
	return out
}

// scenario builds a single scenario for the given timestamp. Satellite
// attributes are emitted only for satellites that appear in at least one
// link, and observation edges only reference those satellites, so every
// generated scenario is internally consistent.
func (g *Generator) scenario(ts time.Time) model.ScenarioInput {
	numLinks := g.between(g.cfg.MinSatEdges, g.cfg.MaxSatEdges)
	links := make([]model.LinkEdge, 0, numLinks)
	seen := make(map[int]struct{}, len(g.satIDs))
	for i := 0; i < numLinks; i++ {
		a, b := g.distinctPair()
		links = append(links, model.LinkEdge{
			From:   a,
			To:     b,
			Weight: round2(g.uniform(0.2, 1.0)),
		})
		seen[a] = struct{}{}
		seen[b] = struct{}{}
	}

	connected := make([]int, 0, len(seen))
	for id := range seen {
		connected = append(connected, id)
	}
	sort.Ints(connected)

	sats := make([]model.SatelliteAttr, 0, len(connected))
	for _, id := range connected {
		sats = append(sats, model.SatelliteAttr{
			ID:     id,
			Health: round2(g.uniform(0.5, 1.0)),
			Pos: [3]float64{
				round3(g.uniform(-8000, 8000)),
				round3(g.uniform(-8000, 8000)),
				round3(g.uniform(-8000, 8000)),
			},
		})
	}

	numObs := g.between(g.cfg.MinTargetEdges, g.cfg.MaxTargetEdges)
	obs := make([]model.TargetEdge, 0, numObs)
	for i := 0; i < numObs; i++ {
		obs = append(obs, model.TargetEdge{
			Sat:     connected[g.rng.Intn(len(connected))],
			Target:  1 + g.rng.Intn(g.cfg.TargetCount),
			Quality: round2(g.uniform(0.2, 1.0)),
		})
	}

	strategy := model.StrategyBalanced
	if g.rng.Intn(2) == 1 {
		strategy = model.StrategyQuality
	}

	return model.ScenarioInput{
		Timestamp:      ts.Format(time.RFC3339),
		Strategy:       strategy,
		Satellites:     sats,
		SatelliteLinks: links,
		TargetLinks:    obs,
	}
}

// distinctPair draws an ordered pair of distinct satellite ids.
func (g *Generator) distinctPair() (int, int) {
	i := g.rng.Intn(len(g.satIDs))
	j := g.rng.Intn(len(g.satIDs) - 1)
	if j >= i {
		j++
	}
	return g.satIDs[i], g.satIDs[j]
}

// between draws an integer uniformly from [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// uniform draws a float uniformly from [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// WriteJSON writes scenarios as one indented JSON array, the layout used
// for hand-inspected corpora.
func WriteJSON(w io.Writer, scenarios []model.ScenarioInput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scenarios); err != nil {
		return fmt.Errorf("write scenarios: %w", err)
	}
	return nil
}

// WriteJSONL writes scenarios one JSON object per line, the layout
// consumed by the batch runner.
func WriteJSONL(w io.Writer, scenarios []model.ScenarioInput) error {
	enc := json.NewEncoder(w)
	for i, s := range scenarios {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("write scenario %d: %w", i, err)
		}
	}
	return nil
}

// ConvertJSONToJSONL reads a JSON array of scenarios and rewrites it as
// JSONL. It reports the number of scenarios converted.
func ConvertJSONToJSONL(r io.Reader, w io.Writer) (int, error) {
	var scenarios []model.ScenarioInput
	if err := json.NewDecoder(r).Decode(&scenarios); err != nil {
		return 0, fmt.Errorf("read scenario array: %w", err)
	}
	if err := WriteJSONL(w, scenarios); err != nil {
		return 0, err
	}
	return len(scenarios), nil
}
