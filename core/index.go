package core

import (
	"github.com/signalsfoundry/constellation-validator/model"
)

// edgeKey identifies a directed (from, to) pair in one of the edge maps.
type edgeKey struct {
	From, To int
}

// scenarioIndex holds the per-call lookup structures every validation stage
// reads. It is built once from the scenario and never mutated afterwards, so
// the stages can share it without coordination.
type scenarioIndex struct {
	satellites map[int]model.SatelliteAttr
	links      map[edgeKey]float64
	quality    map[edgeKey]float64
	targets    map[int]struct{}
}

// buildScenarioIndex indexes the scenario's satellites, link weights and
// observation qualities for constant-time stage lookups.
//
// The input is treated as trusted: duplicate satellite ids or repeated edges
// overwrite earlier entries (last write wins) without raising an error.
func buildScenarioIndex(in *model.ScenarioInput) *scenarioIndex {
	idx := &scenarioIndex{
		satellites: make(map[int]model.SatelliteAttr, len(in.Satellites)),
		links:      make(map[edgeKey]float64, len(in.SatelliteLinks)),
		quality:    make(map[edgeKey]float64, len(in.TargetLinks)),
		targets:    make(map[int]struct{}),
	}

	for _, sat := range in.Satellites {
		idx.satellites[sat.ID] = sat
	}
	for _, edge := range in.SatelliteLinks {
		idx.links[edgeKey{From: edge.From, To: edge.To}] = edge.Weight
	}
	for _, edge := range in.TargetLinks {
		idx.quality[edgeKey{From: edge.Sat, To: edge.Target}] = edge.Quality
		idx.targets[edge.Target] = struct{}{}
	}

	return idx
}

// satellite returns the attributes for id, if the scenario declared it.
func (idx *scenarioIndex) satellite(id int) (model.SatelliteAttr, bool) {
	sat, ok := idx.satellites[id]
	return sat, ok
}

// linkWeight returns the weight of the link between a and b. Links are
// undirected in effect, so the (a, b) direction is probed first and (b, a)
// second. A pair with no edge in either direction has no weight at all;
// callers must exclude it from averages rather than treat it as zero.
func (idx *scenarioIndex) linkWeight(a, b int) (float64, bool) {
	if w, ok := idx.links[edgeKey{From: a, To: b}]; ok {
		return w, true
	}
	w, ok := idx.links[edgeKey{From: b, To: a}]
	return w, ok
}

// targetQuality returns the observation quality of sat watching target.
// Absent pairs are undefined, same convention as linkWeight.
func (idx *scenarioIndex) targetQuality(sat, target int) (float64, bool) {
	q, ok := idx.quality[edgeKey{From: sat, To: target}]
	return q, ok
}

// hasTarget reports whether id is part of the derived target universe.
func (idx *scenarioIndex) hasTarget(id int) bool {
	_, ok := idx.targets[id]
	return ok
}

func (idx *scenarioIndex) satelliteCount() int { return len(idx.satellites) }

func (idx *scenarioIndex) targetCount() int { return len(idx.targets) }
