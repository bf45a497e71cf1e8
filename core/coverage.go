package core

import (
	"sort"

	"github.com/signalsfoundry/constellation-validator/model"
)

// checkTargetCoverage compares the targets the clusters claim against the
// scenario's derived target universe. Both gaps are fatal: targets nobody
// observes, and targets the scenario never defined.
func (r *run) checkTargetCoverage() {
	outputTargets := make(map[int]struct{})
	for _, c := range r.clusters {
		for _, t := range c.Targets {
			outputTargets[t] = struct{}{}
		}
	}

	var missing, unknown []int
	covered := 0
	for t := range r.idx.targets {
		if _, ok := outputTargets[t]; !ok {
			missing = append(missing, t)
		}
	}
	for t := range outputTargets {
		if r.idx.hasTarget(t) {
			covered++
		} else {
			unknown = append(unknown, t)
		}
	}
	sort.Ints(missing)
	sort.Ints(unknown)

	if len(missing) > 0 {
		r.errorf("missing targets: %v", missing)
	}
	if len(unknown) > 0 {
		r.errorf("unknown targets: %v", unknown)
	}

	// No input targets means there is nothing to cover; full coverage by
	// convention rather than a zero-division.
	rate := 1.0
	if n := r.idx.targetCount(); n > 0 {
		rate = float64(covered) / float64(n)
	}

	r.details.TargetCoverage = &model.TargetCoverage{
		InputTargets:  r.idx.targetCount(),
		OutputTargets: len(outputTargets),
		CoverageRate:  rate,
	}
}

// checkSatelliteAssignment verifies assignment exclusivity: every satellite
// in at most one cluster, every assigned id known to the scenario. Unused
// satellites are only a utilization concern, so they warn instead of fail.
func (r *run) checkSatelliteAssignment() {
	clustersBySat := make(map[int][]int)
	var duplicated []int // first-detection order, for stable output

	for _, c := range r.clusters {
		for _, sat := range c.Sats {
			clustersBySat[sat] = append(clustersBySat[sat], c.ClusterID)
			if len(clustersBySat[sat]) == 2 {
				duplicated = append(duplicated, sat)
			}
		}
	}

	for _, sat := range duplicated {
		r.errorf("duplicate assignment: satellite %d in clusters %v", sat, clustersBySat[sat])
	}

	var unknown []int
	for sat := range clustersBySat {
		if _, ok := r.idx.satellite(sat); !ok {
			unknown = append(unknown, sat)
		}
	}
	sort.Ints(unknown)
	if len(unknown) > 0 {
		r.errorf("unknown satellites: %v", unknown)
	}

	var unused []int
	for id := range r.idx.satellites {
		if _, ok := clustersBySat[id]; !ok {
			unused = append(unused, id)
		}
	}
	sort.Ints(unused)
	if len(unused) > 0 {
		r.warnf("unused satellites: %v", unused)
	}

	// Assigned counts every distinct id the clusters used, unknown ones
	// included, so the rate can exceed 1 for garbage input. Zero available
	// satellites reads as zero utilization by convention.
	rate := 0.0
	if total := r.idx.satelliteCount(); total > 0 {
		rate = float64(len(clustersBySat)) / float64(total)
	}

	r.details.SatelliteAssignment = &model.SatelliteAssignment{
		TotalSatellites:    r.idx.satelliteCount(),
		AssignedSatellites: len(clustersBySat),
		UtilizationRate:    rate,
	}
}
