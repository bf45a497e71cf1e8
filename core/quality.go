package core

import (
	"github.com/signalsfoundry/constellation-validator/model"
)

// checkLinkQuality averages the intra-cluster link weights of every cluster
// with at least two members. Pairs without a defined weight are excluded
// from numerator and denominator alike; a cluster with no defined pair has
// no average at all and neither warns nor dilutes the aggregate.
func (r *run) checkLinkQuality() {
	totalStrength := 0.0
	scored := 0

	for _, c := range r.clusters {
		if len(c.Sats) < 2 {
			continue
		}

		sum := 0.0
		pairs := 0
		for i, a := range c.Sats {
			for _, b := range c.Sats[i+1:] {
				if w, ok := r.idx.linkWeight(a, b); ok {
					sum += w
					pairs++
				}
			}
		}
		if pairs == 0 {
			continue
		}

		avg := sum / float64(pairs)
		totalStrength += avg
		scored++

		if avg < r.eng.policy.LinkStrengthMin {
			r.warnf("cluster %d avg link strength low: %.3f", c.ClusterID, avg)
		}
	}

	if scored > 0 {
		r.details.LinkQuality = &model.LinkQuality{
			OverallAvgStrength: totalStrength / float64(scored),
			ClusterCount:       scored,
		}
	}
}

// checkObservationQuality averages each cluster's defined (satellite, target)
// observation qualities, with the same defined-pairs-only convention as
// checkLinkQuality. Single-satellite clusters still score here; one satellite
// can observe on its own even though it has no intra-cluster links.
func (r *run) checkObservationQuality() {
	totalQuality := 0.0
	scored := 0

	for _, c := range r.clusters {
		sum := 0.0
		pairs := 0
		for _, sat := range c.Sats {
			for _, target := range c.Targets {
				if q, ok := r.idx.targetQuality(sat, target); ok {
					sum += q
					pairs++
				}
			}
		}
		if pairs == 0 {
			continue
		}

		avg := sum / float64(pairs)
		totalQuality += avg
		scored++

		if avg < r.eng.policy.ObservationQualityMin {
			r.warnf("cluster %d avg observation quality low: %.3f", c.ClusterID, avg)
		}
	}

	if scored > 0 {
		r.details.ObservationQuality = &model.ObservationQuality{
			OverallAvgQuality: totalQuality / float64(scored),
			ClusterCount:      scored,
		}
	}
}

// checkHealth flags weak masters and weak clusters. A master unknown to the
// scenario produces no health warning here (the assignment stage already
// reported the unknown id); an unknown member still drags the cluster mean
// down by contributing zero. Empty clusters are excluded from scoring.
func (r *run) checkHealth() {
	for _, c := range r.clusters {
		if len(c.Sats) == 0 {
			continue
		}

		if master, ok := r.idx.satellite(c.Master); ok {
			if master.Health < r.eng.policy.MasterHealthMin {
				r.warnf("cluster %d master %d health low: %.3f", c.ClusterID, c.Master, master.Health)
			}
		}

		sum := 0.0
		for _, id := range c.Sats {
			if sat, ok := r.idx.satellite(id); ok {
				sum += sat.Health
			}
		}
		avg := sum / float64(len(c.Sats))
		if avg < r.eng.policy.AvgHealthMin {
			r.warnf("cluster %d avg health low: %.3f", c.ClusterID, avg)
		}
	}
}
