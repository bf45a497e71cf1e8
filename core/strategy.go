package core

import (
	"context"
	"math"

	"github.com/signalsfoundry/constellation-validator/internal/logging"
	"github.com/signalsfoundry/constellation-validator/model"
)

// boundKind selects how a sizePolicy constrains cluster sizes.
type boundKind int

const (
	// evenShare allows sizes within a tolerance of total/num_clusters.
	evenShare boundKind = iota
	// hardCap allows sizes up to a fixed maximum.
	hardCap
)

// sizePolicy is one strategy's satellite-count bound. The closed table in
// sizePolicies keeps the strategy dispatch in one place instead of scattered
// branches.
type sizePolicy struct {
	kind      boundKind
	allowance int
}

func (e *Engine) sizePolicies() map[model.Strategy]sizePolicy {
	return map[model.Strategy]sizePolicy{
		model.StrategyBalanced: {kind: evenShare, allowance: e.policy.BalancedTolerance},
		model.StrategyQuality:  {kind: hardCap, allowance: e.policy.QualityMaxSize},
	}
}

// checkStrategyConstraints applies the declared strategy's size bound to
// every cluster. Violations mean the clustering is suboptimal for its own
// objective, not structurally wrong, so they warn rather than fail. Clusters
// without targets are flagged here too; a cluster observing nothing wastes
// its satellites regardless of strategy.
func (r *run) checkStrategyConstraints(ctx context.Context) {
	policy, known := r.eng.sizePolicies()[r.strategy]
	if !known {
		r.eng.log.Debug(ctx, "unknown strategy, skipping size bounds",
			logging.String("strategy", string(r.strategy)))
	}

	total := r.idx.satelliteCount()
	numClusters := len(r.clusters)

	for _, c := range r.clusters {
		size := len(c.Sats)

		if known {
			switch policy.kind {
			case evenShare:
				share := int(math.Round(float64(total) / float64(numClusters)))
				if abs(size-share) > policy.allowance {
					lo := share - policy.allowance
					if lo < 0 {
						lo = 0
					}
					r.warnf("strategy constraint violation: cluster %d size %d outside balanced range [%d,%d]",
						c.ClusterID, size, lo, share+policy.allowance)
				}
			case hardCap:
				if size > policy.allowance {
					r.warnf("strategy constraint violation: cluster %d size %d exceeds quality cap %d",
						c.ClusterID, size, policy.allowance)
				}
			}
		}

		if len(c.Targets) == 0 {
			r.warnf("cluster %d has no targets", c.ClusterID)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
