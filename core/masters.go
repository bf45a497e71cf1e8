package core

// checkMasterNodes verifies master membership and uniqueness, and that no
// cluster is empty. Membership and emptiness findings come out in cluster
// order; duplicate masters are reported once each, in first-appearance
// order. An empty cluster fails both the membership check and the
// emptiness check.
func (r *run) checkMasterNodes() {
	clustersByMaster := make(map[int][]int)
	var masterOrder []int

	for _, c := range r.clusters {
		if !containsInt(c.Sats, c.Master) {
			r.errorf("cluster %d: master %d not in its own cluster", c.ClusterID, c.Master)
		}
		if _, seen := clustersByMaster[c.Master]; !seen {
			masterOrder = append(masterOrder, c.Master)
		}
		clustersByMaster[c.Master] = append(clustersByMaster[c.Master], c.ClusterID)
	}

	for _, master := range masterOrder {
		if ids := clustersByMaster[master]; len(ids) > 1 {
			r.errorf("duplicate master %d in clusters %v", master, ids)
		}
	}

	for _, c := range r.clusters {
		if len(c.Sats) == 0 {
			r.errorf("cluster %d: empty cluster", c.ClusterID)
		}
	}
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
