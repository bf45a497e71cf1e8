package core

import (
	"bytes"
	"encoding/json"

	"github.com/signalsfoundry/constellation-validator/model"
)

// clusterFields are the members every cluster object must carry, checked in
// this order so findings are stable across runs.
var clusterFields = []string{"cluster_id", "master", "sats", "targets"}

// checkDocumentStructure verifies the document-level contract: a JSON object
// with a clusters array whose elements are well-typed cluster objects. It
// reports true when any structural problem was found, which stops the
// remaining stages; they assume the structural contract holds.
//
// Document-level problems (no object, no clusters array) yield a single
// fatal finding. Per-cluster problems are each reported individually; a
// cluster that fails a field check keeps the zero value for that field.
func (r *run) checkDocumentStructure(doc []byte) bool {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || isNull(trimmed) {
		r.errorf("output is empty")
		return true
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		r.errorf("output is not a JSON object")
		return true
	}

	rawClusters, ok := top["clusters"]
	if !ok || isNull(rawClusters) {
		r.errorf("output missing clusters field")
		return true
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(rawClusters, &elems); err != nil {
		r.errorf("clusters field must be an array")
		return true
	}

	r.clusters = make([]model.Cluster, len(elems))
	for i, raw := range elems {
		r.checkClusterElement(i, raw)
	}

	return len(r.errors) > 0
}

// checkCandidateStructure is the typed counterpart of checkDocumentStructure.
// Field presence and typing are already guaranteed by the Go types, leaving
// only the candidate itself and intra-cluster duplicates to check.
func (r *run) checkCandidateStructure(candidate *model.CandidateOutput) bool {
	if candidate == nil {
		r.errorf("output is empty")
		return true
	}

	r.clusters = candidate.Clusters
	for i, c := range r.clusters {
		r.checkClusterSatDuplicates(i, c.Sats)
	}

	return len(r.errors) > 0
}

// checkClusterElement validates one raw clusters[] element. All field checks
// run even after one fails; they concern different fields.
func (r *run) checkClusterElement(i int, raw json.RawMessage) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || isNull(raw) {
		r.errorf("cluster %d must be an object", i)
		return
	}

	cluster := model.Cluster{}
	for _, name := range clusterFields {
		value, ok := fields[name]
		if !ok {
			r.errorf("cluster %d missing required field: %s", i, name)
			continue
		}

		switch name {
		case "cluster_id":
			cluster.ClusterID = r.intField(i, name, value)
		case "master":
			cluster.Master = r.intField(i, name, value)
		case "sats":
			cluster.Sats = r.intSliceField(i, name, value)
		case "targets":
			cluster.Targets = r.intSliceField(i, name, value)
		}
	}

	r.checkClusterSatDuplicates(i, cluster.Sats)
	r.clusters[i] = cluster
}

// intField decodes an integer scalar, reporting a finding and returning zero
// when the value has any other shape (including null and non-integral
// numbers; satellite and cluster ids are whole numbers by contract).
func (r *run) intField(i int, name string, raw json.RawMessage) int {
	var v int
	if isNull(raw) || json.Unmarshal(raw, &v) != nil {
		r.errorf("cluster %d field %s must be an integer", i, name)
		return 0
	}
	return v
}

// intSliceField decodes an array of integer ids, reporting a finding and
// returning nil on any other shape.
func (r *run) intSliceField(i int, name string, raw json.RawMessage) []int {
	var v []int
	if isNull(raw) || json.Unmarshal(raw, &v) != nil {
		r.errorf("cluster %d field %s must be an array of integers", i, name)
		return nil
	}
	return v
}

// checkClusterSatDuplicates reports each satellite id that appears more than
// once within a single cluster's sats, once per duplicated id.
func (r *run) checkClusterSatDuplicates(i int, sats []int) {
	seen := make(map[int]struct{}, len(sats))
	reported := make(map[int]struct{})
	for _, sat := range sats {
		if _, dup := seen[sat]; dup {
			if _, done := reported[sat]; !done {
				r.errorf("cluster %d: duplicate satellite within cluster: %d", i, sat)
				reported[sat] = struct{}{}
			}
			continue
		}
		seen[sat] = struct{}{}
	}
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
