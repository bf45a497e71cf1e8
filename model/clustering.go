package model

// Cluster is one proposed group: a master satellite, the member satellites
// (which must include the master), and the targets the group observes.
type Cluster struct {
	ClusterID int   `json:"cluster_id"`
	Master    int   `json:"master"`
	Sats      []int `json:"sats"`
	Targets   []int `json:"targets"`
}

// CandidateOutput is a proposed clustering of the scenario's satellites,
// typically produced by an external generator. Nothing about it is trusted;
// every referenced id is checked during validation.
type CandidateOutput struct {
	Clusters []Cluster `json:"clusters"`
}
