package model

// TargetCoverage summarises how much of the target universe the clustering covers.
type TargetCoverage struct {
	InputTargets  int     `json:"input_targets"`
	OutputTargets int     `json:"output_targets"`
	CoverageRate  float64 `json:"coverage_rate"`
}

// SatelliteAssignment summarises how many of the available satellites were used.
type SatelliteAssignment struct {
	TotalSatellites    int     `json:"total_satellites"`
	AssignedSatellites int     `json:"assigned_satellites"`
	UtilizationRate    float64 `json:"utilization_rate"`
}

// LinkQuality aggregates per-cluster link-strength averages. ClusterCount is
// the number of clusters that had at least one defined link; clusters without
// defined links do not dilute the overall average.
type LinkQuality struct {
	OverallAvgStrength float64 `json:"overall_avg_strength"`
	ClusterCount       int     `json:"cluster_count"`
}

// ObservationQuality aggregates per-cluster observation-quality averages,
// with the same defined-pairs-only convention as LinkQuality.
type ObservationQuality struct {
	OverallAvgQuality float64 `json:"overall_avg_quality"`
	ClusterCount      int     `json:"cluster_count"`
}

// Details carries the computed metrics of a validation run. LinkQuality and
// ObservationQuality are nil when no cluster produced a defined average, so
// an undefined aggregate is absent rather than reported as zero.
type Details struct {
	TargetCoverage      *TargetCoverage      `json:"target_coverage,omitempty"`
	SatelliteAssignment *SatelliteAssignment `json:"satellite_assignment,omitempty"`
	LinkQuality         *LinkQuality         `json:"link_quality,omitempty"`
	ObservationQuality  *ObservationQuality  `json:"observation_quality,omitempty"`
}

// ValidationResult is the complete outcome of validating one candidate
// clustering against one scenario. It is immutable once returned: IsValid is
// true exactly when Errors is empty, and both message slices preserve the
// fixed stage order they were produced in.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Details  Details  `json:"details"`
}
