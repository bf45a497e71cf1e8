package core

import (
	"fmt"
	"strings"

	"github.com/signalsfoundry/constellation-validator/model"
)

const reportTitle = "Satellite Clustering Validation Report"

// RenderReport formats a result as a fixed-section plain-text block for
// human consumption: banner, verdict, errors, warnings, details. Everything
// here is derived from the result; rendering never changes the verdict.
func RenderReport(res model.ValidationResult) string {
	rule := strings.Repeat("=", 50)

	status := "✅ PASS"
	if !res.IsValid {
		status = "❌ FAIL"
	}

	lines := []string{
		rule,
		reportTitle,
		rule,
		fmt.Sprintf("Status: %s", status),
		"",
	}

	if len(res.Errors) > 0 {
		lines = append(lines, "❌ Errors:")
		for _, msg := range res.Errors {
			lines = append(lines, "  - "+msg)
		}
		lines = append(lines, "")
	}

	if len(res.Warnings) > 0 {
		lines = append(lines, "⚠️ Warnings:")
		for _, msg := range res.Warnings {
			lines = append(lines, "  - "+msg)
		}
		lines = append(lines, "")
	}

	if details := detailLines(res.Details); len(details) > 0 {
		lines = append(lines, "📊 Details:")
		lines = append(lines, details...)
		lines = append(lines, "")
	}

	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// detailLines renders the populated detail sections in their fixed order.
func detailLines(d model.Details) []string {
	var out []string

	if tc := d.TargetCoverage; tc != nil {
		out = append(out,
			"  target_coverage:",
			fmt.Sprintf("    input_targets: %d", tc.InputTargets),
			fmt.Sprintf("    output_targets: %d", tc.OutputTargets),
			fmt.Sprintf("    coverage_rate: %.3f", tc.CoverageRate),
		)
	}
	if sa := d.SatelliteAssignment; sa != nil {
		out = append(out,
			"  satellite_assignment:",
			fmt.Sprintf("    total_satellites: %d", sa.TotalSatellites),
			fmt.Sprintf("    assigned_satellites: %d", sa.AssignedSatellites),
			fmt.Sprintf("    utilization_rate: %.3f", sa.UtilizationRate),
		)
	}
	if lq := d.LinkQuality; lq != nil {
		out = append(out,
			"  link_quality:",
			fmt.Sprintf("    overall_avg_strength: %.3f", lq.OverallAvgStrength),
			fmt.Sprintf("    cluster_count: %d", lq.ClusterCount),
		)
	}
	if oq := d.ObservationQuality; oq != nil {
		out = append(out,
			"  observation_quality:",
			fmt.Sprintf("    overall_avg_quality: %.3f", oq.OverallAvgQuality),
			fmt.Sprintf("    cluster_count: %d", oq.ClusterCount),
		)
	}

	return out
}
