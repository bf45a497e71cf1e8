package core

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/signalsfoundry/constellation-validator/model"
)

func TestValidateCleanClustering(t *testing.T) {
	eng := NewEngine()
	res := eng.Validate(context.Background(), referenceScenario(), cleanClustering())

	if !res.IsValid {
		t.Fatalf("expected valid result, got errors %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected no errors, got %v", res.Errors)
	}
	wantWarnings := []string{"cluster 7 avg observation quality low: 0.470"}
	if !equalStrings(res.Warnings, wantWarnings) {
		t.Errorf("warnings = %v, want %v", res.Warnings, wantWarnings)
	}

	cov := res.Details.TargetCoverage
	if cov == nil {
		t.Fatal("expected target coverage details")
	}
	if cov.InputTargets != 25 || cov.OutputTargets != 25 || !approx(cov.CoverageRate, 1.0) {
		t.Errorf("coverage = %+v, want 25/25 at rate 1.0", cov)
	}

	asg := res.Details.SatelliteAssignment
	if asg == nil {
		t.Fatal("expected satellite assignment details")
	}
	if asg.TotalSatellites != 27 || asg.AssignedSatellites != 27 || !approx(asg.UtilizationRate, 1.0) {
		t.Errorf("assignment = %+v, want 27/27 at rate 1.0", asg)
	}

	link := res.Details.LinkQuality
	if link == nil {
		t.Fatal("expected link quality details")
	}
	if link.ClusterCount != 5 || !approx(link.OverallAvgStrength, 0.733) {
		t.Errorf("link quality = %+v, want avg 0.733 over 5 clusters", link)
	}

	obs := res.Details.ObservationQuality
	if obs == nil {
		t.Fatal("expected observation quality details")
	}
	if obs.ClusterCount != 7 || !approx(obs.OverallAvgQuality, 0.668381) {
		t.Errorf("observation quality = %+v, want avg 0.668381 over 7 clusters", obs)
	}
}

func TestValidateDraftClustering(t *testing.T) {
	eng := NewEngine()
	res := eng.Validate(context.Background(), referenceScenario(), draftClustering())

	if res.IsValid {
		t.Fatal("expected invalid result")
	}
	wantErrors := []string{
		"missing targets: [15 16 22 23 34 42]",
		"duplicate assignment: satellite 125 in clusters [1 3]",
	}
	if !equalStrings(res.Errors, wantErrors) {
		t.Errorf("errors = %v, want %v", res.Errors, wantErrors)
	}
	wantWarnings := []string{
		"unused satellites: [113 134 154]",
		"cluster 7 avg observation quality low: 0.470",
		"cluster 4 master 153 health low: 0.630",
	}
	if !equalStrings(res.Warnings, wantWarnings) {
		t.Errorf("warnings = %v, want %v", res.Warnings, wantWarnings)
	}

	cov := res.Details.TargetCoverage
	if cov == nil {
		t.Fatal("expected target coverage details")
	}
	if cov.InputTargets != 25 || cov.OutputTargets != 19 || !approx(cov.CoverageRate, 0.76) {
		t.Errorf("coverage = %+v, want 19 of 25 at rate 0.76", cov)
	}

	asg := res.Details.SatelliteAssignment
	if asg == nil {
		t.Fatal("expected satellite assignment details")
	}
	if asg.TotalSatellites != 27 || asg.AssignedSatellites != 24 || !approx(asg.UtilizationRate, 24.0/27.0) {
		t.Errorf("assignment = %+v, want 24 of 27", asg)
	}

	link := res.Details.LinkQuality
	if link == nil {
		t.Fatal("expected link quality details")
	}
	if link.ClusterCount != 4 || !approx(link.OverallAvgStrength, 0.69625) {
		t.Errorf("link quality = %+v, want avg 0.69625 over 4 clusters", link)
	}

	obs := res.Details.ObservationQuality
	if obs == nil {
		t.Fatal("expected observation quality details")
	}
	if obs.ClusterCount != 7 || !approx(obs.OverallAvgQuality, 0.689524) {
		t.Errorf("observation quality = %+v, want avg 0.689524 over 7 clusters", obs)
	}
}

func TestValidateDocumentMatchesTyped(t *testing.T) {
	eng := NewEngine()
	scenario := referenceScenario()

	doc, err := json.Marshal(cleanClustering())
	if err != nil {
		t.Fatalf("marshal candidate: %v", err)
	}

	fromDoc := eng.ValidateDocument(context.Background(), scenario, doc)
	fromTyped := eng.Validate(context.Background(), scenario, cleanClustering())

	if !reflect.DeepEqual(fromDoc, fromTyped) {
		t.Errorf("document result %+v differs from typed result %+v", fromDoc, fromTyped)
	}
}

func TestValidateIdempotent(t *testing.T) {
	eng := NewEngine()
	scenario := referenceScenario()

	first := eng.Validate(context.Background(), scenario, draftClustering())
	second := eng.Validate(context.Background(), scenario, draftClustering())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation diverged: %+v vs %+v", first, second)
	}
}

func TestValidateNilCandidate(t *testing.T) {
	eng := NewEngine()
	res := eng.Validate(context.Background(), referenceScenario(), nil)

	if res.IsValid {
		t.Fatal("expected invalid result for nil candidate")
	}
	if !equalStrings(res.Errors, []string{"output is empty"}) {
		t.Errorf("errors = %v, want single empty-output error", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
	if res.Details.TargetCoverage != nil || res.Details.SatelliteAssignment != nil {
		t.Errorf("expected no details after structural failure, got %+v", res.Details)
	}
}

func TestValidateEmptyScenario(t *testing.T) {
	eng := NewEngine()
	res := eng.Validate(context.Background(), nil, &model.CandidateOutput{})

	if !res.IsValid {
		t.Fatalf("expected valid result, got errors %v", res.Errors)
	}
	if res.Errors == nil || len(res.Errors) != 0 {
		t.Errorf("errors = %#v, want empty non-nil slice", res.Errors)
	}
	if res.Warnings == nil || len(res.Warnings) != 0 {
		t.Errorf("warnings = %#v, want empty non-nil slice", res.Warnings)
	}

	cov := res.Details.TargetCoverage
	if cov == nil || cov.InputTargets != 0 || !approx(cov.CoverageRate, 1.0) {
		t.Errorf("coverage = %+v, want full coverage of zero targets", cov)
	}
	asg := res.Details.SatelliteAssignment
	if asg == nil || asg.TotalSatellites != 0 || !approx(asg.UtilizationRate, 0.0) {
		t.Errorf("assignment = %+v, want zero utilization of zero satellites", asg)
	}
	if res.Details.LinkQuality != nil || res.Details.ObservationQuality != nil {
		t.Errorf("expected no quality details without clusters, got %+v", res.Details)
	}
}

func TestValidateResultMarshalShape(t *testing.T) {
	eng := NewEngine()
	res := eng.Validate(context.Background(), referenceScenario(), cleanClustering())

	buf, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf, &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	for _, key := range []string{"is_valid", "errors", "warnings", "details"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("marshalled result missing %q: %s", key, buf)
		}
	}
	if valid, ok := decoded["is_valid"].(bool); !ok || !valid {
		t.Errorf("is_valid = %v, want true", decoded["is_valid"])
	}
}
