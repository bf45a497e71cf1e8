package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/signalsfoundry/constellation-validator/core"
	"github.com/signalsfoundry/constellation-validator/model"
)

func testScenario() *model.ScenarioInput {
	return &model.ScenarioInput{
		Strategy: model.StrategyQuality,
		Satellites: []model.SatelliteAttr{
			{ID: 111, Health: 0.9},
			{ID: 112, Health: 0.8},
		},
		SatelliteLinks: []model.LinkEdge{
			{From: 111, To: 112, Weight: 0.8},
		},
		TargetLinks: []model.TargetEdge{
			{Sat: 111, Target: 5, Quality: 0.9},
		},
	}
}

func testCandidate() *model.CandidateOutput {
	return &model.CandidateOutput{
		Clusters: []model.Cluster{
			{ClusterID: 1, Master: 111, Sats: []int{111, 112}, Targets: []int{5}},
		},
	}
}

func TestValidate(t *testing.T) {
	res := Validate(context.Background(), testScenario(), testCandidate())

	if !res.IsValid {
		t.Fatalf("expected valid result, got errors %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
}

func TestValidateWithPolicyOption(t *testing.T) {
	p := core.DefaultPolicy()
	p.LinkStrengthMin = 0.9

	res := Validate(context.Background(), testScenario(), testCandidate(), core.WithPolicy(p))

	if !res.IsValid {
		t.Fatalf("threshold findings must stay warnings, got errors %v", res.Errors)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "avg link strength low") {
		t.Errorf("warnings = %v, want a link strength warning", res.Warnings)
	}
}

func TestValidateDocument(t *testing.T) {
	doc := []byte(`{"clusters": [{"cluster_id": 1, "master": 111, "sats": [111, 112], "targets": [5]}]}`)

	res := ValidateDocument(context.Background(), testScenario(), doc)

	if !res.IsValid {
		t.Fatalf("expected valid result, got errors %v", res.Errors)
	}
}

func TestValidateTextFencedArray(t *testing.T) {
	text := "Pairing both satellites on the single target.\n```json\n" +
		`[{"cluster_id": 1, "master": 111, "sats": [111, 112], "targets": [5]}]` +
		"\n```"

	res := ValidateText(context.Background(), testScenario(), text)

	if !res.IsValid {
		t.Fatalf("expected valid result, got errors %v", res.Errors)
	}
}

// Text without any candidate JSON validates as an empty output instead of
// failing out-of-band, so callers always get a result.
func TestValidateTextWithoutJSON(t *testing.T) {
	res := ValidateText(context.Background(), testScenario(), "no clustering, sorry")

	if res.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(res.Errors) != 1 || res.Errors[0] != "output is empty" {
		t.Errorf("errors = %v, want the empty-output finding", res.Errors)
	}
}

func TestRenderReport(t *testing.T) {
	res := Validate(context.Background(), testScenario(), testCandidate())

	report := RenderReport(res)
	if !strings.Contains(report, "Satellite Clustering Validation Report") {
		t.Errorf("report missing title:\n%s", report)
	}
	if !strings.Contains(report, "Status: ✅ PASS") {
		t.Errorf("report missing verdict:\n%s", report)
	}
}
