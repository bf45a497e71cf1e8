// Package validation is the stable public surface of the clustering
// validator. It wraps the core engine in one-call helpers for the common
// paths; callers needing a long-lived configured engine use core.NewEngine
// directly.
package validation

import (
	"context"

	"github.com/signalsfoundry/constellation-validator/core"
	"github.com/signalsfoundry/constellation-validator/model"
)

// Validate checks a typed candidate clustering against its scenario.
func Validate(ctx context.Context, scenario *model.ScenarioInput, candidate *model.CandidateOutput, opts ...core.Option) model.ValidationResult {
	return core.NewEngine(opts...).Validate(ctx, scenario, candidate)
}

// ValidateDocument checks a candidate still in raw JSON document form, so
// missing and mistyped fields surface as individual findings.
func ValidateDocument(ctx context.Context, scenario *model.ScenarioInput, doc []byte, opts ...core.Option) model.ValidationResult {
	return core.NewEngine(opts...).ValidateDocument(ctx, scenario, doc)
}

// ValidateText extracts the candidate document from raw generator text
// (fenced blocks, think prefixes, wrapper objects) and validates it. Text
// with no recoverable candidate JSON validates as an empty output, so the
// verdict is always a ValidationResult rather than an error.
func ValidateText(ctx context.Context, scenario *model.ScenarioInput, text string, opts ...core.Option) model.ValidationResult {
	doc, err := core.ExtractCandidateDocument(text)
	if err != nil {
		doc = nil
	}
	return core.NewEngine(opts...).ValidateDocument(ctx, scenario, doc)
}

// RenderReport formats a result as the fixed-section plain-text report.
func RenderReport(res model.ValidationResult) string {
	return core.RenderReport(res)
}
