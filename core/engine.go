package core

import (
	"context"
	"fmt"

	"github.com/signalsfoundry/constellation-validator/internal/logging"
	"github.com/signalsfoundry/constellation-validator/model"
)

// Engine validates candidate clusterings against their scenario. It holds
// only configuration (policy, logging sink), never per-call state, so a
// single Engine is safe for concurrent use.
//
// Stages run in a fixed order: structure, target coverage, satellite
// assignment, master nodes, strategy constraints, link quality, observation
// quality, health. Any structural error stops the pipeline after the
// structural stage, because everything later assumes well-typed clusters.
type Engine struct {
	policy Policy
	log    logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy replaces the default thresholds and strategy bounds.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithLogger attaches a logging sink. The sink is purely observational;
// validation results never depend on it.
func WithLogger(log logging.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine constructs an Engine with the default policy and a no-op logger.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		policy: DefaultPolicy(),
		log:    logging.Noop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks a typed candidate clustering against the scenario and
// returns the complete result. Expected data problems (unknown ids, missing
// coverage, weak links) are collected in the result, never returned as Go
// errors; an unexpected internal fault is recovered and surfaced as a single
// synthetic fatal error so the caller always receives a full result.
func (e *Engine) Validate(ctx context.Context, scenario *model.ScenarioInput, candidate *model.CandidateOutput) (res model.ValidationResult) {
	r := e.newRun(scenario)
	defer r.recoverFault(ctx, &res)

	fatal := r.checkCandidateStructure(candidate)
	return r.finish(ctx, fatal)
}

// ValidateDocument is Validate for candidates still in document form, as
// produced by an external generator. The structural stage inspects the raw
// JSON so that missing and mistyped fields are reported individually instead
// of failing one big decode.
func (e *Engine) ValidateDocument(ctx context.Context, scenario *model.ScenarioInput, doc []byte) (res model.ValidationResult) {
	r := e.newRun(scenario)
	defer r.recoverFault(ctx, &res)

	fatal := r.checkDocumentStructure(doc)
	return r.finish(ctx, fatal)
}

// run is the call-local state of one validation: the indexes, the decoded
// clusters, and the accumulating findings. A fresh run per call keeps the
// Engine itself stateless.
type run struct {
	eng      *Engine
	idx      *scenarioIndex
	strategy model.Strategy
	clusters []model.Cluster

	errors   []string
	warnings []string
	details  model.Details
}

func (e *Engine) newRun(scenario *model.ScenarioInput) *run {
	if scenario == nil {
		scenario = &model.ScenarioInput{}
	}
	return &run{
		eng:      e,
		idx:      buildScenarioIndex(scenario),
		strategy: scenario.Strategy,
	}
}

func (r *run) errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *run) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// finish runs the semantic stages unless the structural stage failed, then
// assembles the immutable result. Message order follows stage order, and
// every stage sorts the id lists it reports, so results are deterministic.
func (r *run) finish(ctx context.Context, structuralFailure bool) model.ValidationResult {
	if !structuralFailure {
		r.checkTargetCoverage()
		r.checkSatelliteAssignment()
		r.checkMasterNodes()
		r.checkStrategyConstraints(ctx)
		r.checkLinkQuality()
		r.checkObservationQuality()
		r.checkHealth()
	}

	res := model.ValidationResult{
		IsValid:  len(r.errors) == 0,
		Errors:   r.errors,
		Warnings: r.warnings,
		Details:  r.details,
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	r.eng.log.Debug(ctx, "validation finished",
		logging.Any("valid", res.IsValid),
		logging.Int("errors", len(res.Errors)),
		logging.Int("warnings", len(res.Warnings)),
		logging.Int("clusters", len(r.clusters)))

	return res
}

// recoverFault converts a stage panic into a single synthetic fatal error on
// top of whatever the stages collected so far. Expected data problems never
// panic; this boundary exists for genuinely unexpected faults.
func (r *run) recoverFault(ctx context.Context, res *model.ValidationResult) {
	rec := recover()
	if rec == nil {
		return
	}

	r.eng.log.Error(ctx, "validation panicked", logging.Any("panic", rec))

	r.errorf("internal validation error: %v", rec)
	res.IsValid = false
	res.Errors = r.errors
	res.Warnings = r.warnings
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	res.Details = r.details
}
