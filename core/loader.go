package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signalsfoundry/constellation-validator/model"
)

var (
	ErrMalformedScenario  = errors.New("malformed scenario input")
	ErrMalformedCandidate = errors.New("malformed candidate output")
	ErrUnknownStrategy    = errors.New("unknown clustering strategy")
)

// LoadScenario reads one ScenarioInput JSON document from r and checks the
// declared value ranges. This is the trust boundary: the engine itself
// treats a loaded scenario as ground truth, so out-of-range weights and an
// unknown strategy are rejected here rather than silently carried along.
func LoadScenario(r io.Reader) (*model.ScenarioInput, error) {
	var in model.ScenarioInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedScenario, err)
	}
	if err := checkScenario(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseScenario is LoadScenario for in-memory documents.
func ParseScenario(data []byte) (*model.ScenarioInput, error) {
	return LoadScenario(bytes.NewReader(data))
}

func checkScenario(in *model.ScenarioInput) error {
	if !in.Strategy.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, in.Strategy)
	}
	for i, sat := range in.Satellites {
		if sat.Health < 0 || sat.Health > 1 {
			return fmt.Errorf("%w: sat_attrs[%d] health %v outside [0,1]", ErrMalformedScenario, i, sat.Health)
		}
	}
	for i, edge := range in.SatelliteLinks {
		if edge.Weight < 0 || edge.Weight > 1 {
			return fmt.Errorf("%w: sat_edges[%d] weight %v outside [0,1]", ErrMalformedScenario, i, edge.Weight)
		}
	}
	for i, edge := range in.TargetLinks {
		if edge.Quality < 0 || edge.Quality > 1 {
			return fmt.Errorf("%w: target_edges[%d] quality %v outside [0,1]", ErrMalformedScenario, i, edge.Quality)
		}
	}
	return nil
}

// LoadCandidate reads one typed CandidateOutput JSON document from r.
// Unknown fields are rejected: trusted pipelines hand the engine exactly the
// clusters document, and anything else (generator wrappers, stray keys)
// belongs to ExtractCandidateDocument instead.
//
// Note this is a plain decode for well-formed documents. Field-level
// structural findings on untrusted documents come from
// Engine.ValidateDocument, which inspects the raw JSON itself.
func LoadCandidate(r io.Reader) (*model.CandidateOutput, error) {
	var out model.CandidateOutput
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCandidate, err)
	}
	return &out, nil
}

// ParseCandidate is LoadCandidate for in-memory documents.
func ParseCandidate(data []byte) (*model.CandidateOutput, error) {
	return LoadCandidate(bytes.NewReader(data))
}
