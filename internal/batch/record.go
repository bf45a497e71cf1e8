// Package batch validates JSONL corpora of clustering records: each line
// pairs a scenario with a model-produced clustering, and the runner fans the
// lines out to workers and reduces their verdicts into a deterministic
// summary.
package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/signalsfoundry/constellation-validator/core"
	"github.com/signalsfoundry/constellation-validator/model"
)

// ErrMalformedRecord marks lines whose scenario or candidate cannot be
// recovered. Such lines are counted but never validated.
var ErrMalformedRecord = errors.New("malformed record")

// rawRecord mirrors one JSONL training record. Instruction is present in
// Alpaca-style exports and ignored here. Input and Output are either JSON
// strings wrapping the payload text, or the payload object itself.
type rawRecord struct {
	Instruction string          `json:"instruction"`
	Input       json.RawMessage `json:"input"`
	Output      json.RawMessage `json:"output"`
}

// Record is one parsed line, ready for validation.
type Record struct {
	Scenario  *model.ScenarioInput
	Candidate []byte
}

// ParseRecord decodes a single JSONL line. Both record forms are accepted:
// Alpaca exports, where input and output are strings holding scenario JSON
// and raw model text, and direct records, where they are inline objects.
func ParseRecord(line []byte) (Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if isAbsent(raw.Input) || isAbsent(raw.Output) {
		return Record{}, fmt.Errorf("%w: record needs input and output fields", ErrMalformedRecord)
	}

	scenarioText, err := payloadText(raw.Input)
	if err != nil {
		return Record{}, fmt.Errorf("%w: input: %v", ErrMalformedRecord, err)
	}
	scenario, err := core.ParseScenario([]byte(scenarioText))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	outputText, err := payloadText(raw.Output)
	if err != nil {
		return Record{}, fmt.Errorf("%w: output: %v", ErrMalformedRecord, err)
	}
	doc, err := core.ExtractCandidateDocument(outputText)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	return Record{Scenario: scenario, Candidate: doc}, nil
}

// payloadText returns the text carried by a record field: the unquoted
// content when the field is a JSON string, otherwise the raw JSON itself.
func payloadText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(trimmed), nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
