package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoCandidateJSON = errors.New("no candidate JSON found in output")

// ExtractCandidateDocument recovers the candidate clustering document from
// raw generator text. Generators wrap the clusters in several shapes seen in
// the wild:
//
//   - a bare JSON object with a clusters field, possibly alongside a
//     chain_of_thought field,
//   - the same object inside a ```json fenced block, with prose around it,
//   - a <think>…</think> reasoning prefix followed by a bare JSON array of
//     clusters,
//   - a {chain_of_thought, result} wrapper whose result holds either shape.
//
// The returned bytes are always an object with a clusters field, suitable
// for Engine.ValidateDocument. Extraction only locates the document and
// never judges the clusters inside; mistyped fields are the structural
// stage's findings, not extraction failures.
func ExtractCandidateDocument(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrNoCandidateJSON
	}

	s = stripThinkBlock(s)
	if body, ok := extractFence(s); ok {
		s = body
	}

	value, err := firstJSONValue(s)
	if err != nil {
		return nil, err
	}

	return documentFromValue(value, true)
}

// stripThinkBlock drops a leading <think>…</think> block. An unterminated
// block swallows the rest of the text, which then fails extraction because
// no JSON is left to find.
func stripThinkBlock(s string) string {
	if !strings.HasPrefix(s, "<think>") {
		return s
	}
	rest := s[len("<think>"):]
	if i := strings.Index(rest, "</think>"); i >= 0 {
		return strings.TrimSpace(rest[i+len("</think>"):])
	}
	return ""
}

// extractFence returns the body of the first code fence, preferring an
// explicit ```json fence over a plain one. An unterminated fence runs to the
// end of the text.
func extractFence(s string) (string, bool) {
	for _, marker := range []string{"```json", "```"} {
		i := strings.Index(s, marker)
		if i < 0 {
			continue
		}
		body := s[i+len(marker):]
		if j := strings.Index(body, "```"); j >= 0 {
			body = body[:j]
		}
		return strings.TrimSpace(body), true
	}
	return "", false
}

// firstJSONValue decodes the first complete JSON value starting at the first
// object or array opener, ignoring prose before and after it.
func firstJSONValue(s string) (json.RawMessage, error) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return nil, ErrNoCandidateJSON
	}

	var value json.RawMessage
	dec := json.NewDecoder(strings.NewReader(s[start:]))
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCandidateJSON, err)
	}
	return value, nil
}

// documentFromValue normalizes a decoded value into a clusters document.
// unwrapResult permits one pass through the {chain_of_thought, result}
// wrapper; the nested value is not allowed to wrap again.
func documentFromValue(value json.RawMessage, unwrapResult bool) ([]byte, error) {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "" {
		return nil, ErrNoCandidateJSON
	}

	switch trimmed[0] {
	case '[':
		// A bare cluster array, as emitted after <think> blocks.
		doc := make([]byte, 0, len(value)+len(`{"clusters":}`))
		doc = append(doc, `{"clusters":`...)
		doc = append(doc, value...)
		doc = append(doc, '}')
		return doc, nil

	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(value, &fields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoCandidateJSON, err)
		}
		if _, ok := fields["clusters"]; ok {
			return value, nil
		}
		if result, ok := fields["result"]; ok && unwrapResult && !isNull(result) {
			return documentFromValue(result, false)
		}
		return nil, ErrNoCandidateJSON

	default:
		return nil, ErrNoCandidateJSON
	}
}
