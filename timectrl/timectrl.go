// Package timectrl provides deterministic simulation-time sources. Scenario
// generation stamps each produced scenario from a fixed start time and step,
// so a run is reproducible end to end given the same configuration.
package timectrl

import "time"

// Sequence yields evenly spaced simulation timestamps: Start, Start+Step,
// Start+2·Step, … All returned times are in UTC. A Sequence is not safe for
// concurrent use; each generator run owns its own.
type Sequence struct {
	start time.Time
	step  time.Duration
	next  int
}

// NewSequence constructs a sequence beginning at start with the given step.
// A non-positive step degenerates to every timestamp equalling start.
func NewSequence(start time.Time, step time.Duration) *Sequence {
	return &Sequence{start: start.UTC(), step: step}
}

// At returns the i-th timestamp without advancing the sequence.
func (s *Sequence) At(i int) time.Time {
	return s.start.Add(time.Duration(i) * s.step)
}

// Next returns the next timestamp and advances the sequence.
func (s *Sequence) Next() time.Time {
	t := s.At(s.next)
	s.next++
	return t
}

// Reset rewinds the sequence to its start.
func (s *Sequence) Reset() { s.next = 0 }
