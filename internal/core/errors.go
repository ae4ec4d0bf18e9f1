package core

import (
	"errors"
	"fmt"
)

// Engine error kinds. Per-match failures are isolated: one bad match
// never aborts classification or coordination for the rest of a batch.
var (
	// ErrMalformedPayload means a match data blob does not follow the
	// fixed payload layout. Fatal to that match only.
	ErrMalformedPayload = errors.New("malformed turn payload")

	// ErrParticipantNotFound means the match shape violates the
	// two-player assumption: not exactly two participants, or the local
	// identity does not match exactly one of them.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrInvalidRoundCount means the configured round limit and the
	// payload disagree: the limit is below one, or the payload is
	// already past it.
	ErrInvalidRoundCount = errors.New("invalid round count")

	// ErrClassificationAnomaly means a match carries a status
	// combination the decision table does not cover. Advisory, not
	// fatal to the batch.
	ErrClassificationAnomaly = errors.New("classification anomaly")
)

// MatchFault ties an engine error to the match it occurred on, so a
// batch can report per-match failures without aborting.
type MatchFault struct {
	MatchID MatchID
	Err     error
}

// Error implements the error interface.
func (f MatchFault) Error() string {
	return fmt.Sprintf("match %s: %v", f.MatchID, f.Err)
}

// Unwrap exposes the underlying error kind for errors.Is checks.
func (f MatchFault) Unwrap() error {
	return f.Err
}
