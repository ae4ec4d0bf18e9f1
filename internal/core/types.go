// Package core contains the match-state classification and turn-transition
// engine: pure domain types, the turn payload codec, the participant
// resolver, the match classifier and the outcome engine.
// Everything here is side-effect free; the coordinator package drives it.
package core

// PlayerID identifies a player at the matchmaking service.
// Empty for a participant slot that has not been filled yet
// (random matchmaking still in progress).
type PlayerID string

// MatchID uniquely identifies a match at the matchmaking service.
type MatchID string

// MatchStatus is the external status of a match as reported by the
// matchmaking service.
type MatchStatus int

const (
	MatchStatusUnknown MatchStatus = iota
	MatchStatusOpen
	MatchStatusEnded
	MatchStatusMatching
)

// String returns a human-readable name for the match status.
func (s MatchStatus) String() string {
	switch s {
	case MatchStatusOpen:
		return "Open"
	case MatchStatusEnded:
		return "Ended"
	case MatchStatusMatching:
		return "Matching"
	default:
		return "Unknown"
	}
}

// ParticipantStatus is the per-participant status within a match.
type ParticipantStatus int

const (
	ParticipantUnknown ParticipantStatus = iota
	ParticipantInvited
	ParticipantMatching
	ParticipantActive
	ParticipantDone
	ParticipantDeclined
)

// String returns a human-readable name for the participant status.
func (s ParticipantStatus) String() string {
	switch s {
	case ParticipantInvited:
		return "Invited"
	case ParticipantMatching:
		return "Matching"
	case ParticipantActive:
		return "Active"
	case ParticipantDone:
		return "Done"
	case ParticipantDeclined:
		return "Declined"
	default:
		return "Unknown"
	}
}

// Outcome is the terminal per-participant result of a match.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeTied
	OutcomeQuit
	OutcomeTimeExpired
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeWon:
		return "Won"
	case OutcomeLost:
		return "Lost"
	case OutcomeTied:
		return "Tied"
	case OutcomeQuit:
		return "Quit"
	case OutcomeTimeExpired:
		return "TimeExpired"
	default:
		return "Unknown"
	}
}

// Inverse returns the outcome the other participant receives when this
// one is applied: Won pairs with Lost and everything else pairs with
// itself (two Tied, two Quit, ...).
func (o Outcome) Inverse() Outcome {
	switch o {
	case OutcomeWon:
		return OutcomeLost
	case OutcomeLost:
		return OutcomeWon
	default:
		return o
	}
}

// Participant is one player's role within a specific match.
// Owned by exactly one match, never shared.
type Participant struct {
	PlayerID PlayerID
	Status   ParticipantStatus
	Outcome  Outcome
}

// Match is one instance of a turn-based game session between two
// participants, as delivered by the matchmaking service. The engine
// never mutates a Match in place; classification produces derived
// views and turn submission produces instructions for the service.
type Match struct {
	ID                   MatchID
	Status               MatchStatus
	Participants         []Participant
	CurrentParticipantID PlayerID
	Data                 []byte
}

// CurrentParticipant returns the participant whose turn it is,
// or nil if the match has no current participant.
func (m Match) CurrentParticipant() *Participant {
	if m.CurrentParticipantID == "" {
		return nil
	}
	for i := range m.Participants {
		if m.Participants[i].PlayerID == m.CurrentParticipantID {
			return &m.Participants[i]
		}
	}
	return nil
}
