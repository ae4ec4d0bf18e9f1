package core

import "fmt"

// Resolve splits a match's participant list into the (local, opponent)
// pair for the given local identity. The engine only supports
// two-player matches: it fails with ErrParticipantNotFound when the
// match does not have exactly two participants, or when the local
// identity does not match exactly one of them. Callers must skip the
// match and report the failure rather than defaulting to an arbitrary
// participant.
func Resolve(m Match, local PlayerID) (Participant, Participant, error) {
	if len(m.Participants) != 2 {
		return Participant{}, Participant{}, fmt.Errorf("%w: match %s has %d participants, want 2", ErrParticipantNotFound, m.ID, len(m.Participants))
	}
	if local == "" {
		return Participant{}, Participant{}, fmt.Errorf("%w: empty local identity", ErrParticipantNotFound)
	}

	a, b := m.Participants[0], m.Participants[1]
	switch {
	case a.PlayerID == local && b.PlayerID == local:
		return Participant{}, Participant{}, fmt.Errorf("%w: both participants of match %s claim identity %s", ErrParticipantNotFound, m.ID, local)
	case a.PlayerID == local:
		return a, b, nil
	case b.PlayerID == local:
		return b, a, nil
	default:
		return Participant{}, Participant{}, fmt.Errorf("%w: identity %s is not in match %s", ErrParticipantNotFound, local, m.ID)
	}
}
