package coordinator

import (
	"time"

	"github.com/beleapps/matchkit/internal/core"
)

// Message represents an inbound event consumed by the coordination loop.
type Message interface {
	coordinatorMessage()
}

// SnapshotRefreshedMsg delivers a full snapshot of match records from
// the matchmaking service (full state, not deltas).
type SnapshotRefreshedMsg struct {
	Matches []core.Match
}

func (SnapshotRefreshedMsg) coordinatorMessage() {}

// MatchUpdatedMsg delivers one updated match record, typically from a
// push notification.
type MatchUpdatedMsg struct {
	Match core.Match
}

func (MatchUpdatedMsg) coordinatorMessage() {}

// SubmitMoveMsg delivers a local move for a match.
type SubmitMoveMsg struct {
	MatchID core.MatchID
	Move    core.MoveInput
}

func (SubmitMoveMsg) coordinatorMessage() {}

// InvitationAnsweredMsg delivers the local player's answer to a
// received invitation.
type InvitationAnsweredMsg struct {
	MatchID core.MatchID
	Accept  bool
}

func (InvitationAnsweredMsg) coordinatorMessage() {}

// QuitRequestedMsg delivers a local request to quit a match.
// LocalOutcome is the outcome the local player accepts by quitting;
// OutcomeNone means a plain loss-less tie quit.
type QuitRequestedMsg struct {
	MatchID      core.MatchID
	LocalOutcome core.Outcome
}

func (QuitRequestedMsg) coordinatorMessage() {}

// Instruction is an outbound remote call computed by the coordinator
// for the matchmaking service. The service itself is never called from
// here; a RelayHandle carries the instruction to whatever glue owns
// the connection.
type Instruction interface {
	instruction()

	// Match returns the match the instruction applies to.
	Match() core.MatchID
}

// AdvanceTurn tells the service to pass the turn to the next
// participant with the freshly encoded payload.
type AdvanceTurn struct {
	MatchID           core.MatchID
	NextParticipantID core.PlayerID
	Payload           []byte
	TimeoutHint       time.Duration
}

func (AdvanceTurn) instruction() {}

// Match returns the match ID.
func (i AdvanceTurn) Match() core.MatchID { return i.MatchID }

// EndMatch tells the service to end the match with the final payload
// and the computed outcome for every participant.
type EndMatch struct {
	MatchID  core.MatchID
	Payload  []byte
	Outcomes map[core.PlayerID]core.Outcome
}

func (EndMatch) instruction() {}

// Match returns the match ID.
func (i EndMatch) Match() core.MatchID { return i.MatchID }

// RemoveMatch advises the service to remove a stale or abandoned match.
type RemoveMatch struct {
	MatchID core.MatchID
}

func (RemoveMatch) instruction() {}

// Match returns the match ID.
func (i RemoveMatch) Match() core.MatchID { return i.MatchID }

// AutoWinMatch advises that the opponent quit out of turn and the local
// player should end the match as the winner.
type AutoWinMatch struct {
	MatchID core.MatchID
}

func (AutoWinMatch) instruction() {}

// Match returns the match ID.
func (i AutoWinMatch) Match() core.MatchID { return i.MatchID }

// AcceptInvite tells the service the local player accepted an invitation.
type AcceptInvite struct {
	MatchID core.MatchID
}

func (AcceptInvite) instruction() {}

// Match returns the match ID.
func (i AcceptInvite) Match() core.MatchID { return i.MatchID }

// DeclineInvite tells the service the local player declined an invitation.
type DeclineInvite struct {
	MatchID core.MatchID
}

func (DeclineInvite) instruction() {}

// Match returns the match ID.
func (i DeclineInvite) Match() core.MatchID { return i.MatchID }

// QuitOutOfTurn tells the service the local player quit while not the
// current participant, taking a loss.
type QuitOutOfTurn struct {
	MatchID core.MatchID
}

func (QuitOutOfTurn) instruction() {}

// Match returns the match ID.
func (i QuitOutOfTurn) Match() core.MatchID { return i.MatchID }
