// Package snapshot provides a YAML file format for match snapshots:
// the full-state match lists the matchmaking service would deliver,
// written down as fixtures for the classify command and for tests.
package snapshot

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/beleapps/matchkit/internal/core"
)

// YAMLSnapshot represents the YAML structure for a snapshot file.
type YAMLSnapshot struct {
	LocalPlayer string      `yaml:"local_player"`
	Matches     []YAMLMatch `yaml:"matches"`
}

// YAMLMatch represents a single match record in YAML form.
type YAMLMatch struct {
	ID           string            `yaml:"id"`
	Status       string            `yaml:"status"`
	Current      string            `yaml:"current,omitempty"`
	Participants []YAMLParticipant `yaml:"participants,omitempty"`
	Payload      *YAMLPayload      `yaml:"payload,omitempty"`
}

// YAMLParticipant represents one participant slot.
type YAMLParticipant struct {
	Player  string `yaml:"player,omitempty"`
	Status  string `yaml:"status"`
	Outcome string `yaml:"outcome,omitempty"`
}

// YAMLPayload is the decoded turn payload; it is encoded into the
// match's binary data blob during parsing.
type YAMLPayload struct {
	Round     uint32 `yaml:"round"`
	Score1    int32  `yaml:"score1"`
	Score2    int32  `yaml:"score2"`
	Initiator string `yaml:"initiator"`
	Move      string `yaml:"move,omitempty"`
}

// Snapshot is a parsed snapshot ready for classification.
type Snapshot struct {
	LocalPlayer core.PlayerID
	Matches     []core.Match
}

// Parse parses a YAML snapshot file.
func Parse(data []byte) (Snapshot, error) {
	var ys YAMLSnapshot
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.LocalPlayer == "" {
		return Snapshot{}, fmt.Errorf("snapshot has no local_player")
	}

	snap := Snapshot{LocalPlayer: core.PlayerID(ys.LocalPlayer)}

	for i, ym := range ys.Matches {
		m, err := parseMatch(ym)
		if err != nil {
			return Snapshot{}, fmt.Errorf("match %d (%s): %w", i, ym.ID, err)
		}
		snap.Matches = append(snap.Matches, m)
	}

	return snap, nil
}

func parseMatch(ym YAMLMatch) (core.Match, error) {
	if ym.ID == "" {
		return core.Match{}, fmt.Errorf("match has no id")
	}

	status, err := parseMatchStatus(ym.Status)
	if err != nil {
		return core.Match{}, err
	}

	m := core.Match{
		ID:                   core.MatchID(ym.ID),
		Status:               status,
		CurrentParticipantID: core.PlayerID(ym.Current),
	}

	for _, yp := range ym.Participants {
		p, err := parseParticipant(yp)
		if err != nil {
			return core.Match{}, err
		}
		m.Participants = append(m.Participants, p)
	}

	if ym.Payload != nil {
		blob, err := core.EncodeRaw(core.TurnPayload{
			Round:       ym.Payload.Round,
			Score1:      ym.Payload.Score1,
			Score2:      ym.Payload.Score2,
			InitiatorID: core.PlayerID(ym.Payload.Initiator),
			Move:        []byte(ym.Payload.Move),
		})
		if err != nil {
			return core.Match{}, fmt.Errorf("payload: %w", err)
		}
		m.Data = blob
	}

	return m, nil
}

func parseParticipant(yp YAMLParticipant) (core.Participant, error) {
	status, err := parseParticipantStatus(yp.Status)
	if err != nil {
		return core.Participant{}, err
	}
	outcome, err := parseOutcome(yp.Outcome)
	if err != nil {
		return core.Participant{}, err
	}
	return core.Participant{
		PlayerID: core.PlayerID(yp.Player),
		Status:   status,
		Outcome:  outcome,
	}, nil
}

func parseMatchStatus(s string) (core.MatchStatus, error) {
	switch s {
	case "open":
		return core.MatchStatusOpen, nil
	case "ended":
		return core.MatchStatusEnded, nil
	case "matching":
		return core.MatchStatusMatching, nil
	case "unknown":
		return core.MatchStatusUnknown, nil
	default:
		return core.MatchStatusUnknown, fmt.Errorf("unrecognized match status %q", s)
	}
}

func parseParticipantStatus(s string) (core.ParticipantStatus, error) {
	switch s {
	case "invited":
		return core.ParticipantInvited, nil
	case "matching":
		return core.ParticipantMatching, nil
	case "active":
		return core.ParticipantActive, nil
	case "done":
		return core.ParticipantDone, nil
	case "declined":
		return core.ParticipantDeclined, nil
	case "unknown", "":
		return core.ParticipantUnknown, nil
	default:
		return core.ParticipantUnknown, fmt.Errorf("unrecognized participant status %q", s)
	}
}

func parseOutcome(s string) (core.Outcome, error) {
	switch s {
	case "none", "":
		return core.OutcomeNone, nil
	case "won":
		return core.OutcomeWon, nil
	case "lost":
		return core.OutcomeLost, nil
	case "tied":
		return core.OutcomeTied, nil
	case "quit":
		return core.OutcomeQuit, nil
	case "time_expired":
		return core.OutcomeTimeExpired, nil
	default:
		return core.OutcomeNone, fmt.Errorf("unrecognized outcome %q", s)
	}
}
