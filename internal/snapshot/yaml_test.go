package snapshot

import (
	"testing"

	"github.com/beleapps/matchkit/internal/core"
)

const sampleSnapshot = `
local_player: "G:1001"
matches:
  - id: m1
    status: open
    current: "G:1001"
    participants:
      - player: "G:1001"
        status: active
      - player: "G:2002"
        status: active
    payload:
      round: 2
      score1: 3
      score2: 1
      initiator: "G:2002"
      move: "putt"
  - id: m2
    status: matching
  - id: m3
    status: open
    participants:
      - player: "G:1001"
        status: active
      - status: matching
`

func TestParseSnapshot(t *testing.T) {
	snap, err := Parse([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if snap.LocalPlayer != "G:1001" {
		t.Errorf("local player = %s, want G:1001", snap.LocalPlayer)
	}
	if len(snap.Matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(snap.Matches))
	}

	m1 := snap.Matches[0]
	if m1.Status != core.MatchStatusOpen {
		t.Errorf("m1 status = %v, want Open", m1.Status)
	}
	if m1.CurrentParticipantID != "G:1001" {
		t.Errorf("m1 current = %s, want G:1001", m1.CurrentParticipantID)
	}

	p, err := core.Decode(m1.Data)
	if err != nil {
		t.Fatalf("Decode(m1 data) failed: %v", err)
	}
	if p.Round != 2 || p.Score1 != 3 || p.Score2 != 1 {
		t.Errorf("payload = %+v", p)
	}
	if p.InitiatorID != "G:2002" {
		t.Errorf("initiator = %s, want G:2002", p.InitiatorID)
	}
	if string(p.Move) != "putt" {
		t.Errorf("move = %q, want putt", p.Move)
	}

	// m3: stale matchmaking placeholder, no payload.
	m3 := snap.Matches[2]
	if len(m3.Data) != 0 {
		t.Errorf("m3 data = %v, want empty", m3.Data)
	}
	if m3.Participants[1].Status != core.ParticipantMatching {
		t.Errorf("m3 opponent status = %v, want Matching", m3.Participants[1].Status)
	}
}

func TestParseSnapshotClassifies(t *testing.T) {
	snap, err := Parse([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	ws := core.BuildWorkingSet(snap.Matches, snap.LocalPlayer)
	if len(ws.LocalTurn) != 1 || ws.LocalTurn[0].ID != "m1" {
		t.Errorf("LocalTurn = %v, want [m1]", ws.LocalTurn)
	}
	if len(ws.Searching) != 1 || ws.Searching[0].ID != "m2" {
		t.Errorf("Searching = %v, want [m2]", ws.Searching)
	}
	if len(ws.Removals) != 1 || ws.Removals[0] != "m3" {
		t.Errorf("Removals = %v, want [m3]", ws.Removals)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not yaml", `{{{`},
		{"missing local player", "matches: []"},
		{"missing match id", "local_player: p\nmatches:\n  - status: open"},
		{"bad match status", "local_player: p\nmatches:\n  - id: m1\n    status: frozen"},
		{"bad participant status", "local_player: p\nmatches:\n  - id: m1\n    status: open\n    participants:\n      - player: p\n        status: asleep"},
		{"bad outcome", "local_player: p\nmatches:\n  - id: m1\n    status: open\n    participants:\n      - player: p\n        status: active\n        outcome: glorious"},
		{"zero payload round", "local_player: p\nmatches:\n  - id: m1\n    status: open\n    payload:\n      round: 0\n      initiator: p"},
	}

	for _, tc := range cases {
		if _, err := Parse([]byte(tc.doc)); err == nil {
			t.Errorf("Parse(%s): expected error", tc.name)
		}
	}
}
