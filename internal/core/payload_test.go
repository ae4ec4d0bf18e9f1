package core

import (
	"bytes"
	"errors"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	payloads := []TurnPayload{
		{Round: 1, Score1: 0, Score2: 0, InitiatorID: "G:1001"},
		{Round: 5, Score1: 3, Score2: 5, InitiatorID: "G:1001", Move: []byte{0x01, 0x02, 0x03}},
		{Round: 42, Score1: -7, Score2: 12, InitiatorID: "sixteen-byte-idX"},
	}

	for _, p := range payloads {
		blob, err := EncodeRaw(p)
		if err != nil {
			t.Fatalf("EncodeRaw(%+v) failed: %v", p, err)
		}

		got, err := Decode(blob)
		if err != nil {
			t.Fatalf("Decode() failed: %v", err)
		}

		if got.Round != p.Round {
			t.Errorf("Round mismatch: %d vs %d", got.Round, p.Round)
		}
		if got.Score1 != p.Score1 || got.Score2 != p.Score2 {
			t.Errorf("Score mismatch: (%d,%d) vs (%d,%d)", got.Score1, got.Score2, p.Score1, p.Score2)
		}
		if got.InitiatorID != p.InitiatorID {
			t.Errorf("Initiator mismatch: %q vs %q", got.InitiatorID, p.InitiatorID)
		}
		if !bytes.Equal(got.Move, p.Move) {
			t.Errorf("Move mismatch: %v vs %v", got.Move, p.Move)
		}
	}
}

func TestPayloadRoundTripIdentityIndependent(t *testing.T) {
	// Whoever encodes, the decoded bytes are the same.
	p := TurnPayload{Round: 3, Score1: 2, Score2: 4, InitiatorID: "G:1001", Move: []byte("fairway")}

	blob1, err := EncodeRaw(p)
	if err != nil {
		t.Fatalf("EncodeRaw() failed: %v", err)
	}
	blob2, err := EncodeRaw(p)
	if err != nil {
		t.Fatalf("EncodeRaw() failed: %v", err)
	}
	if !bytes.Equal(blob1, blob2) {
		t.Error("EncodeRaw is not deterministic")
	}
}

func TestEncodeAdvancesRound(t *testing.T) {
	prev := TurnPayload{Round: 2, Score1: 1, Score2: 2, InitiatorID: "G:1001", Move: []byte("old")}

	blob, err := Encode(prev, MoveInput{Score1: 4, Score2: 6, Data: []byte("new")})
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	next, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if next.Round != prev.Round+1 {
		t.Errorf("Round = %d, want %d", next.Round, prev.Round+1)
	}
	if next.Score1 != 4 || next.Score2 != 6 {
		t.Errorf("Scores = (%d,%d), want (4,6)", next.Score1, next.Score2)
	}
	if next.InitiatorID != prev.InitiatorID {
		t.Errorf("Initiator = %q, want preserved %q", next.InitiatorID, prev.InitiatorID)
	}
	if string(next.Move) != "new" {
		t.Errorf("Move = %q, want %q", next.Move, "new")
	}
}

func TestDecodeMalformed(t *testing.T) {
	valid, err := EncodeRaw(TurnPayload{Round: 1, InitiatorID: "G:1001"})
	if err != nil {
		t.Fatalf("EncodeRaw() failed: %v", err)
	}

	badVersion := append([]byte(nil), valid...)
	badVersion[0] = 9

	zeroRound := append([]byte(nil), valid...)
	copy(zeroRound[1:5], []byte{0, 0, 0, 0})

	// Extra trailing byte makes moveLen disagree with the blob length.
	oversized := append(append([]byte(nil), valid...), 0xFF)

	interiorNUL := append([]byte(nil), valid...)
	copy(interiorNUL[13:], []byte("G:\x001"))

	cases := []struct {
		name string
		blob []byte
	}{
		{"empty", nil},
		{"too short", valid[:10]},
		{"unknown version", badVersion},
		{"zero round", zeroRound},
		{"length mismatch", oversized},
		{"interior NUL in initiator", interiorNUL},
	}

	for _, tc := range cases {
		if _, err := Decode(tc.blob); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("Decode(%s): err = %v, want ErrMalformedPayload", tc.name, err)
		}
	}
}

func TestEncodeRejectsOversizedInitiator(t *testing.T) {
	p := TurnPayload{Round: 1, InitiatorID: "this-identity-is-way-too-long-to-fit"}
	if _, err := EncodeRaw(p); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("EncodeRaw() err = %v, want ErrMalformedPayload", err)
	}
}
