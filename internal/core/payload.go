package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Turn payload wire format, version 1. All multi-byte integers are
// big-endian. The layout is a contract between the two clients of a
// match only; the matchmaking service treats the blob as opaque.
//
//	offset 0      version   byte   (payloadVersion)
//	offset 1..4   round     uint32 (>= 1)
//	offset 5..8   score1    int32  (initiator's score)
//	offset 9..12  score2    int32  (other participant's score)
//	offset 13..28 initiator 16 bytes, UTF-8, zero padded
//	offset 29..30 moveLen   uint16
//	offset 31..   move      moveLen bytes (game-specific move data)
const (
	payloadVersion    = 1
	initiatorFieldLen = 16
	payloadHeaderLen  = 1 + 4 + 4 + 4 + initiatorFieldLen + 2
)

// TurnPayload is the decoded form of a match data blob.
// Score1 is attributed to the match initiator, Score2 to the other
// participant, regardless of who encodes or decodes the payload.
type TurnPayload struct {
	Round       uint32
	Score1      int32
	Score2      int32
	InitiatorID PlayerID
	Move        []byte
}

// MoveInput carries one submitted move: the already-final per-round
// scores (the game's own scoring rule applies them before submission)
// and the opaque move data.
type MoveInput struct {
	Score1 int32
	Score2 int32
	Data   []byte
}

// Decode parses a payload blob. It fails with ErrMalformedPayload when
// the blob's length or structure does not match the fixed layout.
func Decode(data []byte) (TurnPayload, error) {
	if len(data) < payloadHeaderLen {
		return TurnPayload{}, fmt.Errorf("%w: %d bytes, want at least %d", ErrMalformedPayload, len(data), payloadHeaderLen)
	}
	if data[0] != payloadVersion {
		return TurnPayload{}, fmt.Errorf("%w: unknown version %d", ErrMalformedPayload, data[0])
	}

	p := TurnPayload{
		Round:  binary.BigEndian.Uint32(data[1:5]),
		Score1: int32(binary.BigEndian.Uint32(data[5:9])),
		Score2: int32(binary.BigEndian.Uint32(data[9:13])),
	}
	if p.Round == 0 {
		return TurnPayload{}, fmt.Errorf("%w: round must be at least 1", ErrMalformedPayload)
	}

	initiator := data[13 : 13+initiatorFieldLen]
	trimmed := bytes.TrimRight(initiator, "\x00")
	if bytes.IndexByte(trimmed, 0) >= 0 {
		return TurnPayload{}, fmt.Errorf("%w: initiator field has interior NUL", ErrMalformedPayload)
	}
	p.InitiatorID = PlayerID(trimmed)

	moveLen := int(binary.BigEndian.Uint16(data[29:31]))
	if len(data) != payloadHeaderLen+moveLen {
		return TurnPayload{}, fmt.Errorf("%w: move length %d disagrees with blob length %d", ErrMalformedPayload, moveLen, len(data))
	}
	if moveLen > 0 {
		p.Move = append([]byte(nil), data[payloadHeaderLen:]...)
	}

	return p, nil
}

// EncodeRaw serializes a payload exactly as given. Round-trip law:
// Decode(EncodeRaw(p)) == p for any valid payload, independent of
// which identity encodes or decodes it.
func EncodeRaw(p TurnPayload) ([]byte, error) {
	if p.Round == 0 {
		return nil, fmt.Errorf("%w: round must be at least 1", ErrMalformedPayload)
	}
	if len(p.InitiatorID) > initiatorFieldLen {
		return nil, fmt.Errorf("%w: initiator %q exceeds %d bytes", ErrMalformedPayload, p.InitiatorID, initiatorFieldLen)
	}
	if len(p.Move) > 0xFFFF {
		return nil, fmt.Errorf("%w: move data %d bytes exceeds limit", ErrMalformedPayload, len(p.Move))
	}

	buf := make([]byte, payloadHeaderLen+len(p.Move))
	buf[0] = payloadVersion
	binary.BigEndian.PutUint32(buf[1:5], p.Round)
	binary.BigEndian.PutUint32(buf[5:9], uint32(p.Score1))
	binary.BigEndian.PutUint32(buf[9:13], uint32(p.Score2))
	copy(buf[13:13+initiatorFieldLen], p.InitiatorID)
	binary.BigEndian.PutUint16(buf[29:31], uint16(len(p.Move)))
	copy(buf[payloadHeaderLen:], p.Move)

	return buf, nil
}

// Encode produces the blob for the next turn: the round advances by
// one, scores and move data are exactly what the caller supplied, and
// the initiator identity carries over from the previous payload.
func Encode(prev TurnPayload, move MoveInput) ([]byte, error) {
	next := TurnPayload{
		Round:       prev.Round + 1,
		Score1:      move.Score1,
		Score2:      move.Score2,
		InitiatorID: prev.InitiatorID,
		Move:        move.Data,
	}
	return EncodeRaw(next)
}
