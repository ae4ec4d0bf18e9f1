package core

import "fmt"

// Bucket is a mutually exclusive classification label describing what
// action, if any, a match requires from the local player.
type Bucket int

const (
	BucketLocalTurn Bucket = iota
	BucketOpponentTurn
	BucketEnded
	BucketInvitationReceived
	BucketInvitationSent
	BucketSearching
)

// String returns a human-readable name for the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketLocalTurn:
		return "LocalTurn"
	case BucketOpponentTurn:
		return "OpponentTurn"
	case BucketEnded:
		return "Ended"
	case BucketInvitationReceived:
		return "InvitationReceived"
	case BucketInvitationSent:
		return "InvitationSentAwaitingReply"
	case BucketSearching:
		return "SearchingForOpponent"
	default:
		return "Unknown"
	}
}

// ClassKind tags the result of classifying a single match.
type ClassKind int

const (
	// ClassBucket means the match landed in a primary bucket.
	ClassBucket ClassKind = iota

	// ClassHidden means the local player already holds a Lost outcome
	// on an open match and the match is intentionally not shown until
	// the other side finalizes it. No bucket, no removal.
	ClassHidden

	// ClassRemove signals a stale random-match placeholder (opponent
	// still matching, no payload) that should be removed, not shown.
	ClassRemove

	// ClassAutoWin signals that the opponent quit out of turn and the
	// local player should be instructed to end the match as the winner.
	ClassAutoWin

	// ClassFault means the match could not be classified; Err holds
	// the error kind. The match is excluded from every bucket.
	ClassFault
)

// Classification is the tagged result of classifying one match: every
// match yields exactly one of a primary bucket, the hidden marker, an
// advisory signal, or a fault. Signals are advisory outputs for the
// coordinator to act on; classification itself never mutates a match.
type Classification struct {
	Kind   ClassKind
	Bucket Bucket // valid when Kind == ClassBucket
	Err    error  // valid when Kind == ClassFault
}

func bucketed(b Bucket) Classification {
	return Classification{Kind: ClassBucket, Bucket: b}
}

// Classify maps a match to its classification for the given local
// identity. The decision table is evaluated in order, first match wins:
//
//	1. status Matching                        -> SearchingForOpponent
//	2. status Ended                           -> Ended (finality only, never the reason)
//	3. status Open, participants resolved:
//	   a. opponent Matching, empty payload    -> Remove signal (stale placeholder)
//	   b. opponent Matching, payload present  -> SearchingForOpponent
//	   c. opponent Invited                    -> InvitationSentAwaitingReply
//	   d. current participant Invited         -> InvitationReceived
//	   e. both Active, both outcomes None     -> LocalTurn / OpponentTurn by current participant
//	   f. opponent outcome Lost               -> AutoWin signal (opponent quit out of turn)
//	   g. local outcome Lost                  -> Hidden
//	4. status Unknown                         -> fault (classification anomaly)
//
// An open match that falls through the whole table is a fault as well,
// so no match ever silently receives zero classifications.
func Classify(m Match, local PlayerID) Classification {
	switch m.Status {
	case MatchStatusMatching:
		return bucketed(BucketSearching)

	case MatchStatusEnded:
		return bucketed(BucketEnded)

	case MatchStatusOpen:
		localPart, opponent, err := Resolve(m, local)
		if err != nil {
			return Classification{Kind: ClassFault, Err: err}
		}

		switch {
		case opponent.Status == ParticipantMatching && len(m.Data) == 0:
			return Classification{Kind: ClassRemove}

		case opponent.Status == ParticipantMatching:
			return bucketed(BucketSearching)

		case opponent.Status == ParticipantInvited:
			return bucketed(BucketInvitationSent)

		case currentParticipantInvited(m):
			return bucketed(BucketInvitationReceived)

		case localPart.Status == ParticipantActive && opponent.Status == ParticipantActive &&
			localPart.Outcome == OutcomeNone && opponent.Outcome == OutcomeNone:
			if m.CurrentParticipantID == local {
				return bucketed(BucketLocalTurn)
			}
			return bucketed(BucketOpponentTurn)

		case opponent.Outcome == OutcomeLost:
			return Classification{Kind: ClassAutoWin}

		case localPart.Outcome == OutcomeLost:
			// The other side still has to finalize the match; until
			// then it stays out of every bucket.
			return Classification{Kind: ClassHidden}

		default:
			return Classification{
				Kind: ClassFault,
				Err: fmt.Errorf("%w: open match %s with local %s/%s and opponent %s/%s not covered",
					ErrClassificationAnomaly, m.ID,
					localPart.Status, localPart.Outcome, opponent.Status, opponent.Outcome),
			}
		}

	default:
		return Classification{
			Kind: ClassFault,
			Err:  fmt.Errorf("%w: match %s has unknown status", ErrClassificationAnomaly, m.ID),
		}
	}
}

func currentParticipantInvited(m Match) bool {
	cur := m.CurrentParticipant()
	return cur != nil && cur.Status == ParticipantInvited
}
