package core

import "fmt"

// Decision is the result of evaluating a submitted turn: either the
// match continues with the other participant, or it is terminal and
// carries the final outcome pair. Outcomes always come as exactly one
// Won and one Lost, or two Tied.
type Decision struct {
	Terminal bool
	Local    Outcome // valid when Terminal
	Opponent Outcome // valid when Terminal
}

// Evaluate decides whether a just-encoded payload ends the match and,
// if so, computes the outcome pair. It is a pure function of its
// inputs.
//
// The match reaches its terminal round only when the payload carries
// the final round AND the evaluating identity is not the initiator.
// The initiator plays round N before the responder does, so only the
// responder's submission of round N closes the match; checking from
// the initiator's side would end it one turn early.
//
// At the terminal round the payload scores decide: score1 belongs to
// the initiator, score2 to the responder, and score1 < score2 means
// the local (responding) player won. Equal scores tie.
func Evaluate(p TurnPayload, totalRounds int, isInitiator bool) (Decision, error) {
	if totalRounds < 1 {
		return Decision{}, fmt.Errorf("%w: total rounds %d", ErrInvalidRoundCount, totalRounds)
	}
	if int(p.Round) > totalRounds {
		return Decision{}, fmt.Errorf("%w: payload round %d past limit %d", ErrInvalidRoundCount, p.Round, totalRounds)
	}

	if int(p.Round) != totalRounds || isInitiator {
		return Decision{}, nil
	}

	switch {
	case p.Score1 < p.Score2:
		return Decision{Terminal: true, Local: OutcomeWon, Opponent: OutcomeLost}, nil
	case p.Score2 < p.Score1:
		return Decision{Terminal: true, Local: OutcomeLost, Opponent: OutcomeWon}, nil
	default:
		return Decision{Terminal: true, Local: OutcomeTied, Opponent: OutcomeTied}, nil
	}
}
