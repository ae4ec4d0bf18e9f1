package scenario

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/beleapps/matchkit/internal/coordinator"
	"github.com/beleapps/matchkit/internal/core"
)

// Step records one action taken while driving a scenario. Instruction
// is set for moves made through the local coordinator and nil for
// moves the opponent's client made on its own.
type Step struct {
	Actor       core.PlayerID
	Round       uint32
	Instruction coordinator.Instruction
	Note        string
}

// Result is what a scenario produced once driven to its end.
type Result struct {
	Steps    []Step
	Ended    bool
	Outcomes map[core.PlayerID]core.Outcome
	Final    core.Match
	Working  *core.WorkingSet
}

// Run drives a scripted scenario through a coordinator. Moves by the
// local player go through SubmitMove and the returned instruction is
// applied back to the match, emulating the relay round-trip. Moves by
// the opponent are computed the way the opponent's own client would
// and pushed in as match updates. The scenario's own round limit
// overrides the one in cfg. A non-nil recorder receives the result
// when the run concludes through the coordinator.
func Run(s Scenario, cfg coordinator.Config, logger *log.Logger, recorder coordinator.ResultRecorder) (*Result, error) {
	if len(s.Turns) == 0 {
		return nil, fmt.Errorf("scenario: %q has no turns", s.ID)
	}
	if s.Rounds < 1 {
		return nil, fmt.Errorf("scenario: %q has no round limit", s.ID)
	}

	cfg.TotalRounds = s.Rounds
	relay := coordinator.NewChannelRelay(len(s.Turns) + 4)
	defer relay.Close()

	c := coordinator.New(s.LocalID, cfg, relay)
	if logger != nil {
		c.SetLogger(logger)
	}
	if recorder != nil {
		c.SetResultRecorder(recorder)
	}

	initiator, responder := s.OpponentID, s.LocalID
	if s.LocalInitiates {
		initiator, responder = s.LocalID, s.OpponentID
	}

	match := core.Match{
		ID:     core.MatchID("sim-" + s.ID),
		Status: core.MatchStatusOpen,
		Participants: []core.Participant{
			{PlayerID: s.LocalID, Status: core.ParticipantActive},
			{PlayerID: s.OpponentID, Status: core.ParticipantActive},
		},
		CurrentParticipantID: initiator,
	}
	c.RefreshSnapshot([]core.Match{match})

	res := &Result{}
	for i, turn := range s.Turns {
		if s.QuitAfterTurn > 0 && i >= s.QuitAfterTurn {
			break
		}

		actor := initiator
		if i%2 == 1 {
			actor = responder
		}

		var err error
		if actor == s.LocalID {
			err = runLocalTurn(c, &match, turn, res)
		} else {
			err = runOpponentTurn(c, &match, s, actor, turn, res)
		}
		if err != nil {
			return nil, fmt.Errorf("scenario %q turn %d: %w", s.ID, i+1, err)
		}
		if res.Ended {
			break
		}
	}

	if !res.Ended && s.QuitAfterTurn > 0 {
		if err := runQuit(c, &match, s, res); err != nil {
			return nil, fmt.Errorf("scenario %q quit: %w", s.ID, err)
		}
	}

	res.Final = match
	res.Working = c.WorkingSet()
	return res, nil
}

func runLocalTurn(c *coordinator.Coordinator, match *core.Match, turn Turn, res *Result) error {
	instr, err := c.SubmitMove(match.ID, core.MoveInput{
		Score1: turn.Score1,
		Score2: turn.Score2,
		Data:   []byte(turn.Move),
	})
	if err != nil {
		return err
	}

	step := Step{Actor: match.CurrentParticipantID, Instruction: instr}
	switch v := instr.(type) {
	case coordinator.AdvanceTurn:
		match.Data = v.Payload
		match.CurrentParticipantID = v.NextParticipantID
		step.Note = "turn advanced"
	case coordinator.EndMatch:
		match.Data = v.Payload
		concludeMatch(match, v.Outcomes)
		res.Ended = true
		res.Outcomes = v.Outcomes
		step.Note = "match ended"
	default:
		return fmt.Errorf("unexpected instruction %T", instr)
	}

	if p, err := core.Decode(match.Data); err == nil {
		step.Round = p.Round
	}
	res.Steps = append(res.Steps, step)
	c.ApplyMatchUpdate(*match)
	return nil
}

func runOpponentTurn(c *coordinator.Coordinator, match *core.Match, s Scenario, actor core.PlayerID, turn Turn, res *Result) error {
	prev := core.TurnPayload{InitiatorID: actor}
	if len(match.Data) > 0 {
		var err error
		prev, err = core.Decode(match.Data)
		if err != nil {
			return err
		}
	}

	blob, err := core.Encode(prev, core.MoveInput{
		Score1: turn.Score1,
		Score2: turn.Score2,
		Data:   []byte(turn.Move),
	})
	if err != nil {
		return err
	}
	next, err := core.Decode(blob)
	if err != nil {
		return err
	}
	decision, err := core.Evaluate(next, s.Rounds, next.InitiatorID == actor)
	if err != nil {
		return err
	}

	match.Data = blob
	step := Step{Actor: actor, Round: next.Round}
	if decision.Terminal {
		outcomes := map[core.PlayerID]core.Outcome{
			actor:     decision.Local,
			s.LocalID: decision.Opponent,
		}
		concludeMatch(match, outcomes)
		res.Ended = true
		res.Outcomes = outcomes
		step.Note = "match ended"
	} else {
		match.CurrentParticipantID = s.LocalID
		step.Note = "turn advanced"
	}

	res.Steps = append(res.Steps, step)
	c.ApplyMatchUpdate(*match)
	return nil
}

func runQuit(c *coordinator.Coordinator, match *core.Match, s Scenario, res *Result) error {
	instr, err := c.RequestQuit(match.ID, core.OutcomeLost)
	if err != nil {
		return err
	}

	step := Step{Actor: s.LocalID, Instruction: instr, Note: "local quit"}
	switch v := instr.(type) {
	case coordinator.EndMatch:
		match.Data = v.Payload
		concludeMatch(match, v.Outcomes)
		res.Ended = true
		res.Outcomes = v.Outcomes
	case coordinator.QuitOutOfTurn:
		markOutcome(match, s.LocalID, core.OutcomeLost)
	default:
		return fmt.Errorf("unexpected instruction %T", instr)
	}

	res.Steps = append(res.Steps, step)
	c.ApplyMatchUpdate(*match)
	return nil
}

func concludeMatch(m *core.Match, outcomes map[core.PlayerID]core.Outcome) {
	m.Status = core.MatchStatusEnded
	parts := make([]core.Participant, len(m.Participants))
	copy(parts, m.Participants)
	for i := range parts {
		parts[i].Status = core.ParticipantDone
		if o, ok := outcomes[parts[i].PlayerID]; ok {
			parts[i].Outcome = o
		}
	}
	m.Participants = parts
}

func markOutcome(m *core.Match, player core.PlayerID, outcome core.Outcome) {
	parts := make([]core.Participant, len(m.Participants))
	copy(parts, m.Participants)
	for i := range parts {
		if parts[i].PlayerID == player {
			parts[i].Outcome = outcome
		}
	}
	m.Participants = parts
}
