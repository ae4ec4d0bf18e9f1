package scenario

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beleapps/matchkit/internal/coordinator"
	"github.com/beleapps/matchkit/internal/core"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestBuiltinScenariosRegistered(t *testing.T) {
	for _, id := range []string{"duel", "comeback", "deadlock", "forfeit", "walkout"} {
		if !Exists(id) {
			t.Errorf("expected builtin scenario %q to be registered", id)
		}
	}
}

func TestListSortedByID(t *testing.T) {
	infos := List()
	if len(infos) < 5 {
		t.Fatalf("expected at least 5 scenarios, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID >= infos[i].ID {
			t.Errorf("list not sorted: %q before %q", infos[i-1].ID, infos[i].ID)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("no-such-scenario"); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register(Scenario{ID: "duel"})
}

func TestRunDuelLocalWins(t *testing.T) {
	s, err := Lookup("duel")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	res, err := Run(s, coordinator.DefaultConfig(), quietLogger(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Ended {
		t.Fatal("expected match to end")
	}
	if got := res.Outcomes[s.LocalID]; got != core.OutcomeWon {
		t.Errorf("local outcome = %v, want won", got)
	}
	if got := res.Outcomes[s.OpponentID]; got != core.OutcomeLost {
		t.Errorf("opponent outcome = %v, want lost", got)
	}
	if res.Final.Status != core.MatchStatusEnded {
		t.Errorf("final status = %v, want ended", res.Final.Status)
	}
	if len(res.Steps) != len(s.Turns) {
		t.Errorf("steps = %d, want %d", len(res.Steps), len(s.Turns))
	}
	if ended := res.Working.Ended; len(ended) != 1 {
		t.Errorf("working set ended bucket = %d matches, want 1", len(ended))
	}
}

func TestRunComebackEndsThroughCoordinator(t *testing.T) {
	s, err := Lookup("comeback")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	res, err := Run(s, coordinator.DefaultConfig(), quietLogger(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Ended {
		t.Fatal("expected match to end")
	}
	if got := res.Outcomes[s.LocalID]; got != core.OutcomeWon {
		t.Errorf("local outcome = %v, want won", got)
	}

	last := res.Steps[len(res.Steps)-1]
	end, ok := last.Instruction.(coordinator.EndMatch)
	if !ok {
		t.Fatalf("last step instruction = %T, want EndMatch", last.Instruction)
	}
	if len(end.Payload) == 0 {
		t.Error("end instruction carries no payload")
	}
	if last.Round != uint32(s.Rounds) {
		t.Errorf("closing round = %d, want %d", last.Round, s.Rounds)
	}
}

type chanRecorder struct {
	ch chan coordinator.MatchRecord
}

func (r *chanRecorder) RecordResult(rec coordinator.MatchRecord) error {
	r.ch <- rec
	return nil
}

func TestRunHandsConcludedResultToRecorder(t *testing.T) {
	s, err := Lookup("comeback")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	rec := &chanRecorder{ch: make(chan coordinator.MatchRecord, 1)}
	if _, err := Run(s, coordinator.DefaultConfig(), quietLogger(), rec); err != nil {
		t.Fatalf("run: %v", err)
	}

	select {
	case r := <-rec.ch:
		if r.EndReason != "completed" {
			t.Errorf("end reason = %q, want completed", r.EndReason)
		}
		if r.LocalOutcome != core.OutcomeWon {
			t.Errorf("recorded local outcome = %v, want won", r.LocalOutcome)
		}
		if r.Rounds != s.Rounds {
			t.Errorf("recorded rounds = %d, want %d", r.Rounds, s.Rounds)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for recorded result")
	}
}

func TestRunDeadlockTies(t *testing.T) {
	s, err := Lookup("deadlock")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	res, err := Run(s, coordinator.DefaultConfig(), quietLogger(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := res.Outcomes[s.LocalID]; got != core.OutcomeTied {
		t.Errorf("local outcome = %v, want tied", got)
	}
	if got := res.Outcomes[s.OpponentID]; got != core.OutcomeTied {
		t.Errorf("opponent outcome = %v, want tied", got)
	}
}

func TestRunForfeitQuitsInTurn(t *testing.T) {
	s, err := Lookup("forfeit")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	res, err := Run(s, coordinator.DefaultConfig(), quietLogger(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Ended {
		t.Fatal("expected in-turn quit to end the match")
	}
	if got := res.Outcomes[s.LocalID]; got != core.OutcomeLost {
		t.Errorf("local outcome = %v, want lost", got)
	}
	if got := res.Outcomes[s.OpponentID]; got != core.OutcomeWon {
		t.Errorf("opponent outcome = %v, want won", got)
	}

	last := res.Steps[len(res.Steps)-1]
	if _, ok := last.Instruction.(coordinator.EndMatch); !ok {
		t.Fatalf("last step instruction = %T, want EndMatch", last.Instruction)
	}
}

func TestRunWalkoutQuitsOutOfTurn(t *testing.T) {
	s, err := Lookup("walkout")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	res, err := Run(s, coordinator.DefaultConfig(), quietLogger(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Ended {
		t.Fatal("out-of-turn quit should not end the match")
	}

	last := res.Steps[len(res.Steps)-1]
	if _, ok := last.Instruction.(coordinator.QuitOutOfTurn); !ok {
		t.Fatalf("last step instruction = %T, want QuitOutOfTurn", last.Instruction)
	}
	if len(res.Working.Hidden) != 1 || res.Working.Hidden[0] != res.Final.ID {
		t.Errorf("expected abandoned match %q to be hidden, got %v", res.Final.ID, res.Working.Hidden)
	}
}

func TestRunRejectsEmptyScript(t *testing.T) {
	_, err := Run(Scenario{ID: "empty", LocalID: simLocal, OpponentID: simOpponent, Rounds: 4}, coordinator.DefaultConfig(), quietLogger(), nil)
	if err == nil {
		t.Fatal("expected error for scenario without turns")
	}
}
