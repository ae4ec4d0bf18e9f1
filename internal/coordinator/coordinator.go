// Package coordinator runs the turn coordination loop: it consumes
// match events from the matchmaking glue, keeps the classified working
// set, and computes the instructions the glue must send back to the
// service. All match decisions live in the core package; this package
// only serializes them and owns the shared working set.
package coordinator

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beleapps/matchkit/internal/core"
)

// Coordination errors. Submission errors abort only that submission;
// the match stays in its prior state for a later retry.
var (
	// ErrUnknownMatch means the match ID is not in the current snapshot.
	ErrUnknownMatch = errors.New("unknown match")

	// ErrSubmissionPosted means a move for the match is already posted
	// and not yet acknowledged by the service.
	ErrSubmissionPosted = errors.New("submission already posted")

	// ErrNotInvited means the local player has no pending invitation
	// on the match.
	ErrNotInvited = errors.New("no pending invitation")
)

// Config holds coordinator configuration.
type Config struct {
	TotalRounds   int           // rounds per match; the responder's final-round move ends it
	TurnTimeout   time.Duration // timeout hint attached to AdvanceTurn
	MessageBuffer int           // inbound message channel capacity
}

// DefaultConfig returns the engine's defaults: five rounds per match
// and a ten-hour turn timeout hint.
func DefaultConfig() Config {
	return Config{
		TotalRounds:   5,
		TurnTimeout:   36000 * time.Second,
		MessageBuffer: 256,
	}
}

// SubmissionState tracks the per-match turn submission state machine.
type SubmissionState int

const (
	// SubmissionIdle means no move is in flight; a move may be submitted.
	SubmissionIdle SubmissionState = iota

	// SubmissionContinuePosted means an AdvanceTurn was issued and not
	// yet acknowledged by a fresh match record.
	SubmissionContinuePosted

	// SubmissionEndPosted means an EndMatch was issued and not yet
	// acknowledged.
	SubmissionEndPosted

	// SubmissionFailed means the last submission aborted; the match is
	// unchanged and a retry is allowed.
	SubmissionFailed
)

// String returns a human-readable name for the submission state.
func (s SubmissionState) String() string {
	switch s {
	case SubmissionIdle:
		return "AwaitingMove"
	case SubmissionContinuePosted:
		return "ContinuePosted"
	case SubmissionEndPosted:
		return "EndPosted"
	case SubmissionFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// MatchRecord is a concluded match result handed to the optional
// result recorder.
type MatchRecord struct {
	MatchID         core.MatchID
	LocalID         core.PlayerID
	OpponentID      core.PlayerID
	Score1          int
	Score2          int
	LocalOutcome    core.Outcome
	OpponentOutcome core.Outcome
	Rounds          int
	EndReason       string
}

// ResultRecorder persists concluded match results. The interface keeps
// the coordinator free of any storage dependency.
type ResultRecorder interface {
	RecordResult(rec MatchRecord) error
}

// Coordinator owns the working set and serializes all match decisions
// through a single processing loop.
type Coordinator struct {
	config Config
	local  core.PlayerID
	relay  RelayHandle
	logger *log.Logger

	recorder ResultRecorder // optional, can be nil

	mu          sync.RWMutex
	matches     []core.Match // raw snapshot, service order
	working     *core.WorkingSet
	submissions map[core.MatchID]SubmissionState

	msgChan chan Message
	done    chan struct{}
}

// New creates a coordinator for the given local identity.
func New(local core.PlayerID, cfg Config, relay RelayHandle) *Coordinator {
	if cfg.MessageBuffer < 1 {
		cfg.MessageBuffer = DefaultConfig().MessageBuffer
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "matchkit",
	})
	return &Coordinator{
		config:      cfg,
		local:       local,
		relay:       relay,
		logger:      logger,
		working:     &core.WorkingSet{},
		submissions: make(map[core.MatchID]SubmissionState),
		msgChan:     make(chan Message, cfg.MessageBuffer),
		done:        make(chan struct{}),
	}
}

// SetResultRecorder sets the optional result recorder.
func (c *Coordinator) SetResultRecorder(r ResultRecorder) {
	c.recorder = r
}

// SetLogger replaces the coordinator's logger.
func (c *Coordinator) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Start begins the coordination loop.
func (c *Coordinator) Start() {
	go c.processMessages()
}

// Stop shuts the coordination loop down.
func (c *Coordinator) Stop() {
	close(c.done)
}

// Send queues a message for the coordination loop.
func (c *Coordinator) Send(msg Message) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg Message) {
	switch m := msg.(type) {
	case SnapshotRefreshedMsg:
		c.RefreshSnapshot(m.Matches)
	case MatchUpdatedMsg:
		c.ApplyMatchUpdate(m.Match)
	case SubmitMoveMsg:
		if _, err := c.SubmitMove(m.MatchID, m.Move); err != nil {
			c.logger.Warn("move submission aborted", "match", m.MatchID, "error", err)
		}
	case InvitationAnsweredMsg:
		if _, err := c.AnswerInvitation(m.MatchID, m.Accept); err != nil {
			c.logger.Warn("invitation answer rejected", "match", m.MatchID, "error", err)
		}
	case QuitRequestedMsg:
		if _, err := c.RequestQuit(m.MatchID, m.LocalOutcome); err != nil {
			c.logger.Warn("quit request rejected", "match", m.MatchID, "error", err)
		}
	}
}

// WorkingSet returns the current classification snapshot. The returned
// set is replaced wholesale on every rebuild and must be treated as
// immutable by readers.
func (c *Coordinator) WorkingSet() *core.WorkingSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.working
}

// SubmissionStateFor reports the submission state of a match.
func (c *Coordinator) SubmissionStateFor(id core.MatchID) SubmissionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.submissions[id]
}

// RefreshSnapshot replaces the raw match list with a fresh service
// snapshot, rebuilds the working set, and emits the advisory
// instructions the classification pass produced. A fresh snapshot
// acknowledges any posted submissions, so all submission states reset.
func (c *Coordinator) RefreshSnapshot(matches []core.Match) {
	snapshot := append([]core.Match(nil), matches...)
	ws := core.BuildWorkingSet(snapshot, c.local)

	c.mu.Lock()
	c.matches = snapshot
	c.working = ws
	c.submissions = make(map[core.MatchID]SubmissionState)
	c.mu.Unlock()

	c.reportFaults(ws.Faults)
	for _, id := range ws.Removals {
		c.logger.Info("removing stale match", "match", id)
		c.relay.Deliver(RemoveMatch{MatchID: id})
	}
	for _, id := range ws.AutoWins {
		c.logger.Info("opponent quit out of turn", "match", id)
		c.relay.Deliver(AutoWinMatch{MatchID: id})
		for _, m := range snapshot {
			if m.ID == id {
				c.recordAutoWin(m)
				break
			}
		}
	}
}

// ApplyMatchUpdate patches a single match record, re-classifies, and
// emits advisory instructions for the affected match only. The derived
// working set is still rebuilt wholesale so readers never observe a
// partially updated bucket set.
func (c *Coordinator) ApplyMatchUpdate(m core.Match) {
	c.mu.Lock()
	replaced := false
	for i := range c.matches {
		if c.matches[i].ID == m.ID {
			c.matches[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		c.matches = append(c.matches, m)
	}
	ws := core.BuildWorkingSet(c.matches, c.local)
	c.working = ws
	delete(c.submissions, m.ID)
	c.mu.Unlock()

	for _, f := range ws.Faults {
		if f.MatchID == m.ID {
			c.logger.Warn("match excluded from buckets", "match", f.MatchID, "error", f.Err)
		}
	}
	for _, id := range ws.Removals {
		if id == m.ID {
			c.logger.Info("removing stale match", "match", id)
			c.relay.Deliver(RemoveMatch{MatchID: id})
		}
	}
	for _, id := range ws.AutoWins {
		if id == m.ID {
			c.logger.Info("opponent quit out of turn", "match", id)
			c.relay.Deliver(AutoWinMatch{MatchID: id})
			c.recordAutoWin(m)
		}
	}
}

// SubmitMove runs the end-of-turn transition for a local move: encode
// the next payload, decide continue-versus-end, and issue the matching
// instruction. On any failure no instruction is emitted, the match
// keeps its prior state, and the specific error kind is returned.
func (c *Coordinator) SubmitMove(id core.MatchID, move core.MoveInput) (Instruction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.findMatch(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}

	switch c.submissions[id] {
	case SubmissionContinuePosted, SubmissionEndPosted:
		return nil, fmt.Errorf("%w: match %s is %s", ErrSubmissionPosted, id, c.submissions[id])
	}

	_, opponent, err := core.Resolve(m, c.local)
	if err != nil {
		c.submissions[id] = SubmissionFailed
		return nil, err
	}

	prev, err := c.previousPayload(m)
	if err != nil {
		c.submissions[id] = SubmissionFailed
		return nil, err
	}

	blob, err := core.Encode(prev, move)
	if err != nil {
		c.submissions[id] = SubmissionFailed
		return nil, err
	}
	next, err := core.Decode(blob)
	if err != nil {
		c.submissions[id] = SubmissionFailed
		return nil, err
	}

	decision, err := core.Evaluate(next, c.config.TotalRounds, next.InitiatorID == c.local)
	if err != nil {
		c.submissions[id] = SubmissionFailed
		return nil, err
	}

	if !decision.Terminal {
		instr := AdvanceTurn{
			MatchID:           id,
			NextParticipantID: opponent.PlayerID,
			Payload:           blob,
			TimeoutHint:       c.config.TurnTimeout,
		}
		c.submissions[id] = SubmissionContinuePosted
		c.logger.Info("turn advanced", "match", id, "round", next.Round, "next", opponent.PlayerID)
		c.relay.Deliver(instr)
		return instr, nil
	}

	instr := EndMatch{
		MatchID: id,
		Payload: blob,
		Outcomes: map[core.PlayerID]core.Outcome{
			c.local:           decision.Local,
			opponent.PlayerID: decision.Opponent,
		},
	}
	c.submissions[id] = SubmissionEndPosted
	c.logger.Info("match concluded", "match", id,
		"score1", next.Score1, "score2", next.Score2, "local", decision.Local)
	c.relay.Deliver(instr)

	c.record(MatchRecord{
		MatchID:         id,
		LocalID:         c.local,
		OpponentID:      opponent.PlayerID,
		Score1:          int(next.Score1),
		Score2:          int(next.Score2),
		LocalOutcome:    decision.Local,
		OpponentOutcome: decision.Opponent,
		Rounds:          int(next.Round),
		EndReason:       "completed",
	})

	return instr, nil
}

// AnswerInvitation issues the accept or decline call for a pending
// invitation on the match.
func (c *Coordinator) AnswerInvitation(id core.MatchID, accept bool) (Instruction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.findMatch(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}

	localPart, _, err := core.Resolve(m, c.local)
	if err != nil {
		return nil, err
	}
	if localPart.Status != core.ParticipantInvited {
		return nil, fmt.Errorf("%w: match %s, local status %s", ErrNotInvited, id, localPart.Status)
	}

	var instr Instruction
	if accept {
		instr = AcceptInvite{MatchID: id}
	} else {
		instr = DeclineInvite{MatchID: id}
	}
	c.logger.Info("invitation answered", "match", id, "accepted", accept)
	c.relay.Deliver(instr)
	return instr, nil
}

// RequestQuit handles a local quit. When the local player is the
// current participant the match can be ended directly with final
// outcomes; otherwise the service is told the local player quit out of
// turn, taking a loss.
func (c *Coordinator) RequestQuit(id core.MatchID, localOutcome core.Outcome) (Instruction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.findMatch(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}

	_, opponent, err := core.Resolve(m, c.local)
	if err != nil {
		return nil, err
	}

	if m.CurrentParticipantID != c.local {
		instr := QuitOutOfTurn{MatchID: id}
		c.logger.Info("quitting out of turn", "match", id)
		c.relay.Deliver(instr)
		return instr, nil
	}

	if localOutcome == core.OutcomeNone {
		localOutcome = core.OutcomeTied
	}
	instr := EndMatch{
		MatchID: id,
		Payload: m.Data,
		Outcomes: map[core.PlayerID]core.Outcome{
			c.local:           localOutcome,
			opponent.PlayerID: localOutcome.Inverse(),
		},
	}
	c.submissions[id] = SubmissionEndPosted
	c.logger.Info("quitting in turn", "match", id, "outcome", localOutcome)
	c.relay.Deliver(instr)

	rec := MatchRecord{
		MatchID:         id,
		LocalID:         c.local,
		OpponentID:      opponent.PlayerID,
		LocalOutcome:    localOutcome,
		OpponentOutcome: localOutcome.Inverse(),
		EndReason:       "quit",
	}
	if p, perr := core.Decode(m.Data); perr == nil {
		rec.Score1 = int(p.Score1)
		rec.Score2 = int(p.Score2)
		rec.Rounds = int(p.Round)
	}
	c.record(rec)

	return instr, nil
}

// previousPayload decodes the match's current data blob. A match with
// no data yet is a first move: the submitter becomes the initiator and
// the encoded payload starts at round one.
func (c *Coordinator) previousPayload(m core.Match) (core.TurnPayload, error) {
	if len(m.Data) == 0 {
		return core.TurnPayload{Round: 0, InitiatorID: c.local}, nil
	}
	return core.Decode(m.Data)
}

// findMatch looks a match up in the raw snapshot. Callers hold c.mu.
func (c *Coordinator) findMatch(id core.MatchID) (core.Match, bool) {
	for _, m := range c.matches {
		if m.ID == id {
			return m, true
		}
	}
	return core.Match{}, false
}

func (c *Coordinator) reportFaults(faults []core.MatchFault) {
	for _, f := range faults {
		c.logger.Warn("match excluded from buckets", "match", f.MatchID, "error", f.Err)
	}
}

// recordAutoWin archives the walkover when the opponent quit out of
// turn. The advisory can repeat until the service marks the match
// ended, so the recorder must deduplicate by match ID.
func (c *Coordinator) recordAutoWin(m core.Match) {
	if c.recorder == nil {
		return
	}
	_, opponent, err := core.Resolve(m, c.local)
	if err != nil {
		return
	}

	rec := MatchRecord{
		MatchID:         m.ID,
		LocalID:         c.local,
		OpponentID:      opponent.PlayerID,
		LocalOutcome:    core.OutcomeWon,
		OpponentOutcome: opponent.Outcome,
		EndReason:       "auto-win",
	}
	if p, perr := core.Decode(m.Data); perr == nil {
		rec.Score1 = int(p.Score1)
		rec.Score2 = int(p.Score2)
		rec.Rounds = int(p.Round)
	}
	c.record(rec)
}

// record hands a concluded result to the recorder, best effort.
func (c *Coordinator) record(rec MatchRecord) {
	if c.recorder == nil {
		return
	}
	go func() {
		if err := c.recorder.RecordResult(rec); err != nil {
			c.logger.Warn("could not record match result", "match", rec.MatchID, "error", err)
		}
	}()
}
