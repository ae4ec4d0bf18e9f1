package core

// WorkingSet is one classification pass over a match snapshot: every
// primary bucket, the derived aggregate views, and the advisory
// signals and faults the pass produced. It is rebuilt wholesale from
// each snapshot and never patched field by field, so readers always
// observe a consistent bucket set.
type WorkingSet struct {
	// Primary buckets. A match appears in at most one of these.
	LocalTurn          []Match
	OpponentTurn       []Match
	Ended              []Match
	InvitationReceived []Match
	InvitationSent     []Match
	Searching          []Match

	// Aggregate views, derived after the per-match pass. Each keeps
	// the matches in their order of first appearance in the snapshot.
	All                 []Match // every match that received a primary bucket
	RequiresLocalAction []Match // InvitationReceived + LocalTurn
	AwaitingOther       []Match // Searching + InvitationSent + OpponentTurn

	// Advisory signals for the coordinator to act on.
	Removals []MatchID // stale placeholders to remove
	AutoWins []MatchID // opponent quit out of turn, end as winner
	Hidden   []MatchID // open matches intentionally not shown

	// Per-match classification failures. Faulted matches are excluded
	// from every bucket.
	Faults []MatchFault
}

// BuildWorkingSet classifies a snapshot of matches from the local
// identity's viewpoint. It is pure: the input matches are never
// mutated and the same snapshot always yields an identical working
// set, contents and ordering included.
func BuildWorkingSet(matches []Match, local PlayerID) *WorkingSet {
	ws := &WorkingSet{}

	for _, m := range matches {
		c := Classify(m, local)
		switch c.Kind {
		case ClassBucket:
			ws.add(m, c.Bucket)
		case ClassHidden:
			ws.Hidden = append(ws.Hidden, m.ID)
		case ClassRemove:
			ws.Removals = append(ws.Removals, m.ID)
		case ClassAutoWin:
			ws.AutoWins = append(ws.AutoWins, m.ID)
		case ClassFault:
			ws.Faults = append(ws.Faults, MatchFault{MatchID: m.ID, Err: c.Err})
		}
	}

	return ws
}

// add places a match in its primary bucket and the derived aggregates,
// preserving snapshot order.
func (ws *WorkingSet) add(m Match, b Bucket) {
	switch b {
	case BucketLocalTurn:
		ws.LocalTurn = append(ws.LocalTurn, m)
		ws.RequiresLocalAction = append(ws.RequiresLocalAction, m)
	case BucketOpponentTurn:
		ws.OpponentTurn = append(ws.OpponentTurn, m)
		ws.AwaitingOther = append(ws.AwaitingOther, m)
	case BucketEnded:
		ws.Ended = append(ws.Ended, m)
	case BucketInvitationReceived:
		ws.InvitationReceived = append(ws.InvitationReceived, m)
		ws.RequiresLocalAction = append(ws.RequiresLocalAction, m)
	case BucketInvitationSent:
		ws.InvitationSent = append(ws.InvitationSent, m)
		ws.AwaitingOther = append(ws.AwaitingOther, m)
	case BucketSearching:
		ws.Searching = append(ws.Searching, m)
		ws.AwaitingOther = append(ws.AwaitingOther, m)
	}
	ws.All = append(ws.All, m)
}

// Find returns the bucketed match with the given ID, if any.
func (ws *WorkingSet) Find(id MatchID) (Match, bool) {
	for _, m := range ws.All {
		if m.ID == id {
			return m, true
		}
	}
	return Match{}, false
}

// Bucket returns the matches of a single primary bucket.
func (ws *WorkingSet) Bucket(b Bucket) []Match {
	switch b {
	case BucketLocalTurn:
		return ws.LocalTurn
	case BucketOpponentTurn:
		return ws.OpponentTurn
	case BucketEnded:
		return ws.Ended
	case BucketInvitationReceived:
		return ws.InvitationReceived
	case BucketInvitationSent:
		return ws.InvitationSent
	case BucketSearching:
		return ws.Searching
	default:
		return nil
	}
}
