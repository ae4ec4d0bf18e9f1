package scenario

import "github.com/beleapps/matchkit/internal/core"

const (
	simLocal    core.PlayerID = "G:1001"
	simOpponent core.PlayerID = "G:2002"
)

func init() {
	Register(Scenario{
		ID:             "duel",
		Title:          "Local player initiates and wins on the final round",
		LocalID:        simLocal,
		OpponentID:     simOpponent,
		LocalInitiates: true,
		Rounds:         6,
		Turns: []Turn{
			{Score1: 8, Score2: 0, Move: "open e4"},
			{Score1: 8, Score2: 6, Move: "reply c5"},
			{Score1: 15, Score2: 6, Move: "press d4"},
			{Score1: 15, Score2: 12, Move: "trade cxd4"},
			{Score1: 23, Score2: 12, Move: "push e5"},
			{Score1: 23, Score2: 19, Move: "resign-line"},
		},
	})

	Register(Scenario{
		ID:         "comeback",
		Title:      "Local player responds and closes the match with a win",
		LocalID:    simLocal,
		OpponentID: simOpponent,
		Rounds:     4,
		Turns: []Turn{
			{Score1: 9, Score2: 0, Move: "open"},
			{Score1: 9, Score2: 4, Move: "probe"},
			{Score1: 14, Score2: 4, Move: "extend"},
			{Score1: 14, Score2: 21, Move: "sweep"},
		},
	})

	Register(Scenario{
		ID:         "deadlock",
		Title:      "Both players finish level and the match is tied",
		LocalID:    simLocal,
		OpponentID: simOpponent,
		Rounds:     4,
		Turns: []Turn{
			{Score1: 5, Score2: 0, Move: "open"},
			{Score1: 5, Score2: 5, Move: "mirror"},
			{Score1: 11, Score2: 5, Move: "lead"},
			{Score1: 11, Score2: 11, Move: "level"},
		},
	})

	Register(Scenario{
		ID:             "forfeit",
		Title:          "Local player quits on their own turn mid-match",
		LocalID:        simLocal,
		OpponentID:     simOpponent,
		LocalInitiates: true,
		Rounds:         6,
		QuitAfterTurn:  2,
		Turns: []Turn{
			{Score1: 4, Score2: 0, Move: "open"},
			{Score1: 4, Score2: 9, Move: "counter"},
			{Score1: 10, Score2: 9, Move: "never played"},
		},
	})

	Register(Scenario{
		ID:             "walkout",
		Title:          "Local player abandons the match while waiting",
		LocalID:        simLocal,
		OpponentID:     simOpponent,
		LocalInitiates: true,
		Rounds:         6,
		QuitAfterTurn:  3,
		Turns: []Turn{
			{Score1: 4, Score2: 0, Move: "open"},
			{Score1: 4, Score2: 9, Move: "counter"},
			{Score1: 10, Score2: 9, Move: "press"},
			{Score1: 10, Score2: 16, Move: "never played"},
		},
	})
}
