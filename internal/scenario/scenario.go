// Package scenario provides scripted two-player match scenarios for
// the simulate command. Scenarios register themselves in init()
// functions, allowing the CLI to discover and run them without
// hardcoded dependencies.
package scenario

import (
	"fmt"
	"sort"
	"sync"

	"github.com/beleapps/matchkit/internal/core"
)

// Turn is one scripted move: the per-round scores after the move is
// applied and the opaque move data the player would submit.
type Turn struct {
	Score1 int32
	Score2 int32
	Move   string
}

// Scenario is a scripted match between a local player and an opponent.
// The simulate command feeds its turns through the coordinator in
// alternating order, local player first when Local initiates.
type Scenario struct {
	ID    string
	Title string

	LocalID    core.PlayerID
	OpponentID core.PlayerID

	// LocalInitiates controls who plays the first turn.
	LocalInitiates bool

	// Rounds is the round limit for the scripted match. The opening
	// move writes round 1 and the responder plays even rounds, so a
	// scenario that runs to completion needs an even limit.
	Rounds int

	// Turns are consumed in order, alternating between the two
	// players starting with the initiator.
	Turns []Turn

	// QuitAfterTurn ends the scenario with a local quit after the
	// given 1-based turn, 0 to play the script out.
	QuitAfterTurn int
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID    string
	Title string
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario to the registry.
// Typically called from an init() function.
// Panics if a scenario with the same ID is already registered.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenarios[s.ID]; exists {
		panic(fmt.Sprintf("scenario: %q already registered", s.ID))
	}

	scenarios[s.ID] = s
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenarios))
	for id, s := range scenarios {
		result = append(result, Info{ID: id, Title: s.Title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns a scenario by its ID.
// Returns an error if the scenario ID is not registered.
func Lookup(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := scenarios[id]
	if !ok {
		return Scenario{}, fmt.Errorf("scenario: unknown scenario %q", id)
	}

	return s, nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}
