// Package registry keeps the factories of every playable mode.
// Modes register themselves in init() functions, so the platform layers can
// list and start them without importing the battle package directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Ikbal01/tanks-game/internal/core"
)

// Game is what the terminal front end drives each frame.
// Implementations hold pure simulation state and never touch the terminal.
type Game interface {
	// ID returns a unique identifier used by the CLI and the score table.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts the game over. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick with player one's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and end flags.
	State() core.GameState
}

// MultiPlayerGame is a Game that accepts input from several players per tick.
type MultiPlayerGame interface {
	Game
	StepMulti(in core.MultiInputFrame) core.StepResult
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// CreateMulti instantiates a game that takes input from several players.
func CreateMulti(id string) (MultiPlayerGame, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	mg, ok := g.(MultiPlayerGame)
	if !ok {
		return nil, fmt.Errorf("registry: game %q is single player only", id)
	}
	return mg, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
