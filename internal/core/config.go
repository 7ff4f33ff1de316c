package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Players  int   // Number of human players (1 or 2)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Players:  1,
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Combined score of all players
	GameOver bool // Whether the game has ended
	Won      bool // Whether the campaign was completed
	Paused   bool // Whether the game is paused
	Stage    int  // Current stage, 1-based
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
