// Package multiplayer pairs two SSH sessions into one co-op battle.
// A host opens a room and shares its join code; the partner joins with it and
// the server runs the battle authoritatively, streaming frames to both.
package multiplayer

import "github.com/Ikbal01/tanks-game/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// The host always drives Player1 and the partner Player2.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a connected session.
type SessionID string

// MatchID uniquely identifies a running co-op match.
type MatchID string

// MatchMode defines how a battle is played.
type MatchMode int

const (
	// MatchModeSolo is one player at one keyboard.
	MatchModeSolo MatchMode = iota

	// MatchModeLocalCoop is two players sharing one keyboard.
	MatchModeLocalCoop

	// MatchModeOnlineCoop is two SSH sessions playing the same battle.
	MatchModeOnlineCoop
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeLocalCoop:
		return "Local co-op"
	case MatchModeOnlineCoop:
		return "Online co-op"
	default:
		return "Unknown"
	}
}

// Players returns how many players a mode needs.
func (m MatchMode) Players() int {
	if m == MatchModeSolo {
		return 1
	}
	return 2
}
