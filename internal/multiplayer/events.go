package multiplayer

import "github.com/Ikbal01/tanks-game/internal/core"

// SessionEvent is sent from the coordinator or a match to a session.
type SessionEvent interface {
	sessionEvent()
}

// RoomCreatedEvent tells the host its room is open.
type RoomCreatedEvent struct {
	Code   string
	GameID string
}

func (RoomCreatedEvent) sessionEvent() {}

// RoomErrorEvent reports a failed room operation.
type RoomErrorEvent struct {
	Message string
}

func (RoomErrorEvent) sessionEvent() {}

// RoomJoinedEvent is sent to both players once the partner is in.
type RoomJoinedEvent struct {
	Code      string
	Side      PlayerID
	PartnerID SessionID
}

func (RoomJoinedEvent) sessionEvent() {}

// RoomPartnerLeftEvent tells the host the partner left before the battle began.
type RoomPartnerLeftEvent struct {
	Code string
}

func (RoomPartnerLeftEvent) sessionEvent() {}

// MatchStartedEvent is sent when the battle begins.
type MatchStartedEvent struct {
	MatchID MatchID
	Side    PlayerID
	Code    string
}

func (MatchStartedEvent) sessionEvent() {}

// MatchEndedEvent is sent when the battle is over or was abandoned.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Won     bool
	Stage   int
	Score1  int
	Score2  int
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonVictory    MatchEndReason = iota // Campaign cleared
	MatchEndReasonDefeat                           // Fortress fell or both heroes died
	MatchEndReasonDisconnect                       // Partner disconnected
	MatchEndReasonCancelled                        // Server stopped the match
	MatchEndReasonHostLeft                         // Host closed the room
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonVictory:
		return "Victory"
	case MatchEndReasonDefeat:
		return "Defeat"
	case MatchEndReasonDisconnect:
		return "Partner disconnected"
	case MatchEndReasonCancelled:
		return "Match cancelled"
	case MatchEndReasonHostLeft:
		return "Host left"
	default:
		return "Unknown"
	}
}

// FrameEvent carries one rendered frame of the shared battle.
// Screen is a private copy the receiver may keep.
type FrameEvent struct {
	MatchID MatchID
	Tick    uint64
	Screen  *core.Screen
	State   core.GameState
}

func (FrameEvent) sessionEvent() {}

// CoordinatorMessage is sent from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateRoomMsg asks for a new room.
type CreateRoomMsg struct {
	SessionID SessionID
	GameID    string
}

func (CreateRoomMsg) coordinatorMessage() {}

// JoinRoomMsg asks to join a room by its code.
type JoinRoomMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinRoomMsg) coordinatorMessage() {}

// CancelRoomMsg closes a room the session hosts.
type CancelRoomMsg struct {
	SessionID SessionID
	Code      string
}

func (CancelRoomMsg) coordinatorMessage() {}

// LeaveMatchMsg abandons a running match.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

func (LeaveMatchMsg) coordinatorMessage() {}

// PlayerInputMsg forwards one player's input to a match.
type PlayerInputMsg struct {
	MatchID MatchID
	Player  PlayerID
	Input   core.InputFrame
}

func (PlayerInputMsg) coordinatorMessage() {}

// SessionDisconnectedMsg is sent when a session's connection closes.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}
