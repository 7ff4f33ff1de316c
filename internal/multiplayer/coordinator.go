package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Ikbal01/tanks-game/internal/core"
)

// Room is a co-op battle waiting for its second player.
type Room struct {
	Code      string
	GameID    string
	Host      SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	RoomTimeout   time.Duration // how long a room waits for a partner
	TickRate      int           // simulation ticks per second
	CleanupPeriod time.Duration // how often expired rooms are swept
	ScreenW       int           // frame size streamed to both players
	ScreenH       int
	Seed          int64 // 0 seeds each match from the clock
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	def := core.DefaultConfig()
	return CoordinatorConfig{
		RoomTimeout:   2 * time.Minute,
		TickRate:      def.TickRate,
		CleanupPeriod: 30 * time.Second,
		ScreenW:       def.ScreenW,
		ScreenH:       def.ScreenH,
	}
}

// GameFactory creates a reset game for a new match.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (CoopGame, error)

// MatchResultSaver persists finished matches. The storage package provides
// the implementation.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData is the persisted outcome of a match.
type MatchResultData struct {
	MatchID        string
	GameID         string
	HostSession    string
	PartnerSession string
	Score1         int
	Score2         int
	Stage          int
	Won            bool
	EndReason      string
	DurationSecs   int
}

// Coordinator pairs sessions into rooms and runs their matches.
// All state changes happen on its message loop.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	sessions    *Roster
	resultSaver MatchResultSaver
	logger      *log.Logger

	mu      sync.RWMutex
	rooms   map[string]*Room
	matches map[MatchID]*CoopMatch

	sessionRoom  map[SessionID]string
	sessionMatch map[SessionID]MatchID

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
	saves    sync.WaitGroup
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *Roster) *Coordinator {
	return &Coordinator{
		config:       cfg,
		gameFactory:  factory,
		sessions:     sessions,
		logger:       log.New(io.Discard),
		rooms:        make(map[string]*Room),
		matches:      make(map[MatchID]*CoopMatch),
		sessionRoom:  make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger sets the logger for room and match events.
func (c *Coordinator) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts down the coordinator and every running match, then waits for
// pending result saves.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		for _, m := range c.matches {
			m.Stop()
		}
		c.mu.Unlock()
		c.saves.Wait()
	})
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
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

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateRoomMsg:
		c.handleCreateRoom(m)
	case JoinRoomMsg:
		c.handleJoinRoom(m)
	case CancelRoomMsg:
		c.handleCancelRoom(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateRoom(msg CreateRoomMsg) {
	session, ok := c.sessions.Lookup(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if c.busy(msg.SessionID) {
		c.mu.Unlock()
		session.Send(RoomErrorEvent{Message: "Already in a room"})
		return
	}

	code := c.generateUniqueCode()
	c.rooms[code] = &Room{
		Code:      code,
		GameID:    msg.GameID,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionRoom[msg.SessionID] = code
	c.mu.Unlock()

	c.logger.Info("room opened", "code", code, "host", msg.SessionID)
	session.Send(RoomCreatedEvent{Code: code, GameID: msg.GameID})
}

func (c *Coordinator) handleJoinRoom(msg JoinRoomMsg) {
	session, ok := c.sessions.Lookup(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(RoomErrorEvent{Message: "Already in a room"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	room, exists := c.rooms[code]
	if !exists {
		session.Send(RoomErrorEvent{Message: "Room not found"})
		return
	}
	if room.Host.ID() == msg.SessionID {
		session.Send(RoomErrorEvent{Message: "Cannot join your own room"})
		return
	}

	room.Host.Send(RoomJoinedEvent{Code: code, Side: Player1, PartnerID: msg.SessionID})
	session.Send(RoomJoinedEvent{Code: code, Side: Player2, PartnerID: room.Host.ID()})

	c.startMatch(room, session)
}

// busy reports whether a session already hosts a room or plays a match.
// Must be called with the lock held.
func (c *Coordinator) busy(id SessionID) bool {
	_, inRoom := c.sessionRoom[id]
	_, inMatch := c.sessionMatch[id]
	return inRoom || inMatch
}

// startMatch turns a full room into a running match.
// Must be called with the lock held.
func (c *Coordinator) startMatch(room *Room, partner SessionHandle) {
	hostID, partnerID := room.Host.ID(), partner.ID()
	delete(c.rooms, room.Code)
	delete(c.sessionRoom, hostID)

	seed := c.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  c.config.ScreenW,
		ScreenH:  c.config.ScreenH,
		TickRate: c.config.TickRate,
		Seed:     seed,
		Players:  2,
	}

	game, err := c.gameFactory(room.GameID, cfg)
	if err != nil {
		c.logger.Error("match failed to start", "code", room.Code, "game", room.GameID, "err", err)
		room.Host.Send(RoomErrorEvent{Message: "Failed to create game"})
		partner.Send(RoomErrorEvent{Message: "Failed to create game"})
		return
	}

	matchID := MatchID(uuid.NewString())
	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	match := NewCoopMatch(matchID, room.Code, game, room.Host, partner, screen, cfg.TickRate)

	c.matches[matchID] = match
	c.sessionMatch[hostID] = matchID
	c.sessionMatch[partnerID] = matchID

	c.logger.Info("match started", "match", matchID, "code", room.Code, "host", hostID, "partner", partnerID, "seed", seed)
	room.Host.Send(MatchStartedEvent{MatchID: matchID, Side: Player1, Code: room.Code})
	partner.Send(MatchStartedEvent{MatchID: matchID, Side: Player2, Code: room.Code})

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(matchID, result)
	})
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
	}

	match, exists := c.matches[matchID]
	if !exists {
		return
	}
	host, partner := match.Sessions()

	c.logger.Info("match ended",
		"match", matchID,
		"reason", result.Reason,
		"stage", result.Stage,
		"score1", result.Score1,
		"score2", result.Score2,
	)

	if c.resultSaver != nil {
		tickRate := max(1, c.config.TickRate)
		data := MatchResultData{
			MatchID:        string(matchID),
			GameID:         match.GameID(),
			HostSession:    string(host.ID()),
			PartnerSession: string(partner.ID()),
			Score1:         result.Score1,
			Score2:         result.Score2,
			Stage:          result.Stage,
			Won:            result.Won,
			EndReason:      result.Reason.String(),
			DurationSecs:   int(result.Ticks / uint64(tickRate)), //nolint:gosec // tickRate is clamped positive
		}
		c.saves.Add(1)
		go func() {
			defer c.saves.Done()
			if err := c.resultSaver.SaveMatchResult(data); err != nil {
				c.logger.Warn("match result not saved", "match", data.MatchID, "err", err)
			}
		}()
	}

	delete(c.sessionMatch, host.ID())
	delete(c.sessionMatch, partner.ID())
	delete(c.matches, matchID)

	end := MatchEndedEvent{
		MatchID: matchID,
		Reason:  result.Reason,
		Won:     result.Won,
		Stage:   result.Stage,
		Score1:  result.Score1,
		Score2:  result.Score2,
	}
	host.Send(end)
	partner.Send(end)
}

func (c *Coordinator) handleCancelRoom(msg CancelRoomMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := strings.ToUpper(msg.Code)
	room, exists := c.rooms[code]
	if !exists || room.Host.ID() != msg.SessionID {
		return
	}

	delete(c.rooms, code)
	delete(c.sessionRoom, msg.SessionID)
	c.logger.Info("room closed", "code", code)
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.PlayerDisconnected(msg.SessionID)
	}
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.SendInput(msg.Player, msg.Input)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, inRoom := c.sessionRoom[msg.SessionID]; inRoom {
		delete(c.rooms, code)
		delete(c.sessionRoom, msg.SessionID)
		c.logger.Info("room closed", "code", code, "reason", "host disconnected")
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredRooms(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredRooms(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, room := range c.rooms {
		if now.Sub(room.CreatedAt) > c.config.RoomTimeout {
			room.Host.Send(RoomErrorEvent{Message: "Room expired"})
			delete(c.sessionRoom, room.Host.ID())
			delete(c.rooms, code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.rooms[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase alphanumeric code.
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// Room returns an open room by code.
func (c *Coordinator) Room(code string) (*Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rooms[strings.ToUpper(code)]
	return r, ok
}

// Match returns a running match by ID.
func (c *Coordinator) Match(id MatchID) (*CoopMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// RoomCount returns the number of open rooms.
func (c *Coordinator) RoomCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rooms)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
