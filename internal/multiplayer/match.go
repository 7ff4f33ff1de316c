package multiplayer

import (
	"sync"
	"time"

	"github.com/Ikbal01/tanks-game/internal/core"
)

// CoopGame is a battle two players can drive at once.
type CoopGame interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	StepMulti(in core.MultiInputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	PlayerScore(p PlayerID) int
}

// MatchResult contains the outcome of a finished match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Won     bool
	Stage   int
	Score1  int
	Score2  int
	Ticks   uint64
}

// holdTicks is how long a movement key keeps a remote tank driving.
const holdTicks = 8

// CoopMatch runs one shared battle for two sessions. The server owns the
// simulation; clients only send input and draw the frames they receive.
type CoopMatch struct {
	id     MatchID
	code   string
	gameID string
	game   CoopGame
	screen *core.Screen

	host    SessionHandle
	partner SessionHandle

	inputMu   sync.Mutex
	latches   map[PlayerID]*core.InputLatch
	inputChan chan playerInput

	tick     uint64
	tickRate int
	done     chan struct{}
	doneOnce sync.Once

	disconnectChan chan SessionID
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

// NewCoopMatch creates a match. The game must already be Reset.
func NewCoopMatch(
	id MatchID,
	code string,
	game CoopGame,
	host, partner SessionHandle,
	screen *core.Screen,
	tickRate int,
) *CoopMatch {
	return &CoopMatch{
		id:      id,
		code:    code,
		gameID:  game.ID(),
		game:    game,
		screen:  screen,
		host:    host,
		partner: partner,
		latches: map[PlayerID]*core.InputLatch{
			Player1: core.NewInputLatch(holdTicks),
			Player2: core.NewInputLatch(holdTicks),
		},
		inputChan:      make(chan playerInput, 64),
		tickRate:       max(tickRate, 1),
		done:           make(chan struct{}),
		disconnectChan: make(chan SessionID, 2),
	}
}

// ID returns the match identifier.
func (m *CoopMatch) ID() MatchID {
	return m.id
}

// Code returns the join code of the room the match came from.
func (m *CoopMatch) Code() string {
	return m.code
}

// GameID returns the game identifier.
func (m *CoopMatch) GameID() string {
	return m.gameID
}

// Sessions returns the host and partner sessions.
func (m *CoopMatch) Sessions() (host, partner SessionHandle) {
	return m.host, m.partner
}

// SendInput queues player input for the next tick. It never blocks; input
// arriving faster than the match can drain it is dropped.
func (m *CoopMatch) SendInput(player PlayerID, input core.InputFrame) {
	select {
	case m.inputChan <- playerInput{player: player, input: input}:
	default:
	}
}

// PlayerDisconnected ends the match on behalf of a leaving session.
func (m *CoopMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run is the authoritative match loop. onComplete is called once when the
// battle ends or a player leaves, but not after Stop.
func (m *CoopMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	go m.monitorSessions()

	for {
		select {
		case <-ticker.C:
			if result, over := m.runTick(); over {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}

		case <-m.disconnectChan:
			if onComplete != nil {
				onComplete(m.result(MatchEndReasonDisconnect))
			}
			return

		case <-m.done:
			return
		}
	}
}

func (m *CoopMatch) runTick() (MatchResult, bool) {
	m.drainInputs()

	m.inputMu.Lock()
	in := core.NewMultiInputFrame()
	for p, l := range m.latches {
		in.SetPlayer(p, l.Next())
	}
	m.inputMu.Unlock()

	res := m.game.StepMulti(in)
	m.tick++

	m.screen.Clear()
	m.game.Render(m.screen)
	frame := FrameEvent{
		MatchID: m.id,
		Tick:    m.tick,
		Screen:  m.screen.Clone(),
		State:   res.State,
	}
	m.host.Send(frame)
	m.partner.Send(frame)

	if !res.State.GameOver {
		return MatchResult{}, false
	}
	reason := MatchEndReasonDefeat
	if res.State.Won {
		reason = MatchEndReasonVictory
	}
	return m.result(reason), true
}

func (m *CoopMatch) drainInputs() {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()

	for {
		select {
		case pi := <-m.inputChan:
			if l, ok := m.latches[pi.player]; ok {
				l.Press(pi.input)
			}
		default:
			return
		}
	}
}

func (m *CoopMatch) result(reason MatchEndReason) MatchResult {
	st := m.game.State()
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Won:     st.Won,
		Stage:   st.Stage,
		Score1:  m.game.PlayerScore(Player1),
		Score2:  m.game.PlayerScore(Player2),
		Ticks:   m.tick,
	}
}

func (m *CoopMatch) monitorSessions() {
	var id SessionID
	select {
	case <-m.host.Done():
		id = m.host.ID()
	case <-m.partner.Done():
		id = m.partner.ID()
	case <-m.done:
		return
	}
	m.PlayerDisconnected(id)
}

// Stop ends the match loop without reporting a result.
func (m *CoopMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
