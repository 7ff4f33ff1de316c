package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ikbal01/tanks-game/internal/core"
	"github.com/Ikbal01/tanks-game/internal/multiplayer"
)

// joinCodeLen is the length of a room code.
const joinCodeLen = 6

// OnlineState represents the current state of the online co-op flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for a partner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting for the room to answer
	OnlineStateInMatch                          // Battle has started
)

// sessionClosedMsg is delivered when the session's event stream ends.
type sessionClosedMsg struct{}

// waitForEvent reads one coordinator event or battle frame. The session
// model re-arms it after every event so exactly one reader is pending.
func waitForEvent(session *multiplayer.Seat) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-session.Events():
			return evt
		case frame := <-session.Frames():
			return frame
		case <-session.Done():
			return sessionClosedMsg{}
		}
	}
}

var (
	lobbyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	lobbyCodeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Border(lipgloss.RoundedBorder()).Padding(0, 2)
	lobbyErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	lobbyHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// OnlineLobbyModel opens or joins a co-op room.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	gameID      string
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator

	// Host state
	roomCode string

	// Join state
	joinCodeInput string
	joinError     string

	// Match state
	matchID   multiplayer.MatchID
	side      core.PlayerID
	partnerID multiplayer.SessionID

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new online lobby model.
func NewOnlineLobbyModel(
	gameID string,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineLobbyModel {
	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		gameID:      gameID,
		sessionID:   sessionID,
		coordinator: coordinator,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case multiplayer.RoomCreatedEvent:
		m.roomCode = msg.Code
		m.state = OnlineStateHostWaiting
	case multiplayer.RoomJoinedEvent:
		m.side = msg.Side
		m.partnerID = msg.PartnerID
	case multiplayer.RoomErrorEvent:
		m.joinError = msg.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
		}
		if m.state == OnlineStateHostWaiting {
			m.state = OnlineStateChooseMode
			m.roomCode = ""
		}
	case multiplayer.MatchStartedEvent:
		m.matchID = msg.MatchID
		m.side = msg.Side
		m.state = OnlineStateInMatch
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		if s := msg.String(); s == "esc" || s == "b" {
			m.state = OnlineStateJoinEnterCode
		}
	}
	return m, nil
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.joinError = ""
		m.coordinator.Send(multiplayer.CreateRoomMsg{
			SessionID: m.sessionID,
			GameID:    m.gameID,
		})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.joinError = ""
	case "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.backToMenu = true
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch k {
	case "esc":
		m.state = OnlineStateChooseMode
		m.joinError = ""
	case "enter":
		if len(m.joinCodeInput) == joinCodeLen {
			m.state = OnlineStateJoinWaiting
			m.joinError = ""
			m.coordinator.Send(multiplayer.JoinRoomMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		if len(k) == 1 && len(m.joinCodeInput) < joinCodeLen {
			c := strings.ToUpper(k)[0]
			if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
				m.joinCodeInput += string(c)
			}
		}
	}
	return m, nil
}

// leave closes the hosted room, if any.
func (m OnlineLobbyModel) leave() {
	if m.state == OnlineStateHostWaiting && m.roomCode != "" {
		m.coordinator.Send(multiplayer.CancelRoomMsg{
			SessionID: m.sessionID,
			Code:      m.roomCode,
		})
	}
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	switch m.state {
	case OnlineStateChooseMode:
		lines = []string{
			lobbyTitleStyle.Render("ONLINE CO-OP"),
			"",
			"[H] Host a battle",
			"[J] Join a battle",
		}
		if m.joinError != "" {
			lines = append(lines, "", lobbyErrorStyle.Render("Error: "+m.joinError))
		}
		lines = append(lines, "", lobbyHintStyle.Render("Esc: Back  |  Q: Quit"))

	case OnlineStateHostWaiting:
		lines = []string{
			lobbyTitleStyle.Render("HOSTING"),
			"",
			"Share this code with your partner:",
			"",
		}
		lines = append(lines, strings.Split(lobbyCodeStyle.Render(m.roomCode), "\n")...)
		lines = append(lines,
			"",
			"Waiting for player 2...",
			"",
			lobbyHintStyle.Render("Esc: Cancel  |  Q: Quit"),
		)

	case OnlineStateJoinEnterCode:
		code := m.joinCodeInput
		if len(code) < joinCodeLen {
			code += "_" + strings.Repeat(" ", joinCodeLen-len(code)-1)
		}
		lines = []string{
			lobbyTitleStyle.Render("JOIN"),
			"",
			"Enter the room code:",
			"",
			fmt.Sprintf("[ %s ]", code),
		}
		if m.joinError != "" {
			lines = append(lines, "", lobbyErrorStyle.Render("Error: "+m.joinError))
		}
		lines = append(lines, "", lobbyHintStyle.Render("Enter: Connect  |  Esc: Back"))

	case OnlineStateJoinWaiting:
		lines = []string{
			lobbyTitleStyle.Render("CONNECTING"),
			"",
			"Joining room " + m.joinCodeInput,
			"",
			lobbyHintStyle.Render("Esc: Cancel"),
		}

	case OnlineStateInMatch:
		lines = []string{
			lobbyTitleStyle.Render("BATTLE STARTING"),
			"",
			fmt.Sprintf("You are player %d", m.side),
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the match ID if a match was started.
func (m OnlineLobbyModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// Side returns which player this session drives.
func (m OnlineLobbyModel) Side() core.PlayerID {
	return m.side
}

// RoomCode returns the hosted room code.
func (m OnlineLobbyModel) RoomCode() string {
	return m.roomCode
}

// OnlineGameModel shows the frames of a running co-op match and forwards
// this session's keys to it.
type OnlineGameModel struct {
	matchID     multiplayer.MatchID
	side        core.PlayerID
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator
	keys        *KeyMapper
	width       int
	height      int

	frame      *core.Screen
	state      core.GameState
	ended      *multiplayer.MatchEndedEvent
	quitting   bool
	backToMenu bool
}

// NewOnlineGameModel creates the view of one running match.
func NewOnlineGameModel(
	matchID multiplayer.MatchID,
	side core.PlayerID,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineGameModel {
	return OnlineGameModel{
		matchID:     matchID,
		side:        side,
		sessionID:   sessionID,
		coordinator: coordinator,
		keys:        NewKeyMapper(false),
		width:       width,
		height:      height,
	}
}

// Init initializes the model.
func (m OnlineGameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineGameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case multiplayer.FrameEvent:
		if msg.MatchID == m.matchID && m.ended == nil {
			m.frame = msg.Screen
			m.state = msg.State
		}
	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			m.ended = &msg
		}
	}
	return m, nil
}

func (m OnlineGameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Back) {
		if m.ended != nil {
			m.backToMenu = true
		} else if m.state.Paused {
			m.leave()
			m.backToMenu = true
		}
		return m, nil
	}

	if m.ended != nil {
		return m, nil
	}

	_, frame, _ := m.keys.MapKeyToFrame(msg)
	if !frame.Empty() {
		m.coordinator.Send(multiplayer.PlayerInputMsg{
			MatchID: m.matchID,
			Player:  m.side,
			Input:   frame,
		})
	}
	return m, nil
}

// leave abandons a match that is still running.
func (m OnlineGameModel) leave() {
	if m.ended == nil {
		m.coordinator.Send(multiplayer.LeaveMatchMsg{
			SessionID: m.sessionID,
			MatchID:   m.matchID,
		})
	}
}

// View renders the latest frame, or the result once the match is over.
func (m OnlineGameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.ended != nil {
		return m.viewResult()
	}
	if m.frame == nil {
		return "\n" + centerText("Waiting for the battle to start...", m.width)
	}
	return RenderScreen(m.frame)
}

func (m OnlineGameModel) viewResult() string {
	e := m.ended
	title := e.Reason.String()
	if e.Reason == multiplayer.MatchEndReasonVictory {
		title = "VICTORY"
	} else if e.Reason == multiplayer.MatchEndReasonDefeat {
		title = "GAME OVER"
	}

	lines := []string{
		lobbyTitleStyle.Render(title),
		"",
		fmt.Sprintf("Stage %d", e.Stage),
		fmt.Sprintf("P1 %6d", e.Score1),
		fmt.Sprintf("P2 %6d", e.Score2),
		"",
		lobbyHintStyle.Render("Esc: Menu  |  Q: Quit"),
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Result returns the end of match event, or nil while it is running.
func (m OnlineGameModel) Result() *multiplayer.MatchEndedEvent {
	return m.ended
}

// IsQuitting returns true if user requested to quit entirely.
func (m OnlineGameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m OnlineGameModel) BackToMenu() bool {
	return m.backToMenu
}
