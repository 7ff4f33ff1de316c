package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ikbal01/tanks-game/internal/core"
	"github.com/Ikbal01/tanks-game/internal/multiplayer"
)

func startCoordinator(t *testing.T) (*multiplayer.Coordinator, *multiplayer.Roster) {
	t.Helper()
	sessions := multiplayer.NewRoster()
	cfg := multiplayer.DefaultCoordinatorConfig()
	cfg.TickRate = 200
	cfg.Seed = 1
	factory := func(string, core.RuntimeConfig) (multiplayer.CoopGame, error) {
		return &fakeGame{}, nil
	}
	c := multiplayer.NewCoordinator(cfg, factory, sessions)
	c.Start()
	t.Cleanup(c.Stop)
	return c, sessions
}

func connectSession(sessions *multiplayer.Roster, id string) *multiplayer.Seat {
	s := multiplayer.NewSeat(multiplayer.SessionID(id), 256)
	sessions.Add(s)
	return s
}

// pump feeds session events to the lobby until cond holds.
func pump(t *testing.T, s *multiplayer.Seat, m OnlineLobbyModel, cond func(OnlineLobbyModel) bool) OnlineLobbyModel {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond(m) {
		select {
		case evt := <-s.Events():
			next, _ := m.Update(evt)
			m = next.(OnlineLobbyModel)
		case <-deadline:
			t.Fatalf("lobby stuck in state %v", m.State())
		}
	}
	return m
}

func typeCode(m OnlineLobbyModel, code string) OnlineLobbyModel {
	for _, r := range code {
		next, _ := m.Update(runeKey(r))
		m = next.(OnlineLobbyModel)
	}
	return m
}

func TestOnlineLobbyHostAndJoin(t *testing.T) {
	c, sessions := startCoordinator(t)
	host := connectSession(sessions, "host")
	partner := connectSession(sessions, "partner")

	hostLobby := NewOnlineLobbyModel("tanks_coop", host.ID(), c, 80, 30)
	next, _ := hostLobby.Update(runeKey('h'))
	hostLobby = pump(t, host, next.(OnlineLobbyModel), func(m OnlineLobbyModel) bool {
		return m.State() == OnlineStateHostWaiting
	})
	code := hostLobby.RoomCode()
	if len(code) != joinCodeLen {
		t.Fatalf("room code %q has wrong length", code)
	}
	if !strings.Contains(hostLobby.View(), code) {
		t.Error("host view should show the room code")
	}

	partnerLobby := NewOnlineLobbyModel("tanks_coop", partner.ID(), c, 80, 30)
	next, _ = partnerLobby.Update(runeKey('j'))
	partnerLobby = typeCode(next.(OnlineLobbyModel), strings.ToLower(code))
	next, _ = partnerLobby.Update(tea.KeyMsg{Type: tea.KeyEnter})
	partnerLobby = next.(OnlineLobbyModel)
	if partnerLobby.State() != OnlineStateJoinWaiting {
		t.Fatalf("partner state = %v, want join waiting", partnerLobby.State())
	}

	inMatch := func(m OnlineLobbyModel) bool { return m.State() == OnlineStateInMatch }
	hostLobby = pump(t, host, hostLobby, inMatch)
	partnerLobby = pump(t, partner, partnerLobby, inMatch)

	if hostLobby.Side() != core.Player1 || partnerLobby.Side() != core.Player2 {
		t.Errorf("sides = %v, %v", hostLobby.Side(), partnerLobby.Side())
	}
	if hostLobby.MatchID() == "" || hostLobby.MatchID() != partnerLobby.MatchID() {
		t.Errorf("match ids = %q, %q", hostLobby.MatchID(), partnerLobby.MatchID())
	}
}

func TestOnlineLobbyJoinUnknownRoom(t *testing.T) {
	c, sessions := startCoordinator(t)
	s := connectSession(sessions, "lonely")

	m := NewOnlineLobbyModel("tanks_coop", s.ID(), c, 80, 30)
	next, _ := m.Update(runeKey('j'))
	m = typeCode(next.(OnlineLobbyModel), "ZZZZZZ")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m = pump(t, s, next.(OnlineLobbyModel), func(m OnlineLobbyModel) bool {
		return m.State() == OnlineStateJoinEnterCode
	})
	if !strings.Contains(m.View(), "Room not found") {
		t.Errorf("view should report the error:\n%s", m.View())
	}
}

func TestOnlineLobbyCodeInputFilters(t *testing.T) {
	m := NewOnlineLobbyModel("tanks_coop", "s", nil, 80, 30)
	next, _ := m.Update(runeKey('j'))
	m = typeCode(next.(OnlineLobbyModel), "a-b!c2345678")

	if m.joinCodeInput != "ABC234" {
		t.Errorf("code input = %q, want ABC234", m.joinCodeInput)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(OnlineLobbyModel)
	if m.joinCodeInput != "ABC23" {
		t.Errorf("after backspace = %q", m.joinCodeInput)
	}
}

func TestOnlineGameModelShowsFramesAndResult(t *testing.T) {
	m := NewOnlineGameModel("match-1", core.Player2, "s", nil, 80, 30)
	if !strings.Contains(m.View(), "Waiting") {
		t.Error("view before the first frame should be a waiting message")
	}

	screen := core.NewScreen(80, 30)
	screen.DrawText(0, 0, "FRAME")

	next, _ := m.Update(multiplayer.FrameEvent{MatchID: "other", Screen: screen})
	m = next.(OnlineGameModel)
	if strings.Contains(m.View(), "FRAME") {
		t.Error("frames of another match must be ignored")
	}

	next, _ = m.Update(multiplayer.FrameEvent{MatchID: "match-1", Tick: 1, Screen: screen})
	m = next.(OnlineGameModel)
	if !strings.Contains(m.View(), "FRAME") {
		t.Error("view should show the latest frame")
	}

	next, _ = m.Update(multiplayer.MatchEndedEvent{
		MatchID: "match-1",
		Reason:  multiplayer.MatchEndReasonVictory,
		Won:     true,
		Stage:   35,
		Score1:  1200,
		Score2:  800,
	})
	m = next.(OnlineGameModel)
	if m.Result() == nil {
		t.Fatal("result should be recorded")
	}
	view := m.View()
	for _, want := range []string{"VICTORY", "Stage 35", "1200", "800"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q:\n%s", want, view)
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(OnlineGameModel)
	if !m.BackToMenu() {
		t.Error("esc after the match should go back to the menu")
	}
}

func TestOnlineGameModelQuitLeavesMatch(t *testing.T) {
	c, sessions := startCoordinator(t)
	host := connectSession(sessions, "host")
	partner := connectSession(sessions, "partner")

	c.Send(multiplayer.CreateRoomMsg{SessionID: host.ID(), GameID: "tanks_coop"})
	var code string
	select {
	case evt := <-host.Events():
		code = evt.(multiplayer.RoomCreatedEvent).Code
	case <-time.After(2 * time.Second):
		t.Fatal("room not created")
	}
	c.Send(multiplayer.JoinRoomMsg{SessionID: partner.ID(), Code: code})

	var matchID multiplayer.MatchID
	deadline := time.After(2 * time.Second)
	for matchID == "" {
		select {
		case evt := <-partner.Events():
			if started, ok := evt.(multiplayer.MatchStartedEvent); ok {
				matchID = started.MatchID
			}
		case <-deadline:
			t.Fatal("match did not start")
		}
	}

	m := NewOnlineGameModel(matchID, core.Player2, partner.ID(), c, 80, 30)
	next, _ := m.Update(runeKey('q'))
	m = next.(OnlineGameModel)
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	deadline = time.After(2 * time.Second)
	for {
		select {
		case evt := <-host.Events():
			if ended, ok := evt.(multiplayer.MatchEndedEvent); ok {
				if ended.Reason != multiplayer.MatchEndReasonDisconnect {
					t.Errorf("reason = %v, want disconnect", ended.Reason)
				}
				return
			}
		case <-deadline:
			t.Fatal("leaving did not end the match for the host")
		}
	}
}
