package multiplayer

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ikbal01/tanks-game/internal/core"
)

// fakeGame ends after endAt ticks, or never when endAt is 0.
type fakeGame struct {
	mu     sync.Mutex
	endAt  int
	won    bool
	steps  int
	inputs []core.MultiInputFrame
}

func (g *fakeGame) ID() string                   { return "tanks_coop" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) {}
func (g *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "BATTLE") }

func (g *fakeGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps++
	g.inputs = append(g.inputs, in)
	return core.StepResult{State: g.stateLocked()}
}

func (g *fakeGame) State() core.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *fakeGame) stateLocked() core.GameState {
	over := g.endAt > 0 && g.steps >= g.endAt
	return core.GameState{Score: 300, GameOver: over, Won: over && g.won, Stage: 2}
}

func (g *fakeGame) PlayerScore(p PlayerID) int {
	if p == Player1 {
		return 200
	}
	return 100
}

type fakeSaver struct {
	mu      sync.Mutex
	results []MatchResultData
}

func (s *fakeSaver) SaveMatchResult(r MatchResultData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *fakeSaver) saved() []MatchResultData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MatchResultData(nil), s.results...)
}

func waitFor[T SessionEvent](t *testing.T, s *Seat) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(T); ok {
				return e
			}
		case frame := <-s.Frames():
			if e, ok := SessionEvent(frame).(T); ok {
				return e
			}
		case <-timeout:
			var zero T
			t.Fatalf("%s: timed out waiting for %T", s.ID(), zero)
			return zero
		}
	}
}

func newTestCoordinator(t *testing.T, game *fakeGame) (*Coordinator, *Roster) {
	t.Helper()
	cfg := DefaultCoordinatorConfig()
	cfg.TickRate = 500
	cfg.Seed = 42

	sessions := NewRoster()
	c := NewCoordinator(cfg, func(gameID string, rc core.RuntimeConfig) (CoopGame, error) {
		if gameID != "tanks_coop" {
			return nil, errors.New("unknown game")
		}
		if rc.Players != 2 || rc.Seed != 42 {
			t.Errorf("runtime config = %+v, want 2 players and seed 42", rc)
		}
		return game, nil
	}, sessions)
	c.Start()
	t.Cleanup(c.Stop)
	return c, sessions
}

func connect(r *Roster, id string) *Seat {
	s := NewSeat(SessionID(id), 1024)
	r.Add(s)
	return s
}

func openRoom(t *testing.T, c *Coordinator, host *Seat) string {
	t.Helper()
	c.Send(CreateRoomMsg{SessionID: host.ID(), GameID: "tanks_coop"})
	created := waitFor[RoomCreatedEvent](t, host)
	if len(created.Code) != 6 {
		t.Fatalf("join code %q should be 6 characters", created.Code)
	}
	return created.Code
}

func TestCoordinatorRunsCoopMatch(t *testing.T) {
	game := &fakeGame{endAt: 5, won: true}
	c, sessions := newTestCoordinator(t, game)
	saver := &fakeSaver{}
	c.SetResultSaver(saver)

	host := connect(sessions, "host")
	partner := connect(sessions, "partner")

	code := openRoom(t, c, host)
	c.Send(JoinRoomMsg{SessionID: partner.ID(), Code: strings.ToLower(code)})

	if e := waitFor[RoomJoinedEvent](t, host); e.Side != Player1 || e.PartnerID != partner.ID() {
		t.Errorf("host joined event = %+v", e)
	}
	if e := waitFor[RoomJoinedEvent](t, partner); e.Side != Player2 || e.PartnerID != host.ID() {
		t.Errorf("partner joined event = %+v", e)
	}

	started := waitFor[MatchStartedEvent](t, partner)
	if started.Side != Player2 || started.Code != code || started.MatchID == "" {
		t.Errorf("match started event = %+v", started)
	}

	frame := waitFor[FrameEvent](t, partner)
	if got := frame.Screen.Row(0)[:6]; got != "BATTLE" {
		t.Errorf("frame row 0 = %q, want the rendered battle", got)
	}

	for _, s := range []*Seat{host, partner} {
		end := waitFor[MatchEndedEvent](t, s)
		if end.Reason != MatchEndReasonVictory || !end.Won {
			t.Errorf("%s end event = %+v, want a victory", s.ID(), end)
		}
		if end.Score1 != 200 || end.Score2 != 100 || end.Stage != 2 {
			t.Errorf("%s end event scores = %+v", s.ID(), end)
		}
	}

	if c.MatchCount() != 0 || c.RoomCount() != 0 {
		t.Errorf("rooms=%d matches=%d after the match, want none", c.RoomCount(), c.MatchCount())
	}

	c.Stop()
	saved := saver.saved()
	if len(saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(saved))
	}
	r := saved[0]
	if r.MatchID != string(started.MatchID) || r.HostSession != "host" || r.PartnerSession != "partner" {
		t.Errorf("saved result = %+v", r)
	}
	if !r.Won || r.EndReason != MatchEndReasonVictory.String() {
		t.Errorf("saved outcome = %v %q, want a victory", r.Won, r.EndReason)
	}
}

func TestJoinRoomErrors(t *testing.T) {
	c, sessions := newTestCoordinator(t, &fakeGame{})
	host := connect(sessions, "host")
	other := connect(sessions, "other")

	c.Send(JoinRoomMsg{SessionID: other.ID(), Code: "NOPE00"})
	if e := waitFor[RoomErrorEvent](t, other); e.Message != "Room not found" {
		t.Errorf("error = %q, want Room not found", e.Message)
	}

	code := openRoom(t, c, host)
	c.Send(JoinRoomMsg{SessionID: host.ID(), Code: code})
	if e := waitFor[RoomErrorEvent](t, host); !strings.Contains(e.Message, "in a room") {
		t.Errorf("error = %q, want the host to be refused", e.Message)
	}

	c.Send(CreateRoomMsg{SessionID: host.ID(), GameID: "tanks_coop"})
	if e := waitFor[RoomErrorEvent](t, host); e.Message != "Already in a room" {
		t.Errorf("error = %q, want Already in a room", e.Message)
	}
}

func TestPartnerDisconnectEndsMatch(t *testing.T) {
	c, sessions := newTestCoordinator(t, &fakeGame{})
	host := connect(sessions, "host")
	partner := connect(sessions, "partner")

	code := openRoom(t, c, host)
	c.Send(JoinRoomMsg{SessionID: partner.ID(), Code: code})
	waitFor[MatchStartedEvent](t, host)
	waitFor[FrameEvent](t, host)

	partner.Close()

	end := waitFor[MatchEndedEvent](t, host)
	if end.Reason != MatchEndReasonDisconnect {
		t.Errorf("reason = %v, want %v", end.Reason, MatchEndReasonDisconnect)
	}
}

func TestCancelAndExpireRooms(t *testing.T) {
	c, sessions := newTestCoordinator(t, &fakeGame{})
	host := connect(sessions, "host")

	code := openRoom(t, c, host)
	c.Send(CancelRoomMsg{SessionID: host.ID(), Code: code})
	code = openRoom(t, c, host)
	if _, ok := c.Room(code); !ok {
		t.Fatalf("room %s should be open after the first was cancelled", code)
	}

	c.cleanupExpiredRooms(time.Now().Add(time.Hour))

	if e := waitFor[RoomErrorEvent](t, host); e.Message != "Room expired" {
		t.Errorf("error = %q, want Room expired", e.Message)
	}
	if c.RoomCount() != 0 {
		t.Errorf("RoomCount() = %d after expiry, want 0", c.RoomCount())
	}
}

func TestMatchLatchesPlayerInput(t *testing.T) {
	game := &fakeGame{}
	host := NewSeat("host", 16)
	partner := NewSeat("partner", 16)
	m := NewCoopMatch("m1", "ABCDEF", game, host, partner, core.NewScreen(20, 4), 60)

	press := core.NewInputFrame()
	press.Set(core.ActionRight)
	press.Set(core.ActionFire)
	m.SendInput(Player2, press)

	m.runTick()
	m.runTick()

	first, second := game.inputs[0], game.inputs[1]
	if !first.Player(Player2).Has(core.ActionFire) || !first.Player(Player2).Has(core.ActionRight) {
		t.Errorf("first tick P2 input = %v, want Right and Fire", first.Player(Player2).Actions)
	}
	if second.Player(Player2).Has(core.ActionFire) {
		t.Error("fire should only reach the game once per press")
	}
	if !second.Player(Player2).Has(core.ActionRight) {
		t.Error("movement should stay held on the next tick")
	}
	if first.Player(Player1).Has(core.ActionRight) {
		t.Error("player 2 input leaked into player 1")
	}
}

func TestSeatDropsOldest(t *testing.T) {
	s := NewSeat("s", 2)
	s.Send(RoomErrorEvent{Message: "1"})
	s.Send(RoomErrorEvent{Message: "2"})
	s.Send(RoomErrorEvent{Message: "3"})

	var got []string
	for range 2 {
		got = append(got, (<-s.Events()).(RoomErrorEvent).Message)
	}
	if strings.Join(got, ",") != "2,3" {
		t.Errorf("events = %v, want the newest two", got)
	}

	s.Close()
	s.Close()
	s.Send(RoomErrorEvent{Message: "late"})
	select {
	case evt := <-s.Events():
		t.Errorf("closed session received %v", evt)
	default:
	}
}

func TestSeatKeepsLifecycleEventsUnderFrameFlood(t *testing.T) {
	s := NewSeat("s", 2)
	s.Send(MatchStartedEvent{MatchID: "m1"})
	for tick := range uint64(100) {
		s.Send(FrameEvent{MatchID: "m1", Tick: tick + 1})
	}
	s.Send(MatchEndedEvent{MatchID: "m1", Reason: MatchEndReasonDefeat})

	if _, ok := (<-s.Events()).(MatchStartedEvent); !ok {
		t.Error("match start was lost behind frames")
	}
	if _, ok := (<-s.Events()).(MatchEndedEvent); !ok {
		t.Error("match end was lost behind frames")
	}
	if frame := <-s.Frames(); frame.Tick != 100 {
		t.Errorf("frame tick = %d, want only the newest (100)", frame.Tick)
	}
	select {
	case frame := <-s.Frames():
		t.Errorf("stale frame %d left queued", frame.Tick)
	default:
	}
}

func TestRosterLookup(t *testing.T) {
	r := NewRoster()
	seat := NewSeat("a", 4)
	r.Add(seat)

	if got, ok := r.Lookup("a"); !ok || got != SessionHandle(seat) {
		t.Fatalf("Lookup(a) = %v, %v", got, ok)
	}
	r.Remove("a")
	if _, ok := r.Lookup("a"); ok {
		t.Error("removed seat still found")
	}
}

func TestMatchModePlayers(t *testing.T) {
	tests := []struct {
		mode MatchMode
		want int
	}{
		{MatchModeSolo, 1},
		{MatchModeLocalCoop, 2},
		{MatchModeOnlineCoop, 2},
	}
	for _, tt := range tests {
		if got := tt.mode.Players(); got != tt.want {
			t.Errorf("%s.Players() = %d, want %d", tt.mode, got, tt.want)
		}
	}
}
