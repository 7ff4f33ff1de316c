package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ikbal01/tanks-game/internal/core"
	"github.com/Ikbal01/tanks-game/internal/multiplayer"
	"github.com/Ikbal01/tanks-game/internal/storage"
)

// fakeGame records the input of every tick and ends after endAt ticks.
type fakeGame struct {
	endAt  int
	resets int
	steps  int
	inputs []core.MultiInputFrame
	state  core.GameState
}

func (g *fakeGame) ID() string                      { return "tanks" }
func (g *fakeGame) Title() string                   { return "Fake" }
func (g *fakeGame) State() core.GameState           { return g.state }
func (g *fakeGame) PlayerScore(p core.PlayerID) int { return 100 * int(p) }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, in)
	return g.StepMulti(m)
}

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.inputs = nil
	g.state = core.GameState{Stage: 1}
}

func (g *fakeGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.steps++
	g.inputs = append(g.inputs, in)
	if g.endAt > 0 && g.steps >= g.endAt {
		g.state.GameOver = true
		g.state.Score = 300
		g.state.Stage = 3
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawTextColored(0, 0, "BATTLE", core.ColorHUD)
}

func (g *fakeGame) last() core.MultiInputFrame {
	return g.inputs[len(g.inputs)-1]
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7}
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelHoldsDirectionBetweenTicks(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, multiplayer.MatchModeSolo, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, runeKey('w'))
	m = update(t, m, TickMsg{})
	if !g.last().Player(core.Player1).Has(core.ActionUp) {
		t.Fatal("first tick after w should drive up")
	}

	for range holdTicks - 1 {
		m = update(t, m, TickMsg{})
	}
	if !g.last().Player(core.Player1).Has(core.ActionUp) {
		t.Error("direction should be held for the whole hold window")
	}

	m = update(t, m, TickMsg{})
	if g.last().Player(core.Player1).Has(core.ActionUp) {
		t.Error("direction should be released after the hold window")
	}
	if m.ticks != holdTicks+1 {
		t.Errorf("ticks = %d, want %d", m.ticks, holdTicks+1)
	}
}

func TestGameModelFireIsOneShot(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, multiplayer.MatchModeSolo, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if !g.inputs[0].Player(core.Player1).Has(core.ActionFire) {
		t.Error("fire should reach the first tick")
	}
	if g.inputs[1].Player(core.Player1).Has(core.ActionFire) {
		t.Error("fire should not repeat on the next tick")
	}
}

func TestGameModelLocalCoopSplitsKeyboard(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, multiplayer.MatchModeLocalCoop, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, runeKey('a'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	update(t, m, TickMsg{})

	in := g.last()
	if !in.Player(core.Player1).Has(core.ActionLeft) {
		t.Error("player 1 should drive left")
	}
	p2 := in.Player(core.Player2)
	if !p2.Has(core.ActionRight) || !p2.Has(core.ActionFire) {
		t.Errorf("player 2 frame = %v, want right and fire", p2.Actions)
	}
	if p2.Has(core.ActionLeft) {
		t.Error("player 1 keys leaked to player 2")
	}
}

func TestGameModelBackOnlyWhenOverOrPaused(t *testing.T) {
	g := &fakeGame{endAt: 2}
	m := NewGameModel(g, multiplayer.MatchModeSolo, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during play must not leave the battle")
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("fake game should be over")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should go back to the menu")
	}
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{endAt: 1}
	m := NewGameModel(g, multiplayer.MatchModeSolo, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.State().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestGameModelSavesResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "tanks.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &fakeGame{endAt: 3}
	m := NewGameModel(g, multiplayer.MatchModeLocalCoop, store, testConfig(), nil)
	m.Init()
	for range 5 {
		m = update(t, m, TickMsg{})
	}

	battles, err := store.RecentBattles(10)
	if err != nil {
		t.Fatalf("RecentBattles() error = %v", err)
	}
	if len(battles) != 1 {
		t.Fatalf("got %d battles, want 1", len(battles))
	}
	b := battles[0]
	if b.Mode != "Local co-op" || b.Score1 != 100 || b.Score2 != 200 || b.Stage != 3 || b.Won {
		t.Errorf("battle = %+v", b)
	}
	if b.EndReason != multiplayer.MatchEndReasonDefeat.String() {
		t.Errorf("end reason = %q", b.EndReason)
	}

	hs, err := store.HighScore("tanks")
	if err != nil || hs != 300 {
		t.Errorf("HighScore() = %d, %v, want 300", hs, err)
	}
}

func TestGameModelViewAndQuit(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, multiplayer.MatchModeSolo, nil, testConfig(), nil)
	m.Init()

	if !strings.Contains(m.View(), "BATTLE") {
		t.Error("view should contain the rendered game")
	}

	next, cmd := m.Update(runeKey('q'))
	m = next.(GameModel)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty once quitting")
	}
}
