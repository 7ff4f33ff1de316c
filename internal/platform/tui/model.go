package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Ikbal01/tanks-game/internal/core"
	"github.com/Ikbal01/tanks-game/internal/multiplayer"
	"github.com/Ikbal01/tanks-game/internal/registry"
	"github.com/Ikbal01/tanks-game/internal/storage"
)

// holdTicks is how long one key press keeps a tank driving.
const holdTicks = 8

// playerScorer is implemented by games that score each player separately.
type playerScorer interface {
	PlayerScore(p core.PlayerID) int
}

// resizer is implemented by games that can follow the terminal size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// GameModel runs a local battle for one player, or two at one keyboard.
type GameModel struct {
	game       registry.MultiPlayerGame
	mode       multiplayer.MatchMode
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	randomSeed bool
	keys       *KeyMapper
	latches    map[core.PlayerID]*core.InputLatch
	gameState  core.GameState
	ticks      int

	standalone  bool // quit the program instead of returning to a menu
	quitting    bool
	backToMenu  bool
	resultSaved bool
}

// NewGameModel creates a model for a local battle. A zero seed picks a new
// one from the clock for every run.
func NewGameModel(game registry.MultiPlayerGame, mode multiplayer.MatchMode, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	randomSeed := cfg.Seed == 0
	if randomSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Players = mode.Players()
	if logger == nil {
		logger = log.New(io.Discard)
	}

	latches := make(map[core.PlayerID]*core.InputLatch)
	for p := core.Player1; p <= core.PlayerID(cfg.Players); p++ {
		latches[p] = core.NewInputLatch(holdTicks)
	}

	return GameModel{
		game:       game,
		mode:       mode,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		randomSeed: randomSeed,
		keys:       NewKeyMapper(mode == multiplayer.MatchModeLocalCoop),
		latches:    latches,
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	player, frame, quit := m.keys.MapKeyToFrame(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	if frame.Has(core.ActionBack) {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if l, ok := m.latches[player]; ok {
		l.Press(frame)
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	in := core.NewMultiInputFrame()
	for p, l := range m.latches {
		in.SetPlayer(p, l.Next())
	}

	if in.Any(core.ActionRestart) && m.gameState.GameOver {
		if m.randomSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.ticks = 0
		m.resultSaved = false
		for _, l := range m.latches {
			l.Release()
		}
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.StepMulti(in)
	m.gameState = result.State
	if !m.gameState.Paused {
		m.ticks++
	}

	if m.gameState.GameOver && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished campaign. Storage errors are logged and
// never interrupt play.
func (m *GameModel) saveResult() {
	st := m.gameState
	reason := multiplayer.MatchEndReasonDefeat
	if st.Won {
		reason = multiplayer.MatchEndReasonVictory
	}
	m.logger.Info("battle finished", "game", m.game.ID(), "mode", m.mode, "score", st.Score, "stage", st.Stage, "reason", reason)

	if m.store == nil {
		return
	}

	rec := storage.BattleRecord{
		GameID:       m.game.ID(),
		Mode:         m.mode.String(),
		Score1:       st.Score,
		Stage:        st.Stage,
		Won:          st.Won,
		EndReason:    reason.String(),
		DurationSecs: m.ticks / max(m.config.TickRate, 1),
	}
	if ps, ok := m.game.(playerScorer); ok {
		rec.Score1 = ps.PlayerScore(core.Player1)
		rec.Score2 = ps.PlayerScore(core.Player2)
	}
	if _, err := m.store.SaveBattle(rec); err != nil {
		m.logger.Warn("battle not saved", "err", err)
	}
	if st.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), st.Score, st.Stage); err != nil {
			m.logger.Warn("score not saved", "err", err)
		}
	}
}

// saveScreenshot writes the current screen as plain text under ~/.tanks.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot not saved", "err", err)
		return
	}
	dir := filepath.Join(home, ".tanks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot not saved", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not saved", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a local battle in the current terminal until the player quits.
func Run(game registry.MultiPlayerGame, mode multiplayer.MatchMode, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, mode, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
