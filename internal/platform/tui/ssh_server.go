package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Ikbal01/tanks-game/internal/core"
	"github.com/Ikbal01/tanks-game/internal/multiplayer"
	"github.com/Ikbal01/tanks-game/internal/registry"
	"github.com/Ikbal01/tanks-game/internal/storage"
)

// sessionEventBuffer is how many room and match events a seat holds for a
// terminal that has not read them yet.
const sessionEventBuffer = 32

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tanks/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every battle on the server.
	TickRate int

	// Seed fixes the seed of every battle; 0 picks a new one each time.
	Seed int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tanks/tanks.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServer serves the game over SSH. Every connection gets its own menu and
// local battles; online co-op rooms are shared through one coordinator.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	logger      *log.Logger
	sessions    *multiplayer.Roster
	coordinator *multiplayer.Coordinator
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tanks-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	}

	sessions := multiplayer.NewRoster()
	coordCfg := multiplayer.DefaultCoordinatorConfig()
	coordCfg.TickRate = cfg.TickRate
	coordCfg.Seed = cfg.Seed
	coordinator := multiplayer.NewCoordinator(coordCfg, newCoopGame, sessions)
	coordinator.SetLogger(logger.WithPrefix("coordinator"))
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		logger:      logger,
		sessions:    sessions,
		coordinator: coordinator,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tanks", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// newCoopGame builds a reset battle for an online room.
func newCoopGame(gameID string, cfg core.RuntimeConfig) (multiplayer.CoopGame, error) {
	g, err := registry.CreateMulti(gameID)
	if err != nil {
		return nil, err
	}
	coop, ok := g.(multiplayer.CoopGame)
	if !ok {
		return nil, fmt.Errorf("game %q cannot be played online", gameID)
	}
	coop.Reset(cfg)
	return coop, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "tanks needs an interactive terminal: connect with ssh -t")
		return nil, nil
	}

	id := multiplayer.SessionID(fmt.Sprintf("%s-%s", sshSession.User(), uuid.NewString()[:8]))
	session := multiplayer.NewSeat(id, sessionEventBuffer)
	s.sessions.Add(session)

	go func() {
		<-sshSession.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
		s.sessions.Remove(id)
		session.Close()
	}()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     s.config.Seed,
	}
	model := NewSessionModel(s.store, cfg, session, s.coordinator, s.logger.With("session", id))

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown stops the server, every running match and the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.coordinator.Stop()
	if s.store != nil {
		s.store.Close()
	}
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is what a session is currently showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenLobby
	screenOnline
)

// SessionModel manages the flow of one connection: menu, local battle,
// scoreboard and online co-op. It owns the only reader of the session's
// coordinator events and forwards them to the active screen.
type SessionModel struct {
	store       *storage.Store
	config      core.RuntimeConfig
	logger      *log.Logger
	session     *multiplayer.Seat
	coordinator *multiplayer.Coordinator

	screen sessionScreen
	menu   MenuModel
	game   GameModel
	scores ScoreboardModel
	lobby  OnlineLobbyModel
	online OnlineGameModel

	quitting bool
}

// NewSessionModel creates a new session model. coordinator may be nil, in
// which case online co-op is not offered.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, session *multiplayer.Seat, coordinator *multiplayer.Coordinator, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:       store,
		config:      cfg,
		logger:      logger,
		session:     session,
		coordinator: coordinator,
		menu:        NewMenuModel(store, cfg, coordinator != nil && session != nil),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.session == nil {
		return m.menu.Init()
	}
	return tea.Batch(m.menu.Init(), waitForEvent(m.session))
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case sessionClosedMsg:
		return m, nil
	case multiplayer.SessionEvent:
		var cmd tea.Cmd
		m, cmd = m.updateScreen(msg)
		return m, tea.Batch(cmd, waitForEvent(m.session))
	}
	return m.updateScreen(msg)
}

func (m SessionModel) updateScreen(msg tea.Msg) (SessionModel, tea.Cmd) {
	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenLobby:
		return m.updateLobby(msg)
	case screenOnline:
		return m.updateOnline(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config, m.coordinator != nil && m.session != nil)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	if selected.Mode == multiplayer.MatchModeOnlineCoop {
		m.screen = screenLobby
		m.lobby = NewOnlineLobbyModel(selected.GameID, m.session.ID(), m.coordinator, m.config.ScreenW, m.config.ScreenH)
		return m, m.lobby.Init()
	}

	game, err := registry.CreateMulti(selected.GameID)
	if err != nil {
		m.logger.Error("cannot start game", "game", selected.GameID, "err", err)
		return m.toMenu()
	}
	m.screen = screenGame
	m.game = NewGameModel(game, selected.Mode, m.store, m.config, m.logger)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.lobby.Update(msg)
	m.lobby = next.(OnlineLobbyModel)

	switch {
	case m.lobby.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.lobby.BackToMenu():
		return m.toMenu()
	case m.lobby.State() == OnlineStateInMatch:
		m.screen = screenOnline
		m.online = NewOnlineGameModel(m.lobby.MatchID(), m.lobby.Side(), m.session.ID(), m.coordinator, m.config.ScreenW, m.config.ScreenH)
		return m, m.online.Init()
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	m.online = next.(OnlineGameModel)

	if m.online.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.online.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenLobby:
		return m.lobby.View()
	case screenOnline:
		return m.online.View()
	default:
		return m.menu.View()
	}
}

// RunMenu runs the menu, local battles and the scoreboard in the current
// terminal until the player quits.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	model := NewSessionModel(store, cfg, nil, nil, logger)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
