package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/gameland/internal/config"
	"github.com/vovakirdan/gameland/internal/registry"
	"github.com/vovakirdan/gameland/internal/storage"
)

// SSHServer serves the launcher over SSH. Every session gets its own
// menu and, once a game is picked, its own runtime.
type SSHServer struct {
	config config.Config
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a server from cfg. store may be nil, in which case
// no play history is recorded.
func NewSSHServer(cfg config.Config, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger.WithPrefix("ssh"),
	}

	hostKeyPath := cfg.SSH.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".gameland", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionKey stores the session model in the SSH context so the game
// still running when a connection drops can be stopped.
type sessionKey struct{}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Config:   s.config,
		Store:    s.store,
		Logger:   s.logger.With("user", sess.User()),
		Renderer: NewRenderer(bubbletea.MakeRenderer(sess)),
		Player:   sess.User(),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	})
	sess.Context().SetValue(sessionKey{}, model)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		if model, ok := sess.Context().Value(sessionKey{}).(SessionModel); ok {
			model.Close()
		}
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until ctx is canceled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.SSH.Address, "games", s.config.GamesDir)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("ssh: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.SSH.Address
}

// SessionOptions configures a launcher session.
type SessionOptions struct {
	Config        config.Config
	Store         *storage.Store
	Logger        *log.Logger
	Renderer      *Renderer
	Player        string
	Width, Height int
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewHistory
)

// SessionModel manages the full launcher flow: menu -> game -> menu, with
// the play history reachable from the menu. Ending a game with Ctrl+C
// returns to the menu.
type SessionModel struct {
	opts     SessionOptions
	view     sessionView
	menu     MenuModel
	game     GameModel
	history  HistoryModel
	games    []registry.Game
	live     *liveGame
	quitting bool
}

// liveGame tracks the running game across copies of the model.
type liveGame struct {
	game *GameModel
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = NewRenderer(nil)
	}
	m := SessionModel{opts: opts, live: &liveGame{}}
	m.openMenu(0)
	return m
}

// openMenu rescans the games folder and shows the picker.
func (m *SessionModel) openMenu(cursor int) {
	games, err := registry.Discover(m.opts.Config.GamesDir)
	if err != nil {
		m.opts.Logger.Warn("game discovery failed", "dir", m.opts.Config.GamesDir, "err", err)
	}
	m.games = games
	m.menu = NewMenuModel(games, m.opts.Config.GamesDir, m.opts.Renderer)
	m.menu.width, m.menu.height = m.opts.Width, m.opts.Height
	m.menu.help.Width = m.opts.Width
	if cursor < len(games) {
		m.menu.cursor = cursor
	}
	m.view = viewMenu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.opts.Store, m.games, "", m.opts.Width, m.opts.Height)
		m.view = viewHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		return m.startGame(*m.menu.Selected())
	}
	return m, cmd
}

func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	gm, err := NewGameModel(game, GameOptions{
		Config:   m.opts.Config,
		Store:    m.opts.Store,
		Logger:   m.opts.Logger,
		Renderer: m.opts.Renderer,
		Player:   m.opts.Player,
		Width:    m.opts.Width,
		Height:   m.opts.Height,
	})
	if err != nil {
		m.opts.Logger.Error("game failed to load", "game", game.ID, "err", err)
		cursor := m.menu.Cursor()
		m.openMenu(cursor)
		m.menu.notice = "Could not load " + game.Name + ": " + err.Error()
		return m, nil
	}

	m.game = gm
	m.live.game = &gm
	m.view = viewGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.Done() {
		m.live.game = nil
		m.openMenu(m.menu.Cursor())
		return m, nil
	}
	return m, cmd
}

// updateHistory handles updates when viewing the history.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = h
	}

	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.history.IsGoingBack():
		m.openMenu(m.menu.Cursor())
		return m, nil
	}
	return m, cmd
}

// Close stops a running game, e.g. when the connection drops.
func (m SessionModel) Close() {
	if m.live.game != nil {
		m.live.game.Stop()
		m.live.game = nil
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}
