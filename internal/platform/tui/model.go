package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameland/internal/config"
	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/engine"
	"github.com/vovakirdan/gameland/internal/registry"
	"github.com/vovakirdan/gameland/internal/storage"
)

// statusTTL is how long a status bar message stays visible.
const statusTTL = 3 * time.Second

// GameOptions configures a game model.
type GameOptions struct {
	Config        config.Config
	Store         *storage.Store // Optional; play sessions are recorded when set
	Logger        *log.Logger
	Renderer      *Renderer
	Player        string
	Width, Height int    // Terminal size in cells
	ScreenshotDir string // Defaults to ~/.gameland/screenshots
	ExitOnEnd     bool   // Quit the program when the game ends
}

// gameState is shared by copies of a GameModel.
type gameState struct {
	sessionID   string
	status      string
	statusUntil time.Time
	done        bool
	saved       bool
}

// GameModel runs one game in the terminal. Each tick message drives one
// engine frame; the next tick is scheduled at the game's current target
// frame rate.
type GameModel struct {
	game      registry.Game
	scheduler *engine.Scheduler
	terminal  *Terminal
	opts      GameOptions
	state     *gameState
	width     int
	height    int
}

// NewGameModel loads game onto a new terminal platform. A missing or
// failing entry script is returned as a *script.LoadError.
func NewGameModel(game registry.Game, opts GameOptions) (GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = NewRenderer(nil)
	}
	if opts.Player == "" {
		opts.Player = currentUser()
	}

	rt := opts.Config.Runtime()
	w, h := rt.ScreenSize()
	terminal := NewTerminal(TerminalOptions{
		LogicalW:    w,
		LogicalH:    h,
		Cols:        opts.Width,
		Rows:        canvasRows(opts.Height),
		HoldTimeout: opts.Config.Input.HoldTimeout,
		RepeatDelay: opts.Config.Input.RepeatDelay,
	})

	scheduler, err := engine.Load(game, terminal, rt, engine.Options{Logger: opts.Logger})
	if err != nil {
		return GameModel{}, err
	}

	return GameModel{
		game:      game,
		scheduler: scheduler,
		terminal:  terminal,
		opts:      opts,
		state:     &gameState{},
		width:     opts.Width,
		height:    opts.Height,
	}, nil
}

// Init runs the game's init hook and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.scheduler.Start()
	return tickCmd(m.scheduler.Config().TargetFrameRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.terminal.Resize(msg.Width, canvasRows(msg.Height))
		return m, nil

	case tea.BlurMsg:
		m.terminal.ReleaseAll()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey forwards keyboard input to the platform.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyF12 {
		m.saveScreenshot()
		return m, nil
	}
	m.terminal.HandleKey(msg)
	return m, nil
}

// handleTick runs one frame and schedules the next.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if quit := m.scheduler.Frame(); quit {
		m.finish()
		if m.opts.ExitOnEnd {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, tickCmd(m.scheduler.Config().TargetFrameRate)
}

// finish stops the runtime and records the play session.
func (m GameModel) finish() {
	m.state.done = true
	if err := m.scheduler.Stop(); err != nil {
		m.opts.Logger.Warn("platform close failed", "err", err)
	}
	if m.opts.Store == nil || m.state.saved {
		return
	}
	m.state.saved = true

	stats := m.scheduler.Stats()
	id, err := m.opts.Store.SaveSession(storage.Session{
		GameID:       m.game.ID,
		GameName:     m.game.Name,
		Player:       m.opts.Player,
		Frames:       stats.Frames,
		ScriptErrors: stats.ScriptErrors,
		Duration:     stats.Duration,
		ExitReason:   string(stats.ExitReason),
	})
	if err != nil {
		m.opts.Logger.Warn("could not save play session", "err", err)
		return
	}
	m.state.sessionID = id
}

// Stop ends the game without a quit signal, e.g. when the program exits.
func (m GameModel) Stop() {
	if !m.state.done {
		m.finish()
	}
}

// saveScreenshot writes the last presented frame as plain text.
func (m GameModel) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.setStatus("screenshot failed: no home directory")
			return
		}
		dir = filepath.Join(home, ".gameland", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.terminal.Screen().String()), 0o600); err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
	m.setStatus("saved " + path)
}

func (m GameModel) setStatus(text string) {
	m.state.status = text
	m.state.statusUntil = time.Now().Add(statusTTL)
}

// View renders the current frame and the status bar.
func (m GameModel) View() string {
	if m.state.done {
		return ""
	}
	return m.opts.Renderer.Render(m.terminal.Screen()) + "\n" + m.statusBar()
}

func (m GameModel) statusBar() string {
	text := fmt.Sprintf(" %s  |  %d fps  |  F12: screenshot  |  Ctrl+C: quit",
		m.game.Name, m.scheduler.Config().TargetFrameRate)
	if m.state.status != "" && time.Now().Before(m.state.statusUntil) {
		text = " " + m.state.status
	}
	if n := m.scheduler.Stats().ScriptErrors; n > 0 {
		text += fmt.Sprintf("  |  %d script errors", n)
	}
	width := max(m.width, 1)
	return m.opts.Renderer.Style(core.ColorWhite, core.NewRGB(60, 60, 60)).
		Width(width).
		Render(truncate(text, width))
}

// Done reports whether the game has ended.
func (m GameModel) Done() bool {
	return m.state.done
}

// Stats returns the counters of the run.
func (m GameModel) Stats() engine.Stats {
	return m.scheduler.Stats()
}

// SessionID returns the id of the recorded play session, if any.
func (m GameModel) SessionID() string {
	return m.state.sessionID
}

// canvasRows leaves one row for the status bar.
func canvasRows(height int) int {
	return max(height-1, 0)
}

func currentUser() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "player"
}

// RunGame runs game in the terminal until it quits.
func RunGame(game registry.Game, opts GameOptions) (engine.Stats, error) {
	opts.ExitOnEnd = true
	model, err := NewGameModel(game, opts)
	if err != nil {
		return engine.Stats{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err = p.Run()
	model.Stop()
	return model.Stats(), err
}
