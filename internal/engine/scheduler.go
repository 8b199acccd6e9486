package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/entity"
	"github.com/vovakirdan/gameland/internal/input"
	"github.com/vovakirdan/gameland/internal/script"
)

// Scripter is the script side of the frame loop.
type Scripter interface {
	Init() script.Result
	Update(dt float64) script.Result
	Event(eventType string, payload map[string]any) script.Result
	Close()
}

// ExitReason records why a run ended.
type ExitReason string

const (
	ExitNone       ExitReason = ""
	ExitQuit       ExitReason = "quit"
	ExitCanceled   ExitReason = "canceled"
	ExitFrameLimit ExitReason = "frame-limit"
)

// Stats summarises one run.
type Stats struct {
	Frames       int
	ScriptErrors int
	Duration     time.Duration
	ExitReason   ExitReason
}

// Options tunes a scheduler. Zero values select defaults.
type Options struct {
	Clock     Clock
	Logger    *log.Logger
	MaxFrames int // Stop after this many frames; 0 runs until quit
}

// Scheduler is the per-game main loop. It is not safe for concurrent use:
// every method must be called from the goroutine that owns the game.
type Scheduler struct {
	platform Platform
	script   Scripter
	entities *entity.Registry
	config   *core.EngineConfig
	input    *input.Translator
	clock    Clock
	logger   *log.Logger
	maxFrame int

	started time.Time
	last    time.Time
	running bool
	stopped bool
	stats   Stats
}

// NewScheduler creates a scheduler over platform, entities and cfg. The
// script is attached separately with Attach, since the host API it is
// built on needs the scheduler's input translator.
func NewScheduler(platform Platform, entities *entity.Registry, cfg *core.EngineConfig, opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Scheduler{
		platform: platform,
		script:   nopScript{},
		entities: entities,
		config:   cfg,
		clock:    opts.Clock,
		logger:   opts.Logger,
		maxFrame: opts.MaxFrames,
	}
	s.input = input.NewTranslator(s.dispatchEdge)
	return s
}

// Attach sets the script driven by the loop.
func (s *Scheduler) Attach(sc Scripter) {
	s.script = sc
}

// Input returns the held-key state scripts query.
func (s *Scheduler) Input() *input.Translator {
	return s.input
}

// Config returns the engine config shared with the host API.
func (s *Scheduler) Config() *core.EngineConfig {
	return s.config
}

// Entities returns the entity registry.
func (s *Scheduler) Entities() *entity.Registry {
	return s.entities
}

// Stats returns the counters of the current run.
func (s *Scheduler) Stats() Stats {
	st := s.stats
	if !s.started.IsZero() {
		st.Duration = s.last.Sub(s.started)
	}
	return st
}

// Start invokes OnInit once and starts the frame clock.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.started = s.clock.Now()
	s.last = s.started
	s.report(s.script.Init())
}

// Frame runs one iteration: input, Update, integration, render. It
// returns true once a quit signal has been observed; the frame is still
// completed in that case.
func (s *Scheduler) Frame() (quit bool) {
	if !s.running {
		s.Start()
	}

	now := s.clock.Now()
	dt := now.Sub(s.last).Seconds()
	s.last = now

	for _, ev := range s.platform.PollEvents() {
		if ev.Kind == core.EventQuit {
			quit = true
			continue
		}
		s.input.HandleEvent(ev)
	}

	s.input.Refresh(s.platform)
	s.report(s.script.Update(dt))
	s.entities.Integrate(dt)
	s.render()

	s.stats.Frames++
	if quit {
		s.stats.ExitReason = ExitQuit
	}
	return quit
}

// Pace sleeps for what remains of the frame budget after frameStart.
func (s *Scheduler) Pace(frameStart time.Time) {
	budget := FrameBudget(s.config.TargetFrameRate)
	if elapsed := s.clock.Now().Sub(frameStart); elapsed < budget {
		s.clock.Sleep(budget - elapsed)
	}
}

// Run drives frames until quit, the frame limit or ctx cancellation,
// then releases the script and platform.
func (s *Scheduler) Run(ctx context.Context) (Stats, error) {
	s.Start()
	for {
		if ctx.Err() != nil {
			s.stats.ExitReason = ExitCanceled
			break
		}
		frameStart := s.clock.Now()
		if s.Frame() {
			break
		}
		if s.maxFrame > 0 && s.stats.Frames >= s.maxFrame {
			s.stats.ExitReason = ExitFrameLimit
			break
		}
		s.Pace(frameStart)
	}
	err := s.Stop()
	return s.Stats(), err
}

// Stop releases the script state and the platform's rendering resources.
// It is safe to call more than once.
func (s *Scheduler) Stop() error {
	if s.stopped {
		return nil
	}
	s.stopped = true
	s.running = false
	s.script.Close()

	st := s.Stats()
	s.logger.Info("game stopped",
		"frames", st.Frames,
		"script_errors", st.ScriptErrors,
		"duration", st.Duration.Round(time.Millisecond),
		"reason", st.ExitReason)
	return s.platform.Close()
}

func (s *Scheduler) dispatchEdge(ev input.EdgeEvent) {
	s.report(s.script.Event(ev.Type.String(), ev.Payload()))
}

func (s *Scheduler) render() {
	surface := s.platform.Surface()
	surface.Clear(s.config.BackgroundColor)
	s.entities.Each(func(e entity.Entity) {
		surface.FillRect(e.Bounds(), e.Color)
	})
	surface.Present()
}

// report logs and counts a failed hook invocation.
func (s *Scheduler) report(res script.Result) {
	if res.OK() {
		return
	}
	s.stats.ScriptErrors++
	s.logger.Error("hook failed", "hook", res.Hook, "frame", s.stats.Frames, "err", res.Err)
}

type nopScript struct{}

func (nopScript) Init() script.Result { return script.Result{Hook: script.HookInit} }

func (nopScript) Update(float64) script.Result { return script.Result{Hook: script.HookUpdate} }

func (nopScript) Event(string, map[string]any) script.Result {
	return script.Result{Hook: script.HookEvent}
}

func (nopScript) Close() {}
