package engine_test

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/engine"
	"github.com/vovakirdan/gameland/internal/platform/headless"
	"github.com/vovakirdan/gameland/internal/registry"
)

const bundledGames = "../../examples/games"

func TestBundledGamesRunClean(t *testing.T) {
	games, err := registry.Discover(bundledGames)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(games) < 2 {
		t.Fatalf("Discover() found %d games, expected the bundled ones", len(games))
	}

	for _, game := range games {
		t.Run(game.ID, func(t *testing.T) {
			p := headless.New()
			p.At(30, func(p *headless.Platform) {
				p.Press(core.KeyUp)
				p.Press(core.KeySpace)
			})
			p.At(90, func(p *headless.Platform) {
				p.Release(core.KeyUp)
				p.Release(core.KeySpace)
			})

			sched, err := engine.Load(game, p, core.DefaultEngineConfig(), engine.Options{
				Clock:     &sleepClock{},
				Logger:    log.New(io.Discard),
				MaxFrames: 600,
			})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			stats, err := sched.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if stats.Frames != 600 {
				t.Errorf("Frames = %d, expected 600", stats.Frames)
			}
			if stats.ScriptErrors != 0 {
				t.Errorf("ScriptErrors = %d, expected 0", stats.ScriptErrors)
			}
			if len(p.Canvas().Rects) == 0 {
				t.Error("expected entities on the canvas")
			}
		})
	}
}

func TestPongPlayerPaddleFollowsKeys(t *testing.T) {
	game, err := registry.Find(bundledGames, "pong")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	p := headless.New()
	p.At(1, func(p *headless.Platform) { p.Press(core.KeyCode('s')) })

	sched, err := engine.Load(game, p, core.DefaultEngineConfig(), engine.Options{
		Clock:     &sleepClock{},
		Logger:    log.New(io.Discard),
		MaxFrames: 30,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	_, y, ok := sched.Entities().Position("left")
	if !ok {
		t.Fatal("left paddle missing")
	}
	if y <= 300-45 {
		t.Errorf("left paddle y = %v, expected it to move down from %v", y, 300-45)
	}
}
