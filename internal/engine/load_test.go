package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/engine"
	"github.com/vovakirdan/gameland/internal/platform/headless"
	"github.com/vovakirdan/gameland/internal/registry"
	"github.com/vovakirdan/gameland/internal/script"
)

const paddleGame = `
presses = 0
releases = 0
heldFrames = 0

function OnInit(api)
  api:setBackgroundColor(0, 0, 40)
  api:spawnEntity("paddle", 100, 500, 80, 10, 255, 255, 255)
end

function Update(api, dt)
  if api:isKeyDown("right") then
    heldFrames = heldFrames + 1
    api:setVelocity("paddle", 200, 0)
  else
    api:setVelocity("paddle", 0, 0)
  end
end

function OnEvent(api, typ, payload)
  if typ == "keyDown" and payload.key == "right" then presses = presses + 1 end
  if typ == "keyUp" and payload.key == "right" then releases = releases + 1 end
end
`

func newGame(t *testing.T, src string) registry.Game {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		registry.InfoFile: `{"name": "Paddle"}`,
		script.EntryFile:  src,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	g, err := registry.Load(dir)
	if err != nil {
		t.Fatalf("registry.Load() error = %v", err)
	}
	return g
}

// sleepClock advances only when slept on, so runs finish instantly.
type sleepClock struct {
	now time.Time
}

func (c *sleepClock) Now() time.Time { return c.now }

func (c *sleepClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func TestLoadAndRunLuaGame(t *testing.T) {
	game := newGame(t, paddleGame)
	p := headless.New()
	p.At(2, func(p *headless.Platform) { p.Press(core.KeyRight) })
	p.At(7, func(p *headless.Platform) { p.Release(core.KeyRight) })

	sched, err := engine.Load(game, p, core.DefaultEngineConfig(), engine.Options{
		Clock:     &sleepClock{},
		Logger:    log.New(io.Discard),
		MaxFrames: 10,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	stats, err := sched.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Frames != 10 || stats.ScriptErrors != 0 {
		t.Errorf("Run() = %+v, expected 10 clean frames", stats)
	}
	if !p.Closed() {
		t.Error("platform should be closed after Run")
	}

	canvas := p.Canvas()
	if canvas.Presents != 10 {
		t.Errorf("Presents = %d, expected 10", canvas.Presents)
	}
	if canvas.Background != (core.RGB{R: 0, G: 0, B: 40}) {
		t.Errorf("Background = %v, expected script color", canvas.Background)
	}
	if len(canvas.Rects) != 1 || canvas.Rects[0].Bounds.X <= 100 {
		t.Errorf("Rects = %v, expected the paddle moved right", canvas.Rects)
	}
}

func TestLoadMissingEntryScript(t *testing.T) {
	dir := t.TempDir()
	game := registry.Game{ID: "empty", Name: "Empty", Folder: dir}

	_, err := engine.Load(game, headless.New(), core.DefaultEngineConfig(), engine.Options{
		Logger: log.New(io.Discard),
	})
	var loadErr *script.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("Load() error = %v, expected *script.LoadError", err)
	}
}

func TestLuaHookFailuresDoNotStopTheLoop(t *testing.T) {
	game := newGame(t, `
function Update(api, dt)
  error("broken update")
end
function OnEvent(api, typ, payload)
  api:spawnEntity(nil)
end
`)
	p := headless.New()
	for frame := 0; frame < 100; frame += 10 {
		p.At(frame, func(p *headless.Platform) { p.Press(core.KeySpace) })
	}

	sched, err := engine.Load(game, p, core.DefaultEngineConfig(), engine.Options{
		Clock:     &sleepClock{},
		Logger:    log.New(io.Discard),
		MaxFrames: 100,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	stats, err := sched.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Frames != 100 {
		t.Errorf("Frames = %d, expected 100", stats.Frames)
	}
	if stats.ScriptErrors != 110 {
		t.Errorf("ScriptErrors = %d, expected 100 Update + 10 OnEvent failures", stats.ScriptErrors)
	}
	if p.Canvas().Presents != 100 {
		t.Errorf("Presents = %d, expected 100", p.Canvas().Presents)
	}
}
