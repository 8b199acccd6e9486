package script

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/entity"
)

// KeyState answers held-key queries for the current frame.
type KeyState interface {
	IsKeyDown(name string) bool
}

// HostAPI is the capability surface granted to a game script.
// Every method runs on the scheduler's goroutine, from inside a hook.
type HostAPI struct {
	entities *entity.Registry
	config   *core.EngineConfig
	keys     KeyState
	logger   *log.Logger // engine diagnostics
	output   *log.Logger // script-origin messages
}

// NewHostAPI wires the host API to the registry, engine config and key
// state of one runtime instance.
func NewHostAPI(entities *entity.Registry, cfg *core.EngineConfig, keys KeyState, logger *log.Logger) *HostAPI {
	if logger == nil {
		logger = log.Default()
	}
	return &HostAPI{
		entities: entities,
		config:   cfg,
		keys:     keys,
		logger:   logger,
		output:   logger.WithPrefix("script"),
	}
}

// Log writes a script message to the host log.
func (a *HostAPI) Log(message string) {
	a.output.Info(message)
}

// SpawnEntity creates or replaces the entity called name.
func (a *HostAPI) SpawnEntity(name string, x, y, w, h float64, r, g, b int) {
	a.entities.Spawn(name, x, y, w, h, core.NewRGB(r, g, b))
	a.logger.Debug("spawned entity", "name", name, "x", x, "y", y)
}

// SetVelocity sets an entity's velocity in pixels per second.
func (a *HostAPI) SetVelocity(name string, vx, vy float64) {
	a.entities.SetVelocity(name, vx, vy)
}

// GetPosition returns an entity's position; ok is false for unknown names.
func (a *HostAPI) GetPosition(name string) (x, y float64, ok bool) {
	return a.entities.Position(name)
}

// SetPosition moves an entity.
func (a *HostAPI) SetPosition(name string, x, y float64) {
	a.entities.SetPosition(name, x, y)
}

// IsKeyDown reports whether a semantic key is held this frame.
func (a *HostAPI) IsKeyDown(key string) bool {
	if a.keys == nil {
		return false
	}
	return a.keys.IsKeyDown(strings.ToLower(key))
}

// SetTargetFrameRate changes the scheduler's pacing target.
func (a *HostAPI) SetTargetFrameRate(fps int) {
	a.config.SetTargetFrameRate(fps)
}

// SetBackgroundColor changes the frame clear color.
func (a *HostAPI) SetBackgroundColor(r, g, b int) {
	a.config.SetBackgroundColor(r, g, b)
}

// GetScreenSize returns the render surface dimensions.
func (a *HostAPI) GetScreenSize() (int, int) {
	return a.config.ScreenSize()
}
