package engine

import (
	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/entity"
	"github.com/vovakirdan/gameland/internal/registry"
	"github.com/vovakirdan/gameland/internal/script"
)

// Load assembles a runtime for game on platform: entity registry, input
// translator, host API and script bridge, wired to a new scheduler that
// owns a copy of cfg. The entry script runs before Load returns; a
// missing or failing entry script yields a *script.LoadError.
func Load(game registry.Game, platform Platform, cfg core.EngineConfig, opts Options) (*Scheduler, error) {
	if opts.Logger != nil {
		opts.Logger = opts.Logger.With("game", game.Name)
	}
	config := cfg
	entities := entity.NewRegistry()
	s := NewScheduler(platform, entities, &config, opts)

	api := script.NewHostAPI(entities, &config, s.Input(), s.logger)
	bridge, err := script.NewBridge(game.Folder, api, s.logger)
	if err != nil {
		return nil, err
	}
	s.Attach(bridge)

	s.logger.Info("game loaded", "folder", game.Folder, "hooks", bridge.Hooks())
	return s, nil
}
