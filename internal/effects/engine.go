package effects

import (
	"context"
	"log"

	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Engine applies resolved effects and hands out per-character managers
// that share one scheduler
type Engine struct {
	scheduler Scheduler
	listener  Listener
}

// EngineConfig holds the engine's collaborators
type EngineConfig struct {
	Scheduler Scheduler
	Listener  Listener // optional, receives every lifecycle change
}

// NewEngine creates an engine. Without a scheduler a ManualScheduler is used.
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = NewManualScheduler()
	}
	return &Engine{
		scheduler: scheduler,
		listener:  cfg.Listener,
	}
}

// Scheduler returns the scheduler timed effects tick on
func (e *Engine) Scheduler() Scheduler {
	return e.scheduler
}

// NewManager creates the effect manager for one character
func (e *Engine) NewManager(ownerID string, target *stats.Book) *Manager {
	return NewManager(ownerID, target, e.scheduler, e.listener)
}

// Apply applies effects in order. A failure stops application; effects
// already applied stay applied.
func (e *Engine) Apply(ctx context.Context, effects []Effect) error {
	for i, effect := range effects {
		if err := ctx.Err(); err != nil {
			return dnderr.Wrapf(err, "applied %d of %d effects", i, len(effects))
		}
		if err := effect.Apply(); err != nil {
			return dnderr.Wrapf(err, "failed to apply effect %d (%s)", i, effect)
		}
		log.Printf("Effect applied: %s", effect)
	}
	return nil
}
