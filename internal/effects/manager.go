package effects

import (
	"context"
	"log"
	"sort"

	"github.com/looplab/fsm"

	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Lifecycle states of a timed effect
const (
	StateAbsent = "absent"
	StateActive = "active"
	StateEnded  = "ended"
)

// Lifecycle events of a timed effect
const (
	EventStart  = "start"
	EventExpire = "expire"
	EventCancel = "cancel"
)

// Change is reported to the manager's listener on every lifecycle transition
type Change struct {
	OwnerID string
	Key     string
	Name    string
	State   string
	Event   string
}

// Listener observes lifecycle transitions
type Listener func(Change)

type activeEffect struct {
	effect    *TimedEffect
	machine   *fsm.FSM
	handle    Handle
	ticksDone int
}

// Manager tracks the timed effects active on one character. At most one
// effect per key is active.
//
// Like the stat book it mutates, a Manager is owned by one character and is
// not safe for concurrent use.
type Manager struct {
	ownerID   string
	target    *stats.Book
	scheduler Scheduler
	listener  Listener
	active    map[string]*activeEffect
}

// NewManager creates a manager for the character owning target
func NewManager(ownerID string, target *stats.Book, scheduler Scheduler, listener Listener) *Manager {
	if scheduler == nil {
		panic("effect manager requires a scheduler")
	}
	return &Manager{
		ownerID:   ownerID,
		target:    target,
		scheduler: scheduler,
		listener:  listener,
		active:    make(map[string]*activeEffect),
	}
}

// OwnerID is the character this manager belongs to
func (m *Manager) OwnerID() string {
	return m.ownerID
}

// Start activates an effect. An active effect with the same key is
// cancelled first; its OnEnd runs before the new effect's OnStart.
func (m *Manager) Start(effect *TimedEffect) error {
	if effect == nil {
		return dnderr.InvalidArgument("effect cannot be nil")
	}
	if effect.Key == "" {
		return dnderr.InvalidArgument("effect must have a key")
	}
	if !effect.Indefinite {
		if effect.Ticks <= 0 {
			return dnderr.Validationf("effect %s needs a positive tick count", effect.Key)
		}
		if effect.TimePerTick <= 0 {
			return dnderr.Validationf("effect %s needs a positive tick interval", effect.Key)
		}
	}

	// an OnEnd may start another effect under the same key, so drain until
	// the key is free
	for existing, ok := m.active[effect.Key]; ok; existing, ok = m.active[effect.Key] {
		m.end(existing, EventCancel)
	}

	ae := &activeEffect{effect: effect}
	ae.machine = m.newLifecycle(ae)
	m.active[effect.Key] = ae

	if err := ae.machine.Event(context.Background(), EventStart); err != nil {
		delete(m.active, effect.Key)
		return dnderr.Wrapf(err, "failed to start effect %s", effect.Key)
	}

	// OnStart may have cancelled the effect already
	if m.active[effect.Key] == ae {
		m.scheduleNext(ae)
	}
	return nil
}

// Cancel ends the effect under key. It returns false if nothing was active.
func (m *Manager) Cancel(key string) bool {
	ae, ok := m.active[key]
	if !ok {
		return false
	}
	m.end(ae, EventCancel)
	return true
}

// CancelAll ends every active effect in key order
func (m *Manager) CancelAll() {
	for _, key := range m.keys() {
		m.Cancel(key)
	}
}

// Has reports whether an effect is active under key
func (m *Manager) Has(key string) bool {
	_, ok := m.active[key]
	return ok
}

// State returns the lifecycle state for key; keys never started or already
// removed report StateAbsent.
func (m *Manager) State(key string) string {
	if ae, ok := m.active[key]; ok {
		return ae.machine.Current()
	}
	return StateAbsent
}

// Get returns a view of the effect under key
func (m *Manager) Get(key string) (Info, bool) {
	ae, ok := m.active[key]
	if !ok {
		return Info{}, false
	}
	return ae.info(), true
}

// Active returns views of all active effects ordered by key
func (m *Manager) Active() []Info {
	out := make([]Info, 0, len(m.active))
	for _, key := range m.keys() {
		out = append(out, m.active[key].info())
	}
	return out
}

// Len is the number of active effects
func (m *Manager) Len() int {
	return len(m.active)
}

// React lets active effects respond to a cast that targeted the owner
func (m *Manager) React(obs Observation) []Effect {
	return m.collect(obs, func(e *TimedEffect) func(Observation) []Effect { return e.React })
}

// Witness lets active effects respond to any cast in the owner's battle
func (m *Manager) Witness(obs Observation) []Effect {
	return m.collect(obs, func(e *TimedEffect) func(Observation) []Effect { return e.Witness })
}

func (m *Manager) collect(obs Observation, hook func(*TimedEffect) func(Observation) []Effect) []Effect {
	var out []Effect
	for _, key := range m.keys() {
		ae, ok := m.active[key]
		if !ok {
			continue
		}
		if fn := hook(ae.effect); fn != nil {
			out = append(out, fn(obs)...)
		}
	}
	return out
}

func (m *Manager) newLifecycle(ae *activeEffect) *fsm.FSM {
	return fsm.NewFSM(
		StateAbsent,
		fsm.Events{
			{Name: EventStart, Src: []string{StateAbsent}, Dst: StateActive},
			{Name: EventExpire, Src: []string{StateActive}, Dst: StateEnded},
			{Name: EventCancel, Src: []string{StateActive}, Dst: StateEnded},
		},
		fsm.Callbacks{
			"enter_" + StateActive: func(_ context.Context, e *fsm.Event) {
				if ae.effect.OnStart != nil {
					ae.effect.OnStart(m.target)
				}
				m.notify(ae, e.Event, StateActive)
			},
			"enter_" + StateEnded: func(_ context.Context, e *fsm.Event) {
				if ae.effect.OnEnd != nil {
					ae.effect.OnEnd(m.target)
				}
				m.notify(ae, e.Event, StateEnded)
			},
		},
	)
}

func (m *Manager) scheduleNext(ae *activeEffect) {
	if ae.effect.TimePerTick <= 0 {
		return
	}
	ae.handle = m.scheduler.ScheduleTick(ae.effect.TimePerTick, func() {
		m.tick(ae)
	})
}

func (m *Manager) tick(ae *activeEffect) {
	// A cancelled or replaced effect must not tick
	if m.active[ae.effect.Key] != ae || !ae.machine.Is(StateActive) {
		return
	}

	ae.ticksDone++
	if ae.effect.OnTick != nil {
		ae.effect.OnTick(m.target)
	}

	if m.active[ae.effect.Key] != ae {
		return
	}
	if !ae.effect.Indefinite && ae.ticksDone >= ae.effect.Ticks {
		m.end(ae, EventExpire)
		return
	}
	m.scheduleNext(ae)
}

func (m *Manager) end(ae *activeEffect, event string) {
	if ae.handle != nil {
		ae.handle.Cancel()
	}
	if m.active[ae.effect.Key] == ae {
		delete(m.active, ae.effect.Key)
	}
	if err := ae.machine.Event(context.Background(), event); err != nil {
		log.Printf("Effect %s on %s: %s failed: %v", ae.effect.Key, m.ownerID, event, err)
	}
}

func (m *Manager) notify(ae *activeEffect, event, state string) {
	if m.listener == nil {
		return
	}
	m.listener(Change{
		OwnerID: m.ownerID,
		Key:     ae.effect.Key,
		Name:    ae.effect.Name,
		State:   state,
		Event:   event,
	})
}

func (m *Manager) keys() []string {
	keys := make([]string, 0, len(m.active))
	for key := range m.active {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (ae *activeEffect) info() Info {
	remaining := 0
	if !ae.effect.Indefinite {
		remaining = ae.effect.Ticks - ae.ticksDone
	}
	return Info{
		Key:            ae.effect.Key,
		Name:           ae.effect.Name,
		Source:         ae.effect.Source,
		SourceID:       ae.effect.SourceID,
		Indefinite:     ae.effect.Indefinite,
		TicksElapsed:   ae.ticksDone,
		TicksRemaining: remaining,
	}
}
