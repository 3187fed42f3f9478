package typewriter

import (
	"math/rand/v2"
	"time"

	"github.com/five82/multiterm/internal/script"
)

// Arena keeps one engine per terminal instance id. Engines never share state
// beyond the token random source.
type Arena struct {
	engines map[string]*Engine
	opts    Options
	rng     *rand.Rand
}

// NewArena returns an empty arena; spawned engines start with opts.
func NewArena(opts Options, rng *rand.Rand) *Arena {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	return &Arena{engines: make(map[string]*Engine), opts: opts, rng: rng}
}

// Spawn creates (or replaces) the engine for id.
func (a *Arena) Spawn(id string, lines []script.Line) *Engine {
	e := New(lines, a.opts, a.rng)
	a.engines[id] = e
	return e
}

// Remove drops the engine for id.
func (a *Arena) Remove(id string) {
	delete(a.engines, id)
}

// Get returns the engine for id.
func (a *Arena) Get(id string) (*Engine, bool) {
	e, ok := a.engines[id]
	return e, ok
}

// Len is the number of live engines.
func (a *Arena) Len() int { return len(a.engines) }

// Enabled reports whether new and existing engines advance.
func (a *Arena) Enabled() bool { return a.opts.Enabled }

// SetEnabled pauses or resumes every engine.
func (a *Arena) SetEnabled(enabled bool) {
	a.opts.Enabled = enabled
	for _, e := range a.engines {
		e.SetEnabled(enabled)
	}
}

// Speed is the step interval new and existing engines use.
func (a *Arena) Speed() time.Duration { return a.opts.Speed }

// SetSpeed changes the step interval of every engine.
func (a *Arena) SetSpeed(d time.Duration) {
	a.opts.Speed = d
	for _, e := range a.engines {
		e.SetSpeed(d)
	}
}

// Advance moves every engine forward by elapsed and reports whether any
// visible output changed.
func (a *Arena) Advance(elapsed time.Duration) bool {
	changed := false
	for _, e := range a.engines {
		if e.Advance(elapsed) {
			changed = true
		}
	}
	return changed
}

// Retain removes every engine whose id is not in ids.
func (a *Arena) Retain(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	for id := range a.engines {
		if _, ok := keep[id]; !ok {
			delete(a.engines, id)
		}
	}
}
