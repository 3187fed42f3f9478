// Package desktop owns the simulated desktop: the terminal windows with their
// positions and stacking order, and the decorative sprite overlay whose size
// follows the logical terminal count.
package desktop

import (
	"math/rand/v2"
	"time"
)

// Desktop keeps the window manager and the overlay in step. Every operation
// that changes the logical count re-syncs the overlay.
type Desktop struct {
	*Manager
	Overlay *Overlay
}

// New builds a desktop with one window and no sprites.
func New(opts Options, pool ScriptPool, rng *rand.Rand) *Desktop {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d := &Desktop{
		Manager: NewManager(opts, pool, rng),
		Overlay: NewOverlay(rng),
	}
	d.Overlay.Sync(d.Count())
	return d
}

// SetCount changes the logical count and re-syncs the overlay.
func (d *Desktop) SetCount(n int) int {
	c := d.Manager.SetCount(n)
	d.Overlay.Sync(c)
	return c
}

// AddCount shifts the logical count by delta.
func (d *Desktop) AddCount(delta int) int {
	return d.SetCount(d.Count() + delta)
}

// Spawn adds one window showing scriptID and re-syncs the overlay.
func (d *Desktop) Spawn(scriptID string) Instance {
	inst := d.Manager.Spawn(scriptID)
	d.Overlay.Sync(d.Count())
	return inst
}

// Close removes window id and re-syncs the overlay.
func (d *Desktop) Close(id string) bool {
	if !d.Manager.Close(id) {
		return false
	}
	d.Overlay.Sync(d.Count())
	return true
}

// RemoveCats clears the overlay until the count next changes.
func (d *Desktop) RemoveCats() { d.Overlay.Clear() }

// SetViewport resizes both the window area and the sprite bounds.
func (d *Desktop) SetViewport(width, height int) {
	d.Manager.SetViewport(width, height)
	d.Overlay.SetBounds(width, height)
}

// Step advances the overlay physics.
func (d *Desktop) Step(dt time.Duration) { d.Overlay.Step(dt) }
