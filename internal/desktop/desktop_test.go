package desktop

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePool []string

func (p fakePool) Names() []string { return p }

func newTestDesktop(t *testing.T, opts Options) *Desktop {
	t.Helper()
	d := New(opts, fakePool{"development", "build", "error"}, rand.New(rand.NewPCG(7, 9)))
	d.SetViewport(200, 60)
	return d
}

func TestSetCountClamps(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())

	for _, tc := range []struct{ in, want int }{
		{5, 5},
		{0, 1},
		{-3, 1},
		{10001, 10000},
		{120, 120},
	} {
		assert.Equal(t, tc.want, d.SetCount(tc.in), "SetCount(%d)", tc.in)
		assert.Equal(t, tc.want, d.Count())
		assert.Len(t, d.Windows(), min(tc.want, d.RenderCap(tc.want)))
		assert.Equal(t, TargetCount(tc.want), d.Overlay.Len())
	}
}

func TestSetCountFiveThenTwo(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(5)
	assert.Equal(t, 1, d.Overlay.Len())

	d.SetCount(2)
	assert.Len(t, d.Windows(), 2)
	assert.Equal(t, 0, d.Overlay.Len())
	assert.Equal(t, []string{"terminal-1", "terminal-2"}, d.IDs())
}

func TestRenderCapEvictsOldest(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(80)
	require.Len(t, d.Windows(), 80)
	assert.Equal(t, "terminal-1", d.Windows()[0].ID)

	d.SetCount(85)
	ws := d.Windows()
	require.Len(t, ws, 80)
	assert.Equal(t, "terminal-6", ws[0].ID)
	assert.Equal(t, "terminal-85", ws[79].ID)

	d.SetCount(1500)
	assert.Len(t, d.Windows(), DefaultReducedRenderCap)
	assert.Equal(t, 300, d.Overlay.Len())

	d.SetCount(900)
	assert.Len(t, d.Windows(), DefaultRenderCap)
}

func TestCloseKeepsCountAtLeastOne(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(10)
	require.Equal(t, 2, d.Overlay.Len())

	id := d.Windows()[3].ID
	require.True(t, d.Close(id))
	assert.Equal(t, 9, d.Count())
	assert.Len(t, d.Windows(), 9)
	assert.Equal(t, 1, d.Overlay.Len())
	_, ok := d.Get(id)
	assert.False(t, ok)

	assert.False(t, d.Close("terminal-nope"))
	assert.Equal(t, 9, d.Count())

	d.SetCount(1)
	only := d.Windows()[0].ID
	require.True(t, d.Close(only))
	assert.Equal(t, 1, d.Count())
	require.Len(t, d.Windows(), 1)
	assert.NotEqual(t, only, d.Windows()[0].ID)
}

func TestCloseRefillsPastRenderCap(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(100)
	require.Len(t, d.Windows(), 80)

	d.Close(d.Windows()[0].ID)
	assert.Equal(t, 99, d.Count())
	assert.Len(t, d.Windows(), 80)
}

func TestFocusCapsZ(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	id := d.Windows()[0].ID
	for i := 0; i < MaxZ+50; i++ {
		d.Focus(id)
	}
	w, ok := d.Get(id)
	require.True(t, ok)
	assert.Equal(t, MaxZ, w.Z)

	f, ok := d.Focused()
	require.True(t, ok)
	assert.Equal(t, id, f.ID)
}

func TestFocusRaisesToTop(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(3)
	first := d.Windows()[0].ID
	d.Focus(first)
	stack := d.Stacked()
	assert.Equal(t, first, stack[len(stack)-1].ID)

	next, ok := d.FocusNext()
	require.True(t, ok)
	assert.Equal(t, "terminal-2", next.ID)
}

func TestArrangeIsDeterministic(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(30)

	d.Arrange()
	first := d.Windows()
	d.Arrange()
	assert.Equal(t, first, d.Windows())

	w, h := d.Viewport()
	for _, inst := range first {
		assert.GreaterOrEqual(t, inst.Pos.X, 0)
		assert.GreaterOrEqual(t, inst.Pos.Y, 0)
		assert.LessOrEqual(t, inst.Pos.X, w-d.Options().WindowWidth)
		assert.LessOrEqual(t, inst.Pos.Y, h-d.Options().WindowHeight)
	}
	assert.Equal(t, Position{X: 0, Y: 0}, first[0].Pos)
	assert.Equal(t, Position{X: 46, Y: 0}, first[1].Pos)
}

func TestArrangeSurvivesTinyViewport(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(4)
	d.SetViewport(5, 2)
	assert.NotPanics(t, d.Arrange)
	for _, inst := range d.Windows() {
		assert.Equal(t, Position{}, inst.Pos)
	}
}

func TestSpawnKeepsEdgeMargin(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	opts := d.Options()
	for range 200 {
		inst := d.Spawn("")
		assert.GreaterOrEqual(t, inst.Pos.X, spawnPadX)
		assert.GreaterOrEqual(t, inst.Pos.Y, spawnPadY)
		assert.LessOrEqual(t, inst.Pos.X, 200-opts.WindowWidth-spawnPadX)
		assert.LessOrEqual(t, inst.Pos.Y, 60-opts.WindowHeight-spawnPadY)
	}

	d.SetViewport(opts.WindowWidth+1, opts.WindowHeight)
	for range 20 {
		inst := d.Spawn("")
		assert.LessOrEqual(t, inst.Pos.X, 1)
		assert.Equal(t, 0, inst.Pos.Y)
	}
}

func TestMoveClampsToViewport(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	id := d.Windows()[0].ID

	require.True(t, d.Move(id, Position{X: -10, Y: 500}))
	w, _ := d.Get(id)
	assert.Equal(t, Position{X: 0, Y: 60 - 12}, w.Pos)
	assert.False(t, d.Move("missing", Position{}))
}

func TestSequentialScriptOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Order = OrderSequential
	d := newTestDesktop(t, opts)
	d.SetCount(4)

	var got []string
	for _, w := range d.Windows() {
		got = append(got, w.ScriptID)
	}
	assert.Equal(t, []string{"development", "build", "error", "development"}, got)
}

func TestSpawnUsesGivenScript(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	inst := d.Spawn("custom-1")
	assert.Equal(t, "custom-1", inst.ScriptID)
	assert.Equal(t, 2, d.Count())
}

func TestRemoveCatsUntilNextChange(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(50)
	require.Equal(t, 10, d.Overlay.Len())

	d.RemoveCats()
	assert.Zero(t, d.Overlay.Len())

	d.AddCount(1)
	assert.Equal(t, 10, d.Overlay.Len())
}

func TestTargetCount(t *testing.T) {
	assert.Equal(t, 0, TargetCount(4))
	assert.Equal(t, 1, TargetCount(5))
	assert.Equal(t, 1000, TargetCount(10000))
	assert.Equal(t, 0, TargetCount(-5))
}

func TestOverlayStaysInBounds(t *testing.T) {
	d := newTestDesktop(t, DefaultOptions())
	d.SetCount(100)
	for i := 0; i < 500; i++ {
		d.Step(50 * time.Millisecond)
	}
	for _, s := range d.Overlay.Sprites() {
		x, y := GridPos(&s.Kinetic)
		assert.GreaterOrEqual(t, x, 0)
		assert.GreaterOrEqual(t, y, 0)
		assert.Less(t, x, 200-SpriteWidth+1)
		assert.Less(t, y, 60)
	}
}

func TestReflectBounds(t *testing.T) {
	k := Kinetic{X: 9.5, Y: 1, VX: 2, VY: -1}
	Integrate(&k, 1)
	assert.True(t, ReflectBounds(&k, 10, 10))
	assert.Equal(t, 9.0, k.X)
	assert.Equal(t, -2.0, k.VX)

	k = Kinetic{X: 1, Y: 0.5, VY: -1}
	Integrate(&k, 1)
	assert.True(t, ReflectBoundsY(&k, 0, 10))
	assert.Equal(t, 0.0, k.Y)
	assert.Equal(t, 1.0, k.VY)
}
