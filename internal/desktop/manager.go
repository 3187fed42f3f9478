package desktop

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

const (
	// MaxZ is the highest z a window may take; larger values belong to chrome.
	MaxZ = 9999

	// DefaultMaxTerminals bounds the logical count.
	DefaultMaxTerminals = 10000
	// DefaultRenderCap is how many windows are drawn for ordinary counts.
	DefaultRenderCap = 80
	// DefaultReducedRenderCap applies once the count exceeds the threshold.
	DefaultReducedRenderCap = 40
	// DefaultReducedThreshold is the count above which the reduced cap applies.
	DefaultReducedThreshold = 1000

	arrangeGapX = 2
	arrangeGapY = 1
	layerOffset = 2

	// Spawned windows keep this margin from the desktop edges when it fits.
	spawnPadX = 2
	spawnPadY = 1
)

// Order selects how scripts are assigned to new windows.
type Order int

const (
	OrderRandom Order = iota
	OrderSequential
)

// ParseOrder maps a config value to an Order. Unknown values are random.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), "sequential") {
		return OrderSequential
	}
	return OrderRandom
}

func (o Order) String() string {
	if o == OrderSequential {
		return "sequential"
	}
	return "random"
}

// Position is a cell coordinate relative to the desktop's top-left corner.
type Position struct {
	X int
	Y int
}

// Instance is one rendered terminal window.
type Instance struct {
	ID       string
	Seq      int
	Pos      Position
	Z        int
	ScriptID string
}

// ScriptPool lists the script ids available for assignment.
type ScriptPool interface {
	Names() []string
}

// Options configure a Manager.
type Options struct {
	MaxTerminals     int
	RenderCap        int
	ReducedRenderCap int
	ReducedThreshold int
	WindowWidth      int
	WindowHeight     int
	Order            Order
}

// DefaultOptions returns the standard limits and window size.
func DefaultOptions() Options {
	return Options{
		MaxTerminals:     DefaultMaxTerminals,
		RenderCap:        DefaultRenderCap,
		ReducedRenderCap: DefaultReducedRenderCap,
		ReducedThreshold: DefaultReducedThreshold,
		WindowWidth:      44,
		WindowHeight:     12,
		Order:            OrderRandom,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MaxTerminals < 1 {
		o.MaxTerminals = def.MaxTerminals
	}
	if o.RenderCap < 1 {
		o.RenderCap = def.RenderCap
	}
	if o.ReducedRenderCap < 1 {
		o.ReducedRenderCap = def.ReducedRenderCap
	}
	if o.ReducedThreshold < 1 {
		o.ReducedThreshold = def.ReducedThreshold
	}
	if o.WindowWidth < 8 {
		o.WindowWidth = def.WindowWidth
	}
	if o.WindowHeight < 3 {
		o.WindowHeight = def.WindowHeight
	}
	return o
}

// Manager tracks the logical terminal count and the windows actually drawn.
// It is driven from a single event loop and is not safe for concurrent use.
type Manager struct {
	opts     Options
	pool     ScriptPool
	rng      *rand.Rand
	count    int
	nextSeq  int
	highestZ int
	cursor   int
	focused  string
	width    int
	height   int
	windows  []Instance // creation order
}

// NewManager returns a manager holding a single window.
func NewManager(opts Options, pool ScriptPool, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m := &Manager{
		opts:   opts.normalized(),
		pool:   pool,
		rng:    rng,
		width:  120,
		height: 40,
	}
	m.count = 1
	m.spawn("")
	return m
}

// Options returns the effective options.
func (m *Manager) Options() Options { return m.opts }

// Count is the logical terminal count.
func (m *Manager) Count() int { return m.count }

// RenderCap is the number of windows drawn for count.
func (m *Manager) RenderCap(count int) int {
	if count > m.opts.ReducedThreshold {
		return m.opts.ReducedRenderCap
	}
	return m.opts.RenderCap
}

// Rendered returns how many windows should be on screen for the current count.
func (m *Manager) Rendered() int {
	return min(m.count, m.RenderCap(m.count))
}

// SetCount clamps n to [1, MaxTerminals] and reconciles the drawn windows:
// growth evicts the oldest windows past the cap, shrinking drops the newest.
func (m *Manager) SetCount(n int) int {
	n = max(1, min(n, m.opts.MaxTerminals))
	prev := m.count
	m.count = n
	target := m.Rendered()

	if n > prev {
		add := min(n-prev, m.RenderCap(n))
		for i := 0; i < add; i++ {
			m.spawn("")
		}
		if len(m.windows) > target {
			m.windows = append([]Instance(nil), m.windows[len(m.windows)-target:]...)
		}
	} else if len(m.windows) > target {
		m.windows = m.windows[:target]
	}
	for len(m.windows) < target {
		m.spawn("")
	}
	m.fixFocus()
	return m.count
}

// Spawn adds one window showing scriptID and bumps the count.
func (m *Manager) Spawn(scriptID string) Instance {
	if m.count >= m.opts.MaxTerminals {
		inst := m.spawn(scriptID)
		m.windows = m.windows[1:]
		m.fixFocus()
		return inst
	}
	m.count++
	inst := m.spawn(scriptID)
	if target := m.Rendered(); len(m.windows) > target {
		m.windows = append([]Instance(nil), m.windows[len(m.windows)-target:]...)
	}
	m.fixFocus()
	return inst
}

// Close removes the window id. The count drops by one but never below one,
// and a replacement is spawned when fewer windows remain than should be drawn.
func (m *Manager) Close(id string) bool {
	idx := m.index(id)
	if idx < 0 {
		return false
	}
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	m.count = max(1, m.count-1)
	for len(m.windows) < m.Rendered() {
		m.spawn("")
	}
	m.fixFocus()
	return true
}

// Focus raises id above every other window, capped at MaxZ.
func (m *Manager) Focus(id string) bool {
	idx := m.index(id)
	if idx < 0 {
		return false
	}
	m.highestZ = min(m.highestZ+1, MaxZ)
	m.windows[idx].Z = m.highestZ
	m.focused = id
	return true
}

// FocusNext moves focus to the next window in creation order.
func (m *Manager) FocusNext() (Instance, bool) {
	if len(m.windows) == 0 {
		return Instance{}, false
	}
	next := 0
	if idx := m.index(m.focused); idx >= 0 {
		next = (idx + 1) % len(m.windows)
	}
	id := m.windows[next].ID
	m.Focus(id)
	return m.windows[next], true
}

// Focused returns the focused window, if any.
func (m *Manager) Focused() (Instance, bool) {
	if idx := m.index(m.focused); idx >= 0 {
		return m.windows[idx], true
	}
	return Instance{}, false
}

// Move places id at pos, clamped so the window stays inside the viewport.
func (m *Manager) Move(id string, pos Position) bool {
	idx := m.index(id)
	if idx < 0 {
		return false
	}
	m.windows[idx].Pos = m.clamp(pos)
	return true
}

// SetViewport resizes the desktop and pulls windows back inside it.
func (m *Manager) SetViewport(width, height int) {
	m.width = max(1, width)
	m.height = max(1, height)
	for i := range m.windows {
		m.windows[i].Pos = m.clamp(m.windows[i].Pos)
	}
}

// Viewport returns the desktop size in cells.
func (m *Manager) Viewport() (width, height int) { return m.width, m.height }

// Arrange lays windows out on a checkerboard grid in creation order. Odd rows
// shift by half a cell; windows that do not fit form further layers offset
// diagonally. The result depends only on the viewport and window count.
func (m *Manager) Arrange() {
	cellW := m.opts.WindowWidth + arrangeGapX
	cellH := m.opts.WindowHeight + arrangeGapY
	perRow := max(1, m.width/cellW)
	rows := max(1, m.height/cellH)
	perLayer := perRow * rows

	for i := range m.windows {
		layer := i / perLayer
		inLayer := i % perLayer
		row := inLayer / perRow
		col := inLayer % perRow
		offsetX := (row % 2) * (cellW / 2)
		pos := Position{
			X: col*cellW + offsetX + layer*layerOffset,
			Y: row*cellH + layer*layerOffset,
		}
		m.windows[i].Pos = m.clamp(pos)
	}
}

// Windows returns the drawn windows in creation order.
func (m *Manager) Windows() []Instance {
	return append([]Instance(nil), m.windows...)
}

// Stacked returns the drawn windows bottom to top, sorted by (Z, Seq).
func (m *Manager) Stacked() []Instance {
	out := m.Windows()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// Get returns the window id.
func (m *Manager) Get(id string) (Instance, bool) {
	if idx := m.index(id); idx >= 0 {
		return m.windows[idx], true
	}
	return Instance{}, false
}

// IDs returns the ids of the drawn windows in creation order.
func (m *Manager) IDs() []string {
	ids := make([]string, len(m.windows))
	for i, w := range m.windows {
		ids[i] = w.ID
	}
	return ids
}

// Reassign points window id at scriptID.
func (m *Manager) Reassign(id, scriptID string) bool {
	idx := m.index(id)
	if idx < 0 {
		return false
	}
	m.windows[idx].ScriptID = scriptID
	return true
}

func (m *Manager) spawn(scriptID string) Instance {
	m.nextSeq++
	m.highestZ = min(m.highestZ+1, MaxZ)
	if scriptID == "" {
		scriptID = m.pickScript()
	}
	inst := Instance{
		ID:       fmt.Sprintf("terminal-%d", m.nextSeq),
		Seq:      m.nextSeq,
		Pos:      m.randomPosition(),
		Z:        m.highestZ,
		ScriptID: scriptID,
	}
	m.windows = append(m.windows, inst)
	return inst
}

func (m *Manager) pickScript() string {
	if m.pool == nil {
		return ""
	}
	names := m.pool.Names()
	if len(names) == 0 {
		return ""
	}
	if m.opts.Order == OrderSequential {
		name := names[m.cursor%len(names)]
		m.cursor++
		return name
	}
	return names[m.rng.IntN(len(names))]
}

func (m *Manager) randomPosition() Position {
	maxX, maxY := m.bounds()
	return Position{X: m.padded(maxX, spawnPadX), Y: m.padded(maxY, spawnPadY)}
}

// padded picks a coordinate in [pad, limit-pad], or in [0, limit] when the
// margin leaves no room.
func (m *Manager) padded(limit, pad int) int {
	if limit < 2*pad {
		return m.rng.IntN(limit + 1)
	}
	return pad + m.rng.IntN(limit-2*pad+1)
}

func (m *Manager) bounds() (maxX, maxY int) {
	return max(0, m.width-m.opts.WindowWidth), max(0, m.height-m.opts.WindowHeight)
}

func (m *Manager) clamp(p Position) Position {
	maxX, maxY := m.bounds()
	return Position{X: max(0, min(p.X, maxX)), Y: max(0, min(p.Y, maxY))}
}

func (m *Manager) index(id string) int {
	if id == "" {
		return -1
	}
	for i, w := range m.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) fixFocus() {
	if m.index(m.focused) < 0 {
		m.focused = ""
	}
}
