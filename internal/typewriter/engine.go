// Package typewriter reveals scripts incrementally, one grapheme cluster or
// one short token at a time, as a pure state machine driven by elapsed time.
package typewriter

import (
	"math/rand/v2"
	"time"

	"github.com/rivo/uniseg"

	"github.com/five82/multiterm/internal/script"
)

// Phase is the engine's position in its timer chain.
type Phase int

const (
	// PhaseWaiting counts down the current line's delay.
	PhaseWaiting Phase = iota
	// PhaseTyping reveals the current line step by step.
	PhaseTyping
	// PhaseLoopWait counts down the pause before a looped restart.
	PhaseLoopWait
	// PhaseDone is terminal.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseTyping:
		return "typing"
	case PhaseLoopWait:
		return "loop-wait"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	minToken = 3
	maxToken = 6

	// maxStepsPerAdvance bounds a single Advance call so that a looping
	// script with no delays cannot spin forever.
	maxStepsPerAdvance = 4096
)

// Options tune how an engine reveals its script.
type Options struct {
	Speed     time.Duration
	Loop      bool
	LoopDelay time.Duration
	Enabled   bool
	TokenMode bool
}

// DefaultOptions mirrors the desktop defaults.
func DefaultOptions() Options {
	return Options{
		Speed:     100 * time.Millisecond,
		Loop:      true,
		LoopDelay: 3 * time.Second,
		Enabled:   true,
		TokenMode: true,
	}
}

type preparedLine struct {
	line script.Line
	ends []int // byte offset after each grapheme cluster
}

// Engine is the reveal state for one script. It is not safe for concurrent
// use; callers drive it from a single event loop.
type Engine struct {
	lines []preparedLine
	opts  Options
	rng   *rand.Rand

	phase  Phase
	index  int
	offset int
	wait   time.Duration
	shown  []script.Line
	cycles int
}

// New prepares an engine for lines. A nil or empty script is immediately done.
// rng drives token sizes; nil uses a time-seeded source.
func New(lines []script.Line, opts Options, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if opts.Speed < 0 {
		opts.Speed = 0
	}
	if opts.LoopDelay < 0 {
		opts.LoopDelay = 0
	}
	e := &Engine{opts: opts, rng: rng}
	e.lines = make([]preparedLine, 0, len(lines))
	for _, l := range lines {
		e.lines = append(e.lines, preparedLine{line: l, ends: clusterEnds(l.Text)})
	}
	e.restart()
	return e
}

func clusterEnds(text string) []int {
	if text == "" {
		return nil
	}
	ends := make([]int, 0, len(text))
	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
		ends = append(ends, pos)
	}
	return ends
}

func (e *Engine) restart() {
	e.index = 0
	e.offset = 0
	e.shown = e.shown[:0]
	if len(e.lines) == 0 {
		e.phase = PhaseDone
		e.wait = 0
		return
	}
	e.phase = PhaseWaiting
	e.wait = e.lines[0].line.Delay
}

// Step executes one transition regardless of the remaining wait and returns
// the delay before the next one. more is false once the engine is done.
func (e *Engine) Step() (next time.Duration, more bool) {
	switch e.phase {
	case PhaseWaiting:
		cur := e.lines[e.index]
		e.shown = append(e.shown, script.Line{Role: cur.line.Role, Bold: cur.line.Bold})
		e.offset = 0
		e.phase = PhaseTyping
		if len(cur.ends) == 0 {
			e.finishLine()
		} else {
			e.reveal()
		}
	case PhaseTyping:
		e.reveal()
	case PhaseLoopWait:
		e.cycles++
		e.restart()
	case PhaseDone:
		return 0, false
	}
	return e.wait, e.phase != PhaseDone
}

func (e *Engine) reveal() {
	cur := e.lines[e.index]
	n := 1
	if e.opts.TokenMode {
		n = minToken + e.rng.IntN(maxToken-minToken+1)
	}
	e.offset = min(e.offset+n, len(cur.ends))
	e.shown[len(e.shown)-1].Text = cur.line.Text[:cur.ends[e.offset-1]]
	if e.offset >= len(cur.ends) {
		e.finishLine()
		return
	}
	e.wait = e.opts.Speed
}

func (e *Engine) finishLine() {
	e.index++
	e.offset = 0
	if e.index < len(e.lines) {
		e.phase = PhaseWaiting
		e.wait = e.lines[e.index].line.Delay
		return
	}
	if e.opts.Loop {
		e.phase = PhaseLoopWait
		e.wait = e.opts.LoopDelay
		return
	}
	e.phase = PhaseDone
	e.wait = 0
}

// Advance runs every step that falls due within elapsed and reports whether
// the visible output changed. A disabled engine keeps its remaining wait.
func (e *Engine) Advance(elapsed time.Duration) bool {
	if !e.opts.Enabled || e.phase == PhaseDone || elapsed < 0 {
		return false
	}
	changed := false
	for steps := 0; steps < maxStepsPerAdvance; steps++ {
		if elapsed < e.wait {
			e.wait -= elapsed
			return changed
		}
		elapsed -= e.wait
		_, more := e.Step()
		changed = true
		if !more {
			return changed
		}
	}
	return changed
}

// SetEnabled pauses or resumes the engine without touching its position.
func (e *Engine) SetEnabled(enabled bool) { e.opts.Enabled = enabled }

// Enabled reports whether the engine advances.
func (e *Engine) Enabled() bool { return e.opts.Enabled }

// SetSpeed changes the step interval for subsequent steps.
func (e *Engine) SetSpeed(d time.Duration) {
	if d < 0 {
		d = 0
	}
	e.opts.Speed = d
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Done reports whether the engine reached its terminal state.
func (e *Engine) Done() bool { return e.phase == PhaseDone }

// Remaining is the wait left before the next step.
func (e *Engine) Remaining() time.Duration { return e.wait }

// Cycles counts completed loop restarts.
func (e *Engine) Cycles() int { return e.cycles }

// Visible returns the lines revealed so far; the last one may be partial.
func (e *Engine) Visible() []script.Line {
	return append([]script.Line(nil), e.shown...)
}

// Text concatenates the revealed text of every visible line.
func (e *Engine) Text() string {
	return script.VisibleText(e.shown)
}
