package theme

import "sync"

// Provider tracks the active theme and notifies subscribers when it changes.
type Provider struct {
	mu      sync.RWMutex
	current string
	subs    map[int]func(Theme)
	nextSub int
}

// NewProvider starts on name, or the default theme when name is unknown.
func NewProvider(name string) *Provider {
	if !Exists(name) {
		name = DefaultName
	}
	return &Provider{current: name, subs: make(map[int]func(Theme))}
}

// Current returns the active theme.
func (p *Provider) Current() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Get(p.current)
}

// Name returns the active theme name.
func (p *Provider) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Set activates name. Unknown names are ignored and reported as false.
func (p *Provider) Set(name string) bool {
	if !Exists(name) {
		return false
	}
	p.mu.Lock()
	changed := p.current != name
	p.current = name
	subs := p.snapshot()
	p.mu.Unlock()
	if changed {
		t := Get(name)
		for _, fn := range subs {
			fn(t)
		}
	}
	return true
}

// Next advances to the following theme in the cycle and returns it.
func (p *Provider) Next() Theme {
	next := Next(p.Name())
	p.Set(next)
	return Get(next)
}

// Subscribe registers fn for theme changes; the returned func unregisters it.
func (p *Provider) Subscribe(fn func(Theme)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *Provider) snapshot() []func(Theme) {
	out := make([]func(Theme), 0, len(p.subs))
	for _, fn := range p.subs {
		out = append(out, fn)
	}
	return out
}
