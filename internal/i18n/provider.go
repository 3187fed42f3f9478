package i18n

import (
	"slices"
	"sync"
)

// Provider tracks the active locale and notifies subscribers when it changes.
type Provider struct {
	catalog *Catalog

	mu      sync.RWMutex
	locale  string
	subs    map[int]func(string)
	nextSub int
}

// NewProvider starts on locale, or the fallback when it is unsupported.
func NewProvider(c *Catalog, locale string) *Provider {
	if !slices.Contains(supportedCodes, locale) {
		locale = Fallback
	}
	return &Provider{catalog: c, locale: locale, subs: make(map[int]func(string))}
}

// Locale returns the active locale code.
func (p *Provider) Locale() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.locale
}

// T translates key in the active locale.
func (p *Provider) T(key string, args ...Args) string {
	var merged Args
	switch len(args) {
	case 0:
	case 1:
		merged = args[0]
	default:
		merged = Args{}
		for _, a := range args {
			for k, v := range a {
				merged[k] = v
			}
		}
	}
	return p.catalog.Translate(p.Locale(), key, merged)
}

// Set activates locale. Unsupported codes are ignored and reported as false.
func (p *Provider) Set(locale string) bool {
	if !slices.Contains(supportedCodes, locale) {
		return false
	}
	p.mu.Lock()
	changed := p.locale != locale
	p.locale = locale
	subs := make([]func(string), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()
	if changed {
		for _, fn := range subs {
			fn(locale)
		}
	}
	return true
}

// Toggle switches to the next supported locale and returns it.
func (p *Provider) Toggle() string {
	cur := p.Locale()
	idx := slices.Index(supportedCodes, cur)
	next := supportedCodes[(idx+1)%len(supportedCodes)]
	p.Set(next)
	return next
}

// Subscribe registers fn for locale changes; the returned func unregisters it.
func (p *Provider) Subscribe(fn func(string)) func() {
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
