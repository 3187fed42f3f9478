// Package script defines transcript lines and the registry of built-in scripts
// that terminal windows type out.
package script

import (
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/goccy/go-yaml"
)

//go:embed scripts/*.yaml
var builtinFS embed.FS

// Builtin script names in their canonical order.
const (
	Development     = "development"
	Build           = "build"
	Error           = "error"
	Conversation    = "conversation"
	Troubleshooting = "troubleshooting"
	Epic            = "epic"
)

var builtinOrder = []string{Development, Build, Error, Conversation, Troubleshooting, Epic}

// Script is an ordered transcript identified by Name.
type Script struct {
	Name  string
	Lines []Line
}

type wireScript struct {
	Name  string     `yaml:"name"`
	Lines []wireLine `yaml:"lines"`
}

// Parse decodes a YAML script document.
func Parse(data []byte) (Script, error) {
	var raw wireScript
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	if raw.Name == "" {
		return Script{}, fmt.Errorf("parse script: missing name")
	}
	s := Script{Name: raw.Name, Lines: make([]Line, 0, len(raw.Lines))}
	for _, w := range raw.Lines {
		s.Lines = append(s.Lines, w.line())
	}
	return s, nil
}

// Encode renders s as a YAML document that Parse accepts.
func Encode(s Script) ([]byte, error) {
	raw := wireScript{Name: s.Name, Lines: make([]wireLine, 0, len(s.Lines))}
	for _, l := range s.Lines {
		raw.Lines = append(raw.Lines, toWire(l))
	}
	out, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode script %s: %w", s.Name, err)
	}
	return out, nil
}

// Registry holds the scripts available for assignment. Built-ins keep their
// canonical order; custom scripts follow sorted by name key.
// A Registry is not safe for concurrent mutation.
type Registry struct {
	scripts map[string]Script
	builtin []string
	custom  []string
}

// NewRegistry returns a registry loaded with the embedded built-in scripts.
func NewRegistry() (*Registry, error) {
	r := &Registry{scripts: make(map[string]Script, len(builtinOrder))}
	for _, name := range builtinOrder {
		data, err := builtinFS.ReadFile(path.Join("scripts", name+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("read builtin %s: %w", name, err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", name, err)
		}
		r.scripts[name] = s
		r.builtin = append(r.builtin, name)
	}
	return r, nil
}

// MustRegistry is NewRegistry for callers that cannot proceed without the
// embedded scripts.
func MustRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the script with the given id.
func (r *Registry) Get(id string) (Script, bool) {
	s, ok := r.scripts[id]
	return s, ok
}

// Builtins returns the built-in script names in canonical order.
func (r *Registry) Builtins() []string {
	return append([]string(nil), r.builtin...)
}

// Names returns every script id: built-ins first, then custom ids.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.builtin)+len(r.custom))
	out = append(out, r.builtin...)
	out = append(out, r.custom...)
	return out
}

// IsBuiltin reports whether id names an embedded script.
func (r *Registry) IsBuiltin(id string) bool {
	for _, name := range r.builtin {
		if name == id {
			return true
		}
	}
	return false
}

// SetCustom replaces every non-built-in script with the given set.
func (r *Registry) SetCustom(scripts []Script) {
	for _, id := range r.custom {
		delete(r.scripts, id)
	}
	r.custom = r.custom[:0]
	for _, s := range scripts {
		if s.Name == "" || r.IsBuiltin(s.Name) {
			continue
		}
		if _, dup := r.scripts[s.Name]; dup {
			continue
		}
		r.scripts[s.Name] = s
		r.custom = append(r.custom, s.Name)
	}
	sort.Strings(r.custom)
}
