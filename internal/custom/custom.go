// Package custom manages user-authored transcripts persisted in the local
// key/value store.
package custom

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/multiterm/internal/script"
)

// StorageKey is the store key holding every custom content as one JSON array.
const StorageKey = "customTerminalContents"

// DefaultName names the content EnsureDefault creates.
const DefaultName = "Default Custom Terminal"

// ErrNotFound reports an unknown content id.
var ErrNotFound = errors.New("custom content not found")

// Content is one user-authored transcript.
type Content struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Lines     []script.Line `json:"lines"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Script exposes the content as a script keyed by its id.
func (c Content) Script() script.Script {
	return script.Script{Name: c.ID, Lines: c.Lines}
}

// Option summarizes a content for pickers and listings.
type Option struct {
	ID        string
	Name      string
	LineCount int
	CreatedAt time.Time
}

// Patch lists the fields Update changes. Nil fields are left alone.
type Patch struct {
	Name  *string
	Lines []script.Line
}

// KV is the subset of the key/value store the custom store needs.
type KV interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
}

// Store performs CRUD over the content array. Every write rewrites the array.
type Store struct {
	kv     KV
	logger *slog.Logger
	now    func() time.Time
}

// NewStore wraps kv.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger, now: time.Now}
}

// NewID returns an id of the form custom-<unix-ms>-<9 random chars>.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("custom-%d-%s", now.UnixMilli(), suffix)
}

// List returns every content in creation order. Unreadable data is logged
// and treated as empty.
func (s *Store) List() []Content {
	var contents []Content
	if _, err := s.kv.Get(StorageKey, &contents); err != nil {
		s.logger.Warn("load custom contents", slog.Any("err", err))
		return nil
	}
	return contents
}

// Get returns the content with id.
func (s *Store) Get(id string) (Content, bool) {
	for _, c := range s.List() {
		if c.ID == id {
			return c, true
		}
	}
	return Content{}, false
}

// Create appends a new content and persists the array.
func (s *Store) Create(name string, lines []script.Line) (Content, error) {
	now := s.now()
	c := Content{
		ID:        NewID(now),
		Name:      strings.TrimSpace(name),
		Lines:     script.Normalize(lines),
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Custom Content %d", now.UnixMilli())
	}

	contents := append(s.List(), c)
	if err := s.kv.Set(StorageKey, contents); err != nil {
		return Content{}, fmt.Errorf("save custom content: %w", err)
	}
	s.logger.Info("custom content created",
		slog.String("id", c.ID),
		slog.String("name", c.Name),
		slog.Int("lines", len(c.Lines)),
	)
	return c, nil
}

// Update applies p to the content with id. The id and creation time never change.
func (s *Store) Update(id string, p Patch) (Content, error) {
	contents := s.List()
	for i := range contents {
		if contents[i].ID != id {
			continue
		}
		if p.Name != nil {
			contents[i].Name = strings.TrimSpace(*p.Name)
		}
		if p.Lines != nil {
			contents[i].Lines = script.Normalize(p.Lines)
		}
		if err := s.kv.Set(StorageKey, contents); err != nil {
			return Content{}, fmt.Errorf("save custom content: %w", err)
		}
		return contents[i], nil
	}
	return Content{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
}

// Delete removes the content with id.
func (s *Store) Delete(id string) error {
	contents := s.List()
	kept := contents[:0]
	found := false
	for _, c := range contents {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	if err := s.kv.Set(StorageKey, kept); err != nil {
		return fmt.Errorf("save custom content: %w", err)
	}
	return nil
}

// Options summarizes every content in creation order.
func (s *Store) Options() []Option {
	contents := s.List()
	out := make([]Option, 0, len(contents))
	for _, c := range contents {
		out = append(out, Option{ID: c.ID, Name: c.Name, LineCount: len(c.Lines), CreatedAt: c.CreatedAt})
	}
	return out
}

// Scripts returns every content as a script for the registry.
func (s *Store) Scripts() []script.Script {
	contents := s.List()
	out := make([]script.Script, 0, len(contents))
	for _, c := range contents {
		out = append(out, c.Script())
	}
	return out
}

// EnsureDefault creates the default content when none exists and returns the
// first content.
func (s *Store) EnsureDefault() (Content, error) {
	if contents := s.List(); len(contents) > 0 {
		return contents[0], nil
	}
	return s.Create(DefaultName, DefaultLines())
}

// DefaultLines is the sample transcript EnsureDefault stores.
func DefaultLines() []script.Line {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return []script.Line{
		{Text: "user@localhost:~$ ", Role: script.RoleCommand},
		{Text: "echo 'Welcome to my custom terminal!'", Role: script.RolePrimary, Delay: ms(100)},
		{Text: "Welcome to my custom terminal!", Role: script.RoleSuccess, Delay: ms(200)},
		{Text: "user@localhost:~$ ", Role: script.RoleCommand, Delay: ms(300)},
		{Text: "ls -la", Role: script.RolePrimary, Delay: ms(100)},
		{Text: "total 8", Role: script.RoleMuted, Delay: ms(200)},
		{Text: "drwxr-xr-x  3 user user 4096 Jan 15 10:30 .", Role: script.RoleInfo, Delay: ms(100)},
		{Text: "drwxr-xr-x  5 user user 4096 Jan 15 10:25 ..", Role: script.RoleInfo, Delay: ms(100)},
		{Text: "-rw-r--r--  1 user user  220 Jan 15 10:30 .bashrc", Role: script.RolePrimary, Delay: ms(100)},
		{Text: "-rw-r--r--  1 user user  807 Jan 15 10:30 .profile", Role: script.RolePrimary, Delay: ms(100)},
		{Text: "user@localhost:~$ ", Role: script.RoleCommand, Delay: ms(300)},
	}
}
