package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/multiterm/internal/custom"
	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/script"
	"github.com/five82/multiterm/internal/theme"
)

// newContentID is the picker value for "create new content".
const newContentID = ""

type editorStage int

const (
	editorPick editorStage = iota
	editorEdit
)

// editorSavedMsg reports the outcome of saving custom content.
type editorSavedMsg struct {
	content custom.Content
	apply   bool
	err     error
}

// editorModal edits custom terminal content in two steps: pick an existing
// entry (or a new one), then edit its name and lines.
type editorModal struct {
	store    *custom.Store
	locale   *i18n.Provider
	theme    *huh.Theme
	width    int
	canApply bool

	stage    editorStage
	form     *huh.Form
	selected string
	name     string
	text     string
	apply    bool
}

// newEditorModal opens the editor. The picker is skipped when nothing has been
// saved yet. canApply offers to show the result in the focused terminal.
func newEditorModal(store *custom.Store, locale *i18n.Provider, th theme.Theme, width int, canApply bool) (*editorModal, tea.Cmd) {
	e := &editorModal{
		store:    store,
		locale:   locale,
		theme:    th.Huh(),
		width:    max(20, min(EditorWidth, width-4)-6),
		canApply: canApply,
		apply:    canApply,
	}
	if len(store.Options()) == 0 {
		return e, e.startEdit()
	}
	return e, e.startPick()
}

func (e *editorModal) startPick() tea.Cmd {
	options := []huh.Option[string]{huh.NewOption(e.locale.T("customTerminal.new"), newContentID)}
	for _, o := range e.store.Options() {
		label := o.Name + " · " + e.locale.T("customTerminal.linesCount", i18n.Args{"count": o.LineCount})
		options = append(options, huh.NewOption(label, o.ID))
	}
	e.stage = editorPick
	e.form = e.newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Key("content").
			Title(e.locale.T("customTerminal.select")).
			Options(options...).
			Value(&e.selected),
	))
	return e.form.Init()
}

func (e *editorModal) startEdit() tea.Cmd {
	e.name, e.text = "", custom.StarterText
	if c, ok := e.store.Get(e.selected); ok {
		e.name = c.Name
		e.text = custom.ToEditor(c.Lines)
	}

	roles := make([]string, 0, len(script.Roles()))
	for _, r := range script.Roles() {
		roles = append(roles, string(r))
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title(e.locale.T("customTerminal.name")).
			Placeholder(e.locale.T("customTerminal.namePlaceholder")).
			Value(&e.name),
		huh.NewText().
			Key("lines").
			Title(e.locale.T("customTerminal.editLines")).
			Description(e.locale.T("customTerminal.editLinesHelp", i18n.Args{"roles": strings.Join(roles, ", ")})).
			Lines(8).
			Value(&e.text).
			Validate(func(s string) error {
				if len(custom.FromEditor(s)) == 0 {
					return errors.New(e.locale.T("customTerminal.empty"))
				}
				return nil
			}),
	}
	if e.canApply {
		fields = append(fields, huh.NewConfirm().
			Key("apply").
			Title(e.locale.T("customTerminal.applyFocused")).
			Value(&e.apply))
	}

	e.stage = editorEdit
	e.form = e.newForm(huh.NewGroup(fields...))
	return e.form.Init()
}

func (e *editorModal) newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithTheme(e.theme).
		WithWidth(e.width).
		WithShowHelp(false)
}

// Update implements Modal.
func (e *editorModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Cancel) {
		return e, nil, true
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	switch e.form.State {
	case huh.StateAborted:
		return e, nil, true
	case huh.StateCompleted:
		if e.stage == editorPick {
			return e, e.startEdit(), false
		}
		return e, e.save(), true
	}
	return e, cmd, false
}

// save persists the form values off the event loop.
func (e *editorModal) save() tea.Cmd {
	store := e.store
	id := e.selected
	name := e.name
	lines := custom.FromEditor(e.text)
	apply := e.canApply && e.apply
	return func() tea.Msg {
		var (
			c   custom.Content
			err error
		)
		if id == newContentID {
			c, err = store.Create(name, lines)
		} else {
			c, err = store.Update(id, custom.Patch{Name: &name, Lines: lines})
		}
		return editorSavedMsg{content: c, apply: apply, err: err}
	}
}

// View implements Modal.
func (e *editorModal) View(styles theme.Styles, width, height int) string {
	title := styles.PanelKey.Render(e.locale.T("customTerminal.title"))
	footer := styles.PanelMuted.Render(keyHint("Esc", e.locale.T("common.cancel")))
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", e.form.View(), footer)
	return styles.Modal.MaxWidth(width).MaxHeight(height).Render(body)
}

func keyHint(k, desc string) string {
	return k + " " + desc
}
