package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/multiterm/internal/theme"
)

// Modal is a dialog drawn over the desktop that takes all key input while
// open. Update reports done once the dialog has submitted or been dismissed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (next Modal, cmd tea.Cmd, done bool)
	View(styles theme.Styles, width, height int) string
}
