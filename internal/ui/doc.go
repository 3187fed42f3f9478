// Package ui provides the Bubble Tea front end for multiterm: the desktop of
// typewriter terminals and the ASCII typer page.
//
// # Architecture Overview
//
// The desktop is a single tea.Model. Domain state lives outside the package:
// desktop.Desktop owns windows, stacking and cat physics, and
// typewriter.Arena owns one engine per window. The model feeds both a frame
// clock and input events, then composes a frame from their snapshots.
//
// # Package Structure
//
//   - app.go: Model, Run, frame loop, shortcut and mouse handling
//   - compose.go: ANSI-aware canvas that splices boxes at cell offsets
//   - window.go: window chrome, transcript rows and hit testing
//   - controls.go: bottom control bar with clickable spans
//   - help.go, keys.go: shortcuts overlay and bubbles key bindings
//   - editor.go, modal.go: huh form for custom terminal content
//   - layout.go, style_helpers.go: sizing and lipgloss helpers
//   - typer.go: the ASCII typer page
//
// # Event Flow
//
//  1. Run starts the program with the alt screen and cell motion mouse
//  2. frameMsg advances every engine and steps the desktop physics
//  3. Key events go to an open modal, then the help overlay, then the
//     shortcut registry
//  4. Storage changes arrive on Options.Changes and refresh the custom
//     scripts in the registry
//  5. Context cancellation ends the program without an error
//
// # Rendering
//
// Windows are painted back to front onto the canvas. Each rendered window is
// cached under a key of its engine progress, focus, theme and locale, so idle
// windows cost one map lookup per frame. The last row is always the control
// bar.
//
// # Key Bindings
//
// Bindings come from shortcuts.Registry; the help overlay (?) lists them
// grouped and translated. Esc closes overlays; q or Ctrl+C quits.
package ui
