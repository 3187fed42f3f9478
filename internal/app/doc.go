// Package app is the composition root for multiterm.
//
// # Overview
//
// Setup loads the configuration and preferences and wires the shared services:
// the logger, the key/value store with its custom content, the script
// registry, the theme and locale providers, and the screenshot shooter. Run
// then starts the desktop and RunTyper starts the ASCII typer page.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Setup()    │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config.toml
//	       ├─────> logging handler        Buffer + log file
//	       ├─────> prefs.Open()           Theme and locale
//	       ├─────> state.Open()           Key/value storage
//	       ├─────> custom.EnsureDefault() Seed custom content
//	       └─────> script.NewRegistry()   Built-in + custom scripts
//
//	Run():
//	       ├─────> store.Watch()          fsnotify, or StartPoller() fallback
//	       └─────> ui.Run()               Start TUI (blocks)
//
// # Logging
//
// The TUI owns the terminal, so records go to the configured log file and to
// an in-memory ring buffer. When the UI exits with an error the buffer is
// written to stderr.
//
// # Error Handling
//
// Fatal errors (returned from Setup and Run):
//   - Configuration file unreadable or invalid
//   - Unknown log level or format
//
// Recoverable errors (logged, startup continues):
//   - Preferences unreadable (defaults are used)
//   - Storage path unusable (content is kept in memory)
//   - Clipboard command unparsable (screenshots are saved to files)
//   - File notifications unavailable (storage is polled with backoff)
package app
