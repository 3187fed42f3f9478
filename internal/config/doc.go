// Package config loads the multiterm configuration file.
//
// # Overview
//
// The configuration tunes the typewriter animation, the terminal limits and
// where files are written. Every key is optional; an absent file yields
// Default().
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/multiterm/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but keys are missing or blank, use defaults for them
//
// # Default Values
//
//   - speed_ms: 100 (time between reveal steps)
//   - token_mode: true (reveal 3 to 6 characters per step)
//   - loop: true, loop_delay_ms: 3000
//   - initial_terminals: 1, max_terminals: 10000
//   - render_cap: 80, reduced_render_cap: 40 above reduced_render_threshold 1000
//   - script_order: "random" ("sequential" cycles the script pool)
//   - window_width: 44, window_height: 12, fps: 30 (capped at 120)
//   - screenshot_dir: ~/Pictures
//   - storage_path: ~/.local/share/multiterm/storage.json
//   - log_file: ~/.local/state/multiterm/multiterm.log
//   - clipboard_command: empty (try wl-copy, xclip, pbcopy)
//
// # TOML Format
//
//	speed_ms = 60
//	token_mode = false
//	initial_terminals = 6
//	script_order = "sequential"
//	clipboard_command = "xclip -selection clipboard -t image/png -i"
//
//	[keys]
//	quit = "ctrl+q"
//	speedUp = "}"
//
// The [keys] table maps shortcut actions to bubbletea key strings. Unknown
// actions are logged and skipped when the desktop starts.
//
// Tilde expansion is performed for every path key.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Out-of-range values (non-positive counts, unknown script_order)
//
// Missing config files are NOT an error. initial_terminals is silently
// clamped to max_terminals and fps to 120.
package config
