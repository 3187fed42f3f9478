// Package state provides the local key/value store that persists
// user-authored transcripts between runs.
//
// # Overview
//
// The store is a flat map from string keys to JSON values, kept in memory and
// mirrored to a single JSON object file (by default
// ~/.local/share/multiterm/storage.json). It plays the role a browser's
// localStorage would: small, synchronous, and owned by one user.
//
// # File Format
//
// The file holds one JSON object. Each top-level member is a key; its value is
// stored verbatim as a json.RawMessage and decoded by the caller:
//
//	{
//	  "customTerminalContents": [
//	    {"id": "custom-1718000000000-k3j9x0a2b", "name": "Demo", ...}
//	  ]
//	}
//
// # Read Semantics
//
// Open reads the file once. A missing file, an unreadable file, or malformed
// JSON all produce an empty store; the failure is logged and kept in LastError
// so callers can mention it. Nothing about a bad file is fatal. A later Reload
// that fails keeps what was loaded before.
//
// # Write Semantics
//
// Every Set or Delete rewrites the whole file: the map is encoded, written to
// a temporary file in the same directory, and renamed over the original. A
// reader never observes a half-written file. A store opened without a path
// keeps everything in memory.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock:
//
//   - Get, Keys, LastError, LastLoaded: read lock
//   - Set, Delete, Reload: write lock, held across the file rewrite
//
// The UI event loop, CLI subcommands, and the Watch goroutine may all touch
// the same Store.
//
// # Watching
//
// Watch follows the file with fsnotify. Edits made by another process (or by
// a `multiterm custom rm` in a second terminal) are reloaded and reported to
// the callback. Writes made through this Store reload to identical contents
// and are not reported.
package state
