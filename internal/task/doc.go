// Package task loads, validates, and rewrites the tasks file.
//
// The tasks file (tasks.json) is a JSON array of task records:
//
//	[
//	  { "task": "buy milk" },
//	  { "task": "walk the dog" }
//	]
//
// Array order is the only ordering. Every mutation rewrites the file in
// full; there are no partial updates and no append-only log.
//
// # Loading
//
// Two load paths exist:
//
//  1. Load surfaces errors distinguishably: a missing file satisfies
//     errors.Is(err, fs.ErrNotExist) and undecodable content satisfies
//     errors.Is(err, ErrCorrupt).
//  2. LoadOrEmpty conflates both cases into an empty list, which is the
//     behavior the core CLI commands rely on: a first run and a corrupt
//     file both look like "no tasks yet".
//
// # Validation
//
// Validate checks the on-disk file against a JSON Schema when a schema
// path is configured, and falls back to minimal structural checks (array
// of objects, each with a string "task" field) when it is not.
//
// # File format
//
// Save writes 2-space indentation, a trailing newline, and mode 0644.
package task
