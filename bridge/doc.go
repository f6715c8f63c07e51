// Package bridge implements the caller-facing boundary of the annotation
// engine.
//
// It owns the per-request control flow: read the foreign options value
// (fail-closed), map the caller's code-unit span to the engine's
// codepoint space, call the engine, map returned spans back, and build
// the boundary result records. The same surface is available as a plain
// Go API (Bridge) and as a wazero host module for wasm guests
// (RegisterHost).
//
// Nothing in this package raises across the boundary: invalid handles,
// unreadable options, and unmappable sources all produce the operation's
// neutral value.
package bridge
