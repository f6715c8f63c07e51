// Package errors provides structured error types for the bridge's
// internal layers.
//
// Errors carry a Phase (where) and a Kind (what) so log output and tests
// can match on both without string comparison. These errors stay inside
// the module: the caller-facing boundary reports every failure as a
// neutral value, never as a propagated error.
package errors
