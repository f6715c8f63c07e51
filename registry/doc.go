// Package registry maps opaque generation-tagged handles to live engine
// instances.
//
// Callers hold a Handle across boundary calls instead of a raw pointer.
// Every handle encodes its slot's generation, so use-after-destroy and
// double-destroy resolve to a safe miss rather than touching a freed
// engine.
package registry
