// Package encoder carries the external text-encoder configuration schema.
//
// The bridge builds a Config, serializes it, and hands the bytes to the
// engine's knowledge initialization; the field semantics belong to the
// external encoder, not to this module.
package encoder
