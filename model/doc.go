// Package model provides read-only access to annotation model files.
//
// A model is located by a Source (path, whole descriptor, or a byte
// region of a descriptor) and opened via memory mapping. This package
// only interprets the fixed metadata header at the front of the file —
// name, version, and supported locales; the rest of the mapping is the
// engine loader's business.
package model
