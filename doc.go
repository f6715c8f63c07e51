// Package textbridge exposes a native text-annotation engine across a
// language boundary.
//
// The caller side indexes text in 16-bit code units (UTF-16); the engine
// side indexes in Unicode codepoints. This module owns the seam: it
// converts spans between the two index spaces, manages opaque handles to
// live engine instances, and marshals options and results across the
// boundary with fail-closed defaulting.
//
// # Architecture Overview
//
//	textbridge/          Root package: Engine interface, result/option types, model Source
//	├── span/            Code-unit <-> codepoint span conversion
//	├── registry/        Generation-tagged handle table owning engine instances
//	├── model/           Read-only model mapping and metadata (locales, version, name)
//	├── encoder/         Opaque text-encoder configuration blob
//	├── bridge/          Boundary operations, options/result adapters, wazero host module
//	└── errors/          Structured internal error types
//
// # Quick Start
//
// Wrap an engine loader and serve it to callers:
//
//	b := bridge.New(myLoader, bridge.WithLogger(logger))
//	defer b.Close()
//
//	h := b.NewAnnotator(textbridge.PathSource("model.tb"))
//	sel := b.SuggestSelection(h, "call 555-0100 now", span.Span{Begin: 5, End: 6}, nil)
//	b.CloseAnnotator(h)
//
// To expose the same surface to wasm guests, register the host module on a
// wazero runtime:
//
//	rt := wazero.NewRuntime(ctx)
//	bridge.RegisterHost(ctx, rt, b)
//
// # Failure Model
//
// No error crosses the boundary. Every operation against an invalid or
// destroyed handle returns its type's neutral value; unreadable options
// fall back to all-default records; an unmappable span boundary is -1.
// Construction either returns a fully usable handle or the invalid handle.
//
// # Concurrency
//
// All calls are synchronous and run on the caller's stack. Calls against
// different handles are independent. Calls against the same handle are as
// safe as the underlying engine makes them; the bridge adds no locking
// beyond the handle table's own.
package textbridge
