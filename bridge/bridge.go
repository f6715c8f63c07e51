package bridge

import (
	"go.uber.org/zap"

	textbridge "github.com/annotext/textbridge"
	"github.com/annotext/textbridge/model"
	"github.com/annotext/textbridge/registry"
	"github.com/annotext/textbridge/span"
)

// Bridge exposes an annotation engine across the caller boundary.
//
// Callers index text in 16-bit code units; the engine indexes in
// codepoints. Every operation here takes and returns code-unit spans and
// translates at the seam. Failures never propagate: an invalid handle,
// unreadable options, or an unmappable source all resolve to the
// operation's neutral value.
type Bridge struct {
	table *registry.Table
	log   *zap.Logger
}

// Option configures a Bridge.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the bridge's logger. Defaults to the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// New creates a bridge that constructs engines with loader.
func New(loader textbridge.Loader, opts ...Option) *Bridge {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = Logger()
	}
	return &Bridge{
		table: registry.New(loader, o.log),
		log:   o.log,
	}
}

// Close destroys all live engines.
func (b *Bridge) Close() error {
	return b.table.Close()
}

// NewAnnotator loads an engine from src and returns its handle, or
// registry.Invalid if loading fails.
func (b *Bridge) NewAnnotator(src textbridge.Source) registry.Handle {
	return b.table.Create(src)
}

// CloseAnnotator destroys the engine behind h. Destroying an invalid or
// already-destroyed handle is a safe no-op.
func (b *Bridge) CloseAnnotator(h registry.Handle) {
	b.table.Destroy(h)
}

// InitializeKnowledgeEngine passes an opaque serialized encoder config to
// the engine. Returns false for an invalid handle.
func (b *Bridge) InitializeKnowledgeEngine(h registry.Handle, config []byte) bool {
	engine, ok := b.table.Get(h)
	if !ok {
		b.log.Debug("initialize knowledge engine on invalid handle", zap.Uint64("handle", uint64(h)))
		return false
	}
	return engine.InitializeKnowledgeEngine(config)
}

// SuggestSelection asks the engine to expand the code-unit selection and
// returns the suggestion in code units. Returns span.Invalid for an
// invalid handle or when a boundary cannot be mapped.
func (b *Bridge) SuggestSelection(h registry.Handle, text string, selection span.Span, optsJSON []byte) span.Span {
	engine, ok := b.table.Get(h)
	if !ok {
		b.log.Debug("suggest selection on invalid handle", zap.Uint64("handle", uint64(h)))
		return span.Invalid
	}

	cpSelection := span.Convert(text, selection, span.UnitsToCodepoints)
	suggested := engine.SuggestSelection(text, cpSelection, ReadSelectionOptions(optsJSON))
	return span.Convert(text, suggested, span.CodepointsToUnits)
}

// ClassifyText classifies the code-unit selection. Returns nil for an
// invalid handle; a valid handle with no matches yields an empty,
// non-nil slice.
func (b *Bridge) ClassifyText(h registry.Handle, text string, selection span.Span, optsJSON []byte) []ClassificationRecord {
	engine, ok := b.table.Get(h)
	if !ok {
		b.log.Debug("classify text on invalid handle", zap.Uint64("handle", uint64(h)))
		return nil
	}

	cpSelection := span.Convert(text, selection, span.UnitsToCodepoints)
	results := engine.ClassifyText(text, cpSelection, ReadClassificationOptions(optsJSON))
	return ClassificationRecords(results)
}

// Annotate runs the engine over the whole text and returns annotated
// spans in code units. Returns nil for an invalid handle.
func (b *Bridge) Annotate(h registry.Handle, text string, optsJSON []byte) []AnnotationRecord {
	engine, ok := b.table.Get(h)
	if !ok {
		b.log.Debug("annotate on invalid handle", zap.Uint64("handle", uint64(h)))
		return nil
	}

	annotations := engine.Annotate(text, ReadAnnotationOptions(optsJSON))
	return AnnotationRecords(annotations, text)
}

// Locales returns the model's supported locales, or "" if the source
// cannot be read.
func (b *Bridge) Locales(src textbridge.Source) string {
	return model.ReadMetadata(src).Locales
}

// Version returns the model's version, or 0 if the source cannot be read.
func (b *Bridge) Version(src textbridge.Source) int32 {
	return model.ReadMetadata(src).Version
}

// Name returns the model's name, or "" if the source cannot be read.
func (b *Bridge) Name(src textbridge.Source) string {
	return model.ReadMetadata(src).Name
}

// Language returns the model's supported locales.
//
// Deprecated: use Locales.
func (b *Bridge) Language(src textbridge.Source) string {
	b.log.Warn("using deprecated Language()", zap.Stringer("source", src))
	return b.Locales(src)
}
