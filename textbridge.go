package textbridge

import (
	"fmt"

	"github.com/annotext/textbridge/span"
)

// SelectionOptions configures SuggestSelection.
type SelectionOptions struct {
	Locales string
}

// ClassificationOptions configures ClassifyText.
type ClassificationOptions struct {
	Locales            string
	ReferenceTimezone  string
	ReferenceTimeMsUTC int64
}

// AnnotationOptions configures Annotate.
type AnnotationOptions struct {
	Locales            string
	ReferenceTimezone  string
	ReferenceTimeMsUTC int64
}

// DatetimeParse is a parsed point in time attached to a classification
// result.
type DatetimeParse struct {
	TimeMsUTC   int64
	Granularity int
}

// ClassificationResult is one ranked engine result for a text span.
// Datetime is nil unless the engine actually parsed one, and
// SerializedKnowledge is empty unless the knowledge engine produced a
// payload; downstream marshaling keeps absent fields absent.
type ClassificationResult struct {
	Collection          string
	Score               float32
	Datetime            *DatetimeParse
	SerializedKnowledge []byte
}

// AnnotatedSpan is a text span, in codepoint units, with its ranked
// classification results. Order is the engine's ranking; nothing in this
// module re-sorts it.
type AnnotatedSpan struct {
	Span           span.Span
	Classification []ClassificationResult
}

// Engine is the native text-annotation engine this module bridges to.
// All spans an Engine sees or returns are in codepoint units. Engines own
// their own thread-safety guarantees; the bridge adds none.
type Engine interface {
	SuggestSelection(text string, selection span.Span, opts SelectionOptions) span.Span
	ClassifyText(text string, selection span.Span, opts ClassificationOptions) []ClassificationResult
	Annotate(text string, opts AnnotationOptions) []AnnotatedSpan
	InitializeKnowledgeEngine(config []byte) bool
	Close() error
}

// Loader constructs an Engine from a model source. Load either returns a
// fully usable engine or an error, never a partially constructed one.
type Loader interface {
	Load(src Source) (Engine, error)
}

// SourceKind discriminates the Source union.
type SourceKind uint8

const (
	SourceInvalid SourceKind = iota
	SourcePath
	SourceFD
	SourceRegion
)

// Source locates a model: a file path, a whole file descriptor, or a byte
// region of a file descriptor. The zero Source is invalid.
type Source struct {
	kind   SourceKind
	path   string
	fd     int
	offset int64
	length int64
}

// PathSource locates a model by file path.
func PathSource(path string) Source {
	return Source{kind: SourcePath, path: path, fd: -1}
}

// FDSource locates a model as the whole content of an open descriptor.
func FDSource(fd int) Source {
	return Source{kind: SourceFD, fd: fd}
}

// RegionSource locates a model as length bytes at offset within an open
// descriptor.
func RegionSource(fd int, offset, length int64) Source {
	return Source{kind: SourceRegion, fd: fd, offset: offset, length: length}
}

// Kind returns the union discriminant.
func (s Source) Kind() SourceKind { return s.kind }

// Path returns the file path for a SourcePath source.
func (s Source) Path() string { return s.path }

// FD returns the descriptor for SourceFD and SourceRegion sources.
func (s Source) FD() int { return s.fd }

// Region returns the byte region for a SourceRegion source.
func (s Source) Region() (offset, length int64) { return s.offset, s.length }

func (s Source) String() string {
	switch s.kind {
	case SourcePath:
		return fmt.Sprintf("path(%s)", s.path)
	case SourceFD:
		return fmt.Sprintf("fd(%d)", s.fd)
	case SourceRegion:
		return fmt.Sprintf("fd(%d)+%d:%d", s.fd, s.offset, s.length)
	default:
		return "invalid"
	}
}
