// Package span converts text spans between UTF-16 code-unit and Unicode
// codepoint index spaces.
//
// The caller side of the bridge indexes text in 16-bit code units, where a
// codepoint above 0xFFFF occupies two units (a surrogate pair). The engine
// side indexes in codepoints. Convert maps a half-open [begin, end) span
// between the two spaces in a single pass over the text.
package span

import "unicode/utf16"

// Span is a half-open [Begin, End) interval over some indexing unit.
// A boundary of -1 means "no corresponding position".
type Span struct {
	Begin int
	End   int
}

// Invalid is the fully unmapped span.
var Invalid = Span{Begin: -1, End: -1}

// IsValid reports whether both boundaries mapped.
func (s Span) IsValid() bool {
	return s.Begin >= 0 && s.End >= 0
}

// Direction selects the source index space for Convert.
type Direction uint8

const (
	// UnitsToCodepoints interprets the input span in code units and maps
	// it to codepoints.
	UnitsToCodepoints Direction = iota
	// CodepointsToUnits interprets the input span in codepoints and maps
	// it to code units.
	CodepointsToUnits
)

// Convert maps s from the direction's source index space to its target
// index space over text. It walks the codepoint sequence once, keeping a
// codepoint counter and a code-unit counter in lock-step; the unit counter
// advances one extra position for every codepoint above 0xFFFF.
//
// Each boundary is matched independently against the source counter at
// every position, including the position one past the final codepoint, so
// a span ending exactly at end-of-text maps. A boundary whose source value
// never lands on a counter position (for example a unit offset inside a
// surrogate pair) stays -1; the other boundary is unaffected.
func Convert(text string, s Span, dir Direction) Span {
	var cpIndex, unitIndex int

	src, dst := &unitIndex, &cpIndex
	if dir == CodepointsToUnits {
		src, dst = &cpIndex, &unitIndex
	}

	out := Invalid
	assign := func() {
		if s.Begin == *src {
			out.Begin = *dst
		}
		if s.End == *src {
			out.End = *dst
		}
	}

	for _, r := range text {
		assign()
		cpIndex++
		unitIndex++
		if r > 0xFFFF {
			unitIndex++
		}
	}
	assign()

	return out
}

// UnitLen returns the length of text in UTF-16 code units.
func UnitLen(text string) int {
	n := 0
	for _, r := range text {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// CodepointLen returns the length of text in codepoints.
func CodepointLen(text string) int {
	n := 0
	for range text {
		n++
	}
	return n
}
