package model

import (
	"strings"

	"golang.org/x/text/language"

	textbridge "github.com/annotext/textbridge"
)

// Metadata is the caller-visible description of a model file.
// The zero value is what every accessor reports for an unreadable source.
type Metadata struct {
	Name    string
	Locales string // comma-separated BCP 47 tags
	Version int32
}

// ReadMetadata opens src read-only and returns its metadata. Any failure
// (unmappable source, bad magic, truncated header) yields the zero
// Metadata; it never returns an error to the caller.
func ReadMetadata(src textbridge.Source) Metadata {
	m, err := Map(src)
	if err != nil {
		return Metadata{}
	}
	defer m.Close()

	meta, err := parseHeader(m.Bytes())
	if err != nil {
		return Metadata{}
	}
	return meta
}

// LocaleTags parses the comma-separated locales field into BCP 47 tags,
// skipping entries that do not parse.
func (m Metadata) LocaleTags() []language.Tag {
	if m.Locales == "" {
		return nil
	}
	var tags []language.Tag
	for _, raw := range strings.Split(m.Locales, ",") {
		tag, err := language.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// Supports reports whether the model covers the given locale, using
// standard language matching over the model's declared tags.
func (m Metadata) Supports(tag language.Tag) bool {
	tags := m.LocaleTags()
	if len(tags) == 0 {
		return false
	}
	_, _, conf := language.NewMatcher(tags).Match(tag)
	return conf != language.No
}
