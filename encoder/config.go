package encoder

import (
	"encoding/json"
	"fmt"

	"github.com/annotext/textbridge/errors"
)

// MatcherType selects the piece-lookup algorithm variant. The bridge
// never interprets it; it travels inside the opaque config blob.
type MatcherType uint8

const (
	MatcherMappedTrie MatcherType = iota
	MatcherSortedStringTable
)

func (t MatcherType) String() string {
	switch t {
	case MatcherMappedTrie:
		return "MAPPED_TRIE"
	case MatcherSortedStringTable:
		return "SORTED_STRING_TABLE"
	default:
		return fmt.Sprintf("MatcherType(%d)", uint8(t))
	}
}

// MarshalJSON encodes the matcher type by name.
func (t MatcherType) MarshalJSON() ([]byte, error) {
	switch t {
	case MatcherMappedTrie, MatcherSortedStringTable:
		return json.Marshal(t.String())
	default:
		return nil, errors.InvalidInput(errors.PhaseEncoder, "unknown matcher type")
	}
}

// UnmarshalJSON decodes a matcher type name.
func (t *MatcherType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(errors.PhaseEncoder, errors.KindInvalidData, err, "matcher_type")
	}
	switch s {
	case "MAPPED_TRIE":
		*t = MatcherMappedTrie
	case "SORTED_STRING_TABLE":
		*t = MatcherSortedStringTable
	default:
		return errors.InvalidData(errors.PhaseEncoder, []string{"matcher_type"}, "unknown matcher type "+s)
	}
	return nil
}

// Config is the text-encoder configuration schema. The bridge builds and
// serializes it but never interprets it; the external text encoder
// consumes the blob opaquely.
type Config struct {
	StartCode                   int32       `json:"start_code"`
	EndCode                     int32       `json:"end_code"`
	EncodingOffset              int32       `json:"encoding_offset"`
	UnknownCode                 int32       `json:"unknown_code"`
	UnknownScore                float32     `json:"unknown_score"`
	NormalizationCharsmap       []byte      `json:"normalization_charsmap,omitempty"`
	NormalizationCharsmapValues []byte      `json:"normalization_charsmap_values,omitempty"`
	AddDummyPrefix              bool        `json:"add_dummy_prefix"`
	RemoveExtraWhitespaces      bool        `json:"remove_extra_whitespaces"`
	EscapeWhitespaces           bool        `json:"escape_whitespaces"`
	PiecesScores                []float32   `json:"pieces_scores,omitempty"`
	Pieces                      []byte      `json:"pieces,omitempty"`
	PiecesOffsets               []uint32    `json:"pieces_offsets,omitempty"`
	Matcher                     MatcherType `json:"matcher_type"`
}

// Default returns the schema's default configuration.
func Default() Config {
	return Config{
		StartCode:              0,
		EndCode:                1,
		EncodingOffset:         2,
		UnknownCode:            -1,
		AddDummyPrefix:         true,
		RemoveExtraWhitespaces: true,
		EscapeWhitespaces:      true,
		Matcher:                MatcherMappedTrie,
	}
}

// Marshal serializes the config into the opaque blob consumed by
// Engine.InitializeKnowledgeEngine.
func (c Config) Marshal() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncoder, errors.KindInvalidData, err, "marshal encoder config")
	}
	return b, nil
}

// Unmarshal decodes a serialized config blob.
func Unmarshal(b []byte) (Config, error) {
	c := Default()
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, errors.Wrap(errors.PhaseEncoder, errors.KindInvalidData, err, "unmarshal encoder config")
	}
	return c, nil
}
