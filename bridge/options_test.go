package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	textbridge "github.com/annotext/textbridge"
)

func TestReadSelectionOptions(t *testing.T) {
	t.Run("absent value yields defaults", func(t *testing.T) {
		assert.Equal(t, textbridge.SelectionOptions{}, ReadSelectionOptions(nil))
		assert.Equal(t, textbridge.SelectionOptions{}, ReadSelectionOptions([]byte{}))
	})

	t.Run("reads locales", func(t *testing.T) {
		opts := ReadSelectionOptions([]byte(`{"locales":"en-US,es"}`))
		assert.Equal(t, "en-US,es", opts.Locales)
	})

	t.Run("missing field reverts to defaults", func(t *testing.T) {
		assert.Equal(t, textbridge.SelectionOptions{}, ReadSelectionOptions([]byte(`{}`)))
	})

	t.Run("wrong kind reverts to defaults", func(t *testing.T) {
		assert.Equal(t, textbridge.SelectionOptions{}, ReadSelectionOptions([]byte(`{"locales":42}`)))
	})

	t.Run("malformed JSON reverts to defaults", func(t *testing.T) {
		assert.Equal(t, textbridge.SelectionOptions{}, ReadSelectionOptions([]byte(`{"locales"`)))
	})
}

func TestReadClassificationOptions(t *testing.T) {
	full := []byte(`{"locales":"en","reference_timezone":"Europe/Zurich","reference_time_ms_utc":1234}`)

	t.Run("reads all fields", func(t *testing.T) {
		opts := ReadClassificationOptions(full)
		assert.Equal(t, textbridge.ClassificationOptions{
			Locales:            "en",
			ReferenceTimezone:  "Europe/Zurich",
			ReferenceTimeMsUTC: 1234,
		}, opts)
	})

	t.Run("absent value yields defaults", func(t *testing.T) {
		assert.Equal(t, textbridge.ClassificationOptions{}, ReadClassificationOptions(nil))
	})

	t.Run("any missing field blanks the whole record", func(t *testing.T) {
		cases := [][]byte{
			[]byte(`{"reference_timezone":"UTC","reference_time_ms_utc":1}`),
			[]byte(`{"locales":"en","reference_time_ms_utc":1}`),
			[]byte(`{"locales":"en","reference_timezone":"UTC"}`),
		}
		for _, raw := range cases {
			assert.Equal(t, textbridge.ClassificationOptions{}, ReadClassificationOptions(raw),
				"raw=%s", raw)
		}
	})

	t.Run("wrong field kind blanks the whole record", func(t *testing.T) {
		raw := []byte(`{"locales":"en","reference_timezone":"UTC","reference_time_ms_utc":"soon"}`)
		assert.Equal(t, textbridge.ClassificationOptions{}, ReadClassificationOptions(raw))
	})
}

func TestReadAnnotationOptions(t *testing.T) {
	t.Run("reads all fields", func(t *testing.T) {
		raw := []byte(`{"locales":"de","reference_timezone":"UTC","reference_time_ms_utc":99}`)
		opts := ReadAnnotationOptions(raw)
		assert.Equal(t, textbridge.AnnotationOptions{
			Locales:            "de",
			ReferenceTimezone:  "UTC",
			ReferenceTimeMsUTC: 99,
		}, opts)
	})

	t.Run("partial data is never merged", func(t *testing.T) {
		raw := []byte(`{"locales":"de"}`)
		assert.Equal(t, textbridge.AnnotationOptions{}, ReadAnnotationOptions(raw))
	})
}
