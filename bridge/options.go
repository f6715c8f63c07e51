package bridge

import (
	"github.com/tidwall/gjson"

	textbridge "github.com/annotext/textbridge"
)

// Options adapters read a foreign options value, carried as JSON bytes,
// into one of the fixed option records. An absent value (nil or empty)
// yields the record's all-default value immediately.
//
// Reads are fail-closed: if any required field is missing or has the
// wrong JSON kind, the whole record reverts to defaults — partial data is
// never merged with defaults. Callers were compatibility-tested against
// this all-or-nothing behavior; switch the helpers below to per-field
// defaulting only with evidence that nothing depends on it.

// ReadSelectionOptions reads selection options from raw.
func ReadSelectionOptions(raw []byte) textbridge.SelectionOptions {
	if len(raw) == 0 {
		return textbridge.SelectionOptions{}
	}
	locales := gjson.GetBytes(raw, "locales")
	if locales.Type != gjson.String {
		return textbridge.SelectionOptions{}
	}
	return textbridge.SelectionOptions{Locales: locales.String()}
}

// ReadClassificationOptions reads classification options from raw.
func ReadClassificationOptions(raw []byte) textbridge.ClassificationOptions {
	locales, timezone, timeMs, ok := readTimedFields(raw)
	if !ok {
		return textbridge.ClassificationOptions{}
	}
	return textbridge.ClassificationOptions{
		Locales:            locales,
		ReferenceTimezone:  timezone,
		ReferenceTimeMsUTC: timeMs,
	}
}

// ReadAnnotationOptions reads annotation options from raw.
func ReadAnnotationOptions(raw []byte) textbridge.AnnotationOptions {
	locales, timezone, timeMs, ok := readTimedFields(raw)
	if !ok {
		return textbridge.AnnotationOptions{}
	}
	return textbridge.AnnotationOptions{
		Locales:            locales,
		ReferenceTimezone:  timezone,
		ReferenceTimeMsUTC: timeMs,
	}
}

func readTimedFields(raw []byte) (locales, timezone string, timeMs int64, ok bool) {
	if len(raw) == 0 {
		return "", "", 0, false
	}

	localesRes := gjson.GetBytes(raw, "locales")
	timezoneRes := gjson.GetBytes(raw, "reference_timezone")
	timeRes := gjson.GetBytes(raw, "reference_time_ms_utc")

	if localesRes.Type != gjson.String ||
		timezoneRes.Type != gjson.String ||
		timeRes.Type != gjson.Number {
		return "", "", 0, false
	}

	return localesRes.String(), timezoneRes.String(), timeRes.Int(), true
}
