package bridge

import (
	textbridge "github.com/annotext/textbridge"
	"github.com/annotext/textbridge/span"
)

// DatetimeRecord is the boundary form of a parsed datetime.
type DatetimeRecord struct {
	TimeMsUTC   int64 `json:"time_ms_utc"`
	Granularity int   `json:"granularity"`
}

// ClassificationRecord is the boundary form of one ranked classification
// result. Datetime and KnowledgePayload are omitted when the native
// result did not populate them; they are never emitted as zero-filled
// placeholders.
type ClassificationRecord struct {
	Collection       string          `json:"collection"`
	Score            float32         `json:"score"`
	Datetime         *DatetimeRecord `json:"datetime,omitempty"`
	KnowledgePayload []byte          `json:"knowledge_payload,omitempty"`
}

// AnnotationRecord is the boundary form of an annotated span. Begin and
// End are in the caller's code units.
type AnnotationRecord struct {
	Begin   int                    `json:"begin"`
	End     int                    `json:"end"`
	Results []ClassificationRecord `json:"results"`
}

// ClassificationRecords converts native results to boundary records.
// The output always has the input's length and order; empty input yields
// an empty, non-nil slice.
func ClassificationRecords(native []textbridge.ClassificationResult) []ClassificationRecord {
	records := make([]ClassificationRecord, 0, len(native))
	for _, r := range native {
		rec := ClassificationRecord{
			Collection: r.Collection,
			Score:      r.Score,
		}
		if r.Datetime != nil {
			rec.Datetime = &DatetimeRecord{
				TimeMsUTC:   r.Datetime.TimeMsUTC,
				Granularity: r.Datetime.Granularity,
			}
		}
		if len(r.SerializedKnowledge) > 0 {
			rec.KnowledgePayload = r.SerializedKnowledge
		}
		records = append(records, rec)
	}
	return records
}

// AnnotationRecords converts native annotated spans to boundary records,
// mapping each span from codepoints back to code units against text.
// The conversion must run over the original text the engine annotated,
// not any re-encoding of it.
func AnnotationRecords(native []textbridge.AnnotatedSpan, text string) []AnnotationRecord {
	records := make([]AnnotationRecord, 0, len(native))
	for _, a := range native {
		unitSpan := span.Convert(text, a.Span, span.CodepointsToUnits)
		records = append(records, AnnotationRecord{
			Begin:   unitSpan.Begin,
			End:     unitSpan.End,
			Results: ClassificationRecords(a.Classification),
		})
	}
	return records
}
