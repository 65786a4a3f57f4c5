// Package types contains common types used across the application
package types

import "encoding/json"

// Label is the sentiment classification assigned to a text.
type Label string

// Possible sentiment labels.
const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Result represents a single sentiment analysis result.
type Result struct {
	Label   Label              `json:"label"`
	Score   float64            `json:"score"`
	Details map[string]float64 `json:"details"`
}

// BatchItem is one position in a batch response: either a Result or an
// error entry carrying the failure message and a truncated echo of the
// offending text. Exactly one of the two shapes is serialized.
type BatchItem struct {
	Result *Result
	Error  string
	Text   string
}

// errorEntry mirrors the wire shape of a failed batch position.
type errorEntry struct {
	Error string `json:"error"`
	Text  string `json:"text"`
}

// MarshalJSON serializes the item as a plain Result on success or as an
// {error, text} object on failure.
func (b BatchItem) MarshalJSON() ([]byte, error) {
	if b.Result != nil {
		return json.Marshal(b.Result)
	}
	return json.Marshal(errorEntry{Error: b.Error, Text: b.Text})
}

// UnmarshalJSON restores either shape. The presence of an "error" key
// decides which one; this keeps batch responses usable from client code
// such as the smoke test tool.
func (b *BatchItem) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if _, ok := probe["error"]; ok {
		var e errorEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*b = BatchItem{Error: e.Error, Text: e.Text}
		return nil
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*b = BatchItem{Result: &r}
	return nil
}
