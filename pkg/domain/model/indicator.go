package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

// Indicator is one detected instance of biased phrasing: a span of the
// submitted text plus its classification, explanation and suggested
// rewrites. Indicators are produced only by the response validator and
// are immutable once created.
type Indicator struct {
	Text        string         `json:"text" firestore:"text"`
	Category    types.Category `json:"category" firestore:"category"`
	Confidence  float64        `json:"confidence" firestore:"confidence"`
	StartPos    int            `json:"start_pos" firestore:"start_pos"`
	EndPos      int            `json:"end_pos" firestore:"end_pos"`
	Explanation string         `json:"explanation" firestore:"explanation"`
	Suggestions []string       `json:"suggestions" firestore:"suggestions"`
}

// Validate checks the indicator invariants against the given content
// length in characters.
func (x *Indicator) Validate(contentLength int) error {
	if !x.Category.IsValid() {
		return goerr.New("invalid indicator category", goerr.V("category", x.Category))
	}
	if x.Confidence < 0 || x.Confidence > 1 {
		return goerr.New("indicator confidence out of range", goerr.V("confidence", x.Confidence))
	}
	if x.StartPos < 0 || x.StartPos >= x.EndPos || x.EndPos > contentLength {
		return goerr.New("indicator span out of range",
			goerr.V("start_pos", x.StartPos),
			goerr.V("end_pos", x.EndPos),
			goerr.V("content_length", contentLength),
		)
	}
	if x.Explanation == "" {
		return goerr.New("indicator explanation is required")
	}
	if len(x.Suggestions) == 0 {
		return goerr.New("indicator requires at least one suggestion")
	}
	for _, s := range x.Suggestions {
		if s == "" {
			return goerr.New("indicator suggestion cannot be empty")
		}
	}
	return nil
}
