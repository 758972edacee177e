package detector

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
	"github.com/biaslens-dev/biaslens/pkg/utils/logging"
)

// rawIndicator mirrors the wire shape of one candidate entry. Every
// field is untrusted: entries decode individually so that one bad
// entry never poisons the batch.
type rawIndicator struct {
	Text        string   `json:"text"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
	StartPos    int      `json:"start_pos"`
	EndPos      int      `json:"end_pos"`
	Explanation string   `json:"explanation"`
	Suggestions []string `json:"suggestions"`
}

// parseResponse validates the raw generation output and normalizes the
// surviving entries into indicators. Individual entries that fail
// validation are dropped silently; the whole response is malformed
// (retryable) only when it cannot be decoded at all, or when entries
// were claimed but none survived.
func parseResponse(ctx context.Context, raw string, contentLength int) ([]*model.Indicator, error) {
	var envelope struct {
		BiasIndicators []json.RawMessage `json:"bias_indicators"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, goerr.Wrap(errMalformedResponse, "response is not decodable",
			goerr.V("response", raw))
	}

	indicators := make([]*model.Indicator, 0, len(envelope.BiasIndicators))
	for i, entry := range envelope.BiasIndicators {
		ind, err := validateEntry(entry, contentLength)
		if err != nil {
			logging.From(ctx).Debug("dropping invalid bias indicator",
				"index", i, "reason", err.Error())
			continue
		}
		indicators = append(indicators, ind)
	}

	// Claimed indicators but none survived: the output is unusable as a
	// whole. An empty well-formed list is a valid "no bias found" result.
	if len(indicators) == 0 && len(envelope.BiasIndicators) > 0 {
		return nil, goerr.Wrap(errMalformedResponse, "no indicator survived validation",
			goerr.V("claimed", len(envelope.BiasIndicators)))
	}

	return indicators, nil
}

// validateEntry checks one candidate entry and normalizes it into an
// Indicator. Returns an error describing why the entry must be dropped.
func validateEntry(entry json.RawMessage, contentLength int) (*model.Indicator, error) {
	var raw rawIndicator
	if err := json.Unmarshal(entry, &raw); err != nil {
		// Covers non-numeric confidence, non-integer positions and
		// other shape mismatches.
		return nil, goerr.Wrap(err, "entry is not decodable")
	}

	category, err := types.ParseCategory(raw.Category)
	if err != nil {
		return nil, err
	}

	// Out-of-range confidence is rounding noise from the generation
	// service, not a reason to lose the entry.
	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	if raw.StartPos < 0 || raw.StartPos >= raw.EndPos || raw.EndPos > contentLength {
		return nil, goerr.New("span out of range",
			goerr.V("start_pos", raw.StartPos),
			goerr.V("end_pos", raw.EndPos),
			goerr.V("content_length", contentLength),
		)
	}

	if raw.Explanation == "" {
		return nil, goerr.New("explanation is required")
	}

	suggestions := make([]string, 0, len(raw.Suggestions))
	for _, s := range raw.Suggestions {
		if s != "" {
			suggestions = append(suggestions, s)
		}
	}
	if len(suggestions) == 0 {
		return nil, goerr.New("at least one suggestion is required")
	}

	return &model.Indicator{
		Text:        raw.Text,
		Category:    category,
		Confidence:  confidence,
		StartPos:    raw.StartPos,
		EndPos:      raw.EndPos,
		Explanation: raw.Explanation,
		Suggestions: suggestions,
	}, nil
}
