package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// MaxContentLength is the maximum number of characters accepted for analysis
const MaxContentLength = 10000

// Content validation errors. These are precondition failures: no
// analysis call is made when either is returned.
var (
	ErrContentEmpty   = goerr.New("content text is empty")
	ErrContentTooLong = goerr.New("content text exceeds maximum length")
)

// Content is an immutable piece of submitted text to analyze
type Content struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContent validates the submitted text and returns a Content with
// the submission timestamp set to now. Whitespace-only text counts as
// empty: there is nothing to analyze in it.
func NewContent(text string) (*Content, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrContentEmpty
	}
	if len([]rune(text)) > MaxContentLength {
		return nil, goerr.Wrap(ErrContentTooLong, "content too long",
			goerr.V("length", len([]rune(text))),
			goerr.V("max", MaxContentLength),
		)
	}

	return &Content{
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Length returns the content length in characters (not bytes).
// Indicator span positions are character offsets against this length.
func (c *Content) Length() int {
	return len([]rune(c.Text))
}
