package detector

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

//go:embed prompt/system.md
var systemPromptTmpl string

var systemPrompt = template.Must(template.New("system").Parse(systemPromptTmpl))

// buildSystemPrompt renders the fixed detection instruction. The
// optional per-deployment guidance may add context but never changes
// the category set or the confidence range.
func buildSystemPrompt(guidance string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Guidance string
	}{
		Guidance: guidance,
	}
	if err := systemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute system prompt template")
	}
	return buf.String(), nil
}

// buildUserPrompt wraps the submitted text. Pure function of the input.
func buildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following text for implicit bias.\n\n")
	sb.WriteString("## Text\n\n")
	sb.WriteString(text)
	sb.WriteString("\n")
	return sb.String()
}

// responseSchema constrains the generation output to the indicator
// enumeration shape the validator parses.
func responseSchema() *gollem.Parameter {
	categories := make([]string, 0, len(types.AllCategories()))
	for _, c := range types.AllCategories() {
		categories = append(categories, c.String())
	}

	return &gollem.Parameter{
		Title:       "BiasDetectionResponse",
		Description: "Enumeration of implicit bias indicators found in the text",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"bias_indicators": {
				Type:        gollem.TypeArray,
				Description: "All detected bias indicators, empty if the text is unbiased",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"text": {
							Type:        gollem.TypeString,
							Description: "The biased passage copied from the input",
							Required:    true,
						},
						"category": {
							Type:        gollem.TypeString,
							Description: fmt.Sprintf("One of: %s", strings.Join(categories, ", ")),
							Enum:        categories,
							Required:    true,
						},
						"confidence": {
							Type:        gollem.TypeNumber,
							Description: "Certainty between 0 and 1",
							Required:    true,
						},
						"start_pos": {
							Type:        gollem.TypeInteger,
							Description: "0-based character offset of the passage start",
							Required:    true,
						},
						"end_pos": {
							Type:        gollem.TypeInteger,
							Description: "Character offset just past the passage end",
							Required:    true,
						},
						"explanation": {
							Type:        gollem.TypeString,
							Description: "Why the passage is biased",
							Required:    true,
						},
						"suggestions": {
							Type:        gollem.TypeArray,
							Description: "Neutral alternative phrasings, at least one",
							Items:       &gollem.Parameter{Type: gollem.TypeString},
							Required:    true,
						},
					},
				},
			},
		},
	}
}
