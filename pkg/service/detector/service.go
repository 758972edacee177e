package detector

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/utils/logging"
)

const (
	// DefaultTimeout bounds one generation call
	DefaultTimeout = 15 * time.Second

	// maxAttempts is the total attempt budget per analysis, including
	// the first call. Retries are sequential, never parallel.
	maxAttempts = 3
)

// Service orchestrates one analysis: prompt construction, bounded
// generation calls with retry, response validation, aggregation and
// classification. It holds no per-request state; concurrent Analyze
// calls share only the LLM client handle.
type Service struct {
	llm      gollem.LLMClient
	timeout  time.Duration
	guidance string
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithTimeout overrides the per-call generation timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithGuidance appends per-deployment guidance to the system prompt
func WithGuidance(guidance string) Option {
	return func(s *Service) {
		s.guidance = guidance
	}
}

// New creates a new detector Service with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (*Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	s := &Service{
		llm:     llmClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Result is the outcome of one successful analysis
type Result struct {
	Indicators []*model.Indicator
	Assessment *model.Assessment
}

// Analyze runs the full detection pipeline for the given content.
// It makes one to three generation calls and returns either a complete
// result or a terminal error; there is no partial outcome.
func (s *Service) Analyze(ctx context.Context, content *model.Content) (*Result, error) {
	if content == nil || content.Text == "" {
		return nil, model.ErrContentEmpty
	}
	if content.Length() > model.MaxContentLength {
		return nil, goerr.Wrap(model.ErrContentTooLong, "content too long",
			goerr.V("length", content.Length()))
	}

	system, err := buildSystemPrompt(s.guidance)
	if err != nil {
		return nil, err
	}
	user := buildUserPrompt(content.Text)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		indicators, err := s.generate(ctx, system, user, content.Length())
		if err == nil {
			scores := aggregateScores(indicators)
			return &Result{
				Indicators: indicators,
				Assessment: model.NewAssessment(scores),
			}, nil
		}

		// The caller abandoned the request: abort instead of burning
		// further billed calls on a dead request.
		if ctx.Err() != nil {
			return nil, goerr.Wrap(ctx.Err(), "analysis aborted")
		}

		lastErr = err
		logging.From(ctx).Warn("analysis attempt failed",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err.Error(),
		)
	}

	// Mixed failure kinds across attempts are classified by the final
	// attempt's failure.
	if errors.Is(lastErr, errMalformedResponse) {
		return nil, goerr.Wrap(ErrExternalMalformed, "analysis failed",
			goerr.V("attempts", maxAttempts), goerr.V("cause", lastErr.Error()))
	}
	return nil, goerr.Wrap(ErrExternalUnavailable, "analysis failed",
		goerr.V("attempts", maxAttempts), goerr.V("cause", lastErr.Error()))
}

// generate performs one bounded generation call and validates its output
func (s *Service) generate(ctx context.Context, system, user string, contentLength int) ([]*model.Indicator, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session, err := s.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(responseSchema()),
		gollem.WithSessionSystemPrompt(system),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(user))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.Wrap(errMalformedResponse, "generation returned no text")
	}

	return parseResponse(ctx, resp.Texts[0], contentLength)
}
