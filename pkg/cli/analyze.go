package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/biaslens-dev/biaslens/pkg/cli/config"
	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
	"github.com/biaslens-dev/biaslens/pkg/service/detector"
	"github.com/biaslens-dev/biaslens/pkg/utils/safe"
)

func cmdAnalyze() *cli.Command {
	var input string
	var analysisTimeout time.Duration
	var appCfg config.App
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Input file to analyze (\"-\" for stdin)",
			Value:       "-",
			Destination: &input,
		},
		&cli.DurationFlag{
			Name:        "analysis-timeout",
			Usage:       "Timeout for a single LLM generation call",
			Value:       detector.DefaultTimeout,
			Sources:     cli.EnvVars("BIASLENS_ANALYSIS_TIMEOUT"),
			Destination: &analysisTimeout,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Analyze a single text and print the report as JSON",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			text, err := readInput(ctx, input)
			if err != nil {
				return err
			}

			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize LLM client")
			}

			detectorSvc, err := detector.New(llmClient,
				detector.WithTimeout(analysisTimeout),
				detector.WithGuidance(app.GuidanceText()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize detector service")
			}

			content, err := model.NewContent(text)
			if err != nil {
				return err
			}

			result, err := detectorSvc.Analyze(ctx, content)
			if err != nil {
				return goerr.Wrap(err, "analysis failed")
			}

			report := model.NewReport(types.UserID("cli"), content, result.Indicators, result.Assessment)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return goerr.Wrap(err, "failed to encode report")
			}

			return nil
		},
	}
}

func readInput(ctx context.Context, input string) (string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read from stdin")
		}
		return string(data), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Open(input)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open input file", goerr.V("path", input))
	}
	defer safe.Close(ctx, f)

	data, err := io.ReadAll(f)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read input file", goerr.V("path", input))
	}
	return string(data), nil
}
