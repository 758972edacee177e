package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/biaslens-dev/biaslens/pkg/cli/config"
)

func configureLogger(t *testing.T, args []string) error {
	t.Helper()

	var loggerCfg config.Logger
	var configureErr error
	cmd := &cli.Command{
		Name:  "test",
		Flags: loggerCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			closer, err := loggerCfg.Configure()
			if err != nil {
				configureErr = err
				return nil
			}
			closer()
			return nil
		},
	}

	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()
	return configureErr
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		gt.NoError(t, configureLogger(t, nil))
	})

	t.Run("json format to stderr", func(t *testing.T) {
		gt.NoError(t, configureLogger(t, []string{"--log-format", "json", "--log-output", "stderr"}))
	})

	t.Run("log file is created", func(t *testing.T) {
		path := t.TempDir() + "/app.log"
		gt.NoError(t, configureLogger(t, []string{"--log-output", path}))
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		gt.Error(t, configureLogger(t, []string{"--log-level", "loud"}))
	})

	t.Run("invalid format is rejected", func(t *testing.T) {
		gt.Error(t, configureLogger(t, []string{"--log-format", "xml"}))
	})
}
