package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

// App holds the CLI flag for the optional application config file
type App struct {
	path string
}

// Flags returns CLI flags for application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to application config file (TOML)",
			Sources:     cli.EnvVars("BIASLENS_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the application config file, or returns an empty
// config when no file is specified.
func (a *App) Configure() (*AppConfig, error) {
	if a.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(a.path)
}

// AppConfig represents the application configuration
type AppConfig struct {
	// Guidance is appended to the detection prompt for deployment
	// specific instructions (domain vocabulary, tone of explanations).
	Guidance string `toml:"guidance"`

	Categories []Category `toml:"category"`
}

// Category describes one detection category for prompt enrichment.
// The ID must be one of the fixed category identifiers.
type Category struct {
	ID          string `toml:"id"`
	Description string `toml:"description"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	if _, err := types.ParseCategory(c.ID); err != nil {
		return goerr.Wrap(err, "invalid category ID", goerr.V(CategoryIDKey, c.ID))
	}
	if c.Description == "" {
		return goerr.New("category description is required", goerr.V(CategoryIDKey, c.ID))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	categoryIDs := make(map[string]bool)
	for _, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category")
		}
		if categoryIDs[cat.ID] {
			return goerr.New("duplicate category ID", goerr.V(CategoryIDKey, cat.ID))
		}
		categoryIDs[cat.ID] = true
	}

	return nil
}

// GuidanceText composes the prompt guidance from the free-form
// guidance plus per-category descriptions.
func (a *AppConfig) GuidanceText() string {
	var parts []string
	if a.Guidance != "" {
		parts = append(parts, a.Guidance)
	}
	for _, cat := range a.Categories {
		parts = append(parts, fmt.Sprintf("%s: %s", cat.ID, cat.Description))
	}
	return strings.Join(parts, "\n")
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}
