package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/discuss-feed/internal/config"
	"github.com/dtnitsch/discuss-feed/models"
)

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// QuietFlag lowers logging to errors only.
var QuietFlag = &cli.BoolFlag{
	Name:    "quiet",
	Aliases: []string{"q"},
	Usage:   "Only log errors",
}

// FormatFlag selects JSON or YAML output.
var FormatFlag = &cli.StringFlag{
	Name:  "format",
	Value: FormatJSON,
	Usage: "Output format: json or yaml",
}

// NewLogger returns a JSON logger on stderr at Info, or Error with --quiet.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig loads the project configuration from the process environment.
func LoadConfig() (*models.Config, error) {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Print writes v to w as indented JSON or YAML.
func Print(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
