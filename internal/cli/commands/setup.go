// Package commands implements the edtext subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/edtext-labs/edtext/internal/cli/config"
	"github.com/edtext-labs/edtext/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the shared dependencies from the command's
// context: the loaded configuration, the logger, and a renderer bound to the
// command's output streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.ParseMode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the configuration loaded by the root command, or the
// built-in defaults when a command runs without the root (tests, mostly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := config.Default()
	if v := os.Getenv("EDTEXT_OUTPUT"); v != "" {
		cfg.OutputFormat = v
	}
	return cfg
}
