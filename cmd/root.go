package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/isaacvp2/pokerproj/appconfig"
)

// app is the state shared by every subcommand once the root pre-run has loaded it.
type app struct {
	configPath string
	cfg        *appconfig.AppConfig
	logger     *slog.Logger
	prompt     prompter
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(ptermPrompter{})
}

func newRootCmd(p prompter) *cobra.Command {
	a := &app{prompt: p}
	root := &cobra.Command{
		Use:           "pokerproj",
		Short:         "Heads-up Texas Hold'em equity by Monte Carlo simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "yaml, toml or env config file")
	root.SetUsageTemplate(root.UsageTemplate() + "\nEnvironment:\n" + appconfig.Usage() + "\n")

	root.AddCommand(
		newOddsCmd(a),
		newEvalCmd(a),
		newDatasetCmd(a),
	)
	return root
}

func (a *app) load() error {
	envErr := godotenv.Load()
	cfg, err := appconfig.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	level, _ := cfg.SlogLevel()
	a.cfg = cfg
	a.logger = slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel(level))))
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		a.logger.Warn("failed to load .env", "error", envErr)
	}
	return nil
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case level <= slog.LevelWarn:
		return pterm.LogLevelWarn
	}
	return pterm.LogLevelError
}

// Execute runs the command tree; ctx is cancelled on interrupt by the caller.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
