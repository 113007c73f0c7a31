// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the studynotes CLI. Each workflow of
// the study assistant is a subcommand: bootstrap, ask, notes, and history.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/studynotes/internal/config"
	"github.com/pdiddy/studynotes/internal/logging"
	"github.com/pdiddy/studynotes/internal/secrets"
	"github.com/pdiddy/studynotes/internal/session"
	"github.com/pdiddy/studynotes/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// appConfig is resolved once per invocation in PersistentPreRunE.
	appConfig types.Config
	logger    = logging.Discard()
)

// rootCmd is the base command for the studynotes CLI.
var rootCmd = &cobra.Command{
	Use:   "studynotes",
	Short: "Turn a lecture PDF into a Q&A tutor and study notes",
	Long: `studynotes extracts the text of a lecture PDF, answers questions about it
with a chat-completion model, and generates structured study notes.

Run bootstrap once to process the PDF, then use ask for questions and
notes to produce Markdown, JSON, or YAML notes under data/notes/.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./studynotes.yaml or ~/.config/studynotes/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error (default info)")
	flags.String("data-dir", "", "root directory for processed text, notes, and the ledger (default data)")

	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("data_dir", flags.Lookup("data-dir"))
}

// loadConfig resolves .env, the config file, and .secrets/ into appConfig.
// Validation is left to the commands that need the completion API.
func loadConfig(cmd *cobra.Command, args []string) error {
	if _, err := secrets.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}

	v := viper.GetViper()
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.ReadFile(v, cfgFile)
	if err != nil {
		return err
	}

	found, err := secrets.Load(".secrets", logging.Discard())
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}

	cfg, err := config.Load(v, found)
	if err != nil {
		return err
	}
	appConfig = cfg
	logger = logging.New(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	if used != "" {
		logger.Debug("using config file", "path", used)
	}
	if len(found) > 0 {
		keys := make([]string, 0, len(found))
		for k := range found {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logger.Debug("loaded secrets", "keys", keys)
	}
	return nil
}

// newSession builds the session for commands that talk to the model.
func newSession() (*session.Session, error) {
	return session.New(appConfig, session.Deps{Logger: logger})
}

// exitCode maps the result of a command to the process exit status. An
// interrupt is a clean exit with the conventional 130.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// After the first signal, restore default handling so a second
		// one kills the process even if a command is still blocked.
		<-ctx.Done()
		stop()
	}()

	err := rootCmd.ExecuteContext(ctx)
	stop()
	code := exitCode(err)
	if code == 1 {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(code)
}
