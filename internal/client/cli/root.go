// Package cli implements the qaforum command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/qaforum/internal/client/app"
	"github.com/iudanet/qaforum/internal/client/iocli"
	"github.com/iudanet/qaforum/internal/config"
)

// Options - внешние зависимости команд; нулевые поля заменяются значениями по умолчанию
type Options struct {
	IO        iocli.IO
	LogOutput io.Writer
	Now       func() time.Time
	OpenApp   func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, error)
}

// env - состояние одного запуска CLI
type env struct {
	opts      Options
	app       *app.App
	cfgPath   string
	overrides config.Overrides
}

// Run executes the command line args and releases every resource it opened
func Run(ctx context.Context, args []string, version string, opts Options) error {
	e := newEnv(opts)

	cmd := NewRootCommand(e, version)
	cmd.SetArgs(args)
	cmd.SetOut(e.opts.IO.Out())
	cmd.SetErr(e.opts.LogOutput)

	err := cmd.ExecuteContext(ctx)
	if cerr := e.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newEnv(opts Options) *env {
	if opts.IO == nil {
		opts.IO = iocli.NewStdio()
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OpenApp == nil {
		opts.OpenApp = app.Open
	}
	return &env{opts: opts}
}

// NewRootCommand creates the root command
func NewRootCommand(e *env, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "qaforum",
		Short:         "Command-line client for the Q&A forum",
		Long:          "Vote on questions and answers and manage notifications. Changes are shown immediately and reverted if the server does not confirm them.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.persist(cmd.Context())
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&e.cfgPath, "config", config.Path(), "path to config file")
	cmd.PersistentFlags().StringVar(&e.overrides.ServerURL, "server", "", "server URL (overrides config)")
	cmd.PersistentFlags().StringVar(&e.overrides.Token, "token", "", "access token (overrides stored token)")
	cmd.PersistentFlags().StringVar(&e.overrides.DBPath, "db", "", "path to local database")
	cmd.PersistentFlags().StringVar(&e.overrides.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(newLoginCommand(e))
	cmd.AddCommand(newLogoutCommand(e))
	cmd.AddCommand(newShowCommand(e))
	cmd.AddCommand(newVoteCommand(e))
	cmd.AddCommand(newNotificationsCommand(e))

	return cmd
}

func (e *env) setup(ctx context.Context) error {
	cfg, err := config.Load(e.cfgPath, e.overrides)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(e.opts.LogOutput, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	a, err := e.opts.OpenApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	e.app = a

	if err := a.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	return nil
}

func (e *env) persist(ctx context.Context) error {
	if e.app == nil {
		return nil
	}
	return e.app.Persist(ctx)
}

func (e *env) close() error {
	if e.app == nil {
		return nil
	}
	return e.app.Close()
}

func (e *env) out() io.Writer {
	return e.opts.IO.Out()
}
