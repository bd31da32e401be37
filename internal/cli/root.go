package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/config"
	"github.com/idilsaglam/todolists/internal/store"
	"github.com/idilsaglam/todolists/internal/store/jsonstore"
	"github.com/idilsaglam/todolists/internal/store/sqlitestore"
	"github.com/idilsaglam/todolists/internal/tui"
	"github.com/idilsaglam/todolists/internal/ui"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	// logSink is the TUI log file; runTUI closes it on every return path.
	logSink io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{cfg: config.Defaults()}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Named todo lists, in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo lists new "Groceries"
  todo items add "Buy milk"
  todo items done 1
  todo items ls --group
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := app.cfg.Resolve()
		if err != nil {
			return usageError{msg: err.Error()}
		}
		app.cfg = cfg

		// Forcing first: the mono theme switches colour off on its own.
		ui.SetColorForcing(cfg.Color == "always", cfg.Color == "never")
		ui.SetTheme(cfg.Theme)
		ui.DetectColor(cmd.OutOrStdout())

		// No subcommand => TUI, which owns the terminal; log to a file instead.
		if !cmd.HasParent() {
			f, err := cfg.OpenLogFile()
			if err != nil {
				return err
			}
			app.logSink = f
			app.log = cfg.NewLogger(f)
		} else {
			app.log = cfg.NewLogger(cmd.ErrOrStderr())
		}
		slog.SetDefault(app.log)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.cfg.Dir, "dir", app.cfg.Dir, "Data directory (default ~/.todolists; env TODO_DIR)")
	cmd.PersistentFlags().StringVar(&app.cfg.Backend, "store", app.cfg.Backend, "Storage backend: json|sqlite (env TODO_STORE)")
	cmd.PersistentFlags().StringVar(&app.cfg.Theme, "theme", app.cfg.Theme, "Output theme: classic|neon|mono (env TODO_THEME)")
	cmd.PersistentFlags().StringVar(&app.cfg.LogFormat, "log-format", app.cfg.LogFormat, "Log format: text|json (env TODO_LOG_FORMAT)")
	cmd.PersistentFlags().StringVar(&app.cfg.Color, "color", app.cfg.Color, "Colour output: auto|always|never (env TODO_COLOR)")
	cmd.PersistentFlags().StringVar(&app.cfg.LogLevel, "log-level", app.cfg.LogLevel, "Log level: debug|info|warn|error (env TODO_LOG_LEVEL)")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newItemsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	defer app.closeLogSink()
	return app.withStore(cmd.Context(), func(s *store.Store) error {
		return tui.Run(cmd.Context(), s, tui.Options{Logger: app.log})
	})
}

func (app *App) closeLogSink() {
	if app.logSink == nil {
		return
	}
	if err := app.logSink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "todo: close log file: %v\n", err)
	}
	app.logSink = nil
}

// withStore opens the configured backend, loads the list store and hands
// it to fn. The backend is closed when fn returns.
func (app *App) withStore(ctx context.Context, fn func(s *store.Store) error) error {
	var (
		b      store.Backend
		closer io.Closer
	)
	switch app.cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlitestore.OpenDir(ctx, app.cfg.Dir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		b, closer = db, db
	default:
		js, err := jsonstore.OpenDir(app.cfg.Dir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		if js.Recovered != "" {
			app.log.Warn("state file was corrupt; moved aside and starting empty", "path", js.Recovered)
		}
		b, closer = js, js
	}
	defer func() {
		if err := closer.Close(); err != nil {
			app.log.Error("failed to close store", "error", err)
		}
	}()

	s, err := store.Open(ctx, b, store.Options{Logger: app.log})
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return fn(s)
}

// Execute runs the root command against os.Args and returns the process
// exit code. Errors are printed to stderr with their hint, if any.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(cmd.ErrOrStderr(), err.Error())
	if h := Hint(err); h != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Dim("hint: "+h))
	}
	return ExitCode(err)
}
