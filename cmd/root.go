// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/board"
	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/session"
	"github.com/nibzard/tasklist/internal/store"
	"github.com/nibzard/tasklist/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// runTUI is replaced in tests, which have no terminal.
var runTUI = ui.RunTUI

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand means the interactive UI.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand runs the interactive board. Pending tasks are saved however
// the program stops.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	// The UI owns the terminal, so logs go to a file or nowhere.
	logger := logging.Discard()
	if cfg.LogFile != "" {
		fileLogger, closer, err := logging.OpenFile(cfg.LogFile, loggingOptions(cfg))
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = fileLogger
	}

	st := newStore(cfg)
	items, err := st.Load()
	if err != nil {
		return err
	}
	logger.Info("loaded tasks", "path", st.Path(), "pending", len(items))

	sess := session.New(board.New(items, board.AllowBlank(cfg.AllowBlank)), st, logger)
	runErr := runTUI(ctx, sess, ui.WithTickInterval(cfg.TickInterval()))
	if errors.Is(runErr, ui.ErrNoTTY) {
		return runErr
	}

	// Interrupts and program errors end the UI without a saved quit.
	if !sess.Saved() {
		if !sess.Done() {
			logger.Warn("ui stopped without quitting, saving", "err", runErr)
		}
		if err := sess.Quit(); err != nil {
			return err
		}
	}

	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(runErr, tea.ErrInterrupted):
		return context.Canceled
	}
	return runErr
}

// lsCommand prints the pending tasks with 1-based indexes.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print the stored JSON array")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	items, err := newStore(cfg).Load()
	if err != nil {
		return err
	}

	if *asJSON {
		data, err := store.Encode(items)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(stdout, "No pending tasks.")
		return nil
	}
	for i, item := range items {
		fmt.Fprintf(stdout, "%d. %s\n", i+1, item)
	}
	return nil
}

// addCommand appends one task built from the remaining arguments and saves.
func addCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("add requires task text")
	}
	text := strings.Join(args, " ")

	logger, closer, err := commandLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	st := newStore(cfg)
	items, err := st.Load()
	if err != nil {
		return err
	}

	b := board.New(items, board.AllowBlank(cfg.AllowBlank))
	if err := b.AddTask(text); err != nil {
		if errors.Is(err, board.ErrBlankTask) {
			return fmt.Errorf("task text is blank (set allow_blank to accept it)")
		}
		return err
	}
	if err := st.Save(b.PendingItems()); err != nil {
		return err
	}
	logger.Debug("task added", "path", st.Path(), "pending", b.Pending().Len())

	fmt.Fprintf(stdout, "Added: %s\n", text)
	return nil
}

// configCommand prints the effective configuration and where each value
// came from, or an example config file.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	if len(args) > 0 {
		if args[0] == "example" && len(args) == 1 {
			fmt.Fprint(stdout, config.ExampleConfig())
			return nil
		}
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	cfg := cws.Config
	values := map[string]string{
		"store_file":       cfg.StoreFile,
		"require_store":    fmt.Sprint(cfg.RequireStore),
		"allow_blank":      fmt.Sprint(cfg.AllowBlank),
		"tick_interval_ms": fmt.Sprint(cfg.TickIntervalMS),
		"log_file":         cfg.LogFile,
		"log_level":        cfg.LogLevel,
		"log_format":       cfg.LogFormat,
		"log_timestamps":   fmt.Sprint(cfg.LogTimestamps),
		"log_caller":       fmt.Sprint(cfg.LogCaller),
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(stdout, "# config file: %s\n", file)
	}
	for _, k := range keys {
		fmt.Fprintf(stdout, "%-17s = %-40q # %s\n", k, values[k], cws.Sources[k])
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "tasklist version %s\n", Version)
	return nil
}

func newStore(cfg *config.Config) *store.Store {
	return store.New(cfg.StoreFile, store.RequireExisting(cfg.RequireStore))
}

func loggingOptions(cfg *config.Config) logging.Options {
	return logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// commandLogger logs to log_file when set, otherwise to stderr.
func commandLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	if cfg.LogFile != "" {
		return logging.OpenFile(cfg.LogFile, loggingOptions(cfg))
	}
	return logging.New(stderr, loggingOptions(cfg)), nopCloser{}, nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - a two-pane terminal task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Interactive board (default command)")
	fmt.Fprintln(w, "  ls [-json]       List pending tasks")
	fmt.Fprintln(w, "  add <text...>    Append a pending task")
	fmt.Fprintln(w, "  config [example] Show effective config, or print an example file")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keys:")
	fmt.Fprintln(w, "  ↓/j ↑/k  move    n  new task    enter/esc  save/cancel new task")
	fmt.Fprintln(w, "  c  complete     r  remove      y  copy    ?  help    q  save & quit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
