// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist/internal/board"
	"github.com/nibzard/tasklist/internal/session"
	"github.com/nibzard/tasklist/internal/store"
	"github.com/nibzard/tasklist/internal/ui"
)

// setup isolates config lookup, captures output and returns the working
// directory the commands run in.
func setup(t *testing.T) (dir string, out, errOut *bytes.Buffer) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{
		"TASKLIST_STORE", "TASKLIST_REQUIRE_STORE", "TASKLIST_ALLOW_BLANK",
		"TASKLIST_TICK_MS", "TASKLIST_LOG_FILE", "TASKLIST_LOG_LEVEL",
		"TASKLIST_LOG_FORMAT", "TASKLIST_LOG_TIMESTAMPS", "TASKLIST_LOG_CALLER",
	} {
		t.Setenv(name, "")
	}

	dir = t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr = prevOut, prevErr
	})
	return dir, out, errOut
}

func writeStore(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "TODO.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readStore(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		_, out, _ := setup(t)
		if err := Run(context.Background(), []string{"--help"}); err != nil {
			t.Fatalf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out.String(), "Commands:") {
			t.Errorf("usage not printed: %q", out.String())
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		_, out, _ := setup(t)
		if err := Run(context.Background(), []string{"help"}); err != nil {
			t.Fatalf("expected no error with help command, got %v", err)
		}
		if !strings.Contains(out.String(), "-store") {
			t.Errorf("usage missing global flags: %q", out.String())
		}
	})

	t.Run("shows version", func(t *testing.T) {
		for _, args := range [][]string{{"--version"}, {"-v"}, {"version"}} {
			_, out, _ := setup(t)
			if err := Run(context.Background(), args); err != nil {
				t.Fatalf("%v: %v", args, err)
			}
			if !strings.Contains(out.String(), "tasklist version "+Version) {
				t.Errorf("%v: got %q", args, out.String())
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		setup(t)
		err := Run(context.Background(), []string{"unknown-command"})
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("invalid config is reported", func(t *testing.T) {
		setup(t)
		err := Run(context.Background(), []string{"-tick-ms", "0", "ls"})
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestAddThenList(t *testing.T) {
	dir, out, _ := setup(t)
	ctx := context.Background()

	if err := Run(ctx, []string{"add", "buy", "milk"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := Run(ctx, []string{"add", "write report"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got, want := readStore(t, filepath.Join(dir, "TODO.json")), "[\"buy milk\",\"write report\"]\n"; got != want {
		t.Fatalf("store: got %q, want %q", got, want)
	}

	out.Reset()
	if err := Run(ctx, []string{"ls"}); err != nil {
		t.Fatalf("ls: %v", err)
	}
	if got, want := out.String(), "1. buy milk\n2. write report\n"; got != want {
		t.Errorf("ls: got %q, want %q", got, want)
	}

	out.Reset()
	if err := Run(ctx, []string{"ls", "-json"}); err != nil {
		t.Fatalf("ls -json: %v", err)
	}
	if got, want := out.String(), "[\"buy milk\",\"write report\"]\n"; got != want {
		t.Errorf("ls -json: got %q, want %q", got, want)
	}
}

func TestListEmpty(t *testing.T) {
	_, out, _ := setup(t)
	if err := Run(context.Background(), []string{"ls"}); err != nil {
		t.Fatalf("ls: %v", err)
	}
	if !strings.Contains(out.String(), "No pending tasks") {
		t.Errorf("ls: got %q", out.String())
	}
}

func TestAddBlankPolicy(t *testing.T) {
	dir, _, _ := setup(t)
	ctx := context.Background()

	if err := Run(ctx, []string{"add", "  "}); err == nil {
		t.Fatal("expected blank task to be rejected")
	}
	if _, err := os.Stat(filepath.Join(dir, "TODO.json")); !os.IsNotExist(err) {
		t.Errorf("rejected add wrote the store: %v", err)
	}

	if err := Run(ctx, []string{"-allow-blank", "add", "  "}); err != nil {
		t.Fatalf("add with -allow-blank: %v", err)
	}
	if got := readStore(t, filepath.Join(dir, "TODO.json")); got != "[\"  \"]\n" {
		t.Errorf("store: got %q", got)
	}
}

func TestAddRequiresText(t *testing.T) {
	setup(t)
	if err := Run(context.Background(), []string{"add"}); err == nil {
		t.Fatal("expected error for add without text")
	}
}

func TestCorruptStoreFails(t *testing.T) {
	dir, _, _ := setup(t)
	path := writeStore(t, dir, `{"not":"an array"}`)

	for _, args := range [][]string{{"ls"}, {"add", "x"}} {
		err := Run(context.Background(), args)
		if !errors.Is(err, store.ErrCorrupt) {
			t.Errorf("%v: got %v, want ErrCorrupt", args, err)
		}
	}
	if got := readStore(t, path); got != `{"not":"an array"}` {
		t.Errorf("corrupt store was overwritten: %q", got)
	}
}

func TestRequireStore(t *testing.T) {
	setup(t)
	t.Setenv("TASKLIST_REQUIRE_STORE", "true")
	if err := Run(context.Background(), []string{"ls"}); err == nil {
		t.Fatal("expected missing store to fail with require_store")
	}
}

func TestStoreFlag(t *testing.T) {
	dir, _, _ := setup(t)
	if err := Run(context.Background(), []string{"-store", "nested/tasks.json", "add", "x"}); err == nil {
		t.Fatal("expected save into a missing directory to fail")
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := Run(context.Background(), []string{"-store", "nested/tasks.json", "add", "x"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := readStore(t, filepath.Join(dir, "nested", "tasks.json")); got != "[\"x\"]\n" {
		t.Errorf("store: got %q", got)
	}
}

func TestConfigCommand(t *testing.T) {
	dir, out, _ := setup(t)
	if err := os.WriteFile(filepath.Join(dir, "tasklist.toml"), []byte("allow_blank = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKLIST_LOG_LEVEL", "debug")

	if err := Run(context.Background(), []string{"-tick-ms", "100", "config"}); err != nil {
		t.Fatalf("config: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"# config file: tasklist.toml",
		`"true"`,
		"# project file",
		`"debug"`,
		"# environment",
		`"100"`,
		"# flag",
		"# default",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("config output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := Run(context.Background(), []string{"config", "example"}); err != nil {
		t.Fatalf("config example: %v", err)
	}
	if !strings.Contains(out.String(), "store_file = \"TODO.json\"") {
		t.Errorf("example config: got %q", out.String())
	}
}

func stubTUI(t *testing.T, fn func(ctx context.Context, sess *session.Session) error) {
	t.Helper()
	prev := runTUI
	runTUI = func(ctx context.Context, sess *session.Session, _ ...ui.TUIOption) error {
		return fn(ctx, sess)
	}
	t.Cleanup(func() { runTUI = prev })
}

func TestTUICommandQuitSaves(t *testing.T) {
	dir, _, _ := setup(t)
	path := writeStore(t, dir, `["a","b","c"]`)

	stubTUI(t, func(_ context.Context, sess *session.Session) error {
		for _, cmd := range []session.Command{
			{Kind: session.MoveNext},
			{Kind: session.CompleteSelected},
			{Kind: session.BeginAddItem},
			session.Commit("d"),
		} {
			sess.Dispatch(cmd)
		}
		_, err := sess.Dispatch(session.Command{Kind: session.Quit})
		return err
	})

	if err := Run(context.Background(), nil); err != nil {
		t.Fatalf("tui: %v", err)
	}
	if got, want := readStore(t, path), "[\"a\",\"c\",\"d\"]\n"; got != want {
		t.Errorf("store: got %q, want %q", got, want)
	}
}

func TestTUICommandInterruptSaves(t *testing.T) {
	dir, _, _ := setup(t)
	path := writeStore(t, dir, `["a","b"]`)

	ctx, cancel := context.WithCancel(context.Background())
	stubTUI(t, func(ctx context.Context, sess *session.Session) error {
		sess.Dispatch(session.Command{Kind: session.RemoveSelected})
		cancel()
		<-ctx.Done()
		return errors.New("program was killed")
	})

	err := Run(ctx, []string{"tui"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("tui: got %v, want context.Canceled", err)
	}
	if got, want := readStore(t, path), "[\"b\"]\n"; got != want {
		t.Errorf("store: got %q, want %q", got, want)
	}
}

func TestTUICommandSavesWhenProgramStopsWithoutQuit(t *testing.T) {
	termErr := errors.New("terminal gone")
	tests := []struct {
		name    string
		runErr  error
		wantErr error
	}{
		{"clean exit", nil, nil},
		{"interrupted", tea.ErrInterrupted, context.Canceled},
		{"program error", termErr, termErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, _, _ := setup(t)
			path := writeStore(t, dir, `["a","b"]`)

			stubTUI(t, func(_ context.Context, sess *session.Session) error {
				sess.Dispatch(session.Command{Kind: session.RemoveSelected})
				return tt.runErr
			})

			err := Run(context.Background(), nil)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("tui: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("tui: got %v, want %v", err, tt.wantErr)
			}
			if got, want := readStore(t, path), "[\"b\"]\n"; got != want {
				t.Errorf("store: got %q, want %q", got, want)
			}
		})
	}
}

func TestTUICommandWithoutTerminalWritesNothing(t *testing.T) {
	dir, _, _ := setup(t)

	stubTUI(t, func(context.Context, *session.Session) error {
		return ui.ErrNoTTY
	})

	if err := Run(context.Background(), nil); !errors.Is(err, ui.ErrNoTTY) {
		t.Fatalf("tui: got %v, want ErrNoTTY", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "TODO.json")); !os.IsNotExist(err) {
		t.Errorf("store file created without a terminal: %v", err)
	}
}

func TestAddRejectsInvalidUTF8(t *testing.T) {
	dir, _, _ := setup(t)
	path := writeStore(t, dir, `["a"]`)

	err := Run(context.Background(), []string{"add", "bad\xffbyte"})
	if !errors.Is(err, board.ErrInvalidText) {
		t.Fatalf("add: got %v, want ErrInvalidText", err)
	}
	if got := readStore(t, path); got != `["a"]` {
		t.Errorf("store changed: %q", got)
	}
}

func TestTUICommandLogsToFile(t *testing.T) {
	dir, _, errOut := setup(t)
	logPath := filepath.Join(dir, "logs", "tasklist.log")

	stubTUI(t, func(_ context.Context, sess *session.Session) error {
		_, err := sess.Dispatch(session.Command{Kind: session.Quit})
		return err
	})

	if err := Run(context.Background(), []string{"-log-file", logPath}); err != nil {
		t.Fatalf("tui: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(data), "saved tasks") {
		t.Errorf("log file missing save entry: %q", data)
	}
	if errOut.Len() != 0 {
		t.Errorf("tui wrote to stderr: %q", errOut.String())
	}
}
