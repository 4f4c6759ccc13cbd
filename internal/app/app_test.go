package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/termvim/internal/logging"
)

func TestNewUsesDefaultsWhenConfigMissing(t *testing.T) {
	a, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.cfg.Nvim.Command != "nvim" {
		t.Errorf("command = %q, want nvim", a.cfg.Nvim.Command)
	}
	if a.cfg.Grid.Width != 80 || a.cfg.Grid.Height != 25 {
		t.Errorf("grid = %dx%d, want 80x25", a.cfg.Grid.Width, a.cfg.Grid.Height)
	}
}

func TestNewAppliesFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "termvim.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	logPath := filepath.Join(dir, "termvim.log")
	a, err := New(Options{ConfigPath: path, LogLevel: "debug", LogFile: logPath})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer a.logFile.Close()

	if a.cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want flag override debug", a.cfg.Log.Level)
	}
	a.log.Debug("visible at debug")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected debug output in log file")
	}
}

func TestNewRunsScript(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "rc.lua")
	script := `
termvim.set("grid_width", 120)
termvim.map("<C-s>", ":w<CR>")
`
	if err := os.WriteFile(rc, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		ScriptPath: rc,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.cfg.Grid.Width != 120 {
		t.Errorf("grid width = %d, want 120 from script", a.cfg.Grid.Width)
	}
	if got := a.mappings["<C-s>"]; got != ":w<CR>" {
		t.Errorf("mapping = %q, want :w<CR>", got)
	}
}

func TestNewRejectsBrokenScript(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "rc.lua")
	if err := os.WriteFile(rc, []byte(`termvim.set("no_such_option", 1)`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		ScriptPath: rc,
	})
	if err == nil {
		t.Fatal("expected error for unknown script option")
	}
}

func TestGridRowsReservesStatusRow(t *testing.T) {
	if got := gridRows(25); got != 24 {
		t.Errorf("gridRows(25) = %d, want 24", got)
	}
	if got := gridRows(1); got != 1 {
		t.Errorf("gridRows(1) = %d, want 1", got)
	}
}

func TestLoggerDiscardsWithoutFile(t *testing.T) {
	a, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.logFile != nil {
		t.Error("no log file configured, expected nil handle")
	}
	if a.log == nil {
		t.Fatal("expected a logger even when discarding")
	}
	a.log.SetLevel(logging.LevelDebug)
	a.log.Debug("goes nowhere")
}
