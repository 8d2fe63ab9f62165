package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LockNestLim != 20 {
		t.Errorf("LockNestLim = %d, want 20", cfg.LockNestLim)
	}
	if !cfg.LogLocation {
		t.Error("LogLocation not on by default")
	}
	if cfg.FuncInvkLim != 2500 || cfg.FuncNestLim != 50 {
		t.Errorf("softcode limits = %d/%d, want 2500/50", cfg.FuncInvkLim, cfg.FuncNestLim)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mush.yaml")
	data := "lock_nest_lim: 5\nlog_location: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LockNestLim != 5 {
		t.Errorf("LockNestLim = %d, want 5", cfg.LockNestLim)
	}
	if cfg.LogLocation {
		t.Error("LogLocation not overridden")
	}
	// Untouched keys keep their defaults
	if cfg.FuncInvkLim != 2500 {
		t.Errorf("FuncInvkLim = %d, want default 2500", cfg.FuncInvkLim)
	}
}

func TestLoadFileRejectsBadLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mush.yaml")
	if err := os.WriteFile(path, []byte("lock_nest_lim: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("zero lock_nest_lim accepted")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
