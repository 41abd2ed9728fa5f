package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amonks/classwork/internal/config"
	"github.com/amonks/classwork/internal/testsupport"
)

func writeConfig(t *testing.T, home, content string) string {
	t.Helper()

	path := filepath.Join(home, ".config", "classwork", "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Scripts.Timeout.Duration != 10*time.Second {
		t.Errorf("Timeout = %s, expected 10s", cfg.Scripts.Timeout)
	}
	if !cfg.Scripts.Enabled {
		t.Error("expected scripts enabled by default")
	}
	if cfg.Agenda.DaysBefore != 3 || cfg.Agenda.DaysAfter != 10 || cfg.Agenda.RangeAfter != 24 {
		t.Errorf("unexpected agenda defaults %+v", cfg.Agenda)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	testsupport.SetupTestHome(t)

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoad_Full(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	writeConfig(t, home, `
[store]
path = "~/school/todolist"

[scripts]
dir = "/etc/classwork/scripts"
timeout = "2s"

[agenda]
days-before = 1
days-after = 5
range-after = 7
`)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Path != "~/school/todolist" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Scripts.Dir != "/etc/classwork/scripts" {
		t.Errorf("Scripts.Dir = %q", cfg.Scripts.Dir)
	}
	if cfg.Scripts.Timeout.Duration != 2*time.Second {
		t.Errorf("Scripts.Timeout = %s, expected 2s", cfg.Scripts.Timeout)
	}
	if !cfg.Scripts.Enabled {
		t.Error("expected scripts to stay enabled when the key is absent")
	}
	if cfg.Agenda.DaysBefore != 1 || cfg.Agenda.DaysAfter != 5 || cfg.Agenda.RangeAfter != 7 {
		t.Errorf("unexpected agenda %+v", cfg.Agenda)
	}
}

func TestLoad_ExplicitZeroOverridesDefault(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	writeConfig(t, home, `
[scripts]
enabled = false

[agenda]
days-before = 0
`)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scripts.Enabled {
		t.Error("expected scripts disabled")
	}
	if cfg.Agenda.DaysBefore != 0 {
		t.Errorf("DaysBefore = %d, expected 0", cfg.Agenda.DaysBefore)
	}
	if cfg.Agenda.DaysAfter != 10 {
		t.Errorf("DaysAfter = %d, expected default 10", cfg.Agenda.DaysAfter)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad toml", content: "[store\npath = 1", want: "parse config file"},
		{name: "bad duration", content: "[scripts]\ntimeout = \"soon\"", want: "parse config file"},
		{name: "unknown key", content: "[store]\nfile = \"x\"", want: "unknown key"},
		{name: "zero timeout", content: "[scripts]\ntimeout = \"0s\"", want: "must be positive"},
		{name: "negative days", content: "[agenda]\ndays-after = -1", want: "must not be negative"},
		{name: "short range", content: "[agenda]\nrange-after = 2", want: "must cover"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			home := testsupport.SetupTestHome(t)
			writeConfig(t, home, tc.content)

			_, err := config.Load("")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestListPath_Precedence(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	cfg := config.Default()

	path, err := cfg.ListPath("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(home, ".todolist") {
		t.Fatalf("expected default list path, got %s", path)
	}

	cfg.Store.Path = "~/from-config"
	if path, _ = cfg.ListPath(""); path != filepath.Join(home, "from-config") {
		t.Fatalf("expected config path, got %s", path)
	}

	t.Setenv(config.EnvListPath, "/from/env")
	if path, _ = cfg.ListPath(""); path != "/from/env" {
		t.Fatalf("expected env path, got %s", path)
	}

	if path, _ = cfg.ListPath("/from/flag"); path != "/from/flag" {
		t.Fatalf("expected flag path, got %s", path)
	}
}

func TestScriptsDir(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	cfg := config.Default()

	dir, err := cfg.ScriptsDir("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join(home, ".todolistrc") {
		t.Fatalf("expected default scripts dir, got %s", dir)
	}

	cfg.Scripts.Enabled = false
	if dir, _ = cfg.ScriptsDir(""); dir != "" {
		t.Fatalf("expected disabled scripts, got %s", dir)
	}

	t.Setenv(config.EnvScriptsDir, "/from/env")
	if dir, _ = cfg.ScriptsDir(""); dir != "/from/env" {
		t.Fatalf("expected env override to re-enable scripts, got %s", dir)
	}
	if dir, _ = cfg.ScriptsDir("/from/flag"); dir != "/from/flag" {
		t.Fatalf("expected flag override, got %s", dir)
	}
}
