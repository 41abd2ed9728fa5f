package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomeDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	home, err := HomeDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if home != filepath.Join("/tmp", "test-home") {
		t.Fatalf("expected %s, got %s", filepath.Join("/tmp", "test-home"), home)
	}
}

func TestDefaultsUseHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	cases := []struct {
		name     string
		fn       func() (string, error)
		expected string
	}{
		{"list", DefaultListPath, filepath.Join("/tmp", "test-home", ".todolist")},
		{"scripts", DefaultScriptsDir, filepath.Join("/tmp", "test-home", ".todolistrc")},
		{"config", DefaultConfigPath, filepath.Join("/tmp", "test-home", ".config", "classwork", "config.toml")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	cases := map[string]string{
		"~":              filepath.Join("/tmp", "test-home"),
		"~/lists/school": filepath.Join("/tmp", "test-home", "lists", "school"),
		"/abs/path":      "/abs/path",
		"relative":       "relative",
		"~other/path":    "~other/path",
	}
	for input, expected := range cases {
		got, err := ExpandHome(input)
		if err != nil {
			t.Fatalf("ExpandHome(%q): expected no error, got %v", input, err)
		}
		if got != expected {
			t.Fatalf("ExpandHome(%q): expected %s, got %s", input, expected, got)
		}
	}
}

func TestResolveWithDefault(t *testing.T) {
	t.Run("returns override when provided", func(t *testing.T) {
		result, err := ResolveWithDefault("/custom/path", DefaultListPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result != "/custom/path" {
			t.Fatalf("expected /custom/path, got %s", result)
		}
	})

	t.Run("expands home in override", func(t *testing.T) {
		t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

		result, err := ResolveWithDefault("~/school.json", DefaultListPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		expected := filepath.Join("/tmp", "test-home", "school.json")
		if result != expected {
			t.Fatalf("expected %s, got %s", expected, result)
		}
	})

	t.Run("calls default function when override is empty", func(t *testing.T) {
		t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

		result, err := ResolveWithDefault("", DefaultListPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := filepath.Join("/tmp", "test-home", ".todolist")
		if result != expected {
			t.Fatalf("expected %s, got %s", expected, result)
		}
	})

	t.Run("propagates error from default function", func(t *testing.T) {
		errorFn := func() (string, error) {
			return "", os.ErrNotExist
		}

		_, err := ResolveWithDefault("", errorFn)
		if err != os.ErrNotExist {
			t.Fatalf("expected os.ErrNotExist, got %v", err)
		}
	})
}
