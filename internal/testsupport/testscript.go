package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amonks/classwork/internal/config"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce     sync.Once
	classworkPath string
	buildErr      error
)

// BuildClasswork builds the classwork binary once and returns its path.
func BuildClasswork(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "classwork-bin-")
		if err != nil {
			buildErr = err
			return
		}

		classworkPath = filepath.Join(binDir, "classwork")
		cmd := exec.Command("go", "build", "-o", classworkPath, "./cmd/classwork")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build classwork: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return classworkPath
}

// SetupScriptEnv configures common environment variables for testscript.
// Scripts run in UTC with color disabled.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("CLASSWORK", BuildClasswork(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TZ", "UTC")
	env.Setenv("NO_COLOR", "1")
	env.Setenv(config.EnvListPath, "")
	env.Setenv(config.EnvScriptsDir, "")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdUIDOf finds an assignment by name in `assignment list --json` output
// and stores its uid in an env var.
func CmdUIDOf(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("uidof does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: uidof FILE NAME VAR")
	}

	var items []struct {
		UID  string `json:"uid"`
		Name string `json:"name"`
	}
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse assignment list: %v", err)
	}

	name := args[1]
	for _, item := range items {
		if item.Name == name {
			ts.Setenv(args[2], item.UID)
			return
		}
	}

	ts.Fatalf("assignment named %q not found", name)
}

// CmdDateOffset stores today's date shifted by DAYS, as YYYY-MM-DD, in an
// env var.
func CmdDateOffset(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("dateoffset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: dateoffset VAR DAYS")
	}

	days, err := strconv.Atoi(args[1])
	if err != nil {
		ts.Fatalf("parse days: %v", err)
	}
	ts.Setenv(args[0], time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02"))
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
