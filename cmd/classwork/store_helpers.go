package main

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/classwork/internal/config"
	"github.com/amonks/classwork/tracker"
)

// settings are the resolved locations and options for one invocation.
type settings struct {
	config     *config.Config
	listPath   string
	scriptsDir string
	logger     *log.Logger
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return nil, err
	}

	listPath, err := cfg.ListPath(rootListPath)
	if err != nil {
		return nil, err
	}

	scriptsDir := ""
	if !rootNoScripts {
		scriptsDir, err = cfg.ScriptsDir(rootScriptsDir)
		if err != nil {
			return nil, err
		}
	}

	logger := log.New(io.Discard, "", 0)
	if rootVerbose {
		logger = log.New(cmd.ErrOrStderr(), "classwork: ", 0)
	}

	return &settings{
		config:     cfg,
		listPath:   listPath,
		scriptsDir: scriptsDir,
		logger:     logger,
	}, nil
}

func (s *settings) openOptions() tracker.OpenOptions {
	return tracker.OpenOptions{
		ScriptsDir:    s.scriptsDir,
		ScriptTimeout: s.config.Scripts.Timeout.Duration,
		Location:      time.Local,
		Logger:        s.logger,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// withStore opens the list, runs fn, and saves on every exit path.
func withStore(cmd *cobra.Command, fn func(*tracker.Store, *settings) error) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	s.logger.Printf("list %s, scripts %q", s.listPath, s.scriptsDir)
	return tracker.With(commandContext(cmd), s.listPath, s.openOptions(), func(store *tracker.Store) error {
		return fn(store, s)
	})
}
