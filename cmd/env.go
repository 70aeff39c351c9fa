package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/config"
	"github.com/learninglab/bitlab/internal/curriculum"
	"github.com/learninglab/bitlab/internal/logger"
	"github.com/learninglab/bitlab/internal/prefs"
	"github.com/learninglab/bitlab/internal/progress"
	"github.com/learninglab/bitlab/internal/store"
)

// env is everything a command needs: config, logger, storage and the
// services built on it.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	tracker *progress.Tracker
	prefs   *prefs.Service
}

type envOptions struct {
	// logFile sends logs to a file beside the database so they do not
	// draw over the TUI.
	logFile bool
}

// openEnv loads config, applies flag overrides and opens the learner's data.
func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	registry, err := resolveRegistry(cfg)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	ephemeral, _ := cmd.Flags().GetBool("ephemeral")

	dbPath := ""
	logDir := os.TempDir()
	if !ephemeral {
		if dbPath, err = resolveDBPath(cfg); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		logDir = filepath.Dir(dbPath)
	}

	logPath := ""
	if opts.logFile {
		logPath = filepath.Join(logDir, "bitlab.log")
	}
	if e.logger, err = newLogger(cmd, cfg, logPath); err != nil {
		return nil, err
	}

	var kv store.KV = store.NewMemory()
	if !ephemeral {
		if e.store, err = store.Open(dbPath); err != nil {
			_ = e.logger.Sync()
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.logger.Debug("store opened", zap.String("path", dbPath))
		kv = e.store.KV()
	}

	e.tracker = progress.NewTracker(registry, progress.NewCompletionStore(kv, progress.WithLogger(e.logger)))
	e.prefs = prefs.NewService(kv, e.logger)
	return e, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() error {
	_ = e.logger.Sync()
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// applyFlagOverrides lets explicit flags win over environment variables.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Logging.Level = l
	}
}

// resolveDBPath returns the configured database path, then the default
// XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func resolveRegistry(cfg *config.Config) (*curriculum.Registry, error) {
	if cfg.CatalogPath == "" {
		return curriculum.Default(), nil
	}
	registry, err := curriculum.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	return registry, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config, path string) (*zap.Logger, error) {
	var outputs []string
	if path != "" {
		outputs = append(outputs, path)
	}
	l, err := logger.New(cfg.Logging.Level, logFormatFor(cmd), outputs...)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l, nil
}
