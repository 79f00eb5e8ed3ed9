package bootstrap

import (
	"fmt"
	"path/filepath"

	coreconfig "github.com/huutien/storebot/core/config"
	"github.com/huutien/storebot/core/logger"
	"github.com/huutien/storebot/core/storage"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	EnsureDir  func(path string) error
}

// Result exposes infrastructure prepared by the bootstrap pipeline.
type Result struct {
	SnapshotPath string
	ExportDir    string
}

// Run initializes the logger and prepares the on-disk storage layout.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	ensureDir := opts.EnsureDir
	if ensureDir == nil {
		ensureDir = storage.EnsureDir
	}

	snapshotPath := opts.Config.Storage.SnapshotPath
	if err := ensureDir(filepath.Dir(snapshotPath)); err != nil {
		return nil, fmt.Errorf("bootstrap: snapshot dir failed: %w", err)
	}

	exportDir := opts.Config.Storage.ExportDir
	if err := ensureDir(exportDir); err != nil {
		return nil, fmt.Errorf("bootstrap: export dir failed: %w", err)
	}

	return &Result{
		SnapshotPath: snapshotPath,
		ExportDir:    exportDir,
	}, nil
}
