package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/praxis-labs/praxis/internal/branding"
	"github.com/praxis-labs/praxis/internal/config"
)

// Subdirectories of the praxis home directory.
const (
	LogsDir = "logs"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// LogsPath returns the session log directory, e.g. ~/.praxis/logs.
func LogsPath() string {
	return filepath.Join(config.Dir(), LogsDir)
}

// LogFilePath returns the session log file, e.g. ~/.praxis/logs/praxis.log.
func LogFilePath() string {
	return filepath.Join(LogsPath(), branding.CLIName()+".log")
}

// WorkspaceRoot resolves the parent directory for exercise workspaces:
// the explicit override when non-empty, then the configured
// workspace_root, then the current directory.
func WorkspaceRoot(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if v := config.Get(config.KeyWorkspaceRoot); v != "" {
		return v, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving current directory: %w", err)
	}
	return cwd, nil
}

// CatalogPath resolves the external catalog file to load: the explicit
// override when non-empty, then the configured path. Empty means the
// embedded default catalog.
func CatalogPath(override string) string {
	if override != "" {
		return override
	}
	return config.Get(config.KeyCatalog)
}
