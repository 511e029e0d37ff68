package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/praxis-labs/praxis/internal/config"
)

// Default content for config.yaml. Every key is commented out; the file
// exists so users can discover what is configurable.
const defaultConfigContent = `# praxis user configuration.
# workspace_root: ~/exercises
# catalog: ~/courses/go-course.yaml
# auto: false
`

// InitGlobal creates the praxis home directory structure.
// It prints progress messages to w. Existing items are skipped with a message.
func InitGlobal(w io.Writer) error {
	if err := ensureDir(w, config.Dir(), DirPermNormal); err != nil {
		return err
	}

	if err := ensureDir(w, LogsPath(), DirPermNormal); err != nil {
		return err
	}

	if err := ensureFile(w, config.FilePath(), defaultConfigContent, FilePermNormal); err != nil {
		return err
	}

	return nil
}

// EnsureQuiet creates the home and log directories without progress
// output. Called at the start of every run so the session log has a
// place to land.
func EnsureQuiet() error {
	if err := os.MkdirAll(LogsPath(), DirPermNormal); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
