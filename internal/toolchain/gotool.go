package toolchain

import (
	"context"
	"io"
	"path/filepath"
)

// GoTool materializes and verifies Go projects.
type GoTool struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Materialize initializes a Go module in dir. The module path is derived
// from the directory name; learners rename it when they publish.
func (g *GoTool) Materialize(ctx context.Context, dir string) (*Output, error) {
	module := "praxis.local/" + filepath.Base(dir)
	return runCommand(ctx, dir, g.Stdout, g.Stderr, "go", "mod", "init", module)
}

// Verify compiles every package in the workspace.
func (g *GoTool) Verify(ctx context.Context, dir string) (*Output, error) {
	return runCommand(ctx, dir, g.Stdout, g.Stderr, "go", "build", "./...")
}
