package toolchain

import (
	"context"
	"io"
)

// NodeTool materializes and verifies Node.js projects.
type NodeTool struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Materialize creates a default package.json in dir.
func (n *NodeTool) Materialize(ctx context.Context, dir string) (*Output, error) {
	return runCommand(ctx, dir, n.Stdout, n.Stderr, "npm", "init", "-y")
}

// Verify resolves and installs the project's dependencies, which is the
// closest Node equivalent of a build.
func (n *NodeTool) Verify(ctx context.Context, dir string) (*Output, error) {
	return runCommand(ctx, dir, n.Stdout, n.Stderr, "npm", "install")
}
