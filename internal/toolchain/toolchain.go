// Package toolchain shells out to the two external collaborators the
// scaffolder depends on: the project materializer (creates an initial
// empty project skeleton) and the build verifier (compiles the result).
// Neither is implemented here beyond the invocation; their diagnostic
// output is surfaced verbatim.
package toolchain

import (
	"context"
	"fmt"

	"github.com/praxis-labs/praxis/internal/catalog"
)

// Tool prepares and checks a workspace for one project type.
type Tool interface {
	// Materialize produces an initial empty project skeleton in dir.
	Materialize(ctx context.Context, dir string) (*Output, error)
	// Verify attempts to build the project in dir.
	Verify(ctx context.Context, dir string) (*Output, error)
}

// Output captures the result of one external tool invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports whether the invocation exited cleanly.
func (o *Output) Ok() bool { return o != nil && o.ExitCode == 0 }

// Dispatch returns the appropriate Tool implementation for the given
// project type. Returns an error-producing tool for unknown values.
func Dispatch(projectType string) Tool {
	switch projectType {
	case catalog.ProjectGo:
		return &GoTool{}
	case catalog.ProjectNode:
		return &NodeTool{}
	case catalog.ProjectNone:
		return &NoneTool{}
	default:
		return &unknownTool{name: projectType}
	}
}

// NoneTool is the no-op tool for exercises that are not a buildable
// project (plain notes, configuration files).
type NoneTool struct{}

func (*NoneTool) Materialize(context.Context, string) (*Output, error) {
	return &Output{ExitCode: 0}, nil
}

func (*NoneTool) Verify(context.Context, string) (*Output, error) {
	return &Output{ExitCode: 0}, nil
}

// unknownTool is returned when the project type is not recognized.
type unknownTool struct {
	name string
}

func (u *unknownTool) Materialize(context.Context, string) (*Output, error) {
	return nil, u.err()
}

func (u *unknownTool) Verify(context.Context, string) (*Output, error) {
	return nil, u.err()
}

func (u *unknownTool) err() error {
	return fmt.Errorf("unknown project type %q: supported types are %q, %q, and %q",
		u.name, catalog.ProjectGo, catalog.ProjectNode, catalog.ProjectNone)
}
