//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/praxis-labs/praxis/internal/catalog"
	"github.com/praxis-labs/praxis/internal/interact"
	"github.com/praxis-labs/praxis/internal/render"
	"github.com/praxis-labs/praxis/internal/scaffold"
	"github.com/praxis-labs/praxis/internal/workspace"
)

// testEnv holds the isolated directories one test scaffolds into.
type testEnv struct {
	Home string // PRAXIS_HOME: config and session logs
	Root string // parent directory for exercise workspaces
}

// setupTestEnv sandboxes the praxis home and workspace root in temp
// directories so nothing touches the real user environment.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Home: t.TempDir(),
		Root: t.TempDir(),
	}
	t.Setenv("PRAXIS_HOME", env.Home)
	return env
}

// stack is the wired slice of the application one run needs, assembled the
// same way the root command assembles it.
type stack struct {
	Catalog *catalog.Catalog
	Orch    *scaffold.Orchestrator
	Store   *workspace.Store
	Out     *bytes.Buffer
}

// buildStack loads a catalog document and wires an orchestrator over the
// sandboxed workspace root. Input scripts the interactive answers; an
// empty input with unattended mode never prompts.
func buildStack(t *testing.T, env *testEnv, catalogYAML, input string, mode interact.Mode) *stack {
	t.Helper()

	path := filepath.Join(env.Home, "course.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	renderer, err := render.New(cat.Templates)
	if err != nil {
		t.Fatalf("parsing templates: %v", err)
	}

	store := workspace.NewStore(env.Root)
	out := &bytes.Buffer{}

	return &stack{
		Catalog: cat,
		Store:   store,
		Out:     out,
		Orch: &scaffold.Orchestrator{
			Catalog:  cat,
			Renderer: renderer,
			Store:    store,
			Control:  interact.NewController(mode, strings.NewReader(input), out),
			Out:      out,
			RunID:    "it-" + time.Now().Format("150405"),
		},
	}
}

func assertFileContains(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), want) {
		t.Errorf("%s missing %q:\n%s", path, want, data)
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be absent", path)
	}
}
