package scaffold

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-labs/praxis/internal/catalog"
	"github.com/praxis-labs/praxis/internal/errs"
	"github.com/praxis-labs/praxis/internal/interact"
	"github.com/praxis-labs/praxis/internal/render"
	"github.com/praxis-labs/praxis/internal/resolve"
	"github.com/praxis-labs/praxis/internal/toolchain"
	"github.com/praxis-labs/praxis/internal/workspace"
)

const courseFixture = `
version: "1"
templates:
  banner: "// {{.title}} ({{.exercise}})\npackage {{.pkg}}\n"
modules:
  - name: basics
    title: Go Basics
    exercises:
      - id: step-one
        title: Step One
        workspace: playground
        project_type: go
        artifacts:
          - path: main.go
            purpose: entry point
            template: banner
            params:
              pkg: main
          - path: NOTES.md
            purpose: exercise notes
            content: "step one notes\n"
      - id: step-two
        title: Step Two
        workspace: playground
        project_type: go
        predecessor: step-one
        artifacts:
          - path: two.go
            purpose: second file
            content: "package main\n"
      - id: plain
        title: Plain Notes
        workspace: notes-ws
        artifacts:
          - path: notes.txt
            purpose: plain text
            content: "hello\n"
`

var frozenTime = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func TestRunFreshUnattended(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	assert.Equal(t, resolve.ActionCreateFresh, sum.Action)
	assert.Equal(t, []string{"main.go", "NOTES.md"}, sum.Created)
	assert.Empty(t, sum.Skipped)
	assert.Equal(t, StateCompleted, sum.State)

	data, err := run.store.ReadArtifact("playground", "main.go")
	require.NoError(t, err)
	assert.Equal(t, "// Step One (step-one)\npackage main\n", string(data))

	m, ok := run.store.ReadMarker("playground")
	require.True(t, ok, "completed run must leave a marker")
	assert.Equal(t, "step-one", m.Exercise)
	assert.Equal(t, "Step One", m.Title)
	assert.True(t, m.AppliedAt.Equal(frozenTime), "AppliedAt = %v, want %v", m.AppliedAt, frozenTime)
	assert.Equal(t, "run-1", m.RunID)

	require.Len(t, run.tool.materialized, 1)
	assert.Equal(t, run.store.Dir("playground"), run.tool.materialized[0])
	assert.Len(t, run.tool.verified, 1)

	out := run.out.String()
	assert.Contains(t, out, "step-one: Step One")
	assert.Contains(t, out, "creating workspace")
	assert.Contains(t, out, "✓ main.go (entry point)")
	assert.Contains(t, out, "step-one applied: 2 created, 0 skipped")
}

func TestRunChainReuse(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	_, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	next := run.again(t, "", interact.ModeUnattended)
	sum, err := next.orch.Run(context.Background(), "step-two")
	require.NoError(t, err)

	assert.Equal(t, resolve.ActionReuse, sum.Action)
	assert.Contains(t, next.out.String(), "reusing workspace")
	assert.Contains(t, next.out.String(), "(last applied: step-one)")

	// Reuse extends the directory in place: no second materialize.
	assert.Empty(t, next.tool.materialized)
	assert.Len(t, next.tool.verified, 1)

	m, ok := next.store.ReadMarker("playground")
	require.True(t, ok)
	assert.Equal(t, "step-two", m.Exercise)

	// step-one's files survive alongside step-two's.
	assert.True(t, next.store.FileExists("playground", "main.go"))
	assert.True(t, next.store.FileExists("playground", "two.go"))
}

func TestRunRerunIsIdempotent(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	_, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	next := run.again(t, "", interact.ModeUnattended)
	sum, err := next.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	assert.Equal(t, resolve.ActionReuse, sum.Action)
	assert.Equal(t, []string{"main.go", "NOTES.md"}, sum.Created)

	m, ok := next.store.ReadMarker("playground")
	require.True(t, ok)
	assert.Equal(t, "step-one", m.Exercise)
}

func TestRunUnattendedConflictFails(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	seedForeignWorkspace(t, run.store, "playground")

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.Error(t, err)

	assert.Equal(t, errs.CodeConflict, errs.CodeOf(err))
	assert.Contains(t, err.Error(), "--auto")
	assert.Equal(t, StateAborted, sum.State)

	// Nothing was touched: sentinel intact, no backup, no marker change.
	assert.True(t, run.store.FileExists("playground", "precious.txt"))
	assert.Empty(t, run.tool.materialized)
	m, ok := run.store.ReadMarker("playground")
	require.True(t, ok)
	assert.Equal(t, "someone-else", m.Exercise)
}

func TestRunConflictRefused(t *testing.T) {
	run := newRun(t, "n\n", interact.ModeInteractive)
	seedForeignWorkspace(t, run.store, "playground")

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.Error(t, err)

	assert.Equal(t, errs.CodeConflict, errs.CodeOf(err))
	assert.Equal(t, StateAborted, sum.State)
	assert.Contains(t, run.out.String(), "left untouched")
	assert.True(t, run.store.FileExists("playground", "precious.txt"))

	entries, err := os.ReadDir(run.root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "refusal must not create a backup")
}

func TestRunConflictApproved(t *testing.T) {
	// One confirm answer, then one create answer per artifact.
	run := newRun(t, "y\ny\ny\n", interact.ModeInteractive)
	seedForeignWorkspace(t, run.store, "playground")

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	require.NotEmpty(t, sum.BackupPath)
	assert.True(t, strings.HasPrefix(sum.BackupPath, run.store.Dir("playground")+".bak-"))
	assert.Contains(t, run.out.String(), "moved existing workspace to")

	// The old contents moved wholesale into the backup.
	if _, err := os.Stat(filepath.Join(sum.BackupPath, "precious.txt")); err != nil {
		t.Errorf("backup lost the original contents: %v", err)
	}

	// The fresh workspace was materialized and populated.
	assert.Len(t, run.tool.materialized, 1)
	assert.True(t, run.store.FileExists("playground", "main.go"))
	m, ok := run.store.ReadMarker("playground")
	require.True(t, ok)
	assert.Equal(t, "step-one", m.Exercise)
}

func TestRunSkipOneFile(t *testing.T) {
	run := newRun(t, "n\ny\n", interact.ModeInteractive)

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	assert.Equal(t, []string{"NOTES.md"}, sum.Created)
	assert.Equal(t, []string{"main.go"}, sum.Skipped)
	assert.False(t, run.store.FileExists("playground", "main.go"))
	assert.True(t, run.store.FileExists("playground", "NOTES.md"))

	// A partial application still records completion.
	_, ok := run.store.ReadMarker("playground")
	assert.True(t, ok)

	out := run.out.String()
	assert.Contains(t, out, "- main.go (skipped)")
	assert.Contains(t, out, "step-one applied: 1 created, 1 skipped")
}

func TestRunSkipAllCreatesEverything(t *testing.T) {
	run := newRun(t, "a\n", interact.ModeInteractive)

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go", "NOTES.md"}, sum.Created)
	assert.Empty(t, sum.Skipped)

	out := run.out.String()
	assert.Contains(t, out, "continuing unattended; remaining files will be created")
	assert.Equal(t, 1, strings.Count(out, "? create"), "only the first artifact should prompt")
}

func TestRunMaterializerFailureAborts(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	run.tool.materializeOut = &toolchain.Output{ExitCode: 1, Stderr: "module init failed"}

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.Error(t, err)

	assert.Equal(t, errs.CodeToolchain, errs.CodeOf(err))
	assert.Contains(t, err.Error(), "exited with status 1")
	assert.Equal(t, StateAborted, sum.State)
	assert.Empty(t, sum.Created)

	// No artifacts, no marker: the run never got that far.
	assert.False(t, run.store.FileExists("playground", "main.go"))
	_, ok := run.store.ReadMarker("playground")
	assert.False(t, ok)
}

func TestRunVerifierFailureIsWarning(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	run.tool.verifyOut = &toolchain.Output{ExitCode: 2}

	sum, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err, "verification failure must not fail the run")

	assert.Equal(t, StateCompleted, sum.State)
	assert.Equal(t, "verifier exited with status 2", sum.VerifyWarn)
	assert.Contains(t, run.out.String(), "warning: build verification failed")
	assert.Contains(t, run.out.String(), "workspace and marker kept")

	_, ok := run.store.ReadMarker("playground")
	assert.True(t, ok, "marker stays on verification failure")
}

func TestRunPlainProjectSkipsVerification(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	run.orch.Dispatch = nil // real dispatcher; none resolves to the no-op tool

	sum, err := run.orch.Run(context.Background(), "plain")
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, sum.State)
	assert.Empty(t, sum.VerifyWarn)
	assert.True(t, run.store.FileExists("notes-ws", "notes.txt"))

	out := run.out.String()
	assert.NotContains(t, out, "preparing")
	assert.NotContains(t, out, "verifying build")
}

func TestRunCancelledContext(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := run.orch.Run(ctx, "step-one")
	require.Error(t, err)

	assert.Equal(t, errs.CodeInterrupted, errs.CodeOf(err))
	assert.Equal(t, StateAborted, sum.State)
	assert.Empty(t, sum.Created)

	_, ok := run.store.ReadMarker("playground")
	assert.False(t, ok, "an interrupted run must not claim completion")
}

func TestRunMissingPredecessorNote(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)

	sum, err := run.orch.Run(context.Background(), "step-two")
	require.NoError(t, err)

	assert.Equal(t, resolve.ActionCreateFresh, sum.Action)
	assert.Contains(t, run.out.String(), `note: predecessor "step-one" has not run here`)

	m, ok := run.store.ReadMarker("playground")
	require.True(t, ok)
	assert.Equal(t, "step-two", m.Exercise)
}

func TestRunUnknownExercise(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)

	sum, err := run.orch.Run(context.Background(), "nope")
	require.Error(t, err)

	assert.Equal(t, errs.CodeUnknownExercise, errs.CodeOf(err))
	assert.Nil(t, sum)
	assert.Equal(t, StateAborted, run.orch.State())
}

func TestRunShowsOverwriteDiff(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	_, err := run.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	// The learner edited main.go; a re-run should preview the overwrite.
	require.NoError(t, run.store.WriteArtifact("playground", "main.go", []byte("// my edits\npackage main\n")))

	next := run.again(t, "y\ny\n", interact.ModeInteractive)
	_, err = next.orch.Run(context.Background(), "step-one")
	require.NoError(t, err)

	assert.Contains(t, next.out.String(), "~ main.go already exists (+")
}

func TestPreviewTouchesNothing(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)

	plan, err := run.orch.Preview("step-one")
	require.NoError(t, err)

	assert.Equal(t, "step-one", plan.Exercise)
	assert.Equal(t, resolve.ActionCreateFresh, plan.Action)
	require.Len(t, plan.Items, 2)
	assert.Equal(t, "main.go", plan.Items[0].Path)
	assert.False(t, plan.Items[0].Exists)
	assert.Equal(t, len("// Step One (step-one)\npackage main\n"), plan.Items[0].Size)

	// Zero side effects: no workspace, no tools, no marker.
	assert.False(t, run.store.Exists("playground"))
	assert.Empty(t, run.tool.materialized)
	assert.Empty(t, run.tool.verified)

	var buf bytes.Buffer
	plan.Write(&buf)
	assert.Contains(t, buf.String(), "step-one: Step One (plan)")
	assert.Contains(t, buf.String(), "+ main.go (entry point,")
	assert.Contains(t, buf.String(), "2 files; no changes made")
}

func TestPreviewMarksExistingAndConflicts(t *testing.T) {
	run := newRun(t, "", interact.ModeUnattended)
	seedForeignWorkspace(t, run.store, "playground")
	require.NoError(t, run.store.WriteArtifact("playground", "main.go", []byte("old\n")))

	plan, err := run.orch.Preview("step-one")
	require.NoError(t, err)

	assert.Equal(t, resolve.ActionConflict, plan.Action)
	assert.Equal(t, "someone-else", plan.FoundMarker)
	assert.True(t, plan.Items[0].Exists)

	var buf bytes.Buffer
	plan.Write(&buf)
	assert.Contains(t, buf.String(), `conflict: workspace was left by exercise "someone-else"`)
	assert.Contains(t, buf.String(), "~ main.go (entry point,")
	assert.Contains(t, buf.String(), "exists)")
}

func TestStateString(t *testing.T) {
	states := map[State]string{
		StateStart:                    "start",
		StateResolving:                "resolving",
		StateApplying:                 "applying",
		StateAwaitingConflictDecision: "awaiting-conflict-decision",
		StateCompleted:                "completed",
		StateAborted:                  "aborted",
		State(99):                     "unknown",
	}
	for s, want := range states {
		assert.Equal(t, want, s.String())
	}
}

// ─── Test Helpers ────────────────────────────────────────────────────────────

// fakeTool records invocations and returns scripted outputs.
type fakeTool struct {
	materialized   []string
	verified       []string
	materializeOut *toolchain.Output
	verifyOut      *toolchain.Output
}

func (f *fakeTool) Materialize(_ context.Context, dir string) (*toolchain.Output, error) {
	f.materialized = append(f.materialized, dir)
	if f.materializeOut != nil {
		return f.materializeOut, nil
	}
	return &toolchain.Output{ExitCode: 0}, nil
}

func (f *fakeTool) Verify(_ context.Context, dir string) (*toolchain.Output, error) {
	f.verified = append(f.verified, dir)
	if f.verifyOut != nil {
		return f.verifyOut, nil
	}
	return &toolchain.Output{ExitCode: 0}, nil
}

// testRun bundles an orchestrator with everything observable about it.
type testRun struct {
	orch  *Orchestrator
	store *workspace.Store
	tool  *fakeTool
	out   *bytes.Buffer
	root  string
}

func newRun(t *testing.T, input string, mode interact.Mode) *testRun {
	t.Helper()
	return buildRun(t, t.TempDir(), input, mode)
}

// again builds a second run over the same workspace root, with fresh
// output, tool recording, and scripted input.
func (r *testRun) again(t *testing.T, input string, mode interact.Mode) *testRun {
	t.Helper()
	return buildRun(t, r.root, input, mode)
}

func buildRun(t *testing.T, root, input string, mode interact.Mode) *testRun {
	t.Helper()

	cat, err := catalog.Parse([]byte(courseFixture))
	require.NoError(t, err)
	require.NoError(t, cat.Validate())

	renderer, err := render.New(cat.Templates)
	require.NoError(t, err)

	store := workspace.NewStore(root)
	store.Now = func() time.Time { return frozenTime }

	tool := &fakeTool{}
	out := &bytes.Buffer{}

	orch := &Orchestrator{
		Catalog:  cat,
		Renderer: renderer,
		Store:    store,
		Control:  interact.NewController(mode, strings.NewReader(input), out),
		Dispatch: func(string) toolchain.Tool { return tool },
		Out:      out,
		RunID:    "run-1",
		Now:      func() time.Time { return frozenTime },
	}
	return &testRun{orch: orch, store: store, tool: tool, out: out, root: root}
}

// seedForeignWorkspace creates a workspace left behind by some other tool
// or course: a marker naming an unknown exercise plus one user file.
func seedForeignWorkspace(t *testing.T, store *workspace.Store, name string) {
	t.Helper()

	require.NoError(t, store.EnsureDir(name))
	require.NoError(t, store.WriteMarker(name, workspace.Marker{
		Exercise:  "someone-else",
		AppliedAt: frozenTime,
	}))
	require.NoError(t, store.WriteArtifact(name, "precious.txt", []byte("do not lose this\n")))
}
