package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/praxis-labs/praxis/internal/catalog"
	"github.com/praxis-labs/praxis/internal/errs"
	"github.com/praxis-labs/praxis/internal/interact"
	"github.com/praxis-labs/praxis/internal/logging"
	"github.com/praxis-labs/praxis/internal/render"
	"github.com/praxis-labs/praxis/internal/resolve"
	"github.com/praxis-labs/praxis/internal/toolchain"
	"github.com/praxis-labs/praxis/internal/workspace"
)

// State tracks where a run is in its lifecycle.
type State int

const (
	StateStart State = iota
	StateResolving
	StateApplying
	StateAwaitingConflictDecision
	StateCompleted
	StateAborted
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateResolving:
		return "resolving"
	case StateApplying:
		return "applying"
	case StateAwaitingConflictDecision:
		return "awaiting-conflict-decision"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Summary is the outcome of one run, for callers and tests. A summary is
// returned alongside the error on aborted runs so callers can still see
// how far the run got.
type Summary struct {
	Exercise   string
	Workspace  string
	Action     resolve.Action
	Created    []string
	Skipped    []string
	BackupPath string
	VerifyWarn string
	State      State
}

// Orchestrator drives one scaffold run end to end: resolve the workspace
// action, mediate the conflict decision when there is one, invoke the
// project materializer, apply artifacts one decision at a time, record the
// marker, and invoke the build verifier.
type Orchestrator struct {
	Catalog  *catalog.Catalog
	Renderer *render.Renderer
	Store    *workspace.Store
	Control  *interact.Controller
	// Dispatch picks the external tool per project type; defaults to
	// toolchain.Dispatch. Injectable for tests.
	Dispatch func(projectType string) toolchain.Tool
	// Out receives user-facing progress; defaults to os.Stdout.
	Out io.Writer
	// Log is the session audit trail; nil is safe and discards.
	Log   *logging.Session
	RunID string
	// Now is injectable for stable marker timestamps in tests.
	Now func() time.Time

	state State
}

// State returns where the last (or current) run is in its lifecycle.
func (o *Orchestrator) State() State { return o.state }

// Run executes the full scaffold flow for one exercise identifier.
//
// The marker is written once, after every artifact has been decided and
// applied; an aborted run therefore never leaves a marker claiming work
// that did not finish. Verifier failure is reported as a warning and does
// not unwind anything: the workspace, its files, and the marker all stay.
func (o *Orchestrator) Run(ctx context.Context, id string) (*Summary, error) {
	o.transition(StateResolving)

	res, err := o.resolver().Resolve(id)
	if err != nil {
		return o.abort(nil, err)
	}
	ex := res.Exercise

	sum := &Summary{
		Exercise:  ex.ID,
		Workspace: o.Store.Dir(ex.Workspace),
		Action:    res.Action,
	}
	o.logf("resolve: exercise=%s workspace=%s action=%s marker=%q",
		ex.ID, ex.Workspace, res.Action, res.FoundMarker)

	fmt.Fprintf(o.out(), "%s: %s\n", ex.ID, ex.Title)

	fresh := res.Action == resolve.ActionCreateFresh

	switch res.Action {
	case resolve.ActionCreateFresh:
		if res.MissingPredecessor {
			fmt.Fprintf(o.out(), "note: predecessor %q has not run here; starting in a fresh workspace\n",
				ex.Predecessor)
		}
		fmt.Fprintf(o.out(), "creating workspace %s\n", sum.Workspace)

	case resolve.ActionReuse:
		fmt.Fprintf(o.out(), "reusing workspace %s (last applied: %s)\n", sum.Workspace, res.FoundMarker)

	case resolve.ActionConflict:
		o.transition(StateAwaitingConflictDecision)
		approved, err := o.Control.ConfirmOverwrite(ex.Workspace, describeConflict(res))
		if err != nil {
			return o.abort(sum, err)
		}
		if !approved {
			fmt.Fprintf(o.out(), "aborted: workspace %s left untouched\n", sum.Workspace)
			return o.abort(sum, errs.New(errs.CodeConflict, "workspace %q left untouched", ex.Workspace))
		}
		backup, err := o.Store.BackupAndClear(ex.Workspace)
		if err != nil {
			return o.abort(sum, errs.Wrap(errs.CodeWorkspace, err, "backing up workspace %q", ex.Workspace))
		}
		sum.BackupPath = backup
		fmt.Fprintf(o.out(), "moved existing workspace to %s\n", backup)
		o.logf("backup: %s", backup)
		fresh = true
	}

	o.transition(StateApplying)

	if fresh {
		if err := o.Store.EnsureDir(ex.Workspace); err != nil {
			return o.abort(sum, errs.Wrap(errs.CodeWorkspace, err, "preparing workspace %q", ex.Workspace))
		}
		if err := o.materialize(ctx, ex); err != nil {
			return o.abort(sum, err)
		}
	}

	renderCtx := renderContext(ex)
	for _, art := range ex.Artifacts {
		if err := ctx.Err(); err != nil {
			return o.abort(sum, errs.Wrap(errs.CodeInterrupted, err, "run interrupted"))
		}

		// Render before deciding so the prompt can preview the change.
		data, err := o.Renderer.Render(art, renderCtx)
		if err != nil {
			return o.abort(sum, errs.Wrap(errs.CodeRender, err, "rendering %s", art.Path))
		}

		o.previewOverwrite(ex.Workspace, art.Path, data)

		decision, err := o.Control.Decide(art.Path, art.Purpose)
		if err != nil {
			return o.abort(sum, err)
		}

		switch decision {
		case interact.DecisionSkip:
			sum.Skipped = append(sum.Skipped, art.Path)
			fmt.Fprintf(o.out(), "  - %s (skipped)\n", art.Path)
			o.logf("skip: %s", art.Path)
			continue
		case interact.DecisionSkipAll:
			fmt.Fprintln(o.out(), "  continuing unattended; remaining files will be created")
			o.logf("mode: unattended (skip-all)")
		}

		if err := o.Store.WriteArtifact(ex.Workspace, art.Path, data); err != nil {
			return o.abort(sum, errs.Wrap(errs.CodeWorkspace, err, "writing %s", art.Path))
		}
		sum.Created = append(sum.Created, art.Path)
		fmt.Fprintf(o.out(), "  ✓ %s (%s)\n", art.Path, art.Purpose)
		o.logf("create: %s (%d bytes)", art.Path, len(data))
	}

	m := workspace.Marker{
		Exercise:  ex.ID,
		Title:     ex.Title,
		AppliedAt: o.now().UTC(),
		RunID:     o.RunID,
	}
	if err := o.Store.WriteMarker(ex.Workspace, m); err != nil {
		return o.abort(sum, errs.Wrap(errs.CodeWorkspace, err, "recording completion of %q", ex.ID))
	}
	o.logf("marker: %s", ex.ID)

	fmt.Fprintf(o.out(), "\n%s applied: %d created, %d skipped\n",
		ex.ID, len(sum.Created), len(sum.Skipped))
	if sum.BackupPath != "" {
		fmt.Fprintf(o.out(), "previous workspace preserved at %s\n", sum.BackupPath)
	}

	o.verify(ctx, ex, sum)

	o.transition(StateCompleted)
	sum.State = StateCompleted
	return sum, nil
}

// materialize invokes the external project materializer in a freshly
// created workspace. Failure aborts the run: there is no project skeleton
// to write artifacts into.
func (o *Orchestrator) materialize(ctx context.Context, ex *catalog.ExerciseDefinition) error {
	if ex.ProjectType != catalog.ProjectNone {
		fmt.Fprintf(o.out(), "preparing %s project\n", ex.ProjectType)
	}

	out, err := o.dispatch(ex.ProjectType).Materialize(ctx, o.Store.Dir(ex.Workspace))
	if err != nil {
		return errs.Wrap(errs.CodeToolchain, err, "materializing %s project", ex.ProjectType)
	}
	if !out.Ok() {
		o.logf("materialize: %s exit=%d stderr=%q", ex.ProjectType, out.ExitCode, out.Stderr)
		return errs.New(errs.CodeToolchain, "%s project materializer exited with status %d",
			ex.ProjectType, out.ExitCode)
	}
	o.logf("materialize: %s ok", ex.ProjectType)
	return nil
}

// verify invokes the external build verifier. A failure here is a warning
// only: the artifacts were applied as decided and the marker is already on
// disk, so the learner keeps everything and fixes the build in place.
func (o *Orchestrator) verify(ctx context.Context, ex *catalog.ExerciseDefinition, sum *Summary) {
	if ex.ProjectType == catalog.ProjectNone {
		return
	}

	fmt.Fprintln(o.out(), "verifying build")
	out, err := o.dispatch(ex.ProjectType).Verify(ctx, o.Store.Dir(ex.Workspace))
	switch {
	case err != nil:
		sum.VerifyWarn = err.Error()
	case !out.Ok():
		sum.VerifyWarn = fmt.Sprintf("verifier exited with status %d", out.ExitCode)
	}

	if sum.VerifyWarn != "" {
		fmt.Fprintf(o.out(), "warning: build verification failed (%s); workspace and marker kept\n", sum.VerifyWarn)
		o.logf("verify: failed: %s", sum.VerifyWarn)
		return
	}
	o.logf("verify: ok")
}

// previewOverwrite prints a short diff when an interactive run is about to
// recreate an existing file with different content, so the create/skip
// answer is informed.
func (o *Orchestrator) previewOverwrite(ws, path string, data []byte) {
	if o.Control.Mode() != interact.ModeInteractive {
		return
	}
	if !o.Store.FileExists(ws, path) {
		return
	}
	current, err := o.Store.ReadArtifact(ws, path)
	if err != nil || bytes.Equal(current, data) {
		return
	}
	interact.WriteDiff(o.out(), path, string(current), string(data))
}

// abort moves the run to its terminal failure state and passes the error
// through. The summary (when there is one) keeps whatever progress was
// made; partial files stay on disk and a re-run is the recovery path.
func (o *Orchestrator) abort(sum *Summary, err error) (*Summary, error) {
	o.transition(StateAborted)
	if sum != nil {
		sum.State = StateAborted
	}
	o.logf("abort: %v", err)
	return sum, err
}

func (o *Orchestrator) transition(s State) {
	o.state = s
	o.logf("state: %s", s)
}

func (o *Orchestrator) resolver() *resolve.Resolver {
	return &resolve.Resolver{Catalog: o.Catalog, Store: o.Store}
}

// renderContext exposes the exercise's identity to templates, under the
// params so a catalog author can still override any key per artifact.
func renderContext(ex *catalog.ExerciseDefinition) map[string]string {
	return map[string]string{
		"exercise":  ex.ID,
		"title":     ex.Title,
		"workspace": ex.Workspace,
		"module":    ex.Module,
	}
}

// describeConflict phrases what the resolver found for the confirmation
// prompt and the unattended error.
func describeConflict(res *resolve.Resolution) string {
	if res.FoundMarker != "" {
		return fmt.Sprintf("was left by exercise %q", res.FoundMarker)
	}
	return "exists without a recognizable marker"
}

func (o *Orchestrator) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o *Orchestrator) dispatch(projectType string) toolchain.Tool {
	if o.Dispatch != nil {
		return o.Dispatch(projectType)
	}
	return toolchain.Dispatch(projectType)
}

func (o *Orchestrator) logf(format string, args ...any) {
	o.Log.Eventf(format, args...)
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
