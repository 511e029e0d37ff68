package scaffold

import (
	"fmt"
	"io"

	"github.com/praxis-labs/praxis/internal/errs"
	"github.com/praxis-labs/praxis/internal/resolve"
)

// Plan describes what a run would do, without doing any of it.
type Plan struct {
	Exercise           string
	Title              string
	Workspace          string
	Action             resolve.Action
	FoundMarker        string
	Predecessor        string
	MissingPredecessor bool
	Items              []PlanItem
}

// PlanItem is one artifact the run would decide on.
type PlanItem struct {
	Path    string
	Purpose string
	Size    int
	Exists  bool
}

// Preview resolves the exercise and renders every artifact without
// touching anything: no directory creation, no file writes, no marker,
// no external tools.
func (o *Orchestrator) Preview(id string) (*Plan, error) {
	res, err := o.resolver().Resolve(id)
	if err != nil {
		return nil, err
	}
	ex := res.Exercise

	plan := &Plan{
		Exercise:           ex.ID,
		Title:              ex.Title,
		Workspace:          o.Store.Dir(ex.Workspace),
		Action:             res.Action,
		FoundMarker:        res.FoundMarker,
		Predecessor:        ex.Predecessor,
		MissingPredecessor: res.MissingPredecessor,
	}

	renderCtx := renderContext(ex)
	for _, art := range ex.Artifacts {
		data, err := o.Renderer.Render(art, renderCtx)
		if err != nil {
			return nil, errs.Wrap(errs.CodeRender, err, "rendering %s", art.Path)
		}
		plan.Items = append(plan.Items, PlanItem{
			Path:    art.Path,
			Purpose: art.Purpose,
			Size:    len(data),
			Exists:  o.Store.FileExists(ex.Workspace, art.Path),
		})
	}
	return plan, nil
}

// Write prints the plan in the same shape a run reports, marking files
// that already exist.
func (p *Plan) Write(w io.Writer) {
	fmt.Fprintf(w, "%s: %s (plan)\n", p.Exercise, p.Title)
	fmt.Fprintf(w, "workspace: %s (%s)\n", p.Workspace, p.Action)

	if p.Action == resolve.ActionConflict {
		if p.FoundMarker != "" {
			fmt.Fprintf(w, "conflict: workspace was left by exercise %q; running would ask to back it up\n", p.FoundMarker)
		} else {
			fmt.Fprintln(w, "conflict: workspace exists without a recognizable marker; running would ask to back it up")
		}
	}
	if p.MissingPredecessor {
		fmt.Fprintf(w, "note: predecessor %q has not run here\n", p.Predecessor)
	}

	for _, it := range p.Items {
		if it.Exists {
			fmt.Fprintf(w, "  ~ %s (%s, %d bytes, exists)\n", it.Path, it.Purpose, it.Size)
			continue
		}
		fmt.Fprintf(w, "  + %s (%s, %d bytes)\n", it.Path, it.Purpose, it.Size)
	}
	fmt.Fprintf(w, "%d files; no changes made\n", len(p.Items))
}
