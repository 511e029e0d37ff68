// Package resolve decides what to do with the workspace an exercise
// targets, from two inputs only: the catalog definition and the marker a
// previous run may have left on disk.
package resolve

import (
	"github.com/praxis-labs/praxis/internal/catalog"
	"github.com/praxis-labs/praxis/internal/errs"
	"github.com/praxis-labs/praxis/internal/workspace"
)

// Action is the workspace decision for one run.
type Action int

const (
	// ActionCreateFresh materializes a new workspace directory.
	ActionCreateFresh Action = iota
	// ActionReuse extends the workspace left by this exercise or its
	// declared predecessor.
	ActionReuse
	// ActionConflict means the directory exists in an unrecognized state
	// and requires an explicit decision; it is never auto-resolved.
	ActionConflict
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionCreateFresh:
		return "create"
	case ActionReuse:
		return "reuse"
	case ActionConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one exercise identifier.
type Resolution struct {
	Exercise *catalog.ExerciseDefinition
	Action   Action
	// FoundMarker is the exercise id an existing marker names; empty when
	// the directory carries no recognizable marker.
	FoundMarker string
	// MissingPredecessor is set when a chained exercise starts fresh
	// because its workspace, and so its predecessor's work, is absent.
	MissingPredecessor bool
}

// Resolver maps exercise identifiers to workspace actions.
type Resolver struct {
	Catalog *catalog.Catalog
	Store   *workspace.Store
}

// Resolve looks up the exercise and decides the workspace action:
//
//   - directory absent: create fresh (flagging a skipped predecessor so the
//     caller can say so)
//   - marker names this exercise: reuse (re-running is idempotent)
//   - marker names the declared predecessor: reuse
//   - anything else an existing directory could hold, including no marker
//     at all: conflict
//
// Existence wins over the predecessor declaration: a directory this tool
// cannot identify is never written into without an explicit decision.
func (r *Resolver) Resolve(id string) (*Resolution, error) {
	ex, ok := r.Catalog.Get(id)
	if !ok {
		return nil, errs.New(errs.CodeUnknownExercise, "unknown exercise %q", id)
	}

	res := &Resolution{Exercise: ex}

	if !r.Store.Exists(ex.Workspace) {
		res.Action = ActionCreateFresh
		res.MissingPredecessor = ex.Predecessor != ""
		return res, nil
	}

	if marker, ok := r.Store.ReadMarker(ex.Workspace); ok {
		res.FoundMarker = marker.Exercise
		if marker.Exercise == ex.ID {
			res.Action = ActionReuse
			return res, nil
		}
		if ex.Predecessor != "" && marker.Exercise == ex.Predecessor {
			res.Action = ActionReuse
			return res, nil
		}
	}

	res.Action = ActionConflict
	return res, nil
}
