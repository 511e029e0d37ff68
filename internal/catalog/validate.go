package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate runs the structural checks the JSON schema cannot express:
// identifier uniqueness, predecessor integrity (no dangling references, no
// cycles, shared workspace along a chain), template registration, and
// artifact path safety. All problems are collected so a catalog author sees
// the full list at once.
func (c *Catalog) Validate() error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	seen := make(map[string]bool)
	for _, m := range c.Modules {
		for _, ex := range m.Exercises {
			if seen[ex.ID] {
				report("duplicate exercise id %q", ex.ID)
				continue
			}
			seen[ex.ID] = true
			c.checkExercise(ex, report)
		}
	}

	// Predecessor links must resolve and must not loop back on themselves.
	for _, m := range c.Modules {
		for _, ex := range m.Exercises {
			c.checkChain(ex, report)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid catalog:\n  - %s", strings.Join(problems, "\n  - "))
}

func (c *Catalog) checkExercise(ex ExerciseDefinition, report func(string, ...any)) {
	if err := checkWorkspaceName(ex.Workspace); err != nil {
		report("exercise %q: %v", ex.ID, err)
	}

	if !knownProjectType(ex.ProjectType) {
		report("exercise %q: unknown project_type %q (expected one of %s)",
			ex.ID, ex.ProjectType, strings.Join(ValidProjectTypes, ", "))
	}

	paths := make(map[string]bool)
	for _, a := range ex.Artifacts {
		if err := CheckArtifactPath(a.Path); err != nil {
			report("exercise %q: %v", ex.ID, err)
		}
		if paths[a.Path] {
			report("exercise %q: artifact path %q appears more than once", ex.ID, a.Path)
		}
		paths[a.Path] = true

		switch {
		case a.Content != "" && a.Template != "":
			report("exercise %q artifact %q: content and template are mutually exclusive", ex.ID, a.Path)
		case a.Template != "":
			if _, ok := c.Templates[a.Template]; !ok {
				report("exercise %q artifact %q: template %q is not registered", ex.ID, a.Path, a.Template)
			}
		}
	}
}

// checkChain follows predecessor links from ex. A dangling reference or a
// revisited exercise (cycle) is a catalog defect; chain members must also
// agree on the workspace they share.
func (c *Catalog) checkChain(ex ExerciseDefinition, report func(string, ...any)) {
	visited := map[string]bool{ex.ID: true}
	current := ex

	for current.Predecessor != "" {
		pred, ok := c.byID[current.Predecessor]
		if !ok {
			report("exercise %q: predecessor %q is not in the catalog", current.ID, current.Predecessor)
			return
		}
		if visited[pred.ID] {
			report("exercise %q: predecessor chain contains a cycle through %q", ex.ID, pred.ID)
			return
		}
		if pred.Workspace != current.Workspace {
			report("exercise %q uses workspace %q but its predecessor %q uses %q; chain members share one workspace",
				current.ID, current.Workspace, pred.ID, pred.Workspace)
			return
		}
		visited[pred.ID] = true
		current = *pred
	}
}

// CheckArtifactPath rejects paths that could land outside the workspace:
// absolute paths and any parent-traversal that survives cleaning.
func CheckArtifactPath(p string) error {
	if p == "" {
		return fmt.Errorf("artifact path is empty")
	}
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return fmt.Errorf("artifact path %q is absolute; paths must stay inside the workspace", p)
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("artifact path %q escapes the workspace", p)
	}
	if clean == "." {
		return fmt.Errorf("artifact path %q does not name a file", p)
	}
	return nil
}

func checkWorkspaceName(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name is empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("workspace name %q must be a bare directory name", name)
	}
	return nil
}

func knownProjectType(t string) bool {
	for _, v := range ValidProjectTypes {
		if t == v {
			return true
		}
	}
	return false
}
