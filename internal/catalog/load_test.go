package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("Load embedded: %v", err)
	}
	if cat.Len() == 0 {
		t.Fatal("embedded catalog has no exercises")
	}

	// The default course must form a usable chain.
	ex, ok := cat.Get("basics-02-flags")
	if !ok {
		t.Fatal("embedded catalog is missing basics-02-flags")
	}
	if ex.Predecessor != "basics-01-hello" {
		t.Errorf("basics-02-flags predecessor = %q, want basics-01-hello", ex.Predecessor)
	}
	if ex.Module != "basics" {
		t.Errorf("basics-02-flags module = %q, want basics", ex.Module)
	}
	if ex.ProjectType != ProjectGo {
		t.Errorf("basics-02-flags project_type = %q, want go", ex.ProjectType)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeCatalog(t, validDoc)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	got := cat.IDs()
	want := []string{"basics-01", "basics-02"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}

func TestLoadStructuralDefects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			"dangling predecessor",
			`version: "1"
modules:
  - name: m
    exercises:
      - {id: a, title: T, workspace: w, predecessor: ghost, artifacts: []}
`,
			`predecessor "ghost" is not in the catalog`,
		},
		{
			"predecessor cycle",
			`version: "1"
modules:
  - name: m
    exercises:
      - {id: a, title: T, workspace: w, predecessor: b, artifacts: []}
      - {id: b, title: T, workspace: w, predecessor: a, artifacts: []}
`,
			"contains a cycle",
		},
		{
			"chain workspace disagreement",
			`version: "1"
modules:
  - name: m
    exercises:
      - {id: a, title: T, workspace: first, artifacts: []}
      - {id: b, title: T, workspace: second, predecessor: a, artifacts: []}
`,
			"chain members share one workspace",
		},
		{
			"unregistered template",
			`version: "1"
modules:
  - name: m
    exercises:
      - id: a
        title: T
        workspace: w
        artifacts:
          - {path: x.txt, purpose: p, template: ghost}
`,
			`template "ghost" is not registered`,
		},
		{
			"duplicate exercise id",
			`version: "1"
modules:
  - name: m
    exercises:
      - {id: a, title: T, workspace: w, artifacts: []}
  - name: n
    exercises:
      - {id: a, title: T, workspace: w, artifacts: []}
`,
			"duplicate exercise id",
		},
		{
			"artifact path escapes workspace",
			`version: "1"
modules:
  - name: m
    exercises:
      - id: a
        title: T
        workspace: w
        artifacts:
          - {path: ../outside.txt, purpose: p, content: c}
`,
			"escapes the workspace",
		},
		{
			"absolute artifact path",
			`version: "1"
modules:
  - name: m
    exercises:
      - id: a
        title: T
        workspace: w
        artifacts:
          - {path: /etc/motd, purpose: p, content: c}
`,
			"is absolute",
		},
		{
			"workspace with separator",
			`version: "1"
modules:
  - name: m
    exercises:
      - {id: a, title: T, workspace: nested/dir, artifacts: []}
`,
			"bare directory name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, tt.doc)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected structural validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error should contain %q, got: %v", tt.wantMsg, err)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	cat, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ex, ok := cat.Get("basics-02")
	if !ok {
		t.Fatal("Get(basics-02) not found")
	}
	if ex.ProjectType != ProjectNone {
		t.Errorf("unset project_type should default to none, got %q", ex.ProjectType)
	}
	if ex.Module != "basics" {
		t.Errorf("Module = %q, want basics", ex.Module)
	}
}

func TestCheckRequires(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		build    string
		wantErr  bool
	}{
		{"no constraint", "", "1.0.0", false},
		{"dev build skips", ">= 2.0.0", "dev", false},
		{"empty build skips", ">= 2.0.0", "", false},
		{"satisfied", ">= 1.2.0", "v1.3.0", false},
		{"unsatisfied", ">= 1.2.0", "1.0.0", true},
		{"bad constraint", "not-a-constraint", "1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Catalog{Requires: tt.requires}
			err := c.CheckRequires(tt.build)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	return path
}
