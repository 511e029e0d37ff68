package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/praxis-labs/praxis/internal/catalog"
)

// Store tracks workspace directories under a single root and owns every
// filesystem mutation the scaffolder performs.
type Store struct {
	Root string
	// Now is injectable so tests get stable backup names.
	Now func() time.Time
}

// NewStore returns a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{Root: root, Now: time.Now}
}

// Dir returns the absolute-or-relative path of a named workspace.
func (s *Store) Dir(name string) string {
	return filepath.Join(s.Root, name)
}

// Exists reports whether the workspace directory is present.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Dir(name))
	return err == nil && info.IsDir()
}

// EnsureDir creates the workspace directory (and the root) if needed.
func (s *Store) EnsureDir(name string) error {
	dir := s.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", dir, err)
	}
	return nil
}

// ReadMarker reads the marker left by a previous successful run. ok is
// false when the directory or marker file is absent, or when the marker
// does not parse back into an exercise id; a workspace with an unreadable
// marker is indistinguishable from one created outside this tool.
func (s *Store) ReadMarker(name string) (*Marker, bool) {
	data, err := os.ReadFile(filepath.Join(s.Dir(name), MarkerFile))
	if err != nil {
		return nil, false
	}
	var m Marker
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	if m.Exercise == "" {
		return nil, false
	}
	return &m, true
}

// WriteMarker records the last applied exercise. The write is atomic
// (temp file + rename) so an interrupted run never leaves a half-written
// marker that would misreport workspace state.
func (s *Store) WriteMarker(name string, m Marker) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("encoding marker: %w", err)
	}

	dir := s.Dir(name)
	tmp, err := os.CreateTemp(dir, MarkerFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating marker temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing marker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing marker temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, MarkerFile)); err != nil {
		return fmt.Errorf("publishing marker: %w", err)
	}
	ok = true
	return nil
}

// WriteArtifact writes one file inside the workspace, creating intermediate
// directories as needed and overwriting any existing file at that path.
// Later exercises in a chain are allowed to replace files from earlier ones.
func (s *Store) WriteArtifact(name, relPath string, data []byte) error {
	target, err := s.artifactPath(name, relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directories for %s: %w", relPath, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	return nil
}

// ReadArtifact returns the current contents of a workspace file, for the
// overwrite diff preview.
func (s *Store) ReadArtifact(name, relPath string) ([]byte, error) {
	target, err := s.artifactPath(name, relPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", relPath, err)
	}
	return data, nil
}

// FileExists reports whether a regular file already exists at the artifact
// path.
func (s *Store) FileExists(name, relPath string) bool {
	target, err := s.artifactPath(name, relPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

// BackupAndClear renames the workspace directory to a timestamp-suffixed
// backup name and returns that name. Used only after an explicit overwrite
// decision; the tool never deletes a workspace.
func (s *Store) BackupAndClear(name string) (string, error) {
	src := s.Dir(name)
	base := fmt.Sprintf("%s.bak-%s", src, s.now().Format("20060102-150405"))

	backup := base
	for n := 2; ; n++ {
		if _, err := os.Lstat(backup); err != nil {
			break
		}
		backup = fmt.Sprintf("%s-%d", base, n)
	}

	if err := os.Rename(src, backup); err != nil {
		return "", fmt.Errorf("backing up workspace %s: %w", name, err)
	}
	return backup, nil
}

// artifactPath joins a workspace-relative path to the workspace directory,
// refusing anything that would land outside it. The catalog validates paths
// at load time; this re-check keeps the store safe on its own.
func (s *Store) artifactPath(name, relPath string) (string, error) {
	if err := catalog.CheckArtifactPath(relPath); err != nil {
		return "", err
	}
	dir := s.Dir(name)
	target := filepath.Join(dir, filepath.FromSlash(relPath))
	if target != dir && !strings.HasPrefix(target, dir+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact path %q escapes workspace %s", relPath, name)
	}
	return target, nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
