package workspace

import "time"

// MarkerFile is the per-workspace record of the last applied exercise.
// It is plain YAML so learners can read it, and the tool parses the
// exercise id back out of it to decide reuse versus conflict.
const MarkerFile = ".praxis.yaml"

// Marker records the last exercise successfully applied to a workspace.
type Marker struct {
	Exercise  string    `yaml:"exercise"`
	Title     string    `yaml:"title,omitempty"`
	AppliedAt time.Time `yaml:"applied_at"`
	RunID     string    `yaml:"run_id,omitempty"`
}
