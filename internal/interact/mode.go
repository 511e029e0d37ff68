package interact

// Mode is the process-wide interaction setting. It starts interactive
// unless the run was started with the auto flag, and may transition to
// unattended at most once, via a skip-all decision. No code path moves it
// back within a run.
type Mode int

const (
	// ModeInteractive blocks on a user decision for every artifact.
	ModeInteractive Mode = iota
	// ModeUnattended resolves every artifact decision to create, without input.
	ModeUnattended
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeUnattended:
		return "unattended"
	default:
		return "unknown"
	}
}
