// Package interact owns the interaction mode and mediates every user
// decision the scaffolder needs: per-artifact create/skip answers and the
// workspace overwrite confirmation. Reader and writer are injected so tests
// drive prompts from strings and inspect the output.
package interact

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/praxis-labs/praxis/internal/errs"
)

// Decision is the per-artifact answer.
type Decision int

const (
	// DecisionCreate writes the artifact.
	DecisionCreate Decision = iota
	// DecisionSkip leaves the artifact out and continues.
	DecisionSkip
	// DecisionSkipAll creates the current artifact and stops asking: the
	// mode transitions to unattended before this value is returned.
	DecisionSkipAll
)

// String returns a human-readable name for the decision.
func (d Decision) String() string {
	switch d {
	case DecisionCreate:
		return "create"
	case DecisionSkip:
		return "skip"
	case DecisionSkipAll:
		return "skip-all"
	default:
		return "unknown"
	}
}

// Controller holds the current interaction mode and the prompt channel.
// The mode is private: the only mutation is the one-way transition inside
// Decide, so other components can read but never flip it.
type Controller struct {
	mode Mode
	in   *bufio.Reader
	out  io.Writer
}

// NewController returns a Controller reading decisions from in and writing
// prompts to out.
func NewController(mode Mode, in io.Reader, out io.Writer) *Controller {
	return &Controller{mode: mode, in: bufio.NewReader(in), out: out}
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Decide asks whether to create one artifact. Unattended mode answers
// create immediately with no I/O. Interactive mode blocks on one line:
// empty or affirmative input creates, negative input skips, and the
// skip-all answer flips the mode to unattended before returning, so every
// later call answers create without prompting. Unrecognized input
// re-prompts.
func (c *Controller) Decide(path, purpose string) (Decision, error) {
	if c.mode == ModeUnattended {
		return DecisionCreate, nil
	}

	for {
		fmt.Fprintf(c.out, "? create %s (%s) [Y/n/a] ", path, purpose)

		line, err := c.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil && answer == "" {
			return DecisionSkip, errs.Wrap(errs.CodeInterrupted, err, "input closed while deciding on %s", path)
		}

		switch answer {
		case "", "y", "yes":
			return DecisionCreate, nil
		case "n", "no":
			return DecisionSkip, nil
		case "a", "all":
			c.mode = ModeUnattended
			return DecisionSkipAll, nil
		default:
			fmt.Fprintf(c.out, "  please answer y (create), n (skip), or a (create this and all remaining)\n")
		}
	}
}

// ConfirmOverwrite mediates the workspace conflict decision: the directory
// exists but its marker does not match the expected state. Approval means
// back up the directory and start fresh; refusal aborts the run. The
// default answer is refusal. Unattended runs fail instead of prompting,
// because silently discarding unrelated work is the one unacceptable
// outcome for this tool.
func (c *Controller) ConfirmOverwrite(workspace, detail string) (bool, error) {
	if c.mode == ModeUnattended {
		return false, errs.New(errs.CodeConflict,
			"workspace %q %s; rerun without --auto to decide, or move the directory aside", workspace, detail)
	}

	for {
		fmt.Fprintf(c.out, "? workspace %q %s. Back it up and start fresh? [y/N] ", workspace, detail)

		line, err := c.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil && answer == "" {
			return false, errs.Wrap(errs.CodeInterrupted, err, "input closed while resolving conflict on %q", workspace)
		}

		switch answer {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		default:
			fmt.Fprintf(c.out, "  please answer y (back up and overwrite) or n (abort)\n")
		}
	}
}
