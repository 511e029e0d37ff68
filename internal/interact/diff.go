package interact

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxDiffLines caps the preview so a large rewrite doesn't flood the prompt.
const maxDiffLines = 20

// WriteDiff prints a short preview of what an overwrite would change,
// shown before the create/skip prompt when the target file already exists
// with different content.
func WriteDiff(w io.Writer, path, oldText, newText string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	adds, dels := countChanges(diffs)
	fmt.Fprintf(w, "  ~ %s already exists (+%d -%d lines if recreated)\n", path, adds, dels)

	pretty := strings.TrimRight(dmp.DiffPrettyText(diffs), "\n")
	lines := strings.Split(pretty, "\n")
	for i, line := range lines {
		if i == maxDiffLines {
			fmt.Fprintf(w, "    ... (%d more lines)\n", len(lines)-maxDiffLines)
			break
		}
		fmt.Fprintf(w, "    %s\n", line)
	}
}

// countChanges tallies added and removed lines across the diff segments.
func countChanges(diffs []diffmatchpatch.Diff) (adds, dels int) {
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			adds += lineCount(d.Text)
		case diffmatchpatch.DiffDelete:
			dels += lineCount(d.Text)
		}
	}
	return adds, dels
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
