package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/praxis-labs/praxis/internal/catalog"
)

// listEntry represents one exercise for display.
type listEntry struct {
	Module      string `json:"module"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Workspace   string `json:"workspace"`
	ProjectType string `json:"project_type"`
	Predecessor string `json:"predecessor,omitempty"`
}

// printListing writes every exercise grouped by module. The same listing
// goes to stdout for --list and to stderr as the hint on a missing or
// unknown exercise id.
func printListing(w io.Writer, cat *catalog.Catalog, asJSON bool) error {
	if asJSON {
		return printListingJSON(w, cat)
	}
	return printListingTable(w, cat)
}

func printListingTable(w io.Writer, cat *catalog.Catalog) error {
	fmt.Fprintln(w, "Available exercises:")
	for _, m := range cat.Modules {
		fmt.Fprintf(w, "\n%s: %s\n", m.Name, m.Title)

		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, ex := range m.Exercises {
			after := ""
			if ex.Predecessor != "" {
				after = "after " + ex.Predecessor
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", ex.ID, ex.Title, ex.Workspace, after)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func printListingJSON(w io.Writer, cat *catalog.Catalog) error {
	var entries []listEntry
	for _, m := range cat.Modules {
		for _, ex := range m.Exercises {
			entries = append(entries, listEntry{
				Module:      m.Name,
				ID:          ex.ID,
				Title:       ex.Title,
				Workspace:   ex.Workspace,
				ProjectType: ex.ProjectType,
				Predecessor: ex.Predecessor,
			})
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
