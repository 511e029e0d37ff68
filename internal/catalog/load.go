package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Load reads, schema-validates, parses, and structurally validates a
// catalog document. An empty path loads the embedded default course. Any
// failure here is a configuration defect: the caller must abort before
// touching a workspace.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	source := "embedded catalog"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", path, err)
		}
		data = b
		source = path
	}

	result, err := ValidateSchema(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", source, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid %s:\n  - %s", source, formatIssues(result.Issues))
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return c, nil
}

// CheckRequires verifies the running CLI version satisfies the catalog's
// requires constraint. Dev builds skip the check so local development never
// trips over a pinned catalog.
func (c *Catalog) CheckRequires(buildVersion string) error {
	if c.Requires == "" {
		return nil
	}
	switch buildVersion {
	case "", "dev", "unknown":
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("catalog requires %q is not a valid version constraint: %w", c.Requires, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(buildVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing CLI version %q: %w", buildVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("catalog requires CLI version %s, but this build is %s", c.Requires, buildVersion)
	}
	return nil
}

func formatIssues(issues []ValidationIssue) string {
	var lines []string
	for _, issue := range issues {
		if issue.Path != "" {
			lines = append(lines, issue.Path+": "+issue.Message)
		} else {
			lines = append(lines, issue.Message)
		}
	}
	return strings.Join(lines, "\n  - ")
}
