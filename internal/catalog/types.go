package catalog

// Catalog is the static course definition loaded once at startup: named
// templates plus exercises grouped by module. Immutable after Load.
type Catalog struct {
	Version   string            `yaml:"version" json:"version"`
	Requires  string            `yaml:"requires,omitempty" json:"requires,omitempty"`
	Templates map[string]string `yaml:"templates,omitempty" json:"templates,omitempty"`
	Modules   []Module          `yaml:"modules" json:"modules"`

	byID map[string]*ExerciseDefinition
}

// Module groups a sequence of exercises under one course heading.
type Module struct {
	Name      string               `yaml:"name" json:"name"`
	Title     string               `yaml:"title,omitempty" json:"title,omitempty"`
	Exercises []ExerciseDefinition `yaml:"exercises" json:"exercises"`
}

// ExerciseDefinition identifies one exercise: what to write, where, and
// which exercise (if any) is expected to have run before it.
type ExerciseDefinition struct {
	ID          string         `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title"`
	Workspace   string         `yaml:"workspace" json:"workspace"`
	ProjectType string         `yaml:"project_type,omitempty" json:"project_type,omitempty"`
	Predecessor string         `yaml:"predecessor,omitempty" json:"predecessor,omitempty"`
	Artifacts   []ArtifactSpec `yaml:"artifacts" json:"artifacts"`

	// Module is the enclosing module name, filled in during load.
	Module string `yaml:"-" json:"module"`
}

// ArtifactSpec describes one file to produce: a workspace-relative path,
// a purpose string shown at prompts, and either a literal payload or a
// named template with parameters.
type ArtifactSpec struct {
	Path     string            `yaml:"path" json:"path"`
	Purpose  string            `yaml:"purpose" json:"purpose"`
	Content  string            `yaml:"content,omitempty" json:"content,omitempty"`
	Template string            `yaml:"template,omitempty" json:"template,omitempty"`
	Params   map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
}

// IsLiteral reports whether the spec carries a literal payload rather than
// a template reference.
func (a ArtifactSpec) IsLiteral() bool { return a.Template == "" }

// Project type tokens accepted by the toolchain dispatcher.
const (
	ProjectGo   = "go"
	ProjectNode = "node"
	ProjectNone = "none"
)

// ValidProjectTypes contains all accepted project_type values.
var ValidProjectTypes = []string{ProjectGo, ProjectNode, ProjectNone}

// Get returns the exercise with the given ID.
func (c *Catalog) Get(id string) (*ExerciseDefinition, bool) {
	ex, ok := c.byID[id]
	return ex, ok
}

// Len returns the number of exercises across all modules.
func (c *Catalog) Len() int { return len(c.byID) }

// IDs returns every exercise identifier in declaration order.
func (c *Catalog) IDs() []string {
	var ids []string
	for _, m := range c.Modules {
		for _, ex := range m.Exercises {
			ids = append(ids, ex.ID)
		}
	}
	return ids
}

// index populates the by-ID lookup and stamps each exercise with its
// enclosing module name. Called once after parsing.
func (c *Catalog) index() {
	c.byID = make(map[string]*ExerciseDefinition)
	for mi := range c.Modules {
		m := &c.Modules[mi]
		for ei := range m.Exercises {
			ex := &m.Exercises[ei]
			ex.Module = m.Name
			if ex.ProjectType == "" {
				ex.ProjectType = ProjectNone
			}
			c.byID[ex.ID] = ex
		}
	}
}
