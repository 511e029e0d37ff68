// Package render turns artifact specs into final file bytes. Rendering is
// pure: no I/O, no clock, no randomness, so identical inputs always produce
// identical output.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/praxis-labs/praxis/internal/catalog"
)

// Renderer holds the catalog's named templates, parsed once at startup.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every registered template source. A template that fails to
// parse is a catalog defect and aborts startup before any workspace is
// touched.
func New(sources map[string]string) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(sources))}

	// Parse in name order so the first error reported is deterministic.
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tmpl, err := template.New(name).Option("missingkey=error").Parse(sources[name])
		if err != nil {
			return nil, fmt.Errorf("parsing template %q: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Render produces the bytes for one artifact. Literal specs return their
// content unchanged, ignoring context. Template specs execute the named
// template with the run context merged under the spec's params (params win
// on key collisions); referencing an unregistered template or a missing key
// is an error.
func (r *Renderer) Render(spec catalog.ArtifactSpec, context map[string]string) ([]byte, error) {
	if spec.IsLiteral() {
		return []byte(spec.Content), nil
	}

	tmpl, ok := r.templates[spec.Template]
	if !ok {
		return nil, fmt.Errorf("artifact %q references unregistered template %q", spec.Path, spec.Template)
	}

	data := make(map[string]string, len(context)+len(spec.Params))
	for k, v := range context {
		data[k] = v
	}
	for k, v := range spec.Params {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering artifact %q with template %q: %w", spec.Path, spec.Template, err)
	}
	return buf.Bytes(), nil
}
