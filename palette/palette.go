// Package palette provides block templates which could be inserted into a
// lesson.
package palette

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultPalette []byte

// Template is insertable block markup. Markup is opaque to the editor beyond
// being a template to expand.
type Template struct {
	ID     string `yaml:"id,omitempty"`
	Label  string `yaml:"label"`
	Markup string `yaml:"markup"`

	tmpl *template.Template
}

// Values are made available to template expansion.
type Values struct {
	// Lesson title or id
	Lesson string
	// Position the block is going to be inserted at
	Index int
	// Free text, templates use it for the main content
	Text string
	// Resource reference for media templates
	Source string
}

type Palette struct {
	templates []Template
}

type paletteFile struct {
	Templates []Template `yaml:"templates"`
}

// Load reads palette from file, empty path means embedded default palette.
func Load(path string) (*Palette, error) {
	if len(path) == 0 {
		return Parse(defaultPalette)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read palette: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes palette and validates every template. All problems found are
// reported together.
func Parse(data []byte) (*Palette, error) {
	var pf paletteFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("failed to decode palette: %w", err)
	}
	if len(pf.Templates) == 0 {
		return nil, errors.New("palette has no templates")
	}

	var (
		errs error
		seen = make(map[string]int, len(pf.Templates))
	)
	for i := range pf.Templates {
		t := &pf.Templates[i]
		t.Label = strings.TrimSpace(t.Label)
		if t.Label == "" {
			errs = multierr.Append(errs, fmt.Errorf("template %d: label is empty", i+1))
		}
		if t.ID == "" {
			t.ID = slug.Make(t.Label)
		} else if !slug.IsSlug(t.ID) {
			errs = multierr.Append(errs, fmt.Errorf("template %d: id %q is not a slug", i+1, t.ID))
		}
		if t.ID != "" {
			if prev, ok := seen[t.ID]; ok {
				errs = multierr.Append(errs, fmt.Errorf("template %d: id %q already used by template %d", i+1, t.ID, prev))
			}
			seen[t.ID] = i + 1
		}
		if strings.TrimSpace(t.Markup) == "" {
			errs = multierr.Append(errs, fmt.Errorf("template %d: markup is empty", i+1))
			continue
		}
		tmpl, err := template.New(t.ID).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(t.Markup)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("template %d: unable to parse markup: %w", i+1, err))
			continue
		}
		t.tmpl = tmpl
	}
	if errs != nil {
		return nil, errs
	}
	return &Palette{templates: pf.Templates}, nil
}

// Templates returns templates in palette order.
func (p *Palette) Templates() []Template {
	return slices.Clone(p.templates)
}

// IDs returns template ids in natural order.
func (p *Palette) IDs() []string {
	ids := make([]string, 0, len(p.templates))
	for _, t := range p.templates {
		ids = append(ids, t.ID)
	}
	slices.SortFunc(ids, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return ids
}

// Get returns template by id.
func (p *Palette) Get(id string) (Template, bool) {
	i := slices.IndexFunc(p.templates, func(t Template) bool { return t.ID == id })
	if i < 0 {
		return Template{}, false
	}
	return p.templates[i], true
}

// Render expands template markup.
func (t Template) Render(values Values) (string, error) {
	tmpl := t.tmpl
	if tmpl == nil {
		var err error
		if tmpl, err = template.New(t.ID).Funcs(sprig.FuncMap()).Parse(t.Markup); err != nil {
			return "", fmt.Errorf("unable to parse template %s: %w", t.ID, err)
		}
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template %s: %w", t.ID, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
