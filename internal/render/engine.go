package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders template text against bindings. Implementations must fail
// on references to undefined names instead of rendering them blank.
type Engine interface {
	// RenderString renders a one-off template source.
	RenderString(source string, b *Bindings) (string, error)
	// AddTemplate parses source and registers it under name.
	AddTemplate(name, source string) error
	// Render executes the template registered under name.
	Render(name string, b *Bindings) (string, error)
}

// TextEngine is an Engine backed by text/template. Each registered source is
// parsed into its own template set, so blocks defined in one file are not
// visible to another.
type TextEngine struct {
	templates map[string]*template.Template
}

var _ Engine = (*TextEngine)(nil)

// NewTextEngine returns an engine with missingkey=error and sprig functions.
func NewTextEngine() *TextEngine {
	return &TextEngine{
		templates: make(map[string]*template.Template),
	}
}

func newTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=error").Funcs(sprig.TxtFuncMap())
}

// RenderString parses and executes source in isolation from registered templates.
func (e *TextEngine) RenderString(source string, b *Bindings) (string, error) {
	tmpl, err := newTemplate("inline").Parse(source)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", source, err)
	}
	return execute(tmpl, b)
}

// AddTemplate parses source under name. Names must be unique.
func (e *TextEngine) AddTemplate(name, source string) error {
	if _, ok := e.templates[name]; ok {
		return fmt.Errorf("template %s already registered", name)
	}
	tmpl, err := newTemplate(name).Parse(source)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	e.templates[name] = tmpl
	return nil
}

// Render executes the template registered under name.
func (e *TextEngine) Render(name string, b *Bindings) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("template %s not registered", name)
	}
	if tmpl.Tree == nil {
		// Parsing an empty source leaves nothing to execute.
		return "", nil
	}
	return execute(tmpl, b)
}

func execute(tmpl *template.Template, b *Bindings) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, b.Data()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
