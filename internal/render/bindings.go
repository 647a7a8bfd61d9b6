package render

import (
	"maps"

	"github.com/newproject-dev/new-project/internal/projectctx"
)

// ContextKey is the global name under which the environment facts are
// exposed, e.g. {{ .context.current_date }}.
const ContextKey = "context"

// Bindings holds everything a template can reference: the environment facts
// and the resolved parameters, each parameter as its own global name.
type Bindings struct {
	context projectctx.Context
	params  map[string]string
	order   []string
}

// NewBindings returns bindings exposing ctx and no parameters.
func NewBindings(ctx projectctx.Context) *Bindings {
	return &Bindings{
		context: maps.Clone(ctx),
		params:  make(map[string]string),
	}
}

// Set binds a parameter value. Setting the same name twice replaces the value.
func (b *Bindings) Set(name, value string) {
	if _, ok := b.params[name]; !ok {
		b.order = append(b.order, name)
	}
	b.params[name] = value
}

// Get returns a bound parameter value.
func (b *Bindings) Get(name string) (string, bool) {
	v, ok := b.params[name]
	return v, ok
}

// Names returns parameter names in the order they were bound.
func (b *Bindings) Names() []string {
	return append([]string(nil), b.order...)
}

// Context returns a copy of the environment facts.
func (b *Bindings) Context() projectctx.Context {
	return maps.Clone(b.context)
}

// Data builds the value passed to the engine. The facts are bound last so a
// parameter can never shadow them.
func (b *Bindings) Data() map[string]any {
	data := make(map[string]any, len(b.params)+1)
	for k, v := range b.params {
		data[k] = v
	}
	data[ContextKey] = map[string]string(maps.Clone(b.context))
	return data
}
