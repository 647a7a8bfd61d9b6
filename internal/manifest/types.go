package manifest

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// TemplateConfig is the parsed configuration of a template directory. The
// zero value is the configuration of a template without a config file:
// every file is copied verbatim and nothing is prompted.
type TemplateConfig struct {
	Templates  []string   `yaml:"templates,omitempty" json:"templates,omitempty"`
	Parameters Parameters `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Exclude    []string   `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Requires   string     `yaml:"requires,omitempty" json:"requires,omitempty"`

	// Path is the config file the values were read from, empty when the
	// template has none.
	Path string `yaml:"-" json:"-"`
}

// ParameterInfo describes one prompted value.
type ParameterInfo struct {
	// Description is the prompt label; the parameter name is used when nil.
	Description *string `yaml:"description,omitempty" json:"description,omitempty"`
	// Default is a template expression rendered before prompting, not a
	// literal value.
	Default *string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Parameter is a named ParameterInfo.
type Parameter struct {
	Name string
	ParameterInfo
}

// Label returns the text shown when prompting for p.
func (p Parameter) Label() string {
	if p.Description != nil {
		return *p.Description
	}
	return p.Name
}

// Parameters keeps the declaration order of the "parameters" mapping, which
// is also the prompt order.
type Parameters []Parameter

// Names returns the parameter names in declaration order.
func (ps Parameters) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// UnmarshalYAML decodes a mapping node pair by pair so declaration order is
// preserved. A null value declares a parameter with neither description nor
// default.
func (ps *Parameters) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*ps = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameters must be a mapping", node.Line)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	out := make(Parameters, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil {
			return fmt.Errorf("line %d: parameter name: %w", keyNode.Line, err)
		}
		if seen[name] {
			return fmt.Errorf("line %d: duplicate parameter %q", keyNode.Line, name)
		}
		seen[name] = true

		p := Parameter{Name: name}
		if !(valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!null") {
			if err := valNode.Decode(&p.ParameterInfo); err != nil {
				return fmt.Errorf("line %d: parameter %q: %w", valNode.Line, name, err)
			}
		}
		out = append(out, p)
	}

	*ps = out
	return nil
}
