package prompt

import (
	"fmt"
	"strings"

	"github.com/newproject-dev/new-project/internal/logging"
	"github.com/newproject-dev/new-project/internal/manifest"
	"github.com/newproject-dev/new-project/internal/render"
)

// MissingValueError is returned when a parameter without a default gets an
// empty answer.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("parameter %q is required: no value entered and no default", e.Name)
}

// Text formats the prompt for a parameter.
func Text(label string, def *string) string {
	if def != nil {
		return fmt.Sprintf("%s (default %s): ", label, *def)
	}
	return label + ": "
}

// Resolve applies the fallback rules to a raw answer: a trimmed non-empty
// answer is used verbatim, an empty one falls back to the rendered default.
func Resolve(name, answer string, def *string) (string, error) {
	answer = strings.TrimSpace(answer)
	switch {
	case answer != "":
		return answer, nil
	case def != nil:
		return *def, nil
	default:
		return "", &MissingValueError{Name: name}
	}
}

// Collect prompts for every parameter in declaration order and binds each
// answer into b before the next default is rendered, so a default can refer
// to the parameters declared above it.
func Collect(params manifest.Parameters, b *render.Bindings, engine render.Engine, p Prompter) error {
	logger := logging.GetLogger("prompt")

	for _, param := range params {
		if param.Name == render.ContextKey {
			return fmt.Errorf("parameter %q shadows the environment facts", param.Name)
		}

		var def *string
		if param.Default != nil {
			rendered, err := engine.RenderString(*param.Default, b)
			if err != nil {
				return fmt.Errorf("rendering default of parameter %q: %w", param.Name, err)
			}
			def = &rendered
		}

		answer, err := p.Prompt(Text(param.Label(), def))
		if err != nil {
			return fmt.Errorf("prompting for parameter %q: %w", param.Name, err)
		}

		value, err := Resolve(param.Name, answer, def)
		if err != nil {
			return err
		}

		logger.Debug().Str("parameter", param.Name).Bool("from_default", strings.TrimSpace(answer) == "").Msg("parameter resolved")
		b.Set(param.Name, value)
	}

	return nil
}
