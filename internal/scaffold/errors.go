package scaffold

import (
	"errors"
	"fmt"
)

// Failure tiers. Every error returned by Run wraps exactly one of them.
var (
	// ErrPrecondition: the template path or destination is unusable.
	ErrPrecondition = errors.New("precondition failed")
	// ErrConfig: the template config file is malformed or incompatible.
	ErrConfig = errors.New("template config error")
	// ErrParameter: a parameter value is missing or its default failed.
	ErrParameter = errors.New("parameter error")
	// ErrTraversal: the template tree could not be read or classified.
	ErrTraversal = errors.New("template traversal error")
	// ErrMaterialize: the project tree could not be written.
	ErrMaterialize = errors.New("materialization error")
)

func tier(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}
