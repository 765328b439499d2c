package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrDecode            = errors.New("cannot decode image")
	ErrInsufficientInput = errors.New("not enough images")
	ErrIO                = errors.New("i/o failure")
)

// PathError records a failure together with the path that caused it
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

// NewPathError builds a PathError of the given kind
func NewPathError(op, path string, kind, err error) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *PathError) Is(target error) bool {
	return target == e.Kind
}
