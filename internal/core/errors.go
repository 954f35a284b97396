package core

import (
	"errors"
	"fmt"
)

// ErrInvalidStructure is matched by every StructureError.
var ErrInvalidStructure = errors.New("invalid configuration structure")

// StructureError reports a configuration value that is neither a command
// string nor a mapping, together with the path where it was found.
type StructureError struct {
	Path   string
	Reason string
}

func (e *StructureError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidStructure, e.Reason)
	}
	return fmt.Sprintf("%s at %s: %s", ErrInvalidStructure, e.Path, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidStructure.
func (e *StructureError) Unwrap() error {
	return ErrInvalidStructure
}
