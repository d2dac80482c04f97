// Package services holds the pure domain logic of configuration resolution.
package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by configuration resolution
var (
	ErrIncompleteSigning = errors.New("incomplete signing configuration")
	ErrUnknownVariant    = errors.New("unknown build variant")
	ErrSDKOrdering       = errors.New("sdk levels out of order")
	ErrInvalidDependency = errors.New("invalid dependency notation")
)

// SigningBindingError reports the credentials missing when a variant requires release signing
type SigningBindingError struct {
	Config  string
	Missing []string
	Source  string
}

func (e *SigningBindingError) Error() string {
	return fmt.Sprintf("signing config %q is missing %s (expected in %s)",
		e.Config, strings.Join(e.Missing, ", "), e.Source)
}

// Is lets errors.Is match ErrIncompleteSigning
func (e *SigningBindingError) Is(target error) bool {
	return target == ErrIncompleteSigning
}
