package field

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNameRequired  = errors.New("field name is required")
	ErrInvalidOption = errors.New("invalid field option")
)

// Check reports whether f is fit to be stored in a model.
func Check(f Field) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if !IsValidOption(f.Type(), f.Option) {
		return fmt.Errorf("%w: %q is not a %s option", ErrInvalidOption, f.Option, f.Type())
	}
	return nil
}
