package links

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input file holds nothing but whitespace
var ErrEmptyInput = errors.New("input file is empty")

// InputError is returned when the input file is missing or cannot be read
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("error reading file %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
