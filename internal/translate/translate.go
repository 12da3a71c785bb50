// Package translate turns text from one language into another through an
// external service.
package translate

import (
	"context"
	"errors"
)

var ErrEmpty = errors.New("empty translation")

// Translator translates text between ISO 639-1 language codes.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}
