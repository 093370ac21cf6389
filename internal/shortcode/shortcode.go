// Package shortcode generates random short codes for URLs.
package shortcode

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of characters a short code is drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	DefaultLength = 6
	MinLength     = 4
	MaxLength     = 32
)

// Generator produces fixed-length short codes from a cryptographically secure source.
// It is safe for concurrent use.
type Generator struct {
	length int
}

// New returns a Generator producing codes of the given length.
func New(length int) (*Generator, error) {
	const op = "shortcode.New"

	if length < MinLength || length > MaxLength {
		return nil, fmt.Errorf("%s: length must be between %d and %d, got %d", op, MinLength, MaxLength, length)
	}

	return &Generator{length: length}, nil
}

// Length returns the length of generated codes.
func (g *Generator) Length() int {
	return g.length
}

// Generate returns a new random short code.
func (g *Generator) Generate() (string, error) {
	const op = "shortcode.Generator.Generate"

	code, err := gonanoid.Generate(Alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}
