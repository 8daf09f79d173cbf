// Package idgen mints short, URL-safe public identifiers for pastes.
package idgen

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultLength is the identifier length used when none is configured.
const DefaultLength = 8

// Alphabet is the URL-safe 64-symbol alphabet identifiers are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// Generator produces independently random identifiers of a fixed length.
// It does not check uniqueness against any store.
type Generator struct {
	length int
}

// New returns a Generator for identifiers of the given length.
// A non-positive length falls back to DefaultLength.
func New(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Length returns the identifier length this generator produces.
func (g *Generator) Length() int { return g.length }

// Generate returns a new identifier. An error means the randomness source
// failed and the identifier must not be used.
func (g *Generator) Generate() (string, error) {
	id, err := gonanoid.Generate(Alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id, nil
}
