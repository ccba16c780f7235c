// Package random provides cryptographic seed generation helpers.
//
// It uses crypto/rand to produce seed bytes for the deterministic generator
// when the caller has no seed of its own.
package random

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
)

// DefaultSeedBytes fills one diffusion block.
const DefaultSeedBytes = 32

// NewSeed returns n bytes read from crypto/rand.
func NewSeed(n int) ([]byte, error) {
	return ReadSeed(crand.Reader, n)
}

// ReadSeed returns n bytes read from r.
func ReadSeed(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.New("seed length must be greater than zero")
	}
	if r == nil {
		return nil, errors.New("seed reader is required")
	}
	seed := make([]byte, n)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return seed, nil
}
