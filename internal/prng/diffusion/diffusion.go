// Package diffusion maintains the byte buffer that seeds the generator.
//
// The buffer is split into BlockSize blocks arranged in a ring. A round walks
// the ring once and mixes every block into its successor through SHA-256, so
// entropy flows one way around the ring and cannot be undone.
package diffusion

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
)

// BlockSize is the ring block size, equal to the SHA-256 digest size.
const BlockSize = sha256.Size

// ErrInvalidLength indicates a buffer length that is not a positive multiple of BlockSize.
var ErrInvalidLength = errors.New("length must be a positive multiple of 32")

// State is a fixed-length ring of hash-mixed blocks.
type State struct {
	buf    []byte
	blocks int
}

// New returns a zeroed state of length bytes.
func New(length int) (*State, error) {
	if err := ValidateLength(length); err != nil {
		return nil, err
	}
	return &State{
		buf:    make([]byte, length),
		blocks: length / BlockSize,
	}, nil
}

// ValidateLength reports whether length can back a State.
func ValidateLength(length int) error {
	if length <= 0 || length%BlockSize != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	return nil
}

// Len returns the buffer length in bytes.
func (s *State) Len() int { return len(s.buf) }

// Blocks returns the number of ring blocks.
func (s *State) Blocks() int { return s.blocks }

// Bytes returns a copy of the buffer.
func (s *State) Bytes() []byte {
	return bytes.Clone(s.buf)
}

// Load replaces the buffer with a persisted copy of the same length.
func (s *State) Load(buf []byte) error {
	if len(buf) != len(s.buf) {
		return fmt.Errorf("load state: buffer has %d bytes, want %d", len(buf), len(s.buf))
	}
	copy(s.buf, buf)
	return nil
}

// Absorb zeroes the buffer and XOR-folds seed into it.
//
// Seed byte i lands on buffer position i % Len(), so every byte contributes
// exactly once and a trailing partial chunk folds into the leading bytes.
func (s *State) Absorb(seed []byte) {
	clear(s.buf)
	n := len(s.buf)
	for off := 0; off < len(seed); off += n {
		chunk := seed[off:min(off+n, len(seed))]
		for j, b := range chunk {
			s.buf[j] ^= b
		}
	}
}

// Round advances the buffer by one full pass over the ring.
func (s *State) Round() {
	for i := 0; i < s.blocks; i++ {
		a := s.block(i)
		b := s.block((i + 1) % s.blocks)

		perturbIfEqual(a, b)

		da := sha256.Sum256(a)
		db := sha256.Sum256(b)
		for j := range b {
			b[j] ^= da[j] ^ db[j] ^ a[j]
		}
	}
}

// Harvest decodes the buffer as little-endian words into dst.
// It panics if dst does not hold exactly Len()/8 words.
func (s *State) Harvest(dst []uint64) {
	if len(dst)*8 != len(s.buf) {
		panic(fmt.Sprintf("diffusion: harvest into %d words, want %d", len(dst), len(s.buf)/8))
	}
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(s.buf[8*i:])
	}
}

func (s *State) block(i int) []byte {
	return s.buf[i*BlockSize : (i+1)*BlockSize : (i+1)*BlockSize]
}

// perturbIfEqual breaks the fixed point where a block equals its successor.
// b[j] is XORed with j+1. It reports whether b was changed.
func perturbIfEqual(a, b []byte) bool {
	if !bytes.Equal(a, b) {
		return false
	}
	for j := range b {
		b[j] ^= byte(j + 1)
	}
	return true
}
