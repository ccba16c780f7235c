package random

import (
	"bytes"
	"testing"
)

func TestNewSeedLength(t *testing.T) {
	seed, err := NewSeed(DefaultSeedBytes)
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if len(seed) != DefaultSeedBytes {
		t.Fatalf("expected %d bytes, got %d", DefaultSeedBytes, len(seed))
	}
}

func TestReadSeedUsesReader(t *testing.T) {
	seed, err := ReadSeed(bytes.NewReader([]byte{9, 8, 7, 6}), 3)
	if err != nil {
		t.Fatalf("read seed: %v", err)
	}
	if !bytes.Equal(seed, []byte{9, 8, 7}) {
		t.Fatalf("seed = %v", seed)
	}
}

func TestReadSeedErrors(t *testing.T) {
	if _, err := ReadSeed(bytes.NewReader(nil), 0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := ReadSeed(nil, 4); err == nil {
		t.Fatal("expected error for nil reader")
	}
	if _, err := ReadSeed(bytes.NewReader([]byte{1}), 4); err == nil {
		t.Fatal("expected error for short reader")
	}
}
