package prng

import (
	"fmt"
	"slices"
)

// Snapshot is one complete copy of the recurrence state: six parameter
// arrays of equal length and the two rotating cursors.
//
// After initialization AMult, BMult, AXor and BXor never change; XMult and
// XXor advance with every output.
type Snapshot struct {
	XMult []uint64
	AMult []uint64
	BMult []uint64
	XXor  []uint64
	AXor  []uint64
	BXor  []uint64

	IdxMult int
	IdxXor  int
}

func newSnapshot(length int) Snapshot {
	return Snapshot{
		XMult: make([]uint64, length),
		AMult: make([]uint64, length),
		BMult: make([]uint64, length),
		XXor:  make([]uint64, length),
		AXor:  make([]uint64, length),
		BXor:  make([]uint64, length),
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		XMult:   slices.Clone(s.XMult),
		AMult:   slices.Clone(s.AMult),
		BMult:   slices.Clone(s.BMult),
		XXor:    slices.Clone(s.XXor),
		AXor:    slices.Clone(s.AXor),
		BXor:    slices.Clone(s.BXor),
		IdxMult: s.IdxMult,
		IdxXor:  s.IdxXor,
	}
}

// copyFrom overwrites s with other without reallocating.
func (s *Snapshot) copyFrom(other *Snapshot) {
	copy(s.XMult, other.XMult)
	copy(s.AMult, other.AMult)
	copy(s.BMult, other.BMult)
	copy(s.XXor, other.XXor)
	copy(s.AXor, other.AXor)
	copy(s.BXor, other.BXor)
	s.IdxMult = other.IdxMult
	s.IdxXor = other.IdxXor
}

// Len returns the lane count.
func (s Snapshot) Len() int { return len(s.XMult) }

// constrain forces the full-period parameter conditions onto every lane.
func (s *Snapshot) constrain() {
	for i := range s.AMult {
		s.AMult[i] = 1 + s.AMult[i] - s.AMult[i]%4
		s.BMult[i] = 1 + s.BMult[i] - s.BMult[i]%2
		s.AXor[i] = 0 + s.AXor[i] - s.AXor[i]%2
		s.BXor[i] = 1 + s.BXor[i] - s.BXor[i]%2
	}
}

// Validate checks array lengths, cursor ranges and parameter parity.
func (s Snapshot) Validate() error {
	n := len(s.XMult)
	if n == 0 {
		return fmt.Errorf("%w: no lanes", ErrCorruptState)
	}
	for _, lane := range []struct {
		name string
		arr  []uint64
	}{
		{"a_mult", s.AMult},
		{"b_mult", s.BMult},
		{"x_xor", s.XXor},
		{"a_xor", s.AXor},
		{"b_xor", s.BXor},
	} {
		if len(lane.arr) != n {
			return fmt.Errorf("%w: %s has %d lanes, want %d", ErrCorruptState, lane.name, len(lane.arr), n)
		}
	}
	if s.IdxMult < 0 || s.IdxMult >= n {
		return fmt.Errorf("%w: idx_values_mult %d out of range", ErrCorruptState, s.IdxMult)
	}
	if s.IdxXor < 0 || s.IdxXor >= n {
		return fmt.Errorf("%w: idx_values_xor %d out of range", ErrCorruptState, s.IdxXor)
	}
	for i := 0; i < n; i++ {
		switch {
		case s.AMult[i]%4 != 1:
			return fmt.Errorf("%w: a_mult[%d] is not 1 mod 4", ErrCorruptState, i)
		case s.BMult[i]%2 != 1:
			return fmt.Errorf("%w: b_mult[%d] is even", ErrCorruptState, i)
		case s.AXor[i]%2 != 0:
			return fmt.Errorf("%w: a_xor[%d] is odd", ErrCorruptState, i)
		case s.BXor[i]%2 != 1:
			return fmt.Errorf("%w: b_xor[%d] is even", ErrCorruptState, i)
		}
	}
	return nil
}
