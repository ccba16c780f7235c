// Package prng implements a deterministic dual-stream generator seeded
// through a SHA-256 diffusion ring.
//
// # Construction
//
// New absorbs the seed into a diffusion.State, then runs two rounds before
// harvesting each of the six parameter arrays (x_mult, a_mult, b_mult, x_xor,
// a_xor, b_xor, in that order). The diffusion state is not touched again
// after construction.
//
// # Output
//
// Every lane of the primary stream is a 64-bit LCG with a ≡ 1 (mod 4) and odd
// b, so each lane has full period 2^64. Its output is XORed against one word
// of an auxiliary recurrence that steps once per full pass over the lanes.
// Arithmetic wraps modulo 2^64.
//
// # Checkpoints
//
// A Device keeps a current snapshot and a checkpoint. Save copies current into
// the checkpoint and Restore copies it back, so output after Restore repeats
// the output produced after the matching Save.
//
// A Device is not safe for concurrent use.
package prng

import (
	"errors"
	"fmt"
	"slices"

	"github.com/louisbranch/ringrand/internal/prng/diffusion"
	"github.com/louisbranch/ringrand/internal/prng/dump"
)

const (
	// Mask53 keeps the low 53 bits of an output word.
	Mask53 uint64 = 0x1fffffffffffff
	// Scale53 is 2^-53, the float step for 53-bit outputs.
	Scale53 = 0x1p-53
	// roundsPerHarvest diffusion rounds separate consecutive harvests.
	roundsPerHarvest = 2
)

// ErrCorruptState indicates a persisted state that violates the generator invariants.
var ErrCorruptState = errors.New("corrupt generator state")

// Device is the generator: diffusion buffer, seed copy and two snapshots.
type Device struct {
	state      *diffusion.State
	seed       []byte
	current    Snapshot
	checkpoint Snapshot
}

// New constructs a device from seed bytes and a state size in bytes.
// lengthU8 must be a positive multiple of 32.
func New(seed []byte, lengthU8 int) (*Device, error) {
	state, err := diffusion.New(lengthU8)
	if err != nil {
		return nil, fmt.Errorf("new device: %w", err)
	}
	d := &Device{
		state:   state,
		seed:    slices.Clone(seed),
		current: newSnapshot(lengthU8 / 8),
	}
	d.init()
	return d, nil
}

func (d *Device) init() {
	d.state.Absorb(d.seed)

	for _, dst := range [][]uint64{
		d.current.XMult, d.current.AMult, d.current.BMult,
		d.current.XXor, d.current.AXor, d.current.BXor,
	} {
		for range roundsPerHarvest {
			d.state.Round()
		}
		d.state.Harvest(dst)
	}

	d.current.constrain()
	d.current.IdxMult = 0
	d.current.IdxXor = 0
	d.checkpoint = d.current.Clone()
}

// Resume rebuilds a device from a persisted state block. The checkpoint of
// the resumed device equals its current state. The original seed is not part
// of a state block, so Seed returns nil.
func Resume(rec dump.Record) (*Device, error) {
	state, err := diffusion.New(len(rec.State))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if err := state.Load(rec.State); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	snap := Snapshot{
		XMult:   slices.Clone(rec.XMult),
		AMult:   slices.Clone(rec.AMult),
		BMult:   slices.Clone(rec.BMult),
		XXor:    slices.Clone(rec.XXor),
		AXor:    slices.Clone(rec.AXor),
		BXor:    slices.Clone(rec.BXor),
		IdxMult: rec.IdxMult,
		IdxXor:  rec.IdxXor,
	}
	if snap.Len() != state.Len()/8 {
		return nil, fmt.Errorf("%w: %d lanes for a %d byte state", ErrCorruptState, snap.Len(), state.Len())
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &Device{
		state:      state,
		current:    snap,
		checkpoint: snap.Clone(),
	}, nil
}

// Uint64 advances the recurrence by one lane and returns the new word.
func (d *Device) Uint64() uint64 {
	s := &d.current
	m, z := s.IdxMult, s.IdxXor

	v := (s.AMult[m]*s.XMult[m] + s.BMult[m]) ^ s.XXor[z]
	s.XMult[m] = v

	s.IdxMult++
	if s.IdxMult == len(s.XMult) {
		s.IdxMult = 0
		s.XXor[z] = (s.AXor[z] ^ s.XXor[z]) + s.BXor[z]
		s.IdxXor = (z + 1) % len(s.XXor)
	}
	return v
}

// Float64 returns a value in [0, 1) built from the low 53 bits of Uint64.
func (d *Device) Float64() float64 {
	return float64(d.Uint64()&Mask53) * Scale53
}

// FillUint64 fills dst in order with successive Uint64 values.
func (d *Device) FillUint64(dst []uint64) {
	for i := range dst {
		dst[i] = d.Uint64()
	}
}

// FillFloat64 fills dst in order with successive Float64 values.
func (d *Device) FillFloat64(dst []float64) {
	for i := range dst {
		dst[i] = d.Float64()
	}
}

// Uint64s returns the next n words.
func (d *Device) Uint64s(n int) []uint64 {
	out := make([]uint64, n)
	d.FillUint64(out)
	return out
}

// Float64s returns the next n floats.
func (d *Device) Float64s(n int) []float64 {
	out := make([]float64, n)
	d.FillFloat64(out)
	return out
}

// Save copies the current snapshot over the checkpoint.
func (d *Device) Save() {
	d.checkpoint.copyFrom(&d.current)
}

// Restore copies the checkpoint over the current snapshot, discarding any
// output produced since the last Save.
func (d *Device) Restore() {
	d.current.copyFrom(&d.checkpoint)
}

// Current returns a copy of the live snapshot.
func (d *Device) Current() Snapshot { return d.current.Clone() }

// Checkpoint returns a copy of the saved snapshot.
func (d *Device) Checkpoint() Snapshot { return d.checkpoint.Clone() }

// Seed returns a copy of the seed the device was built from.
func (d *Device) Seed() []byte { return slices.Clone(d.seed) }

// LengthU8 returns the diffusion buffer size in bytes.
func (d *Device) LengthU8() int { return d.state.Len() }

// LengthU64 returns the lane count.
func (d *Device) LengthU64() int { return d.current.Len() }

// Blocks returns the number of diffusion ring blocks.
func (d *Device) Blocks() int { return d.state.Blocks() }

// Record returns the current state as a dump record.
func (d *Device) Record() dump.Record {
	s := d.current.Clone()
	return dump.Record{
		State:   d.state.Bytes(),
		XMult:   s.XMult,
		AMult:   s.AMult,
		BMult:   s.BMult,
		XXor:    s.XXor,
		AXor:    s.AXor,
		BXor:    s.BXor,
		IdxMult: s.IdxMult,
		IdxXor:  s.IdxXor,
	}
}

// Report writes the current state block to sink.
func (d *Device) Report(sink dump.Sink) error {
	return d.Record().Emit(sink)
}
