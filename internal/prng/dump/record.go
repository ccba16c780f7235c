package dump

import (
	"fmt"
	"strconv"
)

// Record is one generator state block.
type Record struct {
	State   []byte
	XMult   []uint64
	AMult   []uint64
	BMult   []uint64
	XXor    []uint64
	AXor    []uint64
	BXor    []uint64
	IdxMult int
	IdxXor  int
}

var recordKeys = []string{
	KeyState, KeyXMult, KeyAMult, KeyBMult, KeyXXor, KeyAXor, KeyBXor, KeyIdxMult, KeyIdxXor,
}

// Emit writes the nine state lines to s in canonical order.
func (r Record) Emit(s Sink) error {
	lines := []Line{
		{KeyState, JoinBytes(r.State)},
		{KeyXMult, JoinWords(r.XMult)},
		{KeyAMult, JoinWords(r.AMult)},
		{KeyBMult, JoinWords(r.BMult)},
		{KeyXXor, JoinWords(r.XXor)},
		{KeyAXor, JoinWords(r.AXor)},
		{KeyBXor, JoinWords(r.BXor)},
		{KeyIdxMult, strconv.Itoa(r.IdxMult)},
		{KeyIdxXor, strconv.Itoa(r.IdxXor)},
	}
	for _, l := range lines {
		if err := s.Put(l.Key, l.Value); err != nil {
			return err
		}
	}
	return nil
}

// ParseRecord decodes exactly nine state lines in canonical order.
func ParseRecord(lines []Line) (Record, error) {
	if len(lines) != len(recordKeys) {
		return Record{}, fmt.Errorf("%w: state block has %d lines, want %d", ErrMalformed, len(lines), len(recordKeys))
	}
	for i, want := range recordKeys {
		if lines[i].Key != want {
			return Record{}, fmt.Errorf("%w: line %d key %q, want %q", ErrMalformed, i+1, lines[i].Key, want)
		}
	}

	var (
		rec Record
		err error
	)
	if rec.State, err = ParseBytes(lines[0].Value); err != nil {
		return Record{}, fmt.Errorf("%s: %w", KeyState, err)
	}
	words := []*[]uint64{&rec.XMult, &rec.AMult, &rec.BMult, &rec.XXor, &rec.AXor, &rec.BXor}
	for i, dst := range words {
		if *dst, err = ParseWords(lines[i+1].Value); err != nil {
			return Record{}, fmt.Errorf("%s: %w", recordKeys[i+1], err)
		}
	}
	if rec.IdxMult, err = ParseIndex(lines[7].Value); err != nil {
		return Record{}, fmt.Errorf("%s: %w", KeyIdxMult, err)
	}
	if rec.IdxXor, err = ParseIndex(lines[8].Value); err != nil {
		return Record{}, fmt.Errorf("%s: %w", KeyIdxXor, err)
	}
	return rec, nil
}
