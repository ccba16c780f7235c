// Package storage defines the persistence contracts for archived generator runs.
//
// A run records the construction inputs of one device (seed, state size and
// the requested batches). Every key:value line the run emitted is appended in
// order, so a run transcript can be replayed or its last state block resumed.
// Implementations live in subpackages.
//
// # Error Types
//
//   - ErrNotFound: a requested run does not exist.
//   - ErrAlreadyExists: a run or line with the same key was already stored.
package storage
