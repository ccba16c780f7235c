// Package cursor provides opaque pagination tokens for run transcripts.
package cursor

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMismatch indicates a token issued for a different run.
var ErrMismatch = errors.New("cursor does not belong to this run")

// Cursor is the decoded state of a page token.
type Cursor struct {
	// Seq is the last line sequence already returned.
	Seq uint64 `json:"seq"`
	// RunHash binds the token to the run it was issued for.
	RunHash string `json:"run"`
}

// New returns a cursor positioned after seq in runID.
func New(runID string, seq uint64) Cursor {
	return Cursor{Seq: seq, RunHash: hashRun(runID)}
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode decodes a token and checks it was issued for runID.
func Decode(token, runID string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.RunHash != hashRun(runID) {
		return Cursor{}, ErrMismatch
	}
	return c, nil
}

func hashRun(runID string) string {
	h := sha256.Sum256([]byte(runID))
	return hex.EncodeToString(h[:8])
}
