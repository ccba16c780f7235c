// Package dump reads and writes the key:value text form of generator state.
//
// A state block is nine lines, one per Record field, in the order of the
// Key constants below. Byte sequences are two upper-case hex digits per byte,
// word sequences sixteen, and floats carry sixteen fractional digits. Plural
// values are comma-joined.
package dump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Line keys, in emission order for a state block.
const (
	KeyState   = "v_state_u8"
	KeyXMult   = "v_x_mult"
	KeyAMult   = "v_a_mult"
	KeyBMult   = "v_b_mult"
	KeyXXor    = "v_x_xor"
	KeyAXor    = "v_a_xor"
	KeyBXor    = "v_b_xor"
	KeyIdxMult = "idx_values_mult"
	KeyIdxXor  = "idx_values_xor"

	KeyVecU64 = "v_vec_u64"
	KeyVecF64 = "v_vec_f64"
)

const separator = ","

// ErrMalformed indicates a token that cannot be decoded.
var ErrMalformed = errors.New("malformed value")

// JoinBytes renders bytes as comma-joined two-digit upper-case hex.
func JoinBytes(values []byte) string {
	var b strings.Builder
	b.Grow(len(values) * 3)
	for i, v := range values {
		if i > 0 {
			b.WriteString(separator)
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}

// JoinWords renders words as comma-joined sixteen-digit upper-case hex.
func JoinWords(values []uint64) string {
	var b strings.Builder
	b.Grow(len(values) * 17)
	for i, v := range values {
		if i > 0 {
			b.WriteString(separator)
		}
		fmt.Fprintf(&b, "%016X", v)
	}
	return b.String()
}

// JoinFloats renders floats as comma-joined decimals with sixteen fractional digits.
func JoinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 16, 64)
	}
	return strings.Join(parts, separator)
}

// ParseBytes decodes comma-separated hex bytes. An empty string yields no bytes.
func ParseBytes(s string) ([]byte, error) {
	tokens := split(s)
	out := make([]byte, len(tokens))
	for i, tok := range tokens {
		if len(tok) == 0 || len(tok) > 2 {
			return nil, fmt.Errorf("%w: byte %q", ErrMalformed, tok)
		}
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: byte %q", ErrMalformed, tok)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// ParseWords decodes comma-separated hex words.
func ParseWords(s string) ([]uint64, error) {
	tokens := split(s)
	out := make([]uint64, len(tokens))
	for i, tok := range tokens {
		if len(tok) == 0 || len(tok) > 16 {
			return nil, fmt.Errorf("%w: word %q", ErrMalformed, tok)
		}
		v, err := strconv.ParseUint(tok, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: word %q", ErrMalformed, tok)
		}
		out[i] = v
	}
	return out, nil
}

// ParseFloats decodes comma-separated decimals.
func ParseFloats(s string) ([]float64, error) {
	tokens := split(s)
	out := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: float %q", ErrMalformed, tok)
		}
		out[i] = v
	}
	return out, nil
}

// ParseIndex decodes a non-negative decimal index.
func ParseIndex(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: index %q", ErrMalformed, s)
	}
	return v, nil
}

func split(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	tokens := strings.Split(s, separator)
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens
}
