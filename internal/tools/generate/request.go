package generate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/ringrand/internal/prng/dump"
)

// Kind selects the output form of one batch.
type Kind string

const (
	KindU64 Kind = "u64"
	KindF64 Kind = "f64"
)

// Key returns the transcript key for a batch of this kind.
func (k Kind) Key() string {
	if k == KindF64 {
		return dump.KeyVecF64
	}
	return dump.KeyVecU64
}

// Request asks for Length values of one Kind.
type Request struct {
	Kind   Kind
	Length int
}

func (r Request) String() string {
	return string(r.Kind) + ":" + strconv.Itoa(r.Length)
}

// ParseRequests decodes comma-separated type:length pairs such as "u64:3,f64:2".
func ParseRequests(s string) ([]Request, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: no output requested", ErrMalformedArg)
	}
	parts := strings.Split(s, ",")
	requests := make([]Request, 0, len(parts))
	for _, part := range parts {
		kind, length, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not type:length", ErrMalformedArg, part)
		}
		k := Kind(strings.TrimSpace(kind))
		if k != KindU64 && k != KindF64 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
		}
		n, err := strconv.Atoi(strings.TrimSpace(length))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: length %q", ErrMalformedArg, length)
		}
		requests = append(requests, Request{Kind: k, Length: n})
	}
	return requests, nil
}

// FormatRequests renders requests back into the types_of_arr syntax.
func FormatRequests(requests []Request) string {
	parts := make([]string, len(requests))
	for i, r := range requests {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
