// Package generate drives the generator from key=value arguments and writes
// the resulting transcript.
package generate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/ringrand/internal/prng/diffusion"
	"github.com/louisbranch/ringrand/internal/prng/dump"
)

// Argument keys.
const (
	ArgFilePath   = "file_path"
	ArgSeed       = "seed_u8"
	ArgLength     = "length_u8"
	ArgTypesOfArr = "types_of_arr"
)

var requiredArgs = []string{ArgFilePath, ArgSeed, ArgLength, ArgTypesOfArr}

var (
	// ErrMissingArg indicates a required key was not supplied.
	ErrMissingArg = errors.New("missing argument")
	// ErrMalformedArg indicates an argument whose value cannot be decoded.
	ErrMalformedArg = errors.New("malformed argument")
	// ErrUnknownArg indicates a key the command does not accept.
	ErrUnknownArg = errors.New("unknown argument")
	// ErrUnknownType indicates an output type other than u64 or f64.
	ErrUnknownType = errors.New("unknown output type")
)

// Config is a fully parsed command line.
type Config struct {
	FilePath string
	Seed     []byte
	LengthU8 int
	Requests []Request
}

// ParseConfig parses key=value arguments in any order. Nothing is opened or
// written here, so a parse failure never leaves a file behind.
func ParseConfig(args []string) (Config, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Config{}, fmt.Errorf("%w: %q is not key=value", ErrMalformedArg, arg)
		}
		if !isKnownArg(key) {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownArg, key)
		}
		if _, dup := values[key]; dup {
			return Config{}, fmt.Errorf("%w: %s given twice", ErrMalformedArg, key)
		}
		values[key] = value
	}
	for _, key := range requiredArgs {
		if _, ok := values[key]; !ok {
			return Config{}, fmt.Errorf("%w: %s", ErrMissingArg, key)
		}
	}

	filePath := strings.TrimSpace(values[ArgFilePath])
	if filePath == "" {
		return Config{}, fmt.Errorf("%w: %s is empty", ErrMissingArg, ArgFilePath)
	}
	cfg, err := ParseFields(values[ArgSeed], values[ArgLength], values[ArgTypesOfArr])
	if err != nil {
		return Config{}, err
	}
	cfg.FilePath = filePath
	return cfg, nil
}

// ParseFields decodes the generator inputs shared by every front end.
func ParseFields(seedU8, lengthU8, typesOfArr string) (Config, error) {
	var cfg Config
	seed, err := dump.ParseBytes(seedU8)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrMalformedArg, ArgSeed, err)
	}
	cfg.Seed = seed

	length, err := strconv.Atoi(strings.TrimSpace(lengthU8))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s %q", ErrMalformedArg, ArgLength, lengthU8)
	}
	if err := diffusion.ValidateLength(length); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrMalformedArg, ArgLength, err)
	}
	cfg.LengthU8 = length

	requests, err := ParseRequests(typesOfArr)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", ArgTypesOfArr, err)
	}
	cfg.Requests = requests
	return cfg, nil
}

// Values returns the total number of values cfg requests.
func (c Config) Values() int {
	total := 0
	for _, r := range c.Requests {
		total += r.Length
	}
	return total
}

func isKnownArg(key string) bool {
	for _, known := range requiredArgs {
		if key == known {
			return true
		}
	}
	return false
}
