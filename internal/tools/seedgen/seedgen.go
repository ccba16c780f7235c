// Package seedgen prints a random seed_u8 argument for the prng command.
package seedgen

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/ringrand/internal/prng/dump"
	"github.com/louisbranch/ringrand/internal/random"
)

// Config holds configuration for seed generation.
type Config struct {
	Bytes int
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: random.DefaultSeedBytes}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of seed bytes (default: 32)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the seed and writes it to out. A nil reader uses crypto/rand.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes <= 0 {
		return errors.New("bytes must be greater than zero")
	}
	if out == nil {
		return errors.New("output is required")
	}

	var seed []byte
	var err error
	if reader == nil {
		seed, err = random.NewSeed(cfg.Bytes)
	} else {
		seed, err = random.ReadSeed(reader, cfg.Bytes)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "seed_u8=%s\n", dump.JoinBytes(seed))
	return err
}
