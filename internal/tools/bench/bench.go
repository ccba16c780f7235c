// Package bench measures generator throughput, optionally under pprof.
package bench

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/louisbranch/ringrand/internal/prng"
	"github.com/louisbranch/ringrand/internal/random"
	"github.com/pkg/profile"
)

// Profile modes.
const (
	ProfileOff = "off"
	ProfileCPU = "cpu"
	ProfileMem = "mem"
)

// Config holds benchmark configuration.
type Config struct {
	LengthU8   int
	Values     int
	SeedBytes  int
	Profile    string
	ProfileDir string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		LengthU8:   256,
		Values:     10_000_000,
		SeedBytes:  random.DefaultSeedBytes,
		Profile:    ProfileOff,
		ProfileDir: ".",
	}
	fs.IntVar(&cfg.LengthU8, "length", cfg.LengthU8, "state size in bytes, a multiple of 32")
	fs.IntVar(&cfg.Values, "values", cfg.Values, "number of u64 values to generate")
	fs.IntVar(&cfg.SeedBytes, "seed-bytes", cfg.SeedBytes, "random seed bytes")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "profile mode: off, cpu or mem")
	fs.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "directory for profile output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	return cfg, nil
}

// Result is one measured run.
type Result struct {
	Values  int
	Setup   time.Duration
	Elapsed time.Duration
	// Checksum XORs every value so the loop cannot be optimized away.
	Checksum uint64
}

// Run seeds a device from reader (crypto/rand when nil), generates
// cfg.Values words and writes a summary to out.
func Run(cfg Config, out io.Writer, reader io.Reader) (Result, error) {
	if out == nil {
		return Result{}, errors.New("output is required")
	}
	if cfg.Values <= 0 {
		return Result{}, errors.New("values must be greater than zero")
	}
	stop, err := startProfile(cfg.Profile, cfg.ProfileDir)
	if err != nil {
		return Result{}, err
	}
	defer stop()

	var seed []byte
	if reader == nil {
		seed, err = random.NewSeed(cfg.SeedBytes)
	} else {
		seed, err = random.ReadSeed(reader, cfg.SeedBytes)
	}
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	dev, err := prng.New(seed, cfg.LengthU8)
	if err != nil {
		return Result{}, fmt.Errorf("new device: %w", err)
	}
	result := Result{Values: cfg.Values, Setup: time.Since(start)}

	start = time.Now()
	for range cfg.Values {
		result.Checksum ^= dev.Uint64()
	}
	result.Elapsed = time.Since(start)

	perSecond := float64(cfg.Values) / max(result.Elapsed.Seconds(), 1e-9)
	_, err = fmt.Fprintf(out, "length_u8=%d values=%s setup=%v elapsed=%v rate=%s/s checksum=%016X\n",
		cfg.LengthU8,
		humanize.Comma(int64(cfg.Values)),
		result.Setup,
		result.Elapsed,
		humanize.SIWithDigits(perSecond, 2, ""),
		result.Checksum,
	)
	return result, err
}

func startProfile(mode, dir string) (func(), error) {
	var kind func(*profile.Profile)
	switch mode {
	case "", ProfileOff:
		return func() {}, nil
	case ProfileCPU:
		kind = profile.CPUProfile
	case ProfileMem:
		kind = profile.MemProfile
	default:
		return nil, fmt.Errorf("profile mode %q is not supported", mode)
	}
	p := profile.Start(kind, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop, nil
}
