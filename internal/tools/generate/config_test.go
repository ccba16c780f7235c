package generate

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/louisbranch/ringrand/internal/prng/diffusion"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig([]string{
		"types_of_arr=u64:3,f64:2",
		"length_u8=64",
		"seed_u8=00,0A,ff",
		"file_path=out.txt",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.FilePath != "out.txt" {
		t.Fatalf("file_path = %q, want out.txt", cfg.FilePath)
	}
	if !bytes.Equal(cfg.Seed, []byte{0x00, 0x0a, 0xff}) {
		t.Fatalf("seed = %X", cfg.Seed)
	}
	if cfg.LengthU8 != 64 {
		t.Fatalf("length_u8 = %d, want 64", cfg.LengthU8)
	}
	want := []Request{{Kind: KindU64, Length: 3}, {Kind: KindF64, Length: 2}}
	if !slices.Equal(cfg.Requests, want) {
		t.Fatalf("requests = %v, want %v", cfg.Requests, want)
	}
}

func TestParseConfigAllowsEmptySeed(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig([]string{"file_path=o", "seed_u8=", "length_u8=32", "types_of_arr=u64:1"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if len(cfg.Seed) != 0 {
		t.Fatalf("seed = %X, want empty", cfg.Seed)
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"file_path":    "file_path=out.txt",
		"seed_u8":      "seed_u8=01,02",
		"length_u8":    "length_u8=32",
		"types_of_arr": "types_of_arr=u64:1",
	}
	with := func(overrides ...string) []string {
		args := []string{valid["file_path"], valid["seed_u8"], valid["length_u8"], valid["types_of_arr"]}
		return append(args, overrides...)
	}
	without := func(key string) []string {
		var args []string
		for _, k := range []string{"file_path", "seed_u8", "length_u8", "types_of_arr"} {
			if k != key {
				args = append(args, valid[k])
			}
		}
		return args
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no args", args: nil, want: ErrMissingArg},
		{name: "missing file", args: without("file_path"), want: ErrMissingArg},
		{name: "missing seed", args: without("seed_u8"), want: ErrMissingArg},
		{name: "missing length", args: without("length_u8"), want: ErrMissingArg},
		{name: "missing types", args: without("types_of_arr"), want: ErrMissingArg},
		{name: "empty file", args: append(without("file_path"), "file_path= "), want: ErrMissingArg},
		{name: "no equals", args: with("verbose"), want: ErrMalformedArg},
		{name: "empty key", args: with("=x"), want: ErrMalformedArg},
		{name: "unknown key", args: with("mode=fast"), want: ErrUnknownArg},
		{name: "duplicate key", args: with("length_u8=64"), want: ErrMalformedArg},
		{name: "bad seed hex", args: append(without("seed_u8"), "seed_u8=0G"), want: ErrMalformedArg},
		{name: "long seed token", args: append(without("seed_u8"), "seed_u8=100"), want: ErrMalformedArg},
		{name: "bad length", args: append(without("length_u8"), "length_u8=abc"), want: ErrMalformedArg},
		{name: "length not multiple", args: append(without("length_u8"), "length_u8=48"), want: diffusion.ErrInvalidLength},
		{name: "zero length", args: append(without("length_u8"), "length_u8=0"), want: ErrMalformedArg},
		{name: "unknown type", args: append(without("types_of_arr"), "types_of_arr=u32:4"), want: ErrUnknownType},
		{name: "bad count", args: append(without("types_of_arr"), "types_of_arr=u64:x"), want: ErrMalformedArg},
		{name: "empty types", args: append(without("types_of_arr"), "types_of_arr="), want: ErrMalformedArg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseConfig(tt.args); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseRequests(t *testing.T) {
	t.Parallel()

	got, err := ParseRequests(" u64:4 , f64:0,u64:10 ")
	if err != nil {
		t.Fatalf("parse requests: %v", err)
	}
	want := []Request{{KindU64, 4}, {KindF64, 0}, {KindU64, 10}}
	if !slices.Equal(got, want) {
		t.Fatalf("requests = %v, want %v", got, want)
	}
	if s := FormatRequests(got); s != "u64:4,f64:0,u64:10" {
		t.Fatalf("format = %q", s)
	}
}

func TestParseRequestsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want error
	}{
		{in: "u64", want: ErrMalformedArg},
		{in: "u64:-1", want: ErrMalformedArg},
		{in: "i64:2", want: ErrUnknownType},
		{in: "U64:2", want: ErrUnknownType},
		{in: "u64:1,", want: ErrMalformedArg},
	}
	for _, tt := range tests {
		if _, err := ParseRequests(tt.in); !errors.Is(err, tt.want) {
			t.Fatalf("ParseRequests(%q) error = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestKindKey(t *testing.T) {
	t.Parallel()

	if KindU64.Key() != "v_vec_u64" || KindF64.Key() != "v_vec_f64" {
		t.Fatalf("keys = %q/%q", KindU64.Key(), KindF64.Key())
	}
}

func TestParseFieldsAndValues(t *testing.T) {
	t.Parallel()

	cfg, err := ParseFields("01", "96", "u64:5,f64:7")
	if err != nil {
		t.Fatalf("parse fields: %v", err)
	}
	if cfg.FilePath != "" {
		t.Fatalf("file_path = %q, want empty", cfg.FilePath)
	}
	if cfg.Values() != 12 {
		t.Fatalf("values = %d, want 12", cfg.Values())
	}
}
