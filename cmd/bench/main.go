package main

import (
	"flag"
	"os"

	"github.com/louisbranch/ringrand/internal/platform/config"
	"github.com/louisbranch/ringrand/internal/tools/bench"
)

func main() {
	cfg, err := bench.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if _, err := bench.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("bench: %v", err)
	}
}
