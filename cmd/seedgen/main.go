package main

import (
	"flag"
	"os"

	"github.com/louisbranch/ringrand/internal/platform/config"
	"github.com/louisbranch/ringrand/internal/tools/seedgen"
)

func main() {
	cfg, err := seedgen.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := seedgen.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate seed: %v", err)
	}
}
