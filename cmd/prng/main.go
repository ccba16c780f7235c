// Package main writes a generator transcript described by key=value arguments.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	prngcmd "github.com/louisbranch/ringrand/internal/cmd/prng"
	"github.com/louisbranch/ringrand/internal/platform/config"
)

func main() {
	cfg, err := prngcmd.ParseConfig(os.Args[1:])
	if err != nil {
		config.Exitf("parse args: %v", err)
	}
	log.SetPrefix("[PRNG] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := prngcmd.Run(ctx, cfg); err != nil {
		config.Exitf("generate: %v", err)
	}
}
