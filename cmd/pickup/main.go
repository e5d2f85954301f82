package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JDODER260/pickupform/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config file path (optional)")
	skipSync := flag.Bool("no-sync", false, "skip the startup company database sync")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, SkipSync: *skipSync}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "pickup: %v\n", err)
		return 1
	}
	return 0
}
