package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/co2dash/internal/dashcheck"
	"github.com/okian/co2dash/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8050", "Base URL of the dashboard")
		countries = flag.Int("countries", 0, "Number of countries to walk, 0 for all")
		workers   = flag.Int("workers", runtime.NumCPU()*dashcheck.WorkerMultiplier, "Number of concurrent walkers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Log every walked country")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		dashcheck.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &dashcheck.Config{
		BaseURL:   *baseURL,
		Countries: *countries,
		Workers:   *workers,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if _, err := dashcheck.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
