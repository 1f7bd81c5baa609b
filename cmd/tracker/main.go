package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/DINetworks/DI-U2U/pkg/app"
	"github.com/DINetworks/DI-U2U/pkg/app/tracker"
	"github.com/DINetworks/DI-U2U/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = tracker.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Tracker exited: %v\n", err)
		os.Exit(1)
	}
}
