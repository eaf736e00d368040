package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("deploykit %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	// Load configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	// Setup logger
	logger := SetupLogger(cfg)
	logger.Info("starting deploykit",
		"version", Version,
		"config", *configPath,
	)

	// Create application
	app, err := NewApp(cfg, logger)
	if err != nil {
		if aErr, ok := err.(*AppError); ok {
			logger.Error("failed to create application",
				"error", aErr.Err,
				"operation", aErr.Op,
			)
			return aErr.ExitCode
		}
		logger.Error("failed to create application", "error", err)
		return ExitConfigError
	}
	defer app.Close()

	// Dispatch the command
	if err := app.Run(context.Background(), flag.Args()); err != nil {
		if aErr, ok := err.(*AppError); ok {
			logger.Error("command failed",
				"error", aErr.Err,
				"operation", aErr.Op,
			)
			return aErr.ExitCode
		}
		logger.Error("command failed", "error", err)
		return ExitCommandError
	}

	return ExitSuccess
}
