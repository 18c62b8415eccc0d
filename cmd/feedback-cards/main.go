package main

import (
	"flag"
	"fmt"
	"os"

	feedbackcards "github.com/VantageDataChat/GoFeedbackCards"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		input      = flag.String("input", "", "input table, .xlsx or .csv (overrides config)")
		output     = flag.String("output", "", "output directory (overrides config)")
		logMode    = flag.String("log", defaultLogMode(), "log mode: development or production")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println(feedbackcards.Version)
		return
	}

	log, err := buildLogger(*logMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := feedbackcards.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.InputPath = *input
	}
	if *output != "" {
		cfg.OutputDir = *output
	}

	gen := feedbackcards.NewGenerator(cfg, log)
	sum, err := gen.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d of %d rows to %s (%d skipped, %d failed)\n",
		sum.Generated, sum.Rows, sum.OutputDir, sum.Skipped, sum.Failed)
}

func defaultLogMode() string {
	if mode := os.Getenv("LOG_MODE"); mode != "" {
		return mode
	}
	return "development"
}

func buildLogger(mode string) (*zap.Logger, error) {
	if mode == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
