// Package main provides the pipeline command that cleans, validates, and
// reports on a record set in one run.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"dqpipe/internal/config"
	"dqpipe/internal/logger"
	"dqpipe/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to pipeline YAML config")
	inputPath := flag.String("input", "", "Input records JSON: file path or http(s) URL (overrides config)")
	outputPath := flag.String("output", "", "Cleaned output JSON path (overrides config)")
	reportPath := flag.String("report", "", "Quality report path (overrides config)")
	limit := flag.Int("limit", -1, "Process only the first N records (overrides config)")
	flag.Parse()

	cfg := config.DefaultConfig()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *inputPath != "" {
		if strings.HasPrefix(*inputPath, "http://") || strings.HasPrefix(*inputPath, "https://") {
			cfg.Pipeline.Input = config.InputConfig{URL: *inputPath}
		} else {
			cfg.Pipeline.Input = config.InputConfig{File: *inputPath}
		}
	}

	if *outputPath != "" {
		cfg.Pipeline.Output.CleanedPath = *outputPath
	}

	if *reportPath != "" {
		cfg.Pipeline.Output.ReportPath = *reportPath
	}

	if *limit >= 0 {
		cfg.Pipeline.RecordLimit = *limit
	}

	if cfg.Pipeline.Input.GetSource() == "" {
		fmt.Println("Usage: pipeline -config <config.yaml> | -input <records.json> [-output <cleaned.json>] [-report <report.txt>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLoggerWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("🚀 Starting data quality pipeline")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Pipeline.Input.GetSource()))

	result, err := pipeline.New(cfg, log).Run()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Pipeline failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Processed %d records (valid: %d, invalid: %d)", result.Total, result.Valid, result.Invalid))
}
