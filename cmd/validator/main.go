// Package main provides the validator command-line tool for checking a
// record set and writing a quality report, without cleaning anything.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dqpipe/internal/loader"
	"dqpipe/internal/report"
	"dqpipe/internal/validator"
)

func main() {
	inputPath := flag.String("input", "", "Path or URL of input records JSON")
	reportPath := flag.String("report", "", "Path to quality report output file")
	showInvalid := flag.Bool("show-invalid", false, "Print each invalid record's reasons")
	flag.Parse()

	if *inputPath == "" || *reportPath == "" {
		fmt.Println("Usage: validator -input <records.json> -report <report.txt>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	records, err := loader.New().Load(*inputPath)
	if err != nil {
		log.Fatalf("Error loading records: %v\n", err)
	}

	fmt.Printf("📂 Loaded %d records from %s\n", len(records), *inputPath)

	v := validator.New()
	results := v.ValidateRecords(records)
	summary := report.Build(records, results)

	fmt.Printf("🔍 Validated %d records (valid: %d, invalid: %d)\n", summary.Total, summary.Valid, summary.Invalid)

	if *showInvalid {
		for _, inv := range v.InvalidRecords(records) {
			fmt.Printf("  record[%d]: %s\n", inv.Index, inv.Result)
		}
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(*reportPath), 0755); mkdirErr != nil {
		log.Fatalf("Error creating directory: %v\n", mkdirErr)
	}

	if err := os.WriteFile(*reportPath, []byte(summary.Render()), 0644); err != nil {
		log.Fatalf("Error writing report: %v\n", err)
	}

	fmt.Printf("✅ Report saved to: %s\n", *reportPath)
}
