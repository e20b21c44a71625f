// Package main provides the verify command-line tool for checking that a
// quality report still matches the cleaned dataset it was generated from.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"dqpipe/pkg/provenance"
)

func main() {
	reportPath := flag.String("report", "", "Path to quality report (e.g., quality_report.txt)")
	dataPath := flag.String("data", "", "Path to cleaned dataset (e.g., cleaned_output.json)")
	flag.Parse()

	if *reportPath == "" || *dataPath == "" {
		fmt.Println("Usage: verify -report <report.txt> -data <cleaned.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	reportBytes, err := os.ReadFile(*reportPath)
	if err != nil {
		log.Fatalf("Error reading report: %v\n", err)
	}

	fmt.Printf("📂 Reading: %s (%d bytes)\n", *reportPath, len(reportBytes))

	dataset, err := os.ReadFile(*dataPath)
	if err != nil {
		log.Fatalf("Error reading dataset: %v\n", err)
	}

	rec, _ := provenance.Extract(string(reportBytes))
	if rec != nil {
		fmt.Printf("🔍 Stamp: generated %s from %s\n", rec.GeneratedAt.Format("2006-01-02 15:04:05 MST"), rec.Source)
	}

	if _, err := provenance.Verify(string(reportBytes), dataset); err != nil {
		log.Fatalf("❌ Verification failed: %v\n", err)
	}

	fmt.Printf("✅ Report matches dataset: %s\n", *dataPath)
}
