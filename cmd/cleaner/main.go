// Package main provides the cleaner command-line tool for normalizing a
// record set without validating it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dqpipe/internal/cleaner"
	"dqpipe/internal/loader"
	"dqpipe/internal/models"
)

func main() {
	inputPath := flag.String("input", "", "Path or URL of input records JSON")
	outputPath := flag.String("output", "", "Path to cleaned output JSON file")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Usage: cleaner -input <records.json> -output <cleaned.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	records, err := loader.New().Load(*inputPath)
	if err != nil {
		log.Fatalf("Error loading records: %v\n", err)
	}

	fmt.Printf("📂 Loaded %d records from %s\n", len(records), *inputPath)

	c := cleaner.New()
	cleaned := make([]models.Record, len(records))

	for i, rec := range records {
		cleaned[i] = c.CleanRecord(rec)
	}

	fmt.Printf("🧹 Cleaned %d records\n", len(cleaned))

	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath), 0755); mkdirErr != nil {
		log.Fatalf("Error creating directory: %v\n", mkdirErr)
	}

	jsonData, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling JSON: %v\n", err)
	}

	if err := os.WriteFile(*outputPath, jsonData, 0644); err != nil {
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("✅ Saved to: %s\n", *outputPath)
}
