// Package pipeline wires loading, cleaning, validation, and reporting into a
// single batch run.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dqpipe/internal/cleaner"
	"dqpipe/internal/config"
	"dqpipe/internal/loader"
	"dqpipe/internal/logger"
	"dqpipe/internal/models"
	"dqpipe/internal/report"
	"dqpipe/internal/validator"
	"dqpipe/pkg/provenance"
)

// Pipeline runs the load, clean, validate, report flow described by one
// configuration.
type Pipeline struct {
	cfg       *config.Config
	log       *logger.Logger
	loader    *loader.Loader
	cleaner   *cleaner.Cleaner
	validator *validator.Validator
}

// New builds a pipeline from configuration.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		log:       log,
		loader:    loader.NewWithConfig(&cfg.Retry),
		cleaner:   cleaner.NewWithOptions(CleanOptions(&cfg.Cleaning)),
		validator: validator.NewWithRules(cfg.Validation.RequiredFields, LengthRules(&cfg.Validation)),
	}
}

// CleanOptions converts the cleaning config block into cleaner options.
func CleanOptions(cfg *config.CleaningConfig) cleaner.Options {
	return cleaner.Options{
		RemoveHTML:         cfg.RemoveHTML,
		NormalizeUnicode:   cfg.NormalizeUnicode,
		HandleSpecial:      cfg.HandleSpecial,
		CollapseWhitespace: cfg.CollapseWhitespace,
		SpecialChars: cleaner.SpecialCharOptions{
			ReplaceControl:     cfg.ReplaceControl,
			KeepPrintableOnly:  cfg.KeepPrintableOnly,
			ReplaceCurlyQuotes: cfg.ReplaceCurlyQuotes,
		},
	}
}

// LengthRules converts the validation config block into validator rules.
func LengthRules(cfg *config.ValidationConfig) []validator.LengthRule {
	rules := make([]validator.LengthRule, 0, len(cfg.MinLengths))
	for _, rule := range cfg.MinLengths {
		rules = append(rules, validator.LengthRule{Field: rule.Field, Min: rule.Min})
	}

	return rules
}

// Result summarizes one pipeline run.
type Result struct {
	Total   int
	Valid   int
	Invalid int
}

// Run executes the full pipeline and writes the cleaned dataset and the
// quality report.
func (p *Pipeline) Run() (*Result, error) {
	// Phase 1: load
	start := time.Now()
	source := p.cfg.Pipeline.Input.GetSource()
	p.log.Info("Loading records", "source", source)

	records, err := p.loader.Load(source)
	if err != nil {
		return nil, fmt.Errorf("loading failed: %w", err)
	}

	if limit := p.cfg.Pipeline.RecordLimit; limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	p.log.Info("Loaded records", "count", len(records), "duration", time.Since(start))

	// Phase 2: clean
	cleanStart := time.Now()

	cleaned := make([]models.Record, len(records))
	for i, rec := range records {
		cleaned[i] = p.cleaner.CleanRecord(rec)
	}

	p.log.Info("Cleaned records", "count", len(cleaned), "duration", time.Since(cleanStart))

	// Phase 3: validate and aggregate
	results := p.validator.ValidateRecords(cleaned)
	summary := report.Build(cleaned, results)
	p.log.Info("Validated records", "valid", summary.Valid, "invalid", summary.Invalid)

	// Phase 4: write artifacts
	data, err := p.writeCleaned(cleaned, results)
	if err != nil {
		return nil, err
	}

	if err := p.writeReport(summary, data); err != nil {
		return nil, err
	}

	return &Result{Total: summary.Total, Valid: summary.Valid, Invalid: summary.Invalid}, nil
}

// Annotate builds the output form of one record: every field of the cleaned
// record plus a _valid flag and, for failing records, the reason list.
func Annotate(record models.Record, result models.ValidationResult) map[string]any {
	out := make(map[string]any, len(record)+2)
	for key, value := range record {
		out[key] = value
	}

	out["_valid"] = result.IsValid
	if !result.IsValid {
		out["_validation_reasons"] = result.Reasons
	}

	return out
}

func (p *Pipeline) writeCleaned(records []models.Record, results []models.ValidationResult) ([]byte, error) {
	annotated := make([]map[string]any, len(records))
	for i, rec := range records {
		annotated[i] = Annotate(rec, results[i])
	}

	var (
		data []byte
		err  error
	)

	if p.cfg.Pipeline.Output.PrettyPrint {
		data, err = json.MarshalIndent(annotated, "", "  ")
	} else {
		data, err = json.Marshal(annotated)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleaned records: %w", err)
	}

	path := p.cfg.Pipeline.Output.CleanedPath
	if err := writeFile(path, data); err != nil {
		return nil, err
	}

	p.log.Info("Wrote cleaned records", "path", path)

	return data, nil
}

// writeReport renders the summary and stamps it with the hash of the cleaned
// dataset so the pair can be verified later.
func (p *Pipeline) writeReport(summary *report.Summary, dataset []byte) error {
	text := provenance.Stamp(summary.Render(), p.cfg.Pipeline.Input.GetSource(), dataset)

	path := p.cfg.Pipeline.Output.ReportPath
	if err := writeFile(path, []byte(text)); err != nil {
		return err
	}

	p.log.Info("Wrote quality report", "path", path)

	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
