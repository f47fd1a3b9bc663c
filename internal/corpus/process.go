package corpus

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Process cleans and enriches raw records into the processed corpus.
//
// Processing is pure and deterministic: the same input always yields the
// same output, and every raw record with a non-empty title appears exactly
// once in the result, in input order. Records whose title is empty after
// cleaning are dropped (they cannot be displayed or deduplicated) and
// counted in the returned drop count.
func Process(raws []RawRecord) (records []Record, dropped int) {
	records = make([]Record, 0, len(raws))

	for i, raw := range raws {
		title := CleanText(raw.UseCase)
		if title == "" {
			dropped++
			continue
		}

		description := CleanText(raw.Description)
		industry := CleanText(raw.Industry)

		rec := Record{
			ID:          fmt.Sprintf("use_case_%d", i),
			UseCase:     title,
			Industry:    industry,
			Description: description,
			Framework:   NormalizeFramework(raw.Framework, title, description),
			Complexity:  DetectComplexity(description),
			GithubLink:  raw.GithubLink,
		}
		rec.SearchableText = fmt.Sprintf("%s %s %s", rec.UseCase, rec.Description, rec.Industry)

		records = append(records, rec)
	}

	return records, dropped
}

// Document is the indexable text for a record, combining the display
// fields the same way the embedding index expects them.
func Document(rec Record) string {
	return fmt.Sprintf(
		"Use Case: %s\nIndustry: %s\nDescription: %s\nFramework: %s\nComplexity: %s",
		rec.UseCase, rec.Industry, rec.Description, rec.Framework, rec.Complexity,
	)
}

// Metadata returns the record fields as flat string metadata for the
// embedding index. Description is truncated to keep payloads bounded.
func Metadata(rec Record) map[string]string {
	return map[string]string{
		"use_case":    rec.UseCase,
		"industry":    rec.Industry,
		"framework":   rec.Framework,
		"complexity":  string(rec.Complexity),
		"github_link": rec.GithubLink,
		"description": truncate(rec.Description, 500),
	}
}

// truncate shortens s to at most limit bytes without splitting a rune.
// The result is always valid UTF-8 when the input is; gRPC backends
// reject string payloads that are not.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// LogSummary logs corpus statistics after loading.
func LogSummary(logger *zap.Logger, path string, records []Record) {
	byComplexity := map[Complexity]int{}
	for _, r := range records {
		byComplexity[r.Complexity]++
	}
	logger.Info("corpus loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("low", byComplexity[ComplexityLow]),
		zap.Int("medium", byComplexity[ComplexityMedium]),
		zap.Int("high", byComplexity[ComplexityHigh]),
	)
}
