package corpus

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleRaws() []RawRecord {
	return []RawRecord{
		{
			UseCase:     "**Healthcare** Diagnostics Agent",
			Industry:    "Healthcare",
			Description: "Multi-agent system for diagnostics",
			GithubLink:  "https://github.com/example/diag",
		},
		{
			UseCase:     "  ",
			Industry:    "Finance",
			Description: "should be dropped",
		},
		{
			UseCase:     "Trading Bot",
			Industry:    "Finance",
			Description: "A simple crewai trading assistant",
			GithubLink:  "https://github.com/example/trade",
		},
	}
}

func TestProcess(t *testing.T) {
	records, dropped := Process(sampleRaws())

	require.Len(t, records, 2)
	assert.Equal(t, 1, dropped)

	first := records[0]
	assert.Equal(t, "use_case_0", first.ID)
	assert.Equal(t, "Healthcare Diagnostics Agent", first.UseCase)
	assert.Equal(t, ComplexityHigh, first.Complexity)
	assert.Equal(t, FrameworkUnknown, first.Framework)
	assert.Contains(t, first.SearchableText, "Healthcare")

	second := records[1]
	// IDs track raw input position, so the dropped record leaves a gap.
	assert.Equal(t, "use_case_2", second.ID)
	assert.Equal(t, ComplexityLow, second.Complexity)
	assert.Equal(t, "CrewAI", second.Framework)
}

func TestProcessDeterministic(t *testing.T) {
	a, _ := Process(sampleRaws())
	b, _ := Process(sampleRaws())
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Process is not deterministic for identical input")
	}
}

func TestProcessInvariants(t *testing.T) {
	records, _ := Process(sampleRaws())
	for _, rec := range records {
		assert.NotEmpty(t, rec.UseCase)
		assert.NotEmpty(t, rec.Framework)
		assert.Contains(t, []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh}, rec.Complexity)
	}
}

func TestDocumentAndMetadata(t *testing.T) {
	records, _ := Process(sampleRaws())
	rec := records[0]

	doc := Document(rec)
	assert.True(t, strings.HasPrefix(doc, "Use Case: Healthcare Diagnostics Agent"))
	assert.Contains(t, doc, "Industry: Healthcare")

	meta := Metadata(rec)
	assert.Equal(t, rec.UseCase, meta["use_case"])
	assert.Equal(t, string(rec.Complexity), meta["complexity"])
	assert.Equal(t, rec.GithubLink, meta["github_link"])
}

func TestMetadataTruncatesDescription(t *testing.T) {
	rec := Record{UseCase: "x", Description: strings.Repeat("a", 600)}
	meta := Metadata(rec)
	assert.Len(t, meta["description"], 500)
}

func TestMetadataTruncatesOnRuneBoundary(t *testing.T) {
	// The two-byte rune straddles the 500-byte cut; a byte slice would
	// leave a dangling lead byte and invalid UTF-8.
	rec := Record{
		UseCase:     "x",
		Description: strings.Repeat("a", 499) + "é" + strings.Repeat("b", 100),
	}
	meta := Metadata(rec)
	desc := meta["description"]

	assert.True(t, utf8.ValidString(desc))
	assert.Equal(t, strings.Repeat("a", 499), desc)
	assert.LessOrEqual(t, len(desc), 500)
}

func TestMetadataKeepsShortUnicodeDescription(t *testing.T) {
	meta := Metadata(Record{UseCase: "x", Description: "café agenté"})
	assert.Equal(t, "café agenté", meta["description"])
}

func TestLogSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	records, _ := Process(sampleRaws())

	LogSummary(zap.New(core), "data/use_cases.json", records)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "corpus loaded", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "data/use_cases.json", fields["path"])
	assert.EqualValues(t, 2, fields["records"])
	assert.EqualValues(t, 1, fields["low"])
	assert.EqualValues(t, 1, fields["high"])
}

func TestLoadProcessesAndPersists(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "use_cases.json")
	raws := sampleRaws()
	require.NoError(t, saveRawForTest(rawPath, raws))

	records, err := Load(rawPath)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Second load reads the persisted processed file.
	again, err := Load(rawPath)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrCorpusNotFound)
}

func TestProcessedPath(t *testing.T) {
	assert.Equal(t, "data/use_cases_processed.json", ProcessedPath("data/use_cases.json"))
}
