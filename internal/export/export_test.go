package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

func sampleResults() []retriever.Result {
	return []retriever.Result{
		{
			UseCase:        "Medical Diagnosis Assistant",
			Industry:       "Healthcare",
			Framework:      "CrewAI",
			Complexity:     "High",
			RelevanceScore: 0.91,
			GithubLink:     "https://github.com/example/diag",
			Description:    "Multi-agent diagnostic workflow",
		},
		{
			UseCase:        "Trade Monitor",
			Industry:       "Finance",
			Framework:      "LangGraph",
			Complexity:     "Medium",
			RelevanceScore: 0.74,
		},
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))

	var decoded []retriever.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResults(), decoded)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Medical Diagnosis Assistant", rows[1][0])
	assert.Equal(t, "0.9100", rows[1][4])
	assert.Equal(t, "", rows[2][5])
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "## 1. Medical Diagnosis Assistant")
	assert.Contains(t, out, "## 2. Trade Monitor")
	assert.Contains(t, out, "- **Industry**: Healthcare")
	assert.Contains(t, out, "https://github.com/example/diag")
	// No repository line for the entry without a link.
	assert.NotContains(t, out, "- **Repository**: \n")
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, nil))
	assert.Contains(t, buf.String(), "No matching use cases found.")
}

func TestWriteDispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil))
	require.NoError(t, Write(&buf, FormatCSV, nil))
	require.NoError(t, Write(&buf, FormatMarkdown, nil))

	err := Write(&buf, "xml", nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
