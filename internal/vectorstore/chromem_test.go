package vectorstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// axisEmbedder is a deterministic test embedder: text mentioning a known
// topic gets a unit vector on that topic's axis, with a small shared
// component so unrelated texts still have nonzero similarity.
type axisEmbedder struct{}

var topicAxes = map[string]int{
	"healthcare": 0,
	"finance":    1,
	"legal":      2,
}

func (axisEmbedder) embed(text string) []float32 {
	vec := []float32{0.1, 0.1, 0.1, 0.1}
	lower := strings.ToLower(text)
	for topic, axis := range topicAxes {
		if strings.Contains(lower, topic) {
			vec[axis] = 1
		}
	}
	return vec
}

func (e axisEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.embed(t)
	}
	return out, nil
}

func (e axisEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func newTestChromemStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(ChromemConfig{Path: t.TempDir()}, axisEmbedder{}, zap.NewNop())
	require.NoError(t, err)
	return store
}

func testDocs() []Document {
	return []Document{
		{ID: "use_case_0", Content: "healthcare diagnostics agent", Metadata: map[string]string{"industry": "Healthcare"}},
		{ID: "use_case_1", Content: "finance trading bot", Metadata: map[string]string{"industry": "Finance"}},
		{ID: "use_case_2", Content: "legal document reviewer", Metadata: map[string]string{"industry": "Legal"}},
	}
}

func TestChromemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestChromemStore(t)

	require.NoError(t, store.AddDocuments(ctx, testDocs()))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	results, err := store.Search(ctx, "healthcare ai", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "use_case_0", results[0].ID)
	assert.Equal(t, "Healthcare", results[0].Metadata["industry"])
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
}

func TestChromemStoreClampK(t *testing.T) {
	ctx := context.Background()
	store := newTestChromemStore(t)
	require.NoError(t, store.AddDocuments(ctx, testDocs()))

	// chromem refuses k above the document count; the store clamps instead.
	results, err := store.Search(ctx, "finance", 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestChromemStoreUnbuiltIndex(t *testing.T) {
	store := newTestChromemStore(t)

	_, err := store.Search(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
}

func TestChromemStoreEmptyAdd(t *testing.T) {
	store := newTestChromemStore(t)
	err := store.AddDocuments(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyDocuments)
}

func TestChromemStoreSearchValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestChromemStore(t)
	require.NoError(t, store.AddDocuments(ctx, testDocs()))

	_, err := store.Search(ctx, "", 5)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = store.Search(ctx, "x", 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestChromemStoreReset(t *testing.T) {
	ctx := context.Background()
	store := newTestChromemStore(t)
	require.NoError(t, store.AddDocuments(ctx, testDocs()))
	require.NoError(t, store.Reset(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = store.Search(ctx, "healthcare", 1)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
}

func TestNewChromemStoreRequiresEmbedder(t *testing.T) {
	_, err := NewChromemStore(ChromemConfig{Path: t.TempDir()}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewStoreFactory(t *testing.T) {
	t.Run("defaults to chromem", func(t *testing.T) {
		store, err := NewStore(Config{Chromem: ChromemConfig{Path: t.TempDir()}}, axisEmbedder{}, zap.NewNop())
		require.NoError(t, err)
		_, ok := store.(*ChromemStore)
		assert.True(t, ok)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewStore(Config{Provider: "pinecone"}, axisEmbedder{}, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
