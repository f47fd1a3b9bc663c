package retriever

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/advisord/internal/corpus"
	"github.com/fyrsmithlabs/advisord/internal/vectorstore"
)

// fakeStore returns canned results and records the calls it receives.
type fakeStore struct {
	results   []vectorstore.SearchResult
	searchErr error
	count     int

	lastK  int
	added  []vectorstore.Document
	resets int
}

func (s *fakeStore) AddDocuments(_ context.Context, docs []vectorstore.Document) error {
	s.added = append(s.added, docs...)
	s.count += len(docs)
	return nil
}

func (s *fakeStore) Search(_ context.Context, _ string, k int) ([]vectorstore.SearchResult, error) {
	s.lastK = k
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if k > len(s.results) {
		k = len(s.results)
	}
	return s.results[:k], nil
}

func (s *fakeStore) Count(context.Context) (int, error) { return s.count, nil }

func (s *fakeStore) Reset(context.Context) error {
	s.resets++
	s.count = 0
	return nil
}

func (s *fakeStore) Close() error { return nil }

func match(title, industry, framework, complexity string, sim float32) vectorstore.SearchResult {
	return vectorstore.SearchResult{
		ID:         title,
		Similarity: sim,
		Metadata: map[string]string{
			"use_case":    title,
			"industry":    industry,
			"framework":   framework,
			"complexity":  complexity,
			"description": "description of " + title,
			"github_link": "https://github.com/example/" + title,
		},
	}
}

func corpusRecords() []corpus.Record {
	return []corpus.Record{
		{ID: "use_case_0", UseCase: "Diag", Industry: "Healthcare", Framework: "CrewAI", Complexity: corpus.ComplexityHigh},
		{ID: "use_case_1", UseCase: "Trade", Industry: "Finance", Framework: "LangGraph", Complexity: corpus.ComplexityLow},
		{ID: "use_case_2", UseCase: "Review", Industry: "Legal", Framework: corpus.FrameworkUnknown, Complexity: corpus.ComplexityMedium},
		{ID: "use_case_3", UseCase: "Claims", Industry: "Healthcare", Framework: "CrewAI", Complexity: corpus.ComplexityMedium},
	}
}

func newTestRetriever(t *testing.T, store vectorstore.Store) *Retriever {
	t.Helper()
	r, err := New(store, corpusRecords(), zap.NewNop())
	require.NoError(t, err)
	return r
}

func TestRetrieveValidation(t *testing.T) {
	r := newTestRetriever(t, &fakeStore{})

	_, err := r.Retrieve(context.Background(), "", 5, nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = r.Retrieve(context.Background(), "   ", 5, nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = r.Retrieve(context.Background(), "agents", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestRetrieveOrderAndBound(t *testing.T) {
	store := &fakeStore{
		count: 3,
		results: []vectorstore.SearchResult{
			match("a", "Healthcare", "CrewAI", "High", 0.9),
			match("b", "Finance", "LangGraph", "Low", 0.7),
			match("c", "Legal", "Unknown", "Medium", 0.5),
		},
	}
	r := newTestRetriever(t, store)

	results, err := r.Retrieve(context.Background(), "healthcare diagnostics agent", 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a", results[0].UseCase)
	assert.GreaterOrEqual(t, results[0].RelevanceScore, results[1].RelevanceScore)
	for _, res := range results {
		assert.NotEmpty(t, res.Industry)
		assert.LessOrEqual(t, res.RelevanceScore, 1.0)
		assert.GreaterOrEqual(t, res.RelevanceScore, 0.0)
	}
}

func TestRetrieveFilters(t *testing.T) {
	store := &fakeStore{
		count: 4,
		results: []vectorstore.SearchResult{
			match("a", "Healthcare", "CrewAI", "High", 0.9),
			match("b", "Finance & Banking", "LangGraph", "Low", 0.8),
			match("c", "Healthcare", "LangGraph", "Medium", 0.7),
			match("d", "Legal", "CrewAI", "Medium", 0.6),
		},
	}
	r := newTestRetriever(t, store)
	ctx := context.Background()

	t.Run("industry substring case-insensitive", func(t *testing.T) {
		results, err := r.Retrieve(ctx, "agents", 10, &Filters{Industry: "finance"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "b", results[0].UseCase)
	})

	t.Run("framework exact case-insensitive", func(t *testing.T) {
		results, err := r.Retrieve(ctx, "trading bot", 10, &Filters{Framework: "crewai"})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, res := range results {
			assert.Equal(t, "CrewAI", res.Framework)
		}
	})

	t.Run("complexity exact", func(t *testing.T) {
		results, err := r.Retrieve(ctx, "agents", 10, &Filters{Complexity: "medium"})
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("combined filters", func(t *testing.T) {
		results, err := r.Retrieve(ctx, "agents", 10, &Filters{Industry: "health", Framework: "LangGraph"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "c", results[0].UseCase)
	})

	t.Run("no match is empty not error", func(t *testing.T) {
		results, err := r.Retrieve(ctx, "trading bot", 10, &Filters{Framework: "AutoGen"})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestRetrieveOverfetchesWhenFiltered(t *testing.T) {
	store := &fakeStore{count: 1, results: []vectorstore.SearchResult{match("a", "Healthcare", "CrewAI", "High", 0.9)}}
	r := newTestRetriever(t, store)
	ctx := context.Background()

	_, err := r.Retrieve(ctx, "agents", 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastK)

	_, err = r.Retrieve(ctx, "agents", 5, &Filters{Industry: "Healthcare"})
	require.NoError(t, err)
	assert.Equal(t, 5*overfetchFactor, store.lastK)
}

func TestRetrieveIndexUnavailable(t *testing.T) {
	store := &fakeStore{searchErr: vectorstore.ErrIndexUnavailable}
	r := newTestRetriever(t, store)

	_, err := r.Retrieve(context.Background(), "agents", 5, nil)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
}

func TestListingsIdempotentAndSorted(t *testing.T) {
	r := newTestRetriever(t, &fakeStore{})

	first := r.Industries()
	second := r.Industries()
	assert.Equal(t, []string{"Finance", "Healthcare", "Legal"}, first)
	assert.Equal(t, first, second)

	// Unknown frameworks are excluded from the listing.
	assert.Equal(t, []string{"CrewAI", "LangGraph"}, r.Frameworks())
}

func TestRebuild(t *testing.T) {
	store := &fakeStore{}
	r := newTestRetriever(t, store)
	ctx := context.Background()

	require.NoError(t, r.Rebuild(ctx, corpusRecords()))
	assert.Len(t, store.added, 4)
	assert.Equal(t, 0, store.resets)

	// A second rebuild resets the non-empty index first.
	require.NoError(t, r.Rebuild(ctx, corpusRecords()[:2]))
	assert.Equal(t, 1, store.resets)
	assert.Equal(t, []string{"Finance", "Healthcare"}, r.Industries())
}

func TestRebuildEmptyCorpus(t *testing.T) {
	r := newTestRetriever(t, &fakeStore{})
	err := r.Rebuild(context.Background(), nil)
	assert.ErrorIs(t, err, corpus.ErrEmptyCorpus)
}

func TestEnsureIndex(t *testing.T) {
	store := &fakeStore{}
	r := newTestRetriever(t, store)
	ctx := context.Background()

	require.NoError(t, r.EnsureIndex(ctx))
	assert.Len(t, store.added, 4)

	// Already built: no re-index.
	require.NoError(t, r.EnsureIndex(ctx))
	assert.Len(t, store.added, 4)
}
