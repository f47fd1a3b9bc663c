// Package retriever turns a free-text query plus structured filters into a
// ranked, deduplicated set of use-case recommendations.
//
// The retriever is the deterministic half of the recommendation core: it
// runs an unfiltered similarity search against the embedding index,
// converts similarity to a relevance score, applies the structured
// post-filters, and exposes the distinct industry/framework values for
// filter menus. It holds no mutable state besides the index itself; index
// rebuilds take an exclusive lock against in-flight queries.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/advisord/internal/corpus"
	"github.com/fyrsmithlabs/advisord/internal/vectorstore"
)

// Sentinel errors for retrieval operations.
var (
	// ErrInvalidQuery is returned for empty queries or non-positive k.
	// Never retried; surfaced directly to the caller.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrIndexUnavailable mirrors the store sentinel so callers can match
	// it without importing vectorstore.
	ErrIndexUnavailable = vectorstore.ErrIndexUnavailable
)

// overfetchFactor widens the candidate set when filters are active. Filters
// are applied after the similarity search, so without over-fetching an
// aggressive filter would empty the result list more often than necessary.
// A filtered search can still return fewer than k results; that is accepted
// and never corrected by re-querying.
const overfetchFactor = 4

// Result is one recommendation: the record fields flattened plus the
// query-relative relevance score.
type Result struct {
	UseCase        string  `json:"use_case"`
	Industry       string  `json:"industry"`
	Framework      string  `json:"framework"`
	Description    string  `json:"description"`
	GithubLink     string  `json:"github_link"`
	Complexity     string  `json:"complexity"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Filters narrows results after the similarity search. All matches are
// case-insensitive: industry is a substring match, framework and
// complexity are exact.
type Filters struct {
	Industry   string
	Framework  string
	Complexity string
}

// Empty reports whether no filter is set.
func (f *Filters) Empty() bool {
	return f == nil || (f.Industry == "" && f.Framework == "" && f.Complexity == "")
}

// Matches applies the filter predicate to a result.
func (f *Filters) Matches(r Result) bool {
	if f == nil {
		return true
	}
	if f.Industry != "" && !strings.Contains(strings.ToLower(r.Industry), strings.ToLower(f.Industry)) {
		return false
	}
	if f.Framework != "" && !strings.EqualFold(f.Framework, r.Framework) {
		return false
	}
	if f.Complexity != "" && !strings.EqualFold(f.Complexity, r.Complexity) {
		return false
	}
	return true
}

// Retriever answers filtered semantic queries over the use-case corpus.
//
// Safe for concurrent use: queries share a read lock, Rebuild takes the
// write lock so index construction never races a search.
type Retriever struct {
	mu     sync.RWMutex
	store  vectorstore.Store
	logger *zap.Logger

	records    []corpus.Record
	industries []string
	frameworks []string
}

// New creates a Retriever over the given store and processed corpus.
// The distinct industry and framework listings are computed once here and
// stay fixed until Rebuild.
func New(store vectorstore.Store, records []corpus.Record, logger *zap.Logger) (*Retriever, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Retriever{
		store:  store,
		logger: logger,
	}
	r.setCorpus(records)
	return r, nil
}

// setCorpus replaces the corpus snapshot and recomputes the cached
// listings. Caller must hold the write lock (or be the constructor).
func (r *Retriever) setCorpus(records []corpus.Record) {
	industrySet := make(map[string]struct{})
	frameworkSet := make(map[string]struct{})
	for _, rec := range records {
		if industry := strings.TrimSpace(rec.Industry); industry != "" {
			industrySet[industry] = struct{}{}
		}
		if fw := strings.TrimSpace(rec.Framework); fw != "" && fw != corpus.FrameworkUnknown {
			frameworkSet[fw] = struct{}{}
		}
	}

	r.records = records
	r.industries = sortedKeys(industrySet)
	r.frameworks = sortedKeys(frameworkSet)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Retrieve returns up to k results for query, ordered by non-increasing
// relevance score with ties kept in index order.
//
// relevance_score is the store's cosine similarity clamped to [0,1], which
// for cosine distance equals 1 - distance. An empty query or non-positive
// k returns ErrInvalidQuery; an unbuilt index returns ErrIndexUnavailable.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, filters *Filters) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must be non-empty", ErrInvalidQuery)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidQuery, k)
	}

	start := time.Now()
	results, err := r.search(ctx, query, k, filters)
	observeSearch(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("retrieved use cases",
		zap.String("query", query),
		zap.Int("k", k),
		zap.Int("results", len(results)),
		zap.Bool("filtered", !filters.Empty()),
	)
	return results, nil
}

func (r *Retriever) search(ctx context.Context, query string, k int, filters *Filters) ([]Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fetchK := k
	if !filters.Empty() {
		fetchK = k * overfetchFactor
	}

	matches, err := r.store.Search(ctx, query, fetchK)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, k)
	for _, m := range matches {
		res := resultFromMetadata(m)
		if !filters.Matches(res) {
			continue
		}
		results = append(results, res)
		if len(results) == k {
			break
		}
	}
	return results, nil
}

// resultFromMetadata flattens stored metadata into a Result. The store
// returns matches ordered by similarity, so result order is preserved.
func resultFromMetadata(m vectorstore.SearchResult) Result {
	framework := m.Metadata["framework"]
	if framework == "" {
		framework = corpus.FrameworkUnknown
	}
	complexity := m.Metadata["complexity"]
	if complexity == "" {
		complexity = string(corpus.ComplexityMedium)
	}
	return Result{
		UseCase:        m.Metadata["use_case"],
		Industry:       m.Metadata["industry"],
		Framework:      framework,
		Description:    m.Metadata["description"],
		GithubLink:     m.Metadata["github_link"],
		Complexity:     complexity,
		RelevanceScore: clamp01(float64(m.Similarity)),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Industries returns the sorted distinct non-empty industries across the
// corpus. Idempotent and cheap; the slice is a copy.
func (r *Retriever) Industries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.industries...)
}

// Frameworks returns the sorted distinct frameworks across the corpus,
// excluding Unknown. Idempotent and cheap; the slice is a copy.
func (r *Retriever) Frameworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.frameworks...)
}

// Rebuild resets the index and re-indexes the given records. This is an
// explicit administrative operation; it excludes all queries for its
// duration.
func (r *Retriever) Rebuild(ctx context.Context, records []corpus.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no records to index", corpus.ErrEmptyCorpus)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if count, err := r.store.Count(ctx); err == nil && count > 0 {
		if err := r.store.Reset(ctx); err != nil {
			return fmt.Errorf("resetting index: %w", err)
		}
	}

	docs := make([]vectorstore.Document, len(records))
	for i, rec := range records {
		docs[i] = vectorstore.Document{
			ID:       rec.ID,
			Content:  corpus.Document(rec),
			Metadata: corpus.Metadata(rec),
		}
	}

	if err := r.store.AddDocuments(ctx, docs); err != nil {
		return fmt.Errorf("indexing %d records: %w", len(docs), err)
	}

	r.setCorpus(records)
	r.logger.Info("index rebuilt", zap.Int("records", len(records)))
	return nil
}

// EnsureIndex builds the index from the constructor's corpus if the store
// is empty. This is the one-time bootstrap; query paths never rebuild.
func (r *Retriever) EnsureIndex(ctx context.Context) error {
	count, err := r.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking index: %w", err)
	}
	if count > 0 {
		return nil
	}
	return r.Rebuild(ctx, r.records)
}
