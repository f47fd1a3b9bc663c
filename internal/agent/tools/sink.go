package tools

import (
	"context"
	"sync"

	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

type sinkKey struct{}

// ResultSink collects the structured results of the most recent successful
// search so a conversational turn can surface them as recommendations
// alongside the reply text.
type ResultSink struct {
	mu      sync.Mutex
	results []retriever.Result
}

// NewResultSink creates an empty sink.
func NewResultSink() *ResultSink {
	return &ResultSink{}
}

// Record replaces the captured results. Later searches within the same turn
// overwrite earlier ones.
func (s *ResultSink) Record(results []retriever.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results[:0], results...)
}

// Results returns a copy of the captured results.
func (s *ResultSink) Results() []retriever.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]retriever.Result(nil), s.results...)
}

// WithResultSink attaches a sink to the context so search tools can record
// their results for the caller.
func WithResultSink(ctx context.Context, sink *ResultSink) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink)
}

// sinkFrom extracts the sink, if any.
func sinkFrom(ctx context.Context) *ResultSink {
	sink, _ := ctx.Value(sinkKey{}).(*ResultSink)
	return sink
}
