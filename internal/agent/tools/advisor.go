package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

// Registered tool names.
const (
	ToolSearchUseCases = "search_use_cases"
	ToolListIndustries = "list_industries"
	ToolListFrameworks = "list_frameworks"
)

const (
	defaultSearchResults = 5
	maxSearchResults     = 20
)

// searchArgs is the input contract of search_use_cases.
type searchArgs struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
	Industry   string `json:"industry,omitempty"`
	Framework  string `json:"framework,omitempty"`
}

type searchPayload struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []retriever.Result `json:"results"`
}

type listPayload struct {
	Count int      `json:"count"`
	Items []string `json:"items"`
}

// NewAdvisorRegistry builds the registry exposing the retriever to the
// completion engine: a filtered search plus the two facet listings.
func NewAdvisorRegistry(ret *retriever.Retriever, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := NewRegistry()

	specs := []Tool{
		{
			Definition: llms.FunctionDefinition{
				Name: ToolSearchUseCases,
				Description: "Search the AI agent use case corpus for entries relevant to a query. " +
					"Supports optional filtering by industry and framework.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type":        "string",
							"description": "Free-text description of the use case to look for",
						},
						"max_results": map[string]any{
							"type":        "integer",
							"description": "Maximum number of results to return (default 5, max 20)",
						},
						"industry": map[string]any{
							"type":        "string",
							"description": "Restrict results to a single industry",
						},
						"framework": map[string]any{
							"type":        "string",
							"description": "Restrict results to a single agent framework",
						},
					},
					"required": []string{"query"},
				},
			},
			Handler: searchHandler(ret, logger),
		},
		{
			Definition: llms.FunctionDefinition{
				Name:        ToolListIndustries,
				Description: "List every industry represented in the use case corpus.",
				Parameters:  emptyObjectSchema(),
			},
			Handler: listHandler(ret.Industries),
		},
		{
			Definition: llms.FunctionDefinition{
				Name:        ToolListFrameworks,
				Description: "List every known agent framework represented in the use case corpus.",
				Parameters:  emptyObjectSchema(),
			},
			Handler: listHandler(ret.Frameworks),
		},
	}

	for _, t := range specs {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func searchHandler(ret *retriever.Retriever, logger *zap.Logger) Handler {
	return func(ctx context.Context, raw json.RawMessage) (string, error) {
		var args searchArgs
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("parse arguments: %w", err)
			}
		}
		if strings.TrimSpace(args.Query) == "" {
			return "", retriever.ErrInvalidQuery
		}

		k := args.MaxResults
		if k <= 0 {
			k = defaultSearchResults
		}
		if k > maxSearchResults {
			k = maxSearchResults
		}

		filters := &retriever.Filters{
			Industry:  args.Industry,
			Framework: args.Framework,
		}
		results, err := ret.Retrieve(ctx, args.Query, k, filters)
		if err != nil {
			return "", err
		}

		logger.Debug("search tool executed",
			zap.String("query", args.Query),
			zap.Int("k", k),
			zap.Int("results", len(results)))

		if sink := sinkFrom(ctx); sink != nil {
			sink.Record(results)
		}

		return marshalPayload(searchPayload{
			Query:   args.Query,
			Count:   len(results),
			Results: results,
		})
	}
}

func listHandler(list func() []string) Handler {
	return func(ctx context.Context, _ json.RawMessage) (string, error) {
		items := list()
		return marshalPayload(listPayload{Count: len(items), Items: items})
	}
}

func emptyObjectSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func marshalPayload(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(out), nil
}
