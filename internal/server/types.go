package server

import (
	"github.com/fyrsmithlabs/advisord/internal/agent"
	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

// SearchRequest is the request body for POST /api/search.
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
	Industry   string `json:"industry,omitempty"`
	Framework  string `json:"framework,omitempty"`
}

// SearchResponse is the response body for POST /api/search.
type SearchResponse struct {
	Query   string             `json:"query"`
	Results []retriever.Result `json:"results"`
	Total   int                `json:"total"`
}

// AgentQueryRequest is the request body for POST /api/agent-query.
type AgentQueryRequest struct {
	Query               string          `json:"query"`
	ThreadID            string          `json:"thread_id,omitempty"`
	ConversationHistory []agent.Message `json:"conversation_history,omitempty"`
}

// AgentQueryResponse is the response body for POST /api/agent-query.
type AgentQueryResponse struct {
	Response        string             `json:"response"`
	Recommendations []retriever.Result `json:"recommendations"`
	Suggestions     []string           `json:"suggestions"`
	Plan            string             `json:"plan"`
}

// IndustriesResponse is the response body for GET /api/industries.
type IndustriesResponse struct {
	Industries []string `json:"industries"`
	Total      int      `json:"total"`
}

// FrameworksResponse is the response body for GET /api/frameworks.
type FrameworksResponse struct {
	Frameworks []string `json:"frameworks"`
	Total      int      `json:"total"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// RootResponse describes the API for GET /.
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
