// Package server provides the HTTP API for advisord.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/advisord/internal/agent"
	"github.com/fyrsmithlabs/advisord/internal/logging"
	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

// Version is the API version reported by the root endpoint.
const Version = "1.0.0"

const defaultThreadID = "default"

// Chatter runs one conversational turn. *agent.Orchestrator satisfies it.
type Chatter interface {
	Chat(ctx context.Context, query, threadID string, history []agent.Message) (*agent.Reply, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server provides HTTP endpoints for advisord.
type Server struct {
	echo      *echo.Echo
	retriever *retriever.Retriever
	chat      Chatter
	logger    *zap.Logger
	config    *Config
}

// NewServer creates a new HTTP server.
func NewServer(ret *retriever.Retriever, chat Chatter, logger *zap.Logger, cfg *Config) (*Server, error) {
	if ret == nil {
		return nil, fmt.Errorf("retriever cannot be nil")
	}
	if chat == nil {
		return nil, fmt.Errorf("chat orchestrator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "0.0.0.0", Port: 8000}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := logger.With(
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
			c.SetRequest(c.Request().WithContext(
				logging.WithLogger(c.Request().Context(), reqLogger)))

			start := time.Now()
			err := next(c)

			reqLogger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)

			return err
		}
	})

	s := &Server{
		echo:      e,
		retriever: ret,
		chat:      chat,
		logger:    logger,
		config:    cfg,
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")
	api.POST("/search", s.handleSearch)
	api.POST("/agent-query", s.handleAgentQuery)
	api.GET("/industries", s.handleIndustries)
	api.GET("/frameworks", s.handleFrameworks)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{
		Message: "AI Agent Recommender API",
		Version: Version,
		Endpoints: map[string]string{
			"search":      "/api/search",
			"agent_query": "/api/agent-query",
			"industries":  "/api/industries",
			"frameworks":  "/api/frameworks",
			"health":      "/health",
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

func (s *Server) handleSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		logging.FromContext(c.Request().Context()).Warn("invalid search request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	k := req.MaxResults
	if k == 0 {
		k = 5
	}
	if k < 1 || k > 20 {
		return echo.NewHTTPError(http.StatusBadRequest, "max_results must be in [1, 20]")
	}

	filters := &retriever.Filters{
		Industry:  req.Industry,
		Framework: req.Framework,
	}
	results, err := s.retriever.Retrieve(c.Request().Context(), req.Query, k, filters)
	if err != nil {
		return s.retrievalError(c, err)
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Query:   req.Query,
		Results: results,
		Total:   len(results),
	})
}

func (s *Server) handleAgentQuery(c echo.Context) error {
	var req AgentQueryRequest
	if err := c.Bind(&req); err != nil {
		logging.FromContext(c.Request().Context()).Warn("invalid agent query request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query field is required")
	}
	threadID := req.ThreadID
	if threadID == "" {
		threadID = defaultThreadID
	}

	reply, err := s.chat.Chat(c.Request().Context(), req.Query, threadID, req.ConversationHistory)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("agent query failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError,
			"the advisor could not process this query, please try again")
	}

	return c.JSON(http.StatusOK, AgentQueryResponse{
		Response:        reply.Response,
		Recommendations: reply.Recommendations,
		Suggestions:     reply.Suggestions,
		Plan:            string(reply.Plan),
	})
}

func (s *Server) handleIndustries(c echo.Context) error {
	industries := s.retriever.Industries()
	return c.JSON(http.StatusOK, IndustriesResponse{
		Industries: industries,
		Total:      len(industries),
	})
}

func (s *Server) handleFrameworks(c echo.Context) error {
	frameworks := s.retriever.Frameworks()
	return c.JSON(http.StatusOK, FrameworksResponse{
		Frameworks: frameworks,
		Total:      len(frameworks),
	})
}

// retrievalError maps retriever failures onto HTTP status codes.
func (s *Server) retrievalError(c echo.Context, err error) *echo.HTTPError {
	switch {
	case errors.Is(err, retriever.ErrInvalidQuery):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, retriever.ErrIndexUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "the use case index is not ready")
	default:
		logging.FromContext(c.Request().Context()).Error("search failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
