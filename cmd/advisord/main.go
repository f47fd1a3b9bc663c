// Advisord serves the AI agent use case recommender over HTTP.
//
// On startup it loads the use case corpus, builds or reuses the vector index,
// and exposes the search and conversational endpoints.
//
// Usage:
//
//	# Start server with defaults
//	advisord
//
//	# Use a config file
//	advisord -config /etc/advisord/config.yaml
//
//	# Configure via environment
//	ADVISORD_SERVER_PORT=9000 ADVISORD_EMBEDDINGS_API_KEY=sk-... advisord
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/advisord/internal/agent"
	"github.com/fyrsmithlabs/advisord/internal/agent/tools"
	"github.com/fyrsmithlabs/advisord/internal/config"
	"github.com/fyrsmithlabs/advisord/internal/corpus"
	"github.com/fyrsmithlabs/advisord/internal/embeddings"
	"github.com/fyrsmithlabs/advisord/internal/logging"
	"github.com/fyrsmithlabs/advisord/internal/retriever"
	"github.com/fyrsmithlabs/advisord/internal/server"
	"github.com/fyrsmithlabs/advisord/internal/telemetry"
	"github.com/fyrsmithlabs/advisord/internal/vectorstore"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	rebuildIndex := flag.Bool("rebuild-index", false, "rebuild the vector index from the corpus before serving")
	flag.Parse()

	if args := flag.Args(); len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  advisord           Start the advisord server\n")
			fmt.Fprintf(os.Stderr, "  advisord version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath, *rebuildIndex); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("advisord by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the advisord server and blocks until the context is cancelled.
func run(ctx context.Context, configPath string, rebuildIndex bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	logger.Info("Starting advisord",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("vectorstore", cfg.Vectorstore.Provider),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout.Duration()))

	telemetryShutdown, err := telemetry.Init(ctx, cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetryShutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	records, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("failed to load corpus from %s: %w", cfg.Corpus.Path, err)
	}
	corpus.LogSummary(logger, cfg.Corpus.Path, records)

	embedder, err := embeddings.NewService(cfg.Embeddings)
	if err != nil {
		return fmt.Errorf("failed to create embedding service: %w", err)
	}

	store, err := vectorstore.NewStore(cfg.Vectorstore, embedder, logger)
	if err != nil {
		return fmt.Errorf("failed to create vector store: %w", err)
	}
	defer store.Close()

	ret, err := retriever.New(store, records, logger)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}
	if rebuildIndex {
		logger.Info("rebuilding vector index")
		if err := ret.Rebuild(ctx, records); err != nil {
			return fmt.Errorf("failed to rebuild vector index: %w", err)
		}
	} else if err := ret.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("failed to build vector index: %w", err)
	}

	registry, err := tools.NewAdvisorRegistry(ret, logger)
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	model, err := newChatModel(cfg.Chat)
	if err != nil {
		return fmt.Errorf("failed to create chat model: %w", err)
	}

	orchestrator, err := agent.New(model, registry, cfg.Chat.Agent, logger)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	srv, err := server.NewServer(ret, orchestrator, logger, &server.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("Server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)),
		zap.String("metrics_endpoint", "/metrics"))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newChatModel builds the completion engine used by the orchestrator.
func newChatModel(cfg config.ChatConfig) (*openai.LLM, error) {
	opts := []openai.Option{openai.WithModel(cfg.Model)}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		// The client refuses to construct without a token. Local
		// OpenAI-compatible servers accept any value.
		apiKey = "placeholder"
	}
	opts = append(opts, openai.WithToken(apiKey))
	return openai.New(opts...)
}
