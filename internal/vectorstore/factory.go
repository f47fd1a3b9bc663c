package vectorstore

import (
	"fmt"

	"go.uber.org/zap"
)

// Config selects and configures a Store backend.
type Config struct {
	// Provider is the backend name: "chromem" (default) or "qdrant".
	Provider string `koanf:"provider"`

	// Chromem configures the embedded backend.
	Chromem ChromemConfig `koanf:"chromem"`

	// Qdrant configures the external backend.
	Qdrant QdrantConfig `koanf:"qdrant"`
}

// NewStore creates a Store for the configured provider.
//
// The chromem provider is the default: it is embedded, persists locally and
// needs no external service. The qdrant provider targets deployments that
// already operate a Qdrant server.
func NewStore(cfg Config, embedder Embedder, logger *zap.Logger) (Store, error) {
	switch cfg.Provider {
	case "chromem", "":
		return NewChromemStore(cfg.Chromem, embedder, logger)
	case "qdrant":
		return NewQdrantStore(cfg.Qdrant, embedder, logger)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q (want chromem or qdrant)", ErrInvalidConfig, cfg.Provider)
	}
}
