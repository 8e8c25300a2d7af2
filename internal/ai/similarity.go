// Package ai builds the optional embedding-backed similarity scorer.
//
// The engine's default similarity is literal token overlap; switching to
// embeddings changes observable scores, so the provider only activates when
// explicitly configured.
package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/intromatch/internal/ai/gemini"
	"github.com/spigell/intromatch/internal/logger"
	"github.com/spigell/intromatch/internal/needs"
)

// Config selects and configures a similarity provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// NewScorer builds a similarity scorer for the configured provider. An empty
// provider returns nil, which callers treat as "use token overlap".
func NewScorer(ctx context.Context, cfg *Config, log *zap.Logger) (needs.Scorer, error) {
	if cfg == nil {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "":
		return nil, nil
	case "gemini":
		scoped := logger.WithCommonFields(log, provider, cfg.Model)
		return gemini.NewEmbedder(ctx, cfg.APIKey, cfg.Model, scoped)
	default:
		return nil, fmt.Errorf("unsupported similarity provider: %s", cfg.Provider)
	}
}
