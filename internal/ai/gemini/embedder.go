package gemini

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/intromatch/internal/logger"
)

const defaultModel = "text-embedding-004"

// Embedder scores text similarity through Gemini embeddings with cosine
// distance. Embeddings are memoized per text hash since the same needs and
// offerings recur across candidates within a run.
type Embedder struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger

	cacheMu sync.RWMutex
	vectors map[[32]byte][]float32
}

// NewEmbedder creates an Embedder configured for the Gemini API backend.
func NewEmbedder(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Embedder{
		client:    client,
		modelName: model,
		logger:    logger,
		vectors:   make(map[[32]byte][]float32),
	}, nil
}

// Similarity returns the cosine similarity of the two texts, clamped to [0,1].
func (e *Embedder) Similarity(ctx context.Context, a, b string) (float64, error) {
	vecA, err := e.embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vecB, err := e.embed(ctx, b)
	if err != nil {
		return 0, err
	}

	sim := cosine(vecA, vecB)
	if sim < 0 {
		sim = 0
	}
	return sim, nil
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	key := sha256.Sum256([]byte(text))

	e.cacheMu.RLock()
	if vector, ok := e.vectors[key]; ok {
		e.cacheMu.RUnlock()
		return vector, nil
	}
	e.cacheMu.RUnlock()

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: text}},
	}}

	resp, err := e.client.Models.EmbedContent(ctx, e.modelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned empty embedding")
	}

	vector := resp.Embeddings[0].Values

	if e.logger != nil {
		e.logger.Debug("gemini embedding computed",
			zap.String("model", e.modelName),
			zap.Int("dimensions", len(vector)),
			zap.String("text", logger.TruncateForLog(text, 64)),
		)
	}

	e.cacheMu.Lock()
	e.vectors[key] = vector
	e.cacheMu.Unlock()

	return vector, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
