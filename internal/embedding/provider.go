// Package embedding turns text into fixed-length vectors. It calls a remote
// embedding service when configured and falls back to a deterministic local
// hash embedding when the service is missing or unreachable, so callers can
// always score similarity.
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/run-bigpig/carpick/internal/logger"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
)

var log = logger.New("Embedding")

// Dimensions is the fixed embedding vector length.
const Dimensions = 384

// Provider produces embedding vectors for text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Service is the production Provider: remote embeddings through the OpenAI
// client with an in-memory cache and a hash fallback. A nil client runs in
// pure fallback mode.
type Service struct {
	client *openai.Client
	model  string

	mu    sync.RWMutex
	cache map[string][]float32
}

// NewService creates a Service. client may be nil.
func NewService(client *openai.Client, model string) *Service {
	return &Service{
		client: client,
		model:  model,
		cache:  make(map[string][]float32),
	}
}

// Embed returns a normalized vector for text. Remote failures degrade to the
// local hash embedding and are never surfaced as errors.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	key := krtext.Normalize(text)

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	vec := s.remoteEmbed(ctx, text)
	if vec == nil {
		// Fallback vectors are never cached so a recovered backend gets
		// consulted again for the same text.
		return FallbackVector(text), nil
	}

	s.mu.Lock()
	s.cache[key] = vec
	s.mu.Unlock()
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, v)
	}
	return vecs, nil
}

// remoteEmbed calls the embedding service, returning nil when unavailable.
func (s *Service) remoteEmbed(ctx context.Context, text string) []float32 {
	if s.client == nil {
		return nil
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(s.model),
		Dimensions: Dimensions,
	})
	if err != nil {
		log.Warn("remote embedding failed, using hash fallback: %v", err)
		return nil
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		log.Warn("remote embedding returned no data, using hash fallback")
		return nil
	}

	vec := resp.Data[0].Embedding
	if len(vec) != Dimensions {
		// Some backends ignore the dimensions parameter.
		vec = resize(vec, Dimensions)
	}
	return normalize(vec)
}

// FallbackVector builds a deterministic pseudo-embedding from character
// trigrams of the normalized text. The result has L2 norm 1.
func FallbackVector(text string) []float32 {
	vec := make([]float32, Dimensions)
	runes := []rune(krtext.Normalize(text))

	for i := 0; i < len(runes); i++ {
		end := i + 3
		if end > len(runes) {
			end = len(runes)
		}
		h := fnv.New32a()
		h.Write([]byte(string(runes[i:end])))
		sum := h.Sum32()
		idx := int(sum % Dimensions)
		sign := float32(1)
		if sum&0x80000000 != 0 {
			sign = -1
		}
		vec[idx] += sign
	}

	if isZero(vec) {
		vec[0] = 1
	}
	return normalize(vec)
}

// Dot returns the dot product of two equal-length vectors. With normalized
// inputs this is the cosine similarity.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func normalize(vec []float32) []float32 {
	var sq float64
	for _, v := range vec {
		sq += float64(v) * float64(v)
	}
	if sq == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sq))
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

func resize(vec []float32, n int) []float32 {
	out := make([]float32, n)
	copy(out, vec)
	return out
}

func isZero(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
