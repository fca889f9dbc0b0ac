// Package rerank scores and orders candidate vehicles against a query,
// persona and budget, combining embedding similarity, budget fit and feature
// scoring with a diversity pass and generated explanations.
package rerank

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/run-bigpig/carpick/internal/embedding"
	"github.com/run-bigpig/carpick/internal/logger"
	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/persona"
)

var log = logger.New("Rerank")

// Default pipeline parameters.
const (
	DefaultMaxResults        = 10
	DefaultSemanticThreshold = 0.3
	DefaultDiversityFactor   = 0.1
)

// Options tunes one reranking pass.
type Options struct {
	MaxResults        int
	SemanticThreshold float64
	DiversityFactor   float64
}

func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.SemanticThreshold <= 0 {
		o.SemanticThreshold = DefaultSemanticThreshold
	}
	if o.DiversityFactor <= 0 {
		o.DiversityFactor = DefaultDiversityFactor
	}
	return o
}

// Request carries the scoring context for one pass.
type Request struct {
	UserQuery string
	Persona   *persona.Persona
	Budget    models.Budget
}

// Reranker runs the persona-weighted scoring pipeline.
type Reranker struct {
	embedder embedding.Provider
}

// New creates a Reranker on top of an embedding provider.
func New(embedder embedding.Provider) *Reranker {
	return &Reranker{embedder: embedder}
}

// WeightsFor resolves the factor weight vector for a persona, falling back
// to the default vector. The result is L1-normalized so components sum to 1.
func WeightsFor(p *persona.Persona) persona.Weights {
	if p == nil {
		return persona.DefaultWeights().Normalized()
	}
	return p.Weights.Normalized()
}

// Rerank scores every candidate and returns the explained top-K. Errors from
// the embedding provider propagate so the caller can fall back to
// FallbackRank.
func (r *Reranker) Rerank(ctx context.Context, vehicles []models.VehicleItem, req Request, opts Options) ([]models.RankedVehicle, error) {
	opts = opts.withDefaults()
	weights := WeightsFor(req.Persona)

	query := expandQuery(req.UserQuery, req.Persona)
	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("rerank: embed query: %w", err)
	}

	ranked := make([]models.RankedVehicle, 0, len(vehicles))
	for i, v := range vehicles {
		vec, err := r.embedder.Embed(ctx, describeVehicle(v))
		if err != nil {
			return nil, fmt.Errorf("rerank: embed vehicle %d: %w", v.ID, err)
		}

		semantic := similarity(queryVec, vec)
		budget := BudgetScore(v.Price, req.Budget)
		feature := FeatureScore(v)

		final := semantic*weights.Semantic +
			budget*(weights.Price+weights.FuelEfficiency) +
			feature*(weights.Safety+weights.Space+weights.Brand+weights.Condition)

		score := models.SimilarityScore{
			Semantic: semantic,
			Persona:  personaScore(v, req.Persona, feature),
			Budget:   budget,
			Feature:  feature,
			Final:    clamp01(final),
		}

		if semantic < opts.SemanticThreshold {
			log.Debug("vehicle %d below semantic threshold (%.2f)", v.ID, semantic)
			continue
		}

		ranked = append(ranked, models.RankedVehicle{
			Vehicle:      v,
			OriginalRank: i + 1,
			Score:        score,
		})
	}

	applyDiversity(ranked, opts.DiversityFactor)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Final > ranked[j].Score.Final
	})
	if len(ranked) > opts.MaxResults {
		ranked = ranked[:opts.MaxResults]
	}

	for i := range ranked {
		ranked[i].NewRank = i + 1
		ranked[i].Explanation = explain(&ranked[i], req)
	}
	return ranked, nil
}

// FallbackRank is the deterministic, statistics-only ranking used when the
// embedding pipeline is unavailable. It never fails.
func FallbackRank(vehicles []models.VehicleItem, req Request, maxResults int) []models.RankedVehicle {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ranked := make([]models.RankedVehicle, 0, len(vehicles))
	for i, v := range vehicles {
		budget := BudgetScore(v.Price, req.Budget)
		feature := FeatureScore(v)
		final := clamp01(0.7*budget + 0.3*feature)
		ranked = append(ranked, models.RankedVehicle{
			Vehicle:      v,
			OriginalRank: i + 1,
			Score: models.SimilarityScore{
				Budget:  budget,
				Feature: feature,
				Persona: personaScore(v, req.Persona, feature),
				Final:   final,
			},
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Final > ranked[j].Score.Final
	})
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	for i := range ranked {
		ranked[i].NewRank = i + 1
		ranked[i].Explanation = explain(&ranked[i], req)
	}
	return ranked
}

// similarity maps the dot product of two normalized vectors from [-1,1] onto
// [0,1] so the hash-fallback embedding keeps usable scores.
func similarity(a, b []float32) float64 {
	return clamp01((embedding.Dot(a, b) + 1) / 2)
}

// expandQuery appends persona context keywords to the raw query text.
func expandQuery(query string, p *persona.Persona) string {
	if p == nil || len(p.ContextKeywords) == 0 {
		return query
	}
	return query + " " + strings.Join(p.ContextKeywords, " ")
}

// describeVehicle builds the canonical descriptive string that gets
// embedded for one vehicle.
func describeVehicle(v models.VehicleItem) string {
	return fmt.Sprintf("%d년식 %s %s %s %s %d만원 주행거리 %dkm %s",
		v.Year, v.Manufacturer, v.Model, BodyTypeOf(v), v.FuelType, v.Price, v.Mileage, v.Location)
}

// personaScore is an explanatory sub-score: how well the vehicle's concrete
// attributes line up with the persona's factor weights. It does not feed the
// final score.
func personaScore(v models.VehicleItem, p *persona.Persona, feature float64) float64 {
	if p == nil {
		return feature
	}
	w := p.Weights.Normalized()

	spaceScore := 0.5
	switch BodyTypeOf(v) {
	case BodySUV, BodyVan, BodyWagon:
		spaceScore = 0.9
	case BodyHatchback:
		spaceScore = 0.4
	}

	mass := w.Brand + w.FuelEfficiency + w.Space + w.Safety + w.Condition
	if mass == 0 {
		return feature
	}
	blended := (prestigeScore(v.Manufacturer)*w.Brand +
		fuelScore(v.FuelType)*w.FuelEfficiency +
		spaceScore*w.Space +
		feature*(w.Safety+w.Condition)) / mass
	return clamp01(blended)
}

// applyDiversity adds a small bonus the first time a brand or fuel type
// appears in iteration order, so the top-K is not all one brand. Scores only
// increase, and membership was already settled by the threshold filter.
func applyDiversity(ranked []models.RankedVehicle, factor float64) {
	seenBrand := make(map[string]bool)
	seenFuel := make(map[string]bool)

	for i := range ranked {
		v := ranked[i].Vehicle
		bonus := 0.0
		if !seenBrand[v.Manufacturer] {
			seenBrand[v.Manufacturer] = true
			bonus += factor
		}
		if !seenFuel[v.FuelType] {
			seenFuel[v.FuelType] = true
			bonus += factor / 2
		}
		if bonus > 0 {
			ranked[i].Score.Final = clamp01(ranked[i].Score.Final + bonus)
		}
	}
}
