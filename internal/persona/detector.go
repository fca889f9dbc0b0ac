package persona

import (
	"github.com/run-bigpig/carpick/internal/logger"
	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
)

var log = logger.New("Persona")

// Minimum fraction of the narrower band that must overlap for a persona's
// budget band to be considered a match.
const budgetOverlapTolerance = 0.5

// Detect matches free text and a budget against the catalog. It returns the
// highest-scoring persona whose score clears its own threshold and whose
// budget band materially overlaps the request budget, or nil when none
// qualify. A nil result is a first-class outcome, not an error.
func Detect(text string, budget models.Budget) *Persona {
	var best *Persona
	var bestScore float64

	for i := range catalog {
		p := &catalog[i]
		score := Score(p, text)
		if score < p.Profile.Threshold {
			continue
		}
		if !budgetOverlaps(budget, p) {
			log.Debug("persona %s scored %.2f but budget band mismatch", p.ID, score)
			continue
		}
		// Strict comparison keeps catalog order as the tie-breaker.
		if best == nil || score > bestScore {
			best = p
			bestScore = score
		}
	}

	if best != nil {
		log.Info("detected persona %s (score %.2f)", best.ID, bestScore)
	}
	return best
}

// Score computes the sentiment score of text against one persona:
// 0.4·anxiety + 0.3·complexity + 0.3·totalKeywordWeight, where each sub-score
// sums the weights of profile keywords literally occurring in the input.
// Matching is substring-based and case-insensitive; overlapping keyword sets
// across personas are expected and resolved purely by score comparison.
func Score(p *Persona, text string) float64 {
	normalized := krtext.Normalize(text)

	var anxiety, complexity, total float64
	for _, kw := range p.Profile.Keywords {
		if !krtext.Contains(normalized, kw.Keyword) {
			continue
		}
		total += kw.Weight
		switch kw.Category {
		case CategoryAnxiety:
			anxiety += kw.Weight
		case CategoryComplexity:
			complexity += kw.Weight
		}
	}

	return 0.4*anxiety + 0.3*complexity + 0.3*total
}

// budgetOverlaps reports whether the request budget overlaps the persona's
// band by at least the tolerance, measured against the narrower of the two.
// An unset budget (zero band) is treated as unconstrained.
func budgetOverlaps(b models.Budget, p *Persona) bool {
	if b.Min == 0 && b.Max == 0 {
		return true
	}

	low := max(b.Min, p.BudgetMin)
	high := min(b.Max, p.BudgetMax)
	overlap := high - low
	if overlap <= 0 {
		return false
	}

	narrower := min(b.Max-b.Min, p.BudgetMax-p.BudgetMin)
	if narrower <= 0 {
		// Degenerate band: containment is enough.
		return b.Min >= p.BudgetMin && b.Max <= p.BudgetMax
	}
	return float64(overlap)/float64(narrower) >= budgetOverlapTolerance
}
