// Package pattern classifies a consultation turn into a collaboration
// pattern that selects which multi-round flow the orchestrator runs.
package pattern

import (
	"unicode/utf8"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/persona"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
)

// Type identifies a collaboration pattern.
type Type string

const (
	Standard                Type = "standard"
	BudgetConstrained       Type = "budget_constrained"
	ConflictingRequirements Type = "conflicting_requirements"
	InformationGap          Type = "information_gap"

	// Persona-specific patterns, one per catalog persona.
	PersonaFirstCarAnxiety  Type = "persona_first_car_anxiety"
	PersonaCEOExecutive     Type = "persona_ceo_executive"
	PersonaFamilySafety     Type = "persona_family_safety"
	PersonaCampingLifestyle Type = "persona_camping_lifestyle"
	PersonaEconomyCommuter  Type = "persona_economy_commuter"
	PersonaLongDistance     Type = "persona_long_distance_commuter"
	PersonaNewlywedCouple   Type = "persona_newlywed_couple"
	PersonaYoungTrendy      Type = "persona_young_trendy"
)

// CollaborationPattern describes the detected shape of the current
// consultation. Computed fresh per turn; never persisted.
type CollaborationPattern struct {
	Type        Type     `json:"type"`
	Priority    int      `json:"priority"`
	Description string   `json:"description"`
	Agents      []string `json:"participatingAgents"`
	KeyTriggers []string `json:"keyTriggers"`
	Resolution  string   `json:"resolutionStrategy"`
	PersonaID   string   `json:"personaId,omitempty"`
}

var personaPatternTypes = map[string]Type{
	persona.FirstCarAnxiety:     PersonaFirstCarAnxiety,
	persona.CEOExecutive:        PersonaCEOExecutive,
	persona.FamilySafety:        PersonaFamilySafety,
	persona.CampingLifestyle:    PersonaCampingLifestyle,
	persona.EconomyCommuter:     PersonaEconomyCommuter,
	persona.LongDistanceCommute: PersonaLongDistance,
	persona.NewlywedCouple:      PersonaNewlywedCouple,
	persona.YoungTrendy:         PersonaYoungTrendy,
}

var allAgents = []string{"concierge", "needs_analyst", "data_analyst"}

var luxuryKeywords = []string{"벤츠", "bmw", "아우디", "포르쉐", "제네시스", "렉서스", "고급", "럭셔리", "수입차"}

// Opposite-intent keyword pairs for conflicting-requirements detection.
var conflictPairs = [][2][]string{
	{{"경제적", "연비", "싸고", "저렴"}, {"큰 차", "대형", "suv", "넓은"}},
	{{"저렴", "싸게", "최대한 싼"}, {"벤츠", "bmw", "아우디", "포르쉐", "렉서스"}},
	{{"신차급", "새 차"}, {"연식 오래", "오래된"}},
}

// Concrete requirement keywords; absence of all of them signals an
// information gap.
var requirementKeywords = []string{
	"연비", "안전", "공간", "브랜드", "가격", "예산", "세단", "suv",
	"경차", "해치백", "디젤", "가솔린", "하이브리드", "전기", "주행거리", "연식",
}

var vagueKeywords = []string{"아무거나", "알아서", "그냥", "좋은 차", "괜찮은 차"}

// Detect classifies the current situation. A supplied or auto-detected
// persona short-circuits every other detector at priority 5; otherwise the
// generic detectors run independently and the highest-priority match wins,
// falling back to the standard flow at priority 1. Pure function, safe to
// re-run mid-conversation.
func Detect(question string, budget models.Budget, candidates []models.VehicleItem, p *persona.Persona) CollaborationPattern {
	if p != nil {
		return personaPattern(p)
	}

	var matches []CollaborationPattern
	if pat, ok := detectBudgetConstrained(question, budget, candidates); ok {
		matches = append(matches, pat)
	}
	if pat, ok := detectConflicting(question); ok {
		matches = append(matches, pat)
	}
	if pat, ok := detectInformationGap(question); ok {
		matches = append(matches, pat)
	}

	best := standardPattern()
	for _, m := range matches {
		if m.Priority > best.Priority {
			best = m
		}
	}
	return best
}

// ShouldUpgrade reports whether a freshly detected pattern supersedes the
// active one. Patterns never downgrade mid-run.
func ShouldUpgrade(current, candidate CollaborationPattern) bool {
	return candidate.Priority > current.Priority
}

func personaPattern(p *persona.Persona) CollaborationPattern {
	t, ok := personaPatternTypes[p.ID]
	if !ok {
		t = Standard
	}
	return CollaborationPattern{
		Type:        t,
		Priority:    5,
		Description: p.Name + " 맞춤 상담",
		Agents:      allAgents,
		KeyTriggers: p.Priorities,
		Resolution:  "persona_weighted_flow",
		PersonaID:   p.ID,
	}
}

func detectBudgetConstrained(question string, budget models.Budget, candidates []models.VehicleItem) (CollaborationPattern, bool) {
	var triggers []string

	if len(candidates) > 0 && len(candidates) < 5 {
		triggers = append(triggers, "low_candidate_count")
	}

	if budget.Max > 0 && len(candidates) > 0 {
		var sum int
		for _, v := range candidates {
			sum += v.Price
		}
		avg := sum / len(candidates)
		if float64(avg) > float64(budget.Max)*1.2 {
			triggers = append(triggers, "average_price_over_budget")
		}
	}

	if budget.Max > 0 && budget.Max < 3000 && krtext.ContainsAny(question, luxuryKeywords) {
		triggers = append(triggers, "luxury_taste_low_budget")
	}

	if len(triggers) == 0 {
		return CollaborationPattern{}, false
	}
	return CollaborationPattern{
		Type:        BudgetConstrained,
		Priority:    5,
		Description: "예산 제약이 큰 상담",
		Agents:      allAgents,
		KeyTriggers: triggers,
		Resolution:  "budget_first_flow",
	}, true
}

func detectConflicting(question string) (CollaborationPattern, bool) {
	var triggers []string
	for _, pair := range conflictPairs {
		if krtext.ContainsAny(question, pair[0]) && krtext.ContainsAny(question, pair[1]) {
			triggers = append(triggers, pair[0][0]+"↔"+pair[1][0])
		}
	}
	if len(triggers) == 0 {
		return CollaborationPattern{}, false
	}
	return CollaborationPattern{
		Type:        ConflictingRequirements,
		Priority:    4,
		Description: "상충하는 요구사항 조율",
		Agents:      allAgents,
		KeyTriggers: triggers,
		Resolution:  "tradeoff_mediation_flow",
	}, true
}

func detectInformationGap(question string) (CollaborationPattern, bool) {
	var triggers []string

	if utf8.RuneCountInString(question) < 10 {
		triggers = append(triggers, "very_short_request")
	}
	if krtext.ContainsAny(question, vagueKeywords) {
		triggers = append(triggers, "vague_phrasing")
	}
	if !krtext.ContainsAny(question, requirementKeywords) {
		triggers = append(triggers, "no_concrete_requirement")
	}

	if len(triggers) == 0 {
		return CollaborationPattern{}, false
	}
	return CollaborationPattern{
		Type:        InformationGap,
		Priority:    3,
		Description: "추가 정보가 필요한 상담",
		Agents:      []string{"concierge", "needs_analyst"},
		KeyTriggers: triggers,
		Resolution:  "clarification_flow",
	}, true
}

func standardPattern() CollaborationPattern {
	return CollaborationPattern{
		Type:        Standard,
		Priority:    1,
		Description: "일반 추천 상담",
		Agents:      allAgents,
		KeyTriggers: nil,
		Resolution:  "standard_flow",
	}
}
