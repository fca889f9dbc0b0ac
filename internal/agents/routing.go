package agents

import "github.com/run-bigpig/carpick/internal/pkg/krtext"

var (
	dataRoutingWords  = []string{"데이터", "가격", "시세", "통계", "매물", "연비", "감가"}
	needsRoutingWords = []string{"라이프스타일", "고객", "니즈", "용도", "가족", "취향"}
)

// RouteQuestion picks the agent whose expertise best matches a question's
// text. Data and price language goes to the data analyst, lifestyle and
// customer language to the needs analyst, everything else to the concierge.
// Substring matching, intentionally approximate.
func RouteQuestion(question string) Role {
	if krtext.ContainsAny(question, dataRoutingWords) {
		return RoleDataAnalyst
	}
	if krtext.ContainsAny(question, needsRoutingWords) {
		return RoleNeedsAnalyst
	}
	return RoleConcierge
}
