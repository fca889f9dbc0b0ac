package agents

import (
	"strings"
	"time"

	"github.com/run-bigpig/carpick/internal/blackboard"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
)

// Keyword tables for the sentence-scan extraction. Matching is substring
// based and intentionally approximate; the thresholds downstream were tuned
// against this behavior.
var (
	certaintyWords = []string{"분명", "확실", "틀림없", "명확"}
	hedgingWords   = []string{"아마", "어쩌면", "것 같", "수도 있", "모르겠"}

	concernWords        = []string{"우려", "걱정", "주의", "위험", "부담", "어려울"}
	recommendationWords = []string{"추천", "권장", "제안", "좋겠습니다", "적합"}
)

// ExtractInsight turns one agent's free-text output into a structured
// insight via a lightweight sentence scan. Not a parser: a sentence lands in
// exactly one bucket, questions first, then concerns, then recommendations,
// everything else a finding.
func ExtractInsight(agentID, text string) blackboard.AgentInsight {
	insight := blackboard.AgentInsight{
		AgentID:    agentID,
		Timestamp:  time.Now(),
		Confidence: confidenceOf(text),
	}

	for _, sentence := range krtext.SplitSentences(text) {
		switch {
		case isQuestion(sentence):
			insight.Questions = append(insight.Questions, sentence)
		case krtext.ContainsAny(sentence, concernWords):
			insight.Concerns = append(insight.Concerns, sentence)
		case krtext.ContainsAny(sentence, recommendationWords):
			insight.Recommendations = append(insight.Recommendations, sentence)
		default:
			insight.KeyFindings = append(insight.KeyFindings, sentence)
		}
	}
	return insight
}

// confidenceOf infers confidence from certainty language. Base 0.6, each
// certainty marker +0.15, each hedge -0.15, clamped to [0.1, 0.95].
func confidenceOf(text string) float64 {
	conf := 0.6
	t := krtext.Normalize(text)
	for _, w := range certaintyWords {
		if strings.Contains(t, krtext.Normalize(w)) {
			conf += 0.15
		}
	}
	for _, w := range hedgingWords {
		if strings.Contains(t, krtext.Normalize(w)) {
			conf -= 0.15
		}
	}
	if conf > 0.95 {
		conf = 0.95
	}
	if conf < 0.1 {
		conf = 0.1
	}
	return conf
}

// isQuestion reports whether a sentence reads as a question. Korean polite
// interrogative endings count even without a question mark.
func isQuestion(sentence string) bool {
	s := strings.TrimSpace(sentence)
	if strings.HasSuffix(s, "?") {
		return true
	}
	for _, ending := range []string{"까요.", "까요", "나요.", "나요", "는지요"} {
		if strings.HasSuffix(s, ending) {
			return true
		}
	}
	return false
}
