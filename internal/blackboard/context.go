// Package blackboard implements the shared context through which the
// simulated agents exchange insights and questions within one collaboration
// turn.
package blackboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
)

// Phase is the collaboration phase of the current turn.
type Phase string

const (
	PhaseInitial             Phase = "initial"
	PhaseNeedsAnalysis       Phase = "needs_analysis"
	PhaseDataAnalysis        Phase = "data_analysis"
	PhaseConsensusBuilding   Phase = "consensus_building"
	PhaseFinalRecommendation Phase = "final_recommendation"
)

// NextAction is the orchestrator action the blackboard state calls for.
type NextAction string

const (
	ActionQuestion  NextAction = "question"
	ActionConsensus NextAction = "consensus"
	ActionAnalysis  NextAction = "analysis"
	ActionComplete  NextAction = "complete"
)

// AgentInsight is one agent's analysis output for one step. Appended, never
// mutated.
type AgentInsight struct {
	AgentID         string    `json:"agentId"`
	Timestamp       time.Time `json:"timestamp"`
	Confidence      float64   `json:"confidence"`
	KeyFindings     []string  `json:"keyFindings"`
	Concerns        []string  `json:"concerns"`
	Questions       []string  `json:"questions"`
	Recommendations []string  `json:"recommendations"`
}

// InterAgentQuestion is a question routed from one agent to another. The
// Answered flag transitions false to true exactly once.
type InterAgentQuestion struct {
	ID        string    `json:"id"`
	FromAgent string    `json:"fromAgent"`
	ToAgent   string    `json:"toAgent"`
	Question  string    `json:"question"`
	Context   string    `json:"context"`
	Urgency   string    `json:"urgency"`
	Answered  bool      `json:"answered"`
	Answer    string    `json:"answer,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SharedContext is the blackboard for one collaboration run. Exactly one
// instance is live per in-flight turn, mutated only by the orchestrator
// driving that turn, so no locking is applied.
type SharedContext struct {
	OriginalQuestion string
	Budget           models.Budget
	VehicleData      []models.VehicleItem
	UserNeeds        []string
	ActiveAgents     []string

	phase            Phase
	agentInsights    map[string][]AgentInsight
	insightLog       []AgentInsight
	questions        []*InterAgentQuestion
	resolvedDisputes map[string]bool
}

// New creates a SharedContext for one turn.
func New(question string, budget models.Budget, vehicles []models.VehicleItem) *SharedContext {
	return &SharedContext{
		OriginalQuestion: question,
		Budget:           budget,
		VehicleData:      vehicles,
		phase:            PhaseInitial,
		agentInsights:    make(map[string][]AgentInsight),
		resolvedDisputes: make(map[string]bool),
	}
}

// Phase returns the current collaboration phase.
func (c *SharedContext) Phase() Phase {
	return c.phase
}

// SetPhase moves the turn to the given phase.
func (c *SharedContext) SetPhase(p Phase) {
	c.phase = p
}

// AddAgentInsight appends an insight to both the per-agent log and the
// global log. No dedup.
func (c *SharedContext) AddAgentInsight(agentID string, insight AgentInsight) {
	insight.AgentID = agentID
	if insight.Timestamp.IsZero() {
		insight.Timestamp = time.Now()
	}
	c.agentInsights[agentID] = append(c.agentInsights[agentID], insight)
	c.insightLog = append(c.insightLog, insight)
}

// InsightsFor returns the insight log of one agent.
func (c *SharedContext) InsightsFor(agentID string) []AgentInsight {
	return c.agentInsights[agentID]
}

// InsightLog returns all insights in append order.
func (c *SharedContext) InsightLog() []AgentInsight {
	return c.insightLog
}

// AddQuestion appends an inter-agent question to the pending list and
// returns it with an assigned ID.
func (c *SharedContext) AddQuestion(from, to, question, context string) *InterAgentQuestion {
	q := &InterAgentQuestion{
		ID:        uuid.NewString(),
		FromAgent: from,
		ToAgent:   to,
		Question:  question,
		Context:   context,
		Urgency:   "normal",
		Timestamp: time.Now(),
	}
	c.questions = append(c.questions, q)
	return q
}

// PendingQuestions returns the unanswered questions in arrival order.
func (c *SharedContext) PendingQuestions() []*InterAgentQuestion {
	var pending []*InterAgentQuestion
	for _, q := range c.questions {
		if !q.Answered {
			pending = append(pending, q)
		}
	}
	return pending
}

// AnswerQuestion records the answer for a question. The answered flag is
// monotonic: answering an already-answered question is a no-op.
func (c *SharedContext) AnswerQuestion(id, answer string) bool {
	for _, q := range c.questions {
		if q.ID != id || q.Answered {
			continue
		}
		q.Answered = true
		q.Answer = answer
		return true
	}
	return false
}

// FindConsensusAreas returns every normalized finding that appears in the
// key findings of at least two distinct agents.
func (c *SharedContext) FindConsensusAreas() []string {
	holders := make(map[string]map[string]bool)
	display := make(map[string]string)

	for agentID, insights := range c.agentInsights {
		for _, in := range insights {
			for _, f := range in.KeyFindings {
				key := krtext.Normalize(f)
				if key == "" {
					continue
				}
				if holders[key] == nil {
					holders[key] = make(map[string]bool)
					display[key] = f
				}
				holders[key][agentID] = true
			}
		}
	}

	var areas []string
	seen := make(map[string]bool)
	// Walk the global log so output order is stable.
	for _, in := range c.insightLog {
		for _, f := range in.KeyFindings {
			key := krtext.Normalize(f)
			if seen[key] || len(holders[key]) < 2 {
				continue
			}
			seen[key] = true
			areas = append(areas, display[key])
		}
	}
	return areas
}

// FindDisputedAreas returns every concern from one agent whose first word
// also appears in another agent's findings. This is an approximate,
// intentionally lossy heuristic; callers tolerate false positives and
// negatives.
func (c *SharedContext) FindDisputedAreas() []string {
	var disputed []string
	seen := make(map[string]bool)

	for _, in := range c.insightLog {
		for _, concern := range in.Concerns {
			first := krtext.FirstWord(concern)
			if first == "" || seen[concern] {
				continue
			}
			if c.findingMentions(first, in.AgentID) {
				seen[concern] = true
				disputed = append(disputed, concern)
			}
		}
	}
	return disputed
}

// findingMentions reports whether any agent other than exclude has a finding
// containing word.
func (c *SharedContext) findingMentions(word, exclude string) bool {
	for agentID, insights := range c.agentInsights {
		if agentID == exclude {
			continue
		}
		for _, in := range insights {
			for _, f := range in.KeyFindings {
				if krtext.Contains(f, word) {
					return true
				}
			}
		}
	}
	return false
}

// UnresolvedDisputes returns disputed areas not yet consensus-resolved.
func (c *SharedContext) UnresolvedDisputes() []string {
	var open []string
	for _, d := range c.FindDisputedAreas() {
		if !c.resolvedDisputes[krtext.Normalize(d)] {
			open = append(open, d)
		}
	}
	return open
}

// ResolveDisputes marks the given areas as settled by a consensus pass.
func (c *SharedContext) ResolveDisputes(areas []string) {
	for _, a := range areas {
		c.resolvedDisputes[krtext.Normalize(a)] = true
	}
}

// DetermineNextAction is the round-loop driver: pending questions demand a
// question round, unresolved disputes a consensus round, a non-final phase
// one more analysis round; only a final phase with nothing pending
// completes. Re-evaluated after every round on the log as it stands.
func (c *SharedContext) DetermineNextAction() NextAction {
	if len(c.PendingQuestions()) > 0 {
		return ActionQuestion
	}
	if len(c.UnresolvedDisputes()) > 0 {
		return ActionConsensus
	}
	if c.phase != PhaseFinalRecommendation {
		return ActionAnalysis
	}
	return ActionComplete
}
