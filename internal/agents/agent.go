// Package agents defines the three role-specialized consultation agents and
// the heuristics that turn their free-text model output into structured
// insights.
package agents

import (
	"context"
	"time"

	"github.com/run-bigpig/carpick/internal/blackboard"
	"github.com/run-bigpig/carpick/internal/llm"
	"github.com/run-bigpig/carpick/internal/logger"
)

var log = logger.New("Agents")

const respondTimeout = 45 * time.Second

// Role identifies one consultation agent. The set is closed; dispatch goes
// through the registry, never through raw strings.
type Role string

const (
	RoleConcierge    Role = "concierge"
	RoleNeedsAnalyst Role = "needs_analyst"
	RoleDataAnalyst  Role = "data_analyst"
)

// Agent is one consultation role: an identity, its expertise tags used for
// question routing, and its prompt builder.
type Agent struct {
	Role          Role
	Name          string
	ExpertiseTags []string

	buildPrompt func(sc *blackboard.SharedContext) string
}

var registry = map[Role]*Agent{
	RoleConcierge: {
		Role:          RoleConcierge,
		Name:          "카픽 컨시어지",
		ExpertiseTags: []string{"상담", "종합", "조율"},
		buildPrompt:   buildConciergePrompt,
	},
	RoleNeedsAnalyst: {
		Role:          RoleNeedsAnalyst,
		Name:          "니즈 분석가",
		ExpertiseTags: []string{"라이프스타일", "고객", "니즈", "용도"},
		buildPrompt:   buildNeedsAnalystPrompt,
	},
	RoleDataAnalyst: {
		Role:          RoleDataAnalyst,
		Name:          "데이터 분석가",
		ExpertiseTags: []string{"데이터", "가격", "시세", "통계"},
		buildPrompt:   buildDataAnalystPrompt,
	},
}

// ByRole returns the agent for a role, or nil for an unknown role.
func ByRole(r Role) *Agent {
	return registry[r]
}

// All returns the agents in initial-round order.
func All() []*Agent {
	return []*Agent{
		registry[RoleConcierge],
		registry[RoleNeedsAnalyst],
		registry[RoleDataAnalyst],
	}
}

// Respond runs one analysis step for this agent over the shared context and
// returns the extracted insight. Model failures never surface: the agent
// answers with a canned role response instead so the round loop keeps moving.
func (a *Agent) Respond(ctx context.Context, completer llm.Completer, sc *blackboard.SharedContext) blackboard.AgentInsight {
	text := a.generate(ctx, completer, a.buildPrompt(sc))
	return ExtractInsight(string(a.Role), text)
}

// Answer produces this agent's reply to an inter-agent question.
func (a *Agent) Answer(ctx context.Context, completer llm.Completer, sc *blackboard.SharedContext, q *blackboard.InterAgentQuestion) string {
	return a.generate(ctx, completer, buildAnswerPrompt(a, sc, q))
}

// Consensus produces this agent's mediation over the disputed areas.
func (a *Agent) Consensus(ctx context.Context, completer llm.Completer, sc *blackboard.SharedContext, disputed []string) string {
	return a.generate(ctx, completer, buildConsensusPrompt(a, sc, disputed))
}

func (a *Agent) generate(ctx context.Context, completer llm.Completer, prompt string) string {
	if completer == nil {
		return fallbackResponse(a.Role)
	}

	cctx, cancel := context.WithTimeout(ctx, respondTimeout)
	defer cancel()

	text, err := completer.Complete(cctx, prompt)
	if err != nil {
		log.Warn("%s generation failed, using fallback: %v", a.Role, err)
		return fallbackResponse(a.Role)
	}
	return text
}
