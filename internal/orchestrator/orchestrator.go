// Package orchestrator drives one consultation turn: pattern detection,
// the multi-round agent collaboration loop, re-ranking turns, and the final
// ranked recommendation.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/run-bigpig/carpick/internal/agents"
	"github.com/run-bigpig/carpick/internal/blackboard"
	"github.com/run-bigpig/carpick/internal/inventory"
	"github.com/run-bigpig/carpick/internal/llm"
	"github.com/run-bigpig/carpick/internal/logger"
	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/pattern"
	"github.com/run-bigpig/carpick/internal/persona"
	"github.com/run-bigpig/carpick/internal/rerank"
	"github.com/run-bigpig/carpick/internal/session"
	"github.com/run-bigpig/carpick/internal/tco"
)

var log = logger.New("Orchestrator")

const (
	// MaxRounds bounds the collaboration loop per turn.
	MaxRounds = 7
	// TurnTimeout is the wall-clock budget for one turn.
	TurnTimeout = 5 * time.Minute
	// MaxQuestionsPerRound caps question dispatch per round.
	MaxQuestionsPerRound = 3
	// JoinTimeout bounds the concurrent inventory-fetch/session-attach join.
	JoinTimeout = 3 * time.Second

	MaxAgentRetries = 2
	RetryBaseDelay  = 2 * time.Second
	RetryMaxDelay   = 10 * time.Second

	candidateLimit      = 50
	recommendationCount = 3
)

// ErrNoCandidates is returned when the inventory yields nothing to rank.
var ErrNoCandidates = errors.New("orchestrator: no candidate vehicles")

// Request is one user turn.
type Request struct {
	UserID    string        `json:"userId"`
	SessionID string        `json:"sessionId,omitempty"`
	Question  string        `json:"question"`
	Budget    models.Budget `json:"budget"`
}

// Result is the outcome of one completed turn.
type Result struct {
	SessionID       string                         `json:"sessionId"`
	Pattern         pattern.CollaborationPattern   `json:"pattern"`
	Reranked        bool                           `json:"reranked"`
	Recommendations []models.VehicleRecommendation `json:"recommendations"`
}

// Orchestrator wires the collaborators for consultation turns. Construct
// once, share across turns; per-turn state lives in the SharedContext.
type Orchestrator struct {
	completer llm.Completer
	reranker  *rerank.Reranker
	sessions  *session.Manager
	inventory *inventory.Store
}

// New builds an Orchestrator. completer may wrap a nil client; agents then
// run on canned responses.
func New(completer llm.Completer, reranker *rerank.Reranker, sessions *session.Manager, store *inventory.Store) *Orchestrator {
	return &Orchestrator{
		completer: &retryCompleter{inner: completer},
		reranker:  reranker,
		sessions:  sessions,
		inventory: store,
	}
}

// Consult runs one turn end to end, delivering events through cb as they
// are produced. A hard fault emits a single error event and returns; the
// session keeps its last durable state so the next turn can resume.
func (o *Orchestrator) Consult(ctx context.Context, req Request, cb EventCallback) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, TurnTimeout)
	defer cancel()

	sess, candidates, err := o.join(ctx, req)
	if err != nil {
		emit(cb, Event{Type: EventError, Content: err.Error()})
		return nil, err
	}

	// Follow-up feedback over existing recommendations re-ranks in place and
	// never re-runs the multi-round flow.
	if shifts := DetectPriorityShift(req.Question); len(sess.VehicleRecommendations) > 0 && len(shifts) > 0 {
		return o.rerankTurn(ctx, sess, req, shifts, cb)
	}

	return o.freshTurn(ctx, sess, req, candidates, cb)
}

// join issues the inventory fetch and session attach concurrently and waits
// for both within JoinTimeout. Session store trouble never blocks the turn;
// an empty inventory does.
func (o *Orchestrator) join(ctx context.Context, req Request) (*models.A2ASession, []models.VehicleItem, error) {
	jctx, cancel := context.WithTimeout(ctx, JoinTimeout)
	defer cancel()

	sessCh := make(chan *models.A2ASession, 1)
	invCh := make(chan []models.VehicleItem, 1)
	invErrCh := make(chan error, 1)

	go func() {
		sessCh <- o.attachSession(jctx, req)
	}()
	go func() {
		vehicles, err := o.inventory.FindByBudget(jctx, req.Budget, candidateLimit, "")
		invCh <- vehicles
		invErrCh <- err
	}()

	var sess *models.A2ASession
	select {
	case sess = <-sessCh:
	case <-jctx.Done():
		log.Warn("session attach timed out, continuing in-memory")
	}
	if sess == nil {
		sess = o.sessions.CreateSession(ctx, req.UserID)
	}

	select {
	case vehicles := <-invCh:
		if err := <-invErrCh; err != nil {
			return sess, nil, fmt.Errorf("inventory fetch: %w", err)
		}
		if len(vehicles) == 0 {
			return sess, nil, ErrNoCandidates
		}
		return sess, vehicles, nil
	case <-jctx.Done():
		return sess, nil, fmt.Errorf("inventory fetch: %w", jctx.Err())
	}
}

// attachSession resumes the requested session or creates a fresh one. A store
// error on resume degrades to a fresh session rather than failing the turn.
func (o *Orchestrator) attachSession(ctx context.Context, req Request) *models.A2ASession {
	if req.SessionID != "" {
		sess, err := o.sessions.GetSession(ctx, req.SessionID)
		if err != nil {
			log.Warn("session %s resume failed: %v", req.SessionID, err)
		}
		if sess != nil {
			return sess
		}
	}
	return o.sessions.CreateSession(ctx, req.UserID)
}

func (o *Orchestrator) freshTurn(ctx context.Context, sess *models.A2ASession, req Request, candidates []models.VehicleItem, cb EventCallback) (*Result, error) {
	p := persona.Detect(req.Question, req.Budget)
	pat := pattern.Detect(req.Question, req.Budget, candidates, p)
	emit(cb, Event{Type: EventPatternDetected, Content: pat.Description, Pattern: &pat})

	if p != nil && p.ID == persona.CEOExecutive {
		candidates = ApplyLuxuryFilter(candidates, req.Budget, req.Question)
	}

	sc := blackboard.New(req.Question, req.Budget, candidates)
	sc.ActiveAgents = pat.Agents

	o.sessions.AddQuestion(ctx, sess, req.Question)
	o.sessions.SetState(ctx, sess, models.SessionAnalyzing)

	o.initialRound(ctx, sess, sc, cb)
	sc.SetPhase(blackboard.PhaseNeedsAnalysis)
	o.sessions.SetState(ctx, sess, models.SessionNeedsDiscovered)

	exhausted, err := o.collaborationLoop(ctx, sess, sc, cb)
	if err != nil {
		emit(cb, Event{Type: EventUserInterventionNeeded, Content: "상담 시간이 초과되어 분석을 중단합니다."})
		o.sessions.CompleteSession(ctx, sess, models.CompletionTimeout)
		return nil, err
	}
	if exhausted {
		emit(cb, Event{Type: EventUserInterventionNeeded, Content: "정해진 라운드 안에 합의에 이르지 못해 상담을 마무리합니다."})
	}

	recs := o.recommend(ctx, sc, req, p)
	if len(recs) == 0 {
		err := ErrNoCandidates
		emit(cb, Event{Type: EventError, Content: err.Error()})
		return nil, err
	}

	o.sessions.SaveVehicleRecommendations(ctx, sess, recs)
	emit(cb, Event{Type: EventVehicleRecommendations, Recommendations: recs})

	if exhausted {
		o.sessions.UpdateSatisfaction(ctx, sess, 0.4, "라운드 소진으로 강제 마무리")
		o.sessions.CompleteSession(ctx, sess, models.CompletionAbandoned)
	} else {
		o.sessions.UpdateSatisfaction(ctx, sess, 0.8, "추천 전달 완료")
		o.sessions.CompleteSession(ctx, sess, models.CompletionSatisfied)
	}
	emit(cb, Event{Type: EventCollaborationComplete, Content: "추천이 완료되었습니다."})

	return &Result{
		SessionID:       sess.SessionID,
		Pattern:         pat,
		Recommendations: recs,
	}, nil
}

// initialRound collects one insight from each agent in fixed order: later
// agents consume earlier agents' findings through the shared context.
func (o *Orchestrator) initialRound(ctx context.Context, sess *models.A2ASession, sc *blackboard.SharedContext, cb EventCallback) {
	for _, agent := range agents.All() {
		agentID := string(agent.Role)
		o.sessions.UpdateAgentState(ctx, sess, agentID, "analyzing", "initial analysis")

		insight := agent.Respond(ctx, o.completer, sc)
		sc.AddAgentInsight(agentID, insight)
		o.sessions.UpdateAgentState(ctx, sess, agentID, "done", "initial analysis")

		emit(cb, Event{
			Type:    EventAgentResponse,
			AgentID: agentID,
			Content: summarize(insight),
		})

		for _, q := range insight.Questions {
			target := agents.RouteQuestion(q)
			if target == agent.Role {
				target = agents.RoleConcierge
			}
			iq := sc.AddQuestion(agentID, string(target), q, sc.OriginalQuestion)
			emit(cb, Event{Type: EventAgentQuestion, AgentID: agentID, Content: iq.Question})
		}

		if agent.Role == agents.RoleNeedsAnalyst {
			o.recordNeeds(ctx, sess, insight)
		}
	}
}

// collaborationLoop re-evaluates determineNextAction after every round until
// the blackboard reports complete or the round budget runs out. Exhaustion
// is reported so the caller can mark the termination as forced.
func (o *Orchestrator) collaborationLoop(ctx context.Context, sess *models.A2ASession, sc *blackboard.SharedContext, cb EventCallback) (exhausted bool, err error) {
	for round := 1; round <= MaxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		switch sc.DetermineNextAction() {
		case blackboard.ActionQuestion:
			o.questionRound(ctx, sc, cb)
		case blackboard.ActionConsensus:
			o.consensusRound(ctx, sc, cb)
			sc.SetPhase(blackboard.PhaseConsensusBuilding)
		case blackboard.ActionAnalysis:
			o.analysisRound(ctx, sess, sc, cb)
			sc.SetPhase(nextPhase(sc.Phase()))
		case blackboard.ActionComplete:
			return false, nil
		}
	}
	if sc.DetermineNextAction() == blackboard.ActionComplete {
		return false, nil
	}
	// Round budget exhausted with questions or disputes still open: force the
	// final phase so the turn still produces a recommendation.
	sc.SetPhase(blackboard.PhaseFinalRecommendation)
	return true, nil
}

// questionRound dispatches up to MaxQuestionsPerRound pending questions to
// their target agents, marking each answered in arrival order.
func (o *Orchestrator) questionRound(ctx context.Context, sc *blackboard.SharedContext, cb EventCallback) {
	pending := sc.PendingQuestions()
	if len(pending) > MaxQuestionsPerRound {
		pending = pending[:MaxQuestionsPerRound]
	}
	for _, q := range pending {
		target := agents.ByRole(agents.Role(q.ToAgent))
		if target == nil {
			target = agents.ByRole(agents.RoleConcierge)
		}
		answer := target.Answer(ctx, o.completer, sc, q)
		sc.AnswerQuestion(q.ID, answer)
		emit(cb, Event{Type: EventAgentAnswer, AgentID: q.ToAgent, Content: answer})
	}
}

// consensusRound has the concierge mediate the open disputes and marks them
// resolved.
func (o *Orchestrator) consensusRound(ctx context.Context, sc *blackboard.SharedContext, cb EventCallback) {
	disputed := sc.UnresolvedDisputes()
	concierge := agents.ByRole(agents.RoleConcierge)
	mediation := concierge.Consensus(ctx, o.completer, sc, disputed)
	sc.ResolveDisputes(disputed)
	emit(cb, Event{Type: EventConsensusReached, AgentID: string(agents.RoleConcierge), Content: mediation})
}

// analysisRound runs one more insight pass with the agent matching the
// upcoming phase.
func (o *Orchestrator) analysisRound(ctx context.Context, sess *models.A2ASession, sc *blackboard.SharedContext, cb EventCallback) {
	agent := agentForPhase(nextPhase(sc.Phase()))
	agentID := string(agent.Role)

	o.sessions.UpdateAgentState(ctx, sess, agentID, "analyzing", string(sc.Phase()))
	insight := agent.Respond(ctx, o.completer, sc)
	sc.AddAgentInsight(agentID, insight)
	o.sessions.UpdateAgentState(ctx, sess, agentID, "done", string(sc.Phase()))

	emit(cb, Event{Type: EventAgentResponse, AgentID: agentID, Content: summarize(insight)})
}

// recommend ranks the shared context's candidates and assembles the final
// recommendation rows. Reranker failure falls back to the deterministic
// price-fit ranking so the turn always produces an ordered list.
func (o *Orchestrator) recommend(ctx context.Context, sc *blackboard.SharedContext, req Request, p *persona.Persona) []models.VehicleRecommendation {
	rreq := rerank.Request{UserQuery: req.Question, Persona: p, Budget: req.Budget}

	ranked, err := o.reranker.Rerank(ctx, sc.VehicleData, rreq, rerank.Options{MaxResults: recommendationCount})
	if err != nil || len(ranked) == 0 {
		if err != nil {
			log.Warn("rerank failed, using fallback ranking: %v", err)
		}
		ranked = rerank.FallbackRank(sc.VehicleData, rreq, recommendationCount)
	}

	recs := make([]models.VehicleRecommendation, 0, len(ranked))
	for i, rv := range ranked {
		breakdown := tco.Calculate(rv.Vehicle)
		recs = append(recs, models.VehicleRecommendation{
			Rank:    i + 1,
			Vehicle: rv.Vehicle,
			Score:   rv.Score.Final,
			Reason:  rv.Explanation.WhyRecommended,
			Pros:    prosOf(rv.Vehicle, req.Budget),
			Cons:    consOf(rv.Vehicle, req.Budget),
			TCO:     &breakdown,
		})
	}
	return recs
}

// recordNeeds turns the needs analyst's findings into durable discovered
// needs on the session.
func (o *Orchestrator) recordNeeds(ctx context.Context, sess *models.A2ASession, insight blackboard.AgentInsight) {
	for _, f := range insight.KeyFindings {
		o.sessions.AddDiscoveredNeed(ctx, sess, models.DiscoveredNeed{
			Category:     "lifestyle",
			Description:  f,
			Importance:   insight.Confidence,
			DiscoveredAt: time.Now(),
		})
	}
}

func nextPhase(p blackboard.Phase) blackboard.Phase {
	switch p {
	case blackboard.PhaseInitial:
		return blackboard.PhaseNeedsAnalysis
	case blackboard.PhaseNeedsAnalysis:
		return blackboard.PhaseDataAnalysis
	case blackboard.PhaseDataAnalysis:
		return blackboard.PhaseConsensusBuilding
	default:
		return blackboard.PhaseFinalRecommendation
	}
}

func agentForPhase(p blackboard.Phase) *agents.Agent {
	switch p {
	case blackboard.PhaseNeedsAnalysis:
		return agents.ByRole(agents.RoleNeedsAnalyst)
	case blackboard.PhaseDataAnalysis:
		return agents.ByRole(agents.RoleDataAnalyst)
	default:
		return agents.ByRole(agents.RoleConcierge)
	}
}

// summarize flattens an insight into the event content line.
func summarize(in blackboard.AgentInsight) string {
	if len(in.KeyFindings) > 0 {
		return in.KeyFindings[0]
	}
	if len(in.Recommendations) > 0 {
		return in.Recommendations[0]
	}
	if len(in.Concerns) > 0 {
		return in.Concerns[0]
	}
	return "분석을 진행하고 있습니다."
}

func prosOf(v models.VehicleItem, b models.Budget) []string {
	var pros []string
	if b.Contains(v.Price) {
		pros = append(pros, "예산 범위 내의 가격")
	}
	if v.Mileage < 50000 {
		pros = append(pros, "짧은 주행거리")
	}
	if v.Year >= time.Now().Year()-3 {
		pros = append(pros, "최신 연식")
	}
	if v.FuelType == "하이브리드" || v.FuelType == "전기" {
		pros = append(pros, "우수한 연비")
	}
	if len(pros) == 0 {
		pros = append(pros, "무난한 선택지")
	}
	return pros
}

func consOf(v models.VehicleItem, b models.Budget) []string {
	var cons []string
	if v.Price > b.Max {
		cons = append(cons, "예산을 다소 초과하는 가격")
	}
	if v.Mileage > 100000 {
		cons = append(cons, "다소 긴 주행거리")
	}
	if v.Year < time.Now().Year()-7 {
		cons = append(cons, "오래된 연식")
	}
	if v.FuelType == "디젤" {
		cons = append(cons, "도심 위주 주행 시 디젤 유지 부담")
	}
	return cons
}

// retryCompleter wraps a Completer with exponential-backoff retries for
// transient failures. Timeouts, cancellation and config errors pass through.
type retryCompleter struct {
	inner llm.Completer
}

func (r *retryCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if r.inner == nil {
		return "", llm.ErrNoClient
	}
	result, err := r.inner.Complete(ctx, prompt)
	if err == nil || !llm.IsRetryable(err) {
		return result, err
	}

	lastErr := err
	for i := 1; i <= MaxAgentRetries; i++ {
		delay := RetryBaseDelay * time.Duration(1<<(i-1))
		if delay > RetryMaxDelay {
			delay = RetryMaxDelay
		}
		log.Warn("retry %d/%d after %v, last error: %v", i, MaxAgentRetries, delay, lastErr)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}

		result, err = r.inner.Complete(ctx, prompt)
		if err == nil {
			log.Info("retry %d/%d succeeded", i, MaxAgentRetries)
			return result, nil
		}
		lastErr = err
		if !llm.IsRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("%d회 재시도 후에도 실패: %w", MaxAgentRetries, lastErr)
}
