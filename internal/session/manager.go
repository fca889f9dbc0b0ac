// Package session manages the durable consultation session record. Every
// store operation is best-effort: a failing or absent store never blocks or
// fails the recommendation path, the orchestration just continues with the
// in-memory session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/run-bigpig/carpick/internal/logger"
	"github.com/run-bigpig/carpick/internal/models"
)

var log = logger.New("Session")

const (
	sessionKeyPrefix   = "a2a:session:"
	analyticsKeyPrefix = "a2a:analytics:"

	sessionTTL   = 30 * time.Minute
	analyticsTTL = 7 * 24 * time.Hour

	// Individual store calls are bounded so a hung store cannot stall a
	// turn.
	storeOpTimeout = 2 * time.Second
)

// Manager creates, loads and updates A2A sessions against the durable store.
type Manager struct {
	store Store
}

// NewManager creates a Manager. store may be nil; all operations then run
// purely in memory.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// CreateSession starts a new durable session for a user. Never fails: on
// store trouble the in-memory session is returned as-is.
func (m *Manager) CreateSession(ctx context.Context, userID string) *models.A2ASession {
	now := time.Now()
	s := &models.A2ASession{
		SessionID:          uuid.NewString(),
		UserID:             userID,
		StartTime:          now,
		LastActivity:       now,
		CollaborationState: models.SessionInitiated,
		AgentStates:        make(map[string]*models.AgentState),
	}
	m.persist(ctx, s)
	log.Info("session %s created for user %s", s.SessionID, userID)
	return s
}

// GetSession loads a session by id. A true cache miss (expired or never
// created) returns (nil, nil); a transient store error returns (nil, err)
// so callers do not mistake an outage for a missing session.
func (m *Manager) GetSession(ctx context.Context, sessionID string) (*models.A2ASession, error) {
	if m.store == nil {
		return nil, nil
	}

	opCtx, cancel := context.WithTimeout(ctx, storeOpTimeout)
	defer cancel()

	data, err := m.store.Get(opCtx, sessionKeyPrefix+sessionID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Warn("session %s load failed: %v", sessionID, err)
		return nil, err
	}

	var s models.A2ASession
	if err := json.Unmarshal(data, &s); err != nil {
		log.Warn("session %s corrupt, treating as miss: %v", sessionID, err)
		return nil, nil
	}
	if s.AgentStates == nil {
		s.AgentStates = make(map[string]*models.AgentState)
	}
	return &s, nil
}

// UpdateSession touches and persists the session.
func (m *Manager) UpdateSession(ctx context.Context, s *models.A2ASession) {
	s.LastActivity = time.Now()
	m.persist(ctx, s)
}

// SetState transitions the collaboration state. Completion is monotonic:
// once completed, a session never moves back to an earlier state.
func (m *Manager) SetState(ctx context.Context, s *models.A2ASession, state models.SessionState) {
	if s.CollaborationState == models.SessionCompleted && state != models.SessionCompleted {
		log.Warn("session %s already completed, ignoring transition to %s", s.SessionID, state)
		return
	}
	s.CollaborationState = state
	m.UpdateSession(ctx, s)
}

// AddQuestion records a new user question on the session. QuestionCount is
// monotonically non-decreasing.
func (m *Manager) AddQuestion(ctx context.Context, s *models.A2ASession, question string) {
	s.CurrentQuestion = question
	s.QuestionCount++
	m.UpdateSession(ctx, s)
}

// AddDiscoveredNeed appends a need surfaced during collaboration.
func (m *Manager) AddDiscoveredNeed(ctx context.Context, s *models.A2ASession, need models.DiscoveredNeed) {
	if need.DiscoveredAt.IsZero() {
		need.DiscoveredAt = time.Now()
	}
	s.DiscoveredNeeds = append(s.DiscoveredNeeds, need)
	m.UpdateSession(ctx, s)
}

// UpdateAgentState records one agent's progress.
func (m *Manager) UpdateAgentState(ctx context.Context, s *models.A2ASession, agentID, status, task string) {
	st, ok := s.AgentStates[agentID]
	if !ok {
		st = &models.AgentState{}
		s.AgentStates[agentID] = st
	}
	st.Status = status
	st.CurrentTask = task
	st.LastUpdate = time.Now()
	st.Outputs++
	m.UpdateSession(ctx, s)
}

// SaveVehicleRecommendations stores the turn's final recommendations.
func (m *Manager) SaveVehicleRecommendations(ctx context.Context, s *models.A2ASession, recs []models.VehicleRecommendation) {
	s.VehicleRecommendations = recs
	m.UpdateSession(ctx, s)
}

// UpdateSatisfaction records a satisfaction signal.
func (m *Manager) UpdateSatisfaction(ctx context.Context, s *models.A2ASession, level float64, indicator string) {
	s.SatisfactionLevel = level
	if indicator != "" {
		s.SatisfactionIndicators = append(s.SatisfactionIndicators, indicator)
	}
	m.UpdateSession(ctx, s)
}

// CompleteSession marks the session done, computes the derived analytics
// record and stores it separately from the live session object.
func (m *Manager) CompleteSession(ctx context.Context, s *models.A2ASession, reason models.CompletionReason) *models.SessionAnalytics {
	m.SetState(ctx, s, models.SessionCompleted)

	analytics := &models.SessionAnalytics{
		SessionID:       s.SessionID,
		QuestionCount:   s.QuestionCount,
		NeedsDiscovered: len(s.DiscoveredNeeds),
		DurationSeconds: int(time.Since(s.StartTime).Seconds()),
		Reason:          reason,
		CompletedAt:     time.Now(),
	}
	if s.QuestionCount > 0 {
		analytics.NeedsDiscoveryRate = float64(len(s.DiscoveredNeeds)) / float64(s.QuestionCount)
	}

	m.tryPersist(ctx, analyticsKeyPrefix+s.SessionID, analytics, analyticsTTL)
	log.Info("session %s completed (%s): %d questions, %d needs",
		s.SessionID, reason, s.QuestionCount, len(s.DiscoveredNeeds))
	return analytics
}

// persist writes the live session record best-effort.
func (m *Manager) persist(ctx context.Context, s *models.A2ASession) {
	m.tryPersist(ctx, sessionKeyPrefix+s.SessionID, s, sessionTTL)
}

// tryPersist is the try-durable-op combinator: marshal, upsert with TTL, and
// on any failure log and carry on with the in-memory copy.
func (m *Manager) tryPersist(ctx context.Context, key string, v any, ttl time.Duration) {
	if m.store == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("marshal %s failed: %v", key, err)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, storeOpTimeout)
	defer cancel()
	if err := m.store.SetWithTTL(opCtx, key, data, ttl); err != nil {
		log.Warn("persist %s failed, continuing in-memory: %v", key, err)
	}
}
