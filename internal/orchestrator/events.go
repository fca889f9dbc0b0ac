package orchestrator

import (
	"time"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/pattern"
)

// EventType identifies one orchestrator event.
type EventType string

const (
	EventPatternDetected        EventType = "pattern_detected"
	EventAgentResponse          EventType = "agent_response"
	EventAgentQuestion          EventType = "agent_question"
	EventAgentAnswer            EventType = "agent_answer"
	EventConsensusReached       EventType = "consensus_reached"
	EventUserInterventionNeeded EventType = "user_intervention_needed"
	EventVehicleRecommendations EventType = "vehicle_recommendations"
	EventCollaborationComplete  EventType = "collaboration_complete"
	EventError                  EventType = "error"
)

// Event is one typed, timestamped orchestrator event, suitable for
// incremental delivery to a streaming transport.
type Event struct {
	Type      EventType `json:"type"`
	AgentID   string    `json:"agentId,omitempty"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Structured payloads, populated per event type.
	Pattern         *pattern.CollaborationPattern  `json:"pattern,omitempty"`
	Recommendations []models.VehicleRecommendation `json:"recommendations,omitempty"`
}

// EventCallback receives events as the turn produces them. May be nil.
type EventCallback func(Event)

// emit delivers one event through the callback when one is registered.
func emit(cb EventCallback, ev Event) {
	if cb == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	cb(ev)
}
