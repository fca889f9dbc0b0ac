package models

import "time"

// SessionState is the durable collaboration state of a session.
type SessionState string

const (
	SessionInitiated       SessionState = "initiated"
	SessionAnalyzing       SessionState = "analyzing"
	SessionNeedsDiscovered SessionState = "needs_discovered"
	SessionReranking       SessionState = "reranking"
	SessionCompleted       SessionState = "completed"
)

// CompletionReason records why a session ended.
type CompletionReason string

const (
	CompletionSatisfied CompletionReason = "satisfied"
	CompletionAbandoned CompletionReason = "abandoned"
	CompletionTimeout   CompletionReason = "timeout"
)

// DiscoveredNeed is one user requirement surfaced during collaboration.
type DiscoveredNeed struct {
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Importance   float64   `json:"importance"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// AgentState tracks one agent's progress inside a session.
type AgentState struct {
	Status      string    `json:"status"`
	CurrentTask string    `json:"currentTask"`
	LastUpdate  time.Time `json:"lastUpdate"`
	Outputs     int       `json:"outputs"`
	Performance float64   `json:"performance"`
}

// A2ASession is the durable, cross-turn record of one user's consultation.
// It is persisted best-effort to the session store with a bounded TTL; the
// in-memory copy is authoritative for the current turn.
type A2ASession struct {
	SessionID              string                  `json:"sessionId"`
	UserID                 string                  `json:"userId"`
	StartTime              time.Time               `json:"startTime"`
	LastActivity           time.Time               `json:"lastActivity"`
	CollaborationState     SessionState            `json:"collaborationState"`
	CurrentQuestion        string                  `json:"currentQuestion"`
	QuestionCount          int                     `json:"questionCount"`
	DiscoveredNeeds        []DiscoveredNeed        `json:"discoveredNeeds"`
	AgentStates            map[string]*AgentState  `json:"agentStates"`
	VehicleRecommendations []VehicleRecommendation `json:"vehicleRecommendations"`
	SatisfactionLevel      float64                 `json:"satisfactionLevel"`
	SatisfactionIndicators []string                `json:"satisfactionIndicators"`
	Metadata               map[string]string       `json:"metadata,omitempty"`
}

// SessionAnalytics is the derived record computed when a session completes,
// stored separately from the live session object.
type SessionAnalytics struct {
	SessionID          string           `json:"sessionId"`
	QuestionCount      int              `json:"questionCount"`
	NeedsDiscovered    int              `json:"needsDiscovered"`
	NeedsDiscoveryRate float64          `json:"needsDiscoveryRate"`
	DurationSeconds    int              `json:"durationSeconds"`
	Reason             CompletionReason `json:"reason"`
	CompletedAt        time.Time        `json:"completedAt"`
}
