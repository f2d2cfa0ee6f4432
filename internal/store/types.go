package store

import "time"

// AssessmentRecord is a persisted prediction outcome plus the survey answers
// that produced it. Records are immutable once written; the service never
// updates or deletes them.
type AssessmentRecord struct {
	ID                  string         `json:"id" firestore:"-"`
	UserID              string         `json:"userId" firestore:"userId"`
	Prediction          int            `json:"prediction" firestore:"prediction"`
	ProbabilityPositive float64        `json:"probability_positive" firestore:"probability_positive"`
	ProbabilityNegative float64        `json:"probability_negative" firestore:"probability_negative"`
	RiskLevel           string         `json:"risk_level" firestore:"risk_level"`
	Timestamp           time.Time      `json:"timestamp" firestore:"timestamp"`
	FormData            map[string]any `json:"formData" firestore:"formData"`
}

// UserProfile is an externally owned document; this service only reads it,
// so it stays schemaless.
type UserProfile map[string]any
