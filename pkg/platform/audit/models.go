// Package audit captures key actions as events that can fan out to
// stores and sinks. Events are transport-agnostic and never contain raw
// PESELs; subjects are identified by their HMAC pseudonym only.
package audit

import (
	"time"
)

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal or regulatory
	// significance; these require long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and
	// operational visibility; these can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Actions emitted by the verification service.
const (
	ActionPeselVerified    = "pesel_verified"
	ActionPeselRejected    = "pesel_rejected"
	ActionBatchVerified    = "batch_verified"
	ActionAuditListQueried = "audit_list_queried"
)

// Event is emitted from domain logic. SubjectHash is the HMAC-SHA256
// pseudonym of the PESEL being evaluated, kept for compliance
// traceability without storing PII.
type Event struct {
	ID          string
	Category    EventCategory
	Timestamp   time.Time
	Action      string
	Outcome     string
	Reason      string
	SubjectHash string
	RequestID   string
	ClientIP    string
	UserAgent   string
}

// CategoryOf derives the category from an action; verification outcomes
// are compliance events, everything else is operational.
func CategoryOf(action string) EventCategory {
	switch action {
	case ActionPeselVerified, ActionPeselRejected:
		return CategoryCompliance
	default:
		return CategoryOperations
	}
}
