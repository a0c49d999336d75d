// Package audit captures profile lifecycle events. Events are emitted from
// domain logic and fanned out through a publisher; keep them transport-agnostic
// so sinks (in-memory, Kafka) stay interchangeable.
package audit

import "time"

// Action names a lifecycle event.
type Action string

const (
	ActionProfileCreated     Action = "profile_created"
	ActionProfileActivated   Action = "profile_activated"
	ActionProfileDeactivated Action = "profile_deactivated"
	ActionProfileArchived    Action = "profile_archived"
	ActionProfileDeleted     Action = "profile_deleted"
	ActionContactImported    Action = "contact_imported"
)

// Event is one audit record. SubjectID identifies the profile or contact the
// action applied to.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	SubjectID string    `json:"subject_id"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
