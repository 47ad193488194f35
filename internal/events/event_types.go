package events

import (
	"time"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadStatusChanged EventType = "lead_status_changed"
	EventLeadVisited       EventType = "lead_visited"
	EventLeadReassigned    EventType = "lead_reassigned"
	EventPasscodeIssued    EventType = "passcode_issued"
)

// Event represents a domain event emitted by services. SubjectID refers to
// the lead for lead events and the phone number for passcode events.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	OwnerID string            `json:"owner_id"`
	Status  domain.LeadStatus `json:"status"`
	Address string            `json:"address,omitempty"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	OldStatus domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus `json:"new_status"`
}

// LeadVisitedPayload payload.
type LeadVisitedPayload struct {
	VisitedAt time.Time         `json:"visited_at"`
	Status    domain.LeadStatus `json:"status"`
}

// LeadReassignedPayload payload.
type LeadReassignedPayload struct {
	OldOwnerID string `json:"old_owner_id"`
	NewOwnerID string `json:"new_owner_id"`
}

// PasscodeIssuedPayload payload. The code rides along so the delivery
// worker can hand it to the external sender; it is never logged verbatim.
type PasscodeIssuedPayload struct {
	Phone     string        `json:"phone"`
	Code      string        `json:"-"`
	ExpiresIn time.Duration `json:"expires_in"`
}
