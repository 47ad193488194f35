package domain

import "time"

// LeadStatus enumerates prospect dispositions.
type LeadStatus string

const (
	LeadStatusUntouched     LeadStatus = "UNTOUCHED"
	LeadStatusNotHome       LeadStatus = "NOT_HOME"
	LeadStatusCallback      LeadStatus = "CALLBACK"
	LeadStatusAppointment   LeadStatus = "APPOINTMENT"
	LeadStatusFollowUp      LeadStatus = "FOLLOW_UP"
	LeadStatusNotInterested LeadStatus = "NOT_INTERESTED"
	LeadStatusSold          LeadStatus = "SOLD"
)

// contactOutcomes are the dispositions that count as a tracked contact.
var contactOutcomes = map[LeadStatus]struct{}{
	LeadStatusCallback:      {},
	LeadStatusAppointment:   {},
	LeadStatusFollowUp:      {},
	LeadStatusNotInterested: {},
	LeadStatusSold:          {},
}

// IsContactOutcome reports whether the status resulted in a contact.
func (s LeadStatus) IsContactOutcome() bool {
	_, ok := contactOutcomes[s]
	return ok
}

// Valid reports whether the status is a known disposition.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusUntouched, LeadStatusNotHome, LeadStatusCallback,
		LeadStatusAppointment, LeadStatusFollowUp, LeadStatusNotInterested,
		LeadStatusSold:
		return true
	default:
		return false
	}
}

// Lead is one prospect interaction target. A lead has exactly one owning
// actor at any time; ownership changes only through reassignment.
type Lead struct {
	ID          string
	ExternalKey string
	OwnerID     string
	Status      LeadStatus
	Latitude    float64
	Longitude   float64
	Address     string
	Notes       string
	VisitedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
