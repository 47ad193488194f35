package dto

import "time"

// ActorStatsResponse is one row of the performance rollup.
type ActorStatsResponse struct {
	ActorID      string     `json:"actor_id"`
	ActorName    string     `json:"actor_name"`
	TotalLeads   int        `json:"total_leads"`
	DoorsKnocked int        `json:"doors_knocked"`
	Contacts     int        `json:"contacts"`
	Appointments int        `json:"appointments"`
	Sales        int        `json:"sales"`
	ContactRate  int        `json:"contact_rate"`
	CloseRate    int        `json:"close_rate"`
	LastActivity *time.Time `json:"last_activity"`
}

// TeamTotalsResponse sums the counting columns across rows.
type TeamTotalsResponse struct {
	TotalLeads   int `json:"total_leads"`
	DoorsKnocked int `json:"doors_knocked"`
	Contacts     int `json:"contacts"`
	Appointments int `json:"appointments"`
	Sales        int `json:"sales"`
}

// StatsResponse is the full rollup payload.
type StatsResponse struct {
	Window string               `json:"window"`
	Actors []ActorStatsResponse `json:"actors"`
	Totals TeamTotalsResponse   `json:"totals"`
}
