package domain

import "time"

// StatsWindow selects the time range for performance rollups.
type StatsWindow string

const (
	WindowToday    StatsWindow = "today"
	WindowThisWeek StatsWindow = "this_week"
	WindowAllTime  StatsWindow = "all_time"
)

// ParseWindow maps a query value to a window, defaulting to all-time.
func ParseWindow(raw string) (StatsWindow, bool) {
	switch StatsWindow(raw) {
	case WindowToday:
		return WindowToday, true
	case WindowThisWeek:
		return WindowThisWeek, true
	case WindowAllTime, "":
		return WindowAllTime, true
	default:
		return WindowAllTime, false
	}
}

// ActorStats holds per-actor performance counts over a window.
// DoorsKnocked honors the window; the remaining counts are all-time.
type ActorStats struct {
	ActorID      string
	ActorName    string
	TotalLeads   int
	DoorsKnocked int
	Contacts     int
	Appointments int
	Sales        int
	ContactRate  int
	CloseRate    int
	LastActivity *time.Time
}

// TeamTotals is the element-wise sum of per-actor counts. Rates are not
// re-derived here; callers recompute them from the summed counts if needed.
type TeamTotals struct {
	TotalLeads   int
	DoorsKnocked int
	Contacts     int
	Appointments int
	Sales        int
}
