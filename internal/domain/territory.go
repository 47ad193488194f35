package domain

import "time"

// Coordinate is a (latitude, longitude) pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Territory is a named polygonal boundary. Points form an implicitly closed
// polygon; a territory with fewer than 3 points is degenerate and never
// contains any coordinate.
type Territory struct {
	ID          string
	Name        string
	Points      []Coordinate
	AssignedRep string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Degenerate reports whether the boundary has too few points to enclose area.
func (t *Territory) Degenerate() bool {
	return len(t.Points) < 3
}
