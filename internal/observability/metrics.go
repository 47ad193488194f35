package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps process-local request and error tallies per route. The
// counters are for single-instance log-side debugging; nothing exports
// them over the wire.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics returns an empty tally set.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts one completed request under method, path and status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey(method, path, strconv.Itoa(status))
	m.mu.Lock()
	m.requests[key]++
	m.mu.Unlock()
}

// RecordError counts one rendered domain error code under its route.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := routeKey(method, path, code)
	m.mu.Lock()
	m.errors[key]++
	m.mu.Unlock()
}

func routeKey(method, path, suffix string) string {
	return method + " " + path + " " + suffix
}
