package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters for the portal's HTTP surface, keyed
// by route, method, and outcome. The portal runs as a single process and
// exports nothing to an external collector, so maps behind a mutex suffice.
type Metrics struct {
	mu            sync.Mutex
	requestCounts map[string]int64
	errorCounts   map[string]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCounts: make(map[string]int64),
		errorCounts:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request, citizen submissions and staff
// dashboard traffic alike, by route, method, and response status.
func (m *Metrics) RecordRequest(route, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := requestKey(route, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCounts[key]++
}

// RecordError counts a failed request by route, method, and error code
// from the DomainError taxonomy (VALIDATION_FAILED, NOT_FOUND, and so on).
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	key := route + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCounts[key]++
}

func requestKey(route, method string, status int) string {
	return route + "|" + method + "|" + strconv.Itoa(status)
}
