package service

import (
	"fmt"
	"sync"
	"time"
)

// BatchMetrics tracks statistics about one watchlist batch run
type BatchMetrics struct {
	mu        sync.RWMutex
	StartTime time.Time
	Duration  time.Duration
	Total     int
	Completed int
	Degraded  int
	Errors    int
}

// NewBatchMetrics creates a new metrics tracker
func NewBatchMetrics() *BatchMetrics {
	return &BatchMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *BatchMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.Total = 0
	m.Completed = 0
	m.Degraded = 0
	m.Errors = 0
}

// RecordCompleted increments the completed run count
func (m *BatchMetrics) RecordCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completed++
}

// RecordDegraded increments the degraded run count
func (m *BatchMetrics) RecordDegraded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Degraded++
}

// RecordError increments the error count
func (m *BatchMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// String returns a formatted string representation of metrics
func (m *BatchMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	completionRate := float64(0)
	if m.Total > 0 {
		completionRate = float64(m.Completed) / float64(m.Total) * 100
	}

	return fmt.Sprintf(
		"BatchMetrics{Total=%d, Completed=%d (%.1f%%), Degraded=%d, Errors=%d, Duration=%v}",
		m.Total,
		m.Completed,
		completionRate,
		m.Degraded,
		m.Errors,
		m.Duration,
	)
}
