package ports

import "time"

// Metrics receives business counters from the services.
type Metrics interface {
	ObserveSwipe(direction string)
	ObserveMatchOutcome(status string)
	ObserveRanking(rooms int, elapsed time.Duration)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveSwipe(string)               {}
func (NopMetrics) ObserveMatchOutcome(string)        {}
func (NopMetrics) ObserveRanking(int, time.Duration) {}
