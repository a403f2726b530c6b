package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

const namespace = "roommate"

// Recorder exports the service counters on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	swipes   *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	ranked   prometheus.Histogram
	latency  prometheus.Histogram
}

var _ ports.Metrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		swipes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swipes_total",
			Help:      "Swipes received, by direction.",
		}, []string{"direction"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swipe_outcomes_total",
			Help:      "Swipe results, by status.",
		}, []string{"status"}),
		ranked: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranked_rooms",
			Help:      "Rooms returned per ranking request.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Time spent ranking rooms.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.swipes,
		r.outcomes,
		r.ranked,
		r.latency,
	)
	return r
}

func (r *Recorder) ObserveSwipe(direction string) {
	r.swipes.WithLabelValues(direction).Inc()
}

func (r *Recorder) ObserveMatchOutcome(status string) {
	r.outcomes.WithLabelValues(status).Inc()
}

func (r *Recorder) ObserveRanking(rooms int, elapsed time.Duration) {
	r.ranked.Observe(float64(rooms))
	r.latency.Observe(elapsed.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
