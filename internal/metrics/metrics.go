// Package metrics wires the match core into Prometheus, carried as ambient
// operational infrastructure alongside the simulation itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors bundles the metrics this module exposes.
type Collectors struct {
	TicksProcessed   prometheus.Counter
	ActiveMatches    prometheus.Gauge
	QueuedPlayers    prometheus.Gauge
	Kills            prometheus.Counter
	MatchesStarted   prometheus.Counter
	MatchesEnded     *prometheus.CounterVec
	SchedulerLag     prometheus.Histogram
	StatsSinkRetries prometheus.Counter
}

// NewCollectors registers all collectors against reg and returns them.
// Pass prometheus.NewRegistry() for test isolation or
// prometheus.DefaultRegisterer for production.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		TicksProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "arena_ticks_processed_total",
			Help: "Total simulation ticks processed across all matches.",
		}),
		ActiveMatches: factory.NewGauge(prometheus.GaugeOpts{
			Name: "arena_active_matches",
			Help: "Number of matches currently in the Running phase.",
		}),
		QueuedPlayers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "arena_matchmaking_queue_depth",
			Help: "Number of players currently waiting in the matchmaking queue.",
		}),
		Kills: factory.NewCounter(prometheus.CounterOpts{
			Name: "arena_kills_total",
			Help: "Total kill events across all matches, including environmental.",
		}),
		MatchesStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "arena_matches_started_total",
			Help: "Total matches that transitioned from Lobby to Running.",
		}),
		MatchesEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "arena_matches_ended_total",
			Help: "Total matches that reached Ended, labeled by outcome.",
		}, []string{"outcome"}),
		SchedulerLag: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "arena_tick_scheduler_lag_seconds",
			Help:    "Observed wall-clock lag between a tick's deadline and its actual wake time.",
			Buckets: prometheus.DefBuckets,
		}),
		StatsSinkRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "arena_stats_sink_retries_total",
			Help: "Total stats sink Report retries triggered by a first-attempt failure.",
		}),
	}
}
