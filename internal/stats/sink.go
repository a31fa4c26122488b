// Package stats defines the one-way boundary to the leaderboard/statistics
// persistence path. The core only
// constructs and offers MatchSummary records; persistence itself lives
// outside this module.
package stats

import (
	"context"
	"errors"
	"log"

	"github.com/shipcore/arena/internal/matchcore"
	"github.com/shipcore/arena/internal/metrics"
)

// Sink accepts a finished match's summary for persistence. Implementations
// are external collaborators; Report should be fast and non-blocking
// relative to match shutdown.
type Sink interface {
	Report(ctx context.Context, summary matchcore.MatchSummary) error
}

// ErrSinkFailed names the failure of a Sink after the single retry the
// reporting policy allows. ReportWithRetry does not return it: it retries
// once, then drops with an error log, never blocking match shutdown.
var ErrSinkFailed = errors.New("stats: sink failed after retry")

// ReportWithRetry calls sink.Report, retries exactly once on failure, and
// logs + drops on a second failure. It never returns an error to the
// caller: match shutdown must proceed regardless. mc may be nil.
func ReportWithRetry(ctx context.Context, sink Sink, summary matchcore.MatchSummary, mc *metrics.Collectors) {
	if sink == nil {
		return
	}
	if err := sink.Report(ctx, summary); err != nil {
		if mc != nil {
			mc.StatsSinkRetries.Inc()
		}
		if err2 := sink.Report(ctx, summary); err2 != nil {
			log.Printf("stats: dropping match summary for %s after retry: %v (first error: %v)",
				summary.MatchID, err2, err)
		}
	}
}
