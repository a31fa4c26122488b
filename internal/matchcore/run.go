package matchcore

import (
	"context"
	"log"
	"time"
)

// Run drives the match's tick loop while it is Running, waking at a fixed
// interval (simulation rate) and performing exactly one tick per wake, or,
// if the loop fell behind, a small bounded catch-up. onSnapshot is
// invoked with the flushed payload once every Cfg.snapshotEveryNTicks()
// ticks (sim_tps / snapshot_tps, rounded up); it must not
// block (callers typically fan out to non-blocking outbox sends
// themselves). Run returns the final MatchSummary when the match ends,
// aborts fatally, or ctx is cancelled.
func (m *Match) Run(ctx context.Context, onSnapshot func(Snapshot)) MatchSummary {
	m.mu.Lock()
	if m.phase != PhaseRunning {
		m.mu.Unlock()
		panic("matchcore: Run called on a match that is not Running")
	}
	interval := time.Second / time.Duration(m.Cfg.SimTPS)
	nextDeadline := time.Now().Add(interval)
	m.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return m.abort(ctx.Err(), "context cancelled")

		case now := <-ticker.C:
			behind := now.Sub(nextDeadline)
			ticksOwed := 1
			if behind > 0 {
				owed := int(behind/interval) + 1
				if owed > maxCatchUpTicks {
					log.Printf("matchcore: match %s scheduler lag %v, skipping %d ticks past the bounded catch-up of %d",
						m.ID, behind, owed-maxCatchUpTicks, maxCatchUpTicks)
					owed = maxCatchUpTicks
					// Skipped ticks are dropped for good, not deferred:
					// rebase the deadline so the backlog doesn't turn into
					// a long stretch of fast-forwarded simulation.
					nextDeadline = now
				}
				ticksOwed = owed
			}
			nextDeadline = nextDeadline.Add(interval * time.Duration(ticksOwed))

			var final *Outcome
			m.mu.Lock()
			if m.metrics != nil {
				lag := behind
				if lag < 0 {
					lag = 0
				}
				m.metrics.SchedulerLag.Observe(lag.Seconds())
			}
			for i := 0; i < ticksOwed; i++ {
				o := m.tickOnce(now)
				if o.Kind != Advanced {
					final = &o
					break
				}
			}
			m.ticksSinceFlush += ticksOwed
			flush := m.ticksSinceFlush >= m.Cfg.snapshotEveryNTicks()
			var snap Snapshot
			if flush {
				snap = m.buildSnapshot()
				m.ticksSinceFlush = 0
			}
			m.mu.Unlock()

			if flush && onSnapshot != nil {
				onSnapshot(snap)
			}

			if final != nil {
				switch final.Kind {
				case Ended:
					return m.finish(now, final.WinnerUserID, false, "")
				case Fatal:
					log.Printf("matchcore: match %s aborted: %s", m.ID, final.Reason)
					return m.finish(now, nil, true, final.Reason)
				}
			}
		}
	}
}

// finish transitions the match to Ended (idempotent) and returns its
// summary. Must not be called with m.mu held.
func (m *Match) finish(now time.Time, winner *string, aborted bool, reason string) MatchSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = PhaseEnded
	return m.buildSummary(now, winner, aborted, reason)
}

// abort is finish for the context-cancellation path, where there is no
// natural winner.
func (m *Match) abort(err error, reason string) MatchSummary {
	return m.finish(time.Now(), nil, true, reason+": "+errString(err))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
