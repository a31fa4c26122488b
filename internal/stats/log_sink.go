package stats

import (
	"context"
	"log"

	"github.com/shipcore/arena/internal/matchcore"
)

// LogSink is the reference Sink used when no external stats backend is
// configured: it logs the summary and never fails, so it's a safe default
// for cmd/arenad to wire out of the box. A production deployment replaces
// this with a sink that writes to the leaderboard/statistics store, which
// is out of scope for this module.
type LogSink struct{}

// Report logs the match summary line and always succeeds.
func (LogSink) Report(_ context.Context, summary matchcore.MatchSummary) error {
	winner := "none"
	if summary.WinnerUserID != nil {
		winner = *summary.WinnerUserID
	}
	log.Printf("stats: match %s ended duration=%s winner=%s aborted=%t players=%d",
		summary.MatchID, summary.Duration, winner, summary.Aborted, len(summary.Players))
	for _, p := range summary.Players {
		log.Printf("stats:   #%d %s (%s) kills=%d deaths=%d dmg=%d shots=%d/%d",
			p.Placement, p.UserID, p.Ship, p.Kills, p.Deaths, p.DamageDealt, p.ShotsHit, p.ShotsFired)
	}
	return nil
}
