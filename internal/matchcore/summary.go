package matchcore

import "time"

// PlayerStat is one player's final per-match statistics line, as carried
// in match_end payloads and the stats-sink summary.
type PlayerStat struct {
	UserID      string
	Slot        int
	Ship        string
	Kills       int
	Deaths      int
	DamageDealt int
	ShotsFired  int
	ShotsHit    int
	Placement   int // 1..N, 1 = winner when there is one
}

// MatchSummary is the one-way match-summary record emitted to the stats
// sink at match end. It is the core's only durable output.
type MatchSummary struct {
	MatchID      string
	Seed         int64
	StartedAt    time.Time
	EndedAt      time.Time
	Duration     time.Duration
	WinnerUserID *string
	Aborted      bool
	AbortReason  string
	Players      []PlayerStat
}

// buildSummary assembles the final match summary, ranking players by
// placement: the winner (if any) first, then the other alive-at-end players
// in slot order (several survive when the time limit ends the match), then
// dead players ordered by death tick descending (died later = placed
// higher), matching typical battle-royale placement semantics. Must be
// called with m.mu held.
func (m *Match) buildSummary(now time.Time, winner *string, aborted bool, abortReason string) MatchSummary {
	type ranked struct {
		p        *Player
		deathOrd uint64 // larger = died later = better placement
	}
	var rs []ranked
	for _, p := range m.players {
		if p == nil {
			continue
		}
		ord := m.tick + 1 // alive players outrank every dead player
		if p.DeathTick != nil {
			ord = *p.DeathTick
		} else if winner != nil && p.UserID == *winner {
			ord = m.tick + 2 // the winner outranks the other survivors
		}
		rs = append(rs, ranked{p: p, deathOrd: ord})
	}

	// Stable insertion sort by descending deathOrd; N is small
	// (max_players_per_match, default 32), so O(n^2) is fine and keeps
	// the ordering deterministic without importing sort for a 32-element
	// slice.
	for i := 1; i < len(rs); i++ {
		j := i
		for j > 0 && rs[j-1].deathOrd < rs[j].deathOrd {
			rs[j-1], rs[j] = rs[j], rs[j-1]
			j--
		}
	}

	stats := make([]PlayerStat, len(rs))
	for i, r := range rs {
		p := r.p
		stats[i] = PlayerStat{
			UserID: p.UserID, Slot: p.Slot, Ship: string(p.Ship),
			Kills: p.Kills, Deaths: boolToDeaths(p.DeathTick != nil),
			DamageDealt: p.DamageDealt, ShotsFired: p.ShotsFired, ShotsHit: p.ShotsHit,
			Placement: i + 1,
		}
	}

	return MatchSummary{
		MatchID: m.ID.String(), Seed: m.Seed,
		StartedAt: m.startTime, EndedAt: now, Duration: now.Sub(m.startTime),
		WinnerUserID: winner, Aborted: aborted, AbortReason: abortReason,
		Players: stats,
	}
}

func boolToDeaths(died bool) int {
	if died {
		return 1
	}
	return 0
}
