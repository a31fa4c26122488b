package matchcore

// PlayerView is the per-player tuple in a snapshot.
type PlayerView struct {
	UserID  string  `json:"user_id"`
	Slot    int     `json:"slot"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Heading float64 `json:"heading"`
	Hull    float64 `json:"hull"`
	Alive   bool    `json:"alive"`
}

// ProjectileView is an optional per-projectile summary, sent bandwidth
// permitting. Only position and owner are sent; everything else a
// client needs (damage, radius) is already known from the weapon profile.
type ProjectileView struct {
	ID        int     `json:"id"`
	OwnerSlot int     `json:"owner_slot"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// ZoneView is the zone state included in every snapshot.
type ZoneView struct {
	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	Radius     float64 `json:"radius"`
	PhaseIndex int     `json:"phase"`
}

// EventView is the JSON-friendly rendering of an Event for the wire.
type EventView struct {
	Kind   string  `json:"kind"`
	Tick   uint64  `json:"tick"`
	Owner  *int    `json:"owner,omitempty"`
	Victim *int    `json:"victim,omitempty"`
	Damage int     `json:"damage,omitempty"`
	Winner *string `json:"winner,omitempty"`
}

// Snapshot is the whole-state payload flushed to clients at snapshot_tps.
// No delta compression in v1. The per-player tuple serializes to
// well under 200 bytes of JSON, which keeps a full 32-player match inside
// the bandwidth budget at 20 flushes/sec.
type Snapshot struct {
	MatchID     string           `json:"match_id"`
	Tick        uint64           `json:"tick"`
	Zone        ZoneView         `json:"zone"`
	Players     []PlayerView     `json:"players"`
	Projectiles []ProjectileView `json:"projectiles,omitempty"`
	Events      []EventView      `json:"events,omitempty"`
}

// renderEvent converts an Event into its wire form.
func renderEvent(e Event) EventView {
	switch v := e.(type) {
	case HitEvent:
		victim := v.Victim
		return EventView{Kind: "hit", Tick: v.TickN, Owner: v.Owner, Victim: &victim, Damage: v.Damage}
	case KillEvent:
		victim := v.Victim
		return EventView{Kind: "kill", Tick: v.TickN, Owner: v.Killer, Victim: &victim}
	case ZoneTickEvent:
		return EventView{Kind: "zone_tick", Tick: v.TickN}
	case MatchStartEvent:
		return EventView{Kind: "match_start", Tick: v.TickN}
	case MatchEndEvent:
		return EventView{Kind: "match_end", Tick: v.TickN, Winner: v.WinnerUserID}
	default:
		return EventView{Kind: "unknown", Tick: e.tick()}
	}
}

// buildSnapshot converts current match state into a Snapshot and clears
// the pending event log. Must be called with m.mu held.
func (m *Match) buildSnapshot() Snapshot {
	players := make([]PlayerView, 0, m.joinedCount)
	for _, p := range m.players {
		if p == nil {
			continue
		}
		players = append(players, PlayerView{
			UserID: p.UserID, Slot: p.Slot,
			X: p.Pos.X, Y: p.Pos.Y, VX: p.Vel.X, VY: p.Vel.Y,
			Heading: p.Heading, Hull: p.Hull, Alive: p.Alive,
		})
	}

	var projs []ProjectileView
	for _, proj := range m.projectiles {
		projs = append(projs, ProjectileView{ID: proj.ID, OwnerSlot: proj.OwnerSlot, X: proj.Pos.X, Y: proj.Pos.Y})
	}

	events := make([]EventView, 0, len(m.pending))
	for _, e := range m.pending {
		events = append(events, renderEvent(e))
	}
	m.pending = m.pending[:0]

	return Snapshot{
		MatchID: m.ID.String(),
		Tick:    m.tick,
		Zone: ZoneView{
			CenterX: m.zone.Center.X, CenterY: m.zone.Center.Y,
			Radius: m.zone.CurrentRadius, PhaseIndex: m.zone.PhaseIdx,
		},
		Players:     players,
		Projectiles: projs,
		Events:      events,
	}
}
