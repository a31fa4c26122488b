package matchcore

import "github.com/shipcore/arena/internal/geom"

// newZone builds the initial zone state for a fresh match. The center is
// fixed at match start: the origin offset by up to 5% of the world radius,
// drawn deterministically from the match seed (exactly the origin only when
// WorldRadius is not positive).
func newZone(cfg Config, rng *geom.RNG) Zone {
	phases := cfg.ZonePhases
	if len(phases) == 0 {
		phases = DefaultZonePhases()
	}
	center := geom.Vec2{}
	// A small deterministic offset keeps matches from being bitwise
	// identical to each other in center placement while remaining fully
	// reproducible for a given seed.
	if cfg.WorldRadius > 0 {
		center = rng.Vec2In(cfg.WorldRadius * 0.05)
	}
	return Zone{
		Phases:         phases,
		Center:         center,
		PhaseIdx:       0,
		previousTarget: phases[0].TargetRadius,
		CurrentRadius:  phases[0].TargetRadius,
		phaseStartTick: 0,
		DamagePerSec:   cfg.ZoneDamagePerSec,
	}
}

// advanceZone steps the zone's radius for the given tick. Must be
// called with m.mu held.
func (m *Match) advanceZone() {
	z := &m.zone
	simTPS := float64(m.Cfg.SimTPS)

	if z.PhaseIdx+1 >= len(z.Phases) {
		// Final phase: pinned.
		z.CurrentRadius = z.Phases[len(z.Phases)-1].TargetRadius
		return
	}

	next := z.Phases[z.PhaseIdx+1]
	delayTicks := uint64(next.DelaySecs * simTPS)
	shrinkTicks := uint64(next.ShrinkSecs * simTPS)
	elapsed := m.tick - z.phaseStartTick

	switch {
	case elapsed < delayTicks:
		z.CurrentRadius = z.previousTarget
	case shrinkTicks == 0 || elapsed >= delayTicks+shrinkTicks:
		z.previousTarget = next.TargetRadius
		z.CurrentRadius = next.TargetRadius
		z.PhaseIdx++
		z.phaseStartTick = m.tick
	default:
		frac := float64(elapsed-delayTicks) / float64(shrinkTicks)
		z.CurrentRadius = z.previousTarget + (next.TargetRadius-z.previousTarget)*frac
	}

	m.pending = append(m.pending, ZoneTickEvent{
		baseEvent:  baseEvent{m.tick},
		PhaseIndex: z.PhaseIdx,
		Radius:     z.CurrentRadius,
	})
}

// applyZoneDamage damages every alive player outside the current zone
// radius, before projectile resolution in the tick ordering.
// Must be called with m.mu held.
func (m *Match) applyZoneDamage() {
	if m.zone.DamagePerSec <= 0 {
		return
	}
	dt := m.Cfg.dt()
	dmg := m.zone.DamagePerSec * dt

	for _, p := range m.players {
		if p == nil || !p.Alive {
			continue
		}
		if p.Pos.Distance(m.zone.Center) <= m.zone.CurrentRadius {
			continue
		}
		m.applyDamage(nil, p, dmg)
	}
}
