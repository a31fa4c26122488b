package matchcore

import (
	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/geom"
)

// applyDamage applies dmg to victim's hull, attributing the hit to owner
// (nil for environmental damage), and emits Hit/Kill events. A Hit event
// is only emitted for attributed damage: the zone damages out-of-zone
// players every single tick, and a per-tick Hit stream would swamp the
// event log without telling clients anything the snapshot's zone state
// doesn't. Must be called with m.mu held. owner is a slot index or nil.
func (m *Match) applyDamage(owner *int, victim *Player, dmg float64) {
	if dmg <= 0 || !victim.Alive {
		return
	}
	victim.Hull -= dmg
	if victim.Hull < 0 {
		victim.Hull = 0
	}

	if owner != nil {
		if ow := m.players[*owner]; ow != nil {
			ow.DamageDealt += int(dmg)
		}
		m.pending = append(m.pending, newHit(m.tick, owner, victim.Slot, int(dmg)))
	}

	if victim.Hull <= 0 {
		m.killPlayer(owner, victim)
	}
}

// killPlayer marks victim dead, attributes the kill, and emits KillEvent.
// Must be called with m.mu held.
func (m *Match) killPlayer(owner *int, victim *Player) {
	if !victim.Alive {
		return
	}
	victim.Alive = false
	t := m.tick
	victim.DeathTick = &t
	m.aliveCount--

	if owner != nil {
		if ow := m.players[*owner]; ow != nil {
			ow.Kills++
		}
	}
	if m.metrics != nil {
		m.metrics.Kills.Inc()
	}

	m.pending = append(m.pending, newKill(m.tick, owner, victim.Slot))
}

// processWeaponFire spawns a projectile for every alive player whose
// latest accepted input requested shoot=true and whose cooldown has
// elapsed. Cooldowns tick down for every alive player first. Must
// be called with m.mu held, iterating ascending slot for determinism.
func (m *Match) processWeaponFire() {
	for _, p := range m.players {
		if p == nil || !p.Alive {
			continue
		}
		if p.WeaponCooldown > 0 {
			p.WeaponCooldown--
		}

		in := p.LastAccepted
		if !in.Shoot || p.WeaponCooldown > 0 {
			continue
		}

		spec := catalog.MustLookup(p.Ship)
		m.fire(p, spec, in)
	}
}

// fire spawns one projectile from p, clamping the requested aim away from
// the ship's heading to prevent a 360-degree instant snap.
// The per-ship weapon profile sets the usual (tighter) bound; the global
// aim_max_slew_rad_per_sec config ceiling is applied on top so no
// archetype can be tuned past the server-wide anti-teleport-aim limit.
// Must be called with m.mu held.
func (m *Match) fire(p *Player, spec catalog.Spec, in Input) {
	maxSlew := spec.Weapon.MaxAimSlewRadians
	if ceiling := m.Cfg.AimMaxSlewRadPerSec; ceiling > 0 && ceiling < maxSlew {
		maxSlew = ceiling
	}
	aim := geom.ClampSlew(p.Heading, in.AimYaw, maxSlew)

	proj := &Projectile{
		ID:        m.nextProjID,
		OwnerSlot: p.Slot,
		Pos:       p.Pos,
		Vel:       geom.FromHeading(aim).Scale(spec.Weapon.MuzzleSpeed),
		SpawnTick: m.tick,
		TTL:       spec.Weapon.TTLTicks,
		Damage:    spec.Weapon.Damage,
	}
	m.nextProjID++
	m.projectiles = append(m.projectiles, proj)

	p.WeaponCooldown = spec.Weapon.FireIntervalTicks
	p.ShotsFired++
}

// advanceProjectiles moves every projectile, expires those past TTL or more
// than 1.5x the world radius from the origin, and resolves hits. Must be called with m.mu held.
func (m *Match) advanceProjectiles() {
	dt := m.Cfg.dt()
	sortProjectilesByOwnerSlot(m.projectiles)
	live := m.projectiles[:0]

	for _, proj := range m.projectiles {
		proj.Pos = proj.Pos.Add(proj.Vel.Scale(dt))

		if m.resolveHit(proj) {
			continue // stop processing this projectile; it's consumed
		}

		proj.TTL--
		if proj.TTL <= 0 {
			continue // expired silently
		}
		if proj.Pos.Length() > m.Cfg.WorldRadius*1.5 {
			continue
		}

		live = append(live, proj)
	}
	m.projectiles = live
}

// sortProjectilesByOwnerSlot stably reorders projs so that, when two
// projectiles from different owners would resolve against the same
// victim in the same tick, the lower owner slot resolves first; this is the
// deterministic tie-break for simultaneous kills. Stable
// insertion sort: N is bounded by live projectile count per match, never
// large enough to justify importing sort for it.
func sortProjectilesByOwnerSlot(projs []*Projectile) {
	for i := 1; i < len(projs); i++ {
		j := i
		for j > 0 && projs[j-1].OwnerSlot > projs[j].OwnerSlot {
			projs[j-1], projs[j] = projs[j], projs[j-1]
			j--
		}
	}
}

// resolveHit checks proj against every player in ascending slot order,
// skipping the owner, and resolves against the first (lowest slot) player
// within collision range. Returns true if the projectile hit (or was
// absorbed by a victim already killed earlier this same tick) and should
// be removed. Must be called with m.mu held.
func (m *Match) resolveHit(proj *Projectile) bool {
	for _, p := range m.players {
		if p == nil || p.Slot == proj.OwnerSlot {
			continue
		}
		spec := catalog.MustLookup(p.Ship)
		if proj.Pos.Distance(p.Pos) > spec.CollisionRadius {
			continue
		}

		if !p.Alive {
			// Victim died earlier this same tick to another projectile:
			// the hit still counts toward the owner's scoring stats but
			// produces no second Kill and no further hull change.
			if p.DeathTick != nil && *p.DeathTick == m.tick {
				owner := proj.OwnerSlot
				if ow := m.players[owner]; ow != nil {
					ow.ShotsHit++
					ow.DamageDealt += proj.Damage
				}
				return true
			}
			continue // long-dead victim: projectile passes through
		}

		owner := proj.OwnerSlot
		if ow := m.players[owner]; ow != nil {
			ow.ShotsHit++
		}
		m.applyDamage(&owner, p, float64(proj.Damage))
		return true
	}
	return false
}
