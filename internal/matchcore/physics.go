package matchcore

import (
	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/geom"
)

// advancePhysics advances kinematics for every alive player, iterating by
// ascending slot so two runs with the same inputs walk players in the
// same order. Must be called with m.mu held.
func (m *Match) advancePhysics() {
	dt := m.Cfg.dt()
	for _, p := range m.players {
		if p == nil || !p.Alive {
			continue
		}
		spec := catalog.MustLookup(p.Ship)
		advanceOne(p, spec, dt, m.Cfg.WorldRadius)
	}
}

// advanceOne applies one tick of kinematics to a single player.
func advanceOne(p *Player, spec catalog.Spec, dt, worldRadius float64) {
	in := p.LastAccepted

	p.Heading = geom.WrapAngle(p.Heading + in.Steer*spec.TurnRate*dt)

	thrust := geom.FromHeading(p.Heading).Scale(in.Throttle * spec.Acceleration * dt)
	p.Vel = p.Vel.Add(thrust)
	p.Vel = p.Vel.Scale(1 - spec.Drag*dt)
	p.Vel = p.Vel.ClampMagnitude(spec.MaxSpeed)

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	clampToWorld(p, worldRadius)
}

// clampToWorld enforces the hard-wall world boundary: a ship that would
// exit the world radius is pushed back to the boundary and the velocity
// component pointing further outward is zeroed (no bounce).
func clampToWorld(p *Player, worldRadius float64) {
	dist := p.Pos.Length()
	if dist <= worldRadius || dist == 0 {
		return
	}
	normal := p.Pos.Scale(1 / dist)
	p.Pos = normal.Scale(worldRadius)

	radialSpeed := p.Vel.X*normal.X + p.Vel.Y*normal.Y
	if radialSpeed > 0 {
		p.Vel = p.Vel.Sub(normal.Scale(radialSpeed))
	}
}
