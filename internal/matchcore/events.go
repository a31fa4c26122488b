package matchcore

// Event is the tagged-variant result of simulation work occurring during a
// tick. Concrete types implement Event; callers type-switch on the
// concrete type rather than inspecting a kind enum, which keeps new event
// types additive.
type Event interface {
	tick() uint64
}

type baseEvent struct {
	TickN uint64
}

func (b baseEvent) tick() uint64 { return b.TickN }

// HitEvent fires whenever a projectile damages a player. Zone damage does
// not emit HitEvent.
type HitEvent struct {
	baseEvent
	Owner  *int // slot of the projectile's owner
	Victim int
	Damage int
}

// KillEvent fires when a player's hull reaches zero. Killer is nil for
// environmental attribution (zone damage or disconnect-grace timeout).
type KillEvent struct {
	baseEvent
	Killer *int
	Victim int
}

// ZoneTickEvent reports the zone's state after advancing one tick.
type ZoneTickEvent struct {
	baseEvent
	PhaseIndex int
	Radius     float64
}

// MatchStartEvent fires exactly once when the match transitions to Running.
type MatchStartEvent struct {
	baseEvent
}

// MatchEndEvent fires exactly once when the match transitions to Ended.
type MatchEndEvent struct {
	baseEvent
	WinnerUserID *string
}

func newHit(t uint64, owner *int, victim, damage int) HitEvent {
	return HitEvent{baseEvent: baseEvent{t}, Owner: owner, Victim: victim, Damage: damage}
}

func newKill(t uint64, killer *int, victim int) KillEvent {
	return KillEvent{baseEvent: baseEvent{t}, Killer: killer, Victim: victim}
}
