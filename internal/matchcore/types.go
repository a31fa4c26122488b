// Package matchcore owns and advances the authoritative state of a single
// match: ship kinematics, weapon fire and damage resolution, the shrinking
// safe zone, and match lifecycle. One *Match is one independent task; it
// never shares mutable state with another match.
package matchcore

import (
	"time"

	"github.com/google/uuid"

	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/geom"
	"github.com/shipcore/arena/internal/ingress"
)

// Input is an alias for the ingress-validated input intent, re-exported so
// match-internal code can talk about "Input" without importing ingress
// directly everywhere.
type Input = ingress.Input

// MatchId is an opaque 128-bit identifier, unique across the server's
// lifetime.
type MatchId uuid.UUID

// NewMatchId mints a fresh MatchId.
func NewMatchId() MatchId {
	return MatchId(uuid.New())
}

func (id MatchId) String() string {
	return uuid.UUID(id).String()
}

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Player is one seat in a match. Hull, position, and velocity are never
// read from the client; they are derived entirely from accepted inputs by
// Physics.
type Player struct {
	UserID string
	Slot   int
	Ship   catalog.Archetype

	Pos     geom.Vec2
	Vel     geom.Vec2
	Heading float64

	// Hull is tracked as float64 to avoid rounding away small
	// fractional-damage sources (out-of-zone damage accrues at
	// damage_per_sec * dt, sub-1 per tick at 30 ticks/s); 0 <= hull <= max_hull
	// and alive<=>hull>0 hold over the float value.
	Hull    float64
	MaxHull float64
	Alive   bool

	LastAccepted  Input
	LastInputTime time.Time
	LastInputTick uint64

	WeaponCooldown int // ticks remaining before next shot may fire

	Kills       int
	DamageDealt int
	ShotsFired  int
	ShotsHit    int

	Joined     bool
	JoinedTick uint64
	DeathTick  *uint64

	// Session liveness. A disconnected player keeps simulating on
	// their last accepted input until the DisconnectGrace window elapses, at
	// which point they are killed with environmental attribution.
	Connected          bool
	DisconnectedAtTick *uint64
}

// Projectile is a single fired shot advancing under its own kinematics.
// Owner is retained even if the owner later leaves or is removed.
type Projectile struct {
	ID        int
	OwnerSlot int
	Pos       geom.Vec2
	Vel       geom.Vec2
	SpawnTick uint64
	TTL       int
	Damage    int
}

// ZonePhase is one entry of the shrinking safe zone's fixed schedule.
// The first entry is the initial radius, applied at match start.
type ZonePhase struct {
	TargetRadius float64
	DelaySecs    float64
	ShrinkSecs   float64
}

// DefaultZonePhases is the default shrink schedule.
func DefaultZonePhases() []ZonePhase {
	return []ZonePhase{
		{TargetRadius: 1500, DelaySecs: 0, ShrinkSecs: 0},
		{TargetRadius: 1000, DelaySecs: 60, ShrinkSecs: 30},
		{TargetRadius: 600, DelaySecs: 60, ShrinkSecs: 30},
		{TargetRadius: 300, DelaySecs: 60, ShrinkSecs: 30},
		{TargetRadius: 50, DelaySecs: 60, ShrinkSecs: 30},
	}
}

// Zone is the shrinking safe circle.
type Zone struct {
	Phases   []ZonePhase
	Center   geom.Vec2
	PhaseIdx int

	previousTarget float64
	phaseStartTick uint64
	phaseEndTick   uint64 // delay+shrink boundary, in ticks

	CurrentRadius float64
	DamagePerSec  float64
}
