package matchcore

import (
	"sync"
	"time"

	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/geom"
	"github.com/shipcore/arena/internal/ingress"
	"github.com/shipcore/arena/internal/metrics"
)

// Match owns exclusively its Players, Projectiles, Zone, and pending event
// log. Session tasks never reach in and mutate it directly;
// they address it through Inbox (non-blocking writes) and the per-slot
// outbox handles registered with it.
type Match struct {
	mu sync.RWMutex

	ID   MatchId
	Seed int64
	Cfg  Config

	phase     Phase
	tick      uint64
	startTime time.Time

	players     []*Player // index by slot, len == Cfg.MaxPlayers
	aliveCount  int
	joinedCount int

	zone        Zone
	projectiles []*Projectile
	nextProjID  int

	pending []Event

	inbox *ingress.Inbox
	rng   *geom.RNG

	joinWindowDeadline time.Time

	ticksSinceFlush int

	metrics *metrics.Collectors
}

// NewMatch creates a Lobby-phase match with the given seed and
// configuration. Players are added afterwards via Join, in popping order,
// which is what makes slot assignment deterministic.
func NewMatch(seed int64, cfg Config) *Match {
	m := &Match{
		ID:      NewMatchId(),
		Seed:    seed,
		Cfg:     cfg,
		phase:   PhaseLobby,
		players: make([]*Player, cfg.MaxPlayers),
		inbox:   ingress.NewInbox(cfg.InputBufferCap, cfg.MaxInputRateHz),
		rng:     geom.NewRNG(seed),
	}
	m.zone = newZone(cfg, m.rng)
	return m
}

// SetMetrics attaches the process-wide Prometheus collectors so the tick
// loop and combat resolution can increment arena_ticks_processed_total,
// arena_kills_total, and arena_tick_scheduler_lag_seconds. Optional: a
// match with no metrics attached (e.g. the matchcore tests, which
// construct matches directly via NewMatch) simply skips these updates.
func (m *Match) SetMetrics(mc *metrics.Collectors) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = mc
}

// Phase returns the current lifecycle phase.
func (m *Match) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// Tick returns the current tick counter.
func (m *Match) Tick() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tick
}

// AliveCount returns the number of joined players with hull > 0.
func (m *Match) AliveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.aliveCount
}

// Join adds a player to the match while it is in Lobby. Slot is assigned
// as the next free index in ascending order, matching the deterministic
// "popping order" slot assignment from matchmaking.
func (m *Match) Join(userID string, ship catalog.Archetype) (slot int, err error) {
	spec, ok := catalog.Lookup(ship)
	if !ok {
		return 0, ErrUnknownArchetype
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseLobby {
		return 0, ErrMatchNotJoinable
	}

	slot = -1
	for i, p := range m.players {
		if p == nil {
			slot = i
			break
		}
	}
	if slot == -1 {
		return 0, ErrCapacityExhausted
	}

	spawn := m.spawnPointLocked(slot)
	m.players[slot] = &Player{
		UserID:    userID,
		Slot:      slot,
		Ship:      ship,
		Pos:       spawn,
		Heading:   0,
		Hull:      float64(spec.MaxHull),
		MaxHull:   float64(spec.MaxHull),
		Alive:     true,
		Joined:    true,
		Connected: true,
	}
	m.joinedCount++
	m.aliveCount++
	m.inbox.AddPlayer(slot)
	return slot, nil
}

// spawnPointLocked deterministically places a new joiner on a ring inside
// the initial zone radius, evenly spaced by slot index. Must be called
// with m.mu held.
func (m *Match) spawnPointLocked(slot int) geom.Vec2 {
	n := float64(m.Cfg.MaxPlayers)
	angle := (float64(slot) / n) * 2 * 3.141592653589793
	radius := m.zone.CurrentRadius * 0.6
	return m.zone.Center.Add(geom.FromHeading(angle).Scale(radius))
}

// Capacity returns the match's configured max player count.
func (m *Match) Capacity() int {
	return m.Cfg.MaxPlayers
}

// JoinedCount returns how many slots are currently occupied.
func (m *Match) JoinedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.joinedCount
}

// SetJoinWindowDeadline records when the Lobby's join window closes; used
// by the matchmaker, not the tick loop, since Lobby does not tick.
func (m *Match) SetJoinWindowDeadline(d time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinWindowDeadline = d
}

// JoinWindowDeadline returns the recorded join-window deadline.
func (m *Match) JoinWindowDeadline() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.joinWindowDeadline
}

// Inbox exposes the match's input ingress so the session layer can submit
// inputs without ever reaching into match state directly.
func (m *Match) Inbox() *ingress.Inbox {
	return m.inbox
}

// StartRunning transitions Lobby -> Running and records the start time and
// a MatchStartEvent. Called by the matchmaker once capacity or the join
// window closes.
func (m *Match) StartRunning(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseLobby {
		return
	}
	m.phase = PhaseRunning
	m.startTime = now
	m.pending = append(m.pending, MatchStartEvent{baseEvent{m.tick}})
}

// MarkDisconnected flags a slot as disconnected. The player
// continues to be simulated on their last accepted input until the grace
// window elapses.
func (m *Match) MarkDisconnected(slot int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slot < 0 || slot >= len(m.players) || m.players[slot] == nil {
		return
	}
	p := m.players[slot]
	if !p.Connected {
		return
	}
	p.Connected = false
	t := m.tick
	p.DisconnectedAtTick = &t
}

// Snapshot of identifying info for a player, used by matchmaking /
// transport to build the match_joined reply without exposing *Player.
type PlayerIdentity struct {
	Slot   int
	UserID string
	Ship   catalog.Archetype
}

// Roster returns the identity of every joined player, ordered by slot.
func (m *Match) Roster() []PlayerIdentity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PlayerIdentity, 0, m.joinedCount)
	for _, p := range m.players {
		if p != nil {
			out = append(out, PlayerIdentity{Slot: p.Slot, UserID: p.UserID, Ship: p.Ship})
		}
	}
	return out
}
