package matchcore

import (
	"testing"
	"time"

	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/geom"
)

func TestZoneRadiusMonotonicNonIncreasing(t *testing.T) {
	cfg := testConfig()
	cfg.ZonePhases = []ZonePhase{
		{TargetRadius: 100, DelaySecs: 0, ShrinkSecs: 0},
		{TargetRadius: 50, DelaySecs: 0, ShrinkSecs: 1},
	}
	m := NewMatch(1, cfg)
	m.Join("alice", catalog.Scout)
	m.Join("bob", catalog.Scout)
	m.StartRunning(time.Now())

	prev := m.zone.CurrentRadius
	for i := 0; i < 90; i++ {
		doTick(m)
		m.mu.RLock()
		cur := m.zone.CurrentRadius
		m.mu.RUnlock()
		if cur > prev+1e-9 {
			t.Fatalf("tick %d: zone radius increased from %v to %v", i, prev, cur)
		}
		prev = cur
	}
}

func TestZonePinsAtFinalPhase(t *testing.T) {
	cfg := testConfig()
	cfg.ZonePhases = []ZonePhase{
		{TargetRadius: 100, DelaySecs: 0, ShrinkSecs: 0},
		{TargetRadius: 10, DelaySecs: 0, ShrinkSecs: 0},
	}
	m := NewMatch(1, cfg)
	m.Join("alice", catalog.Scout)
	m.Join("bob", catalog.Scout)
	m.StartRunning(time.Now())

	for i := 0; i < 10; i++ {
		doTick(m)
	}

	m.mu.RLock()
	r := m.zone.CurrentRadius
	idx := m.zone.PhaseIdx
	m.mu.RUnlock()

	if r != 10 {
		t.Fatalf("CurrentRadius = %v, want pinned at final target 10", r)
	}
	if idx != 1 {
		t.Fatalf("PhaseIdx = %d, want 1 (final phase)", idx)
	}
}

// A player outside the zone takes damage_per_sec*dt each tick until
// hull reaches 0, at which point an environmental Kill (no killer) fires.
func TestZoneDamageKillsOutOfZonePlayer(t *testing.T) {
	cfg := testConfig()
	cfg.ZoneDamagePerSec = 100000 // kill in one tick
	cfg.ZonePhases = []ZonePhase{{TargetRadius: 1500, DelaySecs: 0, ShrinkSecs: 0}}
	m := NewMatch(1, cfg)
	slotOut, _ := m.Join("alice", catalog.Scout)
	m.Join("bob", catalog.Scout)

	m.mu.Lock()
	m.players[slotOut].Pos = geom.Vec2{X: 1600, Y: 0} // outside radius 1500
	m.mu.Unlock()
	m.StartRunning(time.Now())

	doTick(m)

	m.mu.RLock()
	p := m.players[slotOut]
	alive := p.Alive
	var killEvent *KillEvent
	for _, e := range m.pending {
		if k, ok := e.(KillEvent); ok {
			killEvent = &k
		}
	}
	m.mu.RUnlock()

	if alive {
		t.Fatal("player outside zone with lethal damage_per_sec should have died")
	}
	if killEvent == nil {
		t.Fatal("expected a Kill event for the zone death")
	}
	if killEvent.Killer != nil {
		t.Fatalf("zone kill Killer = %v, want nil (environmental attribution)", *killEvent.Killer)
	}
}

func TestZoneDamageSparesInZonePlayer(t *testing.T) {
	cfg := testConfig()
	cfg.ZoneDamagePerSec = 100000
	cfg.ZonePhases = []ZonePhase{{TargetRadius: 1500, DelaySecs: 0, ShrinkSecs: 0}}
	m := NewMatch(1, cfg)
	slotIn, _ := m.Join("alice", catalog.Scout)
	m.Join("bob", catalog.Scout)

	m.mu.Lock()
	m.players[slotIn].Pos = geom.Vec2{X: 10, Y: 0} // well within radius
	m.mu.Unlock()
	m.StartRunning(time.Now())

	doTick(m)

	m.mu.RLock()
	alive := m.players[slotIn].Alive
	m.mu.RUnlock()
	if !alive {
		t.Fatal("in-zone player should not take zone damage")
	}
}
