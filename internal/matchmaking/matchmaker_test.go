package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/matchcore"
)

func testMatchmakingConfig() Config {
	cfg := DefaultConfig()
	cfg.MinPlayersToStart = 2
	cfg.JoinWindow = 20 * time.Millisecond
	cfg.MatchConfig.MaxPlayers = 2
	return cfg
}

// A solo join below min_players never forms a match; leave makes the
// queue empty again.
func TestSoloJoinNeverFormsMatch(t *testing.T) {
	mm := New(testMatchmakingConfig(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mm.Run(ctx, nil)

	resultCh := mm.Join("alice", catalog.Scout)

	deadline := time.After(100 * time.Millisecond)
	select {
	case res := <-resultCh:
		t.Fatalf("solo join below min_players_to_start produced a result: %+v, want none", res)
	case <-deadline:
	}

	mm.Leave("alice")
	time.Sleep(20 * time.Millisecond)
	if mm.QueueDepth() != 0 {
		t.Fatalf("QueueDepth() = %d after leave, want 0", mm.QueueDepth())
	}
}

func TestLeaveIsIdempotent(t *testing.T) {
	mm := New(testMatchmakingConfig(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mm.Run(ctx, nil)

	mm.Join("alice", catalog.Scout)
	time.Sleep(20 * time.Millisecond)

	mm.Leave("alice")
	mm.Leave("alice") // issuing twice must be a no-op, not an error
	time.Sleep(20 * time.Millisecond)

	if mm.QueueDepth() != 0 {
		t.Fatalf("QueueDepth() = %d, want 0 after double leave", mm.QueueDepth())
	}
}

func TestTwoPlayersFormAMatch(t *testing.T) {
	mm := New(testMatchmakingConfig(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan *matchcore.Match, 1)
	go mm.Run(ctx, func(m *matchcore.Match) { started <- m })

	resA := mm.Join("alice", catalog.Scout)
	resB := mm.Join("bob", catalog.Cruiser)

	var a, b matchcore.PlayerIdentity
	select {
	case r := <-resA:
		if r.Assignment == nil {
			t.Fatalf("alice join result = %+v, want an assignment", r)
		}
		a = matchcore.PlayerIdentity{Slot: r.Assignment.Slot}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for alice's assignment")
	}
	select {
	case r := <-resB:
		if r.Assignment == nil {
			t.Fatalf("bob join result = %+v, want an assignment", r)
		}
		b = matchcore.PlayerIdentity{Slot: r.Assignment.Slot}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for bob's assignment")
	}
	if a.Slot == b.Slot {
		t.Fatalf("alice and bob got the same slot %d", a.Slot)
	}

	select {
	case m := <-started:
		if m.Phase() != matchcore.PhaseRunning {
			t.Fatalf("spawned match phase = %v, want Running", m.Phase())
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the match to start")
	}
}

func TestJoinRejectsUnknownShip(t *testing.T) {
	mm := New(testMatchmakingConfig(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mm.Run(ctx, nil)

	res := <-mm.Join("alice", catalog.Archetype("NOT_A_SHIP"))
	if res.Rejected != RejectUnknownArchetype {
		t.Fatalf("Join with unknown archetype = %+v, want RejectUnknownArchetype", res)
	}
}
