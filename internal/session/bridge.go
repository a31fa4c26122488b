package session

import (
	"sync"

	"github.com/shipcore/arena/internal/matchcore"
	"github.com/shipcore/arena/internal/protocol"
)

// Bridge associates a match's slots with the session Handles reachable
// for them, and fans match-level messages
// (snapshots, the terminal match_end) out to every registered handle. The
// match itself never touches a Bridge or a Handle directly; only
// internal/transport, which owns both a Bridge per match and the Handles
// it creates at join time, does.
type Bridge struct {
	mu      sync.RWMutex
	handles map[int]*Handle
}

// NewBridge creates an empty bridge for one match.
func NewBridge() *Bridge {
	return &Bridge{handles: make(map[int]*Handle)}
}

// Register associates a slot with a handle, replacing any prior handle
// for that slot (a reconnect would come through as a new handle).
func (b *Bridge) Register(slot int, h *Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handles[slot] = h
}

// Unregister removes a slot's handle, e.g. once a session disconnects.
func (b *Bridge) Unregister(slot int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handles, slot)
}

// Get returns the handle for a slot, if any is registered.
func (b *Bridge) Get(slot int) (*Handle, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h, ok := b.handles[slot]
	return h, ok
}

// BroadcastSnapshot fans a snapshot out to every registered handle. Safe
// to call from the match's own tick-loop goroutine: Handle.Send never
// blocks.
func (b *Bridge) BroadcastSnapshot(snap matchcore.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.handles {
		h.Send(Envelope{Kind: protocol.MsgSnapshot, Payload: snap})
	}
}

// SendMatchEnd delivers the terminal match_end message to every
// registered handle once the match is over.
func (b *Bridge) SendMatchEnd(summary matchcore.MatchSummary) {
	data := protocol.MatchEndData{WinnerUserID: summary.WinnerUserID}
	for _, p := range summary.Players {
		data.Stats = append(data.Stats, protocol.PlayerStatData{
			UserID: p.UserID, Ship: p.Ship, Kills: p.Kills, Deaths: p.Deaths,
			DamageDealt: p.DamageDealt, ShotsFired: p.ShotsFired, ShotsHit: p.ShotsHit,
			Placement: p.Placement,
		})
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.handles {
		h.Send(Envelope{Kind: protocol.MsgMatchEnd, Payload: data})
	}
}

// CloseAll closes every registered handle, e.g. once a match has finished
// delivering its match_end message and is being torn down.
func (b *Bridge) CloseAll() {
	b.mu.Lock()
	handles := make([]*Handle, 0, len(b.handles))
	for _, h := range b.handles {
		handles = append(handles, h)
	}
	b.handles = make(map[int]*Handle)
	b.mu.Unlock()

	for _, h := range handles {
		h.Close()
	}
}
