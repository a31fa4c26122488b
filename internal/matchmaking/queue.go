// Package matchmaking implements the FIFO matchmaking queue and matcher:
// it forms matches once enough players are waiting, hands off
// sessions, and starts each match's tick loop. The queue is process-wide
// but owned by a single goroutine (Matchmaker.Run); every other caller
// talks to it through a command channel, never by touching the queue
// directly. The registry of live matches is a mutex-guarded map that is
// also read and updated from other goroutines (Retire, ListLive,
// MatchByID).
package matchmaking

import (
	"time"

	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/matchcore"
)

// Assignment is handed back to a caller once their join request is seated
// in a match.
type Assignment struct {
	Match *matchcore.Match
	Slot  int
}

// RejectReason is the wire value carried in a join_rejected reply.
type RejectReason string

const (
	RejectFull             RejectReason = "full"
	RejectUnknownArchetype RejectReason = "unknown_ship_type"
)

// Result is delivered on a player's channel once the matcher has seated
// them, or at once from Join for an unknown ship type (the only rejection
// the matchmaker sends; RejectFull is never sent by it). A player whose
// Join into the forming match fails goes back to the front of the queue
// rather than being rejected; otherwise a player waits until matched or
// explicitly leaves.
type Result struct {
	Assignment *Assignment
	Rejected   RejectReason
}

// queuedPlayer is one FIFO entry. It is only ever touched by the
// Matchmaker's own goroutine.
type queuedPlayer struct {
	userID   string
	ship     catalog.Archetype
	joinedAt time.Time
	result   chan Result
}

// lobbyMatch tracks a match currently in Lobby, still open to new joiners
// until capacity or the join window closes.
type lobbyMatch struct {
	match    *matchcore.Match
	deadline time.Time
}
