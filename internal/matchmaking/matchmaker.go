package matchmaking

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/matchcore"
	"github.com/shipcore/arena/internal/metrics"
	"github.com/shipcore/arena/internal/stats"
)

type cmdKind int

const (
	cmdJoin cmdKind = iota
	cmdLeave
)

type command struct {
	kind   cmdKind
	join   joinCmd
	userID string
}

type joinCmd struct {
	userID string
	ship   catalog.Archetype
	result chan Result
}

// MatchSpawnedFunc is invoked once a match transitions from Lobby to Running,
// so the caller (typically cmd/arenad) can start its tick loop goroutine
// without the matchmaking package needing to know about transport/stats
// wiring details beyond the sink it's given directly.
type MatchSpawnedFunc func(m *matchcore.Match)

// Matchmaker owns the waiting-player queue and the registry of matches it
// has spawned. The queue is only mutated on its own goroutine (Run); Join
// and Leave send a command and return without waiting for it to be
// handled. The live-match registry is a map guarded by mu: Run adds to it,
// Retire removes from it on the caller's goroutine, and the debug
// accessors read it.
type Matchmaker struct {
	cfg     Config
	sink    stats.Sink
	metrics *metrics.Collectors

	cmds chan command

	queue    []*queuedPlayer
	current  *lobbyMatch
	queueLen atomic.Int64 // mirrors len(queue) for lock-free reads from QueueDepth

	mu   sync.RWMutex // guards `live`, read by debug/status endpoints only
	live map[matchcore.MatchId]*matchcore.Match
}

// New creates a Matchmaker. sink and mc may be nil (a nil sink means
// summaries are dropped; nil metrics means collectors are skipped).
func New(cfg Config, sink stats.Sink, mc *metrics.Collectors) *Matchmaker {
	return &Matchmaker{
		cfg:     cfg,
		sink:    sink,
		metrics: mc,
		cmds:    make(chan command, 256),
		live:    make(map[matchcore.MatchId]*matchcore.Match),
	}
}

// Join enqueues a join request and returns a channel that receives exactly
// one Result once the player is matched (or, rarely, rejected). Never
// blocks the caller beyond the channel send into the buffered cmds queue.
func (mm *Matchmaker) Join(userID string, ship catalog.Archetype) <-chan Result {
	result := make(chan Result, 1)
	if _, ok := catalog.Lookup(ship); !ok {
		result <- Result{Rejected: RejectUnknownArchetype}
		return result
	}
	mm.cmds <- command{kind: cmdJoin, join: joinCmd{userID: userID, ship: ship, result: result}}
	return result
}

// Leave removes userID from the waiting queue if present. Idempotent:
// issuing it twice, or issuing it for a userID already matched, is a
// no-op.
func (mm *Matchmaker) Leave(userID string) {
	mm.cmds <- command{kind: cmdLeave, userID: userID}
}

// MatchByID returns a live match for status/debug endpoints.
func (mm *Matchmaker) MatchByID(id matchcore.MatchId) (*matchcore.Match, bool) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	m, ok := mm.live[id]
	return m, ok
}

// ListLive returns a snapshot of all live matches, for the /api/matches
// debug endpoint.
func (mm *Matchmaker) ListLive() []*matchcore.Match {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	out := make([]*matchcore.Match, 0, len(mm.live))
	for _, m := range mm.live {
		out = append(out, m)
	}
	return out
}

// QueueDepth returns how many players are currently waiting, for metrics
// and debug endpoints. Safe to call from any goroutine.
func (mm *Matchmaker) QueueDepth() int {
	return int(mm.queueLen.Load())
}

// Run is the Matchmaker's single owner goroutine: it serializes every
// queue/registry mutation through the cmds channel and a periodic matcher
// tick, using a single select loop for its join/leave commands so the
// queue is only ever touched from this one goroutine.
func (mm *Matchmaker) Run(ctx context.Context, onMatchStart MatchSpawnedFunc) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-mm.cmds:
			mm.handleCommand(cmd)
			mm.runMatcher(time.Now(), onMatchStart)

		case now := <-ticker.C:
			mm.runMatcher(now, onMatchStart)
		}

		mm.queueLen.Store(int64(len(mm.queue)))
		if mm.metrics != nil {
			mm.metrics.QueuedPlayers.Set(float64(len(mm.queue)))
		}
	}
}

func (mm *Matchmaker) handleCommand(cmd command) {
	switch cmd.kind {
	case cmdJoin:
		mm.queue = append(mm.queue, &queuedPlayer{
			userID: cmd.join.userID, ship: cmd.join.ship,
			joinedAt: time.Now(), result: cmd.join.result,
		})
	case cmdLeave:
		for i, q := range mm.queue {
			if q.userID == cmd.userID {
				mm.queue = append(mm.queue[:i], mm.queue[i+1:]...)
				break
			}
		}
	}
}

// runMatcher forms matches from the queue and starts any Lobby match whose
// join window has elapsed or whose capacity is full.
func (mm *Matchmaker) runMatcher(now time.Time, onMatchStart MatchSpawnedFunc) {
	if mm.current != nil {
		mm.fillCurrent()
		if now.After(mm.current.deadline) || mm.current.match.JoinedCount() >= mm.current.match.Capacity() {
			mm.startCurrent(now, onMatchStart)
		}
		return
	}

	if len(mm.queue) < mm.cfg.MinPlayersToStart {
		return
	}

	seed := rand.Int63()
	m := matchcore.NewMatch(seed, mm.cfg.MatchConfig)
	m.SetMetrics(mm.metrics)
	mm.current = &lobbyMatch{match: m, deadline: now.Add(mm.cfg.JoinWindow)}
	m.SetJoinWindowDeadline(mm.current.deadline)

	mm.mu.Lock()
	mm.live[m.ID] = m
	mm.mu.Unlock()

	mm.fillCurrent()

	if mm.current.match.JoinedCount() >= mm.current.match.Capacity() {
		mm.startCurrent(now, onMatchStart)
	}
}

// fillCurrent pops queued players (FIFO) into the forming lobby until it
// is full or the queue is empty.
func (mm *Matchmaker) fillCurrent() {
	m := mm.current.match
	for len(mm.queue) > 0 && m.JoinedCount() < m.Capacity() {
		q := mm.queue[0]
		mm.queue = mm.queue[1:]

		slot, err := m.Join(q.userID, q.ship)
		if err != nil {
			// Capacity changed out from under us or a race; return the
			// player to the front of the queue for the next pass rather
			// than drop them.
			mm.queue = append([]*queuedPlayer{q}, mm.queue...)
			break
		}
		q.result <- Result{Assignment: &Assignment{Match: m, Slot: slot}}
	}
}

// startCurrent transitions the forming lobby to Running and hands it to
// onMatchStart to drive its tick loop.
func (mm *Matchmaker) startCurrent(now time.Time, onMatchStart MatchSpawnedFunc) {
	m := mm.current.match
	m.StartRunning(now)
	mm.current = nil

	if mm.metrics != nil {
		mm.metrics.MatchesStarted.Inc()
		mm.metrics.ActiveMatches.Inc()
	}

	if onMatchStart != nil {
		onMatchStart(m)
	}
}

// Retire removes a finished match from the live registry. Called by the
// goroutine that drove the match's Run loop once it returns.
func (mm *Matchmaker) Retire(id matchcore.MatchId) {
	mm.mu.Lock()
	delete(mm.live, id)
	mm.mu.Unlock()
	if mm.metrics != nil {
		mm.metrics.ActiveMatches.Dec()
	}
}

// ReportSummary hands a finished match's summary to the configured stats
// sink, applying the retry-once-then-drop policy.
func (mm *Matchmaker) ReportSummary(ctx context.Context, summary matchcore.MatchSummary) {
	stats.ReportWithRetry(ctx, mm.sink, summary, mm.metrics)
	outcome := "completed"
	if summary.Aborted {
		outcome = "aborted"
		log.Printf("matchmaking: match %s aborted: %s", summary.MatchID, summary.AbortReason)
	}
	if mm.metrics != nil {
		mm.metrics.MatchesEnded.WithLabelValues(outcome).Inc()
	}
}
