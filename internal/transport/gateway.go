// Package transport is the WebSocket gateway binding client connections to
// the matchmaking queue and, once seated, to a match slot. Each
// connection gets origin checking, a buffered per-connection send path,
// and a read-pump/write-pump goroutine pair, fanning out across many
// concurrent Matchmaker-owned matches instead of one shared game state.
package transport

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shipcore/arena/internal/matchcore"
	"github.com/shipcore/arena/internal/matchmaking"
	"github.com/shipcore/arena/internal/protocol"
	"github.com/shipcore/arena/internal/session"
)

// isAllowedOrigin accepts same-origin and localhost development origins;
// everything else is logged and rejected. Non-browser clients send no
// Origin header at all and are let through.
func isAllowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		log.Printf("transport: invalid Origin header %q", origin)
		return false
	}
	if r.Host == u.Host {
		return true
	}
	if strings.HasPrefix(u.Host, "localhost:") || strings.HasPrefix(u.Host, "127.0.0.1:") ||
		u.Host == "localhost" || u.Host == "127.0.0.1" {
		return true
	}
	log.Printf("transport: rejected connection from origin %q", origin)
	return false
}

// Gateway is the process-wide WebSocket entry point. It owns one
// session.Bridge per live match, created on first join and torn down once
// the match's tick loop returns.
type Gateway struct {
	ctx      context.Context
	mm       *matchmaking.Matchmaker
	auth     AuthFunc
	upgrader websocket.Upgrader

	mu      sync.Mutex
	bridges map[matchcore.MatchId]*session.Bridge
}

// NewGateway creates a Gateway. ctx bounds every match's Run loop and every
// connection's write pump: cancelling it drains the process through the
// matches' context-cancellation abort path. Metrics are wired at the
// matchmaking/match level (internal/matchmaking.New, matchcore.Match.SetMetrics), not
// here: the gateway has no tick-level or match-level counters of its own.
func NewGateway(ctx context.Context, mm *matchmaking.Matchmaker, auth AuthFunc) *Gateway {
	if auth == nil {
		auth = DefaultAuth
	}
	return &Gateway{
		ctx:  ctx,
		mm:   mm,
		auth: auth,
		upgrader: websocket.Upgrader{
			CheckOrigin:       isAllowedOrigin,
			EnableCompression: true,
		},
		bridges: make(map[matchcore.MatchId]*session.Bridge),
	}
}

func (g *Gateway) bridgeFor(id matchcore.MatchId) *session.Bridge {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.bridges[id]
	if !ok {
		b = session.NewBridge()
		g.bridges[id] = b
	}
	return b
}

func (g *Gateway) dropBridge(id matchcore.MatchId) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.bridges, id)
}

// StartMatch drives one match's tick loop to completion and then notifies
// every connected session and the stats sink. It is the
// matchmaking.MatchSpawnedFunc handed to Matchmaker.Run, so it runs on its
// own goroutine per match, never on the matchmaker's or a connection's
// goroutine.
func (g *Gateway) StartMatch(m *matchcore.Match) {
	go func() {
		bridge := g.bridgeFor(m.ID)

		summary := m.Run(g.ctx, func(snap matchcore.Snapshot) {
			bridge.BroadcastSnapshot(snap)
		})

		g.mm.ReportSummary(context.Background(), summary)
		bridge.SendMatchEnd(summary)
		bridge.CloseAll()

		g.mm.Retire(m.ID)
		g.dropBridge(m.ID)
	}()
}

// HandleWS upgrades an HTTP request to a WebSocket connection and starts
// its read pump.
func (g *Gateway) HandleWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := g.auth(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("transport: upgrade error: %v", err)
		return
	}

	connCtx, cancel := context.WithCancel(g.ctx)
	c := &wsConn{
		gw: g, userID: userID, conn: conn,
		connCtx: connCtx, cancelConn: cancel,
	}

	welcome := protocol.WelcomeData{UserID: userID, ServerTime: time.Now().Unix()}
	if err := c.writeMessage(protocol.MsgWelcome, welcome); err != nil {
		conn.Close()
		cancel()
		return
	}

	go c.readLoop()
}

// Health writes a plain 200 OK liveness reply.
func (g *Gateway) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Matches is a debug endpoint reporting per-match phase and player counts
// across every match the matchmaker is currently tracking.
func (g *Gateway) Matches(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	live := g.mm.ListLive()
	type matchInfo struct {
		MatchID string `json:"match_id"`
		Phase   string `json:"phase"`
		Tick    uint64 `json:"tick"`
		Players int    `json:"players"`
		Alive   int    `json:"alive"`
	}
	out := struct {
		QueueDepth int         `json:"queue_depth"`
		Matches    []matchInfo `json:"matches"`
	}{QueueDepth: g.mm.QueueDepth()}

	for _, m := range live {
		out.Matches = append(out.Matches, matchInfo{
			MatchID: m.ID.String(), Phase: m.Phase().String(),
			Tick: m.Tick(), Players: m.JoinedCount(), Alive: m.AliveCount(),
		})
	}

	writeJSON(w, out)
}
