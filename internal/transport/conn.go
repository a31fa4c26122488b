package transport

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/shipcore/arena/internal/catalog"
	"github.com/shipcore/arena/internal/ingress"
	"github.com/shipcore/arena/internal/matchcore"
	"github.com/shipcore/arena/internal/matchmaking"
	"github.com/shipcore/arena/internal/protocol"
	"github.com/shipcore/arena/internal/session"

	"github.com/gorilla/websocket"
)

const (
	readDeadline  = 60 * time.Second
	writeDeadline = 10 * time.Second
)

// wsConn is one connected session, from upgrade until either side closes
// it. Before a successful join_match it has no session.Handle; afterwards
// reads still flow through readLoop but all application state (input
// submission, outbound fan-out) routes through the handle.
type wsConn struct {
	gw     *Gateway
	userID string
	conn   *websocket.Conn

	writeMu sync.Mutex

	connCtx    context.Context
	cancelConn context.CancelFunc

	mu         sync.Mutex
	joining    bool
	cancelJoin context.CancelFunc
	handle     *session.Handle
	bridge     *session.Bridge
	matchID    matchcore.MatchId
	slot       int
}

func (c *wsConn) writeMessage(kind string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return c.conn.WriteJSON(protocol.Envelope{Type: kind, Data: raw})
}

// readLoop is the connection's single reader. It owns the connection's
// lifetime: once it returns, the connection and any bound handle are
// torn down.
func (c *wsConn) readLoop() {
	defer func() {
		c.cancelConn()
		c.mu.Lock()
		h := c.handle
		c.mu.Unlock()
		if h != nil {
			h.Close()
		} else {
			// Connection lost while still queued (or never joined):
			// remove the player from the matchmaking queue.
			c.gw.mm.Leave(c.userID)
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		var env protocol.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("transport: read error for %s: %v", c.userID, err)
			}
			return
		}
		// Any inbound message, including the client's ping, keeps the
		// connection alive.
		c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		c.handleEnvelope(env)
	}
}

func (c *wsConn) handleEnvelope(env protocol.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("transport: panic handling %q from %s: %v", env.Type, c.userID, r)
		}
	}()

	switch env.Type {
	case protocol.MsgJoinMatch:
		c.handleJoin(env.Data)
	case protocol.MsgInputTick:
		c.handleInput(env.Data)
	case protocol.MsgLeaveMatch:
		c.handleLeave()
	case protocol.MsgPing:
		c.handlePing(env.Data)
	default:
		log.Printf("transport: unknown message type %q from %s", env.Type, c.userID)
	}
}

// handleJoin enqueues the player with the matchmaker and hands the wait for
// assignment off to its own goroutine (awaitJoin) instead of blocking here:
// handleJoin runs inside handleEnvelope's serial dispatch on readLoop's one
// goroutine, and a still-queued player can still send leave_match while
// waiting. handleLeave cancels the wait via cancelJoin if one is in flight.
func (c *wsConn) handleJoin(raw json.RawMessage) {
	c.mu.Lock()
	if c.handle != nil || c.joining {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	var data protocol.JoinMatchData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.writeMessage(protocol.MsgJoinRejected, protocol.JoinRejectedData{Reason: "malformed_request"})
		return
	}

	joinCtx, cancel := context.WithCancel(c.connCtx)

	c.mu.Lock()
	c.joining = true
	c.cancelJoin = cancel
	c.mu.Unlock()

	resultCh := c.gw.mm.Join(c.userID, catalog.Archetype(data.ShipType))
	go c.awaitJoin(joinCtx, resultCh)
}

// awaitJoin waits off of readLoop's goroutine for the matchmaker to either
// seat or reject a join request. If joinCtx is cancelled first (connection
// closed, or handleLeave cancelling a still-queued join), it makes one
// non-blocking check of resultCh for an assignment that landed in the same
// instant: the matchmaker may have already popped this player off the queue
// and sent a Result before the cancellation was observed, and that slot
// must be marked disconnected rather than left seated with no handle.
func (c *wsConn) awaitJoin(joinCtx context.Context, resultCh <-chan matchmaking.Result) {
	var res matchmaking.Result
	var cancelled bool

	select {
	case res = <-resultCh:
	case <-joinCtx.Done():
		cancelled = true
		select {
		case res = <-resultCh:
		default:
			c.mu.Lock()
			c.joining = false
			c.cancelJoin = nil
			c.mu.Unlock()
			return
		}
	}

	c.mu.Lock()
	c.joining = false
	c.cancelJoin = nil
	c.mu.Unlock()

	if res.Rejected != "" {
		if !cancelled {
			c.writeMessage(protocol.MsgJoinRejected, protocol.JoinRejectedData{Reason: string(res.Rejected)})
		}
		return
	}

	m, slot := res.Assignment.Match, res.Assignment.Slot
	if cancelled {
		m.MarkDisconnected(slot)
		return
	}

	bridge := c.gw.bridgeFor(m.ID)
	handle := session.NewHandle(c.userID, m.Inbox(), slot, func() {
		m.MarkDisconnected(slot)
		bridge.Unregister(slot)
	})
	bridge.Register(slot, handle)

	c.mu.Lock()
	c.handle = handle
	c.bridge = bridge
	c.matchID = m.ID
	c.slot = slot
	c.mu.Unlock()

	go c.pumpHandle(handle)

	roster := m.Roster()
	players := make([]protocol.MatchJoinedPlayer, 0, len(roster))
	for _, p := range roster {
		players = append(players, protocol.MatchJoinedPlayer{Slot: p.Slot, UserID: p.UserID, Ship: string(p.Ship)})
	}
	c.writeMessage(protocol.MsgMatchJoined, protocol.MatchJoinedData{
		MatchID: m.ID.String(), Seed: m.Seed, Players: players,
	})
}

func (c *wsConn) handleInput(raw json.RawMessage) {
	c.mu.Lock()
	h := c.handle
	c.mu.Unlock()
	if h == nil {
		return
	}

	var data protocol.InputTickData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	h.SubmitInput(ingress.Input{
		Seq: data.Seq, Throttle: data.Throttle, Steer: data.Steer,
		Shoot: data.Shoot, AimYaw: data.AimYaw,
	})
}

func (c *wsConn) handleLeave() {
	c.mu.Lock()
	h := c.handle
	cancelJoin := c.cancelJoin
	c.mu.Unlock()
	if h != nil {
		h.Close()
		return
	}
	if cancelJoin != nil {
		cancelJoin()
	}
	c.gw.mm.Leave(c.userID)
}

func (c *wsConn) handlePing(raw json.RawMessage) {
	var data protocol.PingData
	json.Unmarshal(raw, &data)
	c.writeMessage(protocol.MsgPong, protocol.PongData{T: data.T, ServerTime: time.Now().Unix()})
}

// pumpHandle is the connection's single writer once a session.Handle
// exists: it drains the handle's outbox for as long as the handle and
// the connection both stay open.
// Client-initiated ping/pong (handlePing) is this protocol's keepalive;
// there is no server-initiated ping frame to mirror here.
func (c *wsConn) pumpHandle(h *session.Handle) {
	for {
		env, ok := h.Next(c.connCtx)
		if !ok {
			return
		}
		if err := c.writeMessage(env.Kind, env.Payload); err != nil {
			h.Close()
			return
		}
	}
}
