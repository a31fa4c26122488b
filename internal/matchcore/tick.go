package matchcore

import "time"

// OutcomeKind tags the result of a scheduler wake: tick outcomes are
// tagged results, not exceptions: the simulation never unwinds.
type OutcomeKind int

const (
	Advanced OutcomeKind = iota
	Ended
	Fatal
)

// Outcome is returned by tickOnce for the scheduler to act on.
type Outcome struct {
	Kind         OutcomeKind
	WinnerUserID *string
	Reason       string
}

// drainInputs pulls the latest accepted input for every joined player and
// applies the idle-timeout and disconnect-grace rules. Must be called with
// m.mu held. First step of the per-tick ordering.
func (m *Match) drainInputs() {
	// Rounded up to whole ticks so a player is never killed before the
	// grace window has fully elapsed.
	graceTicks := uint64((m.Cfg.DisconnectGrace*time.Duration(m.Cfg.SimTPS) + time.Second - 1) / time.Second)
	idleTicks := uint64(m.Cfg.IdleTimeout.Seconds() * float64(m.Cfg.SimTPS))

	for _, p := range m.players {
		if p == nil {
			continue
		}
		if in, ok := m.inbox.Drain(p.Slot); ok {
			p.LastAccepted = in
			p.LastInputTime = time.Now()
			p.LastInputTick = m.tick
		}

		// A session that has gone silent past the idle window is treated
		// as disconnected; the grace rule below then takes over.
		if p.Connected && m.Cfg.IdleTimeout > 0 && m.tick-p.LastInputTick > idleTicks {
			p.Connected = false
			t := m.tick
			p.DisconnectedAtTick = &t
		}

		if p.Alive && !p.Connected && p.DisconnectedAtTick != nil {
			if m.tick-*p.DisconnectedAtTick >= graceTicks {
				m.killPlayer(nil, p)
			}
		}
	}
}

// checkEndCondition evaluates the Running -> Ended transition: the
// match ends when alive_count <= 1 or the max duration has elapsed (a zero
// MatchMaxDuration disables the time limit). Must be called with m.mu held.
func (m *Match) checkEndCondition(now time.Time) (ended bool) {
	if m.aliveCount <= 1 {
		return true
	}
	if m.Cfg.MatchMaxDuration > 0 && now.Sub(m.startTime) >= m.Cfg.MatchMaxDuration {
		return true
	}
	return false
}

// winner resolves the winner: the last alive player, or when several are
// still alive (time limit), the alive player with the highest hull;
// absent entirely on an exact tie or when no player is alive. Must be called with m.mu held.
func (m *Match) winner() *string {
	var alive []*Player
	for _, p := range m.players {
		if p != nil && p.Alive {
			alive = append(alive, p)
		}
	}
	if len(alive) == 1 {
		id := alive[0].UserID
		return &id
	}
	if len(alive) == 0 {
		return nil
	}

	// Time-limit tie among >1 survivors: highest hull wins; tied hull is
	// "None".
	best := alive[0]
	tie := false
	for _, p := range alive[1:] {
		if p.Hull > best.Hull {
			best = p
			tie = false
		} else if p.Hull == best.Hull {
			tie = true
		}
	}
	if tie {
		return nil
	}
	id := best.UserID
	return &id
}

// tickOnce executes exactly one simulation tick in a fixed order and
// returns the resulting Outcome. Must be called
// with m.mu held.
func (m *Match) tickOnce(now time.Time) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Kind: Fatal, Reason: fmtRecover(r)}
		}
	}()

	m.tick++
	if m.metrics != nil {
		m.metrics.TicksProcessed.Inc()
	}

	m.drainInputs()        // 1
	m.advanceZone()        // 2
	m.applyZoneDamage()    // 3
	m.advancePhysics()     // 4
	m.processWeaponFire()  // 5
	m.advanceProjectiles() // 6

	if err := m.checkInvariants(); err != nil {
		return Outcome{Kind: Fatal, Reason: err.Error()}
	}

	if m.checkEndCondition(now) { // 7
		w := m.winner()
		m.phase = PhaseEnded
		m.pending = append(m.pending, MatchEndEvent{baseEvent{m.tick}, w})
		return Outcome{Kind: Ended, WinnerUserID: w}
	}

	return Outcome{Kind: Advanced}
}

func fmtRecover(r interface{}) string {
	return "panic during tick: " + toString(r)
}

func toString(v interface{}) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown"
}
