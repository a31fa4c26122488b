package matchcore

import (
	"fmt"
	"math"
)

// checkInvariants scans for fatal state corruption (negative
// hull, NaN position) and, if found, returns a *FatalError carrying a
// state fingerprint for the abort log. Must be called with m.mu held.
func (m *Match) checkInvariants() error {
	for _, p := range m.players {
		if p == nil {
			continue
		}
		if p.Hull < 0 {
			return &FatalError{
				Reason:      fmt.Sprintf("player %d hull went negative (%.2f)", p.Slot, p.Hull),
				Fingerprint: m.fingerprint(),
			}
		}
		if math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y) || math.IsInf(p.Pos.X, 0) || math.IsInf(p.Pos.Y, 0) {
			return &FatalError{
				Reason:      fmt.Sprintf("player %d position is non-finite (%v)", p.Slot, p.Pos),
				Fingerprint: m.fingerprint(),
			}
		}
	}
	return nil
}

// fingerprint produces a compact, deterministic summary of match state for
// fatal-abort logging.
func (m *Match) fingerprint() string {
	s := fmt.Sprintf("match=%s tick=%d phase=%s alive=%d players=[", m.ID, m.tick, m.phase, m.aliveCount)
	for _, p := range m.players {
		if p == nil {
			continue
		}
		s += fmt.Sprintf("{slot=%d hull=%.1f pos=(%.1f,%.1f) alive=%t} ", p.Slot, p.Hull, p.Pos.X, p.Pos.Y, p.Alive)
	}
	return s + "]"
}
