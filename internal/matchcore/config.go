package matchcore

import "time"

// Config bundles every tunable that affects simulation behavior inside
// a single match. internal/config builds one of these (plus the
// matchmaking-only parameters) from flags/defaults.
type Config struct {
	SimTPS  int // simulation_tps, default 30
	SnapTPS int // snapshot_tps, default 20

	MaxPlayers int // max_players_per_match, default 32

	MatchMaxDuration time.Duration // match_max_duration_secs, default 1200s
	DisconnectGrace  time.Duration // disconnect_grace_secs, default 10s
	IdleTimeout      time.Duration // no accepted inputs for longer than this while Running is treated as disconnect, default 30s
	MaxInputRateHz   float64       // max_input_rate_hz, default 60
	InputBufferCap   int           // per-player buffer capacity, default 8

	WorldRadius float64 // world_radius, default 1500
	ZonePhases  []ZonePhase

	AimMaxSlewRadPerSec float64 // aim_max_slew_rad_per_sec

	ZoneDamagePerSec float64 // out-of-zone damage per second, part of the zone tuning
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		SimTPS:              30,
		SnapTPS:             20,
		MaxPlayers:          32,
		MatchMaxDuration:    1200 * time.Second,
		DisconnectGrace:     10 * time.Second,
		IdleTimeout:         30 * time.Second,
		MaxInputRateHz:      60,
		InputBufferCap:      8,
		WorldRadius:         1500,
		ZonePhases:          DefaultZonePhases(),
		AimMaxSlewRadPerSec: 3.0,
		ZoneDamagePerSec:    20,
	}
}

// dt returns the fixed simulation timestep in seconds.
func (c Config) dt() float64 {
	return 1.0 / float64(c.SimTPS)
}

// snapshotEveryNTicks returns how many sim ticks elapse between snapshot
// flushes. Rounds up so the flush cadence
// never exceeds snapshot_tps.
func (c Config) snapshotEveryNTicks() int {
	if c.SnapTPS <= 0 {
		return c.SimTPS
	}
	n := (c.SimTPS + c.SnapTPS - 1) / c.SnapTPS
	if n < 1 {
		n = 1
	}
	return n
}

// maxCatchUpTicks bounds how many ticks a single scheduler wake may run
// when the loop has fallen behind.
const maxCatchUpTicks = 5
