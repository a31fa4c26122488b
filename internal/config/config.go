// Package config builds the process's runtime configuration from plain
// command line flags rather than a config file or env-binding layer.
package config

import (
	"flag"
	"fmt"

	"github.com/shipcore/arena/internal/matchcore"
	"github.com/shipcore/arena/internal/matchmaking"
)

// Config is the top-level process configuration: the HTTP listen address
// plus the matchmaking configuration (which itself embeds the per-match
// simulation Config).
type Config struct {
	Port string

	Matchmaking matchmaking.Config
}

// Parse builds a Config from command line flags, layered over the built-in
// defaults. It calls flag.Parse(), so it must be called at most once, from
// main.
func Parse() Config {
	defaults := matchmaking.DefaultConfig()

	port := flag.String("port", "8080", "HTTP server port")

	minPlayers := flag.Int("min-players", defaults.MinPlayersToStart, "minimum players to start a match")
	joinWindow := flag.Duration("join-window", defaults.JoinWindow, "how long a forming match stays open below capacity")

	simTPS := flag.Int("sim-tps", defaults.MatchConfig.SimTPS, "simulation ticks per second")
	snapTPS := flag.Int("snap-tps", defaults.MatchConfig.SnapTPS, "snapshot flushes per second")
	maxPlayers := flag.Int("max-players", defaults.MatchConfig.MaxPlayers, "maximum players per match")
	matchMaxDuration := flag.Duration("match-max-duration", defaults.MatchConfig.MatchMaxDuration, "maximum match duration before a forced end")
	disconnectGrace := flag.Duration("disconnect-grace", defaults.MatchConfig.DisconnectGrace, "grace period before a disconnected player's ship is killed")
	idleTimeout := flag.Duration("idle-timeout", defaults.MatchConfig.IdleTimeout, "input silence treated as disconnect while a match is running")
	maxInputRateHz := flag.Float64("max-input-rate-hz", defaults.MatchConfig.MaxInputRateHz, "maximum accepted input_tick messages per second, per player")
	worldRadius := flag.Float64("world-radius", defaults.MatchConfig.WorldRadius, "radius of the playable world")

	flag.Parse()

	cfg := defaults
	cfg.MinPlayersToStart = *minPlayers
	cfg.JoinWindow = *joinWindow
	cfg.MatchConfig.SimTPS = *simTPS
	cfg.MatchConfig.SnapTPS = *snapTPS
	cfg.MatchConfig.MaxPlayers = *maxPlayers
	cfg.MatchConfig.MatchMaxDuration = *matchMaxDuration
	cfg.MatchConfig.DisconnectGrace = *disconnectGrace
	cfg.MatchConfig.IdleTimeout = *idleTimeout
	cfg.MatchConfig.MaxInputRateHz = *maxInputRateHz
	cfg.MatchConfig.WorldRadius = *worldRadius

	return Config{Port: *port, Matchmaking: cfg}
}

// matchConfig is a tiny accessor used by Summary for the startup log
// message; kept here rather than in main so the config package stays the
// single source of truth for what got parsed.
func (c Config) matchConfig() matchcore.Config {
	return c.Matchmaking.MatchConfig
}

// Summary renders a one-line startup log message naming the tunables an
// operator would want to see at a glance.
func (c Config) Summary() string {
	mc := c.matchConfig()
	return fmt.Sprintf("port=%s sim_tps=%d snap_tps=%d max_players=%d min_players_to_start=%d join_window=%s match_max_duration=%s",
		c.Port, mc.SimTPS, mc.SnapTPS, mc.MaxPlayers, c.Matchmaking.MinPlayersToStart, c.Matchmaking.JoinWindow, mc.MatchMaxDuration)
}
