package matchmaking

import (
	"time"

	"github.com/shipcore/arena/internal/matchcore"
)

// Config bundles the matchmaking-only tunables plus the per-match
// simulation Config every spawned match is given.
type Config struct {
	MinPlayersToStart int           // min_players_to_start, default 2
	JoinWindow        time.Duration // join_window_secs, default 15s
	MatchConfig       matchcore.Config
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		MinPlayersToStart: 2,
		JoinWindow:        15 * time.Second,
		MatchConfig:       matchcore.DefaultConfig(),
	}
}
