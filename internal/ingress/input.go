// Package ingress is the per-player input front door: a bounded,
// newest-wins buffer with range validation and rate limiting. The tick
// loop is the sole consumer; producers (the session/transport layer) never
// block and never wait on it.
package ingress

import "math"

// Input is one client-submitted input intent.
type Input struct {
	Seq      uint32
	Throttle float64 // [-1,1]
	Steer    float64 // [-1,1]
	Shoot    bool
	AimYaw   float64 // radians
}

// valid reports whether the input's numeric fields are in range.
// seq monotonicity is checked by the caller (Buffer), which knows the
// player's last accepted/buffered seq.
func (in Input) valid() bool {
	if in.Throttle < -1 || in.Throttle > 1 {
		return false
	}
	if in.Steer < -1 || in.Steer > 1 {
		return false
	}
	if math.IsNaN(in.AimYaw) || math.IsInf(in.AimYaw, 0) {
		return false
	}
	return true
}
