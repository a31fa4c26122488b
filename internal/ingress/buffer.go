package ingress

import (
	"sync"

	"golang.org/x/time/rate"
)

// Buffer is one player's bounded, newest-wins input queue. Submit never
// blocks and never returns an error the producer must act on: invalid,
// stale, or rate-limited inputs are simply dropped; validation and
// rate-limit failures never disconnect and never mutate state.
type Buffer struct {
	mu      sync.Mutex
	cap     int
	queued  []Input // oldest first; evicted from the front when full
	lastSeq uint32  // highest seq ever accepted into the buffer or drained
	haveSeq bool
	limiter *rate.Limiter
}

// NewBuffer creates a buffer with the given capacity and a token-bucket
// rate limiter allowing up to maxRateHz accepted inputs per second, with a
// burst of 2x the rate to tolerate client-side batching.
func NewBuffer(capacity int, maxRateHz float64) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	burst := int(maxRateHz * 2)
	if burst < 1 {
		burst = 1
	}
	return &Buffer{
		cap:     capacity,
		queued:  make([]Input, 0, capacity),
		limiter: rate.NewLimiter(rate.Limit(maxRateHz), burst),
	}
}

// Submit validates and enqueues in. It reports whether the input was
// accepted into the buffer; false always means "silently dropped," never
// an error condition the caller must handle.
func (b *Buffer) Submit(in Input) bool {
	if !in.valid() {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.haveSeq && in.Seq <= b.lastSeq {
		return false // stale or replayed
	}

	if !b.limiter.Allow() {
		return false // RateLimitExceeded, dropped silently
	}

	if len(b.queued) >= b.cap {
		// Buffer full: drop the oldest to make room.
		copy(b.queued, b.queued[1:])
		b.queued = b.queued[:len(b.queued)-1]
	}
	b.queued = append(b.queued, in)
	b.lastSeq = in.Seq
	b.haveSeq = true
	return true
}

// Drain returns the newest buffered input with seq greater than the last
// drained seq, if any, and clears the buffer. Earlier buffered inputs are
// coalesced away: the tick loop only ever acts on the latest intent.
func (b *Buffer) Drain() (Input, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queued) == 0 {
		return Input{}, false
	}
	latest := b.queued[len(b.queued)-1]
	b.queued = b.queued[:0]
	return latest, true
}
