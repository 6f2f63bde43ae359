package workexec

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Random computes base values in-process. It is safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random seeded from the clock.
func NewRandom() *Random {
	now := uint64(time.Now().UnixNano())
	return NewSeededRandom(now, now>>32)
}

// NewSeededRandom returns a Random with a fixed seed, for reproducible runs.
func NewSeededRandom(seed1, seed2 uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Execute returns a value in [0, MaxValue).
func (r *Random) Execute(ctx context.Context, _ uint64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(MaxValue), nil
}
