package pox

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/dropbox/godropbox/time2"
)

const authIDRandomSpan = 1000

// AuthIDGenerator 生成 auth-id：毫秒时间戳 * 1000 + 随机数，并保证进程内严格递增
type AuthIDGenerator struct {
	clock time2.Clock
	last  atomic.Uint64
}

func NewAuthIDGenerator(clock time2.Clock) *AuthIDGenerator {
	if clock == nil {
		clock = time2.DefaultClock
	}
	return &AuthIDGenerator{clock: clock}
}

// Next returns a fresh auth id. Safe for concurrent use.
func (g *AuthIDGenerator) Next() uint64 {
	candidate := uint64(g.clock.Now().UnixMilli())*authIDRandomSpan + rand.N[uint64](authIDRandomSpan)

	for {
		last := g.last.Load()
		next := candidate
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Clock returns the clock the generator reads.
func (g *AuthIDGenerator) Clock() time2.Clock {
	return g.clock
}
