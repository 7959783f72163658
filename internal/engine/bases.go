package engine

import (
	"sort"

	"github.com/brainrot-tycoon/server/internal/domain/catalog"
)

// BasePool hands out base slots. The lowest free base number is always
// assigned next, so base 1 (the admin base) belongs to the first joiner.
type BasePool struct {
	free []int
}

// NewBasePool returns a pool with every base slot available.
func NewBasePool() *BasePool {
	p := &BasePool{free: make([]int, 0, catalog.NumBases)}
	for n := 1; n <= catalog.NumBases; n++ {
		p.free = append(p.free, n)
	}
	return p
}

// Acquire takes the lowest free base number. ok is false when the pool is
// exhausted.
func (p *BasePool) Acquire() (int, bool) {
	if len(p.free) == 0 {
		return 0, false
	}
	n := p.free[0]
	p.free = p.free[1:]
	return n, true
}

// Release returns a base number to the pool. Double release is a no-op.
func (p *BasePool) Release(n int) {
	for _, f := range p.free {
		if f == n {
			return
		}
	}
	p.free = append(p.free, n)
	sort.Ints(p.free)
}

// Available reports how many base slots remain.
func (p *BasePool) Available() int { return len(p.free) }
