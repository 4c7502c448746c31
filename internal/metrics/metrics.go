package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Stats aggregates the process-wide counters. It is constructed once in
// main and injected into the components that report on it.
type Stats struct {
	CartAdds        Counter
	StockRejections Counter
	CacheHits       Counter
	CacheMisses     Counter
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) Snapshot() map[string]uint64 {
	if s == nil {
		return map[string]uint64{}
	}
	return map[string]uint64{
		"cart_adds":        s.CartAdds.Load(),
		"stock_rejections": s.StockRejections.Load(),
		"cache_hits":       s.CacheHits.Load(),
		"cache_misses":     s.CacheMisses.Load(),
	}
}
