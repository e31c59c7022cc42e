// Package metrics holds lock-free counters for background workers.
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

// Mirror counts the outcomes of product mirroring to the payment provider.
type Mirror struct {
	Enqueued  Counter
	Dropped   Counter
	Succeeded Counter
	Failed    Counter
	Retries   Counter
}

type MirrorSnapshot struct {
	Enqueued  uint64 `json:"enqueued"`
	Dropped   uint64 `json:"dropped"`
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
	Retries   uint64 `json:"retries"`
}

func (m *Mirror) Snapshot() MirrorSnapshot {
	return MirrorSnapshot{
		Enqueued:  m.Enqueued.Load(),
		Dropped:   m.Dropped.Load(),
		Succeeded: m.Succeeded.Load(),
		Failed:    m.Failed.Load(),
		Retries:   m.Retries.Load(),
	}
}
