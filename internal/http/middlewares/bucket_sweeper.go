package middleware

import (
	"sync"
	"time"

	"task-dashboard.com/task-dashboard/internal/logger"
)

// BucketSweeper periodically evicts expired buckets from a MemoryCounter.
type BucketSweeper struct {
	counter  *MemoryCounter
	window   time.Duration
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

func NewBucketSweeper(counter *MemoryCounter, window, interval time.Duration) *BucketSweeper {
	s := &BucketSweeper{
		counter:  counter,
		window:   window,
		interval: interval,
		stop:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.loop()

	return s
}

func (s *BucketSweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.counter.Sweep(s.window); removed > 0 {
				logger.Debug("rate limiter buckets swept", "removed", removed)
			}
		case <-s.stop:
			return
		}
	}
}

func (s *BucketSweeper) Shutdown() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}
