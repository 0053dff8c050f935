package worker

import (
	"sync"
	"time"

	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

// tickerLoop runs a job once on start and then once per interval until stop.
type tickerLoop struct {
	name     string
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func newTickerLoop(name string, interval, fallback time.Duration) *tickerLoop {
	if interval <= 0 {
		interval = fallback
	}
	return &tickerLoop{
		name:     name,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (l *tickerLoop) start(run func()) {
	logger.Log.Info(l.name+" starting", "interval", l.interval.String())
	ticker := time.NewTicker(l.interval)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer ticker.Stop()
		run()
		for {
			select {
			case <-l.done:
				logger.Log.Info(l.name + " stopped")
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}

// Stop signals the loop and waits for a running pass to finish.
func (l *tickerLoop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		l.wg.Wait()
	})
}
