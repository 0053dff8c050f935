// Package worker holds ticker-driven background jobs.
package worker

import (
	"context"
	"time"

	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

const defaultSweepInterval = 5 * time.Minute

// Sweeper is the operation a ticker job runs; usecase.InterviewUsecase.SweepExpired fits it.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// InterviewSweeper periodically expires interviews whose access window has passed.
type InterviewSweeper struct {
	*tickerLoop
	sweeper Sweeper
	timeout time.Duration
}

func NewInterviewSweeper(sweeper Sweeper, interval time.Duration) *InterviewSweeper {
	loop := newTickerLoop("Interview sweeper", interval, defaultSweepInterval)
	return &InterviewSweeper{
		tickerLoop: loop,
		sweeper:    sweeper,
		timeout:    loop.interval,
	}
}

// Start runs one sweep immediately and then one per interval until Stop.
func (s *InterviewSweeper) Start() {
	s.start(s.runOnce)
}

func (s *InterviewSweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		logger.Log.Error("Interview sweep failed", "error", err, "swept", n)
		return
	}
	if n > 0 {
		logger.Log.Debug("Interview sweep finished", "swept", n)
	}
}
