package worker

import (
	"time"

	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

const defaultCleanInterval = time.Minute

// Cleaner drops expired entries and reports how many went; *viewcache.Cache fits it.
type Cleaner interface {
	CleanExpired() int
}

// CacheJanitor evicts stale and expired cached views so the cache does not
// grow with every distinct list filter ever requested.
type CacheJanitor struct {
	*tickerLoop
	cache Cleaner
}

func NewCacheJanitor(cache Cleaner, interval time.Duration) *CacheJanitor {
	return &CacheJanitor{
		tickerLoop: newTickerLoop("View cache janitor", interval, defaultCleanInterval),
		cache:      cache,
	}
}

// Start cleans immediately and then once per interval until Stop.
func (j *CacheJanitor) Start() {
	j.start(j.runOnce)
}

func (j *CacheJanitor) runOnce() {
	if n := j.cache.CleanExpired(); n > 0 {
		logger.Log.Debug("View cache cleaned", "evicted", n)
	}
}
