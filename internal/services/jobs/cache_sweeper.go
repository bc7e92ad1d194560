package jobs

import (
	"context"
	"log/slog"
	"time"
)

const cacheSweeperName = "cache-sweeper"

// Sweeper удаляет просроченные записи кэша
type Sweeper interface {
	Sweep() int
}

// CacheSweeper джоба очистки кэша, по умолчанию в начале каждого часа
type CacheSweeper struct {
	cache    Sweeper
	interval time.Duration
	log      *slog.Logger
}

func NewCacheSweeper(cache Sweeper, interval time.Duration, log *slog.Logger) *CacheSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CacheSweeper{
		cache:    cache,
		interval: interval,
		log:      log,
	}
}

func (j *CacheSweeper) Name() string {
	return cacheSweeperName
}

// NextRun ближайшая граница интервала строго после now
func (j *CacheSweeper) NextRun(now time.Time) time.Time {
	return now.Truncate(j.interval).Add(j.interval)
}

func (j *CacheSweeper) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	removed := j.cache.Sweep()
	j.log.Info("cache sweep completed", "removed", removed)
	return nil
}
