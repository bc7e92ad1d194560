package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const dailySkyResetName = "daily-sky-reset"

// DailySkyResetter сбрасывает и прогревает общее небо на новый день
type DailySkyResetter interface {
	ResetDailySky(ctx context.Context, now time.Time) error
}

// DailySkyReset джоба в локальную полночь: инвалидация неба и прогрев на сегодня
type DailySkyReset struct {
	horoscope DailySkyResetter
	location  *time.Location
	now       func() time.Time
	log       *slog.Logger
}

func NewDailySkyReset(horoscope DailySkyResetter, location *time.Location, log *slog.Logger) *DailySkyReset {
	if location == nil {
		location = time.UTC
	}
	return &DailySkyReset{
		horoscope: horoscope,
		location:  location,
		now:       time.Now,
		log:       log,
	}
}

func (j *DailySkyReset) Name() string {
	return dailySkyResetName
}

// NextRun следующая полночь в зоне location строго после now
func (j *DailySkyReset) NextRun(now time.Time) time.Time {
	local := now.In(j.location)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, j.location)
}

func (j *DailySkyReset) Run(ctx context.Context) error {
	now := j.now().In(j.location)
	if err := j.horoscope.ResetDailySky(ctx, now); err != nil {
		return fmt.Errorf("reset daily sky for %s: %w", now.Format("2006-01-02"), err)
	}
	j.log.Info("daily sky reset completed", "date", now.Format("2006-01-02"))
	return nil
}
