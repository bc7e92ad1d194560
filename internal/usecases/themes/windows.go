package themes

import (
	"time"

	"github.com/admin/astro-insights/internal/domain"
)

const day = 24 * time.Hour

// PeakWindow пик транзита: сходящийся аспект набирает силу [now+1d, now+7d],
// расходящийся уже прошёл точку [now−1d, now+3d].
func PeakWindow(t domain.TransitAspect, now time.Time) domain.TimeWindow {
	if t.IsApplying {
		return domain.TimeWindow{Start: now.Add(day), End: now.Add(7 * day)}
	}
	return domain.TimeWindow{Start: now.Add(-day), End: now.Add(3 * day)}
}

// themeSpan начало и конец темы вокруг пика
func themeSpan(t domain.TransitAspect, now time.Time) (start, end time.Time) {
	peak := PeakWindow(t, now)
	if t.IsApplying {
		return now, peak.End.Add(7 * day)
	}
	return peak.Start.Add(-2 * day), peak.End.Add(2 * day)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
