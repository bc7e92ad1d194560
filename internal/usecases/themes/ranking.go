package themes

import (
	"math"
	"sort"

	"github.com/admin/astro-insights/internal/domain"
)

// RankTransits сортирует транзиты по значимости: сначала внешние планеты, затем по возрастанию орба.
// Исходный слайс не меняется; при равенстве сохраняется порядок ленты.
func RankTransits(transits []domain.TransitAspect) []domain.TransitAspect {
	ranked := make([]domain.TransitAspect, len(transits))
	copy(ranked, transits)

	sort.SliceStable(ranked, func(i, j int) bool {
		oi, oj := ranked[i].TransitingPlanet.IsOuter(), ranked[j].TransitingPlanet.IsOuter()
		if oi != oj {
			return oi
		}
		return ranked[i].Orb < ranked[j].Orb
	})
	return ranked
}

// TransitIntensity интенсивность одного транзита по орбу (1–5)
func TransitIntensity(orb float64) int {
	orb = math.Abs(orb)
	switch {
	case orb < 1:
		return 5
	case orb < 2:
		return 4
	case orb < 4:
		return 3
	case orb < 6:
		return 2
	default:
		return 1
	}
}

const (
	outerPlanetWeight = 2.0
	maxEffectiveOrb   = 5.0
	challengingBonus  = 0.5
)

// transitScore вклад одного транзита в интенсивность дня
func transitScore(t domain.TransitAspect) float64 {
	weight := 1.0
	if t.TransitingPlanet.IsOuter() {
		weight = outerPlanetWeight
	}
	orbFactor := math.Max(0, maxEffectiveOrb-math.Abs(t.Orb)) / maxEffectiveOrb

	score := weight * orbFactor
	if t.Nature == domain.Challenging {
		score += challengingBonus
	}
	return score
}

// AggregateIntensity интенсивность дня по всем транзитам. Пустой список → 1.
func AggregateIntensity(transits []domain.TransitAspect) int {
	if len(transits) == 0 {
		return 1
	}

	var total float64
	for _, t := range transits {
		total += transitScore(t)
	}
	avg := total / float64(len(transits))

	switch {
	case avg >= 2:
		return 5
	case avg >= 1.5:
		return 4
	case avg >= 1:
		return 3
	case avg >= 0.5:
		return 2
	default:
		return 1
	}
}
