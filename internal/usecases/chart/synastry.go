package chart

import (
	"math"

	"github.com/admin/astro-insights/internal/domain"
)

// synastryPlanets пары, которые сравниваются между картами
var synastryPlanets = []domain.Planet{domain.Sun, domain.Moon, domain.Venus, domain.Mars, domain.Mercury}

// Луна и Венера важнее для эмоциональной и романтической совместимости.
// Сумма весов 1 + 1.5 + 1.2 + 1 + 1 = 5.7.
var synastryWeights = map[domain.Planet]float64{
	domain.Sun:     1,
	domain.Moon:    1.5,
	domain.Venus:   1.2,
	domain.Mars:    1,
	domain.Mercury: 1,
}

var categoryScores = map[domain.CompatibilityCategory]int{
	domain.CompatibilityExcellent:   90,
	domain.CompatibilityGood:        75,
	domain.CompatibilityModerate:    60,
	domain.CompatibilityChallenging: 45,
}

// CategoryForDistance категория по расстоянию между знаками
func CategoryForDistance(d int) domain.CompatibilityCategory {
	switch d {
	case 0, 2, 10:
		return domain.CompatibilityGood
	case 4, 8:
		return domain.CompatibilityExcellent
	case 3, 9, 6:
		return domain.CompatibilityChallenging
	default:
		return domain.CompatibilityModerate
	}
}

// CalculateCompatibility взвешенная оценка синастрии двух карт.
// Все пять планет обязательны в обеих картах. Оценка симметрична.
func CalculateCompatibility(a, b domain.NatalChart) (domain.Compatibility, error) {
	pa, err := a.RequirePlacements("compatibility (first chart)", synastryPlanets...)
	if err != nil {
		return domain.Compatibility{}, err
	}
	pb, err := b.RequirePlacements("compatibility (second chart)", synastryPlanets...)
	if err != nil {
		return domain.Compatibility{}, err
	}

	pairs := make([]domain.PairCompatibility, len(synastryPlanets))
	var total, weights float64
	for i, planet := range synastryPlanets {
		d := domain.SignDistance(pa[i].Sign, pb[i].Sign)
		category := CategoryForDistance(d)
		score := categoryScores[category]
		weight := synastryWeights[planet]

		pairs[i] = domain.PairCompatibility{
			Planet:       planet,
			SignDistance: d,
			Category:     category,
			Score:        score,
			Weight:       weight,
		}
		total += float64(score) * weight
		weights += weight
	}

	return domain.Compatibility{
		Score: int(math.Round(total / weights)),
		Pairs: pairs,
	}, nil
}
