package chart

import (
	"math"

	"github.com/admin/astro-insights/internal/domain"
)

// IsDayBirth Солнце над горизонтом, т.е. в домах 7–12
func IsDayBirth(sun domain.NatalPlacement) bool {
	return sun.House >= 7 && sun.House <= 12
}

// CalculatePartOfFortune жребий фортуны.
// День: ASC + Moon − Sun, ночь: ASC + Sun − Moon.
// Дом берётся равными 30° от 0° Овна (floor(deg/30)+1); настоящий дом требует куспидов.
func CalculatePartOfFortune(chart domain.NatalChart) (domain.PartOfFortune, error) {
	placements, err := chart.RequirePlacements("part of fortune", domain.Sun, domain.Moon)
	if err != nil {
		return domain.PartOfFortune{}, err
	}
	sun, moon := placements[0], placements[1]
	asc := chart.Ascendant.Longitude()

	isDay := IsDayBirth(sun)
	var lon float64
	if isDay {
		lon = asc + moon.Longitude() - sun.Longitude()
	} else {
		lon = asc + sun.Longitude() - moon.Longitude()
	}

	return domain.PartOfFortune{
		DerivedPoint: derivedPoint(lon),
		IsDayBirth:   isDay,
	}, nil
}

// CalculateLilith заглушка вместо эфемерид Чёрной Луны, астрономически неточна:
// знак Луны + 6, градус Луны, дом Луны + 6.
func CalculateLilith(chart domain.NatalChart) (domain.DerivedPoint, error) {
	placements, err := chart.RequirePlacements("lilith", domain.Moon)
	if err != nil {
		return domain.DerivedPoint{}, err
	}
	moon := placements[0]

	sign := moon.Sign.Add(6)
	return domain.DerivedPoint{
		Longitude: float64(sign)*30 + moon.Degree,
		Sign:      sign,
		Degree:    moon.Degree,
		House:     domain.NormalizeHouse(moon.House + 6),
	}, nil
}

func derivedPoint(longitude float64) domain.DerivedPoint {
	lon := domain.NormalizeDegrees(longitude)
	signIdx := int(math.Floor(lon / 30))
	return domain.DerivedPoint{
		Longitude: lon,
		Sign:      domain.Sign(signIdx),
		Degree:    lon - float64(signIdx)*30,
		House:     signIdx + 1,
	}
}
