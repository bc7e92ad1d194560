package chart

import (
	"math"

	"github.com/admin/astro-insights/internal/domain"
)

const (
	octantWidth       = 45.0
	synodicMonthDays  = 29.5
	illuminationDelta = 25.0
)

// illuminationBounds значения освещённости на границах октантов.
// Схематичная кусочно-линейная модель, а не тригонометрическая: на ней завязаны
// все производные оценки, менять только вместе с продуктом.
var illuminationBounds = [9]float64{0, 25, 50, 75, 100, 75, 50, 25, 0}

// MoonPhaseAt фаза Луны по углу Луна−Солнце (градусы, приводятся к [0,360))
func MoonPhaseAt(angle float64) domain.MoonPhaseInfo {
	angle = domain.NormalizeDegrees(angle)

	octant := int(math.Floor(angle / octantWidth))
	if octant > 7 {
		octant = 7
	}

	lower := illuminationBounds[octant]
	progress := (angle - float64(octant)*octantWidth) / octantWidth

	illumination := lower + progress*illuminationDelta
	if illuminationBounds[octant+1] < lower {
		// после полнолуния освещённость убывает
		illumination = lower - progress*illuminationDelta
	}

	return domain.MoonPhaseInfo{
		Name:            domain.MoonPhases[octant],
		Angle:           angle,
		IlluminationPct: illumination,
		DaysToNew:       int(math.Round((360 - angle) / 360 * synodicMonthDays)),
		DaysToFull:      int(math.Round(math.Mod(180-angle+360, 360) / 360 * synodicMonthDays)),
	}
}

// MoonPhaseFromPoints фаза по положениям Солнца и Луны
func MoonPhaseFromPoints(sun, moon domain.ChartPoint) domain.MoonPhaseInfo {
	return MoonPhaseAt(moon.Longitude() - sun.Longitude())
}

// CalculateMoonPhase фаза Луны натальной карты
func CalculateMoonPhase(chart domain.NatalChart) (domain.MoonPhaseInfo, error) {
	placements, err := chart.RequirePlacements("moon phase", domain.Sun, domain.Moon)
	if err != nil {
		return domain.MoonPhaseInfo{}, err
	}
	return MoonPhaseFromPoints(placements[0].Point(), placements[1].Point()), nil
}
