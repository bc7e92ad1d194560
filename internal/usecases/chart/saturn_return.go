package chart

import (
	"time"

	"github.com/admin/astro-insights/internal/domain"
)

const (
	day = 24 * time.Hour

	// SaturnCycle фиксированная длина цикла Сатурна, ~29.45 года
	SaturnCycle = 10759 * day
	// saturnWindowHalf полуширина окна возвращения вокруг точной даты
	saturnWindowHalf = 365 * day
)

// SaturnReturnWindows окна первого и второго возвращения Сатурна для момента рождения
func SaturnReturnWindows(birth time.Time) (first domain.TimeWindow, firstExact time.Time, second domain.TimeWindow, secondExact time.Time) {
	firstExact = birth.Add(SaturnCycle)
	secondExact = birth.Add(2 * SaturnCycle)
	first = domain.TimeWindow{Start: firstExact.Add(-saturnWindowHalf), End: firstExact.Add(saturnWindowHalf)}
	second = domain.TimeWindow{Start: secondExact.Add(-saturnWindowHalf), End: secondExact.Add(saturnWindowHalf)}
	return first, firstExact, second, secondExact
}

// SaturnReturnPhaseAt фаза цикла как чистая функция (birth, now).
// Границы окон включены.
func SaturnReturnPhaseAt(birth, now time.Time) domain.SaturnPhase {
	first, firstExact, second, secondExact := SaturnReturnWindows(birth)

	switch {
	case now.Before(first.Start):
		return domain.SaturnPreReturn
	case first.Contains(now):
		return phaseInWindow(now, firstExact)
	case second.Contains(now):
		return phaseInWindow(now, secondExact)
	default:
		// между окнами или после второго
		return domain.SaturnPostReturn
	}
}

func phaseInWindow(now, exact time.Time) domain.SaturnPhase {
	if now.Before(exact) {
		return domain.SaturnApproaching
	}
	return domain.SaturnInReturn
}

// CalculateSaturnReturn полный отчёт о возвращении Сатурна. Натальный Сатурн обязателен.
func CalculateSaturnReturn(chart domain.NatalChart, birth, now time.Time) (domain.SaturnReturn, error) {
	placements, err := chart.RequirePlacements("saturn return", domain.Saturn)
	if err != nil {
		return domain.SaturnReturn{}, err
	}

	first, firstExact, second, secondExact := SaturnReturnWindows(birth)

	return domain.SaturnReturn{
		NatalSaturn:  placements[0],
		FirstWindow:  first,
		FirstExact:   firstExact,
		SecondWindow: second,
		SecondExact:  secondExact,
		Phase:        SaturnReturnPhaseAt(birth, now),
	}, nil
}
