package themes

import "github.com/admin/astro-insights/internal/domain"

// DeriveTone тон дня. Порядок проверок фиксирован:
//  1. Луна без курса → restorative
//  2. гармоничных больше напряжённых более чем на 1 → encouraging
//  3. напряжённых больше гармоничных более чем на 1 → cautious
//  4. ретрограден Меркурий, Венера или Марс → reflective
//  5. иначе → action_oriented
func DeriveTone(sky *domain.DailySkyData, transits []domain.TransitAspect) domain.Tone {
	if sky != nil && sky.VoidOfCourse.IsVoid {
		return domain.ToneRestorative
	}

	var harmonious, challenging int
	for _, t := range transits {
		switch t.Nature {
		case domain.Harmonious:
			harmonious++
		case domain.Challenging:
			challenging++
		}
	}

	switch {
	case harmonious-challenging > 1:
		return domain.ToneEncouraging
	case challenging-harmonious > 1:
		return domain.ToneCautious
	}

	if sky != nil {
		for _, p := range sky.RetrogradePlanets {
			if p.IsPersonal() {
				return domain.ToneReflective
			}
		}
	}

	return domain.ToneActionOriented
}
