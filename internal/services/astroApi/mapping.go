package astroApi

import (
	"fmt"
	"strings"
	"time"

	astroApiAdapter "github.com/admin/astro-insights/internal/adapters/secondary/astroApi"
	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/usecases/chart"
)

func (s *Service) mapDailySky(date time.Time, data *astroApiAdapter.DailySkyData) domain.DailySkyData {
	sky := domain.DailySkyData{
		Date:         date,
		MoonPhase:    mapMoonPhase(data.MoonPhase),
		VoidOfCourse: domain.VoidOfCourse{IsVoid: data.VoidOfCourse.IsVoid, Until: data.VoidOfCourse.Until},
	}

	for _, name := range data.RetrogradePlanets {
		planet, err := domain.ParsePlanet(name)
		if err != nil {
			s.Log.Debug("skipping unknown retrograde point", "name", name)
			continue
		}
		sky.RetrogradePlanets = append(sky.RetrogradePlanets, planet)
	}

	// старые версии API не отдают retrograde_planets, только флаги в planets
	if len(data.RetrogradePlanets) == 0 {
		for _, p := range data.Planets {
			if !p.Retrograde {
				continue
			}
			if planet, err := domain.ParsePlanet(p.Name); err == nil {
				sky.RetrogradePlanets = append(sky.RetrogradePlanets, planet)
			}
		}
	}

	return sky
}

// mapMoonPhase угол приоритетнее готового названия: по нему считаются освещённость и дни до фаз
func mapMoonPhase(m astroApiAdapter.MoonPhase) domain.MoonPhaseInfo {
	if m.Angle != nil {
		return chart.MoonPhaseAt(*m.Angle)
	}

	info := domain.MoonPhaseInfo{Name: parseMoonPhaseName(m.Name)}
	if m.Illumination != nil {
		info.IlluminationPct = *m.Illumination
	}
	return info
}

func parseMoonPhaseName(name string) domain.MoonPhaseName {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	normalized = strings.TrimSuffix(normalized, "_moon")
	for _, phase := range domain.MoonPhases {
		if string(phase) == normalized {
			return phase
		}
	}
	return domain.MoonPhaseName(normalized)
}

func (s *Service) mapTransits(aspects []astroApiAdapter.TransitAspect) []domain.TransitAspect {
	transits := make([]domain.TransitAspect, 0, len(aspects))
	for _, a := range aspects {
		transiting, err := domain.ParsePlanet(a.TransitingPlanet)
		if err != nil {
			s.Log.Debug("skipping transit with unknown planet", "name", a.TransitingPlanet)
			continue
		}
		natal, err := domain.ParsePlanet(a.NatalPlanet)
		if err != nil {
			s.Log.Debug("skipping transit with unknown natal point", "name", a.NatalPlanet)
			continue
		}
		aspect, err := domain.ParseAspectType(a.Aspect)
		if err != nil {
			s.Log.Debug("skipping transit with unsupported aspect", "aspect", a.Aspect)
			continue
		}
		transits = append(transits, domain.NewTransitAspect(transiting, natal, aspect, a.Orb, a.IsApplying))
	}
	return transits
}

// mapChart неизвестные точки пропускаются. Неизвестный знак, дом вне 1–12
// или отсутствие куспидов ASC/MC - ошибка данных.
func (s *Service) mapChart(data *astroApiAdapter.ChartData) (domain.NatalChart, error) {
	result := domain.NatalChart{Placements: make([]domain.NatalPlacement, 0, len(data.Planets))}

	for _, p := range data.Planets {
		planet, err := domain.ParsePlanet(p.Name)
		if err != nil {
			s.Log.Debug("skipping unknown chart point", "name", p.Name)
			continue
		}
		point, err := toChartPoint(p.Sign, p.Degree)
		if err != nil {
			return domain.NatalChart{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidChartData, planet, err)
		}
		// house=0 значит, что API не вернул дом
		if p.House < 1 || p.House > 12 {
			return domain.NatalChart{}, fmt.Errorf("%w: %s has house %d", domain.ErrInvalidChartData, planet, p.House)
		}
		result.Placements = append(result.Placements, domain.NatalPlacement{
			Planet:       planet,
			Sign:         point.Sign,
			Degree:       point.Degree,
			House:        p.House,
			IsRetrograde: p.Retrograde,
		})
	}

	var hasAsc, hasMC bool
	for _, h := range data.Houses {
		if h.House != 1 && h.House != 10 {
			continue
		}
		point, err := toChartPoint(h.Sign, h.Degree)
		if err != nil {
			return domain.NatalChart{}, fmt.Errorf("%w: house %d: %v", domain.ErrInvalidChartData, h.House, err)
		}
		if h.House == 1 {
			result.Ascendant, hasAsc = point, true
		} else {
			result.Midheaven, hasMC = point, true
		}
	}
	if !hasAsc || !hasMC {
		return domain.NatalChart{}, fmt.Errorf("%w: missing house 1 or 10 cusp", domain.ErrInvalidChartData)
	}

	return result, nil
}

// toChartPoint градус >= 30 считается абсолютной долготой
func toChartPoint(sign string, degree float64) (domain.ChartPoint, error) {
	if degree >= 30 || degree < 0 {
		return domain.PointFromLongitude(degree), nil
	}
	parsed, err := domain.ParseSign(sign)
	if err != nil {
		return domain.ChartPoint{}, err
	}
	return domain.ChartPoint{Sign: parsed, Degree: degree}, nil
}
