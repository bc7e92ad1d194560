package chart

import (
	"math"
	"testing"

	"github.com/admin/astro-insights/internal/domain"
)

func placement(p domain.Planet, s domain.Sign, deg float64, house int) domain.NatalPlacement {
	return domain.NatalPlacement{Planet: p, Sign: s, Degree: deg, House: house}
}

// leoChart Солнце во Льве (5 дом), Луна в Раке (2 дом), асцендент 0° Овна
func leoChart() domain.NatalChart {
	return domain.NatalChart{
		Placements: []domain.NatalPlacement{
			placement(domain.Sun, domain.Leo, 10, 5),
			placement(domain.Moon, domain.Cancer, 5, 2),
			placement(domain.Mercury, domain.Virgo, 2, 6),
			placement(domain.Venus, domain.Gemini, 20, 3),
			placement(domain.Mars, domain.Aries, 14, 1),
			placement(domain.Saturn, domain.Capricorn, 17, 10),
		},
		Ascendant: domain.ChartPoint{Sign: domain.Aries, Degree: 0},
		Midheaven: domain.ChartPoint{Sign: domain.Capricorn, Degree: 0},
	}
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %.6f, want %.6f", name, got, want)
	}
}
