package chart

import "github.com/admin/astro-insights/internal/domain"

// современные управители знаков
var signRulers = [domain.SignsCount]domain.Planet{
	domain.Mars,    // Aries
	domain.Venus,   // Taurus
	domain.Mercury, // Gemini
	domain.Moon,    // Cancer
	domain.Sun,     // Leo
	domain.Mercury, // Virgo
	domain.Venus,   // Libra
	domain.Pluto,   // Scorpio
	domain.Jupiter, // Sagittarius
	domain.Saturn,  // Capricorn
	domain.Uranus,  // Aquarius
	domain.Neptune, // Pisces
}

func RulerOf(sign domain.Sign) domain.Planet {
	return signRulers[sign.Add(0)]
}

// ChartRuler управитель асцендента и его положение в карте, если оно есть
func ChartRuler(chart domain.NatalChart) (domain.Planet, domain.NatalPlacement, bool) {
	ruler := RulerOf(chart.Ascendant.Sign)
	placement, ok := chart.Placement(ruler)
	return ruler, placement, ok
}
