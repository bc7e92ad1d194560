package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NatalPlacement положение одной планеты в натальной карте
type NatalPlacement struct {
	Planet       Planet  `json:"planet"`
	Sign         Sign    `json:"sign"`
	Degree       float64 `json:"degree"` // 0–30 внутри знака
	House        int     `json:"house"`  // 1–12
	IsRetrograde bool    `json:"is_retrograde"`
}

// Point положение планеты как точка зодиака
func (p NatalPlacement) Point() ChartPoint {
	return ChartPoint{Sign: p.Sign, Degree: p.Degree}
}

// Longitude абсолютный градус эклиптики
func (p NatalPlacement) Longitude() float64 {
	return p.Point().Longitude()
}

// NatalChart рассчитывается внешним провайдером и дальше считается неизменяемой.
// Хранится в БД как JSONB.
type NatalChart struct {
	Placements []NatalPlacement `json:"placements"`
	Ascendant  ChartPoint       `json:"ascendant"`
	Midheaven  ChartPoint       `json:"midheaven"`
}

// Placement ищет положение планеты в карте
func (c NatalChart) Placement(planet Planet) (NatalPlacement, bool) {
	for _, p := range c.Placements {
		if p.Planet == planet {
			return p, true
		}
	}
	return NatalPlacement{}, false
}

// RequirePlacements возвращает положения в порядке запроса или ChartDataError со списком отсутствующих
func (c NatalChart) RequirePlacements(op string, planets ...Planet) ([]NatalPlacement, error) {
	found := make([]NatalPlacement, 0, len(planets))
	var missing []Planet
	for _, planet := range planets {
		p, ok := c.Placement(planet)
		if !ok {
			missing = append(missing, planet)
			continue
		}
		found = append(found, p)
	}
	if len(missing) > 0 {
		return nil, &ChartDataError{Op: op, Missing: missing}
	}
	return found, nil
}

// Validate проверяет инварианты карты: знаки из фиксированного набора, дома 1–12, градус 0–30
func (c NatalChart) Validate() error {
	for _, p := range c.Placements {
		if !p.Planet.IsValid() {
			return fmt.Errorf("%w: invalid planet %d", ErrInvalidChartData, int(p.Planet))
		}
		if !p.Sign.IsValid() {
			return fmt.Errorf("%w: %s has invalid sign %d", ErrInvalidChartData, p.Planet, int(p.Sign))
		}
		if p.House < 1 || p.House > 12 {
			return fmt.Errorf("%w: %s has invalid house %d", ErrInvalidChartData, p.Planet, p.House)
		}
		if p.Degree < 0 || p.Degree >= 30 {
			return fmt.Errorf("%w: %s has invalid degree %.2f", ErrInvalidChartData, p.Planet, p.Degree)
		}
	}
	return nil
}

// BirthData данные рождения, которые уходят во внешний API
type BirthData struct {
	UserID     uuid.UUID `json:"user_id"`
	BirthTime  time.Time `json:"birth_time"`
	BirthPlace string    `json:"birth_place"`
}
