package domain

import "time"

type SaturnPhase string

const (
	SaturnPreReturn   SaturnPhase = "pre-return"
	SaturnApproaching SaturnPhase = "approaching"
	SaturnInReturn    SaturnPhase = "in-return"
	SaturnPostReturn  SaturnPhase = "post-return"
)

// TimeWindow закрытый интервал [Start, End]
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains проверяет попадание с включёнными границами
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

type SaturnReturn struct {
	NatalSaturn  NatalPlacement `json:"natal_saturn"`
	FirstWindow  TimeWindow     `json:"first_window"`
	FirstExact   time.Time      `json:"first_exact"`
	SecondWindow TimeWindow     `json:"second_window"`
	SecondExact  time.Time      `json:"second_exact"`
	Phase        SaturnPhase    `json:"phase"`
}

// DerivedPoint вычисленная точка карты со знаком и приближённым домом
type DerivedPoint struct {
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	Degree    float64 `json:"degree"`
	House     int     `json:"house"`
}

type PartOfFortune struct {
	DerivedPoint
	IsDayBirth bool `json:"is_day_birth"`
}

type CompatibilityCategory string

const (
	CompatibilityExcellent   CompatibilityCategory = "excellent"
	CompatibilityGood        CompatibilityCategory = "good"
	CompatibilityModerate    CompatibilityCategory = "moderate"
	CompatibilityChallenging CompatibilityCategory = "challenging"
)

type PairCompatibility struct {
	Planet       Planet                `json:"planet"`
	SignDistance int                   `json:"sign_distance"`
	Category     CompatibilityCategory `json:"category"`
	Score        int                   `json:"score"`
	Weight       float64               `json:"weight"`
}

type Compatibility struct {
	Score int                 `json:"score"`
	Pairs []PairCompatibility `json:"pairs"`
}
