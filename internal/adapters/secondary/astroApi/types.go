package astroApi

import "time"

// DateTime дата и время момента расчёта
type DateTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second,omitempty"`
}

// BirthData представляет данные о рождении для API запроса
type BirthData struct {
	DateTime
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
}

// Person представляет субъекта карты
type Person struct {
	Name      string    `json:"name"`
	BirthData BirthData `json:"birth_data"`
}

// ChartOptions представляет опции для расчета карты
type ChartOptions struct {
	HouseSystem  string   `json:"house_system"`  // "P" для Плацидуса
	ZodiacType   string   `json:"zodiac_type"`   // "Tropic" для тропического
	ActivePoints []string `json:"active_points"` // ["Sun", "Moon", ...]
	Precision    int      `json:"precision"`
}

type DailySkyRequest struct {
	Date    DateTime     `json:"date"`
	Options ChartOptions `json:"options"`
}

type TransitsRequest struct {
	Subject     Person       `json:"subject"`
	TransitDate DateTime     `json:"transit_date"`
	Options     ChartOptions `json:"options"`
}

type NatalChartRequest struct {
	Subject Person       `json:"subject"`
	Options ChartOptions `json:"options"`
}

// ReturnRequest лунар или соляр: для лунара задаётся дата, для соляра год
type ReturnRequest struct {
	Subject    Person       `json:"subject"`
	ReturnDate *DateTime    `json:"return_date,omitempty"`
	ReturnYear int          `json:"return_year,omitempty"`
	Options    ChartOptions `json:"options"`
}

// Envelope общая обёртка ответа API
type Envelope[T any] struct {
	Status    string `json:"status"`
	Code      int    `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Data      *T     `json:"data,omitempty"`
}

type DailySkyData struct {
	Date              string           `json:"date"`
	MoonPhase         MoonPhase        `json:"moon_phase"`
	RetrogradePlanets []string         `json:"retrograde_planets"`
	VoidOfCourse      VoidOfCourseMoon `json:"void_of_course"`
	Planets           []PlanetPosition `json:"planets,omitempty"`
}

// MoonPhase провайдер отдаёт угол Солнце-Луна и/или готовое название фазы
type MoonPhase struct {
	Name         string   `json:"name,omitempty"`
	Angle        *float64 `json:"angle,omitempty"`
	Illumination *float64 `json:"illumination,omitempty"`
}

type VoidOfCourseMoon struct {
	IsVoid bool       `json:"is_void"`
	Until  *time.Time `json:"until,omitempty"`
}

type TransitsData struct {
	Aspects []TransitAspect `json:"aspects"`
}

type TransitAspect struct {
	TransitingPlanet string  `json:"transiting_planet"`
	NatalPlanet      string  `json:"natal_planet"`
	Aspect           string  `json:"aspect"`
	Orb              float64 `json:"orb"`
	IsApplying       bool    `json:"is_applying"`
}

// ChartData планеты и дома рассчитанной карты
type ChartData struct {
	Planets []PlanetPosition `json:"planets,omitempty"`
	Houses  []HousePosition  `json:"houses,omitempty"`
}

// PlanetPosition представляет позицию планеты (используется только для парсинга ответа)
type PlanetPosition struct {
	Name       string  `json:"name"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	House      int     `json:"house,omitempty"`
	Retrograde bool    `json:"retrograde,omitempty"`
}

// HousePosition представляет позицию куспида дома
type HousePosition struct {
	House  int     `json:"house"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}
