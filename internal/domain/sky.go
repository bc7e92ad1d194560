package domain

import "time"

// DailySkyData общая для всех пользователей картина неба на календарный день
type DailySkyData struct {
	Date              time.Time     `json:"date"`
	MoonPhase         MoonPhaseInfo `json:"moon_phase"`
	RetrogradePlanets []Planet      `json:"retrograde_planets"`
	VoidOfCourse      VoidOfCourse  `json:"void_of_course"`
}

// IsRetrograde проверяет, ретроградна ли планета в этот день
func (d DailySkyData) IsRetrograde(p Planet) bool {
	for _, r := range d.RetrogradePlanets {
		if r == p {
			return true
		}
	}
	return false
}

type VoidOfCourse struct {
	IsVoid bool       `json:"is_void"`
	Until  *time.Time `json:"until,omitempty"`
}

type MoonPhaseName string

const (
	NewMoon        MoonPhaseName = "new"
	WaxingCrescent MoonPhaseName = "waxing_crescent"
	FirstQuarter   MoonPhaseName = "first_quarter"
	WaxingGibbous  MoonPhaseName = "waxing_gibbous"
	FullMoon       MoonPhaseName = "full"
	WaningGibbous  MoonPhaseName = "waning_gibbous"
	LastQuarter    MoonPhaseName = "last_quarter"
	WaningCrescent MoonPhaseName = "waning_crescent"
)

// MoonPhases восемь октантов по 45° в фиксированном порядке
var MoonPhases = [8]MoonPhaseName{
	NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous,
	FullMoon, WaningGibbous, LastQuarter, WaningCrescent,
}

type MoonPhaseInfo struct {
	Name            MoonPhaseName `json:"name"`
	Angle           float64       `json:"angle"`
	IlluminationPct float64       `json:"illumination_pct"`
	DaysToNew       int           `json:"days_to_new"`
	DaysToFull      int           `json:"days_to_full"`
}
