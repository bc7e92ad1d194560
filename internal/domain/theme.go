package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tone качественный тон дня
type Tone string

const (
	ToneEncouraging    Tone = "encouraging"
	ToneCautious       Tone = "cautious"
	ToneReflective     Tone = "reflective"
	ToneActionOriented Tone = "action_oriented"
	ToneRestorative    Tone = "restorative"
)

// FocusArea сфера жизни, на которую указывает натальный дом
type FocusArea string

const (
	FocusSelf           FocusArea = "self"
	FocusFinances       FocusArea = "finances"
	FocusCommunication  FocusArea = "communication"
	FocusHome           FocusArea = "home"
	FocusCreativity     FocusArea = "creativity"
	FocusHealth         FocusArea = "health"
	FocusRelationships  FocusArea = "relationships"
	FocusTransformation FocusArea = "transformation"
	FocusGrowth         FocusArea = "growth"
	FocusCareer         FocusArea = "career"
	FocusCommunity      FocusArea = "community"
	FocusInnerLife      FocusArea = "inner_life"
)

var houseFocus = [12]FocusArea{
	FocusSelf, FocusFinances, FocusCommunication, FocusHome,
	FocusCreativity, FocusHealth, FocusRelationships, FocusTransformation,
	FocusGrowth, FocusCareer, FocusCommunity, FocusInnerLife,
}

// FocusAreaForHouse сфера по номеру дома (1–12)
func FocusAreaForHouse(house int) FocusArea {
	return houseFocus[NormalizeHouse(house)-1]
}

// SynthesisedTheme производная тема, не хранится и пересчитывается на каждый запрос
type SynthesisedTheme struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	StartsAt               time.Time `json:"starts_at"`
	PeakStart              time.Time `json:"peak_start"`
	PeakEnd                time.Time `json:"peak_end"`
	EndsAt                 time.Time `json:"ends_at"`
	Intensity              int       `json:"intensity"` // 1–5
	FocusArea              FocusArea `json:"focus_area"`
	ContributingTransitIDs []string  `json:"contributing_transit_ids"`
	NatalOnly              bool      `json:"natal_only"`
	LastUpdatedAt          time.Time `json:"last_updated_at"`
}

// DailyGuidance итоговая сводка дня
type DailyGuidance struct {
	Tone         Tone             `json:"tone"`
	Intensity    int              `json:"intensity"`
	DoList       []string         `json:"do_list"`
	AvoidList    []string         `json:"avoid_list"`
	MoonPhase    *MoonPhaseInfo   `json:"moon_phase,omitempty"`
	PrimaryTheme SynthesisedTheme `json:"primary_theme"`
}
