package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// AspectType тип аспекта между транзитной и натальной планетой
type AspectType int

const (
	Conjunction AspectType = iota
	Opposition
	Trine
	Square
	Sextile
	Quincunx
)

var aspectNames = [...]string{"conjunction", "opposition", "trine", "square", "sextile", "quincunx"}

func (a AspectType) String() string {
	if !a.IsValid() {
		return fmt.Sprintf("AspectType(%d)", int(a))
	}
	return aspectNames[a]
}

func (a AspectType) IsValid() bool {
	return a >= Conjunction && a <= Quincunx
}

// Nature характер аспекта, выводится только из его типа
func (a AspectType) Nature() Nature {
	switch a {
	case Trine, Sextile:
		return Harmonious
	case Square, Opposition:
		return Challenging
	default:
		return Neutral
	}
}

func ParseAspectType(name string) (AspectType, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "inconjunct" {
		return Quincunx, nil
	}
	for i, n := range aspectNames {
		if n == normalized {
			return AspectType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown aspect type: %q", name)
}

func (a AspectType) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("invalid aspect type: %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *AspectType) UnmarshalText(text []byte) error {
	v, err := ParseAspectType(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

type Nature string

const (
	Harmonious  Nature = "harmonious"
	Challenging Nature = "challenging"
	Neutral     Nature = "neutral"
)

// TransitAspect аспект текущей планеты к натальной
type TransitAspect struct {
	TransitingPlanet Planet     `json:"transiting_planet"`
	NatalPlanet      Planet     `json:"natal_planet"`
	AspectType       AspectType `json:"aspect_type"`
	Orb              float64    `json:"orb"` // всегда >= 0
	IsApplying       bool       `json:"is_applying"`
	Nature           Nature     `json:"nature"`
}

// NewTransitAspect собирает аспект, нормализуя орб и выводя характер из типа
func NewTransitAspect(transiting, natal Planet, aspect AspectType, orb float64, applying bool) TransitAspect {
	return TransitAspect{
		TransitingPlanet: transiting,
		NatalPlanet:      natal,
		AspectType:       aspect,
		Orb:              math.Abs(orb),
		IsApplying:       applying,
		Nature:           aspect.Nature(),
	}
}

// ID стабильный идентификатор транзита, например "saturn-square-sun"
func (t TransitAspect) ID() string {
	return fmt.Sprintf("%s-%s-%s", t.TransitingPlanet.Slug(), t.AspectType, t.NatalPlanet.Slug())
}

// UserTransitData транзиты пользователя на конкретный день
type UserTransitData struct {
	Date     time.Time       `json:"date"`
	Transits []TransitAspect `json:"transits"`
}
