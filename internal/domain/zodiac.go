package domain

import (
	"fmt"
	"math"
	"strings"
)

// Sign знак зодиака в каноническом порядке Aries…Pisces.
// Вся арифметика по знакам берётся по модулю 12 от этого порядка.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

const SignsCount = 12

var signNames = [SignsCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

func (s Sign) IsValid() bool {
	return s >= Aries && s <= Pisces
}

// Add сдвигает знак на n позиций по кругу
func (s Sign) Add(n int) Sign {
	return Sign(mod(int(s)+n, SignsCount))
}

// SignDistance кратчайшее расстояние между знаками (0..6)
func SignDistance(a, b Sign) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	d %= SignsCount
	if SignsCount-d < d {
		return SignsCount - d
	}
	return d
}

// ParseSign принимает полное имя знака без учёта регистра
func ParseSign(name string) (Sign, error) {
	name = strings.TrimSpace(name)
	for i, n := range signNames {
		if strings.EqualFold(n, name) {
			return Sign(i), nil
		}
		// API иногда отдаёт сокращения ("Ari", "Tau")
		if len(name) == 3 && strings.EqualFold(n[:3], name) {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sign: %q", name)
}

func (s Sign) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid sign: %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Sign) UnmarshalText(text []byte) error {
	v, err := ParseSign(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Planet небесное тело натальной карты
type Planet int

const (
	Sun Planet = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Chiron
	NorthNode
)

const PlanetsCount = 12

var planetNames = [PlanetsCount]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter",
	"Saturn", "Uranus", "Neptune", "Pluto", "Chiron", "North Node",
}

func (p Planet) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planetNames[p]
}

func (p Planet) IsValid() bool {
	return p >= Sun && p <= NorthNode
}

// IsOuter медленные планеты, которые весят больше при ранжировании транзитов
func (p Planet) IsOuter() bool {
	switch p {
	case Saturn, Uranus, Neptune, Pluto:
		return true
	default:
		return false
	}
}

// IsPersonal планеты, ретроградность которых делает день "reflective"
func (p Planet) IsPersonal() bool {
	switch p {
	case Mercury, Venus, Mars:
		return true
	default:
		return false
	}
}

// Slug имя в нижнем регистре без пробелов, используется в идентификаторах
func (p Planet) Slug() string {
	return strings.ReplaceAll(strings.ToLower(p.String()), " ", "_")
}

func ParsePlanet(name string) (Planet, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	switch normalized {
	case "true node", "mean node", "node":
		return NorthNode, nil
	}
	for i, n := range planetNames {
		if strings.ToLower(n) == normalized {
			return Planet(i), nil
		}
	}
	return 0, fmt.Errorf("unknown planet: %q", name)
}

func (p Planet) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid planet: %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Planet) UnmarshalText(text []byte) error {
	v, err := ParsePlanet(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ChartPoint точка зодиака: знак + градус внутри знака (0–30)
type ChartPoint struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
}

// Longitude абсолютный градус эклиптики: sign*30 + degree
func (p ChartPoint) Longitude() float64 {
	return float64(p.Sign)*30 + p.Degree
}

// PointFromLongitude раскладывает абсолютный градус обратно в знак и градус
func PointFromLongitude(longitude float64) ChartPoint {
	lon := NormalizeDegrees(longitude)
	sign := Sign(int(math.Floor(lon/30)) % SignsCount)
	return ChartPoint{
		Sign:   sign,
		Degree: lon - float64(sign)*30,
	}
}

// NormalizeDegrees приводит угол к [0,360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0.0 и 360 после Mod с погрешностью
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// NormalizeHouse приводит номер дома к 1..12
func NormalizeHouse(house int) int {
	return mod(house-1, 12) + 1
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
