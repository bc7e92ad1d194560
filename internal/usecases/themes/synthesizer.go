package themes

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/usecases/chart"
	"github.com/google/uuid"
)

const (
	maxSecondaryThemes  = 2
	natalThemeIntensity = 2
)

// themeNamespace пространство имён для детерминированных UUID тем
var themeNamespace = uuid.MustParse("6f1c3f4e-7d0a-5b8e-9a47-2c1f0e6b9d53")

// Synthesizer собирает темы и сводку дня из натальной карты, неба и транзитов.
// sky и transits опциональны: без транзитов используется только натальная карта.
type Synthesizer struct {
	Log *slog.Logger
}

func New(log *slog.Logger) *Synthesizer {
	return &Synthesizer{Log: log}
}

// GeneratePrimaryTheme главная тема: самый значимый транзит или, если транзитов нет,
// положение управителя карты.
func (s *Synthesizer) GeneratePrimaryTheme(
	natal domain.NatalChart,
	sky *domain.DailySkyData,
	transits []domain.TransitAspect,
	now time.Time,
) (domain.SynthesisedTheme, error) {
	ranked := RankTransits(transits)
	if len(ranked) == 0 {
		s.Log.Debug("no transits available, using natal-only primary theme")
		return natalPrimaryTheme(natal, now)
	}
	return transitTheme(natal, ranked[0], now), nil
}

// GenerateSecondaryThemes следующие один-два транзита по значимости
func (s *Synthesizer) GenerateSecondaryThemes(
	natal domain.NatalChart,
	sky *domain.DailySkyData,
	transits []domain.TransitAspect,
	now time.Time,
) ([]domain.SynthesisedTheme, error) {
	ranked := RankTransits(transits)
	if len(ranked) == 0 {
		return natalSecondaryThemes(natal, now)
	}

	rest := ranked[1:]
	if len(rest) > maxSecondaryThemes {
		rest = rest[:maxSecondaryThemes]
	}

	themes := make([]domain.SynthesisedTheme, 0, len(rest))
	for _, t := range rest {
		themes = append(themes, transitTheme(natal, t, now))
	}
	return themes, nil
}

// GenerateDailyGuidance тон, интенсивность и списки "делать/избегать" на день
func (s *Synthesizer) GenerateDailyGuidance(
	natal domain.NatalChart,
	sky *domain.DailySkyData,
	transits []domain.TransitAspect,
	now time.Time,
) (domain.DailyGuidance, error) {
	primary, err := s.GeneratePrimaryTheme(natal, sky, transits, now)
	if err != nil {
		return domain.DailyGuidance{}, err
	}

	tone := DeriveTone(sky, transits)

	doList := append([]string(nil), toneDo[tone]...)
	if item, ok := focusDo[primary.FocusArea]; ok {
		doList = append(doList, item)
	}

	guidance := domain.DailyGuidance{
		Tone:         tone,
		Intensity:    AggregateIntensity(transits),
		DoList:       doList,
		AvoidList:    append([]string(nil), toneAvoid[tone]...),
		PrimaryTheme: primary,
	}
	if sky != nil {
		phase := sky.MoonPhase
		guidance.MoonPhase = &phase
	}

	return guidance, nil
}

func transitTheme(natal domain.NatalChart, t domain.TransitAspect, now time.Time) domain.SynthesisedTheme {
	focus := defaultFocus[t.NatalPlanet]
	if p, ok := natal.Placement(t.NatalPlanet); ok {
		focus = domain.FocusAreaForHouse(p.House)
	}

	motion := "separating"
	if t.IsApplying {
		motion = "applying"
	}

	peak := PeakWindow(t, now)
	start, end := themeSpan(t, now)
	transitID := t.ID()

	return domain.SynthesisedTheme{
		ID:   themeID(natal, transitID),
		Name: planetKeywords[t.TransitingPlanet],
		Description: fmt.Sprintf("Transiting %s %s your natal %s (%s, orb %.1f°), touching %s.",
			t.TransitingPlanet, aspectVerbs[t.AspectType], t.NatalPlanet, motion, t.Orb, humanFocus(focus)),
		StartsAt:               start,
		PeakStart:              peak.Start,
		PeakEnd:                peak.End,
		EndsAt:                 end,
		Intensity:              TransitIntensity(t.Orb),
		FocusArea:              focus,
		ContributingTransitIDs: []string{transitID},
		LastUpdatedAt:          now,
	}
}

// natalPrimaryTheme тема по управителю карты; если его нет в карте, берём Солнце
func natalPrimaryTheme(natal domain.NatalChart, now time.Time) (domain.SynthesisedTheme, error) {
	ruler, placement, ok := chart.ChartRuler(natal)
	if !ok {
		placements, err := natal.RequirePlacements("natal theme", domain.Sun)
		if err != nil {
			return domain.SynthesisedTheme{}, fmt.Errorf("chart ruler %s not found: %w", ruler, err)
		}
		placement = placements[0]
	}
	return placementTheme(natal, placement, now), nil
}

// natalSecondaryThemes Солнце и Луна, кроме уже использованной в главной теме планеты
func natalSecondaryThemes(natal domain.NatalChart, now time.Time) ([]domain.SynthesisedTheme, error) {
	primary, err := natalPrimaryTheme(natal, now)
	if err != nil {
		return nil, err
	}

	themes := make([]domain.SynthesisedTheme, 0, maxSecondaryThemes)
	for _, planet := range []domain.Planet{domain.Sun, domain.Moon} {
		p, ok := natal.Placement(planet)
		if !ok {
			continue
		}
		theme := placementTheme(natal, p, now)
		if theme.ID == primary.ID {
			continue
		}
		themes = append(themes, theme)
	}
	return themes, nil
}

func placementTheme(natal domain.NatalChart, p domain.NatalPlacement, now time.Time) domain.SynthesisedTheme {
	focus := domain.FocusAreaForHouse(p.House)
	dayStart := startOfDay(now)

	return domain.SynthesisedTheme{
		ID:   themeID(natal, "natal-"+p.Planet.Slug()),
		Name: planetKeywords[p.Planet],
		Description: fmt.Sprintf("Your natal %s in %s (house %d) sets the tone, touching %s.",
			p.Planet, p.Sign, p.House, humanFocus(focus)),
		StartsAt:               dayStart,
		PeakStart:              dayStart,
		PeakEnd:                dayStart.Add(day),
		EndsAt:                 dayStart.Add(day),
		Intensity:              natalThemeIntensity,
		FocusArea:              focus,
		ContributingTransitIDs: []string{},
		NatalOnly:              true,
		LastUpdatedAt:          now,
	}
}

// themeID детерминирован для одной и той же карты и набора транзитов
func themeID(natal domain.NatalChart, key string) uuid.UUID {
	return uuid.NewSHA1(themeNamespace, []byte(chartFingerprint(natal)+"|"+key))
}

func chartFingerprint(natal domain.NatalChart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "asc:%d:%.2f;mc:%d:%.2f", natal.Ascendant.Sign, natal.Ascendant.Degree, natal.Midheaven.Sign, natal.Midheaven.Degree)
	for _, p := range natal.Placements {
		fmt.Fprintf(&b, ";%d:%d:%.2f:%d", p.Planet, p.Sign, p.Degree, p.House)
	}
	return b.String()
}

func humanFocus(f domain.FocusArea) string {
	return strings.ReplaceAll(string(f), "_", " ")
}
