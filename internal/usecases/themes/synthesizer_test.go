package themes

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/admin/astro-insights/internal/domain"
)

func testSynthesizer() *Synthesizer {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// scenarioChart Солнце во Льве в 5 доме, Луна в Раке во 2 доме, асцендент в Раке
func scenarioChart() domain.NatalChart {
	return domain.NatalChart{
		Placements: []domain.NatalPlacement{
			{Planet: domain.Sun, Sign: domain.Leo, Degree: 12, House: 5},
			{Planet: domain.Moon, Sign: domain.Cancer, Degree: 3, House: 2},
			{Planet: domain.Venus, Sign: domain.Virgo, Degree: 1, House: 6},
		},
		Ascendant: domain.ChartPoint{Sign: domain.Cancer, Degree: 0},
		Midheaven: domain.ChartPoint{Sign: domain.Aries, Degree: 5},
	}
}

func TestSaturnSquareSunScenario(t *testing.T) {
	s := testSynthesizer()
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	natal := scenarioChart()
	sky := &domain.DailySkyData{
		VoidOfCourse:      domain.VoidOfCourse{IsVoid: false},
		RetrogradePlanets: []domain.Planet{},
	}
	transits := []domain.TransitAspect{
		{
			TransitingPlanet: domain.Saturn,
			NatalPlanet:      domain.Sun,
			AspectType:       domain.Square,
			Orb:              1.5,
			IsApplying:       true,
			Nature:           domain.Challenging,
		},
	}

	primary, err := s.GeneratePrimaryTheme(natal, sky, transits, now)
	if err != nil {
		t.Fatalf("GeneratePrimaryTheme: %v", err)
	}
	if len(primary.ContributingTransitIDs) != 1 || primary.ContributingTransitIDs[0] != "saturn-square-sun" {
		t.Errorf("primary driven by %v, want saturn-square-sun", primary.ContributingTransitIDs)
	}
	if primary.Intensity != 4 {
		t.Errorf("primary intensity = %d, want 4", primary.Intensity)
	}
	if primary.FocusArea != domain.FocusCreativity {
		t.Errorf("focus = %s, want creativity (Sun in 5th house)", primary.FocusArea)
	}

	guidance, err := s.GenerateDailyGuidance(natal, sky, transits, now)
	if err != nil {
		t.Fatalf("GenerateDailyGuidance: %v", err)
	}
	// harmonious=0, challenging=1: разница не больше 1, ретроградов нет
	if guidance.Tone != domain.ToneActionOriented {
		t.Errorf("tone = %s, want action_oriented", guidance.Tone)
	}
	if guidance.Intensity != 4 {
		t.Errorf("daily intensity = %d, want 4", guidance.Intensity)
	}
	if len(guidance.DoList) == 0 || len(guidance.AvoidList) == 0 {
		t.Error("expected non-empty do/avoid lists")
	}

	secondary, err := s.GenerateSecondaryThemes(natal, sky, transits, now)
	if err != nil {
		t.Fatalf("GenerateSecondaryThemes: %v", err)
	}
	if len(secondary) != 0 {
		t.Errorf("secondary themes = %d, want 0 for a single transit", len(secondary))
	}
}

func TestSecondaryThemesTakeNextTwo(t *testing.T) {
	s := testSynthesizer()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	transits := []domain.TransitAspect{
		transit(domain.Mars, domain.Trine, domain.Sun, 0.5, true),
		transit(domain.Venus, domain.Sextile, domain.Moon, 3, false),
		transit(domain.Uranus, domain.Opposition, domain.Venus, 2.5, true),
		transit(domain.Mercury, domain.Square, domain.Sun, 1, true),
	}

	secondary, err := s.GenerateSecondaryThemes(scenarioChart(), nil, transits, now)
	if err != nil {
		t.Fatalf("GenerateSecondaryThemes: %v", err)
	}
	if len(secondary) != 2 {
		t.Fatalf("secondary = %d, want 2", len(secondary))
	}
	// Уран главный, дальше Марс (0.5) и Меркурий (1)
	if secondary[0].ContributingTransitIDs[0] != "mars-trine-sun" || secondary[1].ContributingTransitIDs[0] != "mercury-square-sun" {
		t.Errorf("secondary = %v, %v", secondary[0].ContributingTransitIDs, secondary[1].ContributingTransitIDs)
	}
}

func TestThemeWindowsFollowMotion(t *testing.T) {
	s := testSynthesizer()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	separating := []domain.TransitAspect{transit(domain.Pluto, domain.Conjunction, domain.Moon, 0.3, false)}
	theme, err := s.GeneratePrimaryTheme(scenarioChart(), nil, separating, now)
	if err != nil {
		t.Fatal(err)
	}
	if !theme.PeakStart.Equal(now.Add(-day)) || !theme.PeakEnd.Equal(now.Add(3*day)) {
		t.Errorf("peak = %s..%s", theme.PeakStart, theme.PeakEnd)
	}
	if theme.StartsAt.After(theme.PeakStart) || theme.EndsAt.Before(theme.PeakEnd) {
		t.Errorf("theme span %s..%s must contain the peak", theme.StartsAt, theme.EndsAt)
	}
	if theme.Intensity != 5 {
		t.Errorf("intensity = %d, want 5", theme.Intensity)
	}
}

func TestSynthesisIsDeterministic(t *testing.T) {
	s := testSynthesizer()
	natal := scenarioChart()
	sky := &domain.DailySkyData{RetrogradePlanets: []domain.Planet{domain.Venus}}
	transits := []domain.TransitAspect{
		transit(domain.Jupiter, domain.Trine, domain.Venus, 2, true),
		transit(domain.Saturn, domain.Square, domain.Sun, 1.5, true),
		transit(domain.Moon, domain.Sextile, domain.Moon, 0.1, false),
	}

	first, err := s.GenerateDailyGuidance(natal, sky, transits, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.GenerateDailyGuidance(natal, sky, transits, time.Date(2026, 6, 1, 17, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	stripClock := func(g *domain.DailyGuidance) {
		g.PrimaryTheme.StartsAt = time.Time{}
		g.PrimaryTheme.PeakStart = time.Time{}
		g.PrimaryTheme.PeakEnd = time.Time{}
		g.PrimaryTheme.EndsAt = time.Time{}
		g.PrimaryTheme.LastUpdatedAt = time.Time{}
	}
	stripClock(&first)
	stripClock(&second)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("guidance differs beyond clock fields:\n%+v\n%+v", first, second)
	}
}

func TestNatalOnlyFallback(t *testing.T) {
	s := testSynthesizer()
	now := time.Date(2026, 2, 14, 15, 0, 0, 0, time.UTC)
	natal := scenarioChart()

	primary, err := s.GeneratePrimaryTheme(natal, nil, nil, now)
	if err != nil {
		t.Fatalf("GeneratePrimaryTheme: %v", err)
	}
	// асцендент в Раке → управитель Луна во 2 доме
	if !primary.NatalOnly || primary.FocusArea != domain.FocusFinances {
		t.Errorf("fallback theme = %+v", primary)
	}
	if len(primary.ContributingTransitIDs) != 0 {
		t.Errorf("natal theme must not reference transits: %v", primary.ContributingTransitIDs)
	}

	secondary, err := s.GenerateSecondaryThemes(natal, nil, nil, now)
	if err != nil {
		t.Fatalf("GenerateSecondaryThemes: %v", err)
	}
	if len(secondary) != 1 || secondary[0].FocusArea != domain.FocusCreativity {
		t.Errorf("fallback secondary = %+v", secondary)
	}

	guidance, err := s.GenerateDailyGuidance(natal, nil, nil, now)
	if err != nil {
		t.Fatalf("GenerateDailyGuidance: %v", err)
	}
	if guidance.Tone != domain.ToneActionOriented || guidance.Intensity != 1 || guidance.MoonPhase != nil {
		t.Errorf("fallback guidance = %+v", guidance)
	}
}

func TestNatalFallbackUsesSunWhenRulerMissing(t *testing.T) {
	natal := scenarioChart()
	natal.Ascendant.Sign = domain.Scorpio // Плутона в карте нет

	theme, err := testSynthesizer().GeneratePrimaryTheme(natal, nil, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if theme.FocusArea != domain.FocusCreativity {
		t.Errorf("focus = %s, want creativity from the Sun", theme.FocusArea)
	}
}

func TestNatalFallbackWithoutLuminaries(t *testing.T) {
	natal := domain.NatalChart{Ascendant: domain.ChartPoint{Sign: domain.Aries}}

	_, err := testSynthesizer().GeneratePrimaryTheme(natal, nil, nil, time.Now())
	if !errors.Is(err, domain.ErrInvalidChartData) {
		t.Fatalf("expected ErrInvalidChartData, got %v", err)
	}
}
