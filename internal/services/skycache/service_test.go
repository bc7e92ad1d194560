package skycache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/google/uuid"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeProvider struct {
	skyCalls      atomic.Int32
	transitCalls  atomic.Int32
	lunarCalls    atomic.Int32
	solarCalls    atomic.Int32
	err           error
	block         chan struct{}
	waitCtx       bool
	transitsByDay map[string][]domain.TransitAspect
}

func (p *fakeProvider) GetDailySky(ctx context.Context, date time.Time) (domain.DailySkyData, error) {
	p.skyCalls.Add(1)
	if p.waitCtx {
		<-ctx.Done()
		return domain.DailySkyData{}, ctx.Err()
	}
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return domain.DailySkyData{}, ctx.Err()
		}
	}
	if p.err != nil {
		return domain.DailySkyData{}, p.err
	}
	return domain.DailySkyData{
		Date:              date,
		MoonPhase:         domain.MoonPhaseInfo{Name: domain.FullMoon, IlluminationPct: 100},
		RetrogradePlanets: []domain.Planet{domain.Mercury},
	}, nil
}

func (p *fakeProvider) GetUserTransits(ctx context.Context, birth domain.BirthData, date time.Time) (domain.UserTransitData, error) {
	p.transitCalls.Add(1)
	if p.err != nil {
		return domain.UserTransitData{}, p.err
	}
	return domain.UserTransitData{
		Date: date,
		Transits: []domain.TransitAspect{
			domain.NewTransitAspect(domain.Saturn, domain.Sun, domain.Square, 1.5, true),
		},
	}, nil
}

func (p *fakeProvider) GetLunarReturn(ctx context.Context, birth domain.BirthData, date time.Time) (domain.NatalChart, error) {
	p.lunarCalls.Add(1)
	if p.err != nil {
		return domain.NatalChart{}, p.err
	}
	return domain.NatalChart{Placements: []domain.NatalPlacement{{Planet: domain.Moon, Sign: domain.Cancer, Degree: 3, House: 4}}}, nil
}

func (p *fakeProvider) GetSolarReturn(ctx context.Context, birth domain.BirthData, year int) (domain.NatalChart, error) {
	p.solarCalls.Add(1)
	if p.err != nil {
		return domain.NatalChart{}, p.err
	}
	return domain.NatalChart{Placements: []domain.NatalPlacement{{Planet: domain.Sun, Sign: domain.Leo, Degree: 10, House: 5}}}, nil
}

var testDate = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		DailySkyTTL:     24 * time.Hour,
		UserTransitsTTL: 24 * time.Hour,
		LunarReturnTTL:  30 * 24 * time.Hour,
		SolarReturnTTL:  365 * 24 * time.Hour,
		SweepInterval:   time.Hour,
	}
}

func newTestService(p *fakeProvider, cfg Config) (*Service, *fakeClock) {
	clock := &fakeClock{now: testDate}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(p, cfg, log, WithClock(clock.Now)), clock
}

func birth(id uuid.UUID) domain.BirthData {
	return domain.BirthData{UserID: id, BirthTime: time.Date(1990, 6, 1, 12, 0, 0, 0, time.UTC), BirthPlace: "Berlin"}
}

func TestDailySkyHitDoesNotCallProvider(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newTestService(p, testConfig())
	ctx := context.Background()

	first, err := svc.GetCachedDailySky(ctx, testDate)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	// другое время того же дня попадает в тот же ключ
	second, err := svc.GetCachedDailySky(ctx, testDate.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if got := p.skyCalls.Load(); got != 1 {
		t.Fatalf("provider calls = %d, want 1", got)
	}
	if first.MoonPhase != second.MoonPhase {
		t.Errorf("cached value differs: %+v vs %+v", first.MoonPhase, second.MoonPhase)
	}
}

func TestExpiredEntryTriggersExactlyOneRefresh(t *testing.T) {
	p := &fakeProvider{}
	svc, clock := newTestService(p, testConfig())
	ctx := context.Background()

	if _, err := svc.GetCachedDailySky(ctx, testDate); err != nil {
		t.Fatal(err)
	}

	// ровно на границе TTL запись уже просрочена
	clock.Advance(24 * time.Hour)
	if _, err := svc.GetCachedDailySky(ctx, testDate); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetCachedDailySky(ctx, testDate); err != nil {
		t.Fatal(err)
	}

	if got := p.skyCalls.Load(); got != 2 {
		t.Fatalf("provider calls = %d, want 2", got)
	}
}

func TestUpstreamErrorKeepsPriorEntry(t *testing.T) {
	p := &fakeProvider{}
	svc, clock := newTestService(p, testConfig())
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.GetCachedUserTransits(ctx, birth(user), testDate); err != nil {
		t.Fatal(err)
	}

	clock.Advance(25 * time.Hour)
	upstream := domain.NewUpstreamError("user transits", 503, errors.New("service unavailable"))
	p.err = upstream

	_, err := svc.GetCachedUserTransits(ctx, birth(user), testDate)
	if !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error unmodified, got %v", err)
	}
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}

	stale, ok := svc.LastKnownUserTransits(user, testDate)
	if !ok {
		t.Fatal("expected last known transits after failed refresh")
	}
	if len(stale.Transits) != 1 || stale.Transits[0].TransitingPlanet != domain.Saturn {
		t.Errorf("unexpected stale transits: %+v", stale.Transits)
	}
}

func TestFailedFirstFetchStoresNothing(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	svc, _ := newTestService(p, testConfig())

	if _, err := svc.GetCachedDailySky(context.Background(), testDate); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := svc.LastKnownDailySky(testDate); ok {
		t.Error("nothing should be cached after a failed fetch")
	}
	if got := svc.Stats().DailySky; got != 0 {
		t.Errorf("daily sky entries = %d, want 0", got)
	}
}

func TestInvalidateUserTransitsOnlyTouchesThatUser(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newTestService(p, testConfig())
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	for _, d := range []time.Time{testDate, testDate.AddDate(0, 0, 1)} {
		if _, err := svc.GetCachedUserTransits(ctx, birth(alice), d); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.GetCachedUserTransits(ctx, birth(bob), testDate); err != nil {
		t.Fatal(err)
	}

	if removed := svc.InvalidateUserTransits(alice); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, ok := svc.LastKnownUserTransits(bob, testDate); !ok {
		t.Error("bob's transits must survive alice's invalidation")
	}

	calls := p.transitCalls.Load()
	if _, err := svc.GetCachedUserTransits(ctx, birth(alice), testDate); err != nil {
		t.Fatal(err)
	}
	if got := p.transitCalls.Load(); got != calls+1 {
		t.Errorf("expected refetch after invalidation, calls %d -> %d", calls, got)
	}
}

func TestInvalidateDailySky(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newTestService(p, testConfig())
	ctx := context.Background()

	_, _ = svc.GetCachedDailySky(ctx, testDate)
	_, _ = svc.GetCachedDailySky(ctx, testDate.AddDate(0, 0, 1))

	if removed := svc.InvalidateDailySky(); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, ok := svc.LastKnownDailySky(testDate); ok {
		t.Error("daily sky should be empty after invalidation")
	}
}

func TestLunarReturnKeyedByUserOnly(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newTestService(p, testConfig())
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.GetCachedLunarReturn(ctx, birth(user), testDate); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetCachedLunarReturn(ctx, birth(user), testDate.AddDate(0, 0, 10)); err != nil {
		t.Fatal(err)
	}
	if got := p.lunarCalls.Load(); got != 1 {
		t.Fatalf("lunar calls = %d, want 1", got)
	}

	if !svc.InvalidateLunarReturn(user) {
		t.Fatal("expected lunar return entry to be removed")
	}
	if svc.InvalidateLunarReturn(user) {
		t.Error("second invalidation must report nothing removed")
	}
}

func TestSolarReturnKeyedByYear(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newTestService(p, testConfig())
	ctx := context.Background()
	user := uuid.New()

	for _, year := range []int{2024, 2024, 2025} {
		if _, err := svc.GetCachedSolarReturn(ctx, birth(user), year); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.solarCalls.Load(); got != 2 {
		t.Fatalf("solar calls = %d, want 2", got)
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	p := &fakeProvider{}
	svc, clock := newTestService(p, testConfig())
	ctx := context.Background()
	user := uuid.New()

	_, _ = svc.GetCachedDailySky(ctx, testDate)
	_, _ = svc.GetCachedUserTransits(ctx, birth(user), testDate)
	_, _ = svc.GetCachedLunarReturn(ctx, birth(user), testDate)

	clock.Advance(25 * time.Hour)

	if removed := svc.Sweep(); removed != 2 {
		t.Fatalf("swept = %d, want 2", removed)
	}
	stats := svc.Stats()
	if stats.DailySky != 0 || stats.UserTransits != 0 || stats.LunarReturn != 1 {
		t.Errorf("unexpected stats after sweep: %+v", stats)
	}
}

func TestReturnedValuesAreCopies(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newTestService(p, testConfig())
	ctx := context.Background()

	sky, err := svc.GetCachedDailySky(ctx, testDate)
	if err != nil {
		t.Fatal(err)
	}
	sky.RetrogradePlanets[0] = domain.Pluto

	again, _ := svc.GetCachedDailySky(ctx, testDate)
	if again.RetrogradePlanets[0] != domain.Mercury {
		t.Errorf("cache entry was mutated through returned value: %v", again.RetrogradePlanets)
	}
}

func TestDateKeyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	late := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)

	if got := DateKey(late, time.UTC); got != "2024-03-15" {
		t.Errorf("utc key = %s", got)
	}
	if got := DateKey(late, loc); got != "2024-03-16" {
		t.Errorf("shifted key = %s", got)
	}
}

func TestConcurrentMissesWithoutDedup(t *testing.T) {
	p := &fakeProvider{block: make(chan struct{})}
	svc, _ := newTestService(p, testConfig())

	const callers = 4
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.GetCachedDailySky(context.Background(), testDate)
		}()
	}

	waitFor(t, func() bool { return p.skyCalls.Load() == callers })
	close(p.block)
	wg.Wait()
}

func TestConcurrentMissesWithDedup(t *testing.T) {
	p := &fakeProvider{block: make(chan struct{})}
	cfg := testConfig()
	cfg.DedupInFlight = true
	svc, _ := newTestService(p, cfg)

	const callers = 4
	var wg sync.WaitGroup
	results := make([]domain.DailySkyData, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.GetCachedDailySky(context.Background(), testDate)
		}(i)
	}

	waitFor(t, func() bool { return p.skyCalls.Load() >= 1 })
	// даём остальным горутинам встать в очередь singleflight
	time.Sleep(50 * time.Millisecond)
	close(p.block)
	wg.Wait()

	if got := p.skyCalls.Load(); got != 1 {
		t.Fatalf("provider calls with dedup = %d, want 1", got)
	}
	for i, r := range results {
		if r.MoonPhase.Name != domain.FullMoon {
			t.Errorf("caller %d got %+v", i, r)
		}
	}
}

func TestFetchTimeoutStoresNothing(t *testing.T) {
	p := &fakeProvider{waitCtx: true}
	cfg := testConfig()
	cfg.FetchTimeout = 20 * time.Millisecond
	svc, _ := newTestService(p, cfg)

	_, err := svc.GetCachedDailySky(context.Background(), testDate)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if got := svc.Stats().DailySky; got != 0 {
		t.Errorf("daily sky entries = %d, want 0", got)
	}
	if _, ok := svc.LastKnownDailySky(testDate); ok {
		t.Error("nothing should be cached after a timed out fetch")
	}
}

func TestFetchTimeoutKeepsExpiredEntry(t *testing.T) {
	p := &fakeProvider{}
	cfg := testConfig()
	cfg.FetchTimeout = 20 * time.Millisecond
	svc, clock := newTestService(p, cfg)
	ctx := context.Background()

	if _, err := svc.GetCachedDailySky(ctx, testDate); err != nil {
		t.Fatal(err)
	}

	clock.Advance(25 * time.Hour)
	p.waitCtx = true

	start := time.Now()
	_, err := svc.GetCachedDailySky(ctx, testDate)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fetch was not bounded by timeout: %v", elapsed)
	}

	stale, ok := svc.LastKnownDailySky(testDate)
	if !ok {
		t.Fatal("expired entry must survive a timed out refresh")
	}
	if stale.MoonPhase.Name != domain.FullMoon {
		t.Errorf("unexpected stale sky: %+v", stale)
	}
	if got := svc.Stats().DailySky; got != 1 {
		t.Errorf("daily sky entries = %d, want 1", got)
	}
}

func TestDedupSurvivesFirstCallerCancel(t *testing.T) {
	p := &fakeProvider{block: make(chan struct{})}
	cfg := testConfig()
	cfg.DedupInFlight = true
	svc, _ := newTestService(p, cfg)

	firstCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.GetCachedDailySky(firstCtx, testDate)
	}()
	waitFor(t, func() bool { return p.skyCalls.Load() >= 1 })

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = svc.GetCachedDailySky(context.Background(), testDate)
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	close(p.block)
	wg.Wait()

	if errs[1] != nil {
		t.Fatalf("second caller got first caller's cancellation: %v", errs[1])
	}
	if got := p.skyCalls.Load(); got != 1 {
		t.Errorf("provider calls = %d, want 1", got)
	}
	if got := svc.Stats().DailySky; got != 1 {
		t.Errorf("daily sky entries = %d, want 1", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
