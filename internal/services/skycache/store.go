package skycache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry запись кэша. Данные принадлежат store, наружу отдаются копии.
type entry[T any] struct {
	data      T
	expiresAt time.Time
}

// store один уровень кэша со своим TTL.
// Просроченная запись остаётся на месте до успешного обновления или sweep,
// чтобы при ошибке провайдера было что отдать как последнее известное значение.
type store[T any] struct {
	name    string
	ttl     time.Duration
	now     func() time.Time
	clone   func(T) T
	flights *singleflight.Group // nil → конкурентные промахи идут в провайдер независимо

	mu      sync.RWMutex
	entries map[string]entry[T]
}

func newStore[T any](name string, ttl time.Duration, now func() time.Time, clone func(T) T, dedup bool) *store[T] {
	s := &store[T]{
		name:    name,
		ttl:     ttl,
		now:     now,
		clone:   clone,
		entries: make(map[string]entry[T]),
	}
	if dedup {
		s.flights = &singleflight.Group{}
	}
	return s
}

// get возвращает данные, только если запись жива (now < expiresAt)
func (s *store[T]) get(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || !s.now().Before(e.expiresAt) {
		var zero T
		return zero, false
	}
	return s.clone(e.data), true
}

// peek возвращает запись без проверки срока
func (s *store[T]) peek(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	return s.clone(e.data), true
}

// set последняя запись побеждает
func (s *store[T]) set(key string, data T) {
	s.mu.Lock()
	s.entries[key] = entry[T]{data: s.clone(data), expiresAt: s.now().Add(s.ttl)}
	size := len(s.entries)
	s.mu.Unlock()

	cacheEntries.WithLabelValues(s.name).Set(float64(size))
}

// getOrFetch отдаёт живую запись или идёт в провайдер и сохраняет результат.
// Ошибка провайдера возвращается как есть, прежняя запись не трогается.
func (s *store[T]) getOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	if data, ok := s.get(key); ok {
		cacheRequests.WithLabelValues(s.name, resultHit).Inc()
		return data, nil
	}
	cacheRequests.WithLabelValues(s.name, resultMiss).Inc()

	if s.flights == nil {
		return s.fetchAndStore(ctx, key, fetch)
	}

	// общий запрос не должен отменяться вместе с контекстом первого вызывающего,
	// его ограничивает только FetchTimeout внутри fetch
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.flights.Do(key, func() (interface{}, error) {
		return s.fetchAndStore(shared, key, fetch)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return s.clone(v.(T)), nil
}

func (s *store[T]) fetchAndStore(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	data, err := fetch(ctx)
	upstreamDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamFetches.WithLabelValues(s.name, statusError).Inc()
		var zero T
		return zero, err
	}
	upstreamFetches.WithLabelValues(s.name, statusOK).Inc()

	s.set(key, data)
	return s.clone(data), nil
}

// deleteWhere удаляет записи, подходящие под условие, и возвращает их число
func (s *store[T]) deleteWhere(reason string, match func(key string, e entry[T]) bool) int {
	s.mu.Lock()
	removed := 0
	for key, e := range s.entries {
		if match(key, e) {
			delete(s.entries, key)
			removed++
		}
	}
	size := len(s.entries)
	s.mu.Unlock()

	if removed > 0 {
		cacheEvictions.WithLabelValues(s.name, reason).Add(float64(removed))
	}
	cacheEntries.WithLabelValues(s.name).Set(float64(size))
	return removed
}

// sweep удаляет все просроченные записи
func (s *store[T]) sweep() int {
	now := s.now()
	return s.deleteWhere(reasonSweep, func(_ string, e entry[T]) bool {
		return !now.Before(e.expiresAt)
	})
}

func (s *store[T]) clear() int {
	return s.deleteWhere(reasonInvalidate, func(string, entry[T]) bool { return true })
}

// deletePrefix линейный проход по всем ключам
func (s *store[T]) deletePrefix(prefix string) int {
	return s.deleteWhere(reasonInvalidate, func(key string, _ entry[T]) bool {
		return strings.HasPrefix(key, prefix)
	})
}

func (s *store[T]) delete(key string) bool {
	return s.deleteWhere(reasonInvalidate, func(k string, _ entry[T]) bool { return k == key }) > 0
}

func (s *store[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
