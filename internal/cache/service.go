// Package cache is a read-through cache whose entries carry tags.
// Invalidating a tag removes every entry stored under it before
// Invalidate returns.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/viccon/sturdyc"
	"golang.org/x/sync/singleflight"

	"kinkatsu/workout-log/internal/observability"
)

// Service stores values in a sturdyc client and keeps a tag registry
// beside it. Every stored key is registered under all of its tags; the
// store and the registry only change together, under mu.
type Service struct {
	client *sturdyc.Client[any]

	mu        sync.Mutex
	keysByTag map[string]map[string]struct{}
	tagsByKey map[string][]string
	// generations counts invalidations per tag while computes are in
	// flight. It is reset whenever inflight drops to zero.
	generations map[string]uint64
	inflight    int

	flights singleflight.Group
}

// New creates a Service. Early refreshes are never enabled: an entry is
// either fresh or gone.
func New(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var opts []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}
	client := sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage, opts...)

	return &Service{
		client:      client,
		keysByTag:   make(map[string]map[string]struct{}),
		tagsByKey:   make(map[string][]string),
		generations: make(map[string]uint64),
	}, nil
}

// GetOrCompute returns the value cached under key, or calls compute, caches
// its result under key with tags, and returns it. Errors from compute are
// returned and never cached. Concurrent misses for the same key share one
// compute call.
func GetOrCompute[T any](ctx context.Context, s *Service, key string, tags []string, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := s.lookup(key); ok {
		if typed, ok := v.(T); ok {
			observability.RecordCacheHit()
			return typed, nil
		}
	}
	observability.RecordCacheMiss()

	gen := s.begin(tags)
	defer s.end()

	flightKey := key + "@" + strconv.FormatUint(gen, 10)
	v, err, _ := s.flights.Do(flightKey, func() (any, error) {
		val, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		s.store(key, tags, gen, val)
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok && v != nil {
		return zero, fmt.Errorf("cache: value under %q has type %T", key, v)
	}
	return typed, nil
}

// Invalidate removes every entry registered under any of tags. When it
// returns, no later read can observe those entries.
func (s *Service) Invalidate(_ context.Context, tags ...string) {
	s.mu.Lock()
	removed := 0
	for _, tag := range tags {
		if s.inflight > 0 {
			s.generations[tag]++
		}
		for key := range s.keysByTag[tag] {
			s.client.Delete(key)
			s.unregisterLocked(key)
			removed++
		}
	}
	s.mu.Unlock()
	observability.RecordInvalidation(removed)
}

// Len returns the number of registered keys.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tagsByKey)
}

func (s *Service) lookup(key string) (any, bool) {
	if v, ok := s.client.Get(key); ok {
		return v, true
	}
	// The entry expired or was evicted by sturdyc; drop its registration
	// unless it was stored again meanwhile.
	s.mu.Lock()
	if _, registered := s.tagsByKey[key]; registered {
		if _, ok := s.client.Get(key); !ok {
			s.unregisterLocked(key)
		}
	}
	s.mu.Unlock()
	return nil, false
}

// begin snapshots the invalidation generation of tags for a compute that
// is about to start.
func (s *Service) begin(tags []string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	return s.generationLocked(tags)
}

func (s *Service) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 && len(s.generations) > 0 {
		s.generations = make(map[string]uint64)
	}
}

func (s *Service) generationLocked(tags []string) uint64 {
	var sum uint64
	for _, tag := range tags {
		sum += s.generations[tag]
	}
	return sum
}

// store caches val unless one of its tags was invalidated after gen was
// taken; such a value may predate the write that caused the invalidation.
func (s *Service) store(key string, tags []string, gen uint64, val any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generationLocked(tags) != gen {
		observability.RecordDiscardedCompute()
		return
	}
	s.client.Set(key, val)
	s.unregisterLocked(key)
	for _, tag := range tags {
		keys, ok := s.keysByTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.keysByTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
	s.tagsByKey[key] = append([]string(nil), tags...)
}

func (s *Service) unregisterLocked(key string) {
	for _, tag := range s.tagsByKey[key] {
		keys := s.keysByTag[tag]
		delete(keys, key)
		if len(keys) == 0 {
			delete(s.keysByTag, tag)
		}
	}
	delete(s.tagsByKey, key)
}
