package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-contest-service/internal/app"
)

const listKey = "list"

// CachedRegistry fronts a slower registry (e.g., Postgres) and caches the id
// listing with a TTL. Concurrent misses share one backend call.
type CachedRegistry struct {
	backend app.Registry
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group
	rnd     *rand.Rand

	mu        sync.Mutex
	ids       []string
	expiresAt time.Time
	// generation advances on every Add; listings loaded under an older
	// generation are returned to their callers but never cached.
	generation uint64
}

func NewCachedRegistry(backend app.Registry, ttl time.Duration) *CachedRegistry {
	return &CachedRegistry{
		backend: backend,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add writes through and drops the cached listing.
func (r *CachedRegistry) Add(ctx context.Context, quizID string) error {
	if err := r.backend.Add(ctx, quizID); err != nil {
		return err
	}
	r.mu.Lock()
	r.ids = nil
	r.expiresAt = time.Time{}
	r.generation++
	r.mu.Unlock()
	r.sf.Forget(listKey)
	return nil
}

func (r *CachedRegistry) Contains(ctx context.Context, quizID string) (bool, error) {
	ids, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == quizID {
			return true, nil
		}
	}
	return false, nil
}

func (r *CachedRegistry) Count(ctx context.Context) (int, error) {
	ids, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (r *CachedRegistry) List(ctx context.Context) ([]string, error) {
	if ids, ok := r.cached(); ok {
		return ids, nil
	}

	result, err, _ := r.sf.Do(listKey, func() (interface{}, error) {
		if ids, ok := r.cached(); ok {
			return ids, nil
		}
		r.mu.Lock()
		gen := r.generation
		r.mu.Unlock()

		ids, err := r.backend.List(ctx)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		if gen == r.generation {
			r.ids = append([]string{}, ids...)
			r.expiresAt = r.clock().Add(r.ttlWithJitterLocked())
		}
		r.mu.Unlock()
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), result.([]string)...), nil
}

func (r *CachedRegistry) cached() ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ids == nil || !r.expiresAt.After(r.clock()) {
		return nil, false
	}
	return append([]string(nil), r.ids...), true
}

// ttlWithJitterLocked must be called with mu held; rnd is not safe for concurrent use.
func (r *CachedRegistry) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
