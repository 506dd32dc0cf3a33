package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"pixel-trivia-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches quiz content from a backing store (static dataset,
// Postgres, etc).
type CatalogLoader interface {
	LoadCategory(ctx context.Context, categoryID string) (domain.Category, error)
	LoadQuestions(ctx context.Context, categoryID string) ([]domain.Question, error)
	LoadCategories(ctx context.Context) ([]domain.Category, error)
}

// CatalogRepository caches category content with TTL to avoid repeated
// loader hits. Content is immutable for the cache lifetime, so staleness is
// bounded only by the TTL.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu      sync.RWMutex
	cache   map[string]cachedCategory
	listing *cachedListing
}

type cachedCategory struct {
	category  domain.Category
	questions []domain.Question
	expiresAt time.Time
}

type cachedListing struct {
	categories []domain.Category
	expiresAt  time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCategory),
	}
}

func (r *CatalogRepository) GetCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	entry, err := r.load(ctx, categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	return entry.category, nil
}

func (r *CatalogRepository) QuestionsByCategory(ctx context.Context, categoryID string) ([]domain.Question, error) {
	entry, err := r.load(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return entry.questions, nil
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	now := r.clock()

	r.mu.RLock()
	if r.listing != nil && r.listing.expiresAt.After(now) {
		categories := r.listing.categories
		r.mu.RUnlock()
		return categories, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("__listing__", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.listing != nil && r.listing.expiresAt.After(now) {
			categories := r.listing.categories
			r.mu.RUnlock()
			return categories, nil
		}
		r.mu.RUnlock()

		categories, err := r.loader.LoadCategories(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.listing = &cachedListing{
			categories: categories,
			expiresAt:  now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (r *CatalogRepository) load(ctx context.Context, categoryID string) (cachedCategory, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[categoryID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(categoryID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[categoryID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry, nil
		}
		r.mu.RUnlock()

		category, err := r.loader.LoadCategory(ctx, categoryID)
		if err != nil {
			return cachedCategory{}, err
		}
		questions, err := r.loader.LoadQuestions(ctx, categoryID)
		if err != nil {
			return cachedCategory{}, err
		}

		entry := cachedCategory{
			category:  category,
			questions: questions,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Lock()
		r.cache[categoryID] = entry
		r.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return cachedCategory{}, err
	}
	return result.(cachedCategory), nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
