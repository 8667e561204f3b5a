package suppliers

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/vendata/vendata/internal/taxid"
)

// Service orchestrates tax-id validation, persistence and listing-cache
// maintenance for the supplier operations.
type Service struct {
	repo   Repository
	cache  ListingCache
	taxIDs *taxid.Validator
	group  singleflight.Group
}

// NewService constructs a Service.
func NewService(repo Repository, cache ListingCache, taxIDs *taxid.Validator) *Service {
	return &Service{repo: repo, cache: cache, taxIDs: taxIDs}
}

// List returns one listing page, served from the cache when possible.
// Concurrent misses for the same key collapse into a single repository
// query.
func (s *Service) List(ctx context.Context, q ListQuery) (*Page, error) {
	q = q.Normalize()
	key := q.CacheKey()

	if page, ok := s.cache.Get(ctx, key); ok {
		return page, nil
	}

	result := s.group.DoChan(key, func() (interface{}, error) {
		items, total, err := s.repo.List(ctx, q)
		if err != nil {
			return nil, err
		}
		page := NewPage(items, total, q.Page)
		s.cache.Set(ctx, key, page)
		return page, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Page), nil
	}
}

// Create validates the tax id, persists the record and clears the
// listing cache before returning.
func (s *Service) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	if err := s.taxIDs.Validate(ctx, supplier.TaxID); err != nil {
		return Supplier{}, err
	}
	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return Supplier{}, err
	}
	if err := s.cache.Clear(ctx); err != nil {
		return Supplier{}, err
	}
	return created, nil
}

// Get fetches a single supplier by id.
func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	return s.repo.Get(ctx, id)
}

// Update re-validates the possibly changed tax id, persists the full
// field set and clears the listing cache before returning.
func (s *Service) Update(ctx context.Context, id int64, supplier Supplier) (Supplier, error) {
	if err := s.taxIDs.Validate(ctx, supplier.TaxID); err != nil {
		return Supplier{}, err
	}
	updated, err := s.repo.Update(ctx, id, supplier)
	if err != nil {
		return Supplier{}, err
	}
	if err := s.cache.Clear(ctx); err != nil {
		return Supplier{}, err
	}
	return updated, nil
}

// Delete removes the supplier and clears the listing cache before
// returning.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.Clear(ctx)
}
