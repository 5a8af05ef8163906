package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"dealerlot/internal/catalog"
	"dealerlot/internal/domain"
	applog "dealerlot/internal/log"
	"dealerlot/internal/repos"
)

var ErrNotFound = errors.New("not found")

const (
	DefaultPageSize = 12
	MaxPageSize     = 60
)

// Snapshot caches the full vehicle list for ttl. Readers share one slice,
// which is never mutated after it is loaded.
type Snapshot struct {
	load func() ([]domain.Vehicle, error)
	ttl  time.Duration
	now  func() time.Time

	mu       sync.RWMutex
	records  []domain.Vehicle
	loadedAt time.Time
	valid    bool
}

func NewSnapshot(vehicles *repos.VehicleRepo, ttl time.Duration) *Snapshot {
	return &Snapshot{load: vehicles.ListAll, ttl: ttl, now: time.Now}
}

func (s *Snapshot) fresh() bool {
	return s.valid && s.ttl > 0 && s.now().Sub(s.loadedAt) < s.ttl
}

func (s *Snapshot) Records(ctx context.Context) ([]domain.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	if s.fresh() {
		recs := s.records
		s.mu.RUnlock()
		return recs, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fresh() {
		return s.records, nil
	}
	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	s.records, s.loadedAt, s.valid = recs, s.now(), true
	return recs, nil
}

// Reload replaces the cached records unconditionally.
func (s *Snapshot) Reload(ctx context.Context) ([]domain.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	s.records, s.loadedAt, s.valid = recs, s.now(), true
	return recs, nil
}

// Invalidate forces the next read to hit the database.
func (s *Snapshot) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}

// Page is one page of catalog results plus everything the listing view
// needs to render its filter bar.
type Page struct {
	Vehicles []domain.Vehicle     `json:"vehicles"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	Pages    int                  `json:"pages"`
	PageSize int                  `json:"pageSize"`
	Chips    []domain.FilterChip  `json:"chips"`
	Facets   catalog.FacetSummary `json:"facets"`
	Spec     domain.FilterSpec    `json:"-"`
}

type CatalogService struct {
	Vehicles *repos.VehicleRepo
	Snap     *Snapshot
	Now      func() time.Time
}

func NewCatalogService(vehicles *repos.VehicleRepo, snap *Snapshot) *CatalogService {
	return &CatalogService{Vehicles: vehicles, Snap: snap, Now: time.Now}
}

// Browse filters and sorts the snapshot and cuts out the requested page.
// Out-of-range pages are clamped.
func (s *CatalogService) Browse(ctx context.Context, spec domain.FilterSpec, page, pageSize int) (Page, error) {
	records, err := s.Snap.Records(ctx)
	if err != nil {
		return Page{}, err
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	matched := catalog.Sort(catalog.Filter(records, spec), spec.SortBy)
	total := len(matched)
	// an empty result is still one (empty) page
	pages := max(1, (total+pageSize-1)/pageSize)
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	end := min(offset+pageSize, total)
	var items []domain.Vehicle
	if offset < end {
		items = matched[offset:end]
	}
	if items == nil {
		items = []domain.Vehicle{}
	}

	return Page{
		Vehicles: items,
		Total:    total,
		Page:     page,
		Pages:    pages,
		PageSize: pageSize,
		Chips:    catalog.Summarize(spec, s.Now().Year()),
		Facets:   catalog.Facets(records),
		Spec:     spec,
	}, nil
}

func (s *CatalogService) Facets(ctx context.Context) (catalog.FacetSummary, error) {
	records, err := s.Snap.Records(ctx)
	if err != nil {
		return catalog.FacetSummary{}, err
	}
	return catalog.Facets(records), nil
}

// Vehicle reads through to the database so a detail page never shows a
// listing that was just deleted.
func (s *CatalogService) Vehicle(id string) (domain.Vehicle, error) {
	v, err := s.Vehicles.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, ErrNotFound
	}
	return v, err
}

// Featured returns up to limit featured listings, newest first.
func (s *CatalogService) Featured(ctx context.Context, limit int) ([]domain.Vehicle, error) {
	records, err := s.Snap.Records(ctx)
	if err != nil {
		return nil, err
	}
	out := catalog.Sort(catalog.Filter(records, domain.FilterSpec{Featured: true}), domain.DefaultSort)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Refresh reloads the snapshot and reports how many listings it holds.
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	recs, err := s.Snap.Reload(ctx)
	return len(recs), err
}

func (s *CatalogService) Invalidate() {
	s.Snap.Invalidate()
	applog.Event("catalog.invalidate", nil, nil)
}
