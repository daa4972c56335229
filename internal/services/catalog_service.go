package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/martapp/backend/internal/catalog"
	"github.com/martapp/backend/internal/stream"
)

// AllCategories is the synthetic category meaning "no filter".
const AllCategories = "All"

// CatalogClient is the remote product API surface the catalog flow needs.
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id int) (*catalog.Product, error)
	ListByCategory(ctx context.Context, category string) ([]catalog.Product, error)
}

// CatalogService caches the remote product list and maintains a filtered view
// driven by the search query and the selected category. Search filters the
// cached list client-side; selecting a concrete category fetches that
// category from the remote API and replaces the view.
type CatalogService struct {
	client CatalogClient

	mu       sync.Mutex
	all      []catalog.Product
	query    string
	category string

	filtered   *stream.State[[]catalog.Product]
	categories *stream.State[[]string]
	loading    *stream.State[bool]
}

func NewCatalogService(client CatalogClient) *CatalogService {
	return &CatalogService{
		client:     client,
		category:   AllCategories,
		filtered:   stream.NewState[[]catalog.Product](nil),
		categories: stream.NewState[[]string](nil),
		loading:    stream.NewState(false),
	}
}

// FetchProducts loads the catalog unless it is already cached and force is
// false. Remote failure degrades to an empty catalog; the loading flag is
// cleared no matter what.
func (s *CatalogService) FetchProducts(ctx context.Context, force bool) {
	s.mu.Lock()
	if !force && len(s.all) > 0 {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.loading.Set(true)
	defer s.loading.Set(false)

	products, err := s.client.ListProducts(ctx)
	if err != nil {
		slog.Error("failed to fetch products", "error", err)
		products = nil
	}

	s.mu.Lock()
	s.all = products
	view := s.applyFiltersLocked()
	s.mu.Unlock()

	s.filtered.Set(view)
}

// FetchCategories loads the category names unless cached, capitalizes them
// and prepends the synthetic "All" entry.
func (s *CatalogService) FetchCategories(ctx context.Context, force bool) {
	if !force && len(s.categories.Get()) > 0 {
		return
	}

	s.loading.Set(true)
	defer s.loading.Set(false)

	names, err := s.client.ListCategories(ctx)
	if err != nil {
		slog.Error("failed to fetch categories", "error", err)
		names = nil
	}

	list := make([]string, 0, len(names)+1)
	list = append(list, AllCategories)
	for _, name := range names {
		list = append(list, capitalize(name))
	}
	s.categories.Set(list)
}

// SetSearchQuery recomputes the filtered view from the cached catalog.
func (s *CatalogService) SetSearchQuery(query string) {
	s.mu.Lock()
	s.query = query
	view := s.applyFiltersLocked()
	s.mu.Unlock()

	s.filtered.Set(view)
}

// SelectCategory recomputes the view client-side, then, for a concrete
// category, replaces it with a remote category-scoped fetch.
func (s *CatalogService) SelectCategory(ctx context.Context, category string) {
	s.mu.Lock()
	s.category = category
	view := s.applyFiltersLocked()
	s.mu.Unlock()

	s.filtered.Set(view)

	if strings.EqualFold(category, AllCategories) {
		return
	}

	s.loading.Set(true)
	defer s.loading.Set(false)

	products, err := s.client.ListByCategory(ctx, strings.ToLower(category))
	if err != nil {
		slog.Error("failed to fetch category", "category", category, "error", err)
		products = nil
	}
	s.filtered.Set(products)
}

// GetProduct fetches a single product from the remote API.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*catalog.Product, error) {
	product, err := s.client.GetProduct(ctx, id)
	if err != nil {
		slog.Error("failed to fetch product", "product_id", id, "error", err)
		return nil, err
	}
	return product, nil
}

// applyFiltersLocked computes the view from the cached list: case-insensitive
// substring match on the title and an exact category match, where "All"
// matches everything. Caller holds s.mu.
func (s *CatalogService) applyFiltersLocked() []catalog.Product {
	query := strings.ToLower(s.query)
	view := make([]catalog.Product, 0, len(s.all))
	for _, p := range s.all {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		if !strings.EqualFold(s.category, AllCategories) && !strings.EqualFold(p.Category, s.category) {
			continue
		}
		view = append(view, p)
	}
	return view
}

// Products returns the unfiltered cached catalog.
func (s *CatalogService) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all
}

// Filtered returns the current filtered view.
func (s *CatalogService) Filtered() []catalog.Product {
	return s.filtered.Get()
}

func (s *CatalogService) WatchFiltered(ctx context.Context) <-chan []catalog.Product {
	return s.filtered.Watch(ctx)
}

// Categories returns the cached category list including the "All" sentinel.
func (s *CatalogService) Categories() []string {
	return s.categories.Get()
}

// Loading reports whether a remote fetch is in flight.
func (s *CatalogService) Loading() bool {
	return s.loading.Get()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
