package services

import (
	"context"
	"errors"
	"testing"

	"github.com/martapp/backend/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogClient struct {
	products   []catalog.Product
	categories []string
	byCategory map[string][]catalog.Product
	err        error

	listCalls     int
	categoryCalls int
}

func (f *fakeCatalogClient) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	f.listCalls++
	return f.products, f.err
}

func (f *fakeCatalogClient) ListCategories(ctx context.Context) ([]string, error) {
	return f.categories, f.err
}

func (f *fakeCatalogClient) GetProduct(ctx context.Context, id int) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, errors.New("no such product")
}

func (f *fakeCatalogClient) ListByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	f.categoryCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byCategory[category], nil
}

func demoClient() *fakeCatalogClient {
	redShoe := catalog.Product{ID: 1, Title: "Red Shoe", Category: "shoes", Price: 49.99}
	blueHat := catalog.Product{ID: 2, Title: "Blue Hat", Category: "hats", Price: 19.5}
	return &fakeCatalogClient{
		products:   []catalog.Product{redShoe, blueHat},
		categories: []string{"shoes", "hats"},
		byCategory: map[string][]catalog.Product{
			"shoes": {redShoe},
			"hats":  {blueHat},
		},
	}
}

func TestFetchProductsCaches(t *testing.T) {
	client := demoClient()
	svc := NewCatalogService(client)

	svc.FetchProducts(context.Background(), false)
	require.Len(t, svc.Products(), 2)
	require.Equal(t, 1, client.listCalls)

	// Cached: a second non-forced fetch is a no-op.
	svc.FetchProducts(context.Background(), false)
	assert.Equal(t, 1, client.listCalls)

	svc.FetchProducts(context.Background(), true)
	assert.Equal(t, 2, client.listCalls)
}

func TestFetchProductsDegradesToEmpty(t *testing.T) {
	client := demoClient()
	client.err = errors.New("network down")
	svc := NewCatalogService(client)

	svc.FetchProducts(context.Background(), false)
	assert.Empty(t, svc.Products())
	// The loading flag is cleared even on failure.
	assert.False(t, svc.Loading())
}

func TestSearchFiltersByTitle(t *testing.T) {
	svc := NewCatalogService(demoClient())
	svc.FetchProducts(context.Background(), false)

	svc.SetSearchQuery("red")
	view := svc.Filtered()
	require.Len(t, view, 1)
	assert.Equal(t, "Red Shoe", view[0].Title)

	svc.SetSearchQuery("RED")
	require.Len(t, svc.Filtered(), 1)

	svc.SetSearchQuery("")
	assert.Len(t, svc.Filtered(), 2)
}

func TestSelectCategoryFetchesRemote(t *testing.T) {
	client := demoClient()
	svc := NewCatalogService(client)
	svc.FetchProducts(context.Background(), false)

	svc.SelectCategory(context.Background(), "Hats")
	view := svc.Filtered()
	require.Len(t, view, 1)
	assert.Equal(t, "Blue Hat", view[0].Title)
	// A concrete category triggers a remote category-scoped fetch.
	assert.Equal(t, 1, client.categoryCalls)

	// "All" lifts the restriction without another remote call.
	svc.SelectCategory(context.Background(), "All")
	assert.Len(t, svc.Filtered(), 2)
	assert.Equal(t, 1, client.categoryCalls)
}

func TestSearchAndCategoryCombine(t *testing.T) {
	svc := NewCatalogService(demoClient())
	svc.FetchProducts(context.Background(), false)

	svc.SetSearchQuery("blue")
	svc.SelectCategory(context.Background(), "All")
	view := svc.Filtered()
	require.Len(t, view, 1)
	assert.Equal(t, "Blue Hat", view[0].Title)

	// A remote category fetch replaces the view wholesale, search included.
	svc.SetSearchQuery("red")
	svc.SelectCategory(context.Background(), "Hats")
	view = svc.Filtered()
	require.Len(t, view, 1)
	assert.Equal(t, "Blue Hat", view[0].Title)
}

func TestFetchCategoriesAddsAllSentinel(t *testing.T) {
	svc := NewCatalogService(demoClient())

	svc.FetchCategories(context.Background(), false)
	assert.Equal(t, []string{"All", "Shoes", "Hats"}, svc.Categories())
}

func TestGetProduct(t *testing.T) {
	svc := NewCatalogService(demoClient())

	product, err := svc.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Blue Hat", product.Title)

	_, err = svc.GetProduct(context.Background(), 99)
	assert.Error(t, err)
}
