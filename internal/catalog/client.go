// Package catalog is the HTTP/JSON client for the remote product API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Product is a catalog entry as served by the remote API. Products are
// read-only and never persisted beyond in-memory caches; the wire field
// "thumbnail" carries the image reference.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	Image       string  `json:"thumbnail"`
}

type productsResponse struct {
	Products []Product `json:"products"`
}

// Client talks to the remote product API. Every call is a fresh round trip:
// no retry, no caching, no pagination.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var resp productsResponse
	if err := c.get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// ListCategories fetches the category names.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/products/category-list", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := c.get(ctx, "/products/"+strconv.Itoa(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByCategory fetches the products of one category.
func (c *Client) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	var resp productsResponse
	if err := c.get(ctx, "/products/category/"+url.PathEscape(category), &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
