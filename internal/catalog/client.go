package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shopfront/internal/domain"
)

// Client consumes the read-only product catalog API. Responses are parsed
// into explicit schemas at this boundary; decimal prices are converted to
// minor units on ingest so nothing downstream handles floats.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError reports a non-success catalog response. Handlers surface it as a
// generic upstream failure; the detail is for logs.
type APIError struct {
	Op         string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog %s: upstream status %d", e.Op, e.StatusCode)
}

// Product is a catalog product with its price normalized to minor units.
type Product struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	UnitPriceCents int64    `json:"unitPriceCents"`
	Category       string   `json:"category,omitempty"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	Images         []string `json:"images,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Stock          int      `json:"stock,omitempty"`
}

// Page is one page of catalog results.
type Page struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Category is a browsable product category.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type productPayload struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating"`
	Stock       int      `json:"stock"`
}

type pagePayload struct {
	Products []productPayload `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*Page, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	return c.fetchPage(ctx, "list products", "/products", q)
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var payload productPayload
	if err := c.get(ctx, "get product", fmt.Sprintf("/products/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	product := toProduct(payload)
	return &product, nil
}

// SearchProducts runs a free-text catalog search.
func (c *Client) SearchProducts(ctx context.Context, query string) (*Page, error) {
	q := url.Values{}
	q.Set("q", query)
	return c.fetchPage(ctx, "search products", "/products/search", q)
}

// ListCategories returns the browsable category list.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var payload []Category
	if err := c.get(ctx, "list categories", "/products/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListByCategory fetches the products of one category.
func (c *Client) ListByCategory(ctx context.Context, slug string) (*Page, error) {
	return c.fetchPage(ctx, "list category", "/products/category/"+url.PathEscape(slug), nil)
}

func (c *Client) fetchPage(ctx context.Context, op, path string, q url.Values) (*Page, error) {
	var payload pagePayload
	if err := c.get(ctx, op, path, q, &payload); err != nil {
		return nil, err
	}
	page := &Page{
		Products: make([]Product, 0, len(payload.Products)),
		Total:    payload.Total,
		Skip:     payload.Skip,
		Limit:    payload.Limit,
	}
	for _, p := range payload.Products {
		page.Products = append(page.Products, toProduct(p))
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Op: op, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("catalog %s: read body: %w", op, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("catalog %s: decode body: %w", op, err)
	}
	return nil
}

func toProduct(p productPayload) Product {
	return Product{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		UnitPriceCents: domain.MinorUnits(p.Price),
		Category:       p.Category,
		Thumbnail:      p.Thumbnail,
		Images:         p.Images,
		Rating:         p.Rating,
		Stock:          p.Stock,
	}
}
