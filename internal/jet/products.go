package jet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/jet-merchant-client/pkg/types"
)

const merchantSKUsPath = "/merchant-skus"

// SKULister lists merchant SKUs one page at a time.
type SKULister interface {
	ListSKUs(ctx context.Context, offset, limit int) ([]string, error)
}

type skuListResponse struct {
	SKUURLs []string `json:"sku_urls"`
}

func skuPath(sku string, parts ...string) string {
	p := merchantSKUsPath + "/" + url.PathEscape(sku)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// GetProduct fetches the product record for a merchant SKU.
func (c *Client) GetProduct(ctx context.Context, sku string) (*domain.Product, error) {
	resp, err := c.Get(ctx, skuPath(sku), nil)
	if err != nil {
		return nil, fmt.Errorf("getting sku %s: %w", sku, err)
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("getting sku %s: %w", sku, err)
	}

	var p domain.Product
	if err := resp.Decode(&p); err != nil {
		return nil, fmt.Errorf("getting sku %s: %w", sku, err)
	}
	if p.SKU == "" {
		p.SKU = sku
	}
	return &p, nil
}

// PutProduct validates p and uploads it under its resolved SKU.
func (c *Client) PutProduct(ctx context.Context, p *domain.Product) error {
	sku, err := p.ResolveSKU()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validating sku %s: %w", sku, err)
	}
	return c.putJSON(ctx, skuPath(sku), p)
}

// PutPrice updates the price of a merchant SKU.
func (c *Client) PutPrice(ctx context.Context, sku string, price domain.Price) error {
	if err := price.Validate(); err != nil {
		return fmt.Errorf("validating price for sku %s: %w", sku, err)
	}
	return c.putJSON(ctx, skuPath(sku, "price"), price)
}

// PutInventory updates the inventory of a merchant SKU.
func (c *Client) PutInventory(ctx context.Context, sku string, inv domain.Inventory) error {
	if err := inv.Validate(); err != nil {
		return fmt.Errorf("validating inventory for sku %s: %w", sku, err)
	}
	return c.putJSON(ctx, skuPath(sku, "inventory"), inv)
}

// PutImages updates the images of a merchant SKU.
func (c *Client) PutImages(ctx context.Context, sku string, images domain.Images) error {
	return c.putJSON(ctx, skuPath(sku, "image"), images)
}

// ListSKUs returns one page of merchant SKUs, reduced to the SKU itself.
func (c *Client) ListSKUs(ctx context.Context, offset, limit int) ([]string, error) {
	urls, err := c.ListSKUURLs(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return SKUsFromURLs(urls, false), nil
}

// ListSKUURLs returns one page of merchant SKU paths as the API reports them.
func (c *Client) ListSKUURLs(ctx context.Context, offset, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.Get(ctx, merchantSKUsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing skus: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("listing skus: %w", err)
	}

	var list skuListResponse
	if err := resp.Decode(&list); err != nil {
		return nil, fmt.Errorf("listing skus: %w", err)
	}
	return list.SKUURLs, nil
}

// SKUsFromURLs reduces "merchant-skus/{sku}" paths to the trailing segment
// unless includePath is set.
func SKUsFromURLs(urls []string, includePath bool) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if includePath {
			out = append(out, u)
			continue
		}
		trimmed := strings.TrimRight(u, "/")
		if i := strings.LastIndex(trimmed, "/"); i >= 0 {
			trimmed = trimmed[i+1:]
		}
		if s, err := url.PathUnescape(trimmed); err == nil {
			trimmed = s
		}
		out = append(out, trimmed)
	}
	return out
}

func (c *Client) putJSON(ctx context.Context, path string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	resp, err := c.Put(ctx, path, body, nil)
	if err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return nil
}
