package jet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 50
)

// Stop reasons reported by Paginate.
const (
	StopNoMoreResults = "no_more_results"
	StopMaxPages      = "max_pages"
)

// ErrInvalidPageSize is returned by Paginate when the page size is not
// positive. A zero limit would never produce a short page.
var ErrInvalidPageSize = errors.New("page size must be positive")

// SKUPaginator walks every page of the merchant SKU list.
type SKUPaginator struct {
	lister   SKULister
	logger   *slog.Logger
	pageSize int
	maxPages int
}

// PaginatorOption configures the SKUPaginator.
type PaginatorOption func(*SKUPaginator)

// WithPageSize overrides the default page size.
func WithPageSize(size int) PaginatorOption {
	return func(p *SKUPaginator) {
		p.pageSize = size
	}
}

// WithMaxPages overrides the default max pages.
func WithMaxPages(n int) PaginatorOption {
	return func(p *SKUPaginator) {
		p.maxPages = n
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *SKUPaginator) {
		p.logger = l
	}
}

// NewSKUPaginator creates a new SKUPaginator.
func NewSKUPaginator(lister SKULister, opts ...PaginatorOption) *SKUPaginator {
	p := &SKUPaginator{
		lister:   lister,
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateResult holds the result of a SKU listing walk.
type PaginateResult struct {
	SKUs      []string
	PagesUsed int
	StoppedAt string
}

// Paginate fetches pages until one comes back short or max pages is hit.
func (p *SKUPaginator) Paginate(ctx context.Context) (*PaginateResult, error) {
	if p.pageSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, p.pageSize)
	}

	result := &PaginateResult{}

	for page := range p.maxPages {
		skus, err := p.lister.ListSKUs(ctx, page*p.pageSize, p.pageSize)
		if err != nil {
			return nil, fmt.Errorf("listing page %d: %w", page, err)
		}

		result.PagesUsed++
		result.SKUs = append(result.SKUs, skus...)

		if p.logger != nil {
			p.logger.Debug("listed sku page", "page", page, "count", len(skus))
		}

		if len(skus) < p.pageSize {
			result.StoppedAt = StopNoMoreResults
			return result, nil
		}
	}

	result.StoppedAt = StopMaxPages
	return result, nil
}
