package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// DefaultPageSize matches the storefront product grid.
const DefaultPageSize = 12

// QueryProducts filters, sorts and paginates a product collection.
// Filters combine with logical AND, sorts are stable, pages are
// 1-based. A page beyond range yields an empty slice, never an error.
//
// Usage contract: callers must reset their current page to 1 whenever
// any filter or sort input changes, otherwise the view may land beyond
// the narrowed range.
func QueryProducts(
	ps []domain.Product,
	f domain.FilterSpec,
	sort domain.SortOption,
	page, pageSize int,
) (pageOf []domain.Product, totalPages int) {
	result := filterProducts(ps, f)
	sortProducts(result, sort)
	return paginate(result, page, pageSize)
}

func filterProducts(
	ps []domain.Product, f domain.FilterSpec,
) []domain.Product {
	result := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.MinRating != nil && p.Rating < *f.MinRating {
			continue
		}
		if f.InStock && !p.InStock() {
			continue
		}
		result = append(result, p)
	}
	return result
}

func sortProducts(ps []domain.Product, opt domain.SortOption) {
	switch opt {
	case domain.SortPriceLow:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceHigh:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case domain.SortNewest:
		// higher ids are assumed newer, a proxy for recency
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return strings.Compare(b.ProductID, a.ProductID)
		})
	case domain.SortRating:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	default:
		// relevance keeps the collection order
	}
}

func paginate(
	ps []domain.Product, page, pageSize int,
) ([]domain.Product, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(ps) + pageSize - 1) / pageSize

	lo := (page - 1) * pageSize
	if lo >= len(ps) {
		return []domain.Product{}, totalPages
	}
	hi := min(lo+pageSize, len(ps))
	return ps[lo:hi:hi], totalPages
}

// A BrowseQuery selects the product source and the view over it.
// Search takes precedence over Category when both are set.
type BrowseQuery struct {
	Category string
	Search   string
	Filter   domain.FilterSpec
	Sort     domain.SortOption
	Page     int
	PageSize int
}

type BrowseResult struct {
	Products   []domain.Product
	TotalPages int
}

type CatalogService struct {
	provider port.CatalogProvider
}

func NewCatalogService(provider port.CatalogProvider) CatalogService {
	return CatalogService{provider}
}

// Browse loads products for the query and runs them through the
// filter/sort/paginate pipeline.
func (s CatalogService) Browse(
	ctx context.Context, q BrowseQuery,
) (BrowseResult, error) {
	const op = "CatalogService.Browse"

	if err := ctx.Err(); err != nil {
		return BrowseResult{}, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.loadProducts(ctx, q)
	if err != nil {
		return BrowseResult{}, fmt.Errorf("%s: %w", op, err)
	}

	pageOf, totalPages := QueryProducts(ps, q.Filter, q.Sort, q.Page, q.PageSize)
	return BrowseResult{Products: pageOf, TotalPages: totalPages}, nil
}

func (s CatalogService) loadProducts(
	ctx context.Context, q BrowseQuery,
) ([]domain.Product, error) {
	switch {
	case q.Search != "":
		return s.provider.SearchProducts(ctx, q.Search)
	case q.Category != "":
		return s.provider.ProductsByCategory(ctx, q.Category)
	default:
		return s.provider.Products(ctx)
	}
}

func (s CatalogService) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, bool, error) {
	const op = "CatalogService.ProductBySlug"

	p, ok, err := s.provider.ProductBySlug(ctx, slug)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return p, ok, nil
}

func (s CatalogService) Categories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "CatalogService.Categories"

	cs, err := s.provider.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}
