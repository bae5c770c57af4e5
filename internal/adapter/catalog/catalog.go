// Package catalog provides the data-access tiers for product data:
// a primary SQL-backed repository and a static bundled dataset used
// when the backend is unreachable.
package catalog

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*Provider)(nil)

// Provider composes the primary and fallback tiers. Every read tries
// the primary first, a primary failure is logged at this boundary and
// answered from the fallback instead of surfacing to callers.
//
// An absent result from a reachable primary is not a failure and does
// not engage the fallback.
type Provider struct {
	primary  port.CatalogProvider
	fallback port.CatalogProvider
}

func NewProvider(primary, fallback port.CatalogProvider) Provider {
	return Provider{primary: primary, fallback: fallback}
}

func (p Provider) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "Provider.Products"

	ps, err := p.primary.Products(ctx)
	if err != nil {
		p.logFallback(op, err)
		return p.fallback.Products(ctx)
	}
	return ps, nil
}

func (p Provider) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, bool, error) {
	const op = "Provider.ProductBySlug"

	product, ok, err := p.primary.ProductBySlug(ctx, slug)
	if err != nil {
		p.logFallback(op, err)
		return p.fallback.ProductBySlug(ctx, slug)
	}
	return product, ok, nil
}

func (p Provider) ProductsByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	const op = "Provider.ProductsByCategory"

	ps, err := p.primary.ProductsByCategory(ctx, category)
	if err != nil {
		p.logFallback(op, err)
		return p.fallback.ProductsByCategory(ctx, category)
	}
	return ps, nil
}

func (p Provider) SearchProducts(
	ctx context.Context, query string,
) ([]domain.Product, error) {
	const op = "Provider.SearchProducts"

	ps, err := p.primary.SearchProducts(ctx, query)
	if err != nil {
		p.logFallback(op, err)
		return p.fallback.SearchProducts(ctx, query)
	}
	return ps, nil
}

func (p Provider) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "Provider.Categories"

	cs, err := p.primary.Categories(ctx)
	if err != nil {
		p.logFallback(op, err)
		return p.fallback.Categories(ctx)
	}
	return cs, nil
}

func (p Provider) logFallback(op string, err error) {
	slog.Warn("primary catalog unavailable, serving fallback dataset",
		"op", op, "err", err)
}
