package service_test

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ProductID: "p1", Price: 25, Rating: 4.5},
		{ProductID: "p2", Price: 10, Rating: 3.0},
		{ProductID: "p3", Price: 70, Rating: 4.8,
			Variants: []domain.Variant{{VariantID: "v1", Stock: 0}}},
		{ProductID: "p4", Price: 40, Rating: 2.5,
			Variants: []domain.Variant{
				{VariantID: "v1", Stock: 0},
				{VariantID: "v2", Stock: 3},
			}},
		{ProductID: "p5", Price: 10, Rating: 5.0},
	}
}

func ids(ps []domain.Product) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.ProductID)
	}
	return out
}

func TestQueryProductsFilters(t *testing.T) {
	t.Run("PriceBoundsInclusive", func(t *testing.T) {
		got, _ := service.QueryProducts(
			catalogFixture(),
			domain.FilterSpec{MinPrice: ptr(10), MaxPrice: ptr(40)},
			domain.SortRelevance, 1, 12,
		)

		for _, p := range got {
			assert.GreaterOrEqual(t, p.Price, 10.0)
			assert.LessOrEqual(t, p.Price, 40.0)
		}
		assert.Equal(t, []string{"p1", "p2", "p4", "p5"}, ids(got))
	})

	t.Run("MinRating", func(t *testing.T) {
		got, _ := service.QueryProducts(
			catalogFixture(),
			domain.FilterSpec{MinRating: ptr(4.5)},
			domain.SortRelevance, 1, 12,
		)

		assert.Equal(t, []string{"p1", "p3", "p5"}, ids(got))
	})

	t.Run("InStock", func(t *testing.T) {
		got, _ := service.QueryProducts(
			catalogFixture(),
			domain.FilterSpec{InStock: true},
			domain.SortRelevance, 1, 12,
		)

		// p3 has a single exhausted variant, everything else passes
		assert.Equal(t, []string{"p1", "p2", "p4", "p5"}, ids(got))
	})

	t.Run("FiltersCombineWithAND", func(t *testing.T) {
		got, _ := service.QueryProducts(
			catalogFixture(),
			domain.FilterSpec{MinPrice: ptr(20), MinRating: ptr(4.0), InStock: true},
			domain.SortRelevance, 1, 12,
		)

		assert.Equal(t, []string{"p1"}, ids(got))
	})

	t.Run("RelevancePreservesInputOrder", func(t *testing.T) {
		in := catalogFixture()
		got, _ := service.QueryProducts(
			in, domain.FilterSpec{}, domain.SortRelevance, 1, 12,
		)

		assert.Equal(t, ids(in), ids(got))
	})
}

func TestQueryProductsSort(t *testing.T) {
	t.Run("PriceLowAscending", func(t *testing.T) {
		got, _ := service.QueryProducts(
			catalogFixture(), domain.FilterSpec{}, domain.SortPriceLow, 1, 12,
		)

		assert.Equal(t, []string{"p2", "p5", "p1", "p4", "p3"}, ids(got))
	})

	t.Run("PriceHighIsReversedForDistinctPrices", func(t *testing.T) {
		in := []domain.Product{
			{ProductID: "a", Price: 5},
			{ProductID: "b", Price: 50},
			{ProductID: "c", Price: 20},
		}

		low, _ := service.QueryProducts(
			in, domain.FilterSpec{}, domain.SortPriceLow, 1, 12,
		)
		high, _ := service.QueryProducts(
			in, domain.FilterSpec{}, domain.SortPriceHigh, 1, 12,
		)

		lowIDs := ids(low)
		slices.Reverse(lowIDs)
		assert.Equal(t, lowIDs, ids(high))
	})

	t.Run("StableOnEqualKeys", func(t *testing.T) {
		// p2 and p5 share the lowest price, relative order must hold
		got, _ := service.QueryProducts(
			catalogFixture(), domain.FilterSpec{}, domain.SortPriceLow, 1, 12,
		)

		assert.Equal(t, "p2", got[0].ProductID)
		assert.Equal(t, "p5", got[1].ProductID)
	})

	t.Run("NewestDescendingByID", func(t *testing.T) {
		got, _ := service.QueryProducts(
			catalogFixture(), domain.FilterSpec{}, domain.SortNewest, 1, 12,
		)

		assert.Equal(t, []string{"p5", "p4", "p3", "p2", "p1"}, ids(got))
	})

	t.Run("RatingDescending", func(t *testing.T) {
		got, _ := service.QueryProducts(
			catalogFixture(), domain.FilterSpec{}, domain.SortRating, 1, 12,
		)

		assert.Equal(t, []string{"p5", "p3", "p1", "p2", "p4"}, ids(got))
	})

	t.Run("SortDoesNotMutateInput", func(t *testing.T) {
		in := catalogFixture()
		want := ids(in)

		service.QueryProducts(in, domain.FilterSpec{}, domain.SortPriceHigh, 1, 12)

		assert.Equal(t, want, ids(in))
	})
}

func TestQueryProductsPagination(t *testing.T) {
	bigCatalog := func(n int) []domain.Product {
		ps := make([]domain.Product, n)
		for i := range ps {
			ps[i] = domain.Product{ProductID: fmt.Sprintf("p%02d", i)}
		}
		return ps
	}

	t.Run("TotalPagesCeilDivision", func(t *testing.T) {
		_, totalPages := service.QueryProducts(
			bigCatalog(25), domain.FilterSpec{}, domain.SortRelevance, 1, 12,
		)
		assert.Equal(t, 3, totalPages)
	})

	t.Run("LastPagePartial", func(t *testing.T) {
		page3, _ := service.QueryProducts(
			bigCatalog(25), domain.FilterSpec{}, domain.SortRelevance, 3, 12,
		)
		assert.Len(t, page3, 1)
	})

	t.Run("BeyondRangeIsEmpty", func(t *testing.T) {
		page4, totalPages := service.QueryProducts(
			bigCatalog(25), domain.FilterSpec{}, domain.SortRelevance, 4, 12,
		)
		assert.Equal(t, 3, totalPages)
		assert.Empty(t, page4)
	})

	t.Run("ConcatenatedPagesReconstructTheSet", func(t *testing.T) {
		in := bigCatalog(25)
		_, totalPages := service.QueryProducts(
			in, domain.FilterSpec{}, domain.SortRelevance, 1, 12,
		)

		var all []domain.Product
		for page := 1; page <= totalPages; page++ {
			pageOf, _ := service.QueryProducts(
				in, domain.FilterSpec{}, domain.SortRelevance, page, 12,
			)
			all = append(all, pageOf...)
		}

		assert.Equal(t, ids(in), ids(all))
	})

	t.Run("ZeroPageSizeFallsBackToDefault", func(t *testing.T) {
		pageOf, totalPages := service.QueryProducts(
			bigCatalog(25), domain.FilterSpec{}, domain.SortRelevance, 1, 0,
		)
		assert.Len(t, pageOf, service.DefaultPageSize)
		assert.Equal(t, 3, totalPages)
	})
}

type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Products(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogProvider) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, bool, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Bool(1), args.Error(2)
}

func (m *MockCatalogProvider) ProductsByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogProvider) SearchProducts(
	ctx context.Context, query string,
) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogProvider) Categories(
	ctx context.Context,
) ([]domain.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.Category)
	return cs, args.Error(1)
}

func TestCatalogServiceBrowse(t *testing.T) {
	t.Run("SearchTakesPrecedenceOverCategory", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		provider.On("SearchProducts", mock.Anything, "lamp").
			Return(catalogFixture(), nil)

		s := service.NewCatalogService(provider)
		got, err := s.Browse(t.Context(), service.BrowseQuery{
			Search: "lamp", Category: "furniture", PageSize: 12, Page: 1,
		})

		require.NoError(t, err)
		assert.Len(t, got.Products, 5)
		provider.AssertNotCalled(t, "ProductsByCategory")
	})

	t.Run("CategorySource", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		provider.On("ProductsByCategory", mock.Anything, "furniture").
			Return(catalogFixture()[:2], nil)

		s := service.NewCatalogService(provider)
		got, err := s.Browse(t.Context(), service.BrowseQuery{
			Category: "furniture", PageSize: 12, Page: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, ids(got.Products))
	})

	t.Run("DefaultSourceIsFullCollection", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		provider.On("Products", mock.Anything).Return(catalogFixture(), nil)

		s := service.NewCatalogService(provider)
		got, err := s.Browse(t.Context(), service.BrowseQuery{
			Sort: domain.SortPriceLow, PageSize: 2, Page: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, got.TotalPages)
		assert.Equal(t, []string{"p1", "p4"}, ids(got.Products))
	})
}
