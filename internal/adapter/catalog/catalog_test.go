package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTier struct {
	mock.Mock
}

func (m *MockTier) Products(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockTier) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, bool, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Bool(1), args.Error(2)
}

func (m *MockTier) ProductsByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockTier) SearchProducts(
	ctx context.Context, query string,
) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockTier) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.Category)
	return cs, args.Error(1)
}

var errUnreachable = errors.New("backend unreachable")

func TestProviderTiers(t *testing.T) {
	t.Run("PrimaryServesWhenAvailable", func(t *testing.T) {
		primary := new(MockTier)
		fallback := new(MockTier)
		primary.On("Products", mock.Anything).
			Return([]domain.Product{{ProductID: "p1"}}, nil)

		p := NewProvider(primary, fallback)
		ps, err := p.Products(t.Context())

		require.NoError(t, err)
		assert.Len(t, ps, 1)
		fallback.AssertNotCalled(t, "Products")
	})

	t.Run("FallbackEngagesOnPrimaryFailure", func(t *testing.T) {
		primary := new(MockTier)
		fallback := new(MockTier)
		primary.On("Products", mock.Anything).
			Return([]domain.Product(nil), errUnreachable)
		fallback.On("Products", mock.Anything).
			Return([]domain.Product{{ProductID: "static1"}}, nil)

		p := NewProvider(primary, fallback)
		ps, err := p.Products(t.Context())

		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, "static1", ps[0].ProductID)
	})

	t.Run("AbsentResultDoesNotEngageFallback", func(t *testing.T) {
		primary := new(MockTier)
		fallback := new(MockTier)
		primary.On("ProductBySlug", mock.Anything, "missing").
			Return(domain.Product{}, false, nil)

		p := NewProvider(primary, fallback)
		_, ok, err := p.ProductBySlug(t.Context(), "missing")

		require.NoError(t, err)
		assert.False(t, ok)
		fallback.AssertNotCalled(t, "ProductBySlug")
	})

	t.Run("SearchFallsBack", func(t *testing.T) {
		primary := new(MockTier)
		fallback := new(MockTier)
		primary.On("SearchProducts", mock.Anything, "lamp").
			Return([]domain.Product(nil), errUnreachable)
		fallback.On("SearchProducts", mock.Anything, "lamp").
			Return([]domain.Product{{ProductID: "p6"}}, nil)

		p := NewProvider(primary, fallback)
		ps, err := p.SearchProducts(t.Context(), "lamp")

		require.NoError(t, err)
		assert.Len(t, ps, 1)
	})
}

func TestStaticCatalog(t *testing.T) {
	static, err := NewStaticCatalog()
	require.NoError(t, err)

	t.Run("BundledDatasetLoads", func(t *testing.T) {
		ps, err := static.Products(t.Context())
		require.NoError(t, err)
		assert.NotEmpty(t, ps)

		cs, err := static.Categories(t.Context())
		require.NoError(t, err)
		assert.NotEmpty(t, cs)
	})

	t.Run("ProductBySlug", func(t *testing.T) {
		p, ok, err := static.ProductBySlug(t.Context(), "halo-desk-lamp")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Halo Desk Lamp", p.Title)

		_, ok, err = static.ProductBySlug(t.Context(), "no-such-slug")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("CategoryBySlugOrName", func(t *testing.T) {
		byName, err := static.ProductsByCategory(t.Context(), "Home Office")
		require.NoError(t, err)
		bySlug, err2 := static.ProductsByCategory(t.Context(), "home-office")
		require.NoError(t, err2)

		assert.NotEmpty(t, byName)
		assert.Equal(t, byName, bySlug)
	})

	t.Run("SearchIsCaseInsensitiveSubstring", func(t *testing.T) {
		ps, err := static.SearchProducts(t.Context(), "LAMP")
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, "halo-desk-lamp", ps[0].Slug)
	})

	t.Run("SearchMatchesDescriptionAndCategory", func(t *testing.T) {
		ps, err := static.SearchProducts(t.Context(), "noise cancellation")
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, "aurora-wireless-headphones", ps[0].Slug)

		ps, err = static.SearchProducts(t.Context(), "wearab")
		require.NoError(t, err)
		assert.Len(t, ps, 2)
	})

	t.Run("VariantsAndBadgesDecoded", func(t *testing.T) {
		p, ok, err := static.ProductBySlug(
			t.Context(), "aurora-wireless-headphones",
		)
		require.NoError(t, err)
		require.True(t, ok)

		assert.Contains(t, p.Badges, domain.BadgeSale)
		require.Len(t, p.Variants, 3)
		assert.Equal(t, "Black", p.Variants[0].Color)
		assert.True(t, p.InStock())
	})
}
