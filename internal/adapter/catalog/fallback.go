package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

//go:embed data/products.json
var productsData []byte

//go:embed data/categories.json
var categoriesData []byte

var _ port.CatalogProvider = (*StaticCatalog)(nil)

type (
	productDTO struct {
		ID             string            `json:"id"`
		Slug           string            `json:"slug"`
		Title          string            `json:"title"`
		Images         []string          `json:"images"`
		Price          float64           `json:"price"`
		CompareAtPrice float64           `json:"compareAtPrice,omitempty"`
		Rating         float64           `json:"rating"`
		RatingCount    int               `json:"ratingCount"`
		Badges         []string          `json:"badges,omitempty"`
		Category       string            `json:"category"`
		Description    string            `json:"description"`
		Specs          map[string]string `json:"specs,omitempty"`
		Variants       []variantDTO      `json:"variants,omitempty"`
	}

	variantDTO struct {
		ID    string `json:"id"`
		Color string `json:"color,omitempty"`
		Size  string `json:"size,omitempty"`
		Stock int    `json:"stock"`
	}

	categoryDTO struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description,omitempty"`
	}
)

// StaticCatalog is the fallback tier: a bundled dataset snapshot
// served when the primary store is unreachable. Reads never fail.
type StaticCatalog struct {
	products   []domain.Product
	categories []domain.Category
}

func NewStaticCatalog() (StaticCatalog, error) {
	return newStaticCatalog(productsData, categoriesData)
}

func newStaticCatalog(productsB, categoriesB []byte) (StaticCatalog, error) {
	const op = "NewStaticCatalog"

	var pDTOs []productDTO
	if err := json.Unmarshal(productsB, &pDTOs); err != nil {
		return StaticCatalog{}, fmt.Errorf("%s: products dataset: %w", op, err)
	}

	var cDTOs []categoryDTO
	if err := json.Unmarshal(categoriesB, &cDTOs); err != nil {
		return StaticCatalog{}, fmt.Errorf("%s: categories dataset: %w", op, err)
	}

	var c StaticCatalog
	for _, dto := range pDTOs {
		c.products = append(c.products, toDomainProduct(dto))
	}
	for _, dto := range cDTOs {
		c.categories = append(c.categories, domain.Category{
			CategoryID:  dto.ID,
			Name:        dto.Name,
			Slug:        dto.Slug,
			Description: dto.Description,
		})
	}
	return c, nil
}

func (c StaticCatalog) Products(context.Context) ([]domain.Product, error) {
	return c.products, nil
}

func (c StaticCatalog) ProductBySlug(
	_ context.Context, slug string,
) (domain.Product, bool, error) {
	for _, p := range c.products {
		if p.Slug == slug {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

func (c StaticCatalog) ProductsByCategory(
	_ context.Context, category string,
) ([]domain.Product, error) {
	name := category
	for _, v := range c.categories {
		if v.Slug == category {
			name = v.Name
			break
		}
	}

	var ps []domain.Product
	for _, p := range c.products {
		if p.Category == name {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

// SearchProducts is a case-insensitive substring match over title,
// description and category, returned in collection order without
// ranking.
func (c StaticCatalog) SearchProducts(
	_ context.Context, query string,
) ([]domain.Product, error) {
	q := strings.ToLower(query)

	var ps []domain.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (c StaticCatalog) Categories(
	context.Context,
) ([]domain.Category, error) {
	return c.categories, nil
}

func toDomainProduct(dto productDTO) domain.Product {
	p := domain.Product{
		ProductID:      dto.ID,
		Slug:           dto.Slug,
		Title:          dto.Title,
		Images:         dto.Images,
		Price:          dto.Price,
		CompareAtPrice: dto.CompareAtPrice,
		Rating:         dto.Rating,
		RatingCount:    dto.RatingCount,
		Category:       dto.Category,
		Description:    dto.Description,
		Specs:          dto.Specs,
	}
	for _, b := range dto.Badges {
		p.Badges = append(p.Badges, domain.Badge(b))
	}
	for _, v := range dto.Variants {
		p.Variants = append(p.Variants, domain.Variant{
			VariantID: v.ID, Color: v.Color, Size: v.Size, Stock: v.Stock,
		})
	}
	return p
}
