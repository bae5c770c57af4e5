package storage

import (
	"encoding/json"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	cartLineDTO struct {
		ID        string          `json:"id"`
		ProductID string          `json:"productId"`
		Slug      string          `json:"slug"`
		Title     string          `json:"title"`
		Image     string          `json:"image"`
		Price     float64         `json:"price"`
		Quantity  int             `json:"quantity"`
		Variant   *cartVariantDTO `json:"variant,omitempty"`
	}

	cartVariantDTO struct {
		ID    string `json:"id"`
		Color string `json:"color,omitempty"`
		Size  string `json:"size,omitempty"`
	}
)

// encodeCart serializes the full line list. The format round-trips
// exactly: identity, price snapshot, quantity and variant descriptor.
func encodeCart(lines []domain.CartLine) ([]byte, error) {
	dtos := make([]cartLineDTO, 0, len(lines))
	for _, l := range lines {
		dto := cartLineDTO{
			ID:        l.LineID,
			ProductID: l.ProductID,
			Slug:      l.Slug,
			Title:     l.Title,
			Image:     l.Image,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
		if l.Variant != nil {
			dto.Variant = &cartVariantDTO{
				ID:    l.Variant.VariantID,
				Color: l.Variant.Color,
				Size:  l.Variant.Size,
			}
		}
		dtos = append(dtos, dto)
	}
	return json.Marshal(dtos)
}

func decodeCart(b []byte) ([]domain.CartLine, error) {
	var dtos []cartLineDTO
	if err := json.Unmarshal(b, &dtos); err != nil {
		return nil, err
	}

	var lines []domain.CartLine
	for _, dto := range dtos {
		l := domain.CartLine{
			LineID:    dto.ID,
			ProductID: dto.ProductID,
			Slug:      dto.Slug,
			Title:     dto.Title,
			Image:     dto.Image,
			Price:     dto.Price,
			Quantity:  dto.Quantity,
		}
		if dto.Variant != nil {
			l.Variant = &domain.CartVariant{
				VariantID: dto.Variant.ID,
				Color:     dto.Variant.Color,
				Size:      dto.Variant.Size,
			}
		}
		lines = append(lines, l)
	}
	return lines, nil
}
