// Package httphandler exposes the storefront over HTTP.
//
// GET    /v1/products           catalog browse with filters, sort and paging
// GET    /v1/products/{slug}    single product (response 200, 404)
// GET    /v1/categories         category list
// GET    /v1/cart               current cart
// POST   /v1/cart/items         add item JSON (response 200, 400, 404)
// PATCH  /v1/cart/items/{id}    set quantity JSON (response 200, 400)
// DELETE /v1/cart/items/{id}    remove line (response 200)
// DELETE /v1/cart               clear cart (response 200)
// POST   /v1/checkout           place order JSON (response 201, 409, 422, 503)
package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func toProductDTO(p domain.Product) Product {
	dto := Product{
		ProductID:      p.ProductID,
		Slug:           p.Slug,
		Title:          p.Title,
		Images:         p.Images,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Rating:         p.Rating,
		RatingCount:    p.RatingCount,
		Category:       p.Category,
		Description:    p.Description,
		Specs:          p.Specs,
	}
	for _, b := range p.Badges {
		dto.Badges = append(dto.Badges, string(b))
	}
	for _, v := range p.Variants {
		dto.Variants = append(dto.Variants, Variant{
			VariantID: v.VariantID,
			Color:     v.Color,
			Size:      v.Size,
			Stock:     v.Stock,
		})
	}
	return dto
}

func toCartLineDTO(l domain.CartLine) CartLine {
	dto := CartLine{
		LineID:    l.LineID,
		ProductID: l.ProductID,
		Slug:      l.Slug,
		Title:     l.Title,
		Image:     l.Image,
		Price:     l.Price,
		Quantity:  l.Quantity,
	}
	if l.Variant != nil {
		dto.Variant = &CartVariant{
			VariantID: l.Variant.VariantID,
			Color:     l.Variant.Color,
			Size:      l.Variant.Size,
		}
	}
	return dto
}
