package httphandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// A ProductResolver resolves slugs for cart insertion.
type ProductResolver interface {
	ProductBySlug(ctx context.Context, slug string) (domain.Product, bool, error)
}

type CartHandler struct {
	cart    port.CartService
	catalog ProductResolver
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartService, catalog ProductResolver,
) {
	h := CartHandler{cart, catalog}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var body AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, ok, err := h.catalog.ProductBySlug(r.Context(), body.Slug)
	if err != nil {
		http.Error(w, "failed to load product", http.StatusServiceUnavailable)
		log.Error("failed to resolve product", "slug", body.Slug, "err", err)
		return
	}
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	variant, ok := h.pickVariant(p, body.VariantID)
	if !ok {
		http.Error(w, "variant is required", http.StatusBadRequest)
		return
	}

	h.cart.AddItem(r.Context(), p, variant, body.Quantity)
	h.writeCart(w)

	log.Info("item added", "slug", body.Slug, "variantID", body.VariantID)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var body UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.UpdateQuantity(r.Context(), r.PathValue("id"), body.Quantity)
	h.writeCart(w)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), r.PathValue("id"))
	h.writeCart(w)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	h.writeCart(w)
}

// pickVariant selects the chosen variant. A product with variants
// requires a valid choice, a product without variants is addable
// directly.
func (h CartHandler) pickVariant(
	p domain.Product, variantID string,
) (*domain.CartVariant, bool) {
	if len(p.Variants) == 0 {
		return nil, true
	}

	for _, v := range p.Variants {
		if v.VariantID == variantID {
			return &domain.CartVariant{
				VariantID: v.VariantID,
				Color:     v.Color,
				Size:      v.Size,
			}, true
		}
	}
	return nil, false
}

func (h CartHandler) writeCart(w http.ResponseWriter) {
	lines := h.cart.Lines()

	cart := Cart{
		Lines:     make([]CartLine, 0, len(lines)),
		Subtotal:  h.cart.Subtotal(),
		ItemCount: h.cart.ItemCount(),
	}
	for _, l := range lines {
		cart.Lines = append(cart.Lines, toCartLineDTO(l))
	}

	writeJSON(w, http.StatusOK, cart)
}
