package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type CheckoutHandler struct {
	checkout port.CheckoutService
}

func RegisterCheckout(mux *http.ServeMux, checkout port.CheckoutService) {
	h := CheckoutHandler{checkout}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var body CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.checkout.PlaceOrder(
		r.Context(), h.toShipping(body.Shipping), h.toPayment(body.Payment),
	)
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	dto := Order{
		OrderID:  order.OrderID,
		Lines:    make([]CartLine, 0, len(order.Lines)),
		Subtotal: order.Subtotal,
		Shipping: order.Shipping,
		Total:    order.Total,
	}
	for _, l := range order.Lines {
		dto.Lines = append(dto.Lines, toCartLineDTO(l))
	}

	writeJSON(w, http.StatusCreated, dto)
}

func (h CheckoutHandler) writeError(
	w http.ResponseWriter, log *slog.Logger, err error,
) {
	var vErr service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, FieldErrors{vErr.Fields})
	case errors.Is(err, service.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusConflict)
	case errors.Is(err, service.ErrOutOfStock):
		http.Error(w, "insufficient stock", http.StatusConflict)
	default:
		http.Error(w, "failed to place order", http.StatusServiceUnavailable)
		log.Error("failed to place order", "err", err)
	}
}

func (h CheckoutHandler) toShipping(v ShippingForm) domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Email:     v.Email,
		Phone:     v.Phone,
		Address:   v.Address,
		City:      v.City,
		State:     v.State,
		Zip:       v.Zip,
		Country:   v.Country,
	}
}

func (h CheckoutHandler) toPayment(v PaymentForm) domain.PaymentInfo {
	return domain.PaymentInfo{
		CardNumber: v.CardNumber,
		ExpiryDate: v.ExpiryDate,
		CVV:        v.CVV,
		CardName:   v.CardName,
	}
}
