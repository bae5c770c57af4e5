package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CheckoutService = (*CheckoutService)(nil)

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrOutOfStock = errors.New("insufficient stock")
)

const (
	freeShippingThreshold = 100
	flatShippingFee       = 10
	requiredMsg           = "Required"
)

// A ValidationError carries per-field messages for a rejected
// checkout form.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	return "invalid checkout form: " + strings.Join(fields, ", ")
}

// CheckoutService drives the shipping, payment and order placement
// steps over the current cart.
type CheckoutService struct {
	cart   port.CartService
	stock  port.StockReader
	orders port.OrderProducer
}

func NewCheckoutService(
	cart port.CartService,
	stock port.StockReader,
	orders port.OrderProducer,
) CheckoutService {
	return CheckoutService{cart, stock, orders}
}

// ValidateShipping returns per-field messages for missing required
// shipping fields. An empty map means the form passes.
func (s CheckoutService) ValidateShipping(
	v domain.ShippingInfo,
) map[string]string {
	errs := make(map[string]string)
	if v.FirstName == "" {
		errs["firstName"] = requiredMsg
	}
	if v.LastName == "" {
		errs["lastName"] = requiredMsg
	}
	if v.Email == "" {
		errs["email"] = requiredMsg
	}
	if v.Address == "" {
		errs["address"] = requiredMsg
	}
	if v.City == "" {
		errs["city"] = requiredMsg
	}
	if v.State == "" {
		errs["state"] = requiredMsg
	}
	if v.Zip == "" {
		errs["zip"] = requiredMsg
	}
	return errs
}

// ValidatePayment returns per-field messages for missing required
// payment fields. The card is never charged, there is no processing
// behind this step.
func (s CheckoutService) ValidatePayment(
	v domain.PaymentInfo,
) map[string]string {
	errs := make(map[string]string)
	if v.CardNumber == "" {
		errs["cardNumber"] = requiredMsg
	}
	if v.ExpiryDate == "" {
		errs["expiryDate"] = requiredMsg
	}
	if v.CVV == "" {
		errs["cvv"] = requiredMsg
	}
	if v.CardName == "" {
		errs["cardName"] = requiredMsg
	}
	return errs
}

// ShippingFee is zero above the free shipping threshold, otherwise a
// flat fee.
func (s CheckoutService) ShippingFee(subtotal float64) float64 {
	if subtotal > freeShippingThreshold {
		return 0
	}
	return flatShippingFee
}

// PlaceOrder validates both forms, re-validates variant stock against
// the live readings, publishes the order and clears the cart. The cart
// engine itself stays permissive, stock is enforced here and nowhere
// earlier.
func (s CheckoutService) PlaceOrder(
	ctx context.Context, shipping domain.ShippingInfo, payment domain.PaymentInfo,
) (domain.Order, error) {
	const op = "CheckoutService.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	fields := s.ValidateShipping(shipping)
	for f, msg := range s.ValidatePayment(payment) {
		fields[f] = msg
	}
	if len(fields) != 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ValidationError{fields})
	}

	if err := s.checkStock(lines); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order := s.buildOrder(lines, shipping)

	if err := s.orders.ProduceOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cart.Clear(ctx)

	log.Info("order placed",
		"orderID", order.OrderID, "nLines", len(order.Lines), "total", order.Total)
	return order, nil
}

// checkStock compares line quantities with live variant stock.
// Unknown readings pass, absence of data is not a rejection.
func (s CheckoutService) checkStock(lines []domain.CartLine) error {
	const op = "CheckoutService.checkStock"

	var short []string
	for _, l := range lines {
		if l.Variant == nil {
			continue
		}
		stock, ok := s.stock.Stock(l.LineID)
		if !ok {
			slog.Warn("stock reading unavailable", "op", op, "lineID", l.LineID)
			continue
		}
		if stock < l.Quantity {
			short = append(short, l.LineID)
		}
	}

	if len(short) != 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, strings.Join(short, ", "))
	}
	return nil
}

func (s CheckoutService) buildOrder(
	lines []domain.CartLine, shipping domain.ShippingInfo,
) domain.Order {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price * float64(l.Quantity)
	}
	fee := s.ShippingFee(subtotal)

	return domain.Order{
		OrderID:  uuid.NewString(),
		Lines:    lines,
		Subtotal: subtotal,
		Shipping: fee,
		Total:    subtotal + fee,
		Address:  shipping,
	}
}
