package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// CatalogProvider is the data-access collaborator. Absent results are
// explicit: a missing product yields ok=false, never an error.
type CatalogProvider interface {
	Products(context.Context) ([]domain.Product, error)
	ProductBySlug(ctx context.Context, slug string) (p domain.Product, ok bool, err error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	Categories(context.Context) ([]domain.Category, error)
}

// CartRepository is the durable key-value slot holding the serialized
// line list. Load returns an empty slice when no prior state exists.
type CartRepository interface {
	LoadCart(context.Context) ([]domain.CartLine, error)
	SaveCart(context.Context, []domain.CartLine) error
}

type CartService interface {
	AddItem(ctx context.Context, p domain.Product, v *domain.CartVariant, quantity int)
	RemoveItem(ctx context.Context, lineID string)
	UpdateQuantity(ctx context.Context, lineID string, quantity int)
	Clear(ctx context.Context)
	Lines() []domain.CartLine
	Subtotal() float64
	ItemCount() int
}

type OrderProducer interface {
	ProduceOrder(context.Context, domain.Order) error
}

// StockReader reads live variant stock by cart line identity.
// ok=false means the reading is unknown, not zero.
type StockReader interface {
	Stock(lineID string) (stock int, ok bool)
}

type CheckoutService interface {
	ValidateShipping(domain.ShippingInfo) map[string]string
	ValidatePayment(domain.PaymentInfo) map[string]string
	PlaceOrder(ctx context.Context, s domain.ShippingInfo, p domain.PaymentInfo) (domain.Order, error)
}
