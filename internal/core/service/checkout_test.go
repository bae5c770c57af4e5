package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderProducer struct {
	mock.Mock
}

func (m *MockOrderProducer) ProduceOrder(
	ctx context.Context, o domain.Order,
) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockStockReader struct {
	mock.Mock
}

func (m *MockStockReader) Stock(lineID string) (int, bool) {
	args := m.Called(lineID)
	return args.Int(0), args.Bool(1)
}

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		Zip:       "62704",
		Country:   "United States",
	}
}

func validPayment() domain.PaymentInfo {
	return domain.PaymentInfo{
		CardNumber: "4242424242424242",
		ExpiryDate: "12/30",
		CVV:        "123",
		CardName:   "Jane Doe",
	}
}

func checkoutFixture(
	t *testing.T, lines ...domain.CartLine,
) (*service.CartService, *MockStockReader, *MockOrderProducer, service.CheckoutService) {
	t.Helper()

	repo := new(MockCartRepository)
	repo.On("LoadCart", mock.Anything).Return(lines, nil)
	repo.On("SaveCart", mock.Anything, mock.Anything).Return(nil)
	cart := service.NewCartService(t.Context(), repo)

	stock := new(MockStockReader)
	orders := new(MockOrderProducer)
	checkout := service.NewCheckoutService(cart, stock, orders)
	return cart, stock, orders, checkout
}

func TestValidateShipping(t *testing.T) {
	t.Run("CompleteFormPasses", func(t *testing.T) {
		_, _, _, checkout := checkoutFixture(t)
		assert.Empty(t, checkout.ValidateShipping(validShipping()))
	})

	t.Run("MissingFieldsReported", func(t *testing.T) {
		_, _, _, checkout := checkoutFixture(t)

		errs := checkout.ValidateShipping(domain.ShippingInfo{})

		want := []string{
			"firstName", "lastName", "email", "address", "city", "state", "zip",
		}
		assert.Len(t, errs, len(want))
		for _, f := range want {
			assert.Equal(t, "Required", errs[f])
		}
	})

	t.Run("PhoneAndCountryOptional", func(t *testing.T) {
		_, _, _, checkout := checkoutFixture(t)

		v := validShipping()
		v.Phone = ""
		v.Country = ""

		assert.Empty(t, checkout.ValidateShipping(v))
	})
}

func TestValidatePayment(t *testing.T) {
	t.Run("CompleteFormPasses", func(t *testing.T) {
		_, _, _, checkout := checkoutFixture(t)
		assert.Empty(t, checkout.ValidatePayment(validPayment()))
	})

	t.Run("MissingFieldsReported", func(t *testing.T) {
		_, _, _, checkout := checkoutFixture(t)

		errs := checkout.ValidatePayment(domain.PaymentInfo{})

		assert.Len(t, errs, 4)
		assert.Equal(t, "Required", errs["cardNumber"])
		assert.Equal(t, "Required", errs["cvv"])
	})
}

func TestShippingFee(t *testing.T) {
	_, _, _, checkout := checkoutFixture(t)

	assert.Equal(t, 10.0, checkout.ShippingFee(50))
	assert.Equal(t, 10.0, checkout.ShippingFee(100))
	assert.Equal(t, 0.0, checkout.ShippingFee(100.01))
	assert.Equal(t, 0.0, checkout.ShippingFee(500))
}

func TestPlaceOrder(t *testing.T) {
	line := domain.CartLine{
		LineID: "p1", ProductID: "p1", Price: 30, Quantity: 2,
	}
	variantLine := domain.CartLine{
		LineID: "p2-v1", ProductID: "p2", Price: 15, Quantity: 3,
		Variant: &domain.CartVariant{VariantID: "v1"},
	}

	t.Run("PublishesOrderAndClearsCart", func(t *testing.T) {
		cart, _, orders, checkout := checkoutFixture(t, line)
		orders.On("ProduceOrder", mock.Anything, mock.Anything).Return(nil)

		order, err := checkout.PlaceOrder(
			t.Context(), validShipping(), validPayment(),
		)

		require.NoError(t, err)
		assert.NotEmpty(t, order.OrderID)
		assert.Equal(t, 60.0, order.Subtotal)
		assert.Equal(t, 10.0, order.Shipping)
		assert.Equal(t, 70.0, order.Total)
		assert.Empty(t, cart.Lines())
		orders.AssertNumberOfCalls(t, "ProduceOrder", 1)
	})

	t.Run("FreeShippingAboveThreshold", func(t *testing.T) {
		_, _, orders, checkout := checkoutFixture(t, domain.CartLine{
			LineID: "p1", ProductID: "p1", Price: 101, Quantity: 1,
		})
		orders.On("ProduceOrder", mock.Anything, mock.Anything).Return(nil)

		order, err := checkout.PlaceOrder(
			t.Context(), validShipping(), validPayment(),
		)

		require.NoError(t, err)
		assert.Equal(t, 0.0, order.Shipping)
		assert.Equal(t, 101.0, order.Total)
	})

	t.Run("EmptyCartRejected", func(t *testing.T) {
		_, _, _, checkout := checkoutFixture(t)

		_, err := checkout.PlaceOrder(
			t.Context(), validShipping(), validPayment(),
		)

		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})

	t.Run("InvalidFormsRejected", func(t *testing.T) {
		cart, _, _, checkout := checkoutFixture(t, line)

		_, err := checkout.PlaceOrder(
			t.Context(), domain.ShippingInfo{}, validPayment(),
		)

		var vErr service.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Required", vErr.Fields["firstName"])
		assert.Len(t, cart.Lines(), 1)
	})

	t.Run("InsufficientStockRejected", func(t *testing.T) {
		cart, stock, orders, checkout := checkoutFixture(t, variantLine)
		stock.On("Stock", "p2-v1").Return(2, true)

		_, err := checkout.PlaceOrder(
			t.Context(), validShipping(), validPayment(),
		)

		assert.ErrorIs(t, err, service.ErrOutOfStock)
		assert.Len(t, cart.Lines(), 1)
		orders.AssertNotCalled(t, "ProduceOrder")
	})

	t.Run("UnknownStockReadingPasses", func(t *testing.T) {
		_, stock, orders, checkout := checkoutFixture(t, variantLine)
		stock.On("Stock", "p2-v1").Return(0, false)
		orders.On("ProduceOrder", mock.Anything, mock.Anything).Return(nil)

		_, err := checkout.PlaceOrder(
			t.Context(), validShipping(), validPayment(),
		)

		require.NoError(t, err)
	})

	t.Run("LinesWithoutVariantSkipStockCheck", func(t *testing.T) {
		_, stock, orders, checkout := checkoutFixture(t, line)
		orders.On("ProduceOrder", mock.Anything, mock.Anything).Return(nil)

		_, err := checkout.PlaceOrder(
			t.Context(), validShipping(), validPayment(),
		)

		require.NoError(t, err)
		stock.AssertNotCalled(t, "Stock")
	})

	t.Run("ProducerFailureAbortsOrder", func(t *testing.T) {
		cart, _, orders, checkout := checkoutFixture(t, line)
		orders.On("ProduceOrder", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable"))

		_, err := checkout.PlaceOrder(
			t.Context(), validShipping(), validPayment(),
		)

		require.Error(t, err)
		assert.Len(t, cart.Lines(), 1)
	})
}
