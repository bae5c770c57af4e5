package domain

type (
	ShippingInfo struct {
		FirstName string
		LastName  string
		Email     string
		Phone     string
		Address   string
		City      string
		State     string
		Zip       string
		Country   string
	}

	PaymentInfo struct {
		CardNumber string
		ExpiryDate string
		CVV        string
		CardName   string
	}

	Order struct {
		OrderID  string
		Lines    []CartLine
		Subtotal float64
		Shipping float64
		Total    float64
		Address  ShippingInfo
	}
)

// VariantStock is a live stock reading for one purchasable
// configuration, keyed the same way as a cart line.
type VariantStock struct {
	LineID string
	Stock  int
}
