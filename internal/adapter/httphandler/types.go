package httphandler

type (
	Product struct {
		ProductID      string            `json:"product_id"`
		Slug           string            `json:"slug"`
		Title          string            `json:"title"`
		Images         []string          `json:"images"`
		Price          float64           `json:"price"`
		CompareAtPrice float64           `json:"compare_at_price,omitempty"`
		Rating         float64           `json:"rating"`
		RatingCount    int               `json:"rating_count"`
		Badges         []string          `json:"badges,omitempty"`
		Category       string            `json:"category"`
		Description    string            `json:"description"`
		Specs          map[string]string `json:"specs,omitempty"`
		Variants       []Variant         `json:"variants,omitempty"`
	}

	Variant struct {
		VariantID string `json:"variant_id"`
		Color     string `json:"color,omitempty"`
		Size      string `json:"size,omitempty"`
		Stock     int    `json:"stock"`
	}

	Category struct {
		CategoryID  string `json:"category_id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description,omitempty"`
	}

	ProductsPage struct {
		Products   []Product `json:"products"`
		Page       int       `json:"page"`
		TotalPages int       `json:"total_pages"`
	}
)

type (
	CartLine struct {
		LineID    string       `json:"line_id"`
		ProductID string       `json:"product_id"`
		Slug      string       `json:"slug"`
		Title     string       `json:"title"`
		Image     string       `json:"image"`
		Price     float64      `json:"price"`
		Quantity  int          `json:"quantity"`
		Variant   *CartVariant `json:"variant,omitempty"`
	}

	CartVariant struct {
		VariantID string `json:"variant_id"`
		Color     string `json:"color,omitempty"`
		Size      string `json:"size,omitempty"`
	}

	Cart struct {
		Lines     []CartLine `json:"lines"`
		Subtotal  float64    `json:"subtotal"`
		ItemCount int        `json:"item_count"`
	}

	AddCartItem struct {
		Slug      string `json:"slug"`
		VariantID string `json:"variant_id,omitempty"`
		Quantity  int    `json:"quantity,omitempty"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}
)

type (
	ShippingForm struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone,omitempty"`
		Address   string `json:"address"`
		City      string `json:"city"`
		State     string `json:"state"`
		Zip       string `json:"zip"`
		Country   string `json:"country,omitempty"`
	}

	PaymentForm struct {
		CardNumber string `json:"card_number"`
		ExpiryDate string `json:"expiry_date"`
		CVV        string `json:"cvv"`
		CardName   string `json:"card_name"`
	}

	CheckoutRequest struct {
		Shipping ShippingForm `json:"shipping"`
		Payment  PaymentForm  `json:"payment"`
	}

	Order struct {
		OrderID  string     `json:"order_id"`
		Lines    []CartLine `json:"lines"`
		Subtotal float64    `json:"subtotal"`
		Shipping float64    `json:"shipping"`
		Total    float64    `json:"total"`
	}

	FieldErrors struct {
		Errors map[string]string `json:"errors"`
	}
)
