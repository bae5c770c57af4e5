package domain

type (
	// A CartLine is one row of the cart. Title, image and price are
	// snapshotted at add-time, later catalog changes do not affect
	// existing lines.
	CartLine struct {
		LineID    string
		ProductID string
		Slug      string
		Title     string
		Image     string
		Price     float64
		Quantity  int
		Variant   *CartVariant
	}

	// A CartVariant is the descriptor of the chosen variant.
	// Stock is not snapshotted, it is re-validated at checkout.
	CartVariant struct {
		VariantID string
		Color     string
		Size      string
	}
)

// LineID computes the composite cart line identity:
// productID alone, or productID + "-" + variantID.
func LineID(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + "-" + variantID
}
