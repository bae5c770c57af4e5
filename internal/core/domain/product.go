package domain

type Badge string

const (
	BadgeNew     Badge = "New"
	BadgeSale    Badge = "Sale"
	BadgeLimited Badge = "Limited"
)

type (
	Product struct {
		ProductID      string
		Slug           string
		Title          string
		Images         []string
		Price          float64
		CompareAtPrice float64
		Rating         float64
		RatingCount    int
		Badges         []Badge
		Category       string
		Description    string
		Specs          map[string]string
		Variants       []Variant
	}

	Variant struct {
		VariantID string
		Color     string
		Size      string
		Stock     int
	}

	Category struct {
		CategoryID  string
		Name        string
		Slug        string
		Description string
	}
)

// InStock reports whether the product is purchasable: a product without
// variants is always in stock, otherwise at least one variant must have
// positive stock.
func (p Product) InStock() bool {
	if len(p.Variants) == 0 {
		return true
	}
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortNewest    SortOption = "newest"
	SortRating    SortOption = "rating"
)

// A FilterSpec narrows a product collection. Nil fields do not
// participate, set fields combine with logical AND.
type FilterSpec struct {
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	InStock   bool
}
