package schema

const OrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "order",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "lines", "type": {"type": "array", "items": {
			"type": "record",
			"name": "order_line",
			"fields": [
				{"name": "line_id", "type": "string"},
				{"name": "product_id", "type": "string"},
				{"name": "slug", "type": "string"},
				{"name": "title", "type": "string"},
				{"name": "image", "type": "string"},
				{"name": "price", "type": "double"},
				{"name": "quantity", "type": "int"},
				{"name": "variant", "type": ["null", {
					"type": "record",
					"name": "order_line_variant",
					"fields": [
						{"name": "variant_id", "type": "string"},
						{"name": "color", "type": "string"},
						{"name": "size", "type": "string"}
					]
				}], "default": null}
			]
		}}},
		{"name": "subtotal", "type": "double"},
		{"name": "shipping", "type": "double"},
		{"name": "total", "type": "double"},
		{"name": "address", "type": {
			"type": "record",
			"name": "order_address",
			"fields": [
				{"name": "first_name", "type": "string"},
				{"name": "last_name", "type": "string"},
				{"name": "email", "type": "string"},
				{"name": "phone", "type": "string"},
				{"name": "address", "type": "string"},
				{"name": "city", "type": "string"},
				{"name": "state", "type": "string"},
				{"name": "zip", "type": "string"},
				{"name": "country", "type": "string"}
			]
		}}
	]
}`

type (
	OrderV1 struct {
		OrderID  string         `avro:"order_id"`
		Lines    []OrderLineV1  `avro:"lines"`
		Subtotal float64        `avro:"subtotal"`
		Shipping float64        `avro:"shipping"`
		Total    float64        `avro:"total"`
		Address  OrderAddressV1 `avro:"address"`
	}

	OrderLineV1 struct {
		LineID    string              `avro:"line_id"`
		ProductID string              `avro:"product_id"`
		Slug      string              `avro:"slug"`
		Title     string              `avro:"title"`
		Image     string              `avro:"image"`
		Price     float64             `avro:"price"`
		Quantity  int                 `avro:"quantity"`
		Variant   *OrderLineVariantV1 `avro:"variant"`
	}

	OrderLineVariantV1 struct {
		VariantID string `avro:"variant_id"`
		Color     string `avro:"color"`
		Size      string `avro:"size"`
	}

	OrderAddressV1 struct {
		FirstName string `avro:"first_name"`
		LastName  string `avro:"last_name"`
		Email     string `avro:"email"`
		Phone     string `avro:"phone"`
		Address   string `avro:"address"`
		City      string `avro:"city"`
		State     string `avro:"state"`
		Zip       string `avro:"zip"`
		Country   string `avro:"country"`
	}
)
