package schema

// VariantStockSchemaTextV1 is the value schema of the compacted
// variant-stock table topic, keyed by cart line identity.
const VariantStockSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "variant_stock",
	"fields": [
		{"name": "line_id", "type": "string"},
		{"name": "stock", "type": "int"}
	]
}`

type VariantStockV1 struct {
	LineID string `avro:"line_id"`
	Stock  int    `avro:"stock"`
}
