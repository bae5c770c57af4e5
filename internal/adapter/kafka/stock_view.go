package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var _ port.StockReader = (*StockView)(nil)

// A variantStockCodec used for serde [schema.VariantStockV1]
type variantStockCodec struct {
	serde Serde
}

func (c variantStockCodec) Encode(v any) ([]byte, error) {
	const op = "variantStockCodec.Encode"
	if _, ok := v.(schema.VariantStockV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c variantStockCodec) Decode(data []byte) (any, error) {
	const op = "variantStockCodec.Decode"
	var s schema.VariantStockV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A StockViewConfig used for setup [StockView].
//
// All fields are required.
type StockViewConfig struct {
	SeedBrokers []string
	Topic       string
	Serde       Serde
}

// StockView reads live variant stock from the compacted table topic,
// keyed by cart line identity.
type StockView struct {
	gv *goka.View
}

func NewStockView(config StockViewConfig) (StockView, error) {
	const op = "NewStockView"

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.Table(config.Topic),
		variantStockCodec{config.Serde},
	)
	if err != nil {
		return StockView{}, opErr(err, op)
	}

	return StockView{gv}, nil
}

func (v *StockView) Run(ctx context.Context) {
	const op = "StockView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// Stock returns the live reading for the line identity.
// ok=false means no reading is available, not zero stock.
func (v *StockView) Stock(lineID string) (int, bool) {
	const op = "StockView.Stock"
	log := slog.With("op", op)

	val, err := v.gv.Get(lineID)
	if err != nil {
		log.Error("failed to get view data", "err", err)
		return 0, false
	}

	if val == nil {
		return 0, false
	}

	s, ok := val.(schema.VariantStockV1)
	if !ok {
		log.Error("unexpected type of data", "lineID", lineID)
		return 0, false
	}
	return s.Stock, true
}
