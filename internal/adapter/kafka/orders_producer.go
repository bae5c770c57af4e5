package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.OrderProducer = (*OrdersProducer)(nil)

// An OrdersProducer publishes placed orders, keyed by order id.
type OrdersProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewOrdersProducer(opts ...ProducerOpt) (OrdersProducer, error) {
	const op = "NewOrdersProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrdersProducer{}, opErr(err, op)
		}
	}
	return OrdersProducer{options.cl, options.encoder}, nil
}

func (p OrdersProducer) Close() {
	const op = "OrdersProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p OrdersProducer) ProduceOrder(
	ctx context.Context, order domain.Order,
) error {
	const op = "OrdersProducer.ProduceOrder"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(order)
	if err != nil {
		return opErr(err, op)
	}

	res := p.cl.ProduceSync(ctx, &r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (p OrdersProducer) createRecord(order domain.Order) (kgo.Record, error) {
	const op = "OrdersProducer.createRecord"

	s := p.toSchema(order)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, op)
	}
	return kgo.Record{Key: []byte(s.OrderID), Value: b}, nil
}

func (OrdersProducer) toSchema(v domain.Order) schema.OrderV1 {
	return orderToSchemaV1(v)
}
