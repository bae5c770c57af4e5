// Package kafka holds the broker-facing adapters: the orders producer
// and the variant-stock table view.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderV1) {
	s.OrderID = v.OrderID
	s.Subtotal = v.Subtotal
	s.Shipping = v.Shipping
	s.Total = v.Total
	s.Address = schema.OrderAddressV1{
		FirstName: v.Address.FirstName,
		LastName:  v.Address.LastName,
		Email:     v.Address.Email,
		Phone:     v.Address.Phone,
		Address:   v.Address.Address,
		City:      v.Address.City,
		State:     v.Address.State,
		Zip:       v.Address.Zip,
		Country:   v.Address.Country,
	}

	s.Lines = make([]schema.OrderLineV1, len(v.Lines))
	for i, l := range v.Lines {
		s.Lines[i] = schema.OrderLineV1{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Slug:      l.Slug,
			Title:     l.Title,
			Image:     l.Image,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
		if l.Variant != nil {
			s.Lines[i].Variant = &schema.OrderLineVariantV1{
				VariantID: l.Variant.VariantID,
				Color:     l.Variant.Color,
				Size:      l.Variant.Size,
			}
		}
	}
	return s
}
