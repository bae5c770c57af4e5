package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	order        schema.Serde
	variantStock schema.Serde
}

type adapters struct {
	cartRepo   storage.RedisCartRepository
	sqlCatalog catalog.SQLCatalog
	orders     kafka.OrdersProducer
	stockView  *kafka.StockView
}

type coreServices struct {
	catalog  service.CatalogService
	cart     *service.CartService
	checkout service.CheckoutService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	adapters   adapters
	services   coreServices
	httpServer httphandler.HTTPServer
}

func New(context context.Context, config config.Config) *App {
	app := &App{ctx: context, cfg: config}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	orderSS := app.cfg.Broker.Topics.Orders + "-value"
	orderSerde, err := schema.NewSerdeOrderV1(
		ctx,
		schema.SubjectOpt(orderSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	stockSS := app.cfg.Broker.Topics.VariantStock + "-value"
	stockSerde, err := schema.NewSerdeVariantStockV1(
		ctx,
		schema.SubjectOpt(stockSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.order = orderSerde
	app.serdes.variantStock = stockSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	ordersTopic := app.cfg.Broker.Topics.Orders
	stockTopic := app.cfg.Broker.Topics.VariantStock

	cartRepo, err := storage.NewRedisCartRepository(ctx, app.cfg.CartRedisAddr)
	if err != nil {
		app.fallDown(op, err)
	}

	sqlCatalog, err := catalog.NewSQLCatalog(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	ordersProducer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, ordersTopic),
		kafka.ProducerEncoderOpt(app.serdes.order),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	stockView, err := kafka.NewStockView(kafka.StockViewConfig{
		SeedBrokers: seedBrokers,
		Topic:       stockTopic,
		Serde:       app.serdes.variantStock,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.adapters.cartRepo = cartRepo
	app.adapters.sqlCatalog = sqlCatalog
	app.adapters.orders = ordersProducer
	app.adapters.stockView = &stockView
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	static, err := catalog.NewStaticCatalog()
	if err != nil {
		app.fallDown(op, err)
	}
	provider := catalog.NewProvider(app.adapters.sqlCatalog, static)

	cart := service.NewCartService(app.ctx, app.adapters.cartRepo)

	app.services.catalog = service.NewCatalogService(provider)
	app.services.cart = cart
	app.services.checkout = service.NewCheckoutService(
		cart, app.adapters.stockView, app.adapters.orders,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.services.catalog)
	httphandler.RegisterCart(mux, app.services.cart, app.services.catalog)
	httphandler.RegisterCheckout(mux, app.services.checkout)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.adapters.stockView.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.adapters.orders.Close()
	app.adapters.sqlCatalog.Close()
	app.adapters.cartRepo.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
