package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/KirillPurposeful/order-service-mvp/configs"
	"github.com/KirillPurposeful/order-service-mvp/internal/adapter/cache"
	adapterhttp "github.com/KirillPurposeful/order-service-mvp/internal/adapter/http"
	"github.com/KirillPurposeful/order-service-mvp/internal/adapter/kafka"
	"github.com/KirillPurposeful/order-service-mvp/internal/adapter/store"
	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
	"github.com/KirillPurposeful/order-service-mvp/internal/logging"
	"github.com/KirillPurposeful/order-service-mvp/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)
	logger.Info("starting up")

	catalog := store.NewMemoryCatalog()
	orders := store.NewMemoryOrders()

	if err := seedCatalog(catalog, cfg.Catalog.Seed); err != nil {
		return nil, nil, err
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Idempotency: redis when configured, in-process otherwise.
	var idem usecase.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		cleanups = append(cleanups, func() { _ = rdb.Close() })
		idem = cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	} else {
		idem = cache.NewMemoryIdempotencyStore(cfg.Idempotency.TTL)
	}

	opts := []usecase.OrderServiceOption{usecase.WithIdempotency(idem)}

	var events usecase.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		sp, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("kafka producer: %w", err)
		}
		cleanups = append(cleanups, func() { _ = sp.Close() })
		events = kafka.NewProducer(sp, cfg.Kafka.EventsTopic)
		opts = append(opts, usecase.WithEvents(events))
	}

	svc := usecase.NewOrderService(catalog, orders, opts...)

	if len(cfg.Kafka.Brokers) > 0 {
		stop, err := startFulfillmentConsumer(cfg, svc)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, stop)
	}

	h := adapterhttp.NewOrderHandler(svc)
	router := adapterhttp.NewRouter(h)

	return &App{Router: router}, cleanup, nil
}

func seedCatalog(catalog *store.MemoryCatalog, seed []configs.SeedProduct) error {
	log := logging.New("seed")
	for _, sp := range seed {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return fmt.Errorf("seed product %s: bad price %q: %w", sp.ID, sp.Price, err)
		}
		p, err := domain.NewProduct(sp.ID, sp.Name, sp.Description, price, sp.Stock)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", sp.ID, err)
		}
		if err := catalog.Put(context.Background(), p); err != nil {
			return err
		}
		log.Info("seeded product", "product_id", p.ID, "name", p.Name, "stock", p.Stock)
	}
	return nil
}

func startFulfillmentConsumer(cfg configs.Config, svc *usecase.OrderService) (func(), error) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, fmt.Errorf("kafka group: %w", err)
	}

	log := logging.New("fulfillment")
	h := kafka.NewFulfillmentHandler(svc, log)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.FulfillmentTopic}, h.Handle, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("consumer stopped", "err", err)
		}
	}()

	stop := func() {
		cancel()
		<-done
		_ = grp.Close()
	}
	return stop, nil
}
