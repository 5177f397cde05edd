// Package app assembles the stores and notifiers selected by configuration.
package app

import (
	"context"
	"fmt"

	"github.com/example/arka-distribution/internal/config"
	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/example/arka-distribution/internal/infrastructure/kafka"
	"github.com/example/arka-distribution/internal/infrastructure/store"
	"github.com/example/arka-distribution/internal/metrics"
	"github.com/example/arka-distribution/internal/notification"
	"go.uber.org/zap"
)

type Stores struct {
	Products  product.Repository
	Customers customer.Repository
	Orders    order.Repository

	close func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores connects the backend named by cfg.Store.Driver.
func OpenStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := store.ConnectPostgres(ctx, store.PostgresConfig{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.Migrate {
			if err := store.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
			logger.Info("postgres schema ready")
		}
		logger.Info("connected to postgres")
		return &Stores{
			Products:  store.NewPostgresProductStore(db),
			Customers: store.NewPostgresCustomerStore(db),
			Orders:    store.NewPostgresOrderStore(db),
			close:     db.Close,
		}, nil

	case config.DriverDynamo:
		client, err := store.NewDynamoClient(ctx, cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return nil, err
		}
		logger.Info("using dynamodb",
			zap.String("region", cfg.DynamoDB.Region),
			zap.String("endpoint", cfg.DynamoDB.Endpoint),
		)
		return &Stores{
			Products:  store.NewDynamoProductStore(client, cfg.DynamoDB.ProductsTable),
			Customers: store.NewDynamoCustomerStore(client, cfg.DynamoDB.CustomersTable),
			Orders:    store.NewDynamoOrderStore(client, cfg.DynamoDB.OrdersTable),
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return &Stores{
			Products:  store.NewMemoryProductStore(),
			Customers: store.NewMemoryCustomerStore(),
			Orders:    store.NewMemoryOrderStore(),
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Notifier fans notifications out to the log, the metrics counters and, when
// enabled, Kafka. The returned close func releases the Kafka producer.
func Notifier(cfg config.Config, m *metrics.Metrics, logger *zap.Logger) (notification.Multi, func() error) {
	sinks := notification.Multi{notification.NewLogNotifier(logger)}
	if m != nil {
		sinks = append(sinks, m.Notifier())
	}
	if !cfg.Kafka.Enabled {
		return sinks, func() error { return nil }
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	logger.Info("publishing notifications to kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
	)
	return append(sinks, notification.NewKafkaNotifier(producer)), producer.Close
}
