package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/arka-distribution/internal/api"
	"github.com/example/arka-distribution/internal/app"
	"github.com/example/arka-distribution/internal/command"
	"github.com/example/arka-distribution/internal/config"
	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/inventory"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/logging"
	"github.com/example/arka-distribution/internal/metrics"
	"github.com/example/arka-distribution/internal/query"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "api:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New("api", cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("kafka", cfg.Kafka.Enabled),
	)

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	m := metrics.New(cfg.App.Name)
	notifier, closeNotifier := app.Notifier(cfg, m, logger)
	defer closeNotifier()

	// Initialize domain services
	inventorySvc := inventory.NewService(stores.Products, notifier, logger.Named("inventory"))
	customerSvc := customer.NewService(stores.Customers, logger.Named("customer"))
	orderSvc := order.NewService(stores.Orders, stores.Products, stores.Customers, notifier, logger.Named("order"))

	// Initialize handlers
	cmdHandler := command.NewHandler(inventorySvc, customerSvc, orderSvc)
	queryHandler := query.NewHandler(inventorySvc, customerSvc, orderSvc)
	router := api.NewRouter(api.RouterConfig{
		Handlers: api.NewHandlers(cmdHandler, queryHandler, logger.Named("http")),
		Logger:   logger.Named("http"),
		Metrics:  m,
	})

	server := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
