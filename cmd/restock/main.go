// Command restock runs one restock report: every product below the low-stock
// threshold raises an alert through the configured notifiers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/arka-distribution/internal/app"
	"github.com/example/arka-distribution/internal/config"
	"github.com/example/arka-distribution/internal/domain/inventory"
	"github.com/example/arka-distribution/internal/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "restock:", err)
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
	logger, err := logging.New("restock", cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	notifier, closeNotifier := app.Notifier(cfg, nil, logger)
	defer closeNotifier()

	inventorySvc := inventory.NewService(stores.Products, notifier, logger)
	products, err := inventorySvc.GenerateRestockReport(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		logger.Info("needs restock",
			zap.String("product_id", p.ID.String()),
			zap.String("name", p.Name),
			zap.Int("stock", p.Stock()),
		)
	}
	logger.Info("restock report done", zap.Int("count", len(products)))
	return nil
}
