// Package config loads settings from an optional YAML file overlaid with
// ARKA_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ARKA_"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverDynamo   = "dynamodb"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
	} `koanf:"app"`

	Store struct {
		Driver string `koanf:"driver"`
	} `koanf:"store"`

	Postgres struct {
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
		Migrate         bool          `koanf:"migrate"`
	} `koanf:"postgres"`

	DynamoDB struct {
		Region         string `koanf:"region"`
		Endpoint       string `koanf:"endpoint"`
		ProductsTable  string `koanf:"products_table"`
		CustomersTable string `koanf:"customers_table"`
		OrdersTable    string `koanf:"orders_table"`
	} `koanf:"dynamodb"`

	Kafka struct {
		Enabled bool     `koanf:"enabled"`
		Brokers []string `koanf:"brokers"`
		Topic   string   `koanf:"topic"`
		GroupID string   `koanf:"group_id"`
	} `koanf:"kafka"`

	SMTP struct {
		Host       string `koanf:"host"`
		Port       string `koanf:"port"`
		From       string `koanf:"from"`
		OpsAddress string `koanf:"ops_address"`
	} `koanf:"smtp"`
}

var defaults = map[string]any{
	"app.name":                   "arka",
	"app.http_addr":              ":8080",
	"app.log_level":              "info",
	"store.driver":               DriverMemory,
	"postgres.max_open_conns":    25,
	"postgres.max_idle_conns":    5,
	"postgres.conn_max_lifetime": 5 * time.Minute,
	"postgres.migrate":           true,
	"dynamodb.region":            "us-east-1",
	"dynamodb.products_table":    "arka-products",
	"dynamodb.customers_table":   "arka-customers",
	"dynamodb.orders_table":      "arka-orders",
	"kafka.brokers":              []string{"localhost:9092"},
	"kafka.topic":                "arka-notifications",
	"kafka.group_id":             "arka-notifier",
	"smtp.host":                  "localhost",
	"smtp.port":                  "1025",
	"smtp.from":                  "no-reply@arka.local",
}

// Load applies defaults, then the YAML file at path (skipped when path is empty
// or missing), then ARKA_ environment variables, e.g. ARKA_POSTGRES__DSN.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return Config{}, fmt.Errorf("default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps ARKA_KAFKA__BROKERS=a,b to kafka.brokers=[a b].
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, envPrefix), "__", "."))
	if key == "kafka.brokers" {
		return key, strings.Split(value, ",")
	}
	return key, value
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn required when store.driver is %s", DriverPostgres)
		}
	case DriverDynamo:
		if c.DynamoDB.Region == "" {
			return fmt.Errorf("dynamodb.region required when store.driver is %s", DriverDynamo)
		}
	default:
		return fmt.Errorf("store.driver must be one of %s, %s, %s", DriverMemory, DriverPostgres, DriverDynamo)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("kafka.brokers and kafka.topic required when kafka is enabled")
	}
	return nil
}
