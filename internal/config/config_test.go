package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  http_addr: ":9000"
store:
  driver: postgres
postgres:
  dsn: postgres://file
  conn_max_lifetime: 1m
kafka:
  enabled: true
`), 0o600))
	t.Setenv("ARKA_POSTGRES__DSN", "postgres://env")
	t.Setenv("ARKA_KAFKA__BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.App.HTTPAddr)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://env", cfg.Postgres.DSN)
	assert.Equal(t, time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.NoError(t, err)
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("ARKA_STORE__DRIVER", "postgres")

	_, err := Load("")

	assert.ErrorContains(t, err, "postgres.dsn")
}

func TestValidate_UnknownDriver(t *testing.T) {
	var cfg Config
	cfg.App.HTTPAddr = ":8080"
	cfg.Store.Driver = "mongo"

	assert.Error(t, cfg.Validate())
}
