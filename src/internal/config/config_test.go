package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeConnectionString(t *testing.T) {
	got := normalizeConnectionString("Host=db;Port=5433;Database=ledger;Username=app;Password=secret;Timeout=10;CommandTimeout=20")
	assert.Equal(t, "host=db port=5433 dbname=ledger user=app password=secret connect_timeout=10 statement_timeout=20s sslmode=disable", got)
}

func TestNormalizeConnectionString_KeepsExplicitSSLMode(t *testing.T) {
	got := normalizeConnectionString("Host=db;SslMode=require")
	assert.Equal(t, "host=db sslmode=require", got)
}

func TestNormalizeConnectionString_PassesURLsThrough(t *testing.T) {
	url := "postgres://app:secret@db:5432/ledger?sslmode=disable"
	assert.Equal(t, url, normalizeConnectionString(url))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_DSN", "STORAGE_DRIVER", "CHANNEL_KEY_HASH", "CHANNEL_KEY", "COMMISSION_PERCENT", "SHUTDOWN_TIMEOUT", "HTTP_PORT", "EVENTS_SQS_QUEUE_URL", "DB_MAX_OPEN_CONNS", "CHANNEL_ID", "MIGRATIONS_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, defaultChannelID, cfg.ChannelID)
	assert.Equal(t, 10.0, cfg.CommissionPercent)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.EventsQueueURL)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.ChannelKeyHash), []byte(defaultChannelKey)))
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("COMMISSION_PERCENT", "150")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("COMMISSION_PERCENT", "5")
	t.Setenv("CHANNEL_KEY_HASH", "not-a-hash")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_UsesProvidedHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("k"), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("CHANNEL_KEY_HASH", string(hash))
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, string(hash), cfg.ChannelKeyHash)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
}
