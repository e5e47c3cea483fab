package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=interpreter_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChannelID = "MoragoApp"
const defaultChannelKey = "MoragoLedgerKey001"
const defaultHTTPPort = "8080"
const defaultCommissionPercent = 10.0
const defaultShutdownTimeout = 15 * time.Second

type StorageDriver string

const (
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverMemory   StorageDriver = "memory"
)

type Config struct {
	DatabaseDSN       string
	MigrationsDir     string
	StorageDriver     StorageDriver
	HTTPPort          string
	ChannelID         string
	ChannelKeyHash    string
	CommissionPercent float64
	EventsQueueURL    string
	ShutdownTimeout   time.Duration
	MaxOpenConns      int
}

func Load() (Config, error) {
	conn := envOr("DATABASE_DSN", defaultConnectionString)

	driver := StorageDriver(strings.ToLower(envOr("STORAGE_DRIVER", string(StorageDriverPostgres))))
	if driver != StorageDriverPostgres && driver != StorageDriverMemory {
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be postgres or memory, got %q", driver)
	}

	keyHash, err := channelKeyHash()
	if err != nil {
		return Config{}, err
	}

	commission, err := strconv.ParseFloat(envOr("COMMISSION_PERCENT", strconv.FormatFloat(defaultCommissionPercent, 'f', -1, 64)), 64)
	if err != nil {
		return Config{}, fmt.Errorf("COMMISSION_PERCENT must be numeric: %w", err)
	}
	if commission < 0 || commission > 100 {
		return Config{}, fmt.Errorf("COMMISSION_PERCENT must be between 0 and 100, got %v", commission)
	}

	shutdown, err := time.ParseDuration(envOr("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration: %w", err)
	}

	maxOpen, err := strconv.Atoi(envOr("DB_MAX_OPEN_CONNS", "30"))
	if err != nil || maxOpen <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be a positive integer")
	}

	return Config{
		DatabaseDSN:       normalizeConnectionString(conn),
		MigrationsDir:     envOr("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		StorageDriver:     driver,
		HTTPPort:          envOr("HTTP_PORT", defaultHTTPPort),
		ChannelID:         envOr("CHANNEL_ID", defaultChannelID),
		ChannelKeyHash:    keyHash,
		CommissionPercent: commission,
		EventsQueueURL:    envOr("EVENTS_SQS_QUEUE_URL", ""),
		ShutdownTimeout:   shutdown,
		MaxOpenConns:      maxOpen,
	}, nil
}

// channelKeyHash prefers a pre-hashed CHANNEL_KEY_HASH and falls back to
// hashing CHANNEL_KEY (or the default key) at startup.
func channelKeyHash() (string, error) {
	if hash := strings.TrimSpace(os.Getenv("CHANNEL_KEY_HASH")); hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return "", fmt.Errorf("CHANNEL_KEY_HASH is not a bcrypt hash: %w", err)
		}
		return hash, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(envOr("CHANNEL_KEY", defaultChannelKey)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash channel key: %w", err)
	}
	return string(hash), nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
