package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ストレージドライバ名
const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	StorageDriver string // file / postgres
	DataDir       string // fileドライバの保存先

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     string // DBポート
	PostgresSSLMode  string
	DatabaseURL      string // あれば最優先

	HashingSecret string // パスワードダイジェストの鍵

	TokenSweepInterval time.Duration // 期限切れトークン掃除の間隔
	PingDelay          time.Duration // /ping の応答遅延
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		StorageDriver: getenv("STORAGE_DRIVER", StorageDriverFile),
		DataDir:       getenv("DATA_DIR", ".data"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getenv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),

		HashingSecret: os.Getenv("HASHING_SECRET"),
	}

	//必須チェック
	if cfg.HashingSecret == "" {
		return Config{}, fmt.Errorf("HASHING_SECRET is required")
	}

	sweepSec, err := envInt("TOKEN_SWEEP_INTERVAL_SEC", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenSweepInterval = time.Duration(sweepSec) * time.Second

	pingMs, err := envInt("PING_DELAY_MS", 5000)
	if err != nil {
		return Config{}, err
	}
	cfg.PingDelay = time.Duration(pingMs) * time.Millisecond

	if cfg.StorageDriver != StorageDriverFile && cfg.StorageDriver != StorageDriverPostgres {
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverFile, StorageDriverPostgres)
	}

	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
