package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "CARCATALOG"

// Source kinds for Config.Source.
const (
	SourceHTTP   = "http"
	SourceMirror = "mirror"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string
	SyncAddr string

	Source              string
	ProviderURL         string
	ProviderTimeout     time.Duration
	ProviderConcurrency int
	ProviderRPS         float64
	MirrorPath          string
	MirrorAddr          string
	LoadBatchSize       int

	LogLevel  string
	LogFormat string
}

// LoadConfig reads CARCATALOG_* environment variables on top of defaults,
// e.g. CARCATALOG_PROVIDER_URL or CARCATALOG_LOG_LEVEL.
func LoadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("grpc_addr", ":9090")
	v.SetDefault("sync_addr", ":7070")
	v.SetDefault("source", SourceHTTP)
	v.SetDefault("provider_url", "http://localhost:8084")
	v.SetDefault("provider_timeout", "10s")
	v.SetDefault("provider_concurrency", 8)
	v.SetDefault("provider_rps", 50)
	v.SetDefault("mirror_path", defaultMirrorPath())
	v.SetDefault("mirror_addr", ":8084")
	v.SetDefault("load_batch_size", 0)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_format", "json")

	cfg := Config{
		HTTPAddr:            v.GetString("http_addr"),
		GRPCAddr:            v.GetString("grpc_addr"),
		SyncAddr:            v.GetString("sync_addr"),
		Source:              strings.ToLower(strings.TrimSpace(v.GetString("source"))),
		ProviderURL:         strings.TrimRight(v.GetString("provider_url"), "/"),
		ProviderTimeout:     v.GetDuration("provider_timeout"),
		ProviderConcurrency: v.GetInt("provider_concurrency"),
		ProviderRPS:         v.GetFloat64("provider_rps"),
		MirrorPath:          v.GetString("mirror_path"),
		MirrorAddr:          v.GetString("mirror_addr"),
		LoadBatchSize:       v.GetInt("load_batch_size"),
		LogLevel:            strings.ToUpper(v.GetString("log_level")),
		LogFormat:           strings.ToLower(v.GetString("log_format")),
	}

	// fall back to defaults on nonsense values
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 10 * time.Second
	}
	if cfg.ProviderConcurrency <= 0 {
		cfg.ProviderConcurrency = 8
	}
	if cfg.LoadBatchSize < 0 {
		cfg.LoadBatchSize = 0
	}
	return cfg
}

// local default: ~/.carcatalog/mirror.db
func defaultMirrorPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".carcatalog", "mirror.db")
}
