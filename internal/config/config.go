package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultEncryptionKey is the documented fallback used when ENCRYPTION_KEY is
// not set. It offers no real confidentiality and exists only so that a fresh
// dev environment still starts; callers are expected to warn when it is used.
const DefaultEncryptionKey = "default_secret_key"

type Config struct {
	// Emulator-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL     string `env:"-"`
	EncryptionKey string `env:"ENCRYPTION_KEY"`
	TokenFile     string `env:"TOKEN_FILE"`
	KeyIsDefault  bool   `env:"-"` // true when EncryptionKey fell back to the default
	Version       bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Emulator flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "путь к файлу SQLite эмулятора")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи ID-токенов")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the backend (may be host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.EncryptionKey, "encryption-key", cfg.EncryptionKey, "static key for locker passwords and the PIN")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.EncryptionKey == "" {
		cfg.EncryptionKey = DefaultEncryptionKey
		cfg.KeyIsDefault = true
	}
	if cfg.DatabaseDSN == "" {
		home, _ := os.UserHomeDir()
		cfg.DatabaseDSN = filepath.Join(home, "passlocker-emulator.db")
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		home, _ := os.UserHomeDir()
		cfg.TokenFile = filepath.Join(home, ".pl_token")
	}

	return cfg
}
