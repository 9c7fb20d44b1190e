package config

import (
	"flag"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	UploadBackendLocal = "local"
	UploadBackendMinio = "minio"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
	ServerURL   string `env:"-"`

	// Загрузка изображений
	UploadDir     string `env:"UPLOAD_DIR"`
	UploadBackend string `env:"UPLOAD_BACKEND"`
	Minio         MinioConfig

	// Учётная запись администратора, создаётся при старте
	AdminLogin    string `env:"ADMIN_LOGIN"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:","`
	LoginRateLimit int      `env:"LOGIN_RATE_LIMIT" envDefault:"-1"`

	// Seeder
	SeedTarget int `env:"SEED_TARGET"`
}

// MinioConfig настройки S3-совместимого хранилища для изображений.
type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET"`
	UseSSL    bool   `env:"MINIO_USE_SSL"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	var corsOrigins string
	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (файл SQLite или postgres://...)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address:port to listen on")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (requires TLS_CERT_FILE and TLS_KEY_FILE)")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для загруженных изображений")
	flag.StringVar(&cfg.UploadBackend, "upload-backend", cfg.UploadBackend, "image storage backend: local | minio")
	flag.StringVar(&cfg.AdminLogin, "admin-login", cfg.AdminLogin, "логин администратора по умолчанию")
	flag.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "пароль администратора по умолчанию")
	flag.StringVar(&corsOrigins, "cors-origins", strings.Join(cfg.CORSOrigins, ","), "comma separated list of allowed CORS origins")
	flag.IntVar(&cfg.LoginRateLimit, "login-rate-limit", cfg.LoginRateLimit, "login attempts per minute per IP, 0 disables")
	flag.IntVar(&cfg.SeedTarget, "seed-target", cfg.SeedTarget, "сколько демонстрационных штор должно быть в БД")

	flag.Parse()

	cfg.CORSOrigins = splitList(corsOrigins)

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "curtains.db"
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	cfg.UploadBackend = strings.ToLower(strings.TrimSpace(cfg.UploadBackend))
	if cfg.UploadBackend != UploadBackendMinio {
		cfg.UploadBackend = UploadBackendLocal
	}
	if cfg.Minio.Bucket == "" {
		cfg.Minio.Bucket = "curtains"
	}

	if cfg.AdminLogin == "" {
		cfg.AdminLogin = "admin"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.LoginRateLimit < 0 {
		cfg.LoginRateLimit = 20
	}
	if cfg.SeedTarget <= 0 {
		cfg.SeedTarget = 50
	}

	return cfg
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			res = append(res, p)
		}
	}
	return res
}
