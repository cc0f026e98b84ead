package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort         int           `json:"server_port"`
	JWTSecretKey       string        `json:"jwt_secret_key"`
	JWTExpirationHours int           `json:"jwt_expiration_hours"`
	DefaultRateLimit   int           `json:"default_rate_limit"`
	GlobalRateLimit    int           `json:"global_rate_limit"`
	PreviewSecretKey   string        `json:"preview_secret_key"`
	PreviewBaseURL     string        `json:"preview_base_url"`
	PreviewTokenTTL    time.Duration `json:"preview_token_ttl"`
	PublicBaseURL      string        `json:"public_base_url"`
	DefaultLocale      string        `json:"default_locale"`
	SupportedLocales   []string      `json:"supported_locales"`
	TenantCacheTTL     time.Duration `json:"tenant_cache_ttl"`
	AutoMigrate        bool          `json:"auto_migrate"`
	MaxUploadBytes     int64         `json:"max_upload_bytes"`
	ScraperRPS         int           `json:"scraper_rps"`
	PurgeInterval      time.Duration `json:"purge_interval"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per tenant
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")

	return &Config{
		ServerPort:         serverPort,
		JWTSecretKey:       jwtSecret,
		JWTExpirationHours: jwtExpirationHours,
		DefaultRateLimit:   defaultRateLimit,
		GlobalRateLimit:    globalRateLimit,
		// Preview tokens fall back to the admin secret so a single key is enough in development
		PreviewSecretKey: getEnvWithDefault("PREVIEW_SECRET_KEY", jwtSecret),
		PreviewBaseURL:   strings.TrimRight(getEnvWithDefault("PREVIEW_BASE_URL", "http://localhost:3000"), "/"),
		PreviewTokenTTL:  getEnvDurationWithDefault("PREVIEW_TOKEN_TTL", time.Hour),
		PublicBaseURL:    strings.TrimRight(getEnvWithDefault("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		DefaultLocale:    getEnvWithDefault("DEFAULT_LOCALE", "en"),
		SupportedLocales: splitList(getEnvWithDefault("SUPPORTED_LOCALES", "en,ru,uk")),
		TenantCacheTTL:   getEnvDurationWithDefault("TENANT_CACHE_TTL", 5*time.Minute),
		AutoMigrate:      getEnvWithDefault("DB_AUTO_MIGRATE", "false") == "true",
		MaxUploadBytes:   int64(getEnvIntWithDefault("MAX_UPLOAD_BYTES", 15*1024*1024)),
		ScraperRPS:       getEnvIntWithDefault("SCRAPER_RPS", 2),
		PurgeInterval:    getEnvDurationWithDefault("SUBSCRIBER_PURGE_INTERVAL", 24*time.Hour),
	}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
