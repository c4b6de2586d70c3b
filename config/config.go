package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	SerpAPI   SerpAPIConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Ranking   RankingConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	SearchTimeout  time.Duration `mapstructure:"search_timeout"`
}

// SerpAPIConfig holds shopping search provider configuration
type SerpAPIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Engine   string `mapstructure:"engine"`
	Country  string `mapstructure:"country"`
	Language string `mapstructure:"language"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// RankingConfig holds the pipeline's tunable thresholds and the static
// trust and merchant tables. The numeric defaults are empirically tuned;
// keeping them here avoids burying magic numbers in the pipeline.
type RankingConfig struct {
	MinScore           float64            `mapstructure:"min_score"`
	OverfetchFactor    int                `mapstructure:"overfetch_factor"`
	OutlierLowBand     float64            `mapstructure:"outlier_low_band"`
	OutlierHighBand    float64            `mapstructure:"outlier_high_band"`
	RelevanceWeight    float64            `mapstructure:"relevance_weight"`
	RatingWeight       float64            `mapstructure:"rating_weight"`
	TrustWeight        float64            `mapstructure:"trust_weight"`
	DefaultTrust       float64            `mapstructure:"default_trust"`
	TrustScores        map[string]float64 `mapstructure:"trust_scores"`
	MerchantSearchURLs map[string]string  `mapstructure:"merchant_search_urls"`
	AggregatorHosts    []string           `mapstructure:"aggregator_hosts"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shoplens/")

	v.SetEnvPrefix("SHOPLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.search_timeout", "30s")

	// SerpAPI defaults. The empty api_key default registers the key with
	// viper so the SHOPLENS_SERPAPI_API_KEY env var is picked up.
	v.SetDefault("serpapi.api_key", "")
	v.SetDefault("serpapi.base_url", "https://serpapi.com")
	v.SetDefault("serpapi.engine", "google_shopping")
	v.SetDefault("serpapi.country", "in")
	v.SetDefault("serpapi.language", "en")

	// Cache defaults: short TTL, entries are cheap
	v.SetDefault("cache.ttl", "60s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Ranking defaults
	v.SetDefault("ranking.min_score", 0.35)
	v.SetDefault("ranking.overfetch_factor", 3)
	v.SetDefault("ranking.outlier_low_band", 0.4)
	v.SetDefault("ranking.outlier_high_band", 2.5)
	v.SetDefault("ranking.relevance_weight", 0.45)
	v.SetDefault("ranking.rating_weight", 0.25)
	v.SetDefault("ranking.trust_weight", 0.30)
	v.SetDefault("ranking.default_trust", 0.5)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.SerpAPI.APIKey == "" {
		return fmt.Errorf("SerpAPI key is required (set SHOPLENS_SERPAPI_API_KEY)")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Ranking.OutlierLowBand <= 0 ||
		config.Ranking.OutlierHighBand <= config.Ranking.OutlierLowBand {
		return fmt.Errorf("outlier bands must satisfy 0 < low < high, got: [%v, %v]",
			config.Ranking.OutlierLowBand, config.Ranking.OutlierHighBand)
	}

	if config.Ranking.OverfetchFactor < 1 {
		return fmt.Errorf("overfetch factor must be at least 1, got: %d", config.Ranking.OverfetchFactor)
	}

	return nil
}
