package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/geometry"
	"github.com/jengzang/fleetmap-backend-go/internal/heatmap"
	"github.com/jengzang/fleetmap-backend-go/internal/jitter"
	"github.com/jengzang/fleetmap-backend-go/internal/overlay"
)

// Config is the application configuration
type Config struct {
	Env            string `validate:"required"`
	Port           string `validate:"required"`
	DBPath         string `validate:"required"`
	MigrationsPath string
	JWTSecret      string `validate:"required,min=16"`
	LogLevel       string `validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat      string `validate:"oneof=json text"`

	// GazetteerPath is an optional YAML file merged over the built-in tables
	GazetteerPath string

	AttachDelay  time.Duration `validate:"gte=0"`
	WriteTimeout time.Duration `validate:"gt=0"`

	Jitter jitter.Config
	Layer  heatmap.LayerStyle

	PathMaxDepth  int `validate:"gt=0"`
	PathCacheSize int `validate:"gt=0"`

	RateLimit       int           `validate:"gt=0"`
	RateLimitWindow time.Duration `validate:"gt=0"`
}

// Load reads .env (outside production) and then the environment, applying
// defaults for anything unset.
func Load() (*Config, error) {
	env := GetEnv("APP_ENV", "local")
	if env != "production" {
		if err := godotenv.Load(GetEnv("ENV_FILE", ".env")); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("failed to load env file")
		}
	}

	defJitter := jitter.DefaultConfig()
	defLayer := heatmap.DefaultLayerStyle()

	cfg := &Config{
		Env:            GetEnv("APP_ENV", "local"),
		Port:           GetEnv("PORT", ":8080"),
		DBPath:         GetEnv("DB_PATH", "./data/fleetmap.db"),
		MigrationsPath: GetEnv("MIGRATIONS_PATH", ""),
		JWTSecret:      GetEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		LogLevel:       strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(GetEnv("LOG_FORMAT", "json")),
		GazetteerPath:  GetEnv("GAZETTEER_PATH", ""),

		AttachDelay:  GetEnvAsDuration("OVERLAY_ATTACH_DELAY", overlay.DefaultAttachDelay),
		WriteTimeout: GetEnvAsDuration("WS_WRITE_TIMEOUT", overlay.DefaultWriteTimeout),

		Jitter: jitter.Config{
			Density:     GetEnvAsFloat("JITTER_DENSITY", defJitter.Density),
			Radius:      GetEnvAsFloat("JITTER_RADIUS", defJitter.Radius),
			WeightScale: GetEnvAsFloat("JITTER_WEIGHT_SCALE", defJitter.WeightScale),
		},
		Layer: heatmap.LayerStyle{
			RadiusPixels: GetEnvAsInt("HEATMAP_RADIUS_PIXELS", defLayer.RadiusPixels),
			ColorRange:   defLayer.ColorRange,
		},

		PathMaxDepth:  GetEnvAsInt("PATH_MAX_DEPTH", geometry.DefaultMaxDepth),
		PathCacheSize: GetEnvAsInt("PATH_CACHE_SIZE", geometry.DefaultCacheSize),

		RateLimit:       GetEnvAsInt("RATE_LIMIT", 100),
		RateLimitWindow: GetEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	if colors := GetEnv("HEATMAP_COLOR_RANGE", ""); colors != "" {
		rng, err := ParseColorRange(colors)
		if err != nil {
			return nil, err
		}
		cfg.Layer.ColorRange = rng
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ParseColorRange parses "#rrggbb,#rrggbb,..." into RGB triples
func ParseColorRange(s string) ([][3]uint8, error) {
	var out [][3]uint8
	for _, part := range strings.Split(s, ",") {
		hex := strings.TrimPrefix(strings.TrimSpace(part), "#")
		if len(hex) != 6 {
			return nil, fmt.Errorf("invalid color %q", part)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", part, err)
		}
		out = append(out, [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)})
	}
	return out, nil
}

// GetEnv returns the variable or defaultValue when unset
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer value, using default: %d", defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid float value, using default: %v", defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid boolean value, using default: %v", defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration accepts Go duration strings ("150ms") or bare milliseconds
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	if ms, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid duration value, using default: %v", defaultValue)
		return defaultValue
	}

	return value
}
