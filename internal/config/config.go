package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	"github.com/urbanmove/service-mobility/internal/domain/route"
	"github.com/urbanmove/service-mobility/internal/maps"
	"github.com/urbanmove/service-mobility/internal/platform/config"
)

// EnvPrefix prefixes every key read by the mobility service.
const EnvPrefix = "MOBILITY"

var serviceDefaults = map[string]interface{}{
	"DB_NAME":                         "mobility",
	"REDIS_URL":                       "redis://localhost:6379/0",
	"NATS_URL":                        "nats://localhost:4222",
	"GOOGLE_MAPS_API_KEY":             "",
	"MAPS_TIMEOUT":                    maps.DefaultTimeout.String(),
	"ARRIVALS_SOURCE":                 string(arrival.SourceStatic),
	"ESTIMATOR_SUSTAINABLE_FACTOR":    route.DefaultPolicy().SustainableFactor,
	"ESTIMATOR_BUS_PENALTY":           route.DefaultPolicy().BusPenalty,
	"ESTIMATOR_METRO_BONUS":           route.DefaultPolicy().MetroBonus,
	"ESTIMATOR_FALLBACK_DISTANCE_KM":  route.DefaultPolicy().FallbackDistanceKm,
	"ESTIMATOR_FALLBACK_DURATION_MIN": route.DefaultPolicy().FallbackDurationMinutes,
}

// ServiceConfig holds all configuration for the mobility service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    config.DatabaseConfig
	JWTConfig   config.JWTConfig
	KafkaConfig config.KafkaConfig

	RedisURL       string
	NATSURL        string
	MapsAPIKey     string
	MapsTimeout    time.Duration
	ArrivalsSource arrival.SourceKind
	Policy         route.Policy
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load(EnvPrefix)
	if err != nil {
		return nil, err
	}
	for key, value := range serviceDefaults {
		v.SetDefault(key, value)
		config.Bind(v, EnvPrefix, key)
	}

	source, err := arrival.ParseSourceKind(v.GetString("ARRIVALS_SOURCE"))
	if err != nil {
		return nil, err
	}

	appEnv := config.GetAppEnv(v)
	jwtConfig := config.LoadJWTConfig(v)
	if appEnv == "production" {
		if jwtConfig.Secret == config.DefaultJWTSecret || len(jwtConfig.Secret) < config.MinJWTSecretLength {
			return nil, fmt.Errorf("JWT_SECRET must be set to at least %d characters in production", config.MinJWTSecretLength)
		}
	}

	policy := loadPolicy(v)
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid estimator settings: %w", err)
	}

	return &ServiceConfig{
		Port:           config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:         appEnv,
		DBConfig:       config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:      jwtConfig,
		KafkaConfig:    config.LoadKafkaConfig(v),
		RedisURL:       v.GetString("REDIS_URL"),
		NATSURL:        v.GetString("NATS_URL"),
		MapsAPIKey:     v.GetString("GOOGLE_MAPS_API_KEY"),
		MapsTimeout:    v.GetDuration("MAPS_TIMEOUT"),
		ArrivalsSource: source,
		Policy:         policy,
	}, nil
}

func loadPolicy(v *viper.Viper) route.Policy {
	return route.Policy{
		SustainableFactor:       v.GetFloat64("ESTIMATOR_SUSTAINABLE_FACTOR"),
		BusPenalty:              v.GetFloat64("ESTIMATOR_BUS_PENALTY"),
		MetroBonus:              v.GetFloat64("ESTIMATOR_METRO_BONUS"),
		FallbackDistanceKm:      v.GetFloat64("ESTIMATOR_FALLBACK_DISTANCE_KM"),
		FallbackDurationMinutes: v.GetFloat64("ESTIMATOR_FALLBACK_DURATION_MIN"),
	}
}
