// Package config loads service configuration from the environment with viper.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// KafkaConfig holds broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// DefaultJWTSecret is the development-only signing secret.
const DefaultJWTSecret = "change-me-in-production"

// MinJWTSecretLength is the shortest secret accepted in production.
const MinJWTSecretLength = 32

var defaults = map[string]interface{}{
	"SERVICE_PORT":       ":8080",
	"APP_ENV":            "development",
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"DB_USER":            "postgres",
	"DB_PASSWORD":        "postgres",
	"DB_SSLMODE":         "disable",
	"JWT_SECRET":         DefaultJWTSecret,
	"JWT_TTL":            "24h",
	"KAFKA_BROKERS":      "localhost:9092",
	"KAFKA_GROUP_PREFIX": "",
}

// Load reads an optional .env file and returns a viper instance where every
// key resolves PREFIX_KEY first and KEY second.
func Load(prefix string) (*viper.Viper, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		Bind(v, prefix, key)
	}
	return v, nil
}

// Bind registers key so it is read from PREFIX_KEY, falling back to KEY.
func Bind(v *viper.Viper, prefix, key string) {
	_ = v.BindEnv(key, prefix+"_"+key, key)
}

// GetServicePort returns the listen address, adding a leading colon to bare ports.
func GetServicePort(v *viper.Viper, key string) string {
	port := v.GetString(key)
	if port != "" && !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

// GetAppEnv returns the deployment environment name.
func GetAppEnv(v *viper.Viper) string {
	return strings.ToLower(v.GetString("APP_ENV"))
}

// LoadDatabaseConfig reads DB_* keys; nameKey selects the database name key.
func LoadDatabaseConfig(v *viper.Viper, nameKey string) DatabaseConfig {
	return DatabaseConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetString("DB_PORT"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		DBName:   v.GetString(nameKey),
		SSLMode:  v.GetString("DB_SSLMODE"),
	}
}

// LoadJWTConfig reads JWT_SECRET and JWT_TTL.
func LoadJWTConfig(v *viper.Viper) JWTConfig {
	ttl := v.GetDuration("JWT_TTL")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return JWTConfig{Secret: v.GetString("JWT_SECRET"), TTL: ttl}
}

// LoadKafkaConfig reads the comma separated KAFKA_BROKERS list.
func LoadKafkaConfig(v *viper.Viper) KafkaConfig {
	return KafkaConfig{
		Brokers:     SplitList(v.GetString("KAFKA_BROKERS")),
		GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
	}
}

// SplitList splits a comma separated value, dropping empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
