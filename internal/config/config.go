// Package config carga la configuración del servicio desde variables
// de entorno (12-factor). Todos los campos tienen default salvo los
// que habilitan integraciones opcionales: sin DB_DSN se usa storage en
// memoria, sin REDIS_URL no hay cache de geocoding y sin credenciales
// de identidad el auth queda en modo dev.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"pet-donor-connect"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Postgres. Vacío => repos en memoria (dev / tests).
	DBDSN string `env:"DB_DSN" envDefault:""`

	// Redis para la cache de geocoding. Vacío => sin cache.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Servicio externo de geocoding (API estilo Nominatim).
	GeocodeBaseURL string        `env:"GEOCODE_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocodeTimeout time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"5s"`

	// Servicio de identidad. Ambos vacíos => modo dev (X-Debug-User-ID).
	IdentityBaseURL string        `env:"IDENTITY_BASE_URL" envDefault:""`
	IdentityAPIKey  string        `env:"IDENTITY_API_KEY" envDefault:""`
	IdentityTimeout time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"5s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Radio default del mapa de donantes cuando el cliente no manda uno.
	DefaultRadiusKm float64 `env:"DEFAULT_RADIUS_KM" envDefault:"10"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DefaultRadiusKm < 0 {
		return Config{}, fmt.Errorf("DEFAULT_RADIUS_KM must be >= 0, got %v", cfg.DefaultRadiusKm)
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IdentityConfigured indica si hay verifier real; si no, el middleware
// de auth acepta X-Debug-User-ID.
func (c Config) IdentityConfigured() bool {
	return strings.TrimSpace(c.IdentityBaseURL) != "" && strings.TrimSpace(c.IdentityAPIKey) != ""
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.AppPort)
}
