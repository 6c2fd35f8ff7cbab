// Package config carga la configuración desde entorno y, opcionalmente, un archivo dotenv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid config")

const DefaultEnvFile = "information.env"

type Config struct {
	Port string

	LogLevel  string
	LogFormat string
	AppName   string

	// Almacenamiento: DB_DSN (Postgres) gana sobre SQLITE_PATH; sin ninguno, memoria.
	DBDSN      string
	SQLitePath string

	// 0 desactiva la expiración de sesiones.
	SessionIdleTimeout time.Duration
	BreedCatalogPath   string

	TelegramBotToken string
	GoogleMapAPIKey  string
	PlacesBaseURL    string
	AWSRegion        string

	JWTSecret     string
	WebhookSecret string

	PackageWeightGrams float64
}

func defaults(v *viper.Viper) {
	v.SetDefault("ENV_FILE", DefaultEnvFile)
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "dogdiet")
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("PACKAGE_WEIGHT_GRAMS", "1000")
}

// Load lee el dotenv (si existe) y luego el entorno. El entorno ya definido
// no se pisa con el archivo.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	if err := loadEnvFile(v.GetString("ENV_FILE")); err != nil {
		return Config{}, err
	}
	return fromViper(v)
}

func loadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: env file %s: %v", ErrInvalid, path, err)
	}
	return nil
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:             strings.TrimSpace(v.GetString("PORT")),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		AppName:          v.GetString("APP_NAME"),
		DBDSN:            strings.TrimSpace(v.GetString("DB_DSN")),
		SQLitePath:       strings.TrimSpace(v.GetString("SQLITE_PATH")),
		BreedCatalogPath: strings.TrimSpace(v.GetString("BREED_CATALOG_PATH")),
		TelegramBotToken: strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
		GoogleMapAPIKey:  strings.TrimSpace(v.GetString("GOOGLE_MAP_API_KEY")),
		PlacesBaseURL:    strings.TrimSpace(v.GetString("PLACES_BASE_URL")),
		AWSRegion:        strings.TrimSpace(v.GetString("AWS_REGION")),
		JWTSecret:        v.GetString("JWT_SECRET"),
		WebhookSecret:    v.GetString("WEBHOOK_SECRET"),
	}

	timeout, err := time.ParseDuration(strings.TrimSpace(v.GetString("SESSION_IDLE_TIMEOUT")))
	if err != nil {
		return Config{}, fmt.Errorf("%w: SESSION_IDLE_TIMEOUT: %v", ErrInvalid, err)
	}
	if timeout < 0 {
		return Config{}, fmt.Errorf("%w: SESSION_IDLE_TIMEOUT must not be negative", ErrInvalid)
	}
	cfg.SessionIdleTimeout = timeout

	grams, err := strconv.ParseFloat(strings.TrimSpace(v.GetString("PACKAGE_WEIGHT_GRAMS")), 64)
	if err != nil || grams <= 0 {
		return Config{}, fmt.Errorf("%w: PACKAGE_WEIGHT_GRAMS must be a positive number", ErrInvalid)
	}
	cfg.PackageWeightGrams = grams

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("%w: PORT must be numeric", ErrInvalid)
	}
	return cfg, nil
}

// Addr devuelve ":PORT" para http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// JanitorInterval barre sesiones con una frecuencia proporcional al timeout.
func (c Config) JanitorInterval() time.Duration {
	if c.SessionIdleTimeout <= 0 {
		return 0
	}
	every := c.SessionIdleTimeout / 4
	if every < time.Second {
		every = time.Second
	}
	return every
}
