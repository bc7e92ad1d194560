package app

import (
	"fmt"

	server "github.com/admin/astro-insights/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/astro-insights/internal/adapters/secondary/alerter"
	astroApi "github.com/admin/astro-insights/internal/adapters/secondary/astroApi"
	kafkaAdapter "github.com/admin/astro-insights/internal/adapters/secondary/kafka"
	"github.com/admin/astro-insights/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-insights/internal/adapters/secondary/storage/redis"
	"github.com/admin/astro-insights/internal/pkg/logger"
	"github.com/admin/astro-insights/internal/services/skycache"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres *pg.Config             `envconfig:"POSTGRES"`
	Log      *logger.Config         `envconfig:"LOG"`
	Server   *server.Config         `envconfig:"APISERVER"`
	AstroAPI *astroApi.Config       `envconfig:"ASTRO_API"`
	Redis    *redisAdapter.Config   `envconfig:"REDIS"`
	Kafka    *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
	Cache    *skycache.Config       `envconfig:"CACHE"`
}

// NewEnvConfig читает .env для локального запуска, затем переменные окружения с префиксом envPrefix
func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	if _, err := cfg.Cache.Location(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	return cfg, nil
}
