package astroApi

import "time"

type Config struct {
	BaseURL        string        `envconfig:"BASE_URL" required:"true"`
	ApiVersion     string        `envconfig:"VERSION" default:"api/v3"`
	ApiKey         string        `envconfig:"API_KEY"`
	SkipSSL        string        `envconfig:"SKIP_SSL"` // Railway требует строки вместо bool
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"30s"`
	DailyQuota     int64         `envconfig:"DAILY_QUOTA" default:"0"`     // 0 - без ограничения
	DefaultCountry string        `envconfig:"DEFAULT_COUNTRY" default:"US"` // для места рождения без ", CC"
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}
