package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds process-level configuration read from the environment.
// Command-line flags override Addr, DBPath and LogLevel in main.
type Config struct {
	Addr      string        `env:"WEBAWARDS_ADDR" env-default:":8080"`
	DBPath    string        `env:"WEBAWARDS_DB" env-default:"webawards.db"`
	LogLevel  string        `env:"WEBAWARDS_LOG_LEVEL" env-default:"info"`
	JWTSecret string        `env:"WEBAWARDS_JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"WEBAWARDS_TOKEN_TTL" env-default:"168h"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
