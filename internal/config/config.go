package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Session SessionConfig `mapstructure:"session"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Log     LogConfig     `mapstructure:"log"`
	AppHost string        `mapstructure:"host"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

type SessionConfig struct {
	Secret string `mapstructure:"secret"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	From     string `mapstructure:"from"`
	Name     string `mapstructure:"name"`
	Disabled bool   `mapstructure:"disabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ErrMissingSecret and ErrMissingSessionSecret are returned when a
// signing secret is not configured. There are no built-in fallback
// values: an empty session secret would leave session cookies forgeable.
var (
	ErrMissingSecret        = errors.New("jwt.secret must be set via config file or environment")
	ErrMissingSessionSecret = errors.New("session.secret must be set via config file or environment")
)

func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/configs")
	viper.SetConfigName("settings")
	viper.SetConfigType("yml")

	viper.SetDefault("jwt.ttl_minutes", 15)
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.Session.Secret == "" {
		return nil, ErrMissingSessionSecret
	}

	return &cfg, nil
}
