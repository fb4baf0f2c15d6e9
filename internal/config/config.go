package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode        string        `mapstructure:"mode"`
	Host        string        `mapstructure:"host"`
	GamePort    int           `mapstructure:"game_port"`
	ChatPort    int           `mapstructure:"chat_port"`
	HTTPPort    int           `mapstructure:"http_port"`
	MaxRounds   int           `mapstructure:"max_rounds"`
	TurnTimeout time.Duration `mapstructure:"turn_timeout"`
	Secret      string        `mapstructure:"secret"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("game_port", 65430)
	v.SetDefault("chat_port", 65431)
	v.SetDefault("http_port", 8080)
	v.SetDefault("max_rounds", 13)
	v.SetDefault("turn_timeout", "0s")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).
		Int("game_port", cfg.GamePort).Int("chat_port", cfg.ChatPort).
		Int("http_port", cfg.HTTPPort).Int("max_rounds", cfg.MaxRounds).Msg("config ready")
	return &cfg, nil
}
