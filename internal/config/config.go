package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FanoutLocal = "local"
	FanoutRedis = "redis"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string    `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	StaticDir string    `yaml:"static-dir" env:"STATIC_DIR" env-default:"./public"`
	Fanout    string    `yaml:"fanout" env:"FANOUT" env-default:"local"`
	Redis     Redis     `yaml:"redis"`
	WebSocket WebSocket `yaml:"websocket"`
}

type Redis struct {
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"tictactoe:gameboard"`
}

type WebSocket struct {
	SendBuffer   int           `yaml:"send-buffer" env-default:"16"`
	WriteTimeout time.Duration `yaml:"write-timeout" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Fanout != FanoutLocal && config.Fanout != FanoutRedis {
		return nil, fmt.Errorf("unknown fanout %q, want %q or %q", config.Fanout, FanoutLocal, FanoutRedis)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
