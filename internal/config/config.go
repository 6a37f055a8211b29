package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game - defaults for new sessions and the bot.
type Game struct {
	DefaultVariant    string        `yaml:"default-variant" env:"GAME_DEFAULT_VARIANT" env-default:"standard"`
	DefaultDifficulty string        `yaml:"default-difficulty" env:"GAME_DEFAULT_DIFFICULTY" env-default:"easy"`
	ThinkDelay        time.Duration `yaml:"think-delay" env:"GAME_THINK_DELAY" env-default:"0s"`
	ThinkJitter       time.Duration `yaml:"think-jitter" env:"GAME_THINK_JITTER" env-default:"0s"`
	SessionTTL        time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"30m"`
}

// MustLoad - load all configurations in config.yml file, a .env file next to the binary overrides it.
func MustLoad(path string) *Config {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
