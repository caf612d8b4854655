package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3003"`
}

// DatabaseConfig selects the sql driver and its DSN.
// Supported drivers: sqlite3, pgx, mysql (mysql needs parseTime=true in the DSN).
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite3"`
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"./users_tasks.db?_foreign_keys=on"`
}

// CacheConfig enables the list response cache when Type is set.
type CacheConfig struct {
	Type          string        `yaml:"type" env:"CACHE_TYPE"`
	RedisAddr     string        `yaml:"redis_addr" env:"CACHE_REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"CACHE_REDIS_DB" env-default:"0"`
	TTL           time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"1m"`
}

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
}

// Load reads configPath when it exists and falls back to the environment otherwise.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		err := cleanenv.ReadEnv(&cfg)
		return cfg, err
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			cfg = Config{}
			err := cleanenv.ReadEnv(&cfg)
			return cfg, err
		}
		return cfg, err
	}

	return cfg, nil
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}
	return cfg
}
