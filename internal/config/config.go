package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Backend struct {
	BaseURL        string        `yaml:"BACKEND_BASE_URL" env:"BACKEND_BASE_URL" env-required:"true"`
	Timeout        time.Duration `yaml:"BACKEND_TIMEOUT" env:"BACKEND_TIMEOUT" env-default:"10s"`
	MaxRetries     int           `yaml:"BACKEND_MAX_RETRIES" env:"BACKEND_MAX_RETRIES" env-default:"3"`
	RetryWaitMin   time.Duration `yaml:"BACKEND_RETRY_WAIT_MIN" env:"BACKEND_RETRY_WAIT_MIN" env-default:"500ms"`
	RetryWaitMax   time.Duration `yaml:"BACKEND_RETRY_WAIT_MAX" env:"BACKEND_RETRY_WAIT_MAX" env-default:"5s"`
	BreakerTimeout time.Duration `yaml:"BACKEND_BREAKER_TIMEOUT" env:"BACKEND_BREAKER_TIMEOUT" env-default:"30s"`
	DefaultLang    string        `yaml:"BACKEND_DEFAULT_LANG" env:"BACKEND_DEFAULT_LANG" env-default:"en"`
}

type RedisConnect struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxActions int64         `yaml:"MAX_ACTIONS" env:"MAX_ACTIONS" env-default:"30"`
	WindowSize time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"60s"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"CACHE_DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	PageTTL    time.Duration `yaml:"CACHE_PAGE_TTL" env:"CACHE_PAGE_TTL" env-default:"60s"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type Session struct {
	TTL           time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"30m"`
	SweepInterval time.Duration `yaml:"SESSION_SWEEP_INTERVAL" env:"SESSION_SWEEP_INTERVAL" env-default:"5m"`
}

type Tracing struct {
	Endpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Backend      Backend      `yaml:"backend"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	CacheConfig  CacheConfig  `yaml:"cache"`
	Security     Security     `yaml:"security"`
	Session      Session      `yaml:"session"`
	Tracing      Tracing      `yaml:"tracing"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (r *RedisConnect) GetDSN() string {
	if r.Password != "" {
		return "redis://" + r.Username + ":" + r.Password + "@" + r.Addr
	}

	return "redis://" + r.Addr
}
