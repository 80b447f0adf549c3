package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Workers int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type OpsConfig struct {
	Port int `yaml:"port"` // /healthz and /metrics listener
}

type GeoDBConfig struct {
	APIKey      string        `yaml:"api_key"`
	Host        string        `yaml:"host"`
	BaseURL     string        `yaml:"base_url"`
	SearchLimit int           `yaml:"search_limit"` // disambiguation menu size
	Timeout     time.Duration `yaml:"timeout"`
}

type WeatherConfig struct {
	APIKey  string        `yaml:"api_key"` // optional: empty means "no data" replies
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite | postgres
	Path   string `yaml:"path"`   // sqlite file
	URL    string `yaml:"url"`    // postgres DSN
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // empty disables the lookup cache
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// DefaultsConfig seeds a user's settings record on first contact.
type DefaultsConfig struct {
	CityLimit  int    `yaml:"city_limit"`
	RatingType string `yaml:"rating_type"`
	Lang       string `yaml:"lang"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Ops      OpsConfig      `yaml:"ops"`
	GeoDB    GeoDBConfig    `yaml:"geodb"`
	Weather  WeatherConfig  `yaml:"weather"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Defaults DefaultsConfig `yaml:"defaults"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Ops.Port == 0 {
		cfg.Ops.Port = 9090
	}
	if cfg.GeoDB.Host == "" {
		cfg.GeoDB.Host = "wft-geo-db.p.rapidapi.com"
	}
	if cfg.GeoDB.BaseURL == "" {
		cfg.GeoDB.BaseURL = "https://" + cfg.GeoDB.Host + "/v1/geo"
	}
	if cfg.GeoDB.SearchLimit <= 0 {
		cfg.GeoDB.SearchLimit = 5
	}
	if cfg.GeoDB.SearchLimit > 50 {
		cfg.GeoDB.SearchLimit = 50
	}
	if cfg.GeoDB.Timeout <= 0 {
		cfg.GeoDB.Timeout = 20 * time.Second
	}
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if cfg.Weather.Timeout <= 0 {
		cfg.Weather.Timeout = 10 * time.Second
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "bot.sqlite3"
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Defaults.CityLimit == 0 {
		cfg.Defaults.CityLimit = 10
	}
	if cfg.Defaults.RatingType == "" {
		cfg.Defaults.RatingType = "population"
	}
	if cfg.Defaults.Lang == "" {
		cfg.Defaults.Lang = "ru"
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.GeoDB.APIKey == "" {
		return nil, errors.New("geodb.api_key is required")
	}
	switch cfg.Database.Driver {
	case "sqlite":
	case "postgres":
		if cfg.Database.URL == "" {
			return nil, errors.New("database.url is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown database.driver %q", cfg.Database.Driver)
	}
	if cfg.Defaults.CityLimit < 5 || cfg.Defaults.CityLimit > 50 {
		return nil, errors.New("defaults.city_limit must be within [5,50]")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
