package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Alkoteka AlkotekaConfig `mapstructure:"alkoteka"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// AlkotekaConfig holds alkoteka.com API configuration
type AlkotekaConfig struct {
	BaseURL    string   `mapstructure:"base_url"`
	CityUUID   string   `mapstructure:"city_uuid"`
	CityName   string   `mapstructure:"city_name"` // Value of the baseline "city" cookie
	PerPage    int      `mapstructure:"per_page"`
	Timeout    int      `mapstructure:"timeout"`     // Seconds per request
	MaxWorkers int      `mapstructure:"max_workers"` // Categories fetched concurrently
	Categories []string `mapstructure:"categories"`  // Catalog start URLs
	Proxies    []string `mapstructure:"proxies"`

	// Default request headers
	UserAgent      string `mapstructure:"user_agent"`
	AcceptLanguage string `mapstructure:"accept_language"`
	Referer        string `mapstructure:"referer"`
}

// OutputConfig describes where collected items are written
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from a YAML file with environment variable overrides.
// An empty path searches for config.yaml in the working directory and falls
// back to defaults when there is none; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Info("No config.yaml found, using defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	a := c.Alkoteka

	u, err := url.Parse(a.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("alkoteka.base_url must be an absolute URL, got %q", a.BaseURL)
	}
	if _, err := uuid.Parse(a.CityUUID); err != nil {
		return fmt.Errorf("alkoteka.city_uuid is not a valid UUID: %w", err)
	}
	if a.PerPage <= 0 {
		return fmt.Errorf("alkoteka.per_page must be positive, got %d", a.PerPage)
	}
	if a.MaxWorkers <= 0 {
		return fmt.Errorf("alkoteka.max_workers must be positive, got %d", a.MaxWorkers)
	}
	if len(a.Categories) == 0 {
		return fmt.Errorf("alkoteka.categories must not be empty")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("alkoteka.base_url", "https://alkoteka.com")
	v.SetDefault("alkoteka.city_uuid", "985b3eea-46b4-11e7-83ff-00155d026416")
	v.SetDefault("alkoteka.city_name", "Krasnodar")
	v.SetDefault("alkoteka.per_page", 20)
	v.SetDefault("alkoteka.timeout", 30)
	v.SetDefault("alkoteka.max_workers", 3)
	v.SetDefault("alkoteka.categories", []string{
		"https://alkoteka.com/catalog/slaboalkogolnye-napitki-2",
		"https://alkoteka.com/catalog/vino",
		"https://alkoteka.com/catalog/krepkiy-alkogol",
	})
	v.SetDefault("alkoteka.proxies", []string{})
	v.SetDefault("alkoteka.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	v.SetDefault("alkoteka.accept_language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")
	v.SetDefault("alkoteka.referer", "https://alkoteka.com/")

	v.SetDefault("output.path", "items.json")

	v.SetDefault("log.level", "info")
}
