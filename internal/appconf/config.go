package appconf

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultDatasetURL is the Gapminder 2007 snapshot published in the Plotly datasets repository.
const DefaultDatasetURL = "https://raw.githubusercontent.com/plotly/datasets/master/gapminder2007.csv"

// DefaultPort is used when neither PORT nor -port is given.
const DefaultPort = 8050

// Config holds all the configuration settings for the dashboard.
type Config struct {
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	Env             Environment   `yaml:"-"`
	EnvName         string        `yaml:"env" validate:"oneof=development test production prod"`
	DatasetURL      string        `yaml:"dataset_url" validate:"required"`
	DBPath          string        `yaml:"db_path" validate:"required"`
	RateLimit       int           `yaml:"rate_limit"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LoadTimeout     time.Duration `yaml:"load_timeout" validate:"gt=0"`
	RenderCacheSize int           `yaml:"render_cache_size" validate:"min=1"`
	S3Region        string        `yaml:"s3_region"`
	S3Endpoint      string        `yaml:"s3_endpoint" validate:"omitempty,url"`
	S3AccessKey     string        `yaml:"s3_access_key" validate:"required_with=S3SecretKey"`
	S3SecretKey     string        `yaml:"s3_secret_key" validate:"required_with=S3AccessKey"`
	ApiKeys         []string      `yaml:"api_keys"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:            DefaultPort,
		Env:             Development,
		EnvName:         Development.String(),
		DatasetURL:      DefaultDatasetURL,
		DBPath:          ":memory:",
		RateLimit:       100,
		LogLevel:        "info",
		LoadTimeout:     30 * time.Second,
		RenderCacheSize: 256,
		S3Region:        "us-east-1",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Load resolves the configuration from built-in defaults, an optional YAML file,
// the PORT environment variable and command-line flags, in increasing precedence.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Defaults()
	flagCfg := Defaults()

	fs := flag.NewFlagSet("gapdash", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to an optional YAML configuration file")
	fs.IntVar(&flagCfg.Port, "port", flagCfg.Port, "HTTP server port (overrides PORT)")
	fs.StringVar(&flagCfg.EnvName, "env", flagCfg.EnvName, "Environment (development|test|production)")
	fs.StringVar(&flagCfg.DatasetURL, "dataset-url", flagCfg.DatasetURL, "Dataset source: http(s) URL, s3://bucket/key or local CSV path")
	fs.StringVar(&flagCfg.DBPath, "db-path", flagCfg.DBPath, "SQLite path for the table mirror")
	fs.IntVar(&flagCfg.RateLimit, "rate-limit", flagCfg.RateLimit, "Requests per second allowed per client")
	fs.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.DurationVar(&flagCfg.LoadTimeout, "load-timeout", flagCfg.LoadTimeout, "Timeout for downloading the dataset")
	fs.IntVar(&flagCfg.RenderCacheSize, "render-cache-size", flagCfg.RenderCacheSize, "Number of rendered charts kept in memory")
	fs.StringVar(&flagCfg.S3Region, "s3-region", flagCfg.S3Region, "Region used for s3:// dataset sources")
	fs.StringVar(&flagCfg.S3Endpoint, "s3-endpoint", flagCfg.S3Endpoint, "Custom endpoint for s3:// dataset sources (MinIO etc)")
	fs.StringVar(&flagCfg.S3AccessKey, "s3-access-key", "", "Static access key for s3:// sources (default credential chain if empty)")
	fs.StringVar(&flagCfg.S3SecretKey, "s3-secret-key", "", "Static secret key for s3:// sources")
	apiKeysFlag := fs.String("api-keys", "", "Comma Separated API Keys guarding /debug/ and /metrics (open if empty)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *configPath != "" {
		if err := cfg.mergeFile(*configPath); err != nil {
			return Config{}, err
		}
	}

	if getenv != nil {
		if p := strings.TrimSpace(getenv("PORT")); p != "" {
			port, err := strconv.Atoi(p)
			if err != nil {
				return Config{}, fmt.Errorf("invalid PORT %q: %w", p, err)
			}
			cfg.Port = port
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = flagCfg.Port
		case "env":
			cfg.EnvName = flagCfg.EnvName
		case "dataset-url":
			cfg.DatasetURL = flagCfg.DatasetURL
		case "db-path":
			cfg.DBPath = flagCfg.DBPath
		case "rate-limit":
			cfg.RateLimit = flagCfg.RateLimit
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		case "load-timeout":
			cfg.LoadTimeout = flagCfg.LoadTimeout
		case "render-cache-size":
			cfg.RenderCacheSize = flagCfg.RenderCacheSize
		case "s3-region":
			cfg.S3Region = flagCfg.S3Region
		case "s3-endpoint":
			cfg.S3Endpoint = flagCfg.S3Endpoint
		case "s3-access-key":
			cfg.S3AccessKey = flagCfg.S3AccessKey
		case "s3-secret-key":
			cfg.S3SecretKey = flagCfg.S3SecretKey
		case "api-keys":
			cfg.ApiKeys = splitKeys(*apiKeysFlag)
		}
	})

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.EnvName = strings.ToLower(strings.TrimSpace(cfg.EnvName))
	cfg.Env = EnvFlagToEnvironment(cfg.EnvName)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
