package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/internal/logger"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// Config holds the CLI configuration loaded from flags, environment
// variables, .env and ~/.siteapi/config.yml.
type Config struct {
	API           string        `mapstructure:"api"`
	Output        string        `mapstructure:"output"`
	Verbose       bool          `mapstructure:"verbose"`
	LogLevel      string        `mapstructure:"log_level"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	NATSURL       string        `mapstructure:"nats_url"`
	NATSSubject   string        `mapstructure:"nats_subject"`
	ImportThreads int           `mapstructure:"import_threads"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api", constants.DefaultBaseURL)
	v.SetDefault("output", constants.OutputFormatTable)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("user_agent", constants.DefaultUserAgent)
	v.SetDefault("nats_url", "")
	v.SetDefault("nats_subject", constants.DefaultNATSSubject)
	v.SetDefault("import_threads", constants.DefaultConcurrencyLimit)
}

// Init prepares v: it loads .env from the working directory, sets defaults,
// enables SITEAPI_* environment variables and reads the config file. An
// explicit cfgFile must exist; the default ~/.siteapi/config.yml is optional.
func Init(v *viper.Viper, cfgFile string) error {
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)

		err := v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}

		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil //nolint:nilerr // no home directory means no default config file
	}

	v.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
	v.SetConfigType("yml")
	v.SetConfigName("config")

	err = v.ReadInConfig()
	if err != nil {
		notFound := viper.ConfigFileNotFoundError{}
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("reading config file: %w", err)
	}

	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.API = strings.TrimSpace(cfg.API)
	if cfg.API == "" {
		return nil, constants.ErrNoBaseURLConfigured
	}

	switch cfg.Output {
	case constants.OutputFormatTable, constants.OutputFormatJSON, constants.OutputFormatYAML:
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, cfg.Output)
	}

	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	_, err = logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.ImportThreads < 1 || cfg.ImportThreads > constants.MaxConcurrencyLimit {
		return nil, fmt.Errorf("%w: %d (must be 1-%d)", constants.ErrInvalidThreadCount, cfg.ImportThreads, constants.MaxConcurrencyLimit)
	}

	return &cfg, nil
}

// ClientConfig builds the library configuration for the site client.
func (c *Config) ClientConfig(log siteapi.Logger) *siteapi.Config {
	return &siteapi.Config{
		BaseURL:     c.API,
		HTTPTimeout: c.Timeout,
		Debug:       c.Verbose,
		Logger:      log,
		UserAgent:   c.UserAgent,
	}
}
