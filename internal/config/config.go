package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/types"
)

// Configuration holds the full application configuration.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Pricing    PricingConfig    `mapstructure:"pricing"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" default:"local"`
}

type LoggingConfig struct {
	Level          types.LogLevel `mapstructure:"level" default:"info"`
	FluentdEnabled bool           `mapstructure:"fluentd_enabled" default:"false"`
	FluentdHost    string         `mapstructure:"fluentd_host"`
	FluentdPort    int            `mapstructure:"fluentd_port"`
}

// PricingConfig carries engine-wide defaults that tenants do not override.
type PricingConfig struct {
	DefaultCurrency    string `mapstructure:"default_currency" default:"usd"`
	DefaultTimezone    string `mapstructure:"default_timezone" default:"UTC"`
	MinimumBilledHours int    `mapstructure:"minimum_billed_hours" default:"1"`
}

// NewConfig loads configuration from config files, .env and environment
// variables, in increasing order of precedence.
func NewConfig() (*Configuration, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// .env is optional and only used for local development
	_ = godotenv.Load()

	v.SetEnvPrefix("DESKHIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.RunModeLocal))
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("logging.fluentd_enabled", false)
	v.SetDefault("pricing.default_currency", "usd")
	v.SetDefault("pricing.default_timezone", "UTC")
	v.SetDefault("pricing.minimum_billed_hours", 1)
}

// Validate checks configuration invariants at startup.
func (c *Configuration) Validate() error {
	if err := c.Deployment.Mode.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Level.Validate(); err != nil {
		return err
	}
	if c.Pricing.MinimumBilledHours < 0 {
		return ierr.NewError("minimum billed hours cannot be negative").
			WithHint("Set pricing.minimum_billed_hours to 0 or more").
			Mark(ierr.ErrValidation)
	}
	if err := types.ValidateTimezone(c.Pricing.DefaultTimezone); err != nil {
		return ierr.WithError(err).
			WithHintf("Unknown default timezone '%s'", c.Pricing.DefaultTimezone).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a usable configuration for tests and scripts
// without reading any files.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.RunModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Pricing: PricingConfig{
			DefaultCurrency:    "usd",
			DefaultTimezone:    "UTC",
			MinimumBilledHours: 1,
		},
	}
}
