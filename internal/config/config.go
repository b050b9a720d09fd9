package config

import (
	"strings"

	"launchdash/internal/errors"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Database  DatabaseConfig
	Dashboard DashboardConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig selects the launch dataset source
type DataConfig struct {
	File           string
	SitesFile      string
	SyntheticSeed  int64
	SyntheticCount int
}

// DatabaseConfig holds the optional SQL dataset source
type DatabaseConfig struct {
	Driver string
	URL    string
}

// Enabled reports whether launches are read from a database
func (d DatabaseConfig) Enabled() bool {
	return d.Driver != ""
}

// DashboardConfig holds the slider bounds and the optional notes panel
type DashboardConfig struct {
	Title      string
	SliderMin  float64
	SliderMax  float64
	SliderStep float64
	NotesFile  string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and the optional YAML file
// named by DASHBOARD_CONFIG, then validates it. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("dashboard_config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read config file %s", path)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8051")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("data_file", "")
	v.SetDefault("sites_file", "")
	v.SetDefault("synthetic_seed", 42)
	v.SetDefault("synthetic_count", 56)
	v.SetDefault("database_driver", "")
	v.SetDefault("database_url", "")
	v.SetDefault("dashboard_title", "SpaceX Launch Records Dashboard")
	v.SetDefault("slider_min", 0)
	v.SetDefault("slider_max", 10000)
	v.SetDefault("slider_step", 1000)
	v.SetDefault("notes_file", "")
	v.SetDefault("pprof_enabled", false)
	v.SetDefault("pprof_port", "6060")
}

func fromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    v.GetString("port"),
			GinMode: v.GetString("gin_mode"),
		},
		Data: DataConfig{
			File:           v.GetString("data_file"),
			SitesFile:      v.GetString("sites_file"),
			SyntheticSeed:  v.GetInt64("synthetic_seed"),
			SyntheticCount: v.GetInt("synthetic_count"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("database_driver"),
			URL:    v.GetString("database_url"),
		},
		Dashboard: DashboardConfig{
			Title:      v.GetString("dashboard_title"),
			SliderMin:  v.GetFloat64("slider_min"),
			SliderMax:  v.GetFloat64("slider_max"),
			SliderStep: v.GetFloat64("slider_step"),
			NotesFile:  v.GetString("notes_file"),
		},
		Profiling: ProfilingConfig{
			Port:    v.GetString("pprof_port"),
			Enabled: v.GetBool("pprof_enabled"),
		},
		LogLevel: v.GetString("log_level"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Data.File != "" && config.Database.Enabled() {
		return errors.ConfigInvalid("set either DATA_FILE or DATABASE_DRIVER, not both")
	}
	if config.Database.Enabled() && config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required when DATABASE_DRIVER is set")
	}
	if config.Dashboard.SliderMin > config.Dashboard.SliderMax {
		return errors.ConfigInvalid("SLIDER_MIN must not exceed SLIDER_MAX")
	}
	if config.Dashboard.SliderStep <= 0 {
		return errors.ConfigInvalid("SLIDER_STEP must be positive")
	}
	if config.Data.SyntheticCount <= 0 {
		return errors.ConfigInvalid("SYNTHETIC_COUNT must be positive")
	}
	return nil
}
