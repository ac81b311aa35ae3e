package server

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	DataDir string `mapstructure:"data_dir"`
}

// Addr returns the listen address as host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.data_dir", "./data")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/leasetrace.db")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "24h")

	// Plugin defaults
	v.SetDefault("plugins.classify.enabled", true)
	v.SetDefault("plugins.classify.oracle_api_key", "")
	v.SetDefault("plugins.classify.oracle_base_url", "https://api.fingerbank.org/api/v2")
	v.SetDefault("plugins.classify.oracle_timeout", "10s")
	v.SetDefault("plugins.classify.oracle_hourly_limit", 100)
	v.SetDefault("plugins.classify.oracle_daily_limit", 1000)
	v.SetDefault("plugins.classify.vendor_csv_path", "")
	v.SetDefault("plugins.classify.thresholds.low_trust", 40)
	v.SetDefault("plugins.classify.thresholds.strong_hostname", 50)
	v.SetDefault("plugins.classify.thresholds.embedded_client", 55)
	v.SetDefault("plugins.classify.thresholds.component_vendor", 60)
	v.SetDefault("plugins.classify.thresholds.selective_always", 40)
	v.SetDefault("plugins.classify.thresholds.selective_conflict", 60)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("leasetrace")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/leasetrace")
	}

	// Environment variable support: LEASETRACE_SERVER_PORT=9090
	v.SetEnvPrefix("LEASETRACE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	return v, nil
}
