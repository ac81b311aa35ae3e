package classify

import "time"

// Thresholds are the oracle-score cutoffs used by the resolution
// engine when deciding whether local classification should win over
// the oracle. The defaults are empirically tuned; treat them as
// starting points, not derived constants.
type Thresholds struct {
	// LowTrust routes any oracle answer at or below this score to the
	// fallback classifier.
	LowTrust int `mapstructure:"low_trust"`
	// StrongHostname is the ceiling under which a strong hostname
	// pattern wins over the oracle.
	StrongHostname int `mapstructure:"strong_hostname"`
	// EmbeddedClient is the ceiling under which embedded DHCP client
	// vendor classes (udhcp, busybox, dhcpcd) win over the oracle.
	EmbeddedClient int `mapstructure:"embedded_client"`
	// ComponentVendor is the ceiling under which component
	// manufacturer MACs (Intel, Nvidia, ...) win over the oracle.
	ComponentVendor int `mapstructure:"component_vendor"`
	// SelectiveAlways is the score at or below which a high-confidence
	// hostname pattern always overrides an accepted oracle answer.
	SelectiveAlways int `mapstructure:"selective_always"`
	// SelectiveConflict is the score at or below which a hostname
	// pattern overrides when the device categories clearly conflict.
	SelectiveConflict int `mapstructure:"selective_conflict"`
}

// Config holds the classify module configuration.
type Config struct {
	Enabled           bool          `mapstructure:"enabled"`
	OracleAPIKey      string        `mapstructure:"oracle_api_key"`
	OracleBaseURL     string        `mapstructure:"oracle_base_url"`
	OracleTimeout     time.Duration `mapstructure:"oracle_timeout"`
	OracleHourlyLimit int           `mapstructure:"oracle_hourly_limit"`
	OracleDailyLimit  int           `mapstructure:"oracle_daily_limit"`
	VendorCSVPath     string        `mapstructure:"vendor_csv_path"`
	Thresholds        Thresholds    `mapstructure:"thresholds"`
}

// DefaultConfig returns the default classify configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		OracleTimeout:     10 * time.Second,
		OracleHourlyLimit: 100,
		OracleDailyLimit:  1000,
		Thresholds: Thresholds{
			LowTrust:          40,
			StrongHostname:    50,
			EmbeddedClient:    55,
			ComponentVendor:   60,
			SelectiveAlways:   40,
			SelectiveConflict: 60,
		},
	}
}
