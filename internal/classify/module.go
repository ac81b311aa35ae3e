// Package classify turns raw DHCP lease observations into device
// classifications. A remote fingerprint oracle is consulted first when
// configured; a resolution engine arbitrates between its answer and
// the local rule-based classifiers.
package classify

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/leasetrace/leasetrace/internal/oracle"
	"github.com/leasetrace/leasetrace/internal/vendordb"
	"github.com/leasetrace/leasetrace/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin        = (*Module)(nil)
	_ plugin.HTTPProvider  = (*Module)(nil)
	_ plugin.HealthChecker = (*Module)(nil)
)

// Module implements the Classify device classification plugin.
type Module struct {
	logger   *zap.Logger
	cfg      Config
	store    *ClassifyStore
	bus      plugin.EventBus
	vendors  *vendordb.Table
	oracle   *oracle.Client
	analyzer *Analyzer
}

// New creates a new Classify plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "classify",
		Version:     "0.1.0",
		Description: "DHCP lease device classification",
		Roles:       []string{"classification"},
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.bus = deps.Bus

	// Load config with defaults.
	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if v := deps.Config.GetString("oracle_api_key"); v != "" {
			m.cfg.OracleAPIKey = v
		}
		if v := deps.Config.GetString("oracle_base_url"); v != "" {
			m.cfg.OracleBaseURL = v
		}
		if d := deps.Config.GetDuration("oracle_timeout"); d > 0 {
			m.cfg.OracleTimeout = d
		}
		if deps.Config.IsSet("oracle_hourly_limit") {
			m.cfg.OracleHourlyLimit = deps.Config.GetInt("oracle_hourly_limit")
		}
		if deps.Config.IsSet("oracle_daily_limit") {
			m.cfg.OracleDailyLimit = deps.Config.GetInt("oracle_daily_limit")
		}
		if v := deps.Config.GetString("vendor_csv_path"); v != "" {
			m.cfg.VendorCSVPath = v
		}
		if v := deps.Config.GetInt("thresholds.low_trust"); v > 0 {
			m.cfg.Thresholds.LowTrust = v
		}
		if v := deps.Config.GetInt("thresholds.strong_hostname"); v > 0 {
			m.cfg.Thresholds.StrongHostname = v
		}
		if v := deps.Config.GetInt("thresholds.embedded_client"); v > 0 {
			m.cfg.Thresholds.EmbeddedClient = v
		}
		if v := deps.Config.GetInt("thresholds.component_vendor"); v > 0 {
			m.cfg.Thresholds.ComponentVendor = v
		}
		if v := deps.Config.GetInt("thresholds.selective_always"); v > 0 {
			m.cfg.Thresholds.SelectiveAlways = v
		}
		if v := deps.Config.GetInt("thresholds.selective_conflict"); v > 0 {
			m.cfg.Thresholds.SelectiveConflict = v
		}
	}

	// Run database migrations.
	if err := deps.Store.Migrate(ctx, "classify", migrations()); err != nil {
		return err
	}
	m.store = NewClassifyStore(deps.Store.DB())

	// Vendor database: builtin OUIs, optionally overlaid from CSV.
	m.vendors = vendordb.New()
	if m.cfg.VendorCSVPath != "" {
		n, err := m.vendors.LoadCSV(m.cfg.VendorCSVPath)
		if err != nil {
			m.logger.Warn("failed to load vendor CSV, using builtin table",
				zap.String("path", m.cfg.VendorCSVPath),
				zap.Error(err),
			)
		} else {
			m.logger.Info("vendor CSV loaded", zap.Int("entries", n))
		}
	}

	// Oracle client, only when a key is configured.
	var oracleClient OracleClient
	if m.cfg.OracleAPIKey != "" {
		budget := oracle.NewBudget(m.cfg.OracleHourlyLimit, m.cfg.OracleDailyLimit)
		m.oracle = oracle.NewClient(
			m.cfg.OracleBaseURL,
			m.cfg.OracleAPIKey,
			m.cfg.OracleTimeout,
			budget,
			m.logger.Named("oracle"),
		)
		oracleClient = m.oracle
		m.logger.Info("oracle client initialized",
			zap.Int("hourly_limit", m.cfg.OracleHourlyLimit),
			zap.Int("daily_limit", m.cfg.OracleDailyLimit),
		)
	} else {
		m.logger.Info("no oracle API key configured, using local classification only")
	}

	m.analyzer = NewAnalyzer(m.vendors, oracleClient, NewResolver(m.cfg.Thresholds), m.logger)

	m.logger.Info("classify module initialized",
		zap.Int("vendor_entries", m.vendors.Size()),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("classify module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("classify module stopped")
	return nil
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "POST", Path: "/analyze", Handler: m.handleAnalyze},
		{Method: "GET", Path: "/devices", Handler: m.handleListDevices},
		{Method: "GET", Path: "/devices/{mac}", Handler: m.handleGetDevice},
		{Method: "GET", Path: "/devices/{mac}/history", Handler: m.handleDeviceHistory},
		{Method: "GET", Path: "/runs", Handler: m.handleListRuns},
		{Method: "GET", Path: "/stats", Handler: m.handleStats},
		{Method: "GET", Path: "/vendors/{mac}", Handler: m.handleVendorLookup},
	}
}

// Health implements plugin.HealthChecker.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	stats := m.analyzer.Stats()
	details := map[string]string{
		"total_devices":  strconv.FormatInt(stats.TotalDevices, 10),
		"vendor_entries": strconv.Itoa(m.vendors.Size()),
		"oracle_enabled": strconv.FormatBool(m.oracle != nil),
	}
	if m.oracle != nil {
		os := m.oracle.Stats()
		details["oracle_successful"] = strconv.FormatInt(os.Successful, 10)
		details["oracle_failed"] = strconv.FormatInt(os.Failed, 10)
		details["oracle_rate_limited"] = strconv.FormatInt(os.RateLimited, 10)
	}
	return plugin.HealthStatus{
		Status:  "ok",
		Details: details,
	}
}
