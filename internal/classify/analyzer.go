package classify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leasetrace/leasetrace/internal/oracle"
	"github.com/leasetrace/leasetrace/internal/vendordb"
	"github.com/leasetrace/leasetrace/pkg/models"
)

// OracleClient is the subset of the oracle client the analyzer needs.
type OracleClient interface {
	Query(ctx context.Context, in oracle.QueryInput) (*oracle.Candidate, error)
}

// Stats counts classification outcomes by source.
type Stats struct {
	TotalDevices       int64 `json:"total_devices"`
	VendorLookups      int64 `json:"vendor_lookup_success"`
	OracleSuccess      int64 `json:"fingerbank_success"`
	FingerprintSuccess int64 `json:"dhcp_fingerprint_success"`
	FallbackSuccess    int64 `json:"fallback_success"`
}

// Analyzer turns raw DHCP lease observations into per-device
// classification results. The oracle is consulted first when
// configured; the resolver decides whether its answer stands or the
// local rule classifiers take over.
type Analyzer struct {
	vendors  *vendordb.Table
	oracle   OracleClient
	resolver *Resolver
	fallback *Fallback
	logger   *zap.Logger

	mu    sync.Mutex
	stats Stats
}

// NewAnalyzer creates an analyzer. oracleClient may be nil, in which
// case classification is purely local.
func NewAnalyzer(vendors *vendordb.Table, oracleClient OracleClient, resolver *Resolver, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		vendors:  vendors,
		oracle:   oracleClient,
		resolver: resolver,
		fallback: NewFallback(),
		logger:   logger,
	}
}

// Stats returns a snapshot of the classification counters.
func (a *Analyzer) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Analyze classifies every device appearing in the observations.
// Observations are grouped by MAC; devices come out in first-seen
// order. A panic while classifying one device is contained to that
// device's result.
func (a *Analyzer) Analyze(ctx context.Context, observations []models.DeviceObservation) []models.ClassificationResult {
	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
	}()

	grouped := make(map[string][]models.DeviceObservation)
	var order []string
	for _, obs := range observations {
		if _, seen := grouped[obs.MAC]; !seen {
			order = append(order, obs.MAC)
		}
		grouped[obs.MAC] = append(grouped[obs.MAC], obs)
	}

	results := make([]models.ClassificationResult, 0, len(order))
	for _, mac := range order {
		result := a.safeClassify(ctx, mac, grouped[mac])
		results = append(results, result)

		a.mu.Lock()
		a.stats.TotalDevices++
		a.mu.Unlock()
	}
	return results
}

// safeClassify contains panics from the classification of a single
// device so one bad input cannot sink a whole run.
func (a *Analyzer) safeClassify(ctx context.Context, mac string, entries []models.DeviceObservation) (result models.ClassificationResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("device classification panicked",
				zap.String("mac", mac),
				zap.Any("panic", r),
			)
			result = models.ClassificationResult{
				MAC:            mac,
				Classification: fmt.Sprintf("classification failed: %v", r),
				Method:         "unknown",
				Overall:        models.ConfidenceError,
				Timestamp:      time.Now(),
			}
		}
	}()
	return a.classifyDevice(ctx, mac, entries)
}

// bestObservation picks the most informative observation for a device.
// Hostname carries the most signal, then vendor class and fingerprint;
// an ACK edges out earlier handshake messages. Ties keep the earliest
// observation.
func bestObservation(entries []models.DeviceObservation) models.DeviceObservation {
	best := entries[0]
	bestScore := -1
	for _, e := range entries {
		score := 0
		if e.Hostname != "" {
			score += 3
		}
		if e.VendorClass != "" {
			score += 2
		}
		if e.ParamList != "" {
			score += 2
		}
		if e.MessageType == models.MessageAck {
			score += 1
		}
		if score > bestScore {
			bestScore = score
			best = e
		}
	}
	return best
}

func (a *Analyzer) classifyDevice(ctx context.Context, mac string, entries []models.DeviceObservation) models.ClassificationResult {
	best := bestObservation(entries)

	result := models.ClassificationResult{
		MAC:         mac,
		IPAddress:   best.IPAddress,
		Hostname:    best.Hostname,
		ParamList:   best.ParamList,
		VendorClass: best.VendorClass,
		Method:      "unknown",
		Timestamp:   time.Now(),
	}

	// Step 1: vendor lookup. Never fails; unknown OUIs come back as
	// "Unknown" with no confidence.
	info := a.vendors.Lookup(mac)
	result.Vendor = info.Vendor
	result.VendorConfidence = info.Confidence
	if info.Vendor != "" && info.Vendor != "Unknown" {
		a.mu.Lock()
		a.stats.VendorLookups++
		a.mu.Unlock()
	}

	// Step 2: oracle interrogation, the primary classification source.
	var cand *oracle.Candidate
	oracleClassified := false
	if a.oracle != nil {
		var err error
		cand, err = a.oracle.Query(ctx, oracle.QueryInput{
			Fingerprint: best.ParamList,
			VendorClass: best.VendorClass,
			Hostname:    best.Hostname,
		})
		if err != nil {
			result.OracleError = err.Error()
			oracleErrors.WithLabelValues(oracle.ErrorCategory(err)).Inc()
			a.logger.Debug("oracle query failed",
				zap.String("mac", mac),
				zap.String("category", oracle.ErrorCategory(err)),
				zap.Error(err),
			)
		} else {
			score := cand.Score
			result.OracleScore = &score
			result.DeviceName = cand.Name
			if cand.DeviceType != "" {
				result.DeviceType = models.DeviceType(cand.DeviceType)
				result.Method = "fingerbank"
				oracleClassified = true
			}
			if cand.OperatingSystem != "" {
				result.OperatingSystem = cand.OperatingSystem
			}
			a.mu.Lock()
			a.stats.OracleSuccess++
			a.mu.Unlock()
		}
	}

	if oracleClassified {
		a.arbitrate(cand, best, &result)
	} else {
		a.classifyLocally(best, &result)
	}

	if result.DeviceType != "" {
		result.Classification = string(result.DeviceType)
	} else {
		result.Classification = "Unknown"
	}
	result.Overall = a.overallConfidence(&result)

	devicesClassified.WithLabelValues(result.Method).Inc()
	return result
}

// arbitrate decides whether an oracle answer stands, is replaced by
// the local classifier, or gets selectively overridden by the
// hostname.
func (a *Analyzer) arbitrate(cand *oracle.Candidate, best models.DeviceObservation, result *models.ClassificationResult) {
	preferFallback := a.resolver.ShouldPreferFallback(cand, best, result.Vendor)

	if preferFallback {
		op := a.fallback.Classify(best.Hostname, best.VendorClass, best.ParamList, result.Vendor)
		if a.resolver.AcceptPreferred(op) {
			result.DeviceType = op.DeviceType
			result.OperatingSystem = op.OperatingSystem
			result.Method = "enhanced_preferred_" + op.Method
			a.mu.Lock()
			a.stats.FallbackSuccess++
			a.mu.Unlock()
			a.logger.Debug("local classifier preferred over oracle",
				zap.String("mac", result.MAC),
				zap.String("device_type", string(op.DeviceType)),
				zap.String("method", op.Method),
			)
		}
	}

	if !preferFallback && best.Hostname != "" {
		if ov := a.resolver.SelectiveOverride(cand, best.Hostname, result.Vendor, result.DeviceType); ov != nil {
			result.DeviceType = ov.DeviceType
			result.OperatingSystem = ov.OperatingSystem
			result.Method = ov.Method
			a.logger.Debug("oracle answer overridden by hostname",
				zap.String("mac", result.MAC),
				zap.String("hostname", best.Hostname),
				zap.String("device_type", string(ov.DeviceType)),
			)
		}
	}
}

// classifyLocally runs the fallback chain when the oracle is absent or
// returned nothing usable.
func (a *Analyzer) classifyLocally(best models.DeviceObservation, result *models.ClassificationResult) {
	if best.Hostname != "" {
		op := a.fallback.Classify(best.Hostname, best.VendorClass, best.ParamList, result.Vendor)
		if op.HostnameOverride && op.DeviceType != "" {
			result.DeviceType = op.DeviceType
			result.Method = "hostname_specific"
			if op.OperatingSystem != "" && result.OperatingSystem == "" {
				result.OperatingSystem = op.OperatingSystem
			}
		}
	}

	if result.DeviceType == "" && best.ParamList != "" {
		dt, conf := classifyByOptionShape(best.ParamList, result.Vendor, best.VendorClass)
		if dt != "" {
			result.DeviceType = dt
			result.ShapeConfidence = conf
			result.Method = "dhcp_fingerprint"
			a.mu.Lock()
			a.stats.FingerprintSuccess++
			a.mu.Unlock()
		}
	}

	if result.DeviceType == "" || result.OperatingSystem == "" {
		op := a.fallback.Classify(best.Hostname, best.VendorClass, best.ParamList, result.Vendor)
		if result.DeviceType == "" && op.DeviceType != "" {
			result.DeviceType = op.DeviceType
			result.Method = "enhanced_fallback"
			a.mu.Lock()
			a.stats.FallbackSuccess++
			a.mu.Unlock()
		}
		if result.OperatingSystem == "" && op.OperatingSystem != "" {
			result.OperatingSystem = op.OperatingSystem
		}
	}
}

// overallConfidence scores the result from how it was classified and
// how much corroborating data was present. Method prefixes added by
// arbitration are stripped so the underlying method is scored;
// hostname overrides score like hostname_specific.
func (a *Analyzer) overallConfidence(result *models.ClassificationResult) models.Confidence {
	score := 0

	if result.Vendor != "" && result.Vendor != "Unknown" {
		score += 20
	}

	method := strings.TrimPrefix(result.Method, "enhanced_preferred_")
	if strings.HasPrefix(method, "fingerbank_override_") {
		method = "hostname_specific"
	}

	switch method {
	case "fingerbank":
		if result.OracleScore != nil && *result.OracleScore > 0 {
			switch {
			case *result.OracleScore >= 80:
				score += 60
			case *result.OracleScore >= 60:
				score += 40
			default:
				score += 20
			}
		}
	case "hostname_specific":
		score += 50
	case "dhcp_fingerprint":
		switch result.ShapeConfidence {
		case models.ConfidenceHigh:
			score += 40
		case models.ConfidenceMedium:
			score += 25
		default:
			score += 10
		}
	case "enhanced_fallback":
		score += 15
	}

	if result.Hostname != "" {
		score += 10
	}
	if result.VendorClass != "" {
		score += 10
	}

	switch {
	case score >= 80:
		return models.ConfidenceHigh
	case score >= 50:
		return models.ConfidenceMedium
	case score >= 30:
		return models.ConfidenceLow
	default:
		return models.ConfidenceUnknown
	}
}
