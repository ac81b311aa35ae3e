package classify

import (
	"fmt"
	"strings"

	"github.com/leasetrace/leasetrace/internal/oracle"
	"github.com/leasetrace/leasetrace/pkg/models"
)

// criticalHostnameTokens name the device class so plainly that they
// beat any oracle answer regardless of score.
var criticalHostnameTokens = []string{
	"smart-tv", "smart_tv", "-tv-", "tv-", "samsung-tv", "lg-tv", "sony-tv",
	"ring-camera", "ring-doorbell", "security-cam", "ip-camera",
	"ps4-console", "ps5-console", "xbox-", "nintendo-",
	"hp-printer", "canon-printer", "epson-printer", "laser-printer",
	"nest-thermostat", "smart-thermostat", "ecobee",
	"firetv-stick", "roku-stick", "appletv", "chromecast",
	"echo-dot", "echo-show", "google-home", "homepod",
}

// strongHostnameTokens mark hostnames the local rules handle well;
// they beat the oracle only under the StrongHostname score ceiling.
var strongHostnameTokens = []string{
	"ring-camera", "ring-doorbell", "nest-thermostat", "nest-cam",
	"chromecast", "firetv", "fire-tv", "roku", "appletv",
	"ps4", "ps5", "xbox", "nintendo", "switch",
	"esp32", "esp8266", "raspberry", "arduino",
	"printer", "hp-print", "canon-print", "epson-print",
	"echo-", "alexa-", "google-home", "homepod",
}

// componentManufacturerTokens are chip and board makers whose OUIs the
// oracle routinely misattributes to end devices.
var componentManufacturerTokens = []string{"intel", "giga-byte", "micro-star", "asrock", "nvidia", "amd"}

var embeddedVendorClassTokens = []string{"udhcp", "busybox", "dhcpcd"}

// overridePatterns are hostname tokens precise enough to displace an
// accepted oracle device type, grouped by the type they demand.
var overridePatterns = []conflictPattern{
	{models.DeviceTypeSmartCamera, []string{"ring-camera", "ring-doorbell", "nest-cam", "arlo-camera", "wyze-cam", "blink-camera", "eufy-cam", "security-camera"}},
	{models.DeviceTypeSmartSpeaker, []string{"echo-dot", "echo-show", "echo-studio", "google-home", "nest-mini", "homepod", "alexa-device"}},
	{models.DeviceTypeThermostat, []string{"nest-thermostat", "ecobee", "honeywell-thermostat", "smart-thermostat"}},
	{models.DeviceTypeStreaming, []string{"firetv-stick", "fire-tv", "roku-stick", "chromecast", "appletv", "nvidia-shield", "streaming-stick"}},
	{models.DeviceTypeGaming, []string{"ps4-console", "ps5-console", "xbox-one", "xbox-series", "nintendo-switch", "playstation", "gaming-console"}},
	{models.DeviceTypePrinter, []string{"hp-printer", "canon-printer", "epson-printer", "brother-printer", "laser-printer", "inkjet-printer", "network-printer"}},
	{models.DeviceTypeSmartTV, []string{"smart-tv", "samsung-tv", "lg-tv", "sony-tv", "android-tv", "webos-tv"}},
	{models.DeviceTypePhone, []string{"iphone-", "galaxy-s", "pixel-", "oneplus-", "huawei-p", "xiaomi-mi"}},
}

// criticalOverrideTokens justify overriding even a high-scoring oracle
// answer.
var criticalOverrideTokens = []string{
	"ring-camera", "ring-doorbell",
	"ps4-console", "ps5-console",
	"xbox-one", "xbox-series",
	"firetv-stick", "roku-stick",
	"nest-thermostat",
	"hp-printer", "canon-printer",
}

// deviceCategories group device types for conflict detection. A type
// may belong to several categories; the last listed category wins when
// assigning one.
var deviceCategories = []struct {
	name  string
	types []models.DeviceType
}{
	{"mobile", []models.DeviceType{models.DeviceTypePhone, models.DeviceTypeTablet}},
	{"computer", []models.DeviceType{models.DeviceTypeComputer, models.DeviceTypeLaptop, models.DeviceTypeDesktop}},
	{"smart_home", []models.DeviceType{models.DeviceTypeSmartCamera, models.DeviceTypeSmartSpeaker, models.DeviceTypeThermostat, models.DeviceTypeSmartTV}},
	{"entertainment", []models.DeviceType{models.DeviceTypeGaming, models.DeviceTypeStreaming, models.DeviceTypeSmartTV}},
	{"network", []models.DeviceType{models.DeviceTypeNetwork, "Router", "Access Point"}},
	{"iot", []models.DeviceType{models.DeviceTypeIoT, models.DeviceTypeSmartCamera, models.DeviceTypeSmartSpeaker, models.DeviceTypeThermostat}},
}

// Resolver arbitrates between the oracle's answer and the local rule
// classifiers.
type Resolver struct {
	thresholds Thresholds
}

// NewResolver returns a resolver using the given score thresholds.
func NewResolver(t Thresholds) *Resolver {
	return &Resolver{thresholds: t}
}

// ShouldPreferFallback reports whether the local classifier should be
// consulted instead of accepting the oracle's answer outright.
func (r *Resolver) ShouldPreferFallback(cand *oracle.Candidate, obs models.DeviceObservation, vendor string) bool {
	// Low score: the oracle is guessing.
	if cand.Score <= r.thresholds.LowTrust {
		return true
	}

	// "Hardware Manufacturer" anywhere in the hierarchy or name means
	// the oracle only recognized the OUI, not the device.
	if len(cand.Hierarchy) > 0 &&
		strings.Contains(strings.ToLower(strings.Join(cand.Hierarchy, " ")), "hardware manufacturer") {
		return true
	}
	if cand.Name != "" && strings.Contains(strings.ToLower(cand.Name), "hardware manufacturer") {
		return true
	}

	// Critical hostname tokens always win.
	if obs.Hostname != "" && containsAnyToken(strings.ToLower(obs.Hostname), criticalHostnameTokens) {
		return true
	}

	// Strong hostname tokens win under the score ceiling.
	if obs.Hostname != "" && cand.Score <= r.thresholds.StrongHostname &&
		containsAnyToken(strings.ToLower(obs.Hostname), strongHostnameTokens) {
		return true
	}

	// Component manufacturer OUIs mislead the oracle.
	if containsAnyToken(strings.ToLower(vendor), componentManufacturerTokens) &&
		cand.Score <= r.thresholds.ComponentVendor {
		return true
	}

	// Embedded DHCP clients are the local rules' specialty.
	if obs.VendorClass != "" && cand.Score <= r.thresholds.EmbeddedClient &&
		containsAnyToken(strings.ToLower(obs.VendorClass), embeddedVendorClassTokens) {
		return true
	}

	return false
}

// AcceptPreferred reports whether a fallback opinion is good enough to
// replace the oracle's answer. Medium or better confidence qualifies;
// so does any opinion from a hostname-driven method.
func (r *Resolver) AcceptPreferred(op Opinion) bool {
	if op.DeviceType == "" {
		return false
	}
	switch op.Confidence {
	case models.ConfidenceHigh, models.ConfidenceVeryHigh, models.ConfidenceMedium:
		return true
	}
	return op.Method == "hostname_specific" || op.Method == "iot_signature"
}

// Override is a selective correction applied on top of an accepted
// oracle answer.
type Override struct {
	DeviceType      models.DeviceType
	OperatingSystem string
	Method          string
}

// SelectiveOverride checks an accepted oracle answer against precise
// hostname patterns and returns a correction when the hostname clearly
// contradicts it. Returns nil to keep the oracle's answer.
func (r *Resolver) SelectiveOverride(cand *oracle.Candidate, hostname, vendor string, current models.DeviceType) *Override {
	if hostname == "" || cand == nil {
		return nil
	}
	h := strings.ToLower(hostname)

	for _, op := range overridePatterns {
		for _, pattern := range op.tokens {
			if !strings.Contains(h, pattern) {
				continue
			}
			if op.deviceType == current {
				continue
			}

			var reason string
			switch {
			case cand.Score <= r.thresholds.SelectiveAlways:
				reason = fmt.Sprintf("low_confidence_%d", cand.Score)
			case cand.Score <= r.thresholds.SelectiveConflict && clearDeviceConflict(current, op.deviceType):
				reason = fmt.Sprintf("device_conflict_%d", cand.Score)
			case cand.Score > r.thresholds.SelectiveConflict && containsAnyToken(h, criticalOverrideTokens):
				reason = fmt.Sprintf("critical_override_%d", cand.Score)
			default:
				continue
			}

			return &Override{
				DeviceType:      op.deviceType,
				OperatingSystem: inferOSFromDeviceType(op.deviceType, h),
				Method:          "fingerbank_override_" + reason,
			}
		}
	}
	return nil
}

// clearDeviceConflict reports whether two device types sit in
// genuinely different categories.
func clearDeviceConflict(oracleType, hostnameType models.DeviceType) bool {
	var oracleCat, hostCat string
	for _, cat := range deviceCategories {
		for _, t := range cat.types {
			if t == oracleType {
				oracleCat = cat.name
			}
			if t == hostnameType {
				hostCat = cat.name
			}
		}
	}
	return oracleCat != "" && hostCat != "" && oracleCat != hostCat && !categoriesOverlap(oracleCat, hostCat)
}

func categoriesOverlap(a, b string) bool {
	pairs := [][2]string{
		{"smart_home", "iot"},
		{"entertainment", "smart_home"},
		{"entertainment", "iot"},
	}
	for _, p := range pairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

// inferOSFromDeviceType guesses the OS for an overridden device type,
// refined by hostname tokens.
func inferOSFromDeviceType(dt models.DeviceType, hostnameLower string) string {
	switch dt {
	case models.DeviceTypeSmartCamera, models.DeviceTypeSmartSpeaker, models.DeviceTypeThermostat:
		return "Linux"
	case models.DeviceTypeStreaming:
		if strings.Contains(hostnameLower, "firetv") {
			return "Android TV"
		}
		return "Linux"
	case models.DeviceTypeGaming:
		switch {
		case containsAnyToken(hostnameLower, []string{"ps4", "ps5", "playstation"}):
			return "PlayStation OS"
		case strings.Contains(hostnameLower, "xbox"):
			return "Xbox OS"
		}
		return "Nintendo OS"
	case models.DeviceTypePrinter:
		return "Embedded OS"
	case models.DeviceTypeSmartTV:
		switch {
		case strings.Contains(hostnameLower, "android"):
			return "Android TV"
		case strings.Contains(hostnameLower, "lg"):
			return "webOS"
		}
		return "Tizen"
	case models.DeviceTypePhone:
		if strings.Contains(hostnameLower, "iphone") {
			return "iOS"
		}
		return "Android"
	}
	return "Unknown"
}
