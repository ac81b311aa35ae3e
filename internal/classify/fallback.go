package classify

import (
	"strings"

	"github.com/leasetrace/leasetrace/pkg/models"
)

// Opinion is the fallback classifier's verdict for one device. A zero
// OperatingSystem or DeviceType means the corresponding field could not
// be determined.
type Opinion struct {
	OperatingSystem string
	DeviceType      models.DeviceType
	Confidence      models.Confidence
	Method          string

	// HostnameOverride reports that a high-specificity hostname pattern
	// locked the device type. Later methods must not displace it.
	HostnameOverride bool
}

// Fallback classifies devices from DHCP attributes alone, without the
// oracle. Methods run in a fixed priority order; earlier methods lock
// fields that later methods may only fill, never overwrite.
type Fallback struct{}

// NewFallback returns the rule-based fallback classifier. It is
// stateless and safe for concurrent use.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Classify runs the full method chain over the given attributes. Every
// argument may be empty; an all-empty input yields the zero Opinion
// with low confidence and method "fallback".
func (f *Fallback) Classify(hostname, vendorClass, fingerprint, vendor string) Opinion {
	op := Opinion{
		Confidence: models.ConfidenceLow,
		Method:     "fallback",
	}

	// Method 1: high-specificity hostname patterns. A hostname that
	// names the device class outright beats every other signal.
	var hostOS string
	var hostType models.DeviceType
	if hostname != "" {
		hostOS, hostType = classifyByHostname(hostname)

		specific := false
		for _, re := range highSpecificityHostnamePatterns {
			if re.MatchString(hostname) {
				specific = true
				break
			}
		}

		if specific && hostType != "" {
			op.DeviceType = hostType
			op.Confidence = models.ConfidenceHigh
			op.Method = "hostname_specific"
			op.HostnameOverride = true
		}
		if specific && hostOS != "" {
			op.OperatingSystem = hostOS
			if op.Confidence != models.ConfidenceHigh {
				op.Confidence = models.ConfidenceMedium
			}
			op.Method = "hostname_specific"
		}
	}

	// Method 2: exact DHCP option fingerprint.
	if fingerprint != "" && !op.HostnameOverride {
		if os := classifyByFingerprint(fingerprint); os != "" && op.OperatingSystem == "" {
			op.OperatingSystem = os
			op.Confidence = models.ConfidenceHigh
			op.Method = "dhcp_fingerprint"
		}
	}

	// Method 3: vendor class prefix.
	if vendorClass != "" && !op.HostnameOverride {
		if os := classifyByVendorClass(vendorClass); os != "" && op.OperatingSystem == "" {
			op.OperatingSystem = os
			op.Confidence = models.ConfidenceHigh
			op.Method = "vendor_class"
		}
	}

	// Method 4: IoT hostname signatures.
	if op.OperatingSystem == "" || op.DeviceType == "" {
		iotOS, iotType := classifyByIoTSignature(hostname)
		if op.OperatingSystem == "" && iotOS != "" {
			op.OperatingSystem = iotOS
			if op.Confidence == models.ConfidenceLow {
				op.Confidence = models.ConfidenceMedium
			}
			op.Method = "iot_signature"
		}
		if op.DeviceType == "" && iotType != "" && !op.HostnameOverride {
			op.DeviceType = iotType
		}
	}

	// Method 5: per-vendor default rules.
	if op.OperatingSystem == "" || op.DeviceType == "" {
		vOS, vType := classifyByVendorRules(vendor)
		if op.OperatingSystem == "" && vOS != "" {
			op.OperatingSystem = vOS
			if op.Confidence == models.ConfidenceLow {
				op.Confidence = models.ConfidenceMedium
			}
			op.Method = "vendor_rules"
		}
		if op.DeviceType == "" && vType != "" && !op.HostnameOverride {
			op.DeviceType = vType
		}
	}

	// Method 6: remaining hostname matches, medium specificity.
	if hostname != "" && (op.OperatingSystem == "" || op.DeviceType == "") {
		if op.OperatingSystem == "" && hostOS != "" {
			op.OperatingSystem = hostOS
			if op.Confidence == models.ConfidenceLow {
				op.Confidence = models.ConfidenceMedium
			}
			op.Method = "hostname"
		}
		if op.DeviceType == "" && hostType != "" && !op.HostnameOverride {
			op.DeviceType = hostType
		}
	}

	// Method 7: vendor-based OS inference.
	if op.OperatingSystem == "" && vendor != "" {
		v := strings.ToLower(vendor)
		switch {
		case strings.Contains(v, "apple"):
			op.OperatingSystem = "iOS/macOS"
			op.Method = "vendor_inference"
		case strings.Contains(v, "microsoft"):
			op.OperatingSystem = "Windows"
			op.Method = "vendor_inference"
		case strings.Contains(v, "samsung") && op.DeviceType == "":
			op.OperatingSystem = "Android"
			if !op.HostnameOverride {
				op.DeviceType = models.DeviceTypePhone
			}
			if op.Confidence == models.ConfidenceLow {
				op.Confidence = models.ConfidenceMedium
			}
			op.Method = "vendor_inference"
		}
	}

	// Method 8: vendor class context analysis.
	if op.DeviceType == "" && vendorClass != "" {
		if dt := analyzeVendorClassContext(vendorClass, vendor); dt != "" {
			op.DeviceType = dt
			if op.Confidence == models.ConfidenceLow {
				op.Confidence = models.ConfidenceMedium
			}
			op.Method = "vendor_class_context"
		}
	}

	// Method 9: hardware manufacturer context analysis.
	if op.DeviceType == "" && vendor != "" {
		if dt := hardwareManufacturerContext(vendor, vendorClass); dt != "" {
			op.DeviceType = dt
			if op.Confidence == models.ConfidenceLow {
				op.Confidence = models.ConfidenceMedium
			}
			op.Method = "hardware_manufacturer_context"
		}
	}

	// Method 10: hostname beats vendor when they disagree on the device
	// type. The hostname was chosen by a human who can see the device.
	if hostname != "" && vendor != "" && op.DeviceType != "" {
		if dt := resolveHostnameVendorConflict(hostname, op.DeviceType); dt != "" {
			op.DeviceType = dt
			op.Confidence = models.ConfidenceHigh
			op.Method = "hostname_conflict_resolution"
			op.HostnameOverride = true
		}
	}

	return op
}

// classifyByHostname returns the OS and device type suggested by the
// hostname, or empty values for no match.
func classifyByHostname(hostname string) (string, models.DeviceType) {
	if hostname == "" {
		return "", ""
	}

	var os string
	for _, p := range hostnameOSPatterns {
		if p.re.MatchString(hostname) {
			os = p.os
			break
		}
	}

	var dt models.DeviceType
	for _, p := range hostnameTypePatterns {
		if p.re.MatchString(hostname) {
			dt = p.deviceType
			break
		}
	}

	return os, dt
}

// classifyByVendorClass returns the OS implied by the DHCP vendor
// class identifier.
func classifyByVendorClass(vendorClass string) string {
	if vendorClass == "" {
		return ""
	}
	for _, p := range vendorClassOSPatterns {
		if p.re.MatchString(vendorClass) {
			return p.os
		}
	}
	return ""
}

// classifyByFingerprint returns the OS for an exactly known option 55
// request list. Spaces are stripped before comparison.
func classifyByFingerprint(fingerprint string) string {
	if fingerprint == "" {
		return ""
	}
	return fingerprintOSTable[strings.ReplaceAll(fingerprint, " ", "")]
}

func classifyByIoTSignature(hostname string) (string, models.DeviceType) {
	if hostname == "" {
		return "", ""
	}
	for _, p := range iotSignaturePatterns {
		if p.re.MatchString(hostname) {
			return p.os, p.deviceType
		}
	}
	return "", ""
}

func classifyByVendorRules(vendor string) (string, models.DeviceType) {
	if vendor == "" {
		return "", ""
	}
	v := strings.ToLower(vendor)
	for _, r := range vendorRules {
		if strings.Contains(v, r.vendor) {
			return r.os, r.deviceType
		}
	}
	return "", ""
}

// hardwareManufacturerContext classifies by OUI vendor with the DHCP
// vendor class as a tiebreaker. Edge cases run in a fixed order: pure
// networking vendors, multi-product vendors, component manufacturers,
// device manufacturers, virtualization, dev boards, printers, and
// finally locally administered MACs.
func hardwareManufacturerContext(vendor, vendorClass string) models.DeviceType {
	if vendor == "" {
		return ""
	}
	v := strings.ToLower(vendor)
	vc := strings.ToLower(vendorClass)

	if containsAnyToken(v, pureNetworkingVendors) {
		return models.DeviceTypeNetwork
	}

	for _, mp := range multiProductVendors {
		if !strings.Contains(v, mp.vendor) {
			continue
		}
		if containsAnyToken(vc, mp.networkingIndicators) {
			return models.DeviceTypeNetwork
		}
		if containsAnyToken(vc, mp.iotIndicators) {
			return models.DeviceTypeIoT
		}
		return mp.defaultType
	}

	for _, cm := range componentManufacturers {
		if !strings.Contains(v, cm.vendor) {
			continue
		}
		if containsAnyToken(vc, cm.networkIndicators) {
			return models.DeviceTypeNetwork
		}
		if containsAnyToken(vc, cm.mobileIndicators) {
			return models.DeviceTypePhone
		}
		return cm.defaultType
	}

	for _, dm := range deviceManufacturers {
		if !strings.Contains(v, dm.vendor) {
			continue
		}
		for _, ind := range dm.indicators {
			if containsAnyToken(vc, ind.tokens) {
				return ind.deviceType
			}
		}
		return dm.defaultType
	}

	if containsAnyToken(v, virtualVendors) {
		return models.DeviceTypeVM
	}
	if containsAnyToken(v, devBoardVendors) {
		return models.DeviceTypeSBC
	}
	if containsAnyToken(v, printerVendors) {
		return models.DeviceTypePrinter
	}

	// Locally administered MACs carry no real OUI; the vendor class is
	// the only hint left.
	if strings.Contains(v, "private") || strings.Contains(v, "locally administered") {
		switch {
		case strings.Contains(vc, "android"):
			return models.DeviceTypePhone
		case strings.Contains(vc, "msft"), strings.Contains(vc, "microsoft"):
			return models.DeviceTypeComputer
		case strings.Contains(vc, "apple"):
			return models.DeviceTypeComputer
		}
		return ""
	}

	return ""
}

// analyzeVendorClassContext infers a device type from the DHCP vendor
// class identifier, disambiguated by the OUI manufacturer.
func analyzeVendorClassContext(vendorClass, manufacturer string) models.DeviceType {
	if vendorClass == "" {
		return ""
	}
	vc := strings.ToLower(vendorClass)
	mfg := strings.ToLower(manufacturer)

	// Embedded Linux DHCP clients: routers when the vendor makes
	// networking gear, otherwise IoT.
	if containsAnyToken(vc, embeddedClientTokens) {
		if containsAnyToken(mfg, embeddedNetworkVendors) {
			return models.DeviceTypeNetwork
		}
		return models.DeviceTypeIoT
	}

	// Standard Linux DHCP clients.
	if containsAnyToken(vc, linuxClientTokens) {
		if containsAnyToken(mfg, sbcVendorTokens) {
			return models.DeviceTypeSBC
		}
		if containsAnyToken(mfg, linuxNetworkVendorTokens) {
			return models.DeviceTypeNetwork
		}
		return models.DeviceTypeComputer
	}

	// Android DHCP clients. Component manufacturer OUIs mean a computer
	// running Android emulation, not a phone.
	if containsAnyToken(vc, androidClientTokens) {
		if containsAnyToken(mfg, componentVendorTokens) {
			return models.DeviceTypeComputer
		}
		if strings.Contains(vc, "android-dhcp-") {
			if containsAnyToken(mfg, mobileVendorTokens) {
				return models.DeviceTypePhone
			}
			return models.DeviceTypeIoT
		}
		if strings.Contains(vc, "android-tv") {
			return models.DeviceTypeSmartTV
		}
		return models.DeviceTypePhone
	}

	if containsAnyToken(vc, appleClientTokens) {
		if strings.Contains(vc, "phone") || strings.Contains(vc, "ios") {
			return models.DeviceTypePhone
		}
		if strings.Contains(vc, "tv") {
			return models.DeviceTypeStreaming
		}
		return models.DeviceTypeComputer
	}

	if containsAnyToken(vc, windowsClientTokens) {
		return models.DeviceTypeComputer
	}
	if containsAnyToken(vc, gamingClientTokens) {
		return models.DeviceTypeGaming
	}
	if containsAnyToken(vc, iotClientTokens) {
		return models.DeviceTypeIoT
	}
	if containsAnyToken(vc, streamingClientTokens) {
		return models.DeviceTypeStreaming
	}
	if containsAnyToken(vc, printerClientTokens) {
		return models.DeviceTypePrinter
	}
	if containsAnyToken(vc, networkOSTokens) {
		return models.DeviceTypeNetwork
	}
	if containsAnyToken(vc, vmClientTokens) {
		return models.DeviceTypeVM
	}

	// A generic vendor class says nothing; lean on the manufacturer.
	if containsAnyToken(vc, genericClientTokens) && manufacturer != "" {
		return hardwareManufacturerContext(manufacturer, vendorClass)
	}

	return ""
}

// resolveHostnameVendorConflict returns the device type the hostname
// demands when it differs from the current classification, or empty to
// leave the classification alone.
func resolveHostnameVendorConflict(hostname string, current models.DeviceType) models.DeviceType {
	if hostname == "" {
		return ""
	}
	h := strings.ToLower(hostname)
	for _, cp := range conflictDevicePatterns {
		if containsAnyToken(h, cp.tokens) && cp.deviceType != current {
			return cp.deviceType
		}
	}
	return ""
}

func containsAnyToken(s string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
