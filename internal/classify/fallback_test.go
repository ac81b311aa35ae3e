package classify

import (
	"testing"

	"github.com/leasetrace/leasetrace/pkg/models"
)

func TestClassify_EmptyInput(t *testing.T) {
	f := NewFallback()
	op := f.Classify("", "", "", "")

	if op.OperatingSystem != "" {
		t.Errorf("expected no OS, got %q", op.OperatingSystem)
	}
	if op.DeviceType != "" {
		t.Errorf("expected no device type, got %q", op.DeviceType)
	}
	if op.Confidence != models.ConfidenceLow {
		t.Errorf("expected low confidence, got %q", op.Confidence)
	}
	if op.Method != "fallback" {
		t.Errorf("expected method fallback, got %q", op.Method)
	}
	if op.HostnameOverride {
		t.Error("expected no hostname override")
	}
}

func TestClassify_WindowsDesktop(t *testing.T) {
	f := NewFallback()
	op := f.Classify("DESKTOP-WIN10", "MSFT 5.0", "1,15,3,6,44,46,47,31,33,121,249,43", "Microsoft")

	if op.OperatingSystem != "Windows 10/11" {
		t.Errorf("OperatingSystem = %q, want Windows 10/11", op.OperatingSystem)
	}
	if op.DeviceType != models.DeviceTypeDesktop {
		t.Errorf("DeviceType = %q, want Desktop", op.DeviceType)
	}
	if op.Confidence != models.ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", op.Confidence)
	}
	if op.Method != "dhcp_fingerprint" {
		t.Errorf("Method = %q, want dhcp_fingerprint", op.Method)
	}
}

func TestClassify_RingDoorbellBeatsVendor(t *testing.T) {
	f := NewFallback()
	// Vendor says Samsung (MAC reuse); the hostname names a doorbell
	// camera outright and must win.
	op := f.Classify("Ring-Doorbell-Front", "", "", "Samsung Electronics")

	if op.DeviceType != models.DeviceTypeSmartCamera {
		t.Errorf("DeviceType = %q, want Smart Camera", op.DeviceType)
	}
	if !op.HostnameOverride {
		t.Error("expected hostname override to be set")
	}
	if op.Method != "hostname_specific" {
		t.Errorf("Method = %q, want hostname_specific", op.Method)
	}
}

func TestClassify_IPhoneHighSpecificity(t *testing.T) {
	f := NewFallback()
	op := f.Classify("Johns-iPhone", "", "", "Apple, Inc.")

	if op.DeviceType != models.DeviceTypePhone {
		t.Errorf("DeviceType = %q, want Phone", op.DeviceType)
	}
	if op.OperatingSystem != "iOS" {
		t.Errorf("OperatingSystem = %q, want iOS", op.OperatingSystem)
	}
	if !op.HostnameOverride {
		t.Error("expected hostname override for iPhone hostname")
	}
	if op.Confidence != models.ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", op.Confidence)
	}
}

func TestClassify_ComponentManufacturerAndroidClient(t *testing.T) {
	f := NewFallback()
	// Intel NIC with an Android DHCP client means a computer running
	// Android emulation, not a phone.
	op := f.Classify("", "android-dhcp-13", "", "Intel Corporate")

	if op.DeviceType != models.DeviceTypeComputer {
		t.Errorf("DeviceType = %q, want Computer", op.DeviceType)
	}
	if op.OperatingSystem != "Android" {
		t.Errorf("OperatingSystem = %q, want Android", op.OperatingSystem)
	}
	if op.Method != "vendor_class_context" {
		t.Errorf("Method = %q, want vendor_class_context", op.Method)
	}
}

func TestClassify_MobileVendorAndroidClient(t *testing.T) {
	f := NewFallback()
	op := f.Classify("", "android-dhcp-13", "", "Samsung Electronics Co.,Ltd")

	if op.DeviceType != models.DeviceTypePhone {
		t.Errorf("DeviceType = %q, want Phone", op.DeviceType)
	}
	if op.OperatingSystem != "Android" {
		t.Errorf("OperatingSystem = %q, want Android", op.OperatingSystem)
	}
}

func TestClassify_FingerprintTable(t *testing.T) {
	tests := []struct {
		fingerprint string
		wantOS      string
	}{
		{"1,15,3,6,44,46,47,31,33,121,249,43", "Windows 10/11"},
		{"1, 15, 3, 6, 44, 46, 47, 31, 33, 121, 249, 43", "Windows 10/11"},
		{"1,121,3,6,15,119,252,95,44,46", "iOS/macOS"},
		{"1,3,6,15,26,28,51,58,59,43", "Android"},
		{"1,28,2,3,15,6,119,12,44,47,26,121,42", "Linux"},
		{"9,9,9", ""},
	}

	for _, tt := range tests {
		if got := classifyByFingerprint(tt.fingerprint); got != tt.wantOS {
			t.Errorf("classifyByFingerprint(%q) = %q, want %q", tt.fingerprint, got, tt.wantOS)
		}
	}
}

func TestClassify_VendorClassAnchored(t *testing.T) {
	// Vendor class patterns match prefixes only. "not-android" must not
	// classify as Android.
	if got := classifyByVendorClass("android-dhcp-13"); got != "Android" {
		t.Errorf("android-dhcp-13 = %q, want Android", got)
	}
	if got := classifyByVendorClass("not-android-thing"); got != "" {
		t.Errorf("not-android-thing = %q, want no match", got)
	}
	if got := classifyByVendorClass("MSFT 5.0"); got != "Windows" {
		t.Errorf("MSFT 5.0 = %q, want Windows", got)
	}
}

func TestClassify_IoTSignatures(t *testing.T) {
	tests := []struct {
		hostname string
		wantOS   string
		wantType models.DeviceType
	}{
		{"google-home-kitchen", "Google Assistant", models.DeviceTypeSmartSpeaker},
		{"homepod-living-room", "audioOS", models.DeviceTypeSmartSpeaker},
		{"wyze-cam-garage", "Linux", models.DeviceTypeSmartCamera},
		{"ecobee-hallway", "Linux", models.DeviceTypeThermostat},
		{"kasa-plug-lamp", "Linux", models.DeviceTypeSmartPlug},
		{"lifx-bulb-desk", "Linux", models.DeviceTypeLighting},
		{"nodemcu-sensor", "Embedded OS", models.DeviceTypeIoT},
	}

	for _, tt := range tests {
		os, dt := classifyByIoTSignature(tt.hostname)
		if os != tt.wantOS || dt != tt.wantType {
			t.Errorf("classifyByIoTSignature(%q) = (%q, %q), want (%q, %q)",
				tt.hostname, os, dt, tt.wantOS, tt.wantType)
		}
	}
}

func TestClassify_ConflictResolution(t *testing.T) {
	f := NewFallback()
	// Netgear OUI suggests Network Device; the hostname names a Roku.
	// The conflict table checks TV tokens before streaming tokens, so
	// the roku token resolves to Smart TV.
	op := f.Classify("roku-livingroom", "", "", "Netgear")

	if op.DeviceType != models.DeviceTypeSmartTV {
		t.Errorf("DeviceType = %q, want Smart TV", op.DeviceType)
	}
	if op.Confidence != models.ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", op.Confidence)
	}
}

func TestClassify_HostnameOverrideLocksDeviceType(t *testing.T) {
	f := NewFallback()
	// An xbox hostname locks Gaming Console; the Dell vendor rule must
	// not displace it.
	op := f.Classify("xbox-series-x", "", "", "Dell Inc.")

	if op.DeviceType != models.DeviceTypeGaming {
		t.Errorf("DeviceType = %q, want Gaming Console", op.DeviceType)
	}
	if !op.HostnameOverride {
		t.Error("expected hostname override")
	}
}

func TestClassify_VendorRulesFill(t *testing.T) {
	f := NewFallback()
	op := f.Classify("", "", "", "Ubiquiti Inc")

	if op.DeviceType != models.DeviceTypeNetwork {
		t.Errorf("DeviceType = %q, want Network Device", op.DeviceType)
	}
	if op.OperatingSystem != "UniFi OS" {
		t.Errorf("OperatingSystem = %q, want UniFi OS", op.OperatingSystem)
	}
	if op.Method != "vendor_rules" {
		t.Errorf("Method = %q, want vendor_rules", op.Method)
	}
}

func TestClassify_EmbeddedClientNetworkingVendor(t *testing.T) {
	f := NewFallback()
	op := f.Classify("", "udhcp 1.33.1", "", "TP-Link Systems Inc.")

	if op.DeviceType != models.DeviceTypeNetwork {
		t.Errorf("DeviceType = %q, want Network Device", op.DeviceType)
	}
}

func TestClassify_EmbeddedClientUnknownVendor(t *testing.T) {
	f := NewFallback()
	op := f.Classify("", "udhcp 1.33.1", "", "Unknown")

	if op.DeviceType != models.DeviceTypeIoT {
		t.Errorf("DeviceType = %q, want IoT Device", op.DeviceType)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	f := NewFallback()
	first := f.Classify("nest-thermostat-hall", "", "", "Google")
	second := f.Classify("nest-thermostat-hall", "", "", "Google")

	if first != second {
		t.Errorf("classification is not idempotent: %+v vs %+v", first, second)
	}
}

func TestHardwareManufacturerContext_PrivateMAC(t *testing.T) {
	tests := []struct {
		vendor      string
		vendorClass string
		want        models.DeviceType
	}{
		{"Private (locally administered)", "android-dhcp-12", models.DeviceTypePhone},
		{"Private (locally administered)", "MSFT 5.0", models.DeviceTypeComputer},
		{"Private (locally administered)", "apple", models.DeviceTypeComputer},
		{"Private (locally administered)", "", ""},
	}

	for _, tt := range tests {
		if got := hardwareManufacturerContext(tt.vendor, tt.vendorClass); got != tt.want {
			t.Errorf("hardwareManufacturerContext(%q, %q) = %q, want %q",
				tt.vendor, tt.vendorClass, got, tt.want)
		}
	}
}

func TestHardwareManufacturerContext_EdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		vendor      string
		vendorClass string
		want        models.DeviceType
	}{
		{"pure networking", "Ubiquiti Inc", "", models.DeviceTypeNetwork},
		{"tp-link router", "TP-Link Systems", "udhcp 1.28", models.DeviceTypeNetwork},
		{"tp-link kasa plug", "TP-Link Systems", "kasa-client", models.DeviceTypeIoT},
		{"tp-link default", "TP-Link Systems", "", models.DeviceTypeNetwork},
		{"sony playstation", "Sony Interactive", "ps5-client", models.DeviceTypeGaming},
		{"virtualization", "VMware, Inc.", "", models.DeviceTypeVM},
		{"dev board", "Raspberry Pi Foundation", "", models.DeviceTypeSBC},
		{"printer", "HP Inc.", "", models.DeviceTypePrinter},
		{"samsung tv", "Samsung Electronics", "tizen-dhcp", models.DeviceTypeSmartTV},
		{"no signal", "Acme Widgets", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hardwareManufacturerContext(tt.vendor, tt.vendorClass); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
