package classify

import (
	"strings"
	"testing"

	"github.com/leasetrace/leasetrace/internal/oracle"
	"github.com/leasetrace/leasetrace/pkg/models"
)

func testResolver() *Resolver {
	return NewResolver(DefaultConfig().Thresholds)
}

func TestShouldPreferFallback_LowScore(t *testing.T) {
	r := testResolver()
	cand := &oracle.Candidate{Score: 40, DeviceType: "Computer"}

	if !r.ShouldPreferFallback(cand, models.DeviceObservation{}, "") {
		t.Error("score 40 should route to fallback")
	}

	cand.Score = 41
	if r.ShouldPreferFallback(cand, models.DeviceObservation{}, "") {
		t.Error("score 41 with no other signal should trust the oracle")
	}
}

func TestShouldPreferFallback_HardwareManufacturerHierarchy(t *testing.T) {
	r := testResolver()
	cand := &oracle.Candidate{
		Score:     85,
		Hierarchy: []string{"Intel Corporate", "Hardware Manufacturer"},
	}

	if !r.ShouldPreferFallback(cand, models.DeviceObservation{}, "") {
		t.Error("hardware manufacturer hierarchy should route to fallback even at score 85")
	}
}

func TestShouldPreferFallback_HardwareManufacturerName(t *testing.T) {
	r := testResolver()
	cand := &oracle.Candidate{Score: 85, Name: "Hardware Manufacturer/Intel"}

	if !r.ShouldPreferFallback(cand, models.DeviceObservation{}, "") {
		t.Error("hardware manufacturer device name should route to fallback")
	}
}

func TestShouldPreferFallback_CriticalHostname(t *testing.T) {
	r := testResolver()
	cand := &oracle.Candidate{Score: 90, DeviceType: "Computer"}
	obs := models.DeviceObservation{Hostname: "Ring-Doorbell-Front"}

	if !r.ShouldPreferFallback(cand, obs, "") {
		t.Error("critical hostname token should beat a score of 90")
	}
}

func TestShouldPreferFallback_StrongHostnameCeiling(t *testing.T) {
	r := testResolver()
	obs := models.DeviceObservation{Hostname: "raspberry-nas"}

	if !r.ShouldPreferFallback(&oracle.Candidate{Score: 50}, obs, "") {
		t.Error("strong hostname at score 50 should route to fallback")
	}
	if r.ShouldPreferFallback(&oracle.Candidate{Score: 51}, obs, "") {
		t.Error("strong hostname at score 51 should trust the oracle")
	}
}

func TestShouldPreferFallback_ComponentVendor(t *testing.T) {
	r := testResolver()

	if !r.ShouldPreferFallback(&oracle.Candidate{Score: 60}, models.DeviceObservation{}, "Intel Corporate") {
		t.Error("component vendor at score 60 should route to fallback")
	}
	if r.ShouldPreferFallback(&oracle.Candidate{Score: 61}, models.DeviceObservation{}, "Intel Corporate") {
		t.Error("component vendor at score 61 should trust the oracle")
	}
}

func TestShouldPreferFallback_EmbeddedVendorClass(t *testing.T) {
	r := testResolver()
	obs := models.DeviceObservation{VendorClass: "udhcp 1.33.1"}

	if !r.ShouldPreferFallback(&oracle.Candidate{Score: 55}, obs, "") {
		t.Error("embedded vendor class at score 55 should route to fallback")
	}
	if r.ShouldPreferFallback(&oracle.Candidate{Score: 56}, obs, "") {
		t.Error("embedded vendor class at score 56 should trust the oracle")
	}
}

func TestAcceptPreferred(t *testing.T) {
	r := testResolver()

	tests := []struct {
		name string
		op   Opinion
		want bool
	}{
		{"no device type", Opinion{Confidence: models.ConfidenceHigh}, false},
		{"high with type", Opinion{DeviceType: models.DeviceTypePhone, Confidence: models.ConfidenceHigh}, true},
		{"medium with type", Opinion{DeviceType: models.DeviceTypePhone, Confidence: models.ConfidenceMedium}, true},
		{"low generic method", Opinion{DeviceType: models.DeviceTypePhone, Confidence: models.ConfidenceLow, Method: "vendor_inference"}, false},
		{"low hostname_specific", Opinion{DeviceType: models.DeviceTypePhone, Confidence: models.ConfidenceLow, Method: "hostname_specific"}, true},
		{"low iot_signature", Opinion{DeviceType: models.DeviceTypeSmartPlug, Confidence: models.ConfidenceLow, Method: "iot_signature"}, true},
	}

	for _, tt := range tests {
		if got := r.AcceptPreferred(tt.op); got != tt.want {
			t.Errorf("%s: AcceptPreferred = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSelectiveOverride_LowScore(t *testing.T) {
	r := testResolver()
	cand := &oracle.Candidate{Score: 35}

	ov := r.SelectiveOverride(cand, "echo-dot-kitchen", "Amazon", models.DeviceTypeComputer)
	if ov == nil {
		t.Fatal("expected override at score 35")
	}
	if ov.DeviceType != models.DeviceTypeSmartSpeaker {
		t.Errorf("DeviceType = %q, want Smart Speaker", ov.DeviceType)
	}
	if ov.Method != "fingerbank_override_low_confidence_35" {
		t.Errorf("Method = %q", ov.Method)
	}
	if ov.OperatingSystem != "Linux" {
		t.Errorf("OperatingSystem = %q, want Linux", ov.OperatingSystem)
	}
}

func TestSelectiveOverride_DeviceConflict(t *testing.T) {
	r := testResolver()
	// Score 55: override needs a clear category conflict. Computer vs
	// Smart Camera is one; Streaming vs Smart TV is not (overlapping).
	cand := &oracle.Candidate{Score: 55}

	ov := r.SelectiveOverride(cand, "nest-cam-porch", "Google", models.DeviceTypeComputer)
	if ov == nil {
		t.Fatal("expected override for computer vs smart camera at score 55")
	}
	if !strings.HasPrefix(ov.Method, "fingerbank_override_device_conflict_") {
		t.Errorf("Method = %q, want device_conflict reason", ov.Method)
	}

	// Smart TV and Streaming Device overlap via the entertainment
	// category; no clear conflict, no override.
	if ov := r.SelectiveOverride(cand, "samsung-tv-bedroom", "Samsung", models.DeviceTypeStreaming); ov != nil {
		t.Errorf("expected no override for overlapping categories, got %+v", ov)
	}
}

func TestSelectiveOverride_CriticalHighScore(t *testing.T) {
	r := testResolver()
	cand := &oracle.Candidate{Score: 90}

	ov := r.SelectiveOverride(cand, "ring-doorbell-front", "Samsung", models.DeviceTypeComputer)
	if ov == nil {
		t.Fatal("expected critical override at score 90")
	}
	if ov.DeviceType != models.DeviceTypeSmartCamera {
		t.Errorf("DeviceType = %q, want Smart Camera", ov.DeviceType)
	}
	if ov.Method != "fingerbank_override_critical_override_90" {
		t.Errorf("Method = %q", ov.Method)
	}
}

func TestSelectiveOverride_SameTypeNoOverride(t *testing.T) {
	r := testResolver()
	cand := &oracle.Candidate{Score: 20}

	if ov := r.SelectiveOverride(cand, "echo-dot-kitchen", "Amazon", models.DeviceTypeSmartSpeaker); ov != nil {
		t.Errorf("expected no override when types agree, got %+v", ov)
	}
}

func TestSelectiveOverride_HighScoreNonCritical(t *testing.T) {
	r := testResolver()
	// galaxy-s23 matches a phone pattern but is not on the critical
	// list; score 90 keeps the oracle's answer.
	cand := &oracle.Candidate{Score: 90}

	if ov := r.SelectiveOverride(cand, "galaxy-s23", "Samsung", models.DeviceTypeComputer); ov != nil {
		t.Errorf("expected no override for non-critical pattern at score 90, got %+v", ov)
	}
}

func TestInferOSFromDeviceType(t *testing.T) {
	tests := []struct {
		dt       models.DeviceType
		hostname string
		want     string
	}{
		{models.DeviceTypeSmartCamera, "ring-doorbell", "Linux"},
		{models.DeviceTypeStreaming, "firetv-stick", "Android TV"},
		{models.DeviceTypeStreaming, "roku-stick", "Linux"},
		{models.DeviceTypeGaming, "ps5-console", "PlayStation OS"},
		{models.DeviceTypeGaming, "xbox-one", "Xbox OS"},
		{models.DeviceTypeGaming, "nintendo-switch", "Nintendo OS"},
		{models.DeviceTypePrinter, "hp-printer", "Embedded OS"},
		{models.DeviceTypeSmartTV, "android-tv", "Android TV"},
		{models.DeviceTypeSmartTV, "lg-tv", "webOS"},
		{models.DeviceTypeSmartTV, "samsung-tv", "Tizen"},
		{models.DeviceTypePhone, "iphone-15", "iOS"},
		{models.DeviceTypePhone, "galaxy-s23", "Android"},
		{models.DeviceTypeTablet, "some-tablet", "Unknown"},
	}

	for _, tt := range tests {
		if got := inferOSFromDeviceType(tt.dt, tt.hostname); got != tt.want {
			t.Errorf("inferOSFromDeviceType(%q, %q) = %q, want %q", tt.dt, tt.hostname, got, tt.want)
		}
	}
}

func TestClearDeviceConflict(t *testing.T) {
	tests := []struct {
		a, b models.DeviceType
		want bool
	}{
		{models.DeviceTypeComputer, models.DeviceTypeSmartCamera, true},
		{models.DeviceTypePhone, models.DeviceTypeGaming, true},
		{models.DeviceTypeStreaming, models.DeviceTypeSmartTV, false},
		{models.DeviceTypeSmartCamera, models.DeviceTypeIoT, false},
		{models.DeviceTypeUnknown, models.DeviceTypePhone, false},
	}

	for _, tt := range tests {
		if got := clearDeviceConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("clearDeviceConflict(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
