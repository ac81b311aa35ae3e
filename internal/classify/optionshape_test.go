package classify

import (
	"testing"

	"github.com/leasetrace/leasetrace/pkg/models"
)

func TestOptionShape_Empty(t *testing.T) {
	dt, conf := classifyByOptionShape("", "", "")
	if dt != "" || conf != models.ConfidenceNone {
		t.Errorf("got (%q, %q), want empty with none confidence", dt, conf)
	}
}

func TestOptionShape_Bands(t *testing.T) {
	tests := []struct {
		name        string
		fingerprint string
		vendor      string
		vendorClass string
		wantType    models.DeviceType
		wantConf    models.Confidence
	}{
		{"minimal unknown", "1,3,6", "", "", models.DeviceTypeIoT, models.ConfidenceLow},
		{"minimal espressif", "1,3,6", "Espressif Inc.", "", models.DeviceTypeIoT, models.ConfidenceMedium},
		{"minimal philips", "1,3", "Philips Lighting BV", "", models.DeviceTypeLighting, models.ConfidenceMedium},
		{"smart gaming class", "1,3,6,15,26,28", "", "PS5 System", models.DeviceTypeGaming, models.ConfidenceHigh},
		{"smart streaming class", "1,3,6,15,26", "", "Roku DVP", models.DeviceTypeStreaming, models.ConfidenceHigh},
		{"smart home class", "1,3,6,15", "", "nest-client", models.DeviceTypeSmartHome, models.ConfidenceHigh},
		{"smart amazon vendor", "1,3,6,15", "Amazon Technologies", "", models.DeviceTypeSmartSpeaker, models.ConfidenceMedium},
		{"smart default", "1,3,6,15", "", "", models.DeviceTypeSmartHome, models.ConfidenceLow},
		{"mobile apple", "1,121,3,6,15,119,252", "Apple, Inc.", "", models.DeviceTypePhone, models.ConfidenceHigh},
		{"mobile default", "1,3,6,15,26,28,51", "", "", models.DeviceTypePhone, models.ConfidenceMedium},
		{"complex windows", "1,15,3,6,44,46,47,31,33,121,249,43", "", "MSFT 5.0 windows", models.DeviceTypeComputer, models.ConfidenceHigh},
		{"complex default", "1,2,3,4,5,6,7,8,9,10", "", "", models.DeviceTypeComputer, models.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, conf := classifyByOptionShape(tt.fingerprint, tt.vendor, tt.vendorClass)
			if dt != tt.wantType || conf != tt.wantConf {
				t.Errorf("got (%q, %q), want (%q, %q)", dt, conf, tt.wantType, tt.wantConf)
			}
		})
	}
}
