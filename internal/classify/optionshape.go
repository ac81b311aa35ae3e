package classify

import (
	"strings"

	"github.com/leasetrace/leasetrace/pkg/models"
)

// classifyByOptionShape infers a device type from the size of the DHCP
// option 55 request list. Constrained IoT stacks request a handful of
// options, mobile stacks seven to nine, full desktop stacks ten or
// more. Vendor and vendor class refine the guess within each band.
// Returns an empty type when the fingerprint is absent.
func classifyByOptionShape(fingerprint, vendor, vendorClass string) (models.DeviceType, models.Confidence) {
	if fingerprint == "" {
		return "", models.ConfidenceNone
	}

	count := len(strings.Split(fingerprint, ","))
	switch {
	case count <= 3:
		return shapeMinimal(vendor)
	case count <= 6:
		return shapeSmart(vendor, vendorClass)
	case count >= 10:
		return shapeComplex(vendorClass)
	default:
		return shapeMobile(vendor)
	}
}

func shapeMinimal(vendor string) (models.DeviceType, models.Confidence) {
	v := strings.ToLower(vendor)
	switch {
	case strings.Contains(v, "espressif"), strings.Contains(v, "murata"):
		return models.DeviceTypeIoT, models.ConfidenceMedium
	case strings.Contains(v, "philips"):
		return models.DeviceTypeLighting, models.ConfidenceMedium
	}
	return models.DeviceTypeIoT, models.ConfidenceLow
}

func shapeSmart(vendor, vendorClass string) (models.DeviceType, models.Confidence) {
	vc := strings.ToLower(vendorClass)
	switch {
	case containsAnyToken(vc, []string{"ps5", "nintendo", "xbox"}):
		return models.DeviceTypeGaming, models.ConfidenceHigh
	case containsAnyToken(vc, []string{"roku", "fire tv", "chromecast"}):
		return models.DeviceTypeStreaming, models.ConfidenceHigh
	case containsAnyToken(vc, []string{"ring", "nest", "hue"}):
		return models.DeviceTypeSmartHome, models.ConfidenceHigh
	}

	v := strings.ToLower(vendor)
	switch {
	case strings.Contains(v, "amazon"):
		return models.DeviceTypeSmartSpeaker, models.ConfidenceMedium
	case strings.Contains(v, "philips"):
		return models.DeviceTypeLighting, models.ConfidenceMedium
	case strings.Contains(v, "nintendo"):
		return models.DeviceTypeGaming, models.ConfidenceHigh
	}

	return models.DeviceTypeSmartHome, models.ConfidenceLow
}

func shapeMobile(vendor string) (models.DeviceType, models.Confidence) {
	v := strings.ToLower(vendor)
	if containsAnyToken(v, []string{"apple", "samsung", "google", "huawei"}) {
		return models.DeviceTypePhone, models.ConfidenceHigh
	}
	return models.DeviceTypePhone, models.ConfidenceMedium
}

func shapeComplex(vendorClass string) (models.DeviceType, models.Confidence) {
	vc := strings.ToLower(vendorClass)
	if containsAnyToken(vc, []string{"windows", "microsoft", "dhcpcd", "linux"}) {
		return models.DeviceTypeComputer, models.ConfidenceHigh
	}
	return models.DeviceTypeComputer, models.ConfidenceMedium
}
