// Package models holds the shared data model for LeaseTrace: DHCP lease
// observations going in and device classification results coming out.
package models

import "time"

// DeviceType categorizes a classified device. The vocabulary below covers the
// labels the rule tables produce; the oracle may return labels outside this
// set, which pass through unmodified.
type DeviceType string

const (
	DeviceTypePhone        DeviceType = "Phone"
	DeviceTypeTablet       DeviceType = "Tablet"
	DeviceTypeComputer     DeviceType = "Computer"
	DeviceTypeLaptop       DeviceType = "Laptop"
	DeviceTypeDesktop      DeviceType = "Desktop"
	DeviceTypeServer       DeviceType = "Server"
	DeviceTypeGaming       DeviceType = "Gaming Console"
	DeviceTypeSmartTV      DeviceType = "Smart TV"
	DeviceTypeStreaming    DeviceType = "Streaming Device"
	DeviceTypeSmartSpeaker DeviceType = "Smart Speaker"
	DeviceTypeSmartCamera  DeviceType = "Smart Camera"
	DeviceTypeThermostat   DeviceType = "Smart Thermostat"
	DeviceTypeLighting     DeviceType = "Smart Lighting"
	DeviceTypeSmartPlug    DeviceType = "Smart Plug"
	DeviceTypeSmartHub     DeviceType = "Smart Hub"
	DeviceTypeSmartHome    DeviceType = "Smart Home Device"
	DeviceTypeNetwork      DeviceType = "Network Device"
	DeviceTypePrinter      DeviceType = "Printer"
	DeviceTypeCamera       DeviceType = "Camera"
	DeviceTypeIoT          DeviceType = "IoT Device"
	DeviceTypeSBC          DeviceType = "Single Board Computer"
	DeviceTypeVM           DeviceType = "Virtual Machine"
	DeviceTypeUnknown      DeviceType = "Unknown"
)

// Confidence is a categorical confidence tier. Vendor lookups report
// none/low/medium/high; final results report unknown/low/medium/high, with
// "error" reserved for devices whose classification panicked.
type Confidence string

const (
	ConfidenceNone     Confidence = "none"
	ConfidenceUnknown  Confidence = "unknown"
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very_high"
	ConfidenceError    Confidence = "error"
)

// MessageType is the DHCP message type of a lease observation.
type MessageType string

const (
	MessageDiscover MessageType = "DISCOVER"
	MessageOffer    MessageType = "OFFER"
	MessageRequest  MessageType = "REQUEST"
	MessageAck      MessageType = "ACK"
)

// DeviceObservation is one parsed DHCP lease event. Multiple observations may
// share a MAC; they are never merged, only scored to pick a representative.
type DeviceObservation struct {
	MAC         string      `json:"mac" example:"b8:27:eb:12:34:56"`
	IPAddress   string      `json:"ip_address,omitempty" example:"192.168.1.42"`
	Hostname    string      `json:"hostname,omitempty" example:"raspberrypi"`
	ParamList   string      `json:"param_list,omitempty" example:"1,3,6,15,26,28,51,58,59,43"`
	VendorClass string      `json:"vendor_class,omitempty" example:"android-dhcp-13"`
	MessageType MessageType `json:"message_type,omitempty" example:"ACK"`
	Timestamp   time.Time   `json:"timestamp,omitempty"`
}

// ClassificationResult is the per-MAC output of the classification pipeline.
type ClassificationResult struct {
	MAC              string     `json:"mac" example:"b8:27:eb:12:34:56"`
	IPAddress        string     `json:"ip_address,omitempty"`
	Hostname         string     `json:"hostname,omitempty"`
	Vendor           string     `json:"vendor,omitempty" example:"Raspberry Pi Foundation"`
	VendorConfidence Confidence `json:"vendor_confidence" example:"high"`
	DeviceType       DeviceType `json:"device_type,omitempty" example:"Single Board Computer"`
	DeviceName       string     `json:"device_name,omitempty"`
	OperatingSystem  string     `json:"operating_system,omitempty" example:"Linux"`
	Classification   string     `json:"classification" example:"Single Board Computer"`
	Method           string     `json:"classification_method" example:"enhanced_fallback"`
	Overall          Confidence `json:"overall_confidence" example:"medium"`

	// Oracle diagnostics. Score is nil when the oracle was skipped or failed;
	// Error carries the failure description for observability.
	OracleScore *int   `json:"oracle_score,omitempty"`
	OracleError string `json:"oracle_error,omitempty"`

	// ShapeConfidence is the option-list shape classifier's own sub-confidence
	// when Method is "dhcp_fingerprint".
	ShapeConfidence Confidence `json:"shape_confidence,omitempty"`

	ParamList   string    `json:"param_list,omitempty"`
	VendorClass string    `json:"vendor_class,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
