package classify

import (
	"github.com/leasetrace/leasetrace/pkg/models"
)

// Event topics published by the Classify module.
const (
	TopicDeviceClassified = "classify.device.classified"
	TopicRunCompleted     = "classify.run.completed"
)

// DeviceClassifiedEvent is the payload for TopicDeviceClassified.
type DeviceClassifiedEvent struct {
	RunID  string                       `json:"run_id"`
	Device *models.ClassificationResult `json:"device"`
}

// RunCompletedEvent is the payload for TopicRunCompleted.
type RunCompletedEvent struct {
	RunID       string `json:"run_id"`
	DeviceCount int    `json:"device_count"`
	Stats       Stats  `json:"stats"`
}
