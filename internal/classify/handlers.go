package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/leasetrace/leasetrace/pkg/models"
	"github.com/leasetrace/leasetrace/pkg/plugin"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an RFC 7807 problem detail response.
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://leasetrace.dev/problems/" + http.StatusText(status),
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}

// AnalyzeRequest is the request body for POST /analyze.
type AnalyzeRequest struct {
	Observations []models.DeviceObservation `json:"observations"`
}

// AnalyzeResponse is the response for POST /analyze.
type AnalyzeResponse struct {
	RunID   string                        `json:"run_id"`
	Devices []models.ClassificationResult `json:"devices"`
	Stats   Stats                         `json:"stats"`
}

// handleAnalyze classifies a batch of DHCP observations.
//
//	@Summary		Classify devices
//	@Description	Classifies every device appearing in the submitted DHCP lease observations and persists the results.
//	@Tags			classify
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		AnalyzeRequest	true	"DHCP lease observations"
//	@Success		200		{object}	AnalyzeResponse
//	@Failure		400		{object}	models.APIProblem
//	@Failure		500		{object}	models.APIProblem
//	@Router			/classify/analyze [post]
func (m *Module) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	for i, obs := range req.Observations {
		if obs.MAC == "" {
			writeError(w, http.StatusBadRequest, "observation "+strconv.Itoa(i)+": mac is required")
			return
		}
	}

	started := time.Now()
	results := m.analyzer.Analyze(r.Context(), req.Observations)

	runID, err := m.store.SaveRun(r.Context(), results, started)
	if err != nil {
		m.logger.Error("failed to persist run", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to persist results")
		return
	}

	for i := range results {
		m.publish(r.Context(), TopicDeviceClassified, DeviceClassifiedEvent{
			RunID:  runID,
			Device: &results[i],
		})
	}
	m.publish(r.Context(), TopicRunCompleted, RunCompletedEvent{
		RunID:       runID,
		DeviceCount: len(results),
		Stats:       m.analyzer.Stats(),
	})

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		RunID:   runID,
		Devices: results,
		Stats:   m.analyzer.Stats(),
	})
}

// handleListDevices returns persisted classifications.
//
//	@Summary		List classified devices
//	@Description	Returns persisted device classifications, newest first.
//	@Tags			classify
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit		query		int		false	"Max results"	default(100)
//	@Param			offset		query		int		false	"Offset"		default(0)
//	@Param			device_type	query		string	false	"Filter by device type"
//	@Param			method		query		string	false	"Filter by classification method"
//	@Success		200			{array}		DeviceRecord
//	@Failure		500			{object}	models.APIProblem
//	@Router			/classify/devices [get]
func (m *Module) handleListDevices(w http.ResponseWriter, r *http.Request) {
	records, err := m.store.ListDevices(r.Context(), ListDevicesOptions{
		Limit:      queryInt(r, "limit", 100),
		Offset:     queryInt(r, "offset", 0),
		DeviceType: r.URL.Query().Get("device_type"),
		Method:     r.URL.Query().Get("method"),
	})
	if err != nil {
		m.logger.Error("failed to list devices", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list devices")
		return
	}
	if records == nil {
		records = []*DeviceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleGetDevice returns the classification for one MAC.
//
//	@Summary		Get classified device
//	@Description	Returns the latest classification for a MAC address.
//	@Tags			classify
//	@Produce		json
//	@Security		BearerAuth
//	@Param			mac	path		string	true	"MAC address"
//	@Success		200	{object}	DeviceRecord
//	@Failure		404	{object}	models.APIProblem
//	@Failure		500	{object}	models.APIProblem
//	@Router			/classify/devices/{mac} [get]
func (m *Module) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	mac := r.PathValue("mac")
	rec, err := m.store.GetDeviceByMAC(r.Context(), mac)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "device not classified: "+mac)
		return
	}
	if err != nil {
		m.logger.Error("failed to get device", zap.String("mac", mac), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get device")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeviceHistory returns past classifications for one MAC.
//
//	@Summary		Device classification history
//	@Description	Returns past classifications for a MAC address, newest first.
//	@Tags			classify
//	@Produce		json
//	@Security		BearerAuth
//	@Param			mac		path		string	true	"MAC address"
//	@Param			limit	query		int		false	"Max results"	default(50)
//	@Success		200		{array}		HistoryEntry
//	@Failure		500		{object}	models.APIProblem
//	@Router			/classify/devices/{mac}/history [get]
func (m *Module) handleDeviceHistory(w http.ResponseWriter, r *http.Request) {
	mac := r.PathValue("mac")
	entries, err := m.store.GetHistory(r.Context(), mac, queryInt(r, "limit", 50))
	if err != nil {
		m.logger.Error("failed to get history", zap.String("mac", mac), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get history")
		return
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleListRuns returns recent classification runs.
//
//	@Summary		List runs
//	@Description	Returns recent classification runs, newest first.
//	@Tags			classify
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Max results"	default(20)
//	@Success		200		{array}		Run
//	@Failure		500		{object}	models.APIProblem
//	@Router			/classify/runs [get]
func (m *Module) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := m.store.ListRuns(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		m.logger.Error("failed to list runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []*Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// StatsResponse is the response for GET /stats.
type StatsResponse struct {
	Classification Stats          `json:"classification"`
	VendorDatabase any            `json:"vendor_database"`
	Oracle         any            `json:"oracle,omitempty"`
	DeviceCount    int            `json:"device_count"`
	ByDeviceType   map[string]int `json:"by_device_type"`
}

// handleStats returns classification statistics.
//
//	@Summary		Classification statistics
//	@Description	Returns counters for classification sources, the vendor database, and the oracle client.
//	@Tags			classify
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	StatsResponse
//	@Failure		500	{object}	models.APIProblem
//	@Router			/classify/stats [get]
func (m *Module) handleStats(w http.ResponseWriter, r *http.Request) {
	count, err := m.store.CountDevices(r.Context())
	if err != nil {
		m.logger.Error("failed to count devices", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to gather statistics")
		return
	}
	byType, err := m.store.CountByDeviceType(r.Context())
	if err != nil {
		m.logger.Error("failed to count by type", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to gather statistics")
		return
	}

	resp := StatsResponse{
		Classification: m.analyzer.Stats(),
		VendorDatabase: m.vendors.Stats(),
		DeviceCount:    count,
		ByDeviceType:   byType,
	}
	if m.oracle != nil {
		resp.Oracle = m.oracle.Stats()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVendorLookup resolves a MAC to its OUI vendor without running
// a full classification.
//
//	@Summary		Vendor lookup
//	@Description	Resolves a MAC address to its OUI vendor.
//	@Tags			classify
//	@Produce		json
//	@Security		BearerAuth
//	@Param			mac	path		string	true	"MAC address"
//	@Success		200	{object}	vendordb.VendorInfo
//	@Router			/classify/vendors/{mac} [get]
func (m *Module) handleVendorLookup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.vendors.Lookup(r.PathValue("mac")))
}

func (m *Module) publish(ctx context.Context, topic string, payload any) {
	if m.bus == nil {
		return
	}
	m.bus.PublishAsync(ctx, plugin.Event{
		Topic:     topic,
		Source:    "classify",
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
