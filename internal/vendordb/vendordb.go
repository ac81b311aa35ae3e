// Package vendordb resolves MAC addresses to hardware vendors through
// OUI (Organizationally Unique Identifier) prefix lookup. A built-in
// table covers the manufacturers the classifier cares most about; an
// optional CSV overlay extends or overrides it.
package vendordb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/leasetrace/leasetrace/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
)

var lookupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "vendordb_lookups_total",
		Help: "Total OUI vendor lookups by result.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(lookupsTotal)
}

// VendorInfo is the result of an OUI lookup. Lookup never fails: an
// unrecognized or malformed MAC yields Vendor "Unknown" with
// Confidence none, so callers can always proceed to classification.
type VendorInfo struct {
	MAC        string            `json:"mac_address"`
	OUI        string            `json:"oui"`
	Vendor     string            `json:"vendor"`
	Confidence models.Confidence `json:"confidence"`
	Source     string            `json:"source"`
	Reason     string            `json:"reason,omitempty"`
}

// Stats reports lookup counters for the stats endpoint.
type Stats struct {
	TotalLookups      int64      `json:"total_lookups"`
	SuccessfulLookups int64      `json:"successful_lookups"`
	SuccessRate       float64    `json:"success_rate"`
	DatabaseSize      int        `json:"database_size"`
	LastUpdated       *time.Time `json:"last_updated,omitempty"`
}

// Table is a thread-safe OUI-to-vendor table.
type Table struct {
	mu        sync.RWMutex
	entries   map[string]string
	updatedAt *time.Time

	lookups int64
	hits    int64
}

// New creates a Table seeded with the built-in OUI entries.
func New() *Table {
	entries := make(map[string]string, len(builtinOUIs))
	for oui, vendor := range builtinOUIs {
		entries[oui] = vendor
	}
	return &Table{entries: entries}
}

// NormalizeOUI strips separators from a MAC address and returns the
// uppercase 6-hex-digit OUI prefix. Returns false if fewer than six
// hex digits remain.
func NormalizeOUI(mac string) (string, bool) {
	r := strings.NewReplacer(":", "", "-", "", ".", "", " ", "")
	clean := strings.ToUpper(r.Replace(mac))
	if len(clean) < 6 {
		return clean, false
	}
	return clean[:6], true
}

// formatOUI renders a bare 6-digit OUI as AA:BB:CC.
func formatOUI(oui string) string {
	if len(oui) < 6 {
		return oui
	}
	return oui[:2] + ":" + oui[2:4] + ":" + oui[4:6]
}

// Lookup resolves the vendor for a MAC address.
func (t *Table) Lookup(mac string) VendorInfo {
	t.mu.Lock()
	t.lookups++
	t.mu.Unlock()

	oui, ok := NormalizeOUI(mac)
	if !ok {
		lookupsTotal.WithLabelValues("malformed").Inc()
		return unknownResult(mac, oui, "invalid MAC address format")
	}

	t.mu.RLock()
	vendor, found := t.entries[oui]
	t.mu.RUnlock()

	if !found {
		lookupsTotal.WithLabelValues("miss").Inc()
		return unknownResult(mac, oui, "OUI not found in database")
	}

	t.mu.Lock()
	t.hits++
	t.mu.Unlock()
	lookupsTotal.WithLabelValues("hit").Inc()

	return VendorInfo{
		MAC:        mac,
		OUI:        formatOUI(oui),
		Vendor:     vendor,
		Confidence: models.ConfidenceHigh,
		Source:     "oui_database",
	}
}

func unknownResult(mac, oui, reason string) VendorInfo {
	return VendorInfo{
		MAC:        mac,
		OUI:        formatOUI(oui),
		Vendor:     "Unknown",
		Confidence: models.ConfidenceNone,
		Source:     "unknown",
		Reason:     reason,
	}
}

// LoadCSV overlays entries from a CSV file with an "oui,vendor" header.
// Overlay entries take precedence over built-in ones. Returns the
// number of entries loaded.
func (t *Table) LoadCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open vendor CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read vendor CSV header: %w", err)
	}

	ouiCol, vendorCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "oui":
			ouiCol = i
		case "vendor":
			vendorCol = i
		}
	}
	if ouiCol < 0 || vendorCol < 0 {
		return 0, fmt.Errorf("vendor CSV missing oui/vendor columns")
	}

	loaded := 0
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loaded, fmt.Errorf("read vendor CSV row: %w", err)
		}
		if ouiCol >= len(row) || vendorCol >= len(row) {
			continue
		}
		oui, ok := NormalizeOUI(row[ouiCol])
		if !ok {
			continue
		}
		vendor := strings.TrimSpace(row[vendorCol])
		if vendor == "" {
			continue
		}
		t.entries[oui] = vendor
		loaded++
	}

	now := time.Now()
	t.updatedAt = &now
	return loaded, nil
}

// Size returns the number of entries in the table.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Stats returns lookup counters.
func (t *Table) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rate := 0.0
	if t.lookups > 0 {
		rate = float64(t.hits) / float64(t.lookups) * 100
	}
	return Stats{
		TotalLookups:      t.lookups,
		SuccessfulLookups: t.hits,
		SuccessRate:       rate,
		DatabaseSize:      len(t.entries),
		LastUpdated:       t.updatedAt,
	}
}

// Mobile device manufacturers, matched case-insensitively by substring.
var mobileVendors = []string{
	"apple", "samsung", "google", "huawei", "xiaomi", "oppo", "vivo",
	"oneplus", "lg electronics", "sony", "motorola", "nokia", "htc",
}

// IoT device manufacturers, matched case-insensitively by substring.
var iotVendors = []string{
	"raspberry pi", "philips", "amazon", "google", "nest", "ring",
	"tp-link", "netgear", "linksys", "belkin", "asus", "d-link",
}

// IsMobileVendor reports whether the vendor is a known phone/tablet maker.
func IsMobileVendor(vendor string) bool {
	return containsAny(vendor, mobileVendors)
}

// IsIoTVendor reports whether the vendor is a known IoT device maker.
func IsIoTVendor(vendor string) bool {
	return containsAny(vendor, iotVendors)
}

func containsAny(s string, patterns []string) bool {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
