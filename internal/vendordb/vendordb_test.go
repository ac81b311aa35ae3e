package vendordb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leasetrace/leasetrace/pkg/models"
)

func TestNormalizeOUI(t *testing.T) {
	tests := []struct {
		name string
		mac  string
		want string
		ok   bool
	}{
		{"colon separated", "b8:27:eb:12:34:56", "B827EB", true},
		{"dash separated", "B8-27-EB-12-34-56", "B827EB", true},
		{"dot separated", "b827.eb12.3456", "B827EB", true},
		{"no separator", "b827eb123456", "B827EB", true},
		{"bare oui", "B8:27:EB", "B827EB", true},
		{"too short", "b8:27", "B827", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeOUI(tt.mac)
			if got != tt.want || ok != tt.ok {
				t.Errorf("NormalizeOUI(%q) = (%q, %v), want (%q, %v)", tt.mac, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLookup_KnownVendor(t *testing.T) {
	table := New()

	info := table.Lookup("b8:27:eb:aa:bb:cc")
	if info.Vendor != "Raspberry Pi Foundation" {
		t.Errorf("Vendor = %q, want Raspberry Pi Foundation", info.Vendor)
	}
	if info.Confidence != models.ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", info.Confidence)
	}
	if info.Source != "oui_database" {
		t.Errorf("Source = %q, want oui_database", info.Source)
	}
	if info.OUI != "B8:27:EB" {
		t.Errorf("OUI = %q, want B8:27:EB", info.OUI)
	}
}

func TestLookup_UnknownOUI(t *testing.T) {
	table := New()

	info := table.Lookup("02:00:5e:aa:bb:cc")
	if info.Vendor != "Unknown" {
		t.Errorf("Vendor = %q, want Unknown", info.Vendor)
	}
	if info.Confidence != models.ConfidenceNone {
		t.Errorf("Confidence = %q, want none", info.Confidence)
	}
	if info.Source != "unknown" {
		t.Errorf("Source = %q, want unknown", info.Source)
	}
}

func TestLookup_MalformedMAC(t *testing.T) {
	table := New()

	info := table.Lookup("zz")
	if info.Vendor != "Unknown" {
		t.Errorf("Vendor = %q, want Unknown for malformed MAC", info.Vendor)
	}
	if info.Reason == "" {
		t.Error("expected a reason for the unknown result")
	}
}

func TestLoadCSV_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendors.csv")
	csvData := "oui,vendor\n00:11:22,Acme Devices\nB8:27:EB,Overridden Pi Vendor\n"
	if err := os.WriteFile(path, []byte(csvData), 0o600); err != nil {
		t.Fatal(err)
	}

	table := New()
	n, err := table.LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded = %d, want 2", n)
	}

	// New entry is visible.
	if info := table.Lookup("00:11:22:33:44:55"); info.Vendor != "Acme Devices" {
		t.Errorf("Vendor = %q, want Acme Devices", info.Vendor)
	}

	// Overlay wins over the built-in table.
	if info := table.Lookup("b8:27:eb:00:00:01"); info.Vendor != "Overridden Pi Vendor" {
		t.Errorf("Vendor = %q, want Overridden Pi Vendor", info.Vendor)
	}
}

func TestLoadCSV_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("prefix,name\naa:bb:cc,X\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	table := New()
	if _, err := table.LoadCSV(path); err == nil {
		t.Error("expected error for CSV without oui/vendor columns")
	}
}

func TestStats(t *testing.T) {
	table := New()

	table.Lookup("b8:27:eb:aa:bb:cc") // hit
	table.Lookup("02:00:5e:aa:bb:cc") // miss

	stats := table.Stats()
	if stats.TotalLookups != 2 {
		t.Errorf("TotalLookups = %d, want 2", stats.TotalLookups)
	}
	if stats.SuccessfulLookups != 1 {
		t.Errorf("SuccessfulLookups = %d, want 1", stats.SuccessfulLookups)
	}
	if stats.SuccessRate != 50 {
		t.Errorf("SuccessRate = %v, want 50", stats.SuccessRate)
	}
	if stats.DatabaseSize == 0 {
		t.Error("DatabaseSize should be non-zero")
	}
}

func TestVendorHints(t *testing.T) {
	if !IsMobileVendor("Samsung Electronics Co.,Ltd") {
		t.Error("Samsung should be a mobile vendor")
	}
	if IsMobileVendor("ARRIS Group, Inc.") {
		t.Error("ARRIS should not be a mobile vendor")
	}
	if !IsIoTVendor("Raspberry Pi Foundation") {
		t.Error("Raspberry Pi should be an IoT vendor")
	}
	if IsIoTVendor("Dell Inc.") {
		t.Error("Dell should not be an IoT vendor")
	}
}
