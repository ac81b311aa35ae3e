package classify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leasetrace/leasetrace/pkg/models"
)

// ErrNotFound is returned for lookups of devices that were never
// classified.
var ErrNotFound = errors.New("classify: device not found")

// Run is one classification run over a batch of observations.
type Run struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DeviceCount int        `json:"device_count"`
}

// DeviceRecord is a persisted classification with bookkeeping fields.
type DeviceRecord struct {
	models.ClassificationResult
	RunID     string    `json:"run_id"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// ListDevicesOptions controls pagination and filtering for device
// queries.
type ListDevicesOptions struct {
	Limit      int
	Offset     int
	DeviceType string
	Method     string
}

// ClassifyStore provides database operations for the Classify module.
type ClassifyStore struct {
	db *sql.DB
}

// NewClassifyStore creates a store backed by the given database.
func NewClassifyStore(db *sql.DB) *ClassifyStore {
	return &ClassifyStore{db: db}
}

// SaveRun persists a completed run and its results in one
// transaction. Devices are upserted by MAC; each result also appends a
// history row. Returns the run ID.
func (s *ClassifyStore) SaveRun(ctx context.Context, results []models.ClassificationResult, startedAt time.Time) (string, error) {
	runID := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO classify_runs (id, started_at, completed_at, device_count)
		VALUES (?, ?, ?, ?)`,
		runID, startedAt.UTC(), now, len(results),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO classify_devices (
				mac, ip_address, hostname, vendor, vendor_confidence,
				device_type, device_name, operating_system, classification,
				method, overall_confidence, oracle_score, oracle_error,
				shape_confidence, param_list, vendor_class, run_id,
				first_seen, last_seen
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(mac) DO UPDATE SET
				ip_address = excluded.ip_address,
				hostname = excluded.hostname,
				vendor = excluded.vendor,
				vendor_confidence = excluded.vendor_confidence,
				device_type = excluded.device_type,
				device_name = excluded.device_name,
				operating_system = excluded.operating_system,
				classification = excluded.classification,
				method = excluded.method,
				overall_confidence = excluded.overall_confidence,
				oracle_score = excluded.oracle_score,
				oracle_error = excluded.oracle_error,
				shape_confidence = excluded.shape_confidence,
				param_list = excluded.param_list,
				vendor_class = excluded.vendor_class,
				run_id = excluded.run_id,
				last_seen = excluded.last_seen`,
			r.MAC, r.IPAddress, r.Hostname, r.Vendor, string(r.VendorConfidence),
			string(r.DeviceType), r.DeviceName, r.OperatingSystem, r.Classification,
			r.Method, string(r.Overall), nullableInt(r.OracleScore), r.OracleError,
			string(r.ShapeConfidence), r.ParamList, r.VendorClass, runID,
			now, now,
		)
		if err != nil {
			return "", fmt.Errorf("upsert device %s: %w", r.MAC, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO classify_history (mac, run_id, device_type, method, overall_confidence, classified_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.MAC, runID, string(r.DeviceType), r.Method, string(r.Overall), now,
		)
		if err != nil {
			return "", fmt.Errorf("insert history %s: %w", r.MAC, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// GetDeviceByMAC returns the latest classification for a MAC.
func (s *ClassifyStore) GetDeviceByMAC(ctx context.Context, mac string) (*DeviceRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT mac, ip_address, hostname, vendor, vendor_confidence,
			device_type, device_name, operating_system, classification,
			method, overall_confidence, oracle_score, oracle_error,
			shape_confidence, param_list, vendor_class, run_id,
			first_seen, last_seen
		FROM classify_devices WHERE mac = ?`, mac)

	rec, err := scanDevice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get device: %w", err)
	}
	return rec, nil
}

// ListDevices returns persisted classifications, newest first.
func (s *ClassifyStore) ListDevices(ctx context.Context, opts ListDevicesOptions) ([]*DeviceRecord, error) {
	query := `
		SELECT mac, ip_address, hostname, vendor, vendor_confidence,
			device_type, device_name, operating_system, classification,
			method, overall_confidence, oracle_score, oracle_error,
			shape_confidence, param_list, vendor_class, run_id,
			first_seen, last_seen
		FROM classify_devices WHERE 1=1`
	args := []any{}

	if opts.DeviceType != "" {
		query += " AND device_type = ?"
		args = append(args, opts.DeviceType)
	}
	if opts.Method != "" {
		query += " AND method = ?"
		args = append(args, opts.Method)
	}
	query += " ORDER BY last_seen DESC"

	if opts.Limit <= 0 || opts.Limit > 500 {
		opts.Limit = 100
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var records []*DeviceRecord
	for rows.Next() {
		rec, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountDevices returns the number of classified devices.
func (s *ClassifyStore) CountDevices(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classify_devices`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count devices: %w", err)
	}
	return n, nil
}

// CountByDeviceType returns how many devices carry each device type.
func (s *ClassifyStore) CountByDeviceType(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT device_type, COUNT(*) FROM classify_devices GROUP BY device_type`)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var dt string
		var n int
		if err := rows.Scan(&dt, &n); err != nil {
			return nil, err
		}
		counts[dt] = n
	}
	return counts, rows.Err()
}

// ListRuns returns recent runs, newest first.
func (s *ClassifyStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, completed_at, device_count
		FROM classify_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var completed sql.NullTime
		if err := rows.Scan(&r.ID, &r.StartedAt, &completed, &r.DeviceCount); err != nil {
			return nil, err
		}
		if completed.Valid {
			r.CompletedAt = &completed.Time
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// GetHistory returns past classifications for a MAC, newest first.
func (s *ClassifyStore) GetHistory(ctx context.Context, mac string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, device_type, method, overall_confidence, classified_at
		FROM classify_history WHERE mac = ?
		ORDER BY classified_at DESC, id DESC LIMIT ?`, mac, limit)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.RunID, &e.DeviceType, &e.Method, &e.Overall, &e.ClassifiedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HistoryEntry is one past classification of a device.
type HistoryEntry struct {
	RunID        string    `json:"run_id"`
	DeviceType   string    `json:"device_type"`
	Method       string    `json:"classification_method"`
	Overall      string    `json:"overall_confidence"`
	ClassifiedAt time.Time `json:"classified_at"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(row rowScanner) (*DeviceRecord, error) {
	var rec DeviceRecord
	var score sql.NullInt64
	var vendorConf, deviceType, overall, shapeConf string

	err := row.Scan(
		&rec.MAC, &rec.IPAddress, &rec.Hostname, &rec.Vendor, &vendorConf,
		&deviceType, &rec.DeviceName, &rec.OperatingSystem, &rec.Classification,
		&rec.Method, &overall, &score, &rec.OracleError,
		&shapeConf, &rec.ParamList, &rec.VendorClass, &rec.RunID,
		&rec.FirstSeen, &rec.LastSeen,
	)
	if err != nil {
		return nil, err
	}

	rec.VendorConfidence = models.Confidence(vendorConf)
	rec.DeviceType = models.DeviceType(deviceType)
	rec.Overall = models.Confidence(overall)
	rec.ShapeConfidence = models.Confidence(shapeConf)
	rec.Timestamp = rec.LastSeen
	if score.Valid {
		v := int(score.Int64)
		rec.OracleScore = &v
	}
	return &rec, nil
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
