package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/qfill/internal/models"
)

// uriSeparator joins enqueued URIs into a single column. Newlines cannot
// appear in daemon library paths.
const uriSeparator = "\n"

// RefillLogRepository persists [models.RefillRecord] values to SQLite.
type RefillLogRepository struct {
	db *sql.DB
}

// NewRefillLogRepository creates a repository backed by db.
func NewRefillLogRepository(db *sql.DB) *RefillLogRepository {
	return &RefillLogRepository{db: db}
}

// Record appends one tick outcome to the refill log.
func (r *RefillLogRepository) Record(record models.RefillRecord) error {
	query := `
		INSERT INTO refill_log (id, created_at, mode, outcome, requested, added, reason, uris)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		record.ID,
		record.CreatedAt,
		record.Mode.String(),
		record.Outcome,
		record.Requested,
		record.Added,
		record.Reason,
		strings.Join(record.URIs, uriSeparator),
	)
	if err != nil {
		return fmt.Errorf("failed to insert refill record: %w", err)
	}

	return nil
}

// Recent returns up to limit records, newest first.
func (r *RefillLogRepository) Recent(limit int) ([]models.RefillRecord, error) {
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, created_at, mode, outcome, requested, added, reason, uris
		FROM refill_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query refill log: %w", err)
	}
	defer rows.Close()

	var records []models.RefillRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read refill log rows: %w", err)
	}

	return records, nil
}

// Prune deletes records older than cutoff and returns how many were removed.
func (r *RefillLogRepository) Prune(cutoff time.Time) (int, error) {
	result, err := r.db.Exec(`DELETE FROM refill_log WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune refill log: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}

	return int(removed), nil
}

func scanRecord(rows *sql.Rows) (models.RefillRecord, error) {
	var (
		record   models.RefillRecord
		modeName string
		uris     string
	)

	err := rows.Scan(
		&record.ID,
		&record.CreatedAt,
		&modeName,
		&record.Outcome,
		&record.Requested,
		&record.Added,
		&record.Reason,
		&uris,
	)
	if err != nil {
		return models.RefillRecord{}, fmt.Errorf("failed to scan refill record: %w", err)
	}

	mode, err := models.ParseMode(modeName)
	if err != nil {
		return models.RefillRecord{}, fmt.Errorf("corrupt refill record %s: %w", record.ID, err)
	}
	record.Mode = mode

	if uris != "" {
		record.URIs = strings.Split(uris, uriSeparator)
	}

	return record, nil
}
