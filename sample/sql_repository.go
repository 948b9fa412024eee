package sample

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/spinframework/spin-go-sdk/v2/sqlite"
)

var ErrDBNotAvailable = fmt.Errorf("SQLite DB is not available")

const sqlTimeLayout = time.RFC3339Nano

// SQLRepository is the alternative durable backend behind the same
// Repository interface, for deployments that outgrow the single KV slot.
// Insertion order is the rowid order.
type SQLRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSpinSqliteDB(dbName string) (*sql.DB, error) {
	db := sqlite.Open(dbName)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite DB: %w", err)
	}

	return db, nil
}

func NewSQLRepository(db *sql.DB, logger *slog.Logger) (*SQLRepository, error) {
	if db == nil {
		logger.Error("SQL DB is not initialized")
		return nil, ErrDBNotAvailable
	}

	return &SQLRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *SQLRepository) IsReady() bool {
	if r.logger == nil {
		fmt.Println("Logger of SQLRepository is not initialized")
		return false
	}

	if r.db == nil {
		r.logger.Error("SQLite DB is not initialized")
		return false
	}

	return true
}

func (r *SQLRepository) Close() error {
	if r.db == nil {
		return ErrDBNotAvailable
	}

	if err := r.db.Close(); err != nil {
		r.logger.Error("Failed to close SQLite DB", "error", err)
		return err
	}

	r.logger.Info("SQLite DB closed successfully")
	return nil
}

// Migrate creates the samples table when it does not exist yet.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	defer ctx.Done()

	query := `
CREATE TABLE IF NOT EXISTS samples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sample_id TEXT NOT NULL,
	height_mm REAL NOT NULL,
	width_mm REAL NOT NULL,
	length_mm REAL NOT NULL,
	status TEXT NOT NULL,
	created_at TEXT NOT NULL
)`
	if _, err := r.db.Exec(query); err != nil {
		r.logger.Error("Failed to create samples table", "error", err)
		return err
	}

	return nil
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]Record, error) {
	defer ctx.Done()

	query := `SELECT sample_id, height_mm, width_mm, length_mm, status, created_at FROM samples ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Warn("Failed to query samples, treating as empty", "error", err)
		return []Record{}, nil
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var record Record
		var status, createdAt string
		if err := rows.Scan(&record.SampleID, &record.HeightMm, &record.WidthMm, &record.LengthMm, &status, &createdAt); err != nil {
			r.logger.Error("Failed to scan sample row", "error", err)
			return nil, err
		}

		record.Status = Status(status)
		timestamp, err := time.Parse(sqlTimeLayout, createdAt)
		if err != nil {
			r.logger.Warn("Skipping sample row with malformed timestamp", "created_at", createdAt)
			continue
		}
		record.CreatedAt = timestamp

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error occurred during row iteration", "error", err)
		return nil, err
	}

	return records, nil
}

func (r *SQLRepository) Save(ctx context.Context, input SaveInput) (*Record, error) {
	records, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	record, err := BuildRecord(input, records, time.Now())
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO samples (sample_id, height_mm, width_mm, length_mm, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.Exec(query,
		record.SampleID,
		record.HeightMm,
		record.WidthMm,
		record.LengthMm,
		string(record.Status),
		record.CreatedAt.Format(sqlTimeLayout),
	)
	if err != nil {
		r.logger.Error("Failed to insert sample", "sampleId", record.SampleID, "error", err)
		return nil, err
	}

	r.logger.Debug("Sample inserted", "sampleId", record.SampleID)
	return record, nil
}

func (r *SQLRepository) DeleteByID(ctx context.Context, sampleID string, createdAt time.Time) error {
	defer ctx.Done()

	query := `
DELETE FROM samples
WHERE id = (
	SELECT id FROM samples
	WHERE sample_id = ? AND created_at = ?
	LIMIT 1
)`
	if _, err := r.db.Exec(query, sampleID, createdAt.Format(sqlTimeLayout)); err != nil {
		r.logger.Error("Failed to delete sample", "sampleId", sampleID, "error", err)
		return err
	}

	return nil
}
