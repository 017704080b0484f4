package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vizvolt/internal/models"
)

var insertQuery = buildInsertQuery()

func buildInsertQuery() string {
	placeholders := make([]string, len(models.Columns))
	for i := range models.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO device_data (%s) VALUES (%s)",
		strings.Join(models.Columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

// ReadingRepository appends device readings to the device_data table. There
// is no conflict key: re-ingesting the same device snapshot produces another
// row, matching the append-only table contract.
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository returns repository over an open connection.
func NewReadingRepository(db *sql.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Insert stores one normalized reading in its own transaction. On failure the
// transaction is rolled back and the error returned; the row is lost but the
// connection stays usable for the next reading.
func (r *ReadingRepository) Insert(ctx context.Context, reading models.DeviceReading) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs(reading)...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert reading: %w", err)
	}

	return tx.Commit()
}

// Close releases the underlying connection.
func (r *ReadingRepository) Close() error {
	return r.db.Close()
}

// insertArgs orders reading values by column; columns missing from the record
// insert as NULL.
func insertArgs(reading models.DeviceReading) []any {
	args := make([]any, len(models.Columns))
	for i, col := range models.Columns {
		args[i] = reading[col]
	}
	return args
}
