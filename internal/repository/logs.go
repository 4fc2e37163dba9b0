package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loghive/loghive/internal/model"
	"github.com/loghive/loghive/internal/query"
)

// LogRepository persists and reads log records.
type LogRepository struct {
	pool *pgxpool.Pool
}

// NewLogRepository returns a LogRepository using the given pool.
func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

// Insert persists one record, assigning ID here and ReceivedAt from the
// store's clock at insert. Single statement; cancelling ctx aborts the
// insert with nothing persisted.
func (r *LogRepository) Insert(ctx context.Context, rec *model.LogRecord) error {
	q := `
		INSERT INTO logs (id, tenant, event_time, severity, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING received_at`
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, q,
		rec.ID,
		rec.Tenant,
		rec.EventTime,
		rec.Severity,
		rec.Message,
	).Scan(&rec.ReceivedAt)
}

// List returns records matching the spec, most recently ingested first.
// No matches yields an empty slice, not an error.
func (r *LogRepository) List(ctx context.Context, spec query.FilterSpec) ([]model.LogRecord, error) {
	where, args := spec.SQL()
	q := `
		SELECT id, tenant, event_time, severity, message, received_at
		FROM logs
		WHERE ` + where + `
		ORDER BY received_at DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.LogRecord, 0)
	for rows.Next() {
		var rec model.LogRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Tenant,
			&rec.EventTime,
			&rec.Severity,
			&rec.Message,
			&rec.ReceivedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
