package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"movie-catalog-service/internal/models"
)

const (
	uniqueViolation     = pq.ErrorCode("23505")
	foreignKeyViolation = pq.ErrorCode("23503")
)

// translate maps PostgreSQL constraint failures onto the model error kinds.
func translate(err error, kind string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s id already exists", models.ErrConflict, kind)
		case foreignKeyViolation:
			return models.Invalid("%s references a missing record", kind)
		}
	}
	return fmt.Errorf("write %s: %w", kind, err)
}

func expectOneRow(res sql.Result, kind string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, models.ErrNotFound)
	}
	return nil
}

// syncSequence moves the table's serial sequence past its largest key so
// generated ids do not collide with explicitly inserted ones.
func syncSequence(ctx context.Context, tx *sql.Tx, table string) error {
	_, err := tx.ExecContext(ctx, fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
		table))
	if err != nil {
		return fmt.Errorf("sync %s sequence: %w", table, err)
	}
	return nil
}
