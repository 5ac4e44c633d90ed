package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-catalog-service/internal/models"
)

// NamedRepository handles database operations for a table of {id, name}
// rows. Directors and genres share it.
type NamedRepository struct {
	db    *sql.DB
	table string
	kind  string
}

// NewDirectorRepository creates a NamedRepository over the directors table.
func NewDirectorRepository(db *sql.DB) *NamedRepository {
	return &NamedRepository{db: db, table: "directors", kind: "director"}
}

// NewGenreRepository creates a NamedRepository over the genres table.
func NewGenreRepository(db *sql.DB) *NamedRepository {
	return &NamedRepository{db: db, table: "genres", kind: "genre"}
}

// List returns every row ordered by id.
func (r *NamedRepository) List(ctx context.Context) ([]models.NamedRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, COALESCE(name, '') FROM %s ORDER BY id`, r.table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer rows.Close()

	records := make([]models.NamedRecord, 0)
	for rows.Next() {
		var rec models.NamedRecord
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.kind, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create inserts a row. A positive rec.ID is used as the key; otherwise the
// database assigns one. The assigned id is returned.
func (r *NamedRepository) Create(ctx context.Context, rec models.NamedRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int
	if rec.ID > 0 {
		err = tx.QueryRowContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (id, name) VALUES ($1, $2) RETURNING id`, r.table),
			rec.ID, rec.Name).Scan(&id)
	} else {
		err = tx.QueryRowContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, r.table),
			rec.Name).Scan(&id)
	}
	if err != nil {
		return 0, translate(err, r.kind)
	}

	if rec.ID > 0 {
		if err := syncSequence(ctx, tx, r.table); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Update replaces the row keyed by id with rec, including its key.
func (r *NamedRepository) Update(ctx context.Context, id int, rec models.NamedRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET id = $1, name = $2 WHERE id = $3`, r.table),
		rec.ID, rec.Name, id)
	if err != nil {
		return translate(err, r.kind)
	}
	if err := expectOneRow(res, r.kind, id); err != nil {
		return err
	}

	if rec.ID != id {
		if err := syncSequence(ctx, tx, r.table); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete removes the row keyed by id.
func (r *NamedRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.kind, id, err)
	}
	return expectOneRow(res, r.kind, id)
}
