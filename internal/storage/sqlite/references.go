package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
)

// refTable maps a reference kind to its table and the expenses column that
// points at it. Values are constants, never user input.
type refTable struct {
	table  string
	column string
}

func tableFor(kind models.RefKind) (refTable, error) {
	switch kind {
	case models.KindCategory:
		return refTable{table: "categories", column: "category_id"}, nil
	case models.KindPaymentMethod:
		return refTable{table: "payment_methods", column: "payment_method_id"}, nil
	default:
		return refTable{}, fmt.Errorf("unknown reference kind %d", kind)
	}
}

// ListReferences returns all records of kind ordered by name.
func (s *SQLiteStore) ListReferences(ctx context.Context, kind models.RefKind) ([]models.Reference, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM "+t.table+" ORDER BY name COLLATE NOCASE",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.table, err)
	}
	defer rows.Close()

	refs := []models.Reference{}
	for rows.Next() {
		var (
			ref     models.Reference
			created int64
		)
		if err := rows.Scan(&ref.ID, &ref.Name, &created); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		ref.CreatedAt = fromUnix(created)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", t.table, err)
	}
	return refs, nil
}

// CreateReference inserts ref, generating its ID and CreatedAt when unset.
func (s *SQLiteStore) CreateReference(ctx context.Context, kind models.RefKind, ref *models.Reference) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	if ref.ID == "" {
		ref.ID = uuid.NewString()
	}
	if ref.CreatedAt.IsZero() {
		ref.CreatedAt = nowUTC()
	}
	ref.Name = strings.TrimSpace(ref.Name)

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO "+t.table+" (id, name, created_at) VALUES (?, ?, ?)",
		ref.ID, ref.Name, unix(ref.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", kind, mapError(err))
	}
	return nil
}

// UpsertReference returns the record named name, creating it if needed.
func (s *SQLiteStore) UpsertReference(ctx context.Context, kind models.RefKind, name string) (*models.Reference, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO "+t.table+" (id, name, created_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING",
		uuid.NewString(), name, unix(nowUTC()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert %s: %w", kind, mapError(err))
	}

	var (
		ref     models.Reference
		created int64
	)
	err = s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM "+t.table+" WHERE name = ?", name,
	).Scan(&ref.ID, &ref.Name, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", kind, err)
	}
	ref.CreatedAt = fromUnix(created)
	return &ref, nil
}

// UpdateReference renames an existing record.
func (s *SQLiteStore) UpdateReference(ctx context.Context, kind models.RefKind, ref *models.Reference) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	ref.Name = strings.TrimSpace(ref.Name)

	res, err := s.db.ExecContext(ctx,
		"UPDATE "+t.table+" SET name = ? WHERE id = ?",
		ref.Name, ref.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", kind, mapError(err))
	}
	if err := requireRow(res); err != nil {
		return err
	}

	var created int64
	if err := s.db.QueryRowContext(ctx,
		"SELECT created_at FROM "+t.table+" WHERE id = ?", ref.ID,
	).Scan(&created); err != nil {
		return fmt.Errorf("failed to read %s: %w", kind, err)
	}
	ref.CreatedAt = fromUnix(created)
	return nil
}

// DeleteReference deletes the record unless expenses still reference it. The
// dependent count and the delete run in one transaction so a concurrent
// expense insert cannot slip between them; the ON DELETE RESTRICT foreign key
// backs this up.
func (s *SQLiteStore) DeleteReference(ctx context.Context, kind models.RefKind, id string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var dependents int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses WHERE "+t.column+" = ?", id,
	).Scan(&dependents); err != nil {
		return fmt.Errorf("failed to count expenses for %s: %w", kind, err)
	}
	if dependents > 0 {
		return storage.ErrHasDependents
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM "+t.table+" WHERE id = ?", id)
	if err != nil {
		err = mapError(err)
		if errors.Is(err, storage.ErrInvalidReference) {
			return storage.ErrHasDependents
		}
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
