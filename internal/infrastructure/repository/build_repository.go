package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"adsbuilder/internal/domain/build"
	"adsbuilder/internal/infrastructure/database"
)

type buildRepository struct {
	db     *database.DB
	limits build.Limits
}

// NewBuildRepository creates a repository that stores each build as its
// saved JSON document. limits is used when documents are decoded.
func NewBuildRepository(db *database.DB, limits build.Limits) build.Repository {
	return &buildRepository{db: db, limits: limits}
}

func (r *buildRepository) Create(ctx context.Context, rec *build.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Build == nil {
		rec.Build = build.NewBuild(r.limits)
	}
	doc, err := build.Encode(rec.Build)
	if err != nil {
		return fmt.Errorf("encode build: %w", err)
	}

	now := time.Now().UTC()
	rec.ClientName = rec.Build.ClientName
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO builds (id, owner_id, client_name, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OwnerID, rec.ClientName, string(doc), rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

func (r *buildRepository) GetByID(ctx context.Context, id string) (*build.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, client_name, document, created_at, updated_at FROM builds WHERE id = ?`, id)
	rec, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, build.ErrNotFound
	}
	return rec, err
}

func (r *buildRepository) ListByOwner(ctx context.Context, ownerID string) ([]build.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, client_name, document, created_at, updated_at
		 FROM builds WHERE owner_id = ? ORDER BY updated_at DESC, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]build.Record, 0)
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *buildRepository) Update(ctx context.Context, rec *build.Record) error {
	doc, err := build.Encode(rec.Build)
	if err != nil {
		return fmt.Errorf("encode build: %w", err)
	}
	rec.ClientName = rec.Build.ClientName
	rec.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE builds SET client_name = ?, document = ?, updated_at = ? WHERE id = ?`,
		rec.ClientName, string(doc), rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return build.ErrNotFound
	}
	return nil
}

func (r *buildRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return build.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *buildRepository) scan(row rowScanner) (*build.Record, error) {
	var (
		rec build.Record
		doc string
	)
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.ClientName, &doc, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	b, err := build.Decode([]byte(doc), r.limits)
	if err != nil {
		return nil, fmt.Errorf("stored build %s: %w", rec.ID, err)
	}
	rec.Build = b
	return &rec, nil
}
