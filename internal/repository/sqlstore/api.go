package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/api-catalog/internal/apperror"
	"github.com/sakif/api-catalog/internal/model"
	"github.com/sakif/api-catalog/internal/repository"
)

// compile-time check that *Store implements repository.APIRepository
var _ repository.APIRepository = (*Store)(nil)

const apiColumns = `id, name, tech, description, url, code, rating, endpoint, method, created_at, updated_at`

// Create inserts a new catalog entry and fills in its generated ID and
// timestamps. An empty Method defaults to "GET".
//
// lib/pq does not implement LastInsertId (Postgres has no equivalent of
// SQLite's implicit rowid reporting), so the Postgres path uses RETURNING.
func (s *Store) Create(ctx context.Context, api *model.API) error {
	if api.Method == "" {
		api.Method = "GET"
	}
	now := time.Now()
	api.CreatedAt = now
	api.UpdatedAt = now

	const insert = `INSERT INTO apis (name, tech, description, url, code, rating, endpoint, method, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		api.Name, api.Tech, api.Description, api.URL, api.Code,
		api.Rating, api.Endpoint, api.Method, api.CreatedAt, api.UpdatedAt,
	}

	if s.postgres {
		err := s.conn.QueryRowContext(ctx, s.rebind(insert+` RETURNING id`), args...).Scan(&api.ID)
		if err != nil {
			return fmt.Errorf("sqlstore: creating api: %w", err)
		}
		return nil
	}

	res, err := s.conn.ExecContext(ctx, insert, args...)
	if err != nil {
		return fmt.Errorf("sqlstore: creating api: %w", err)
	}
	api.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlstore: reading api insert id: %w", err)
	}
	return nil
}

// GetByID retrieves a single catalog entry.
// Returns apperror.ErrNotFound if no entry has the id.
func (s *Store) GetByID(ctx context.Context, id int64) (*model.API, error) {
	var a model.API
	err := s.conn.QueryRowContext(ctx,
		s.rebind(`SELECT `+apiColumns+` FROM apis WHERE id = ?`), id,
	).Scan(
		&a.ID, &a.Name, &a.Tech, &a.Description, &a.URL, &a.Code,
		&a.Rating, &a.Endpoint, &a.Method, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("api", id)
		}
		return nil, fmt.Errorf("sqlstore: getting api %d: %w", id, err)
	}
	return &a, nil
}

// List returns every catalog entry, oldest first (insertion order — the
// home page shows the full catalog, there is no pagination).
func (s *Store) List(ctx context.Context) ([]model.API, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+apiColumns+` FROM apis ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing apis: %w", err)
	}
	defer rows.Close()

	var apis []model.API
	for rows.Next() {
		var a model.API
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Tech, &a.Description, &a.URL, &a.Code,
			&a.Rating, &a.Endpoint, &a.Method, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning api row: %w", err)
		}
		apis = append(apis, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating apis: %w", err)
	}
	return apis, nil
}

// UpdateRating overwrites the entry's rating wholesale. Last write wins
// between concurrent submissions; there is no averaging or history.
func (s *Store) UpdateRating(ctx context.Context, id int64, rating int) error {
	res, err := s.conn.ExecContext(ctx,
		s.rebind(`UPDATE apis SET rating = ?, updated_at = ? WHERE id = ?`),
		rating, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: rating api %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("api", id)
	}
	return nil
}

// Delete removes a catalog entry.
// Returns apperror.ErrNotFound if no entry has the id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx,
		s.rebind(`DELETE FROM apis WHERE id = ?`), id,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting api %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("api", id)
	}
	return nil
}
