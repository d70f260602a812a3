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

// compile-time check that *Store implements repository.UserRepository
var _ repository.UserRepository = (*Store)(nil)

// CreateUser inserts a new account and fills in its generated ID.
//
// username and email each carry a UNIQUE constraint; a violation of either
// is surfaced as apperror.ErrConflict so the signup handler can re-render
// the form instead of treating it as a server fault.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.DefaultRole
	}
	user.CreatedAt = time.Now()

	const insert = `INSERT INTO users (username, email, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?)`
	args := []any{user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt}

	if s.postgres {
		err := s.conn.QueryRowContext(ctx, s.rebind(insert+` RETURNING id`), args...).Scan(&user.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return apperror.Conflict("username or email already taken")
			}
			return fmt.Errorf("sqlstore: creating user %q: %w", user.Username, err)
		}
		return nil
	}

	res, err := s.conn.ExecContext(ctx, insert, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("username or email already taken")
		}
		return fmt.Errorf("sqlstore: creating user %q: %w", user.Username, err)
	}
	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlstore: reading user insert id: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := s.conn.QueryRowContext(ctx,
		s.rebind(`SELECT id, username, email, password_hash, role, created_at
		 FROM users WHERE id = ?`), id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlstore: getting user %d: %w", id, err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by their email address, the login key.
// Returns apperror.ErrNotFound if no account uses the address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.conn.QueryRowContext(ctx,
		s.rebind(`SELECT id, username, email, password_hash, role, created_at
		 FROM users WHERE email = ?`), email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: "no account for that email",
			}
		}
		return nil, fmt.Errorf("sqlstore: getting user by email: %w", err)
	}
	return &u, nil
}
