// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlstore);
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/api-catalog/internal/model"
)

// APIRepository stores catalog entries.
//
// Create assigns the entry's ID and timestamps. GetByID, UpdateRating and
// Delete return apperror.ErrNotFound (wrapped) when no entry has the id.
type APIRepository interface {
	Create(ctx context.Context, api *model.API) error
	GetByID(ctx context.Context, id int64) (*model.API, error)
	List(ctx context.Context) ([]model.API, error)
	UpdateRating(ctx context.Context, id int64, rating int) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository stores user accounts.
//
// CreateUser returns apperror.ErrConflict (wrapped) when the username or
// email is already taken. Lookups return apperror.ErrNotFound on a miss.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}
