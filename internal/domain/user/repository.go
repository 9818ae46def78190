package user

import (
	"context"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type SortField string

const (
	SortByID   SortField = ""
	SortByName SortField = "name"
	SortByRole SortField = "role"
)

type ListOptions struct {
	SortField SortField
	Desc      bool
}

// Repository is the credential store. Lookups that find nothing return ErrNotFound;
// any other error means the store itself failed.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
	List(ctx context.Context, opts ListOptions) ([]models.User, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error

	// CreateIfEmpty inserts u only while the table has no rows and
	// returns ErrUsersExist otherwise.
	CreateIfEmpty(ctx context.Context, u *models.User) error
}
