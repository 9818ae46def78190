package user

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-admin/internal/auth"
	domain "github.com/BruksfildServices01/barber-admin/internal/domain/user"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateUserInput struct {
	Name     string
	Password string
	Role     domain.Role
}

// UpdateUserInput leaves nil fields untouched.
type UpdateUserInput struct {
	ID       uint
	Name     *string
	Password *string
	Role     *domain.Role
}

// ======================================================
// USE CASE
// ======================================================

type Users struct {
	repo domain.Repository
}

func NewUsers(repo domain.Repository) *Users {
	return &Users{repo: repo}
}

func (uc *Users) Any(ctx context.Context) (bool, error) {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (uc *Users) List(ctx context.Context, opts domain.ListOptions) ([]models.User, error) {
	return uc.repo.List(ctx, opts)
}

func (uc *Users) Get(ctx context.Context, id uint) (*models.User, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *Users) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	u, err := newUser(in.Name, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateFirst bootstraps the initial administrator. It fails with ErrUsersExist as
// soon as any user is stored, whatever the input.
func (uc *Users) CreateFirst(ctx context.Context, name, password string) (*models.User, error) {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domain.ErrUsersExist
	}

	u, err := newUser(name, password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.CreateIfEmpty(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *Users) Update(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	u, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, *in.Role)
		}
		u.Role = string(*in.Role)
	}
	if in.Password != nil {
		hash, salt, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash, u.PasswordSalt = hash, salt
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func newUser(name, password string, role domain.Role) (*models.User, error) {
	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Name:         name,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         string(role),
	}, nil
}
