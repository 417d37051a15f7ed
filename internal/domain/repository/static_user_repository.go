package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/common/security"
	"inmobiliaria_api/internal/domain/model"
)

// staticUserRepository is the single-admin credential store used with the
// flat-file driver. The configured password is hashed once at startup so
// login always goes through the same bcrypt comparison as the database
// variant.
type staticUserRepository struct {
	admin model.User
}

func NewStaticUserRepository(username, email, password string) (UserRepository, error) {
	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("staticUserRepository: %w", err)
	}
	now := time.Now()
	return &staticUserRepository{
		admin: model.User{
			ID:             "admin",
			Username:       strings.ToLower(strings.TrimSpace(username)),
			Email:          strings.ToLower(strings.TrimSpace(email)),
			HashedPassword: hashed,
			Role:           model.RoleAdmin,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}, nil
}

func (r *staticUserRepository) Create(context.Context, *model.User) error {
	return fmt.Errorf("static credential store is read-only: %w", common.ErrForbidden)
}

func (r *staticUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if strings.EqualFold(email, r.admin.Email) {
		u := r.admin
		return &u, nil
	}
	return nil, common.ErrNotFound
}

func (r *staticUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if strings.EqualFold(username, r.admin.Username) {
		u := r.admin
		return &u, nil
	}
	return nil, common.ErrNotFound
}

func (r *staticUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	if id == r.admin.ID {
		u := r.admin
		return &u, nil
	}
	return nil, common.ErrNotFound
}

func (r *staticUserRepository) AdminExists(context.Context) (bool, error) {
	return true, nil
}
