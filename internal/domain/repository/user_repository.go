package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap-backend/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	Search(ctx context.Context, filter UserFilter) ([]*entity.User, int, error)

	AddMatch(ctx context.Context, userID, matchedUserID uuid.UUID) error
	RemoveMatch(ctx context.Context, userID, matchedUserID uuid.UUID) error
}

type UserFilter struct {
	Search   string
	Skills   []string
	Location string
	Limit    int
	Offset   int
}
