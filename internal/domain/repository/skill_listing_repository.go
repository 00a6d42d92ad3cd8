package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap-backend/internal/domain/entity"
)

type SkillListingRepository interface {
	Create(ctx context.Context, listing *entity.SkillListing) error
	Update(ctx context.Context, listing *entity.SkillListing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error)
	List(ctx context.Context, filter ListingFilter) ([]*entity.SkillListing, int, error)
}

// ListingFilter всегда ограничивает выборку активными объявлениями.
type ListingFilter struct {
	Search   string
	Category string
	Level    string
	Location string
	OwnerID  *uuid.UUID
	Limit    int
	Offset   int
}
