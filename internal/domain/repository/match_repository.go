package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	UpdateStatus(ctx context.Context, match *entity.Match) error
	// Complete атомарно переводит матч в completed и увеличивает completedExchanges
	// обоих участников. false означает, что матч уже был завершён и счётчики не менялись.
	Complete(ctx context.Context, match *entity.Match) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Match, error)
	// FindBetween ищет любой матч пары в обоих порядках; nil, nil если его нет.
	FindBetween(ctx context.Context, userA, userB uuid.UUID) (*entity.Match, error)
	ExistsForListing(ctx context.Context, userA, userB, listingID uuid.UUID) (bool, error)
	List(ctx context.Context, filter MatchFilter) ([]*entity.Match, int, error)
}

type MatchFilter struct {
	UserID uuid.UUID
	Status valueobject.MatchStatus
	Limit  int
	Offset int
}
