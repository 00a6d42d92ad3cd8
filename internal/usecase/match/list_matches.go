package match

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/pagination"
)

const DefaultPageSize = 10

type ListInput struct {
	UserID uuid.UUID
	Status string
	Page   int
	Limit  int
}

type ListResult struct {
	Items []*entity.Match
	Total int
	Page  pagination.Page
}

type ListUseCase struct {
	matches repository.MatchRepository
}

func NewListUseCase(matches repository.MatchRepository) *ListUseCase {
	return &ListUseCase{matches: matches}
}

func (uc *ListUseCase) Execute(ctx context.Context, input ListInput) (*ListResult, error) {
	filter := repository.MatchFilter{UserID: input.UserID}
	if input.Status != "" {
		status, err := valueobject.NewMatchStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	page := pagination.New(input.Page, input.Limit, DefaultPageSize)
	filter.Limit = page.Limit
	filter.Offset = page.Offset()

	items, total, err := uc.matches.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Page: page}, nil
}
