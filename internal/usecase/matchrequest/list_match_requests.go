package matchrequest

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
	Items []*entity.MatchRequest
	Total int
	Page  pagination.Page
}

type ListUseCase struct {
	requests repository.MatchRequestRepository
}

func NewListUseCase(requests repository.MatchRequestRepository) *ListUseCase {
	return &ListUseCase{requests: requests}
}

// Received входящие запросы; без статуса возвращаются только pending.
func (uc *ListUseCase) Received(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Status == "" {
		input.Status = string(valueobject.MatchRequestStatusPending)
	}
	return uc.list(ctx, input, repository.MatchRequestFilter{ReceiverID: &input.UserID})
}

func (uc *ListUseCase) Sent(ctx context.Context, input ListInput) (*ListResult, error) {
	return uc.list(ctx, input, repository.MatchRequestFilter{SenderID: &input.UserID})
}

func (uc *ListUseCase) list(ctx context.Context, input ListInput, filter repository.MatchRequestFilter) (*ListResult, error) {
	if input.Status != "" {
		status, err := valueobject.NewMatchRequestStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	page := pagination.New(input.Page, input.Limit, DefaultPageSize)
	filter.Limit = page.Limit
	filter.Offset = page.Offset()

	items, total, err := uc.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Page: page}, nil
}
