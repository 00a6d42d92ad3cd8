package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
)

type MatchRequestRepository interface {
	Create(ctx context.Context, request *entity.MatchRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MatchRequest, error)
	ExistsPending(ctx context.Context, senderID, receiverID uuid.UUID, skillOffered, skillWanted string) (bool, error)
	// CompareAndSetStatus меняет статус только если текущий равен from.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to valueobject.MatchRequestStatus) (bool, error)
	List(ctx context.Context, filter MatchRequestFilter) ([]*entity.MatchRequest, int, error)
	CountByReceiver(ctx context.Context, receiverID uuid.UUID, status valueobject.MatchRequestStatus) (int, error)
}

// MatchRequestFilter задаёт ровно одно из SenderID/ReceiverID.
type MatchRequestFilter struct {
	SenderID   *uuid.UUID
	ReceiverID *uuid.UUID
	Status     valueobject.MatchRequestStatus
	Limit      int
	Offset     int
}
