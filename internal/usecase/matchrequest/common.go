package matchrequest

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

var errNotReceiver = apperror.New(apperror.ErrCodeNotAuthorized, "You are not authorized to respond to this request")

// loadPendingForReceiver находит запрос, который может обработать получатель.
// Порядок проверок: существование, получатель, статус.
func loadPendingForReceiver(ctx context.Context, requests repository.MatchRequestRepository, id, receiverID uuid.UUID) (*entity.MatchRequest, error) {
	req, err := requests.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrMatchRequestMissing
		}
		return nil, err
	}
	if !req.IsReceivedBy(receiverID) {
		return nil, errNotReceiver
	}
	if !req.IsPending() {
		return nil, entity.ErrAlreadyProcessed(req.Status)
	}
	return req, nil
}

// lostRace формирует ошибку, когда условное обновление статуса не сработало.
func lostRace(ctx context.Context, requests repository.MatchRequestRepository, id uuid.UUID) error {
	current, err := requests.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return entity.ErrAlreadyProcessed(current.Status)
}

func requestPayload(req *entity.MatchRequest) map[string]any {
	payload := map[string]any{
		"requestId":    req.ID.String(),
		"senderId":     req.SenderID.String(),
		"receiverId":   req.ReceiverID.String(),
		"skillOffered": req.SkillOffered,
		"skillWanted":  req.SkillWanted,
		"status":       string(req.Status),
	}
	if req.Sender != nil {
		payload["senderName"] = req.Sender.Name
	}
	if req.Receiver != nil {
		payload["receiverName"] = req.Receiver.Name
	}
	return payload
}
