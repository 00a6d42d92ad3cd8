package matchrequest

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

type SendInput struct {
	SenderID     uuid.UUID
	ReceiverID   uuid.UUID
	SkillOffered string
	SkillWanted  string
	Message      string
}

type SendUseCase struct {
	requests repository.MatchRequestRepository
	users    repository.UserRepository
	matches  repository.MatchRepository
	counter  *PendingCounter
	notifier Notifier
}

func NewSendUseCase(
	requests repository.MatchRequestRepository,
	users repository.UserRepository,
	matches repository.MatchRepository,
	counter *PendingCounter,
	notifier Notifier,
) *SendUseCase {
	return &SendUseCase{
		requests: requests,
		users:    users,
		matches:  matches,
		counter:  counter,
		notifier: notifierOrNop(notifier),
	}
}

func (uc *SendUseCase) Execute(ctx context.Context, input SendInput) (*entity.MatchRequest, error) {
	if input.SenderID == input.ReceiverID {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "Cannot send request to yourself")
	}

	receiver, err := uc.users.FindByID(ctx, input.ReceiverID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	if !receiver.IsActive {
		return nil, apperror.ErrUserNotFound
	}

	pending, err := uc.requests.ExistsPending(ctx, input.SenderID, input.ReceiverID, input.SkillOffered, input.SkillWanted)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperror.New(apperror.ErrCodeConflict, "Request already sent for this skill combination")
	}

	existing, err := uc.matches.FindBetween(ctx, input.SenderID, input.ReceiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "Already matched with this user")
	}

	req, err := entity.NewMatchRequest(input.SenderID, input.ReceiverID, input.SkillOffered, input.SkillWanted, input.Message)
	if err != nil {
		return nil, err
	}
	if err := uc.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"request_id":  req.ID,
		"sender_id":   req.SenderID,
		"receiver_id": req.ReceiverID,
	}).Info("matchrequest: запрос отправлен")

	if loaded, err := uc.requests.FindByID(ctx, req.ID); err == nil {
		req = loaded
	} else {
		logger.Log.WithError(err).WithField("request_id", req.ID).Warn("matchrequest: не удалось перечитать запрос")
	}

	uc.counter.Invalidate(ctx, req.ReceiverID)
	uc.notifier.Notify(req.ReceiverID, EventRequestCreated, requestPayload(req))

	return req, nil
}
