package matchrequest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	matchuc "github.com/skillswap/skillswap-backend/internal/usecase/match"
)

type AcceptResult struct {
	Request *entity.MatchRequest
	Match   *entity.Match
}

type AcceptUseCase struct {
	requests repository.MatchRequestRepository
	matches  repository.MatchRepository
	users    repository.UserRepository
	counter  *PendingCounter
	notifier Notifier
}

func NewAcceptUseCase(
	requests repository.MatchRequestRepository,
	matches repository.MatchRepository,
	users repository.UserRepository,
	counter *PendingCounter,
	notifier Notifier,
) *AcceptUseCase {
	return &AcceptUseCase{
		requests: requests,
		matches:  matches,
		users:    users,
		counter:  counter,
		notifier: notifierOrNop(notifier),
	}
}

// Execute переводит запрос в accepted и создаёт матч, если у пары его ещё нет.
// При ошибке создания матча запрос возвращается в pending.
func (uc *AcceptUseCase) Execute(ctx context.Context, requestID, receiverID uuid.UUID) (*AcceptResult, error) {
	req, err := loadPendingForReceiver(ctx, uc.requests, requestID, receiverID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.matches.FindBetween(ctx, req.SenderID, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	if err := req.Accept(); err != nil {
		return nil, err
	}
	ok, err := uc.requests.CompareAndSetStatus(ctx, req.ID, valueobject.MatchRequestStatusPending, valueobject.MatchRequestStatusAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, lostRace(ctx, uc.requests, req.ID)
	}

	match := existing
	if match == nil {
		match, err = uc.createMatch(ctx, req)
		if err != nil {
			uc.rollback(ctx, req, err)
			if apperror.IsValidation(err) {
				return nil, apperror.Wrap(err, apperror.ErrCodeMatchValidation, validationMessage(err))
			}
			return nil, apperror.Wrap(err, apperror.ErrCodeMatchCreation, "Failed to create match")
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"request_id": req.ID,
		"match_id":   match.ID,
		"reused":     existing != nil,
	}).Info("matchrequest: запрос принят")

	uc.counter.Invalidate(ctx, req.ReceiverID)

	if loaded, err := uc.requests.FindByID(ctx, req.ID); err == nil {
		req = loaded
	} else {
		logger.Log.WithError(err).WithField("request_id", req.ID).Warn("matchrequest: не удалось перечитать запрос")
	}
	if loaded, err := uc.matches.FindByID(ctx, match.ID); err == nil {
		match = loaded
	} else {
		logger.Log.WithError(err).WithField("match_id", match.ID).Warn("matchrequest: не удалось перечитать матч")
	}

	payload := requestPayload(req)
	payload["matchId"] = match.ID.String()
	uc.notifier.Notify(req.SenderID, EventRequestAccepted, payload)

	return &AcceptResult{Request: req, Match: match}, nil
}

func (uc *AcceptUseCase) createMatch(ctx context.Context, req *entity.MatchRequest) (*entity.Match, error) {
	match, err := entity.NewMatch(entity.NewMatchParams{
		User1ID:      req.SenderID,
		User2ID:      req.ReceiverID,
		InitiatedBy:  req.SenderID,
		Notes:        req.ExchangeNotes(),
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.matches.Create(ctx, match); err != nil {
		return nil, err
	}

	if err := matchuc.LinkUsers(ctx, uc.users, match); err != nil {
		if delErr := uc.matches.Delete(context.WithoutCancel(ctx), match.ID); delErr != nil {
			logger.Log.WithError(delErr).WithField("match_id", match.ID).Error("matchrequest: не удалось удалить матч после ошибки")
		}
		return nil, err
	}
	return match, nil
}

// rollback возвращает запрос в pending после неудачного создания матча.
func (uc *AcceptUseCase) rollback(ctx context.Context, req *entity.MatchRequest, cause error) {
	entry := logger.Log.WithFields(logrus.Fields{"request_id": req.ID}).WithError(cause)
	ok, err := uc.requests.CompareAndSetStatus(context.WithoutCancel(ctx), req.ID,
		valueobject.MatchRequestStatusAccepted, valueobject.MatchRequestStatusPending)
	if err != nil || !ok {
		entry.WithField("revert_error", err).Error("matchrequest: не удалось вернуть запрос в pending")
		return
	}
	req.Status = valueobject.MatchRequestStatusPending
	entry.Warn("matchrequest: создание матча не удалось, запрос возвращён в pending")
}

func validationMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Invalid match data"
}

type DeclineUseCase struct {
	requests repository.MatchRequestRepository
	counter  *PendingCounter
	notifier Notifier
}

func NewDeclineUseCase(requests repository.MatchRequestRepository, counter *PendingCounter, notifier Notifier) *DeclineUseCase {
	return &DeclineUseCase{requests: requests, counter: counter, notifier: notifierOrNop(notifier)}
}

func (uc *DeclineUseCase) Execute(ctx context.Context, requestID, receiverID uuid.UUID) (*entity.MatchRequest, error) {
	req, err := loadPendingForReceiver(ctx, uc.requests, requestID, receiverID)
	if err != nil {
		return nil, err
	}
	if err := req.Decline(); err != nil {
		return nil, err
	}

	ok, err := uc.requests.CompareAndSetStatus(ctx, req.ID, valueobject.MatchRequestStatusPending, valueobject.MatchRequestStatusDeclined)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, lostRace(ctx, uc.requests, req.ID)
	}

	uc.counter.Invalidate(ctx, req.ReceiverID)

	if loaded, err := uc.requests.FindByID(ctx, req.ID); err == nil {
		req = loaded
	}
	uc.notifier.Notify(req.SenderID, EventRequestDeclined, requestPayload(req))

	return req, nil
}
