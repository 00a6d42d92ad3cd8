package match

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

// findForParticipant скрывает чужие матчи за той же ошибкой, что и отсутствующие.
func findForParticipant(ctx context.Context, matches repository.MatchRepository, id, userID uuid.UUID) (*entity.Match, error) {
	m, err := matches.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrMatchNotFound
		}
		return nil, err
	}
	if !m.Involves(userID) {
		return nil, apperror.ErrMatchNotFound
	}
	return m, nil
}

type UpdateStatusInput struct {
	MatchID uuid.UUID
	UserID  uuid.UUID
	Status  string
}

// UpdateStatusUseCase меняет статус матча. Переход в completed и рост
// completedExchanges участников фиксируются вместе через MatchRepository.Complete.
type UpdateStatusUseCase struct {
	matches  repository.MatchRepository
	notifier Notifier
}

func NewUpdateStatusUseCase(matches repository.MatchRepository, notifier Notifier) *UpdateStatusUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &UpdateStatusUseCase{matches: matches, notifier: notifier}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, input UpdateStatusInput) (*entity.Match, error) {
	status, err := valueobject.NewMatchStatus(input.Status)
	if err != nil {
		return nil, err
	}

	m, err := findForParticipant(ctx, uc.matches, input.MatchID, input.UserID)
	if err != nil {
		return nil, err
	}

	var completedNow bool
	m.ChangeStatus(status)
	if status == valueobject.MatchStatusCompleted {
		completedNow, err = uc.matches.Complete(ctx, m)
	} else {
		err = uc.matches.UpdateStatus(ctx, m)
	}
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"match_id":  m.ID,
		"status":    status,
		"completed": completedNow,
	}).Info("match: статус изменён")

	if loaded, err := uc.matches.FindByID(ctx, m.ID); err == nil {
		m = loaded
	}
	uc.notifier.Notify(m.OtherUserID(input.UserID), EventStatusChanged, map[string]any{
		"matchId": m.ID.String(),
		"status":  string(m.Status),
		"by":      input.UserID.String(),
	})
	return m, nil
}

type DeleteUseCase struct {
	matches repository.MatchRepository
	users   repository.UserRepository
}

func NewDeleteUseCase(matches repository.MatchRepository, users repository.UserRepository) *DeleteUseCase {
	return &DeleteUseCase{matches: matches, users: users}
}

// Execute удаляет матч. Связь в users.matches снимается, только если
// у пары не осталось других матчей.
func (uc *DeleteUseCase) Execute(ctx context.Context, matchID, userID uuid.UUID) error {
	m, err := findForParticipant(ctx, uc.matches, matchID, userID)
	if err != nil {
		return err
	}
	if err := uc.matches.Delete(ctx, m.ID); err != nil {
		return err
	}

	remaining, err := uc.matches.FindBetween(ctx, m.User1ID, m.User2ID)
	if err != nil {
		return err
	}
	if remaining != nil {
		return nil
	}
	if err := uc.users.RemoveMatch(ctx, m.User1ID, m.User2ID); err != nil {
		return err
	}
	return uc.users.RemoveMatch(ctx, m.User2ID, m.User1ID)
}
