package match

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/logger"
)

// LinkUsers добавляет участников матча в users.matches друг друга.
// Если вторая запись не удалась, первая снимается.
func LinkUsers(ctx context.Context, users repository.UserRepository, m *entity.Match) error {
	if err := users.AddMatch(ctx, m.User1ID, m.User2ID); err != nil {
		return err
	}
	if err := users.AddMatch(ctx, m.User2ID, m.User1ID); err != nil {
		if rmErr := users.RemoveMatch(context.WithoutCancel(ctx), m.User1ID, m.User2ID); rmErr != nil {
			logger.Log.WithFields(logrus.Fields{"match_id": m.ID}).WithError(rmErr).Error("match: не удалось откатить список матчей")
		}
		return err
	}
	return nil
}

// discard удаляет только что созданный матч, который не удалось связать с пользователями.
func discard(ctx context.Context, matches repository.MatchRepository, m *entity.Match) {
	if err := matches.Delete(context.WithoutCancel(ctx), m.ID); err != nil {
		logger.Log.WithField("match_id", m.ID).WithError(err).Error("match: не удалось удалить матч после ошибки")
	}
}
