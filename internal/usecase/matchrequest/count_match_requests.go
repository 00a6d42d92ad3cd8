package matchrequest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/cache"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/logger"
)

// PendingCounter считает ожидающие входящие запросы с кэшированием.
// Ошибки кэша не мешают ответу: счётчик берётся из базы.
type PendingCounter struct {
	requests repository.MatchRequestRepository
	store    cache.Store
	ttl      time.Duration
}

func NewPendingCounter(requests repository.MatchRequestRepository, store cache.Store, ttl time.Duration) *PendingCounter {
	return &PendingCounter{requests: requests, store: store, ttl: ttl}
}

func (c *PendingCounter) Count(ctx context.Context, receiverID uuid.UUID) (int, error) {
	gen, cacheable := c.generation(ctx, receiverID)
	key := cache.PendingRequestsKey(receiverID, gen)
	if cacheable {
		if v, ok, err := c.store.GetInt(ctx, key); err != nil {
			logger.Log.WithError(err).WithField("key", key).Warn("matchrequest: ошибка чтения кэша")
		} else if ok {
			return v, nil
		}
	}

	count, err := c.requests.CountByReceiver(ctx, receiverID, valueobject.MatchRequestStatusPending)
	if err != nil {
		return 0, err
	}

	// значение пишется под поколением, прочитанным до запроса в базу:
	// если между ними был Invalidate, запись уйдёт в ключ, который уже никто не читает
	if cacheable && c.ttl > 0 {
		if err := c.store.SetInt(ctx, key, count, c.ttl); err != nil {
			logger.Log.WithError(err).WithField("key", key).Warn("matchrequest: ошибка записи кэша")
		}
	}
	return count, nil
}

func (c *PendingCounter) generation(ctx context.Context, receiverID uuid.UUID) (int, bool) {
	if c.store == nil {
		return 0, false
	}
	gen, _, err := c.store.GetInt(ctx, cache.PendingRequestsGenKey(receiverID))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", receiverID).Warn("matchrequest: ошибка чтения поколения кэша")
		return 0, false
	}
	return gen, true
}

// Invalidate переводит счётчики получателей на новое поколение.
func (c *PendingCounter) Invalidate(ctx context.Context, receiverIDs ...uuid.UUID) {
	if c == nil || c.store == nil {
		return
	}
	for _, id := range receiverIDs {
		gen, err := c.store.Incr(ctx, cache.PendingRequestsGenKey(id))
		if err != nil {
			logger.Log.WithFields(logrus.Fields{"user_id": id}).WithError(err).Warn("matchrequest: не удалось сбросить кэш счётчика")
			continue
		}
		// старое поколение больше не читается
		if err := c.store.Delete(ctx, cache.PendingRequestsKey(id, gen-1)); err != nil {
			logger.Log.WithFields(logrus.Fields{"user_id": id}).WithError(err).Debug("matchrequest: не удалось удалить старый счётчик")
		}
	}
}

type CountPendingUseCase struct {
	counter *PendingCounter
}

func NewCountPendingUseCase(counter *PendingCounter) *CountPendingUseCase {
	return &CountPendingUseCase{counter: counter}
}

func (uc *CountPendingUseCase) Execute(ctx context.Context, userID uuid.UUID) (int, error) {
	return uc.counter.Count(ctx, userID)
}
