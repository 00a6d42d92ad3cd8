// Package cache содержит небольшое key-value хранилище для счётчиков
// с реализациями в памяти и в Redis.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Store хранит целочисленные значения с TTL.
type Store interface {
	GetInt(ctx context.Context, key string) (int, bool, error)
	SetInt(ctx context.Context, key string, value int, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr атомарно увеличивает значение без срока жизни и возвращает новое.
	Incr(ctx context.Context, key string) (int, error)
}

// PendingRequestsKey ключ счётчика ожидающих входящих запросов пользователя
// для заданного поколения.
func PendingRequestsKey(userID uuid.UUID, generation int) string {
	return "match_requests:pending:" + userID.String() + ":" + strconv.Itoa(generation)
}

// PendingRequestsGenKey ключ поколения счётчика. Сброс кэша увеличивает поколение,
// и значения, записанные под старым поколением, больше не читаются.
func PendingRequestsGenKey(userID uuid.UUID) string {
	return "match_requests:pending_gen:" + userID.String()
}
