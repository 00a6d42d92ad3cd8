package db

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/logger"
)

// Pinger абстрагирует проверку соединения (*sqlx.DB и *sql.DB подходят).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Monitor хранит текущее состояние соединения с базой.
// Передаётся в middleware и health handler вместо глобального флага.
type Monitor struct {
	pinger    Pinger
	interval  time.Duration
	connected atomic.Bool

	mu      sync.RWMutex
	lastErr error
	checked time.Time
}

// NewMonitor создаёт монитор. Начальное состояние считается подключённым,
// так как NewPostgres уже проверил соединение.
func NewMonitor(pinger Pinger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	m := &Monitor{pinger: pinger, interval: interval}
	m.connected.Store(true)
	return m
}

// Connected сообщает, доступна ли база по последней проверке.
func (m *Monitor) Connected() bool {
	return m.connected.Load()
}

// LastError возвращает ошибку последней неудачной проверки.
func (m *Monitor) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// CheckedAt возвращает время последней проверки.
func (m *Monitor) CheckedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checked
}

// Check выполняет одну проверку и обновляет состояние.
func (m *Monitor) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := m.pinger.PingContext(pingCtx)
	ok := err == nil

	m.mu.Lock()
	m.lastErr = err
	m.checked = time.Now()
	m.mu.Unlock()

	if prev := m.connected.Swap(ok); prev != ok {
		entry := logger.Log.WithFields(logrus.Fields{"connected": ok})
		if ok {
			entry.Info("db monitor: соединение с базой восстановлено")
		} else {
			entry.WithError(err).Error("db monitor: соединение с базой потеряно")
		}
	}

	return ok
}

// Run периодически проверяет соединение до отмены контекста.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
