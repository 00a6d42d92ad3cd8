package ws

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/goroutine"
	"github.com/skillswap/skillswap-backend/internal/logger"
)

// Notifier доставляет доменные события через хаб, не блокируя вызывающего.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) Notify(userID uuid.UUID, event string, data map[string]any) {
	goroutine.SafeGo("ws-notify", func() {
		if err := n.hub.BroadcastToUser(userID, event, data); err != nil {
			logger.WithComponent("ws-notify").WithFields(logrus.Fields{
				"user_id": userID,
				"event":   event,
			}).WithError(err).Warn("ws: event not delivered")
		}
	})
}
