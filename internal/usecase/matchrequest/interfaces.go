package matchrequest

import (
	"github.com/google/uuid"
)

const (
	EventRequestCreated  = "match_request.created"
	EventRequestAccepted = "match_request.accepted"
	EventRequestDeclined = "match_request.declined"
)

// Notifier доставляет событие пользователю (websocket hub или no-op).
type Notifier interface {
	Notify(userID uuid.UUID, event string, data map[string]any)
}

type nopNotifier struct{}

func (nopNotifier) Notify(uuid.UUID, string, map[string]any) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
