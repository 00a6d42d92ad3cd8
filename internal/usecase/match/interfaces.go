package match

import "github.com/google/uuid"

const EventStatusChanged = "match.status_changed"

type Notifier interface {
	Notify(userID uuid.UUID, event string, data map[string]any)
}

type nopNotifier struct{}

func (nopNotifier) Notify(uuid.UUID, string, map[string]any) {}
