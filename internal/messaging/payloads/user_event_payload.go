package payloads

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий жизненного цикла пользователя.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// UserEventPayload представляет событие о пользователе,
// публикуемое в RabbitMQ после успешной мутации.
type UserEventPayload struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewUserEvent собирает событие с новым EventID и текущим временем.
func NewUserEvent(eventType string, userID int64) UserEventPayload {
	return UserEventPayload{
		EventID:    uuid.New(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}
